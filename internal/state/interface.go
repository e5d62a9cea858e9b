package state

// Interface is what the editor needs from the state store.
type Interface interface {
	SaveSession(s Session)
	GetSession() (*Session, error)
	TouchFile(path string) error
	SaveCursor(path string, line int) error
	Cursor(path string) (int, error)
	RecentFiles(limit int) ([]RecentFile, error)
	Close() error
}

var _ Interface = (*Manager)(nil)
