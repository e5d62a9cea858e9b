package state

import "time"

// Mock is an in-memory test double for Manager.
type Mock struct {
	session *Session
	cursors map[string]int
	recent  []RecentFile
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{cursors: make(map[string]int)}
}

func (m *Mock) SaveSession(s Session) { m.session = &s }

func (m *Mock) GetSession() (*Session, error) {
	return m.session, nil
}

func (m *Mock) TouchFile(path string) error {
	for i, f := range m.recent {
		if f.Path == path {
			m.recent = append(m.recent[:i], m.recent[i+1:]...)
			break
		}
	}
	m.recent = append([]RecentFile{{Path: path, CursorLine: m.cursors[path], OpenedAt: time.Now()}}, m.recent...)
	return nil
}

func (m *Mock) SaveCursor(path string, line int) error {
	m.cursors[path] = max(line, 0)
	return nil
}

func (m *Mock) Cursor(path string) (int, error) {
	return m.cursors[path], nil
}

func (m *Mock) RecentFiles(limit int) ([]RecentFile, error) {
	return m.recent[:min(limit, len(m.recent))], nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
