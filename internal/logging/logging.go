// Package logging sets up the zerolog logger. The TUI owns the terminal, so
// logs go to a file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appName     = "lyricsync"
	logFileName = "lyricsync.log"
)

// ParseLevel maps a config level name to a zerolog level. Unknown names
// fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Path returns the log file path, creating its directory.
func Path() (string, error) {
	return xdg.StateFile(filepath.Join(appName, logFileName))
}

// Open opens the log file for appending and installs the logger as the
// zerolog global. The returned closer closes the file.
func Open(level string) (zerolog.Logger, io.Closer, error) {
	path, err := Path()
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log path: %w", err)
	}
	return OpenFile(path, level)
}

// OpenFile is Open with an explicit path.
func OpenFile(path, level string) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}
	l := New(f, level)
	log.Logger = l
	return l, f, nil
}
