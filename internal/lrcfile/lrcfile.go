// Package lrcfile reads and writes the .lrc file that sits next to an audio file.
package lrcfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathFor returns the expected .lrc file path for an audio file.
func PathFor(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return audioPath[:len(audioPath)-len(ext)] + ".lrc"
}

// Exists reports whether path is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Read returns the content of an lrc file. Invalid UTF-8 is dropped rather
// than rejected, lyric files from the wild are often mis-encoded.
// found is false, with a nil error, when the file does not exist.
func Read(path string) (text string, found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read lrc: %w", err)
	}
	text = strings.TrimPrefix(string(data), "\uFEFF")
	return strings.ToValidUTF8(text, ""), true, nil
}

// Write replaces the lrc file with text through a temp file and rename, so a
// crash never leaves a half-written file behind.
func Write(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lyricsync-*.lrc")
	if err != nil {
		return fmt.Errorf("write lrc: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("write lrc: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write lrc: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("write lrc: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write lrc: %w", err)
	}
	return nil
}
