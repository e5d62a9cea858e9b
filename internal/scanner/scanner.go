// Package scanner finds audio files under a folder.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/llehouerou/lyricsync/internal/lrcfile"
	"github.com/llehouerou/lyricsync/internal/tags"
)

// File is one audio file found by a scan.
type File struct {
	Path   string
	Rel    string // path relative to the scanned root
	HasLRC bool   // a sibling .lrc with the same stem exists
}

// Scan walks root recursively and returns its audio files sorted by relative path.
// Unreadable entries are skipped. A missing root yields no files and no error.
func Scan(ctx context.Context, root string) ([]File, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Skip any walk errors - intentionally continuing to scan other paths
		if walkErr != nil {
			return nil //nolint:nilerr // intentionally skipping errors
		}
		if d.IsDir() || !tags.IsAudioFile(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		files = append(files, File{
			Path:   path,
			Rel:    rel,
			HasLRC: lrcfile.Exists(lrcfile.PathFor(path)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Rel < files[j].Rel
	})
	return files, nil
}
