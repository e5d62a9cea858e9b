// Package mpris exposes the transport on the D-Bus session bus, so media keys
// and desktop widgets can pause and seek while lyrics are being timed.
package mpris

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"
)

// Track describes the open audio file.
type Track struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// artNames lists the cover files looked up next to a track, first match wins.
var artNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
	"album.jpg", "album.png",
}

// FindAlbumArt returns the cover image in the track's directory, or "".
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range artNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func trackID(path string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))
	return fmt.Sprintf("/org/lyricsync/Track/%x", h.Sum64())
}
