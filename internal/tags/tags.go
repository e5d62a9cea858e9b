// Package tags reads the metadata lyric lookups need from audio files:
// title, artist, album, duration and embedded lyrics.
package tags

import (
	"path/filepath"
	"strings"
	"time"
)

// File extensions recognized as audio.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
	ExtAAC  = ".aac"
	ExtOGG  = ".ogg"
	ExtOPUS = ".opus"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

var audioExts = map[string]bool{
	ExtMP3:  true,
	ExtFLAC: true,
	ExtWAV:  true,
	ExtM4A:  true,
	ExtAAC:  true,
	ExtOGG:  true,
	ExtOPUS: true,
}

// Tag is the metadata of one audio file.
type Tag struct {
	Path     string
	Title    string // empty when the file carries no title
	Artist   string
	Album    string
	Duration time.Duration // 0 when unknown
	Lyrics   string        // embedded lyrics, possibly LRC formatted
}

// HasDuration reports whether the duration could be determined.
func (t *Tag) HasDuration() bool {
	return t.Duration > 0
}

// IsAudioFile returns true if the path has a supported audio extension.
func IsAudioFile(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
