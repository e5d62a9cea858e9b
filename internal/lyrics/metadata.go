// Package lyrics finds and downloads lyrics for local audio files.
package lyrics

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/llehouerou/lyricsync/internal/tags"
)

// Match tags recorded in the [match:] header.
const (
	MatchID3     = "id3"
	MatchFuzzy   = "fuzzy"
	manualSuffix = "+manual"
)

// Metadata is what a lyric search needs to know about an audio file.
type Metadata struct {
	Title    string
	Artist   string
	Duration time.Duration // 0 when unknown
	Fuzzy    bool          // Title was guessed from the filename
	Embedded string        // lyrics stored in the audio file tags
}

// MatchTag returns how the title was obtained.
func (m Metadata) MatchTag() string {
	if m.Fuzzy {
		return MatchFuzzy
	}
	return MatchID3
}

// ManualMatchTag returns the match tag for a user-chosen result.
func (m Metadata) ManualMatchTag() string {
	return m.MatchTag() + manualSuffix
}

// ExtractMetadata reads title, artist and duration from path. Unreadable tags
// are not an error: the title then comes from the filename.
func ExtractMetadata(path string) Metadata {
	var m Metadata
	if t, err := tags.Read(path); err == nil {
		m.Title = t.Title
		m.Artist = t.Artist
		m.Duration = t.Duration
		m.Embedded = t.Lyrics
	} else if d, err := tags.ReadDuration(path); err == nil {
		m.Duration = d
	}

	if m.Title == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		m.Title = FuzzyTitle(stem)
		m.Fuzzy = true
	}
	return m
}

var (
	trackNumberRe = regexp.MustCompile(`^\s*\d+\s*[-_. ]\s*`)
	bracketedRe   = regexp.MustCompile(`[\[\(\{（【].*?[\]\)\}）】]`)
	separatorRe   = regexp.MustCompile(`\s*[-–—_|]\s*`)
)

// FuzzyTitle guesses a song title from a filename stem: the track number and
// bracketed parts are dropped and the longest separator-delimited part wins.
func FuzzyTitle(stem string) string {
	s := trackNumberRe.ReplaceAllString(stem, "")
	s = bracketedRe.ReplaceAllString(s, "")

	var parts []string
	for _, p := range separatorRe.Split(s, -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return stem
	}
	slices.SortStableFunc(parts, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})
	return strings.TrimSpace(parts[0])
}
