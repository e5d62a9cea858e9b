package lrc

import (
	"regexp"
	"strings"
)

// Creator is written to the [by:] header of generated files.
const Creator = "lyricsync"

// Header holds the metadata tags of an LRC file. The index skips them.
// Downloaded files carry [by:] and [match:], shown when the file is opened.
type Header struct {
	Title  string
	Artist string
	Album  string
	Length string // mm:ss.cc as written
	By     string
	Match  string // how the lyrics were matched: "id3", "fuzzy", "id3+manual", ...
}

// Matches metadata tags like [ar:Artist Name]
var metadataRe = regexp.MustCompile(`^\[([a-zA-Z]+):(.*)\]$`)

// ParseHeader collects the metadata tags found anywhere in text.
func ParseHeader(text string) Header {
	var h Header
	for _, line := range SplitLines(text) {
		meta := metadataRe.FindStringSubmatch(strings.TrimSpace(line))
		if meta == nil {
			continue
		}
		value := strings.TrimSpace(meta[2])
		switch strings.ToLower(meta[1]) {
		case "ti":
			h.Title = value
		case "ar":
			h.Artist = value
		case "al":
			h.Album = value
		case "length":
			h.Length = value
		case "by":
			h.By = value
		case "match":
			h.Match = value
		}
	}
	return h
}

// BuildHeader renders the header for a downloaded file.
// Empty title/artist are omitted, length is omitted when lengthSec < 0,
// [by:] and [match:] are always present.
func BuildHeader(title, artist string, lengthSec float64, match string) string {
	var parts []string
	if title != "" {
		parts = append(parts, "[ti:"+title+"]")
	}
	if artist != "" {
		parts = append(parts, "[ar:"+artist+"]")
	}
	if lengthSec >= 0 {
		parts = append(parts, "[length:"+FormatLength(lengthSec)+"]")
	}
	parts = append(parts, "[by:"+Creator+"]", "[match:"+match+"]")
	return strings.Join(parts, "\n")
}
