// Package icons holds the glyphs used by the browser and the player bar.
package icons

// Style selects a glyph set.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleASCII   Style = "ascii"
)

// Icons is one glyph set. Prefixes include their trailing space.
type Icons struct {
	Audio   string // before a file name
	Synced  string // file has a .lrc
	Missing string // file has no .lrc
	Play    string
	Pause   string
}

var (
	nerdIcons = Icons{
		Audio:   "\uf001 ", // nf-fa-music
		Synced:  "\uf00c ", // nf-fa-check
		Missing: "\uf00d ", // nf-fa-times
		Play:    "\uf04b",  // nf-fa-play
		Pause:   "\uf04c",  // nf-fa-pause
	}

	unicodeIcons = Icons{
		Synced:  "● ",
		Missing: "○ ",
		Play:    "▶",
		Pause:   "⏸",
	}

	asciiIcons = Icons{
		Synced:  "[x] ",
		Missing: "[ ] ",
		Play:    ">",
		Pause:   "||",
	}

	current = unicodeIcons
)

// Init selects the glyph set named by the config. Unknown names fall back to
// unicode.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleASCII:
		current = asciiIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = unicodeIcons
	}
}

// LyricsMark returns the prefix telling whether a file has lyrics.
func LyricsMark(hasLRC bool) string {
	if hasLRC {
		return current.Synced
	}
	return current.Missing
}

// FormatAudio prefixes an audio file name.
func FormatAudio(name string) string {
	return current.Audio + name
}

// Transport returns the play or pause glyph.
func Transport(playing bool) string {
	if playing {
		return current.Play
	}
	return current.Pause
}
