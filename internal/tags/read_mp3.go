package tags

import (
	"strings"

	"github.com/bogem/id3v2/v2"
)

// readMP3WithID3v2 reads title, artist, album and embedded lyrics with
// id3v2, which copes with the UTF-16 frames dhowden/tag rejects.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	t := &Tag{
		Path:   path,
		Title:  strings.TrimSpace(id3tag.Title()),
		Artist: strings.TrimSpace(id3tag.Artist()),
		Album:  strings.TrimSpace(id3tag.Album()),
		Lyrics: embeddedLyrics(id3tag),
	}
	if t.Artist == "" {
		// some taggers only fill the album artist frame
		t.Artist = strings.TrimSpace(textFrame(id3tag, "TPE2"))
	}
	return t, nil
}

func textFrame(id3tag *id3v2.Tag, id string) string {
	for _, f := range id3tag.GetFrames(id) {
		if tf, ok := f.(id3v2.TextFrame); ok {
			return tf.Text
		}
	}
	return ""
}

// embeddedLyrics returns the first non-empty USLT frame.
func embeddedLyrics(id3tag *id3v2.Tag) string {
	for _, f := range id3tag.GetFrames("USLT") {
		if uf, ok := f.(id3v2.UnsynchronisedLyricsFrame); ok && strings.TrimSpace(uf.Lyrics) != "" {
			return normalizeLyrics(uf.Lyrics)
		}
	}
	return ""
}

// normalizeLyrics converts CR and CRLF line breaks, which taggers commonly
// write, to LF.
func normalizeLyrics(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(s, "\r", "\n"))
}
