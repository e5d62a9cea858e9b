package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata and duration from an audio file.
// A missing duration is not an error; a file whose tags cannot be read at all is.
func Read(path string) (*Tag, error) {
	t, err := readTags(path)
	if err != nil {
		return nil, err
	}
	if d, err := ReadDuration(path); err == nil {
		t.Duration = d
	}
	return t, nil
}

func readTags(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		case ExtM4A, ExtMP4, ExtFLAC, ExtOGG, ExtOPUS:
			return readWithTaglib(path)
		case ExtWAV, ExtAAC:
			// untagged containers are common; the caller falls back to the filename
			return &Tag{Path: path}, nil
		}
		return nil, err
	}

	return &Tag{
		Path:   path,
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Lyrics: normalizeLyrics(m.Lyrics()),
	}, nil
}
