package tags

import (
	"strings"

	"go.senan.xyz/taglib"
)

// readWithTaglib reads FLAC, M4A and Ogg metadata with TagLib when
// dhowden/tag fails.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	return &Tag{
		Path:   path,
		Title:  strings.TrimSpace(tags.get(taglib.Title)),
		Artist: strings.TrimSpace(tags.get(taglib.Artist, taglib.AlbumArtist)),
		Album:  strings.TrimSpace(tags.get(taglib.Album)),
		Lyrics: normalizeLyrics(tags.get("LYRICS", "UNSYNCEDLYRICS")),
	}, nil
}
