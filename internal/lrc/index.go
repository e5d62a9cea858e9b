package lrc

import (
	"sort"
	"strings"
)

// Line is one line of lyric text as seen at rebuild time.
type Line struct {
	Number int // 0-based
	Text   string
}

// Entry maps a tag offset to the line carrying it.
type Entry struct {
	Offset float64
	Line   int
}

// Index is the ordered (offset, line) table of a lyric document.
// Entries are sorted ascending by offset; equal offsets keep ascending line order.
type Index struct {
	entries []Entry
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Rebuild replaces the index with the tags found in text.
// Lines without a tag contribute nothing.
func (x *Index) Rebuild(text string) {
	lines := Lines(text)
	entries := make([]Entry, 0, len(lines))
	for _, l := range lines {
		tag, ok := ParseTag(l.Text)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Offset: tag.Offset(), Line: l.Number})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Offset < entries[j].Offset
	})

	// Swap, never patch: readers holding the old slice keep a consistent view.
	x.entries = entries
}

// Reset empties the index.
func (x *Index) Reset() {
	x.entries = nil
}

// Lookup returns the line of the last entry whose offset is <= sec.
// It reports false when the index is empty or sec precedes the first entry.
func (x *Index) Lookup(sec float64) (int, bool) {
	entries := x.entries
	// first entry strictly after sec
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Offset > sec
	})
	if i == 0 {
		return -1, false
	}
	return entries[i-1].Line, true
}

// OffsetOf returns the offset indexed for a line, if any.
func (x *Index) OffsetOf(line int) (float64, bool) {
	for _, e := range x.entries {
		if e.Line == line {
			return e.Offset, true
		}
	}
	return 0, false
}

// Entries returns a copy of the index entries.
func (x *Index) Entries() []Entry {
	out := make([]Entry, len(x.entries))
	copy(out, x.entries)
	return out
}

// Len returns the number of indexed lines.
func (x *Index) Len() int {
	return len(x.entries)
}

// Lines splits text into numbered lines.
func Lines(text string) []Line {
	raw := SplitLines(text)
	lines := make([]Line, len(raw))
	for i, t := range raw {
		lines[i] = Line{Number: i, Text: t}
	}
	return lines
}

// SplitLines splits on \n, \r\n and lone \r.
// A trailing line break does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
