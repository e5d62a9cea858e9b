// Package lrc parses LRC timestamp tags and maintains the time index of a lyric document.
package lrc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Tag is a parsed [mm:ss.fff] timestamp.
type Tag struct {
	Minutes  int
	Seconds  int     // not range-checked, [01:75] is 135s
	Fraction float64 // in [0,1)
}

// Offset returns the tag position in seconds from track start.
func (t Tag) Offset() float64 {
	return float64(t.Minutes)*60 + float64(t.Seconds) + t.Fraction
}

// Matches [m:ss], [mm:ss], [mm:ss.f] .. [mm:ss.fff...]
var tagRe = regexp.MustCompile(`\[(\d{1,2}):(\d{2})(?:\.(\d+))?\]`)

// ParseTag returns the leftmost timestamp tag of a line.
// Only the first tag counts, so "[00:01][00:05]Hi" yields 1s.
func ParseTag(line string) (Tag, bool) {
	m := tagRe.FindStringSubmatch(line)
	if m == nil {
		return Tag{}, false
	}

	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return Tag{}, false
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return Tag{}, false
	}

	return Tag{
		Minutes:  minutes,
		Seconds:  seconds,
		Fraction: parseFraction(m[3]),
	}, true
}

// parseFraction normalizes 1, 2 or 3 digits to tenths, hundredths or milliseconds.
// Longer fractions are cut to their first 3 digits.
func parseFraction(s string) float64 {
	if s == "" {
		return 0
	}
	if len(s) > 3 {
		s = s[:3]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	switch len(s) {
	case 1:
		return float64(n) / 10
	case 2:
		return float64(n) / 100
	default:
		return float64(n) / 1000
	}
}

// FormatTag renders a position as [mm:ss.fff].
func FormatTag(sec float64) string {
	mm, ss, ms := split(sec, 1000)
	return fmt.Sprintf("[%02d:%02d.%03d]", mm, ss, ms)
}

// FormatLength renders a duration as mm:ss.cc for the [length:] header.
func FormatLength(sec float64) string {
	mm, ss, cs := split(sec, 100)
	return fmt.Sprintf("%02d:%02d.%02d", mm, ss, cs)
}

// split breaks sec into minutes, seconds and a rounded sub-second part in 1/unit.
// Rounding that reaches a full second carries into seconds and minutes.
func split(sec float64, unit int) (mm, ss, frac int) {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}
	whole := int(sec)
	frac = int(math.Round((sec - float64(whole)) * float64(unit)))
	if frac >= unit {
		frac -= unit
		whole++
	}
	return whole / 60, whole % 60, frac
}

var leadingTagsRe = regexp.MustCompile(`^\s*(?:\[\d{1,2}:\d{2}(?:\.\d+)?\]\s*)+`)

// Stamp puts a [mm:ss.fff] tag for sec at the start of line, replacing any
// timestamp tags the line already starts with.
func Stamp(line string, sec float64) string {
	return FormatTag(sec) + StripTags(line)
}

// StripTags removes the timestamp tags a line starts with.
func StripTags(line string) string {
	return leadingTagsRe.ReplaceAllString(line, "")
}
