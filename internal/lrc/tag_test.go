package lrc

import (
	"fmt"
	"math"
	"testing"
)

const tolerance = 1e-6

func TestParseTag_Formats(t *testing.T) {
	tests := []struct {
		name string
		line string
		want float64
	}{
		{"no fraction", "[00:10]No decimal", 10},
		{"one digit", "[00:20.5]One digit", 20.5},
		{"two digits", "[00:30.50]Two digits", 30.5},
		{"three digits", "[00:40.500]Three digits", 40.5},
		{"long fraction truncated", "[00:01.23456]Long", 1.234},
		{"single digit minutes", "[3:07.25]Short minutes", 187.25},
		{"minutes and seconds", "[02:05.123]x", 125.123},
		{"tag not at line start", "intro [00:02.00] late tag", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := ParseTag(tt.line)
			if !ok {
				t.Fatalf("ParseTag(%q) found no tag", tt.line)
			}
			if math.Abs(tag.Offset()-tt.want) > tolerance {
				t.Errorf("ParseTag(%q).Offset() = %v, want %v", tt.line, tag.Offset(), tt.want)
			}
		})
	}
}

func TestParseTag_WellFormedGrid(t *testing.T) {
	for mm := 0; mm < 100; mm += 7 {
		for ss := 0; ss < 60; ss += 11 {
			for _, frac := range []struct {
				text  string
				value float64
			}{
				{"", 0},
				{".4", 0.4},
				{".42", 0.42},
				{".427", 0.427},
			} {
				line := fmt.Sprintf("[%02d:%02d%s]text", mm, ss, frac.text)
				tag, ok := ParseTag(line)
				if !ok {
					t.Fatalf("ParseTag(%q) found no tag", line)
				}
				want := float64(mm*60+ss) + frac.value
				if math.Abs(tag.Offset()-want) > tolerance {
					t.Errorf("ParseTag(%q).Offset() = %v, want %v", line, tag.Offset(), want)
				}
			}
		}
	}
}

func TestParseTag_FractionVariantsNormalizeIdentically(t *testing.T) {
	for _, line := range []string{"[00:01.5]", "[00:01.50]", "[00:01.500]"} {
		tag, ok := ParseTag(line)
		if !ok {
			t.Fatalf("ParseTag(%q) found no tag", line)
		}
		if math.Abs(tag.Offset()-1.5) > tolerance {
			t.Errorf("ParseTag(%q).Offset() = %v, want 1.5", line, tag.Offset())
		}
	}
}

func TestParseTag_FirstTagWins(t *testing.T) {
	tag, ok := ParseTag("[00:01][00:05]Hi")
	if !ok {
		t.Fatal("expected a tag")
	}
	if tag.Offset() != 1 {
		t.Errorf("Offset() = %v, want 1", tag.Offset())
	}
}

func TestParseTag_SecondsNotRangeChecked(t *testing.T) {
	tag, ok := ParseTag("[01:75]late")
	if !ok {
		t.Fatal("expected a tag")
	}
	if tag.Offset() != 135 {
		t.Errorf("Offset() = %v, want 135", tag.Offset())
	}
}

func TestParseTag_Malformed(t *testing.T) {
	lines := []string{
		"",
		"plain text",
		"[ti:Title]",
		"[123:45]three digit minutes",
		"[00:5]one digit seconds",
		"[aa:bb]",
		"[00:10.]empty fraction",
		"[00:10",
		"00:10]",
	}
	for _, line := range lines {
		if tag, ok := ParseTag(line); ok {
			t.Errorf("ParseTag(%q) = %+v, want no tag", line, tag)
		}
	}
}

func TestFormatTag(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "[00:00.000]"},
		{1.5, "[00:01.500]"},
		{61.25, "[01:01.250]"},
		{59.9996, "[01:00.000]"},
		{9.0004, "[00:09.000]"},
		{-3, "[00:00.000]"},
	}
	for _, tt := range tests {
		if got := FormatTag(tt.sec); got != tt.want {
			t.Errorf("FormatTag(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestFormatTag_ParsesBack(t *testing.T) {
	for _, sec := range []float64{0, 0.001, 12.345, 75.5, 3599.999} {
		tag, ok := ParseTag(FormatTag(sec))
		if !ok {
			t.Fatalf("FormatTag(%v) not parseable", sec)
		}
		if math.Abs(tag.Offset()-sec) > 0.0005 {
			t.Errorf("round trip %v -> %v", sec, tag.Offset())
		}
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "00:00.00"},
		{215.37, "03:35.37"},
		{59.999, "01:00.00"},
	}
	for _, tt := range tests {
		if got := FormatLength(tt.sec); got != tt.want {
			t.Errorf("FormatLength(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestStamp(t *testing.T) {
	tests := []struct {
		line string
		sec  float64
		want string
	}{
		{"Hello", 1.5, "[00:01.500]Hello"},
		{"", 61, "[01:01.000]"},
		{"[00:09.00]Again", 12.25, "[00:12.250]Again"},
		{"[00:01][00:05] Chorus", 2, "[00:02.000]Chorus"},
		{"[ti:Song]", 0, "[00:00.000][ti:Song]"},
		{"mid [00:03] tag", 4, "[00:04.000]mid [00:03] tag"},
	}

	for _, tt := range tests {
		if got := Stamp(tt.line, tt.sec); got != tt.want {
			t.Errorf("Stamp(%q, %v) = %q, want %q", tt.line, tt.sec, got, tt.want)
		}
	}
}
