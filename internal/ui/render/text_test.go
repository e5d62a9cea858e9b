package render

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "hello", "hello"},
		{"keeps tab", "a\tb", "a\tb"},
		{"drops carriage return", "line\r", "line"},
		{"drops escape", "a\x1b[31mb", "a[31mb"},
		{"nbsp to space", "a\u00a0b", "a b"},
		{"invalid utf8", "a\xffb", "ab"},
		{"c1 control", "a\u0085b", "ab"},
		{"cjk untouched", "夜に駆ける", "夜に駆ける"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"ellipsis", "hello world", 8, "hello..."},
		{"very short", "hello", 3, "..."},
		{"empty", "", 10, ""},
		{"wide chars", "夜に駆ける", 7, "夜に..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	for _, input := range []string{"", "abc", "a much longer line of lyrics", "夜に駆ける夜に駆ける"} {
		got := TruncateAndPad(input, 12)
		if w := runewidth.StringWidth(got); w != 12 {
			t.Errorf("TruncateAndPad(%q, 12) width = %d (%q)", input, w, got)
		}
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		left, right string
		width       int
		want        string
	}{
		{"a", "b", 5, "a   b"},
		{"left", "right", 9, "left right"},
		{"ab", "cd", 4, "ab cd"},
	}

	for _, tt := range tests {
		if got := Row(tt.left, tt.right, tt.width); got != tt.want {
			t.Errorf("Row(%q, %q, %d) = %q, want %q", tt.left, tt.right, tt.width, got, tt.want)
		}
	}
}
