package ascii

import (
	"strings"
	"testing"
)

func TestBox(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "single line",
			lines: []string{"Hello"},
			want:  "┌───────┐\n│ Hello │\n└───────┘\n",
		},
		{
			name:  "multiple lines",
			lines: []string{"Line 1", "Longer line here", "Short"},
			want: "┌──────────────────┐\n" +
				"│ Line 1           │\n" +
				"│ Longer line here │\n" +
				"│ Short            │\n" +
				"└──────────────────┘\n",
		},
		{
			name:  "trailing spaces trimmed",
			lines: []string{"padded   "},
			want:  "┌────────┐\n│ padded │\n└────────┘\n",
		},
		{
			name:  "empty input",
			lines: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Box(tt.lines); got != tt.want {
				t.Errorf("Box() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestBoxBordersAlign(t *testing.T) {
	// CJK runes are double width; every rendered line must have the same
	// display width or the right border drifts.
	out := Box([]string{"fonts: 游ゴシック", "fonts: Arial"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 rendered lines, got %d", len(lines))
	}

	want := StringWidth(lines[0])
	for i, line := range lines {
		if got := StringWidth(line); got != want {
			t.Errorf("Line %d width = %d, want %d: %q", i, got, want, line)
		}
	}
}

func TestTruncateForBox(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exact", 5, "exact"},
		{"truncated", "a long string here", 10, "a long ..."},
		{"tiny width", "abcdef", 2, "ab"},
		{"zero width", "abc", 0, ""},
		{"wide runes", "游ゴシック体", 7, "游ゴ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateForBox(tt.value, tt.width)
			if got != tt.want {
				t.Errorf("TruncateForBox(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
			}
			if w := StringWidth(got); w > tt.width {
				t.Errorf("Result width %d exceeds limit %d", w, tt.width)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"ascii", 5},
		{"游ゴシック", 10},
		{"mixed 漢字", 10},
	}

	for _, tt := range tests {
		if got := StringWidth(tt.s); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestRuneWidth(t *testing.T) {
	if got := RuneWidth('a'); got != 1 {
		t.Errorf("RuneWidth('a') = %d, want 1", got)
	}
	if got := RuneWidth('漢'); got != 2 {
		t.Errorf("RuneWidth('漢') = %d, want 2", got)
	}
}
