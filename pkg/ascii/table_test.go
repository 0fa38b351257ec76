package ascii

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	got := Table(
		[]string{"Source", "Copied", "Skipped"},
		[][]string{
			{"win11", "12", "3"},
			{"noto", "140", "0"},
		},
	)

	want := "┌────────┬────────┬─────────┐\n" +
		"│ Source │ Copied │ Skipped │\n" +
		"├────────┼────────┼─────────┤\n" +
		"│ win11  │ 12     │ 3       │\n" +
		"│ noto   │ 140    │ 0       │\n" +
		"└────────┴────────┴─────────┘\n"

	if got != want {
		t.Errorf("Table() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTableNoRows(t *testing.T) {
	got := Table([]string{"Family", "Files"}, nil)

	want := "┌────────┬───────┐\n" +
		"│ Family │ Files │\n" +
		"├────────┼───────┤\n" +
		"└────────┴───────┘\n"

	if got != want {
		t.Errorf("Table() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTableNoHeaders(t *testing.T) {
	if got := Table(nil, [][]string{{"a"}}); got != "" {
		t.Errorf("Expected empty output for no headers, got %q", got)
	}
}

func TestTableRaggedRows(t *testing.T) {
	got := Table(
		[]string{"Family", "Subfamily"},
		[][]string{
			{"Example"},
			{"Other", "Bold", "extra"},
		},
	)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 rendered lines, got %d", len(lines))
	}
	for i, line := range lines {
		if StringWidth(line) != StringWidth(lines[0]) {
			t.Errorf("Line %d width differs: %q", i, line)
		}
	}
	if strings.Contains(got, "extra") {
		t.Error("Expected cells beyond the header width to be clipped")
	}
}

func TestTableWideRunes(t *testing.T) {
	got := Table(
		[]string{"Family", "Source"},
		[][]string{
			{"游ゴシック", "win11"},
			{"Arial", "noto"},
		},
	)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	want := StringWidth(lines[0])
	for i, line := range lines {
		if got := StringWidth(line); got != want {
			t.Errorf("Line %d width = %d, want %d: %q", i, got, want, line)
		}
	}
}
