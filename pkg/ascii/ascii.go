// Package ascii provides utilities for formatted terminal output
package ascii

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Box builds a box containing the provided lines and returns it as a string.
// Lines are left-aligned with single-space padding on each side. Multi-width
// runes (emoji, CJK, etc.) are accounted for so the borders stay aligned.
func Box(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	trimmed := make([]string, len(lines))
	maxWidth := 0
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, " ")
		if w := StringWidth(trimmed[i]); w > maxWidth {
			maxWidth = w
		}
	}

	leftPadding, rightPadding := 1, 1
	innerWidth := maxWidth + leftPadding + rightPadding
	border := strings.Repeat("─", innerWidth)

	var sb strings.Builder
	sb.WriteString("┌" + border + "┐\n")
	for _, line := range trimmed {
		lineWidth := StringWidth(line)
		fill := innerWidth - leftPadding - rightPadding - lineWidth
		if fill < 0 {
			fill = 0
		}
		sb.WriteString("│ " + line + strings.Repeat(" ", fill) + " │\n")
	}
	sb.WriteString("└" + border + "┘\n")
	return sb.String()
}

// DrawBox prints a box containing the provided lines.
func DrawBox(lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Print(Box(lines))
}

// TruncateForBox truncates a string so that its display width fits within the
// provided width. An ellipsis ("...") is appended when truncation occurs and
// there is space for it.
func TruncateForBox(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return substringWithWidth(value, width)
	}
	truncated := substringWithWidth(value, width-3)
	return truncated + "..."
}

func substringWithWidth(s string, target int) string {
	if target <= 0 {
		return ""
	}
	width := 0
	var sb strings.Builder
	for _, r := range s {
		w := RuneWidth(r)
		if width+w > target {
			break
		}
		width += w
		sb.WriteRune(r)
	}
	return sb.String()
}

// RuneWidth returns the display width of a single rune, accounting for
// multi-width Unicode characters (emoji, CJK, etc.).
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string, accounting for
// multi-width Unicode characters (emoji, CJK, etc.).
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
