package ascii

import "strings"

// Table renders headers and rows as a bordered table. Column widths follow
// the widest cell, measured in display width so multi-width runes line up.
// Rows shorter than the header are padded with empty cells; longer rows are
// clipped to the header width.
func Table(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			if w := StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRule(&sb, widths, "┌", "┬", "┐")
	writeRow(&sb, widths, headers)
	writeRule(&sb, widths, "├", "┼", "┤")
	for _, row := range rows {
		cells := make([]string, len(headers))
		copy(cells, row)
		writeRow(&sb, widths, cells)
	}
	writeRule(&sb, widths, "└", "┴", "┘")
	return sb.String()
}

func writeRule(sb *strings.Builder, widths []int, left, mid, right string) {
	sb.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(mid)
		}
		sb.WriteString(strings.Repeat("─", w+2))
	}
	sb.WriteString(right + "\n")
}

func writeRow(sb *strings.Builder, widths []int, cells []string) {
	sb.WriteString("│")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		fill := w - StringWidth(cell)
		if fill < 0 {
			fill = 0
		}
		sb.WriteString(" " + cell + strings.Repeat(" ", fill) + " │")
	}
	sb.WriteString("\n")
}
