package widgets

import "strings"

// Table is a dumb fixed-width text grid. The caller decides the content
// of every cell, including markers; Render only aligns and truncates.
type Table struct {
	Headers []string
	Rows    [][]string
	Widths  []int // per-column cell width; 0 means size to the header
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "No data"
	}
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len([]rune(h))
		if i < len(t.Widths) && t.Widths[i] > widths[i] {
			widths[i] = t.Widths[i]
		}
	}
	lines := []string{t.renderRow(t.Headers, widths, width)}
	for _, row := range t.Rows {
		lines = append(lines, t.renderRow(row, widths, width))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func (t Table) renderRow(cells []string, widths []int, width int) string {
	padded := make([]string, 0, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded = append(padded, pad(cell, w))
	}
	line := strings.Join(padded, "  ")
	if runes := []rune(line); len(runes) > width {
		line = string(runes[:width])
	}
	return line
}

func pad(s string, w int) string {
	runes := []rune(s)
	if len(runes) > w {
		if w <= 1 {
			return string(runes[:w])
		}
		return string(runes[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(runes))
}
