package spreadsheet

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// MinColumnWidth is the default Excel column width in characters.
	MinColumnWidth = 8.43
	// MaxColumnWidth is the widest column Excel accepts.
	MaxColumnWidth = 255.0

	columnPadding = 2.0
)

// fitWidth returns the column width needed to show text on one line.
// Multi-line text is sized by its longest line; east-asian wide runes count double.
func fitWidth(text string) float64 {
	widest := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}
	width := float64(widest)
	if widest > 0 {
		width += columnPadding
	}
	return min(max(width, MinColumnWidth), MaxColumnWidth)
}

// fitColumns computes one width per column of a rendered grid.
func fitColumns(rows [][]string, cols int) []float64 {
	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = MinColumnWidth
	}
	for _, row := range rows {
		for j := 0; j < cols && j < len(row); j++ {
			if w := fitWidth(row[j]); w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}
