// Package formatter renders normalization reports as aligned text tables.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderTable lays out a header and rows as a pipe table. Column widths are
// measured in display cells so wide characters stay aligned.
func RenderTable(header []string, rows [][]string) string {
	colCount := len(header)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return ""
	}

	colWidths := make([]int, colCount)

	measure := func(row []string) {
		for i := 0; i < len(row) && i < colCount; i++ {
			if w := runewidth.StringWidth(row[i]); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	measure(header)

	for _, row := range rows {
		measure(row)
	}

	// Separator needs at least "---".
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, renderRow(header, colWidths))

	sep := make([]string, colCount)
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}

	lines = append(lines, renderRow(sep, colWidths))

	for _, row := range rows {
		lines = append(lines, renderRow(row, colWidths))
	}

	return strings.Join(lines, "\n") + "\n"
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		sb.WriteString(" ")

		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(content)

		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
