package regtab

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderMarkdown writes a GitHub-flavored pipe table. Markdown allows only
// one header row, so all header rows collapse into it column-wise (e.g. a
// depvar row over a numbering row yields "wage (1)"); merged cells flatten
// and rule positions cannot be expressed.
func renderMarkdown(w io.Writer, t *Table, _ Style) error {
	// The dialect requires a header row; with every header section omitted
	// the first body row takes its place.
	hr := t.HeaderRows
	if hr == 0 && len(t.Rows) > 0 {
		hr = 1
	}
	header := make([]string, t.NCols)
	for _, row := range t.Rows[:hr] {
		for i, text := range row.flat(t.NCols) {
			if text == "" {
				continue
			}
			if header[i] != "" {
				header[i] += " "
			}
			header[i] += text
		}
	}

	widths := make([]int, t.NCols)
	measure := func(cells []string) {
		for i, c := range cells {
			if cw := runewidth.StringWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	measure(header)
	for _, row := range t.Rows[hr:] {
		measure(row.flat(t.NCols))
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	if err := writeMarkdownRow(w, header, widths, t.Aligns); err != nil {
		return err
	}
	sep := make([]string, t.NCols)
	for i, width := range widths {
		switch t.Aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range t.Rows[hr:] {
		if err := writeMarkdownRow(w, row.flat(t.NCols), widths, t.Aligns); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
