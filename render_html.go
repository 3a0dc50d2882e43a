package regtab

import (
	"fmt"
	"html"
	"io"
)

// renderHTML writes a table element with thead/tbody split at the
// header→body transition and colspan on merged cells.
func renderHTML(w io.Writer, t *Table, _ Style) error {
	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if t.HeaderRows > 0 {
		if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
			return err
		}
		for _, row := range t.Rows[:t.HeaderRows] {
			if err := writeHTMLRow(w, row, t, "th"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range t.Rows[t.HeaderRows:] {
		if err := writeHTMLRow(w, row, t, "td"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func writeHTMLRow(w io.Writer, row Row, t *Table, tag string) error {
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	col := 0
	for _, c := range row.Cells {
		attrs := ""
		if c.span() > 1 {
			attrs = fmt.Sprintf(` colspan="%d"`, c.span())
		}
		if style := htmlAlignStyle(t, col, c, tag == "th"); style != "" {
			attrs += style
		}
		if _, err := fmt.Fprintf(w, "      <%s%s>%s</%s>\n", tag, attrs, html.EscapeString(c.Text), tag); err != nil {
			return err
		}
		col += c.span()
	}
	_, err := fmt.Fprintln(w, "    </tr>")
	return err
}

func htmlAlignStyle(t *Table, col int, c Cell, header bool) string {
	align := AlignLeft
	if col < len(t.Aligns) {
		align = t.Aligns[col]
	}
	if header || c.span() > 1 {
		align = AlignCenter
	}
	if col == 0 && c.span() == 1 {
		align = t.Aligns[0]
	}
	switch align {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
