package regtab

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderText writes the plain/boxed text form. BorderPlain gives the
// journal look: full-width dashed rules at the recorded break positions and
// under top and bottom. The boxed styles frame the same content.
func renderText(w io.Writer, t *Table, style Style) error {
	sep := style.ColumnSep
	if sep <= 0 {
		sep = 3
	}
	widths := textWidths(t, sep)
	total := sep * (t.NCols - 1)
	for _, cw := range widths {
		total += cw
	}

	boxed := style.Border != BorderPlain
	bc := borderSets[style.Border]

	// Rows arrive padded to the full frame width; the frame needs that
	// padding, the plain form sheds it.
	line := func(s string) error {
		if boxed {
			s = bc.vertical + " " + s + " " + bc.vertical
		} else {
			s = strings.TrimRight(s, " ")
		}
		_, err := fmt.Fprintln(w, s)
		return err
	}
	rule := func(edge int) error {
		if !boxed {
			_, err := fmt.Fprintln(w, strings.Repeat("-", total))
			return err
		}
		left, right := bc.leftTee, bc.rightTee
		switch edge {
		case -1:
			left, right = bc.topLeft, bc.topRight
		case 1:
			left, right = bc.bottomLeft, bc.bottomRight
		}
		_, err := fmt.Fprintln(w, left+strings.Repeat(bc.horizontal, total+2)+right)
		return err
	}

	if err := rule(-1); err != nil {
		return err
	}
	for i, row := range t.Rows {
		header := i < t.HeaderRows
		if err := line(textRow(row, widths, t.Aligns, sep, header)); err != nil {
			return err
		}
		if !boxed && hasUnderline(row) {
			if err := line(underlineRow(row, widths, sep)); err != nil {
				return err
			}
		}
		if t.hasBreak(i+1) && i < len(t.Rows)-1 {
			if err := rule(0); err != nil {
				return err
			}
		}
	}
	return rule(1)
}

// textWidths computes physical column widths from single cells first, then
// widens the last covered column wherever a merged cell needs more room.
func textWidths(t *Table, sep int) []int {
	widths := make([]int, t.NCols)
	for _, row := range t.Rows {
		col := 0
		for _, c := range row.Cells {
			sp := c.span()
			if sp == 1 && col < t.NCols {
				if cw := runewidth.StringWidth(c.Text); cw > widths[col] {
					widths[col] = cw
				}
			}
			col += sp
		}
	}
	for _, row := range t.Rows {
		col := 0
		for _, c := range row.Cells {
			sp := c.span()
			if sp > 1 && col+sp <= t.NCols {
				covered := sep * (sp - 1)
				for k := col; k < col+sp; k++ {
					covered += widths[k]
				}
				if need := runewidth.StringWidth(c.Text); need > covered {
					widths[col+sp-1] += need - covered
				}
			}
			col += sp
		}
	}
	return widths
}

func textRow(row Row, widths []int, aligns []Alignment, sep int, header bool) string {
	gap := strings.Repeat(" ", sep)
	parts := make([]string, 0, len(row.Cells))
	col := 0
	for _, c := range row.Cells {
		sp := c.span()
		if col+sp > len(widths) {
			break
		}
		covered := sep * (sp - 1)
		for k := col; k < col+sp; k++ {
			covered += widths[k]
		}
		align := aligns[col]
		if header || sp > 1 {
			align = AlignCenter
		}
		if col == 0 && sp == 1 {
			align = aligns[0]
		}
		parts = append(parts, alignCell(c.Text, covered, align))
		col += sp
	}
	for col < len(widths) {
		parts = append(parts, strings.Repeat(" ", widths[col]))
		col++
	}
	return strings.Join(parts, gap)
}

func hasUnderline(row Row) bool {
	for _, c := range row.Cells {
		if c.Underline {
			return true
		}
	}
	return false
}

// underlineRow draws dashes under the underlined spans only.
func underlineRow(row Row, widths []int, sep int) string {
	gap := strings.Repeat(" ", sep)
	parts := make([]string, 0, len(row.Cells))
	col := 0
	for _, c := range row.Cells {
		sp := c.span()
		if col+sp > len(widths) {
			break
		}
		covered := sep * (sp - 1)
		for k := col; k < col+sp; k++ {
			covered += widths[k]
		}
		if c.Underline {
			parts = append(parts, strings.Repeat("-", covered))
		} else {
			parts = append(parts, strings.Repeat(" ", covered))
		}
		col += sp
	}
	return strings.Join(parts, gap)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
