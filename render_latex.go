package regtab

import (
	"fmt"
	"io"
	"strings"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes the characters LaTeX treats as markup.
func EscapeLaTeX(s string) string { return latexEscaper.Replace(s) }

// renderLaTeX writes a tabular environment. Merged header cells become
// \multicolumn, underlined spans become \cmidrule (or \cline without
// booktabs), and break positions become \midrule (or \hline).
func renderLaTeX(w io.Writer, t *Table, style Style) error {
	top, mid, bottom := `\toprule`, `\midrule`, `\bottomrule`
	if !style.Booktabs {
		top, mid, bottom = `\hline`, `\hline`, `\hline`
	}

	colspec := make([]byte, t.NCols)
	for i := range colspec {
		switch t.Aligns[i] {
		case AlignRight:
			colspec[i] = 'r'
		case AlignCenter:
			colspec[i] = 'c'
		default:
			colspec[i] = 'l'
		}
	}
	if _, err := fmt.Fprintf(w, "\\begin{tabular}{%s}\n%s\n", colspec, top); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			text := EscapeLaTeX(c.Text)
			if c.span() > 1 {
				text = fmt.Sprintf(`\multicolumn{%d}{c}{%s}`, c.span(), text)
			}
			cells = append(cells, text)
		}
		if _, err := fmt.Fprintf(w, "%s \\\\\n", strings.Join(cells, " & ")); err != nil {
			return err
		}
		if err := writeCmidrules(w, row, style.Booktabs); err != nil {
			return err
		}
		if t.hasBreak(i+1) && i < len(t.Rows)-1 {
			if _, err := fmt.Fprintln(w, mid); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%s\n\\end{tabular}\n", bottom)
	return err
}

func writeCmidrules(w io.Writer, row Row, booktabs bool) error {
	col := 1 // LaTeX columns are 1-based
	var rules []string
	for _, c := range row.Cells {
		sp := c.span()
		if c.Underline {
			if booktabs {
				rules = append(rules, fmt.Sprintf(`\cmidrule(lr){%d-%d}`, col, col+sp-1))
			} else {
				rules = append(rules, fmt.Sprintf(`\cline{%d-%d}`, col, col+sp-1))
			}
		}
		col += sp
	}
	if len(rules) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(rules, " "))
	return err
}
