package regtab

import "sort"

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Cell is one logical table cell. Span > 1 merges the cell across that many
// physical columns; resolving the merge (centering, colspan markup) is the
// renderer's job. Underline asks the renderer to rule under the span where
// the backend supports it (LaTeX \cmidrule).
type Cell struct {
	Text      string
	Span      int
	Underline bool
}

// TextCell makes an ordinary single-column cell.
func TextCell(s string) Cell { return Cell{Text: s, Span: 1} }

// SpanCell makes a merged cell covering n columns.
func SpanCell(s string, n int) Cell { return Cell{Text: s, Span: n} }

func (c Cell) span() int {
	if c.Span < 1 {
		return 1
	}
	return c.Span
}

// Row is one physical table row.
type Row struct {
	Cells []Cell
}

func rowOf(texts ...string) Row {
	cells := make([]Cell, len(texts))
	for i, t := range texts {
		cells[i] = TextCell(t)
	}
	return Row{Cells: cells}
}

// flat expands the row to one string per physical column; merged cells
// contribute their text once followed by blanks. Used by backends without a
// span concept (CSV, Markdown).
func (r Row) flat(ncols int) []string {
	out := make([]string, 0, ncols)
	for _, c := range r.Cells {
		out = append(out, c.Text)
		for k := 1; k < c.span(); k++ {
			out = append(out, "")
		}
	}
	for len(out) < ncols {
		out = append(out, "")
	}
	return out[:ncols]
}

// Table is an assembled summary table: a rectangular grid of cells plus the
// structural hints a renderer needs. It is built once per [Build] call;
// post-hoc customization is limited to rule positions and per-backend
// styles and never re-runs selection or alignment.
type Table struct {
	Rows []Row
	// Breaks holds row counts after which a horizontal rule belongs: a
	// value b means "rule below row b-1". Sorted, unique, never 0.
	Breaks []int
	// HeaderRows is the number of leading rows emitted before the
	// coefficient section; renderers may center them.
	HeaderRows int
	// NCols is the physical column count (label column + one per model).
	NCols   int
	NModels int
	// Aligns is the per-physical-column alignment for body rows.
	Aligns []Alignment

	styles map[Backend]Style
}

// AddRule records a horizontal rule below row index i-1 (i.e. after i rows).
// Out-of-range or duplicate positions are ignored.
func (t *Table) AddRule(i int) {
	if i <= 0 || i > len(t.Rows) {
		return
	}
	for _, b := range t.Breaks {
		if b == i {
			return
		}
	}
	t.Breaks = append(t.Breaks, i)
	sort.Ints(t.Breaks)
}

// RemoveRule removes a previously recorded rule position.
func (t *Table) RemoveRule(i int) {
	for k, b := range t.Breaks {
		if b == i {
			t.Breaks = append(t.Breaks[:k], t.Breaks[k+1:]...)
			return
		}
	}
}

// Style returns the resolved style for a backend.
func (t *Table) Style(b Backend) Style {
	if s, ok := t.styles[b]; ok {
		return s
	}
	return defaultStyle(b)
}

// SetStyle overrides the resolved style for one backend after building.
func (t *Table) SetStyle(b Backend, s Style) {
	if t.styles == nil {
		t.styles = make(map[Backend]Style)
	}
	t.styles[b] = s
}

func (t *Table) hasBreak(after int) bool {
	for _, b := range t.Breaks {
		if b == after {
			return true
		}
	}
	return false
}
