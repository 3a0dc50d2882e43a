package regtab

import (
	"encoding/csv"
	"io"
)

// renderCSV writes every row with merged cells flattened (text once, then
// blanks for the covered columns).
func renderCSV(w io.Writer, t *Table, _ Style) error {
	cw := csv.NewWriter(w)
	for _, row := range t.Rows {
		if err := cw.Write(row.flat(t.NCols)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
