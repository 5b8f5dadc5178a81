package export

import "fmt"

// Column describes one report column. Width is in millimetres and only used by PDF output;
// zero widths share the remaining page width.
type Column struct {
	Title string
	Width float64
	Align string
}

// Table is the content of a tabular report.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
	// Footer is an optional totals row rendered after the body.
	Footer []string
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("report requires at least one column")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
	}
	if len(t.Footer) > 0 && len(t.Footer) != len(t.Columns) {
		return fmt.Errorf("footer has %d cells, want %d", len(t.Footer), len(t.Columns))
	}
	return nil
}

func (t Table) titles() []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = col.Title
	}
	return out
}
