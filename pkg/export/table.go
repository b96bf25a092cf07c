package export

import "fmt"

// Table is the calendar grid handed to the CSV and PDF renderers. Every row has
// one cell per column, in column order.
type Table struct {
	Columns []string
	Rows    [][]string
	// Shaded holds indexes of rows the PDF renderer fills, such as holidays.
	Shaded map[int]bool
}

func (t Table) check(format string) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("%s requires at least one column", format)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%s row %d has %d cells, want %d", format, i, len(row), len(t.Columns))
		}
	}
	return nil
}
