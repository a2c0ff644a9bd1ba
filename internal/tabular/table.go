package tabular

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Table is an in-memory table: ordered column names plus row records.
//
// Rows are keyed by column name. Readers guarantee a rectangular shape:
// every row carries every column, short source rows are padded with "".
type Table struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Column returns every value of one column in row order.
func (t *Table) Column(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// FirstNonEmpty returns the first non-blank value in a column.
func (t *Table) FirstNonEmpty(name string) (string, bool) {
	for _, row := range t.Rows {
		if v := strings.TrimSpace(row[name]); v != "" {
			return v, true
		}
	}
	return "", false
}

// Head returns up to n leading rows (shared slice, callers must not mutate).
func (t *Table) Head(n int) []map[string]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// IsNumericCell reports whether a cell holds a plain decimal number.
func IsNumericCell(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := decimal.NewFromString(value)
	return err == nil
}
