package mapper

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV serializes output rows in the fixed Xero column order, header
// first.
func WriteCSV(w io.Writer, rows []OutputRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(OutputColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Date, row.ChequeNo, row.Description, row.Amount, row.Reference}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
