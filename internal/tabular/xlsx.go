package tabular

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of an XLSX stream into a Table.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, errors.New("sheet is empty")
	}

	columns := cleanHeaders(records[0])

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isRowEmpty(record) {
			continue
		}
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// Read dispatches on the lowercased file extension. Only .csv and .xlsx are
// supported; anything else is the caller's error.
func Read(r io.Reader, filename string) (*Table, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return ReadCSV(r)
	case strings.HasSuffix(name, ".xlsx"):
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}
