package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	src := "Date,Description,Amount\n" +
		"01/01/2024,Opening balance,100.00\n" +
		"02/01/2024,Coffee,-3.50\n"

	tbl, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Description", "Amount"}, tbl.Columns)
	require.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, "Opening balance", tbl.Rows[0]["Description"])
	assert.Equal(t, "-3.50", tbl.Rows[1]["Amount"])
}

func TestReadCSVPadsShortRows(t *testing.T) {
	src := "A,B,C\n1,2\n"

	tbl, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)

	require.Equal(t, 1, tbl.RowCount())
	assert.Equal(t, "", tbl.Rows[0]["C"])
}

func TestReadCSVSkipsEmptyRowsAndNamesBlankHeaders(t *testing.T) {
	src := "Date,,Amount\n01/01/2024,x,5\n,,\n02/01/2024,y,6\n"

	tbl, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Column_2", "Amount"}, tbl.Columns)
	assert.Equal(t, 2, tbl.RowCount())
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadUnsupportedExtension(t *testing.T) {
	_, err := Read(strings.NewReader("x"), "statement.pdf")
	assert.Error(t, err)
}

func TestFirstNonEmpty(t *testing.T) {
	tbl := &Table{
		Columns: []string{"A"},
		Rows: []map[string]string{
			{"A": "  "},
			{"A": "hello"},
		},
	}

	v, ok := tbl.FirstNonEmpty("A")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	_, ok = tbl.FirstNonEmpty("missing")
	assert.False(t, ok)
}

func TestHead(t *testing.T) {
	tbl := &Table{
		Columns: []string{"A"},
		Rows:    []map[string]string{{"A": "1"}, {"A": "2"}, {"A": "3"}},
	}

	assert.Len(t, tbl.Head(2), 2)
	assert.Len(t, tbl.Head(50), 3)
}

func TestIsNumericCell(t *testing.T) {
	assert.True(t, IsNumericCell("12.50"))
	assert.True(t, IsNumericCell("-3"))
	assert.True(t, IsNumericCell(" 7 "))
	assert.False(t, IsNumericCell("12,50"))
	assert.False(t, IsNumericCell("abc"))
	assert.False(t, IsNumericCell(""))
}
