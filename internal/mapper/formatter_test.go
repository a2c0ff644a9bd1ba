package mapper

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/tabular"
)

func TestFormatAmountCreditForcedNegative(t *testing.T) {
	tests := []struct {
		amount  string
		txnType string
		want    string
	}{
		{"500.00", "Credit", "-500.00"},
		{"75.50", "CR", "-75.50"},
		{"100.50", "C", "-100.50"},
		{"250.75", "credit", "-250.75"},
		{"-80.00", "Credit", "-80.00"}, // already negative stays
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.txnType), "amount=%s type=%s", tt.amount, tt.txnType)
	}
}

func TestFormatAmountDebitForcedPositive(t *testing.T) {
	tests := []struct {
		amount  string
		txnType string
		want    string
	}{
		{"300.00", "Debit", "300.00"},
		{"150.25", "D", "150.25"},
		{"-85.25", "DB", "85.25"},
		{"-400.00", "debit", "400.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.txnType), "amount=%s type=%s", tt.amount, tt.txnType)
	}
}

func TestFormatAmountContainmentSemantics(t *testing.T) {
	// "Cash" contains the letter c, so it is treated as a credit; any text
	// containing d is a debit once the credit terms miss.
	assert.Equal(t, "-50.00", FormatAmount("50.00", "Cash"))
	assert.Equal(t, "20.00", FormatAmount("-20.00", "withdrawal"))
	// No c or d at all falls through to the default sign-preserving path.
	assert.Equal(t, "70.00", FormatAmount("70.00", "Unknown"))
	assert.Equal(t, "-70.00", FormatAmount("-70.00", "Unknown"))
}

func TestFormatAmountCleansCurrencyText(t *testing.T) {
	assert.Equal(t, "1234.56", FormatAmount("$1,234.56", ""))
	assert.Equal(t, "-1234.56", FormatAmount("($ 1,234.56)", "credit"))
	assert.Equal(t, "99.00", FormatAmount(" 99.00 GBP", ""))
}

func TestFormatAmountUnparseablePassthrough(t *testing.T) {
	assert.Equal(t, "n/a", FormatAmount("n/a", ""))
	assert.Equal(t, "", FormatAmount("", "credit"))
}

func TestFormatAmountIdempotentOnCleanInput(t *testing.T) {
	for _, amount := range []string{"500.00", "-250.75", "0", "1234.56"} {
		once := FormatAmount(amount, "")
		assert.Equal(t, once, FormatAmount(once, ""))
	}
}

func TestReferenceCodeExactTokens(t *testing.T) {
	for _, token := range []string{"db", "DR", "Debit", "DBT", "debited", "d", " D "} {
		assert.Equal(t, "D", ReferenceCode("100", token), "token=%q", token)
	}
	for _, token := range []string{"cr", "Credit", "CDT", "credited", "c", " C "} {
		assert.Equal(t, "C", ReferenceCode("100", token), "token=%q", token)
	}
}

func TestReferenceCodeSignFallback(t *testing.T) {
	// Inexact tokens fall back to the sign of the raw amount cell.
	assert.Equal(t, "D", ReferenceCode("-250.75", ""))
	assert.Equal(t, "C", ReferenceCode("250.75", ""))
	assert.Equal(t, "C", ReferenceCode("0", ""))
	assert.Equal(t, "D", ReferenceCode("-1,234.56", "Cash"))
	assert.Equal(t, "", ReferenceCode("not a number", ""))
	assert.Equal(t, "", ReferenceCode("", "Unknown"))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01/01/2024", "01/01/2024"},
		{"2024-03-15", "15/03/2024"},
		{"5/6/2023", "05/06/2023"},
		{"15 Jan 2024", "15/01/2024"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in), "in=%q", tt.in)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"Date", "Amount", "Reference"},
		Rows: []map[string]string{
			{"Date": "01/01/2024", "Amount": "500.00", "Reference": "Credit"},
			{"Date": "02/01/2024", "Amount": "300.00", "Reference": "Debit"},
		},
	}
	m := Mapping{Date: "Date", Amount: "Amount", TransactionType: "Reference"}

	rows := Format(tbl, m)
	require.Len(t, rows, 2)

	assert.Equal(t, OutputRow{Date: "01/01/2024", Amount: "-500.00", Reference: "C"}, rows[0])
	assert.Equal(t, OutputRow{Date: "02/01/2024", Amount: "300.00", Reference: "D"}, rows[1])
}

func TestFormatWithoutTransactionType(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"Date", "Amount"},
		Rows: []map[string]string{
			{"Date": "03/01/2024", "Amount": "-250.75"},
		},
	}
	m := Mapping{Date: "Date", Amount: "Amount"}

	rows := Format(tbl, m)
	require.Len(t, rows, 1)

	// No re-sign without a transaction type; reference comes from the sign.
	assert.Equal(t, "-250.75", rows[0].Amount)
	assert.Equal(t, "D", rows[0].Reference)
}

func TestFormatUnsetRolesYieldEmptyFields(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"Type"},
		Rows:    []map[string]string{{"Type": "credit"}},
	}

	rows := Format(tbl, Mapping{TransactionType: "Type"})
	require.Len(t, rows, 1)

	assert.Equal(t, "", rows[0].Date)
	assert.Equal(t, "", rows[0].ChequeNo)
	assert.Equal(t, "", rows[0].Description)
	assert.Equal(t, "", rows[0].Amount)
	// An exact transaction-type token still decides the reference even with
	// the amount role unset.
	assert.Equal(t, "C", rows[0].Reference)
}

func TestFormatPassthroughFields(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"Date", "No", "Memo", "Amount"},
		Rows: []map[string]string{
			{"Date": "01/01/2024", "No": "CHQ-77", "Memo": "Rent", "Amount": "1200"},
		},
	}
	m := Mapping{Date: "Date", ChequeNo: "No", Description: "Memo", Amount: "Amount"}

	rows := Format(tbl, m)
	require.Len(t, rows, 1)
	assert.Equal(t, "CHQ-77", rows[0].ChequeNo)
	assert.Equal(t, "Rent", rows[0].Description)
}

func TestWriteCSV(t *testing.T) {
	rows := []OutputRow{
		{Date: "01/01/2024", ChequeNo: "101", Description: "Rent", Amount: "-500.00", Reference: "C"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Cheque No.,Description,Amount,Reference", lines[0])
	assert.Equal(t, "01/01/2024,101,Rent,-500.00,C", lines[1])
}
