package mapper

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/tabular"
)

// Transaction-type keywords used when re-signing the amount. Checked by
// substring containment over the lowercased cell, credit terms before debit
// terms, so any text containing the letter "c" counts as a credit and any
// containing "d" as a debit.
var (
	creditContains = []string{"c", "cr", "credit"}
	debitContains  = []string{"d", "db", "debit"}
)

// Exact transaction-type tokens for the Reference column, compared after
// lowercasing and trimming.
var (
	debitExact  = map[string]bool{"db": true, "dr": true, "debit": true, "dbt": true, "debited": true, "d": true}
	creditExact = map[string]bool{"cr": true, "credit": true, "cdt": true, "credited": true, "c": true}
)

// nonAmountChars strips everything but digits, decimal point and minus sign.
var nonAmountChars = regexp.MustCompile(`[^0-9.-]`)

// dateLayouts tried in order by FormatDate. Slash and dash dates are read
// day-first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02/01/06",
	"2/1/06",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Format transforms every row of the table into the five-field output record
// using the given mapping. It never fails: unset roles yield empty fields and
// malformed cells degrade to passthrough per cell. Rows are independent.
func Format(t *tabular.Table, m Mapping) []OutputRow {
	rows := make([]OutputRow, 0, len(t.Rows))
	for _, src := range t.Rows {
		rows = append(rows, FormatRow(src, m))
	}
	return rows
}

// FormatRow applies the formatting rules to a single source row.
func FormatRow(src map[string]string, m Mapping) OutputRow {
	var out OutputRow

	if m.Date != "" {
		out.Date = FormatDate(src[m.Date])
	}
	if m.ChequeNo != "" {
		out.ChequeNo = src[m.ChequeNo]
	}
	if m.Description != "" {
		out.Description = src[m.Description]
	}

	txnType := ""
	if m.TransactionType != "" {
		txnType = src[m.TransactionType]
	}

	rawAmount := ""
	if m.Amount != "" {
		rawAmount = src[m.Amount]
		out.Amount = FormatAmount(rawAmount, txnType)
	}
	out.Reference = ReferenceCode(rawAmount, txnType)

	return out
}

// FormatDate renders any parseable date as DD/MM/YYYY. Unparseable text is
// passed through unchanged.
func FormatDate(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return value
}

// FormatAmount cleans the amount cell and normalizes its sign from the
// transaction-type cell: credits are forced negative, debits are forced
// positive, anything else keeps the original sign. If the cleaned text does
// not parse as a decimal the original cell is returned verbatim.
func FormatAmount(value, txnType string) string {
	cleaned := nonAmountChars.ReplaceAllString(value, "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return value
	}

	if txnType != "" {
		lower := strings.ToLower(txnType)
		switch {
		case containsAny(lower, creditContains):
			if amount.IsPositive() {
				return "-" + cleaned
			}
			return cleaned
		case containsAny(lower, debitContains):
			return strings.TrimPrefix(cleaned, "-")
		}
	}

	return cleaned
}

// ReferenceCode derives the D/C reference letter. An exact transaction-type
// token wins; otherwise the sign of the original amount cell decides, with
// only thousands-separator commas removed before parsing. Returns "" when
// neither source yields an answer.
func ReferenceCode(rawAmount, txnType string) string {
	if txnType != "" {
		token := strings.ToLower(strings.TrimSpace(txnType))
		if debitExact[token] {
			return "D"
		}
		if creditExact[token] {
			return "C"
		}
	}

	cleaned := strings.ReplaceAll(strings.TrimSpace(rawAmount), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return ""
	}
	if amount.IsNegative() {
		return "D"
	}
	return "C"
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
