package mapper

import (
	"regexp"
	"strings"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/tabular"
)

// Name keywords per role. Matching is case-insensitive substring containment
// over the source column names, first match in column order wins.
var (
	dateTerms        = []string{"date", "dt", "day"}
	chequeTerms      = []string{"cheque", "check", "ref", "reference", "no", "num", "number", "id"}
	descriptionTerms = []string{"desc", "narration", "details", "memo", "note", "particular", "narr", "transaction", "name"}
	amountTerms      = []string{"amount", "sum", "value", "debit", "credit", "amt"}
	txnTypeTerms     = []string{"type", "transaction type", "tr type", "db/cr", "dr/cr", "debit/credit"}
)

// looseDatePattern matches date-like text such as 1/2/23 or 01-02-2023.
var looseDatePattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

// Classify proposes a Mapping for an arbitrary table. It never fails: roles
// that cannot be resolved by name, by content sniffing, or by position are
// simply left unset. Pure function of the table's column names and values.
func Classify(t *tabular.Table) Mapping {
	var m Mapping

	m.Date = classifyDate(t)
	m.ChequeNo = classifyByName(t, chequeTerms, 1)
	m.Description = classifyByName(t, descriptionTerms, 2)
	m.Amount = classifyAmount(t)
	m.TransactionType = matchColumnName(t.Columns, txnTypeTerms)

	return m
}

// classifyDate resolves the date role: column name keywords first, then a
// content sniff over text-typed columns, then the first column.
func classifyDate(t *tabular.Table) string {
	if col := matchColumnName(t.Columns, dateTerms); col != "" {
		return col
	}

	for _, col := range t.Columns {
		sample, ok := t.FirstNonEmpty(col)
		if !ok || tabular.IsNumericCell(sample) {
			continue
		}
		if looseDatePattern.MatchString(sample) {
			return col
		}
	}

	return positional(t.Columns, 0)
}

// classifyAmount resolves the amount role: name keywords, then the first
// numeric-valued column, then the fourth column.
func classifyAmount(t *tabular.Table) string {
	if col := matchColumnName(t.Columns, amountTerms); col != "" {
		return col
	}

	for _, col := range t.Columns {
		if sample, ok := t.FirstNonEmpty(col); ok && tabular.IsNumericCell(sample) {
			return col
		}
	}

	return positional(t.Columns, 3)
}

func classifyByName(t *tabular.Table, terms []string, fallbackIndex int) string {
	if col := matchColumnName(t.Columns, terms); col != "" {
		return col
	}
	return positional(t.Columns, fallbackIndex)
}

// matchColumnName returns the first column whose lowercased name contains any
// of the terms, scanning columns left to right.
func matchColumnName(columns []string, terms []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return col
			}
		}
	}
	return ""
}

func positional(columns []string, index int) string {
	if index < len(columns) {
		return columns[index]
	}
	return ""
}
