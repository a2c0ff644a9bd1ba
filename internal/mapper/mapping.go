package mapper

// Role identifies one of the five output positions a source column can feed.
type Role string

const (
	RoleDate            Role = "date"
	RoleChequeNo        Role = "chequeNo"
	RoleDescription     Role = "description"
	RoleAmount          Role = "amount"
	RoleTransactionType Role = "transactionType"
)

// Mapping assigns each role to a source column name. An empty string means
// the role is unset. A Mapping is a value: the formatter never mutates it and
// a user override replaces it wholesale.
type Mapping struct {
	Date            string `json:"date"`
	ChequeNo        string `json:"chequeNo"`
	Description     string `json:"description"`
	Amount          string `json:"amount"`
	TransactionType string `json:"transactionType"`
}

// OutputRow is one record of the Xero cash-book import format.
type OutputRow struct {
	Date        string `json:"Date"`
	ChequeNo    string `json:"Cheque No."`
	Description string `json:"Description"`
	Amount      string `json:"Amount"`
	Reference   string `json:"Reference"`
}

// OutputColumns is the fixed header of the converted file.
var OutputColumns = []string{"Date", "Cheque No.", "Description", "Amount", "Reference"}
