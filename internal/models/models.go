package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a transaction from its label prefix or, on early-format
// statements, from the section banner it was printed under.
type Category string

const (
	CategoryBank        Category = "BANK"
	CategoryDeposit     Category = "DEPOSIT"
	CategoryTransfer    Category = "WIRETRANSFER"
	CategoryCheck       Category = "CHECK"
	CategoryCardDebit   Category = "CARDDEBIT"
	CategoryWithdrawal  Category = "WITHDRAWAL"
	CategoryDirectDebit Category = "DIRECTDEBIT"
	CategoryOther       Category = "OTHER"
)

// Transaction is a single operation extracted from an account slice.
// OpDate, Label, LabelExtra, Amount and Debit come straight from the grammar;
// Date and Category are attached afterwards by the enrichment passes.
type Transaction struct {
	OpDate     string          `json:"opDate"` // dd/mm as printed
	Label      string          `json:"label"`
	LabelExtra string          `json:"labelExtra,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Debit      bool            `json:"debit"`
	Account    string          `json:"account"`
	Date       time.Time       `json:"date"`
	Category   Category        `json:"category"`
}

// Signed returns the amount with its sign applied: credits positive,
// debits negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Balance is a declared opening or closing balance for one account.
// Found distinguishes a balance line that was genuinely absent (new account,
// first statement) from one that declared 0,00.
type Balance struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date,omitempty"` // dd/mm/yy as printed; empty when unknown
	Francs string          `json:"francs,omitempty"`
	Found  bool            `json:"found"`
}

// AccountStatement is one account's portion of a statement: the text slice
// bounded by its header and the next header, plus everything extracted from it.
type AccountStatement struct {
	Number       string        `json:"number"`
	Header       string        `json:"-"`
	Text         string        `json:"-"`
	Previous     Balance       `json:"previous"`
	New          Balance       `json:"new"`
	Transactions []Transaction `json:"transactions"`
}

// StatementInfo holds everything extracted from one statement text.
type StatementInfo struct {
	Source       string              `json:"source"`
	Owner        string              `json:"owner"`
	EmissionDate time.Time           `json:"emissionDate"`
	Accounts     []*AccountStatement `json:"accounts"`
	Warnings     []string            `json:"warnings,omitempty"`
}

// Discrepancy is a failed reconciliation for one account: the recomputed
// closing balance did not match the declared one.
type Discrepancy struct {
	Account  string          `json:"account"`
	Previous decimal.Decimal `json:"previous"`
	Computed decimal.Decimal `json:"computed"`
	Expected decimal.Decimal `json:"expected"`
	Excerpt  string          `json:"excerpt,omitempty"`
}

// Summary aggregates a finished ledger. It is computed by folding over the
// final transaction list, not by counters updated during extraction.
type Summary struct {
	Transactions  int              `json:"transactions"`
	ByCategory    map[Category]int `json:"byCategory"`
	TotalCredit   decimal.Decimal  `json:"totalCredit"`
	TotalDebit    decimal.Decimal  `json:"totalDebit"`
	Discrepancies int              `json:"discrepancies"`
}
