package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
	"github.com/insightdelivered/cep-statement-ledger/internal/money"
)

// Balance line anchors. The previous-balance line may omit the date on
// accounts that had no movement; the new-balance line always carries the
// historical franc amount in parentheses, which is captured but unused.
var (
	previousBalancePattern = regexp.MustCompile(`(?m)SOLDE PRECEDENT(?: AU (\d\d/\d\d/\d\d))?\s+(\d+(?:[ ]\d+)*,\d{2})\s*$`)
	newBalancePattern      = regexp.MustCompile(`(?m)NOUVEAU SOLDE CREDITEUR AU (\d\d/\d\d/\d\d)\s+\(en francs : (\d+(?:[ ]\d+)*,\d{2})\)\s+(\d+(?:[ ]\d+)*,\d{2})\s*$`)
)

// findPreviousBalance locates the declared opening balance in an account
// slice's raw text. A missing line is valid (first statement for a new
// account): it yields a zero amount with Found false, distinct from a
// declared 0,00.
func findPreviousBalance(text string) models.Balance {
	m := previousBalancePattern.FindStringSubmatch(text)
	if m == nil {
		return models.Balance{Amount: decimal.Zero}
	}
	amt, err := money.Parse(strings.TrimSpace(m[2]))
	if err != nil {
		return models.Balance{Amount: decimal.Zero}
	}
	return models.Balance{Amount: amt, Date: m[1], Found: true}
}

// findNewBalance locates the declared closing balance. The amount used for
// reconciliation is the one in current currency, after the franc conversion.
func findNewBalance(text string) models.Balance {
	m := newBalancePattern.FindStringSubmatch(text)
	if m == nil {
		return models.Balance{Amount: decimal.Zero}
	}
	amt, err := money.Parse(strings.TrimSpace(m[3]))
	if err != nil {
		return models.Balance{Amount: decimal.Zero}
	}
	return models.Balance{Amount: amt, Date: m[1], Francs: strings.TrimSpace(m[2]), Found: true}
}

// isBalanceLine reports whether a line is one of the balance banners. The
// grammar uses it to stop continuation capture from swallowing them.
func isBalanceLine(line string) bool {
	line = strings.TrimSpace(line)
	return strings.Contains(line, "SOLDE PRECEDENT") || strings.Contains(line, "NOUVEAU SOLDE")
}
