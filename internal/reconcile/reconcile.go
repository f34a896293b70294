// Package reconcile recomputes account balances from extracted transactions
// and compares them against the statement's declared closing balance. The
// grammar is heuristic, so this arithmetic check is the primary signal that
// a line was silently missed or double-extracted.
package reconcile

import (
	"strings"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
)

// excerptLen bounds the slice text carried on a discrepancy for diagnosis.
const excerptLen = 400

// Check folds the signed transaction amounts onto the previous balance and
// compares the result to the declared new balance with exact decimal
// equality. It returns ok=true when the account is consistent; otherwise a
// Discrepancy describing the mismatch.
func Check(a *models.AccountStatement) (models.Discrepancy, bool) {
	computed := a.Previous.Amount
	for _, t := range a.Transactions {
		computed = computed.Add(t.Signed())
	}
	if computed.Equal(a.New.Amount) {
		return models.Discrepancy{}, true
	}
	return models.Discrepancy{
		Account:  a.Number,
		Previous: a.Previous.Amount,
		Computed: computed,
		Expected: a.New.Amount,
		Excerpt:  excerpt(a.Text),
	}, false
}

func excerpt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= excerptLen {
		return text
	}
	return text[:excerptLen] + "…"
}
