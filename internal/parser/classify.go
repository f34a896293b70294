package parser

import (
	"strings"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
)

// categoryPrefixes is the ordered label vocabulary; the first matching
// prefix wins. Starred lines are bank fees, per the statement legend.
var categoryPrefixes = []struct {
	prefix   string
	category models.Category
}{
	{"*", models.CategoryBank},
	{"INTERETS", models.CategoryBank},
	{"COTISATION", models.CategoryBank},
	{"FRAIS", models.CategoryBank},
	{"VERSEMENT", models.CategoryDeposit},
	{"REMISE", models.CategoryDeposit},
	{"VIR", models.CategoryTransfer},
	{"CHEQUE", models.CategoryCheck},
	{"CHQ", models.CategoryCheck},
	{"CB ", models.CategoryCardDebit},
	{"RETRAIT", models.CategoryWithdrawal},
	{"PRLV", models.CategoryDirectDebit},
	{"PRELEVEMENT", models.CategoryDirectDebit},
}

// Classify maps a transaction's primary label to its category. Labels that
// match no prefix fall through to the catch-all.
func Classify(label string) models.Category {
	l := strings.ToUpper(strings.TrimSpace(label))
	for _, p := range categoryPrefixes {
		if strings.HasPrefix(l, p.prefix) {
			return p.category
		}
	}
	return models.CategoryOther
}
