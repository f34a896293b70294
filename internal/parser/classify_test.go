package parser

import (
	"testing"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label    string
		expected models.Category
	}{
		{"CB CENTRE LECLERC  FACT 161014", models.CategoryCardDebit},
		{"VIREMENT PAR INTERNET", models.CategoryTransfer},
		{"VIR SEPA EMPLOYEUR", models.CategoryTransfer},
		{"RETRAIT DAB 14H32", models.CategoryWithdrawal},
		{"PRLV EDF ELECTRICITE", models.CategoryDirectDebit},
		{"PRELEVEMENT ASSURANCE", models.CategoryDirectDebit},
		{"CHEQUE N 1234567", models.CategoryCheck},
		{"CHQ 1234567", models.CategoryCheck},
		{"* COTISATION MENSUELLE", models.CategoryBank},
		{"INTERETS ACQUIS", models.CategoryBank},
		{"COTISATION CARTE", models.CategoryBank},
		{"FRAIS TENUE DE COMPTE", models.CategoryBank},
		{"VERSEMENT ESPECES", models.CategoryDeposit},
		{"REMISE DE CHEQUES", models.CategoryDeposit},
		{"cb leclerc", models.CategoryCardDebit}, // case folded
		{"ACHAT DIVERS", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Classify(tt.label); got != tt.expected {
				t.Errorf("Classify(%q): got %q, want %q", tt.label, got, tt.expected)
			}
		})
	}
}
