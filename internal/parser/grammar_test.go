package parser

import (
	"testing"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
)

func discardWarn(string) {}

func TestGrammarDebitLine(t *testing.T) {
	txns := extractTransactions("18/10 CB CENTRE LECLERC  FACT 161014      13,40", discardWarn)
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}

	txn := txns[0]
	if txn.OpDate != "18/10" {
		t.Errorf("OpDate: got %q, want %q", txn.OpDate, "18/10")
	}
	if !txn.Debit {
		t.Error("expected a debit")
	}
	if txn.Amount.StringFixed(2) != "13.40" {
		t.Errorf("Amount: got %s, want 13.40", txn.Amount)
	}
	if txn.Category != models.CategoryCardDebit {
		t.Errorf("Category: got %q, want %q", txn.Category, models.CategoryCardDebit)
	}
	// ticket reference dropped from the exported label
	if txn.Label != "CENTRE LECLERC" {
		t.Errorf("Label: got %q, want %q", txn.Label, "CENTRE LECLERC")
	}
}

func TestGrammarCreditLine(t *testing.T) {
	txns := extractTransactions("150,0008/11 VIREMENT PAR INTERNET", discardWarn)
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}

	txn := txns[0]
	if txn.OpDate != "08/11" {
		t.Errorf("OpDate: got %q, want %q", txn.OpDate, "08/11")
	}
	if txn.Debit {
		t.Error("expected a credit")
	}
	if txn.Amount.StringFixed(2) != "150.00" {
		t.Errorf("Amount: got %s, want 150.00", txn.Amount)
	}
	if txn.Category != models.CategoryTransfer {
		t.Errorf("Category: got %q, want %q", txn.Category, models.CategoryTransfer)
	}
	if txn.Label != "VIREMENT PAR INTERNET" {
		t.Errorf("Label: got %q", txn.Label)
	}
}

func TestGrammarLastAmountWins(t *testing.T) {
	// the interest rate is a decimal-shaped token; the amount is the
	// right-most one at end of line
	txns := extractTransactions("02/01 INTERETS TAUX 1,75 ANNUEL 4,92", discardWarn)
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Amount.StringFixed(2) != "4.92" {
		t.Errorf("Amount: got %s, want 4.92", txns[0].Amount)
	}
	if txns[0].Label != "INTERETS TAUX 1,75 ANNUEL" {
		t.Errorf("Label: got %q", txns[0].Label)
	}
}

func TestGrammarEmbeddedDigitsNotAmount(t *testing.T) {
	// "161014" inside the label must not be read as an amount
	txns := extractTransactions("18/10 CB LECLERC REF 161014 22,00", discardWarn)
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Amount.StringFixed(2) != "22.00" {
		t.Errorf("Amount: got %s, want 22.00", txns[0].Amount)
	}
}

func TestGrammarContinuationCapture(t *testing.T) {
	text := `05/11 PRLV EDF ELECTRICITE 45,10
MANDAT 1234567
REF ABC-99
18/11 CB CARREFOUR  FACT 181114 12,00`
	txns := extractTransactions(text, discardWarn)
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}
	if txns[0].LabelExtra != "MANDAT 1234567 REF ABC-99" {
		t.Errorf("LabelExtra: got %q", txns[0].LabelExtra)
	}
	if txns[1].LabelExtra != "" {
		t.Errorf("second transaction should have no extra, got %q", txns[1].LabelExtra)
	}
}

func TestGrammarContinuationStopsAtBalance(t *testing.T) {
	text := `18/10 CB LECLERC  FACT 161014 13,40
NOUVEAU SOLDE CREDITEUR AU 15/11/14 (en francs : 896,05) 136,60`
	txns := extractTransactions(text, discardWarn)
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].LabelExtra != "" {
		t.Errorf("balance banner captured as extra label: %q", txns[0].LabelExtra)
	}
}

func TestGrammarSections(t *testing.T) {
	text := `Virements reçus
08/11 VIREMENT EMPLOYEUR 1200,00
Paiements carte bancaire
18/10 CENTRE LECLERC 13,40
20/10 STATION TOTAL 40,00
Frais bancaires et cotisations
02/11 COTISATION CARTE 2,50
02/11 * REMISE COMMERCIALE 1,00`
	txns := extractTransactions(text, discardWarn)
	if len(txns) != 5 {
		t.Fatalf("got %d transactions, want 5", len(txns))
	}

	// sign and category come from the banner, not the column position
	if txns[0].Debit || txns[0].Category != models.CategoryTransfer {
		t.Errorf("txns[0]: got debit=%v category=%q", txns[0].Debit, txns[0].Category)
	}
	if !txns[1].Debit || txns[1].Category != models.CategoryCardDebit {
		t.Errorf("txns[1]: got debit=%v category=%q", txns[1].Debit, txns[1].Category)
	}
	if !txns[3].Debit || txns[3].Category != models.CategoryBank {
		t.Errorf("txns[3]: got debit=%v category=%q", txns[3].Debit, txns[3].Category)
	}
	// remittances under the fee banner are money in
	if txns[4].Debit {
		t.Error("txns[4]: REMISE should be a credit")
	}
}

func TestGrammarSectionsExclusive(t *testing.T) {
	// once a banner yields anything, the generic grammar must not also run:
	// amount-first lines outside the banners stay unparsed
	text := `Paiements carte bancaire
18/10 CENTRE LECLERC 13,40
150,0008/11 VIREMENT PAR INTERNET`
	txns := extractTransactions(text, discardWarn)
	for _, txn := range txns {
		if txn.OpDate == "08/11" {
			t.Fatal("generic credit grammar ran despite section match")
		}
	}
}

func TestGrammarEmptySlice(t *testing.T) {
	txns := extractTransactions("nothing matches here\nat all", discardWarn)
	if len(txns) != 0 {
		t.Fatalf("got %d transactions, want 0", len(txns))
	}
}
