package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func syntheticAccount() *models.AccountStatement {
	// P + T == N with T = -13.40 - 45.10 + 150.00
	return &models.AccountStatement{
		Number:   "04123456789",
		Text:     "18/10 CB LECLERC 13,40\n05/11 PRLV EDF 45,10\n150,0008/11 VIREMENT",
		Previous: models.Balance{Amount: dec("56.05"), Found: true},
		New:      models.Balance{Amount: dec("147.55"), Found: true},
		Transactions: []models.Transaction{
			{Amount: dec("13.40"), Debit: true},
			{Amount: dec("45.10"), Debit: true},
			{Amount: dec("150.00"), Debit: false},
		},
	}
}

func TestCheckConsistent(t *testing.T) {
	if d, ok := Check(syntheticAccount()); !ok {
		t.Errorf("expected zero discrepancy, got computed=%s expected=%s", d.Computed, d.Expected)
	}
}

func TestCheckOneCentPerturbation(t *testing.T) {
	// any single amount off by one cent must surface exactly one discrepancy
	cent := dec("0.01")
	for i := 0; i < 3; i++ {
		a := syntheticAccount()
		a.Transactions[i].Amount = a.Transactions[i].Amount.Add(cent)

		d, ok := Check(a)
		if ok {
			t.Errorf("transaction %d perturbed: expected a discrepancy", i)
			continue
		}
		if d.Account != "04123456789" {
			t.Errorf("account: got %q", d.Account)
		}
		diff := d.Computed.Sub(d.Expected).Abs()
		if !diff.Equal(cent) {
			t.Errorf("transaction %d: discrepancy off by %s, want 0.01", i, diff)
		}
		if d.Excerpt == "" {
			t.Error("expected the slice excerpt for diagnosis")
		}
	}
}

func TestCheckMissingBalancesStillRuns(t *testing.T) {
	// absent balances default to zero; the check still proceeds
	a := &models.AccountStatement{
		Number:   "04999999999",
		Previous: models.Balance{Amount: decimal.Zero},
		New:      models.Balance{Amount: decimal.Zero},
		Transactions: []models.Transaction{
			{Amount: dec("10.00"), Debit: true},
		},
	}
	d, ok := Check(a)
	if ok {
		t.Fatal("expected a discrepancy")
	}
	if d.Computed.StringFixed(2) != "-10.00" {
		t.Errorf("computed: got %s", d.Computed)
	}
}

func TestCheckEmptyAccount(t *testing.T) {
	a := &models.AccountStatement{
		Number:   "04000000000",
		Previous: models.Balance{Amount: dec("56.05"), Found: true},
		New:      models.Balance{Amount: dec("56.05"), Found: true},
	}
	if _, ok := Check(a); !ok {
		t.Error("no transactions and equal balances should reconcile")
	}
}
