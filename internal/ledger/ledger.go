// Package ledger accumulates transactions and discrepancies across all
// statements and renders the final tabular export.
package ledger

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
)

// Ledger is the shared accumulator. Statements are processed by parallel
// workers, so appends are mutex-guarded; ordering is resolved only by the
// final sort, never during accumulation.
type Ledger struct {
	mu            sync.Mutex
	txns          []models.Transaction
	discrepancies []models.Discrepancy
}

func New() *Ledger {
	return &Ledger{}
}

// Append adds transactions in encounter order.
func (l *Ledger) Append(txns ...models.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = append(l.txns, txns...)
}

// AddDiscrepancy records a failed account reconciliation.
func (l *Ledger) AddDiscrepancy(d models.Discrepancy) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.discrepancies = append(l.discrepancies, d)
}

// Sort orders transactions by inferred full date. The sort is stable so that
// ties keep their encounter order and the export stays deterministic.
func (l *Ledger) Sort() {
	l.mu.Lock()
	defer l.mu.Unlock()
	sort.SliceStable(l.txns, func(a, b int) bool {
		return l.txns[a].Date.Before(l.txns[b].Date)
	})
}

// Transactions returns the accumulated transactions.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.txns
}

// Discrepancies returns the accumulated reconciliation failures.
func (l *Ledger) Discrepancies() []models.Discrepancy {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.discrepancies
}

// Summary folds over the final transaction list to produce the run totals
// and per-category counts.
func (l *Ledger) Summary() models.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := models.Summary{
		Transactions:  len(l.txns),
		ByCategory:    make(map[models.Category]int),
		TotalCredit:   decimal.Zero,
		TotalDebit:    decimal.Zero,
		Discrepancies: len(l.discrepancies),
	}
	for _, t := range l.txns {
		s.ByCategory[t.Category]++
		if t.Debit {
			s.TotalDebit = s.TotalDebit.Add(t.Amount)
		} else {
			s.TotalCredit = s.TotalCredit.Add(t.Amount)
		}
	}
	return s
}
