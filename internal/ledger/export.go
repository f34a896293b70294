package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/cep-statement-ledger/internal/money"
)

// exportHeader is the fixed output schema. Credit and debit get separate
// columns, only one populated per row, so signed amounts stay visually
// distinct in a spreadsheet.
var exportHeader = []string{"date", "account", "type", "label", "label_extra", "credit", "debit"}

// Export renders the ledger as semicolon-delimited rows; semicolon because
// the amounts themselves contain commas.
func (l *Ledger) Export(out io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := csv.NewWriter(out)
	w.Comma = ';'

	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, t := range l.txns {
		credit, debit := "", ""
		if t.Debit {
			debit = money.Format(t.Amount)
		} else {
			credit = money.Format(t.Amount)
		}
		row := []string{
			t.Date.Format("02/01/2006"),
			t.Account,
			string(t.Category),
			t.Label,
			t.LabelExtra,
			credit,
			debit,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// ExportToFile writes the ledger to the given path.
func (l *Ledger) ExportToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return l.Export(f)
}
