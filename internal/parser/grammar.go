package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
	"github.com/insightdelivered/cep-statement-ledger/internal/money"
)

// Transaction line shapes. The debit and credit columns sit at different
// horizontal positions in the source documents, so the text extractor
// linearizes them differently:
//
//	debit:  "18/10 CB CENTRE LECLERC  FACT 161014      13,40"
//	credit: "150,0008/11 VIREMENT PAR INTERNET"
//
// On debit lines the greedy label plus the end-of-line anchor make the
// right-most comma-decimal token win, and the whitespace boundary before it
// keeps digit runs inside labels (invoice numbers, references) from being
// taken for amounts. On credit lines the amount comes first, glued to the
// date.
var (
	debitLinePattern  = regexp.MustCompile(`^(\d\d/\d\d)(.*)\s(\d+,\d{2})\s*$`)
	creditLinePattern = regexp.MustCompile(`^(\d+,\d{2})(\d\d/\d\d)(.*)$`)
)

// cbInvoicePattern matches card-debit labels carrying the ticket reference
// ("CB CENTRE LECLERC  FACT 161014"); the CB marker and the reference are
// dropped from the exported label once the category has been assigned.
var cbInvoicePattern = regexp.MustCompile(`(.*)CB (.*\w) +FACT \d{6}(.*)`)

// section is one banner of the early statement format. Every transaction
// printed under a banner takes the banner's sign and category, regardless
// of which column the generic grammar would have read it from.
type section struct {
	category models.Category
	banner   string
	debit    bool
}

var sections = []section{
	{models.CategoryDeposit, "Opérations de dépôt", false},
	{models.CategoryTransfer, "Virements reçus", false},
	{models.CategoryCheck, "Paiements chèques", true},
	{models.CategoryBank, "Frais bancaires et cotisations", true},
	{models.CategoryCardDebit, "Paiements carte bancaire", true},
	{models.CategoryWithdrawal, "Retraits carte bancaire", true},
	{models.CategoryDirectDebit, "Prélèvements", true},
}

// extractTransactions splits one cleaned account slice into transactions.
// The section-banner strategy runs first; if any banner yields transactions
// it is exclusive and the generic column grammar is not run on the slice.
func extractTransactions(text string, warn func(string)) []models.Transaction {
	if txns := extractSectioned(text, warn); len(txns) > 0 {
		return txns
	}
	return runGrammar(text, true, warn)
}

// extractSectioned handles the early format: transactions grouped under
// named banners. Banner positions are collected in one pass and each block
// runs from the end of its banner to the start of the next.
func extractSectioned(text string, warn func(string)) []models.Transaction {
	type bannerAt struct {
		sec      section
		pos, end int
	}
	var found []bannerAt
	for _, sec := range sections {
		if i := strings.Index(text, sec.banner); i >= 0 {
			found = append(found, bannerAt{sec: sec, pos: i, end: i + len(sec.banner)})
		}
	}
	if len(found) == 0 {
		return nil
	}
	sort.Slice(found, func(a, b int) bool { return found[a].pos < found[b].pos })

	var txns []models.Transaction
	for i, b := range found {
		end := len(text)
		if i+1 < len(found) {
			end = found[i+1].pos
		}
		// Inside a section every line is date-first; only the debit shape
		// applies, and the banner decides the sign.
		ops := runGrammar(text[b.end:end], false, warn)
		for j := range ops {
			ops[j].Debit = b.sec.debit
			ops[j].Category = b.sec.category
			// Check remittances are printed under the fee banner but are
			// money in, not out.
			if b.sec.category == models.CategoryBank && strings.HasPrefix(ops[j].Label, "* REMISE") {
				ops[j].Debit = false
			}
		}
		txns = append(txns, ops...)
	}
	return txns
}

// grammar states for continuation capture.
const (
	expectTransactionStart = iota
	inContinuation
)

// runGrammar walks a text block line by line with two states: expecting a
// transaction start, or accumulating continuation lines into the previous
// transaction's extra label. Continuation ends at the next matching line, a
// balance banner, or end of block. Credit-shaped lines are only considered
// when credits is true (the sectioned format has none).
func runGrammar(text string, credits bool, warn func(string)) []models.Transaction {
	var txns []models.Transaction
	state := expectTransactionStart

	for _, line := range strings.Split(text, "\n") {
		txn, ok, err := matchLine(line, credits)
		if err != nil {
			warn(err.Error())
			state = expectTransactionStart
			continue
		}
		if ok {
			txns = append(txns, txn)
			state = inContinuation
			continue
		}
		if state != inContinuation {
			continue
		}
		if isBalanceLine(line) {
			state = expectTransactionStart
			continue
		}
		extra := strings.TrimSpace(line)
		if extra == "" {
			continue
		}
		last := &txns[len(txns)-1]
		if last.LabelExtra == "" {
			last.LabelExtra = extra
		} else {
			last.LabelExtra += " " + extra
		}
	}
	return txns
}

// matchLine classifies one line as a debit start, a credit start, or neither.
// A line that matches a shape but carries a malformed amount is an error for
// that single transaction, not for the whole slice.
func matchLine(line string, credits bool) (models.Transaction, bool, error) {
	if m := debitLinePattern.FindStringSubmatch(line); m != nil {
		amt, err := money.Parse(m[3])
		if err != nil {
			return models.Transaction{}, false, fmt.Errorf("debit line %q: %w", line, err)
		}
		label := strings.TrimSpace(m[2])
		return models.Transaction{
			OpDate:   m[1],
			Label:    normalizeLabel(label),
			Amount:   amt,
			Debit:    true,
			Category: Classify(label),
		}, true, nil
	}
	if credits {
		if m := creditLinePattern.FindStringSubmatch(line); m != nil {
			amt, err := money.Parse(m[1])
			if err != nil {
				return models.Transaction{}, false, fmt.Errorf("credit line %q: %w", line, err)
			}
			label := strings.TrimSpace(m[3])
			return models.Transaction{
				OpDate:   m[2],
				Label:    normalizeLabel(label),
				Amount:   amt,
				Debit:    false,
				Category: Classify(label),
			}, true, nil
		}
	}
	return models.Transaction{}, false, nil
}

// normalizeLabel tidies a primary label for export: card-debit ticket
// references add nothing once the category is known.
func normalizeLabel(label string) string {
	if m := cbInvoicePattern.FindStringSubmatch(label); m != nil {
		return strings.TrimSpace(m[1] + m[2] + m[3])
	}
	return strings.TrimSpace(label)
}
