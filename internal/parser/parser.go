// Package parser turns cleaned statement text into owner, account, balance
// and transaction data. It understands both generations of the Caisse
// d'Épargne layout: the early section-banner format and the later
// column-position format.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/cep-statement-ledger/internal/cleaner"
	"github.com/insightdelivered/cep-statement-ledger/internal/models"
)

// Per-statement fatal conditions: without an owner or at least one account
// header the statement cannot be sliced at all.
var (
	ErrOwnerNotFound  = errors.New("statement owner not found")
	ErrNoAccounts     = errors.New("no account headers found")
	ErrNoEmissionDate = errors.New("no emission date found")
)

// emissionDatePattern matches the first full date near the top of the
// statement, which is the year pivot for all dd/mm operation dates.
var emissionDatePattern = regexp.MustCompile(`\b\d\d/\d\d/\d{4}\b`)

// Parser extracts a StatementInfo from one statement's raw text.
type Parser struct {
	Clean cleaner.Options
	Log   zerolog.Logger
}

// New returns a Parser with default cleaning options.
func New(log zerolog.Logger) *Parser {
	return &Parser{Clean: cleaner.Default(), Log: log}
}

// Parse processes one statement text end to end: clean, locate the emission
// date, owner and accounts, then per account locate balances, run the
// grammar, and attach inferred dates. Accounts are walked from the last
// header backward to the first; with slices derived from precomputed spans
// the order no longer shifts any offsets, but it is preserved as the
// documented processing invariant.
func (p *Parser) Parse(source, text string) (*models.StatementInfo, error) {
	info := &models.StatementInfo{Source: source}

	cleaned := p.Clean.Clean(text)

	emission, err := findEmissionDate(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	info.EmissionDate = emission

	owner, spans, err := findAccounts(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	info.Owner = owner

	accounts := carveSlices(cleaned, spans)
	for i := len(accounts) - 1; i >= 0; i-- {
		p.parseAccount(accounts[i], emission, info)
	}
	info.Accounts = accounts

	return info, nil
}

func (p *Parser) parseAccount(a *models.AccountStatement, emission time.Time, info *models.StatementInfo) {
	warn := func(msg string) {
		msg = fmt.Sprintf("account %s: %s", a.Number, msg)
		p.Log.Warn().Str("source", info.Source).Msg(msg)
		info.Warnings = append(info.Warnings, msg)
	}

	a.Previous = findPreviousBalance(a.Text)
	if !a.Previous.Found {
		warn("no previous balance found, assuming 0,00")
	}
	a.New = findNewBalance(a.Text)
	if !a.New.Found {
		warn("no new balance found, assuming 0,00")
	}

	a.Transactions = extractTransactions(a.Text, warn)
	if len(a.Transactions) == 0 {
		warn("no transactions extracted")
	}

	for i := range a.Transactions {
		t := &a.Transactions[i]
		t.Account = a.Number
		date, err := InferYear(t.OpDate, emission)
		if err != nil {
			warn(err.Error())
			continue
		}
		t.Date = date
	}
}

func findEmissionDate(text string) (time.Time, error) {
	m := emissionDatePattern.FindString(text)
	if m == "" {
		return time.Time{}, ErrNoEmissionDate
	}
	t, err := time.Parse("02/01/2006", m)
	if err != nil {
		return time.Time{}, fmt.Errorf("emission date %q: %w", m, err)
	}
	return t, nil
}
