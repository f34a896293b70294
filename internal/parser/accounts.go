package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/cep-statement-ledger/internal/models"
)

// headerSpan is one account header occurrence in the statement text.
type headerSpan struct {
	start, end int
	number     string
}

// accountHeaderPattern builds the per-owner header matcher: civility title,
// owner name, a separator, free text, another separator, and the trailing
// account identifier token.
func accountHeaderPattern(owner string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^(?:MR|MME|MLLE) ` + regexp.QuoteMeta(owner) + ` - .* - ([^(\n]*)$`)
}

var nonDigits = regexp.MustCompile(`\D`)

// findAccounts tries each owner strategy in order and returns the first
// owner whose name matches at least one account header, along with the
// header spans in document order.
func findAccounts(text string) (string, []headerSpan, error) {
	ownerSeen := false
	for _, strat := range ownerStrategies {
		owner, ok := strat.Attempt(text)
		if !ok {
			continue
		}
		ownerSeen = true
		if spans := findHeaderSpans(text, owner); len(spans) > 0 {
			return owner, spans, nil
		}
	}
	if !ownerSeen {
		return "", nil, ErrOwnerNotFound
	}
	return "", nil, ErrNoAccounts
}

// findHeaderSpans collects every account header occurrence in a single pass
// over the original text. Spans are immutable offsets into that text, so
// deriving one slice never disturbs the boundaries of another.
func findHeaderSpans(text, owner string) []headerSpan {
	pat := accountHeaderPattern(owner)
	var spans []headerSpan
	for _, m := range pat.FindAllStringSubmatchIndex(text, -1) {
		number := nonDigits.ReplaceAllString(text[m[2]:m[3]], "")
		if number == "" {
			continue
		}
		spans = append(spans, headerSpan{start: m[0], end: m[1], number: number})
	}
	return spans
}

// carveSlices derives one account slice per header: each account's text runs
// from the end of its header line to the start of the next header (or end of
// text). Slices are mutually exclusive and, concatenated in document order
// with their headers, reproduce the statement body from the first header on.
func carveSlices(text string, spans []headerSpan) []*models.AccountStatement {
	out := make([]*models.AccountStatement, 0, len(spans))
	for i, sp := range spans {
		end := len(text)
		if i+1 < len(spans) {
			end = spans[i+1].start
		}
		out = append(out, &models.AccountStatement{
			Number: sp.number,
			Header: strings.TrimSpace(text[sp.start:sp.end]),
			Text:   text[sp.end:end],
		})
	}
	return out
}
