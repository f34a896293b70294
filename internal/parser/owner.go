package parser

import (
	"regexp"
	"strings"
)

// OwnerStrategy attempts to locate the statement owner's name. The layout
// changed over the life of the statement corpus, so strategies are tried in
// order and the first one whose owner yields at least one account header wins.
type OwnerStrategy interface {
	Name() string
	Attempt(text string) (string, bool)
}

// ownerStrategies is the fixed fallback order. No confidence scoring: the
// account-header count is the only signal used to accept a strategy's result.
var ownerStrategies = []OwnerStrategy{
	clientIDStrategy{},
	civilityStrategy{},
}

// clientIDStrategy matches the newer layout: "Identifiant client" followed
// by the free-text owner name.
type clientIDStrategy struct{}

var clientIDPattern = regexp.MustCompile(`Identifiant client[ \t]+([^\n\d]+)`)

func (clientIDStrategy) Name() string { return "client-id" }

func (clientIDStrategy) Attempt(text string) (string, bool) {
	m := clientIDPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	owner := strings.TrimSpace(m[1])
	return owner, owner != ""
}

// civilityStrategy matches the older layout: a civility title and the owner
// name alone on a line.
type civilityStrategy struct{}

var civilityPattern = regexp.MustCompile(`(?m)^(?:MR|MME|MLLE)\s+([^\n-]+?)\s*$`)

func (civilityStrategy) Name() string { return "civility" }

func (civilityStrategy) Attempt(text string) (string, bool) {
	m := civilityPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	owner := strings.TrimSpace(m[1])
	return owner, owner != ""
}
