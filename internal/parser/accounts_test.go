package parser

import (
	"strings"
	"testing"
)

const twoAccountStatement = `RELEVE DE COMPTES - 15/11/2014
Identifiant client JEAN DUPONT
MR JEAN DUPONT - COMPTE CHEQUE - 04 1234567 89
SOLDE PRECEDENT AU 15/10/14 56,05
18/10 CB CENTRE LECLERC  FACT 161014      13,40
MR JEAN DUPONT - LIVRET A - 04 7654321 01
SOLDE PRECEDENT AU 15/10/14 1 575,00
02/11 INTERETS ACQUIS 4,92
`

func TestFindAccountsClientID(t *testing.T) {
	owner, spans, err := findAccounts(twoAccountStatement)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "JEAN DUPONT" {
		t.Errorf("owner: got %q", owner)
	}
	if len(spans) != 2 {
		t.Fatalf("spans: got %d, want 2", len(spans))
	}
	if spans[0].number != "04123456789" {
		t.Errorf("spans[0].number: got %q", spans[0].number)
	}
	if spans[1].number != "04765432101" {
		t.Errorf("spans[1].number: got %q", spans[1].number)
	}
}

func TestFindAccountsCivilityFallback(t *testing.T) {
	// older layout: no "Identifiant client" line at all
	text := `RELEVE - 15/11/2014
MLLE MARIE DURAND
MLLE MARIE DURAND - COMPTE CHEQUE - 04 1111111 11
18/10 CB LECLERC 13,40
`
	owner, spans, err := findAccounts(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "MARIE DURAND" {
		t.Errorf("owner: got %q", owner)
	}
	if len(spans) != 1 {
		t.Fatalf("spans: got %d, want 1", len(spans))
	}
}

func TestFindAccountsOwnerNotFound(t *testing.T) {
	_, _, err := findAccounts("no owner anywhere\n18/10 CB LECLERC 13,40")
	if err != ErrOwnerNotFound {
		t.Errorf("got %v, want ErrOwnerNotFound", err)
	}
}

func TestFindAccountsNoHeaders(t *testing.T) {
	_, _, err := findAccounts("Identifiant client JEAN DUPONT\nno headers follow")
	if err != ErrNoAccounts {
		t.Errorf("got %v, want ErrNoAccounts", err)
	}
}

func TestCarveSlicesCoverage(t *testing.T) {
	_, spans, err := findAccounts(twoAccountStatement)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slices := carveSlices(twoAccountStatement, spans)
	if len(slices) != 2 {
		t.Fatalf("slices: got %d, want 2", len(slices))
	}

	// slices must be mutually exclusive and, with their headers, rebuild the
	// statement body from the first header to the end
	var rebuilt strings.Builder
	for _, s := range slices {
		rebuilt.WriteString(s.Header)
		rebuilt.WriteString(s.Text)
	}
	want := twoAccountStatement[spans[0].start:]
	if rebuilt.String() != want {
		t.Errorf("coverage broken:\ngot  %q\nwant %q", rebuilt.String(), want)
	}

	if !strings.Contains(slices[0].Text, "CENTRE LECLERC") {
		t.Error("first slice missing its transaction")
	}
	if strings.Contains(slices[0].Text, "INTERETS") {
		t.Error("first slice leaked into the second account")
	}
	if !strings.Contains(slices[1].Text, "INTERETS") {
		t.Error("second slice missing its transaction")
	}
}
