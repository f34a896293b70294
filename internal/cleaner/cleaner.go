// Package cleaner strips layout noise from extracted statement text before
// the transaction grammar runs over it.
package cleaner

import "strings"

// DefaultMaxLineLen is the default cutoff beyond which a line is treated as
// wrapped boilerplate (legal mentions, marketing) rather than data.
const DefaultMaxLineLen = 200

// DefaultBoilerplate lists phrases whose lines carry no transactional
// information: page banners, column headers, repeated footers.
var DefaultBoilerplate = []string{
	"RELEVE DE VOS COMPTES",
	"RELEVES DE VOS COMPTES",
	"DETAIL DES OPERATIONS",
	"CAISSE D'EPARGNE",
	"www.caisse-epargne.fr",
	"Date Valeur Opérations Débit Crédit",
	"suite au verso",
}

// Options tunes the cleaning pass.
type Options struct {
	MaxLineLen  int
	Boilerplate []string
}

// Default returns the standard cleaning options.
func Default() Options {
	return Options{
		MaxLineLen:  DefaultMaxLineLen,
		Boilerplate: DefaultBoilerplate,
	}
}

// Clean removes noise lines and trailing whitespace, preserving the order of
// surviving lines. Cleaning is idempotent: cleaning cleaned text is a no-op.
func (o Options) Clean(text string) string {
	maxLen := o.MaxLineLen
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLen
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) > maxLen {
			continue
		}
		line = strings.TrimRight(line, " \t")
		if visibleLen(line) <= 2 {
			continue
		}
		if o.matchesBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Clean applies the default options.
func Clean(text string) string {
	return Default().Clean(text)
}

func (o Options) matchesBoilerplate(line string) bool {
	for _, phrase := range o.Boilerplate {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}

func visibleLen(line string) int {
	n := 0
	for _, r := range line {
		if r != ' ' && r != '\t' && r != '\r' {
			n++
		}
	}
	return n
}
