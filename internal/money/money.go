// Package money parses and renders French-locale statement amounts.
// Statements print amounts with a comma decimal separator and space-grouped
// thousands ("1 026,44"); reconciliation needs them exact to the cent, so
// everything is carried as decimal values, never binary floats.
package money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches the lexical shape of a statement amount: digit
// groups optionally separated by spaces, a comma, exactly two decimals.
var amountPattern = regexp.MustCompile(`^\d+(?:[ \x{00A0}]\d+)*,\d{2}$`)

// Parse converts an amount token like "13,40" or "1 026,44" to an exact
// decimal. A token that does not match the expected shape is an error,
// never a silently coerced zero.
func Parse(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	if !amountPattern.MatchString(t) {
		return decimal.Zero, fmt.Errorf("malformed amount %q", s)
	}
	t = strings.NewReplacer(" ", "", " ", "").Replace(t)
	t = strings.Replace(t, ",", ".", 1)
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed amount %q: %w", s, err)
	}
	return d, nil
}

// Format is the inverse of Parse: it renders a decimal back into the
// comma-decimal, space-grouped textual form.
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot+1:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, " ") + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
