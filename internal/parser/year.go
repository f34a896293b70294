package parser

import (
	"fmt"
	"time"
)

// InferYear resolves a dd/mm operation date against the statement's emission
// date. Months at or before the emission month belong to the emission year;
// later months belong to the year before, which covers statements emitted in
// January that still list December operations.
func InferYear(opDate string, emission time.Time) (time.Time, error) {
	// Year 0 is a leap year, so 29/02 survives the intermediate parse.
	t, err := time.Parse("02/01", opDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("operation date %q: %w", opDate, err)
	}
	year := emission.Year()
	if t.Month() > emission.Month() {
		year--
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
