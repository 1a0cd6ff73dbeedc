package core

import (
	"fmt"
	"strings"
	"time"
)

// Layouts used by the statement export and by report callers.
const (
	ReferenceLayout     = "2006-01-02 15:04:05"
	OperationDateLayout = "02.01.2006 15:04:05"
	PaymentDateLayout   = "02.01.2006"
	MonthTokenLayout    = "01.2006"
	YearMonthLayout     = "2006-01"
)

// ParseReference parses a "YYYY-MM-DD HH:MM:SS" reference timestamp.
func ParseReference(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ReferenceLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: reference %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// ParseOperationDate parses the "DD.MM.YYYY HH:MM:SS" operation timestamp
// in the location of loc.
func ParseOperationDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(OperationDateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: operation date %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// ParseYearMonth parses a "YYYY-MM" month selector.
func ParseYearMonth(s string) (year int, month time.Month, err error) {
	t, perr := time.Parse(YearMonthLayout, strings.TrimSpace(s))
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: month %q", ErrInvalidDateFormat, s)
	}
	return t.Year(), t.Month(), nil
}

// MonthToken returns the "MM.YYYY" token for the given year and month.
func MonthToken(year int, month time.Month) string {
	return fmt.Sprintf("%02d.%04d", int(month), year)
}

// MonthTokens returns n "MM.YYYY" tokens for the month of ref and the n-1
// calendar months before it, most recent first. Only year and month take
// part in the arithmetic, so the 31st of a month never spills over.
func MonthTokens(ref time.Time, n int) []string {
	if n < 1 {
		return nil
	}
	tokens := make([]string, 0, n)
	year, month := ref.Year(), int(ref.Month())
	for i := 0; i < n; i++ {
		tokens = append(tokens, MonthToken(year, time.Month(month)))
		month--
		if month < 1 {
			month = 12
			year--
		}
	}
	return tokens
}

// ContainsAnyToken reports whether s contains any of the tokens.
func ContainsAnyToken(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
