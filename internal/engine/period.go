package engine

import (
	"fmt"
	"time"

	"cardledger/internal/core"
)

// CurrentMonth returns the records whose operation date falls between the
// first day of ref's month and ref itself, both inclusive. Operation dates
// are read in ref's location. Records with an unreadable operation date are
// skipped.
func (e *Engine) CurrentMonth(records []core.Record, ref time.Time) []core.Record {
	out := make([]core.Record, 0)
	if ref.IsZero() {
		return out
	}
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	for i, r := range records {
		at, err := core.ParseOperationDate(r.OperationDate, ref.Location())
		if err != nil {
			e.skip(ReportPeriod, i, err)
			continue
		}
		if at.Before(start) || at.After(ref) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// TrailingMonths returns the records whose operation date string contains
// the "MM.YYYY" token of ref's month or of one of the n-1 months before it.
// Membership is by named month, so days after ref in its own month match.
func (e *Engine) TrailingMonths(records []core.Record, ref time.Time, n int) ([]core.Record, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: trailing months %d", core.ErrInvalidLimit, n)
	}
	out := make([]core.Record, 0)
	if ref.IsZero() {
		return out, nil
	}
	tokens := core.MonthTokens(ref, n)
	for _, r := range records {
		if core.ContainsAnyToken(r.OperationDate, tokens) {
			out = append(out, r)
		}
	}
	return out, nil
}
