package engine

import (
	"sort"

	"cardledger/internal/core"
)

// TopLimit is the number of ranked positions TopTransactions scans.
const TopLimit = 5

// TopTransactions ranks records by amount, most negative first, and scans
// at most TopLimit positions. The scan stops at the first position that is
// not an expense, so an income inside the first five cuts the result short
// even if expenses follow it further down the ranking. An expense without a
// rounded amount uses up its position and is skipped with a warning.
func (e *Engine) TopTransactions(records []core.Record) []core.TopTransaction {
	type ranked struct {
		index int
		r     core.Record
	}

	candidates := make([]ranked, 0, len(records))
	for i, r := range records {
		if !r.Amount.Valid {
			e.skip(ReportTop, i, &core.MissingFieldError{Field: core.FieldAmount})
			continue
		}
		candidates = append(candidates, ranked{index: i, r: r})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].r.Amount.Decimal.LessThan(candidates[j].r.Amount.Decimal)
	})

	limit := min(TopLimit, len(candidates))
	out := make([]core.TopTransaction, 0, limit)
	for _, c := range candidates[:limit] {
		if !c.r.IsExpense() {
			break
		}
		if !c.r.RoundedAmount.Valid {
			e.skip(ReportTop, c.index, &core.MissingFieldError{Field: core.FieldRoundedAmount})
			continue
		}
		out = append(out, core.TopTransaction{
			Date:        c.r.PaymentDate,
			Amount:      core.Float(c.r.RoundedAmount.Decimal),
			Category:    c.r.Category,
			Description: c.r.Description,
		})
	}
	return out
}
