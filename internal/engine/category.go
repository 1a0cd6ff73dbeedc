package engine

import (
	"time"

	"cardledger/internal/core"

	"github.com/shopspring/decimal"
)

// SpendingByCategory totals successful expenses of one category over the
// month of ref and the two months before it. The category is matched in its
// capitalized form and is the single key of the result. A zero ref or a
// category with no matching expenses gives an empty result.
func (e *Engine) SpendingByCategory(records []core.Record, category string, ref time.Time) core.CategorySpend {
	out := core.CategorySpend{}
	want := core.CanonicalCategory(category)
	if ref.IsZero() || want == "" {
		return out
	}

	tokens := core.MonthTokens(ref, CategoryWindowMonths)
	matches := e.okExpensesIn(ReportCategory, records, tokens, func(r core.Record) bool {
		return core.CanonicalCategory(r.Category) == want
	})
	if len(matches) == 0 {
		return out
	}

	total := decimal.Zero
	for _, m := range matches {
		total = total.Add(m.amount)
	}
	out[want] = core.Float(total)
	return out
}
