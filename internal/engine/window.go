package engine

import (
	"cardledger/internal/core"

	"github.com/shopspring/decimal"
)

type windowSpend struct {
	index  int
	record core.Record
	amount decimal.Decimal
}

// okExpensesIn returns the successful expenses whose operation date carries
// one of tokens and that satisfy keep, paired with their rounded magnitude.
func (e *Engine) okExpensesIn(report string, records []core.Record, tokens []string, keep func(core.Record) bool) []windowSpend {
	var out []windowSpend
	for i, r := range records {
		if err := r.Require(core.FieldAmount, core.FieldOperationDate); err != nil {
			e.skip(report, i, err)
			continue
		}
		if r.Status != core.StatusOK || !r.IsExpense() {
			continue
		}
		if keep != nil && !keep(r) {
			continue
		}
		if !core.ContainsAnyToken(r.OperationDate, tokens) {
			continue
		}
		amount, err := spent(r)
		if err != nil {
			e.skip(report, i, err)
			continue
		}
		out = append(out, windowSpend{index: i, record: r, amount: amount})
	}
	return out
}

func average(sum decimal.Decimal, n int) float64 {
	if n == 0 {
		return 0
	}
	return core.Float(sum.Div(decimal.NewFromInt(int64(n))))
}
