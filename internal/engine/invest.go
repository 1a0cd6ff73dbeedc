package engine

import (
	"fmt"
	"strings"

	"cardledger/internal/core"

	"github.com/shopspring/decimal"
)

// InvestmentJar projects how much would have been saved in month
// ("YYYY-MM") if every expense had been rounded up to the next multiple of
// unit. An expense that already is a multiple adds nothing.
func (e *Engine) InvestmentJar(month string, records []core.Record, unit int64) (core.InvestmentProjection, error) {
	if unit <= 0 {
		return core.InvestmentProjection{}, fmt.Errorf("%w: rounding unit %d", core.ErrInvalidLimit, unit)
	}
	year, m, err := core.ParseYearMonth(month)
	if err != nil {
		return core.InvestmentProjection{}, err
	}

	token := core.MonthToken(year, m)
	step := decimal.NewFromInt(unit)
	total := decimal.Zero
	for i, r := range records {
		if !r.Amount.Valid {
			e.skip(ReportInvestment, i, &core.MissingFieldError{Field: core.FieldAmount})
			continue
		}
		if !r.IsExpense() || !strings.Contains(r.OperationDate, token) {
			continue
		}
		rest := r.Amount.Decimal.Abs().Mod(step)
		if rest.IsZero() {
			continue
		}
		total = total.Add(step.Sub(rest))
	}

	return core.InvestmentProjection{
		Month:        fmt.Sprintf("%04d-%02d", year, int(m)),
		RoundingUnit: unit,
		Amount:       core.Float(total),
	}, nil
}
