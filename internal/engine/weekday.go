package engine

import (
	"time"

	"cardledger/internal/core"

	"github.com/shopspring/decimal"
)

// SpendingByWeekday averages successful expenses per weekday over the month
// of ref and the two months before it. Keys are English weekday names; days
// without expenses are absent.
func (e *Engine) SpendingByWeekday(records []core.Record, ref time.Time) core.WeekdaySpend {
	out := core.WeekdaySpend{}
	if ref.IsZero() {
		return out
	}

	sums := make(map[time.Weekday]decimal.Decimal)
	counts := make(map[time.Weekday]int)
	for _, day := range e.weekdays(ReportWeekday, records, ref) {
		if _, ok := sums[day.weekday]; !ok {
			sums[day.weekday] = decimal.Zero
		}
		sums[day.weekday] = sums[day.weekday].Add(day.amount)
		counts[day.weekday]++
	}
	for wd, sum := range sums {
		out[wd.String()] = average(sum, counts[wd])
	}
	return out
}

// SpendingByWorkday averages successful expenses on working days and on
// weekends over the same three-month window as SpendingByWeekday. An empty
// side averages to zero.
func (e *Engine) SpendingByWorkday(records []core.Record, ref time.Time) core.WorkdaySpend {
	if ref.IsZero() {
		return core.WorkdaySpend{}
	}

	workSum, weekendSum := decimal.Zero, decimal.Zero
	var workN, weekendN int
	for _, day := range e.weekdays(ReportWorkday, records, ref) {
		switch day.weekday {
		case time.Saturday, time.Sunday:
			weekendSum = weekendSum.Add(day.amount)
			weekendN++
		default:
			workSum = workSum.Add(day.amount)
			workN++
		}
	}
	return core.WorkdaySpend{
		AvgWorkday: average(workSum, workN),
		AvgWeekend: average(weekendSum, weekendN),
	}
}

type daySpend struct {
	weekday time.Weekday
	amount  decimal.Decimal
}

func (e *Engine) weekdays(report string, records []core.Record, ref time.Time) []daySpend {
	tokens := core.MonthTokens(ref, CategoryWindowMonths)
	var out []daySpend
	for _, m := range e.okExpensesIn(report, records, tokens, nil) {
		at, err := core.ParseOperationDate(m.record.OperationDate, ref.Location())
		if err != nil {
			e.skip(report, m.index, err)
			continue
		}
		out = append(out, daySpend{weekday: at.Weekday(), amount: m.amount})
	}
	return out
}
