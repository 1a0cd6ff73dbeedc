// Package engine derives the financial summaries shown on the dashboard and
// in reports from an already materialized batch of ledger records.
//
// Every aggregator is a read-only pass over its input. Records that lack a
// field an aggregator needs are skipped with a warning instead of failing
// the batch; malformed call parameters abort the call with an error.
package engine

import (
	"context"

	"cardledger/internal/core"
	"cardledger/internal/log"

	"github.com/shopspring/decimal"
)

// Report names used in logs and by the report sink.
const (
	ReportMainPage   = "main_page"
	ReportPeriod     = "period"
	ReportCards      = "cards"
	ReportTop        = "top_transactions"
	ReportCategory   = "spending_by_category"
	ReportWeekday    = "spending_by_weekday"
	ReportWorkday    = "spending_by_workday"
	ReportInvestment = "investment_jar"
)

// CategoryWindowMonths is the number of named months the category, weekday
// and workday reports look back over.
const CategoryWindowMonths = 3

// DefaultRoundingUnit is the investment jar rounding step.
const DefaultRoundingUnit int64 = 50

// Engine holds the logger used for per-record warnings. It keeps no other
// state, so one Engine can serve concurrent callers.
type Engine struct {
	logger *log.StructuredLogger
}

// New creates an Engine. A nil logger discards warnings.
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Discard()
	}
	return &Engine{logger: log.NewStructuredLogger(logger.WithComponent(log.ComponentEngine))}
}

func (e *Engine) skip(report string, index int, err error) {
	e.logger.LogRecordSkipped(context.Background(), report, index, err)
}

// spent returns the rounded expense magnitude of r.
func spent(r core.Record) (decimal.Decimal, error) {
	if !r.RoundedAmount.Valid {
		return decimal.Zero, &core.MissingFieldError{Field: core.FieldRoundedAmount}
	}
	return r.RoundedAmount.Decimal.Abs(), nil
}
