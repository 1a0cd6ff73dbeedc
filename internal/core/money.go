// Package core provides the ledger record model and the money and date
// helpers shared by sources, the engine and the report sink.
//
// This file contains functions for parsing monetary amounts from statement
// cells and for the two-decimal rounding policy applied to every total.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a statement cell to a signed decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, spaces
// and non-breaking spaces as thousands separators, and the unicode minus
// sign some exports use. Empty cells and the "nan" marker yield an invalid
// NullDecimal rather than an error so that callers can treat the column as
// missing.
//
// Examples:
//
//	ParseAmount("-160,89")    -> -160.89
//	ParseAmount("1 234.5")    -> 1234.5
//	ParseAmount("−3000")      -> -3000
//	ParseAmount("nan")        -> invalid
func ParseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NoCard) {
		return decimal.NullDecimal{}
	}
	s = strings.NewReplacer(
		" ", "",
		"\u00a0", "",
		"\u202f", "",
		"\u2212", "-",
		",", ".",
	).Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Float returns the two-decimal float representation used in JSON reports.
func Float(d decimal.Decimal) float64 {
	return Round2(d).InexactFloat64()
}
