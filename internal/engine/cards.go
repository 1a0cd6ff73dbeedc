package engine

import (
	"strings"

	"cardledger/internal/core"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Cards rolls expenses up per card. Summaries come out in the order each
// card is first seen. Records without a card are left out; so are cards
// that only received income.
func (e *Engine) Cards(records []core.Record) []core.CardSummary {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for i, r := range records {
		if !r.Amount.Valid {
			e.skip(ReportCards, i, &core.MissingFieldError{Field: core.FieldAmount})
			continue
		}
		if !r.IsExpense() || !r.HasCard() {
			continue
		}
		amount, err := spent(r)
		if err != nil {
			e.skip(ReportCards, i, err)
			continue
		}
		card := strings.TrimSpace(r.CardNumber)
		if _, ok := totals[card]; !ok {
			totals[card] = decimal.Zero
			order = append(order, card)
		}
		totals[card] = totals[card].Add(amount)
	}

	out := make([]core.CardSummary, 0, len(order))
	for _, card := range order {
		total := core.Round2(totals[card])
		out = append(out, core.CardSummary{
			LastDigits: maskCard(card),
			TotalSpent: total.InexactFloat64(),
			Cashback:   core.Float(total.Div(hundred)),
		})
	}
	return out
}

// maskCard drops the leading character of the card identifier.
func maskCard(card string) string {
	runes := []rune(card)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[1:])
}
