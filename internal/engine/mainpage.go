package engine

import (
	"time"

	"cardledger/internal/core"
)

// MainPage builds the dashboard for ref: the greeting for its time of day,
// plus the card rollup and top transactions of its month so far.
func (e *Engine) MainPage(records []core.Record, ref time.Time) core.MainPage {
	current := e.CurrentMonth(records, ref)
	return core.MainPage{
		Greeting:        Greet(ref),
		Cards:           e.Cards(current),
		TopTransactions: e.TopTransactions(current),
	}
}
