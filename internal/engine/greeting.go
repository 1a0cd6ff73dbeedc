package engine

import (
	"time"

	"cardledger/internal/core"
)

// Greet picks the salutation for the time of day of t. The calendar date is
// ignored.
func Greet(t time.Time) core.Greeting {
	switch h := t.Hour(); {
	case h < 6:
		return core.GreetingNight
	case h < 12:
		return core.GreetingMorning
	case h < 18:
		return core.GreetingAfternoon
	default:
		return core.GreetingEvening
	}
}
