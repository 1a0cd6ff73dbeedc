package core

// CardSummary is the per-card spend and cashback rollup.
type CardSummary struct {
	LastDigits string  `json:"last_digits"`
	TotalSpent float64 `json:"total_spent"`
	Cashback   float64 `json:"cashback"`
}

// TopTransaction is one entry of the largest-expenses widget.
type TopTransaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// CategorySpend maps a canonical category name to its total spend.
type CategorySpend map[string]float64

// InvestmentProjection is the hypothetical round-up savings for a month.
type InvestmentProjection struct {
	Month        string  `json:"month"`
	RoundingUnit int64   `json:"rounding_unit"`
	Amount       float64 `json:"amount"`
}

// WeekdaySpend maps an English weekday name to the average expense.
type WeekdaySpend map[string]float64

// WorkdaySpend holds average expenses on working days and weekends.
type WorkdaySpend struct {
	AvgWorkday float64 `json:"avg_workday_spending"`
	AvgWeekend float64 `json:"avg_weekend_spending"`
}

// MainPage is the dashboard payload.
type MainPage struct {
	Greeting        Greeting         `json:"greeting"`
	Cards           []CardSummary    `json:"cards"`
	TopTransactions []TopTransaction `json:"top_transactions"`
}

// Greeting is the time-of-day salutation shown on the dashboard.
type Greeting string

const (
	GreetingNight     Greeting = "Доброй ночи"
	GreetingMorning   Greeting = "Доброе утро"
	GreetingAfternoon Greeting = "Добрый день"
	GreetingEvening   Greeting = "Добрый вечер"
)
