package core

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// recordJSON mirrors the statement columns. Amounts stay raw on the way in
// so both numeric and string cells ("-160,89") are accepted.
type recordJSON struct {
	OperationDate string          `json:"Дата операции"`
	PaymentDate   string          `json:"Дата платежа"`
	CardNumber    *string         `json:"Номер карты"`
	Status        string          `json:"Статус"`
	Amount        json.RawMessage `json:"Сумма операции"`
	Currency      string          `json:"Валюта операции,omitempty"`
	RoundedAmount json.RawMessage `json:"Сумма операции с округлением"`
	Category      string          `json:"Категория"`
	Description   string          `json:"Описание"`
}

// MarshalJSON writes the record using the statement column names. Missing
// amounts and absent cards are written as null.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		OperationDate: r.OperationDate,
		PaymentDate:   r.PaymentDate,
		Status:        string(r.Status),
		Currency:      r.Currency,
		Amount:        numberOrNil(r.Amount),
		RoundedAmount: numberOrNil(r.RoundedAmount),
		Category:      r.Category,
		Description:   r.Description,
	}
	if r.HasCard() {
		card := r.CardNumber
		out.CardNumber = &card
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a record keyed by statement column names.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Record{
		OperationDate: in.OperationDate,
		PaymentDate:   in.PaymentDate,
		Status:        Status(strings.TrimSpace(in.Status)),
		Currency:      in.Currency,
		Amount:        amountFromNumber(in.Amount),
		RoundedAmount: amountFromNumber(in.RoundedAmount),
		Category:      in.Category,
		Description:   in.Description,
	}
	if in.CardNumber != nil {
		r.CardNumber = *in.CardNumber
	}
	return nil
}

func numberOrNil(d decimal.NullDecimal) json.RawMessage {
	if !d.Valid {
		return nil
	}
	return json.RawMessage(d.Decimal.String())
}

func amountFromNumber(raw json.RawMessage) decimal.NullDecimal {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.NullDecimal{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseAmount(s)
	}
	return ParseAmount(string(raw))
}
