package core

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	StatusOK     Status = "OK"
	StatusFailed Status = "FAILED"

	// NoCard is the marker the statement export writes when a record has no card.
	NoCard = "nan"
)

// Column names of the bank statement export. They double as JSON keys when
// records are written back out, so consumers of the search reports see the
// same shape they fed in.
const (
	FieldOperationDate = "Дата операции"
	FieldPaymentDate   = "Дата платежа"
	FieldCardNumber    = "Номер карты"
	FieldStatus        = "Статус"
	FieldAmount        = "Сумма операции"
	FieldCurrency      = "Валюта операции"
	FieldRoundedAmount = "Сумма операции с округлением"
	FieldCategory      = "Категория"
	FieldDescription   = "Описание"
)

type (
	Status string

	// Record is a single ledger entry as produced by a record source.
	// Amounts are nullable: a Valid=false amount means the column was
	// absent or unparsable for that row.
	Record struct {
		OperationDate string
		PaymentDate   string
		CardNumber    string
		Status        Status
		Amount        decimal.NullDecimal
		Currency      string
		RoundedAmount decimal.NullDecimal
		Category      string
		Description   string
	}
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrMissingField      = errors.New("missing field")
	ErrInvalidLimit      = errors.New("invalid limit")
)

// MissingFieldError reports which column a record lacked.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// HasCard reports whether the record carries a usable card number.
func (r Record) HasCard() bool {
	c := strings.TrimSpace(r.CardNumber)
	return c != "" && c != NoCard
}

// IsExpense reports whether the record moved money out of the account.
// Records without an amount are never expenses.
func (r Record) IsExpense() bool {
	return r.Amount.Valid && r.Amount.Decimal.IsNegative()
}

// Require checks that every named field is present on the record and
// returns a *MissingFieldError for the first one that is not.
func (r Record) Require(fields ...string) error {
	for _, f := range fields {
		if !r.has(f) {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

func (r Record) has(field string) bool {
	switch field {
	case FieldOperationDate:
		return strings.TrimSpace(r.OperationDate) != ""
	case FieldPaymentDate:
		return strings.TrimSpace(r.PaymentDate) != ""
	case FieldCardNumber:
		return strings.TrimSpace(r.CardNumber) != ""
	case FieldStatus:
		return strings.TrimSpace(string(r.Status)) != ""
	case FieldAmount:
		return r.Amount.Valid
	case FieldCurrency:
		return strings.TrimSpace(r.Currency) != ""
	case FieldRoundedAmount:
		return r.RoundedAmount.Valid
	case FieldCategory:
		return strings.TrimSpace(r.Category) != ""
	case FieldDescription:
		return strings.TrimSpace(r.Description) != ""
	default:
		return false
	}
}

// CanonicalCategory returns the category with its first letter upper-cased
// and the rest lower-cased, the form used as report keys.
func CanonicalCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
