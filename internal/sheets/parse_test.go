package sheets

import (
	"errors"
	"strings"
	"testing"

	"cardledger/internal/core"
)

func TestParseRows(t *testing.T) {
	values := [][]string{
		{"\ufeffДата операции", "Дата платежа", "Номер карты", "Статус", "Сумма операции", "Валюта операции", "Сумма операции с округлением", "Категория", "Описание", "Бонусы"},
		{"31.12.2021 16:44:00", "31.12.2021", "*7197", "OK", "-160,89", "RUB", "160,89", "Супермаркеты", "Колхоз", "3"},
		{"", "", "", "", "", "", "", "", "", ""},
		{"30.12.2021 17:50:30", "30.12.2021", "", "OK", "5046.00", "RUB", "5046.00", "Пополнения", "Пополнение через Газпромбанк"},
		{"29.12.2021 22:32:24", "30.12.2021", "nan", "FAILED", "nan"},
	}

	got, err := ParseRows(values)
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ParseRows() returned %d records, want 3", len(got))
	}

	first := got[0]
	if first.OperationDate != "31.12.2021 16:44:00" || first.PaymentDate != "31.12.2021" {
		t.Errorf("dates = %q/%q", first.OperationDate, first.PaymentDate)
	}
	if first.CardNumber != "*7197" || first.Status != core.StatusOK || first.Currency != "RUB" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Amount.Decimal.String() != "-160.89" || first.RoundedAmount.Decimal.String() != "160.89" {
		t.Errorf("amounts = %s/%s", first.Amount.Decimal, first.RoundedAmount.Decimal)
	}
	if first.Category != "Супермаркеты" || first.Description != "Колхоз" {
		t.Errorf("category/description = %q/%q", first.Category, first.Description)
	}

	if got[1].HasCard() {
		t.Errorf("empty card cell should have no card")
	}

	short := got[2]
	if short.HasCard() || short.Amount.Valid || short.RoundedAmount.Valid || short.Description != "" {
		t.Errorf("short row should keep missing cells missing: %+v", short)
	}
	if short.Status != core.StatusFailed {
		t.Errorf("Status = %q, want FAILED", short.Status)
	}
}

func TestParseRowsHeaderErrors(t *testing.T) {
	if _, err := ParseRows(nil); !errors.Is(err, ErrNoHeader) {
		t.Errorf("ParseRows(nil) error = %v, want ErrNoHeader", err)
	}

	_, err := ParseRows([][]string{{"Дата платежа", "Описание"}})
	if err == nil {
		t.Fatal("expected error for missing required columns")
	}
	if !strings.Contains(err.Error(), "unexpected statement header") ||
		!strings.Contains(err.Error(), core.FieldAmount) {
		t.Errorf("error should name the missing columns, got: %v", err)
	}
}

func TestParseRowsColumnOrder(t *testing.T) {
	values := [][]string{
		{"Описание", "Сумма операции", "Дата операции"},
		{"Магнит", "-10", "01.01.2021 10:00:00"},
	}

	got, err := ParseRows(values)
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(got) != 1 || got[0].Description != "Магнит" || got[0].OperationDate != "01.01.2021 10:00:00" {
		t.Errorf("ParseRows() = %+v", got)
	}
}

func TestToStrings(t *testing.T) {
	got := ToStrings([]interface{}{" a ", 12.5, nil, -3})
	want := []string{"a", "12.5", "", "-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToStrings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
