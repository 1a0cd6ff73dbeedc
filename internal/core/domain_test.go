package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecordHasCard(t *testing.T) {
	cases := []struct {
		card string
		ok   bool
	}{
		{"*5441", true},
		{"", false},
		{"nan", false},
		{"  ", false},
	}
	for i, tc := range cases {
		if got := (Record{CardNumber: tc.card}).HasCard(); got != tc.ok {
			t.Fatalf("case %d card=%q expected %v, got %v", i, tc.card, tc.ok, got)
		}
	}
}

func TestRecordRequire(t *testing.T) {
	r := Record{
		OperationDate: "01.01.2024 10:00:00",
		Amount:        decimal.NewNullDecimal(decimal.RequireFromString("-10")),
		Category:      "Супермаркеты",
	}
	if err := r.Require(FieldOperationDate, FieldAmount, FieldCategory); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	err := r.Require(FieldAmount, FieldRoundedAmount)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	var mf *MissingFieldError
	if !errors.As(err, &mf) || mf.Field != FieldRoundedAmount {
		t.Fatalf("expected missing %q, got %v", FieldRoundedAmount, err)
	}
}

func TestRecordIsExpense(t *testing.T) {
	if (Record{}).IsExpense() {
		t.Fatalf("record without amount must not be an expense")
	}
	if !(Record{Amount: ParseAmount("-0.01")}).IsExpense() {
		t.Fatalf("negative amount should be an expense")
	}
	if (Record{Amount: ParseAmount("0")}).IsExpense() {
		t.Fatalf("zero amount should not be an expense")
	}
}

func TestCanonicalCategory(t *testing.T) {
	cases := map[string]string{
		"супермаркеты":     "Супермаркеты",
		"ФАСТФУД":          "Фастфуд",
		"различные товары": "Различные товары",
		" transfers ":      "Transfers",
		"":                 "",
	}
	for in, want := range cases {
		if got := CanonicalCategory(in); got != want {
			t.Fatalf("CanonicalCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordJSONRoundTripKeepsColumnNames(t *testing.T) {
	r := Record{
		OperationDate: "31.12.2021 16:44:00",
		PaymentDate:   "31.12.2021",
		CardNumber:    "*7197",
		Status:        StatusOK,
		Amount:        ParseAmount("-160.89"),
		Currency:      "RUB",
		RoundedAmount: ParseAmount("160.89"),
		Category:      "Супермаркеты",
		Description:   "Колхоз",
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{FieldOperationDate, FieldCardNumber, FieldRoundedAmount, `"Сумма операции":-160.89`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %q in %s", key, data)
		}
	}
	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.CardNumber != r.CardNumber || !back.Amount.Decimal.Equal(r.Amount.Decimal) || back.Category != r.Category {
		t.Fatalf("unexpected record: %+v", back)
	}
}

func TestRecordJSONAcceptsStringAndNullAmounts(t *testing.T) {
	in := `{"Дата операции":"01.01.2024 12:00:00","Номер карты":null,"Сумма операции":"-1 065,90","Сумма операции с округлением":null}`
	var r Record
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.HasCard() {
		t.Fatalf("null card should be absent")
	}
	if !r.Amount.Valid || !r.Amount.Decimal.Equal(decimal.RequireFromString("-1065.90")) {
		t.Fatalf("unexpected amount: %+v", r.Amount)
	}
	if r.RoundedAmount.Valid {
		t.Fatalf("null rounded amount should be invalid")
	}
}
