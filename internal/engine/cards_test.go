package engine

import (
	"reflect"
	"testing"

	"cardledger/internal/core"
)

func TestCards(t *testing.T) {
	tests := []struct {
		name    string
		records []core.Record
		want    []core.CardSummary
	}{
		{
			name:    "empty input",
			records: nil,
			want:    []core.CardSummary{},
		},
		{
			name: "three cards in first-seen order",
			records: []core.Record{
				record("*5441", "10.01.2021 12:00:00", "-87068.0", "87068.0"),
				record("*7197", "11.01.2021 12:00:00", "-6753.95", "6753.95"),
				record("*4556", "12.01.2021 12:00:00", "-250.0", "250.0"),
			},
			want: []core.CardSummary{
				{LastDigits: "5441", TotalSpent: 87068.0, Cashback: 870.68},
				{LastDigits: "7197", TotalSpent: 6753.95, Cashback: 67.54},
				{LastDigits: "4556", TotalSpent: 250.0, Cashback: 2.5},
			},
		},
		{
			name: "income only card is absent",
			records: []core.Record{
				record("*1111", "10.01.2021 12:00:00", "1000", "1000"),
				record("*2222", "10.01.2021 12:00:00", "-10", "10"),
				record("*1111", "11.01.2021 12:00:00", "0", "0"),
			},
			want: []core.CardSummary{
				{LastDigits: "2222", TotalSpent: 10, Cashback: 0.1},
			},
		},
		{
			name: "records without a card are left out",
			records: []core.Record{
				record("nan", "10.01.2021 12:00:00", "-100", "100"),
				record("", "10.01.2021 12:00:00", "-100", "100"),
				record("*3333", "10.01.2021 12:00:00", "-100", "100"),
			},
			want: []core.CardSummary{
				{LastDigits: "3333", TotalSpent: 100, Cashback: 1},
			},
		},
		{
			name: "repeated card accumulates and keeps its position",
			records: []core.Record{
				record("*1111", "10.01.2021 12:00:00", "-0.333", "0.333"),
				record("*2222", "10.01.2021 12:00:00", "-5", "5"),
				record("*1111", "11.01.2021 12:00:00", "-0.333", "0.333"),
			},
			want: []core.CardSummary{
				{LastDigits: "1111", TotalSpent: 0.67, Cashback: 0.01},
				{LastDigits: "2222", TotalSpent: 5, Cashback: 0.05},
			},
		},
		{
			name: "identifier width is kept apart from the first character",
			records: []core.Record{
				record("*12", "10.01.2021 12:00:00", "-1", "1"),
				record("X123456", "10.01.2021 12:00:00", "-1", "1"),
			},
			want: []core.CardSummary{
				{LastDigits: "12", TotalSpent: 1, Cashback: 0.01},
				{LastDigits: "123456", TotalSpent: 1, Cashback: 0.01},
			},
		},
		{
			name: "records missing amounts are skipped",
			records: []core.Record{
				{CardNumber: "*9999", OperationDate: "10.01.2021 12:00:00"},
				{CardNumber: "*9999", Amount: core.ParseAmount("-10")},
				record("*9999", "10.01.2021 12:00:00", "-10", "10"),
			},
			want: []core.CardSummary{
				{LastDigits: "9999", TotalSpent: 10, Cashback: 0.1},
			},
		},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Cards(tt.records)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Cards() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
