package engine

import (
	"reflect"
	"testing"
	"time"

	"cardledger/internal/core"
)

func categoryRecord(opDate string, status core.Status, amount, rounded, category string) core.Record {
	r := record("*1", opDate, amount, rounded)
	r.Status = status
	r.Category = category
	return r
}

func TestSpendingByCategory(t *testing.T) {
	records := []core.Record{
		categoryRecord("15.01.2021 10:00:00", core.StatusOK, "-100", "100", "Супермаркеты"),
		categoryRecord("20.03.2021 10:00:00", core.StatusOK, "-50.5", "50.5", "супермаркеты"),
		categoryRecord("01.02.2021 10:00:00", core.StatusFailed, "-1000", "1000", "Супермаркеты"),
		categoryRecord("02.02.2021 10:00:00", core.StatusOK, "300", "300", "Супермаркеты"),
		categoryRecord("31.12.2020 10:00:00", core.StatusOK, "-700", "700", "Супермаркеты"),
		categoryRecord("03.02.2021 10:00:00", core.StatusOK, "-80", "80", "Фастфуд"),
		{OperationDate: "04.02.2021 10:00:00", Status: core.StatusOK, Category: "Супермаркеты"},
		categoryRecord("05.02.2021 10:00:00", core.StatusOK, "-0.125", "0.125", "СУПЕРМАРКЕТЫ"),
	}
	ref := at("2021-03-15 12:00:00")

	tests := []struct {
		name     string
		category string
		ref      time.Time
		want     core.CategorySpend
	}{
		{
			name:     "coarse three month window",
			category: "СУПЕРМАРКЕТЫ",
			ref:      ref,
			want:     core.CategorySpend{"Супермаркеты": 150.63},
		},
		{
			name:     "window crossing the year boundary",
			category: "супермаркеты",
			ref:      at("2021-02-01 00:00:00"),
			want:     core.CategorySpend{"Супермаркеты": 800.13},
		},
		{
			name:     "other category",
			category: "фастфуд",
			ref:      ref,
			want:     core.CategorySpend{"Фастфуд": 80},
		},
		{
			name:     "no matches",
			category: "Топливо",
			ref:      ref,
			want:     core.CategorySpend{},
		},
		{
			name:     "zero reference",
			category: "Супермаркеты",
			ref:      time.Time{},
			want:     core.CategorySpend{},
		},
		{
			name:     "empty category",
			category: "  ",
			ref:      ref,
			want:     core.CategorySpend{},
		},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.SpendingByCategory(records, tt.category, tt.ref)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SpendingByCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestSpendingByCategoryEmptyInput(t *testing.T) {
	e := newTestEngine()
	got := e.SpendingByCategory(nil, "Супермаркеты", at("2021-03-15 12:00:00"))
	if got == nil || len(got) != 0 {
		t.Errorf("SpendingByCategory(nil) = %v, want empty map", got)
	}
}
