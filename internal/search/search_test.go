package search

import (
	"reflect"
	"testing"

	"cardledger/internal/core"
)

func rec(category, description string) core.Record {
	return core.Record{
		OperationDate: "01.01.2021 10:00:00",
		Status:        core.StatusOK,
		Amount:        core.ParseAmount("-100"),
		Category:      category,
		Description:   description,
	}
}

func descriptions(records []core.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Description)
	}
	return out
}

func TestSearch(t *testing.T) {
	records := []core.Record{
		rec("Супермаркеты", "Пятёрочка"),
		rec("Фастфуд", "Mouse Tail"),
		rec("Супермаркеты", "Магнит"),
		rec("Переводы", "Анастасия Л."),
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"wildcard", "*", []string{"Пятёрочка", "Mouse Tail", "Магнит", "Анастасия Л."}},
		{"empty query", "", []string{"Пятёрочка", "Mouse Tail", "Магнит", "Анастасия Л."}},
		{"category match ignores case", "супермаркеты", []string{"Пятёрочка", "Магнит"}},
		{"description match ignores case", "mouse", []string{"Mouse Tail"}},
		{"substring", "ТЁР", []string{"Пятёрочка"}},
		{"literal asterisk inside query", "a*b", []string{}},
		{"no match", "Топливо", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := descriptions(Search(records, tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchWildcardReturnsInputUnchanged(t *testing.T) {
	records := []core.Record{rec("A", "one"), rec("B", "two"), rec("C", "three")}

	got := Search(records, Wildcard)
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("Search(*) = %+v, want %+v", got, records)
	}
}

func TestByPhone(t *testing.T) {
	records := []core.Record{
		rec("Мобильная связь", "Я МТС +7 921 11-22-33"),
		rec("Мобильная связь", "МТС Mobile +7 981 333-44-55"),
		rec("Мобильная связь", "Тинькофф Мобайл +7 995 555-55-55"),
		rec("Мобильная связь", "Билайн 8 (905) 123 45 67"),
		rec("Мобильная связь", "Мегафон +79161234567"),
		rec("Супермаркеты", "Магнит 8-800"),
		rec("Фастфуд", "Заказ 123456789"),
	}

	got := descriptions(ByPhone(records))
	want := []string{
		"МТС Mobile +7 981 333-44-55",
		"Тинькофф Мобайл +7 995 555-55-55",
		"Билайн 8 (905) 123 45 67",
		"Мегафон +79161234567",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ByPhone() = %v, want %v", got, want)
	}
}

func TestByTransfers(t *testing.T) {
	records := []core.Record{
		rec("Переводы", "Анастасия Л."),
		rec("Переводы", "Перевод Сергей З."),
		rec("Переводы", "Перевод с карты"),
		rec("Супермаркеты", "Пятёрочка"),
		rec("Переводы", "Pavel K."),
	}

	got := descriptions(ByTransfers(records))
	want := []string{"Анастасия Л.", "Перевод Сергей З.", "Pavel K."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ByTransfers() = %v, want %v", got, want)
	}
}

func TestMatchersOnEmptyInput(t *testing.T) {
	for name, got := range map[string][]core.Record{
		"Search":      Search(nil, "x"),
		"ByPhone":     ByPhone(nil),
		"ByTransfers": ByTransfers(nil),
	} {
		if got == nil || len(got) != 0 {
			t.Errorf("%s(nil) = %v, want empty non-nil slice", name, got)
		}
	}
}
