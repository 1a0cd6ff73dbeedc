package core

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseReference(t *testing.T) {
	got, err := ParseReference("2021-12-31 16:44:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2021 || got.Month() != time.December || got.Day() != 31 || got.Hour() != 16 {
		t.Fatalf("unexpected time: %v", got)
	}
	for _, bad := range []string{"", "31.12.2021", "2021-12-31", "yesterday"} {
		if _, err := ParseReference(bad); !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("%q expected ErrInvalidDateFormat, got %v", bad, err)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	y, m, err := ParseYearMonth("2021-02")
	if err != nil || y != 2021 || m != time.February {
		t.Fatalf("unexpected: %d %v %v", y, m, err)
	}
	if _, _, err := ParseYearMonth("02.2021"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestMonthTokens(t *testing.T) {
	cases := []struct {
		ref  time.Time
		n    int
		want []string
	}{
		{time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), 3, []string{"12.2021", "11.2021", "10.2021"}},
		{time.Date(2022, 2, 15, 0, 0, 0, 0, time.UTC), 3, []string{"02.2022", "01.2022", "12.2021"}},
		{time.Date(2021, 5, 31, 0, 0, 0, 0, time.UTC), 2, []string{"05.2021", "04.2021"}},
		{time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC), 1, []string{"03.2021"}},
		{time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC), 0, nil},
	}
	for i, tc := range cases {
		if got := MonthTokens(tc.ref, tc.n); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestContainsAnyToken(t *testing.T) {
	tokens := []string{"12.2021", "11.2021"}
	if !ContainsAnyToken("03.11.2021 10:00:00", tokens) {
		t.Fatalf("expected match")
	}
	if ContainsAnyToken("03.10.2021 10:00:00", tokens) {
		t.Fatalf("unexpected match")
	}
}
