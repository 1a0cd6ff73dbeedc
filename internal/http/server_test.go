package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cardledger/internal/core"
	"cardledger/internal/middleware/ratelimit"
	"cardledger/internal/services"
	"cardledger/internal/sheets/memory"
)

type fakeRuns struct {
	runs  []core.ReportRun
	limit int
	err   error
}

func (f *fakeRuns) RecentRuns(_ context.Context, limit int) ([]core.ReportRun, error) {
	f.limit = limit
	return f.runs, f.err
}

type failingBuilder struct{ err error }

func (f failingBuilder) Build(context.Context, services.Request) (services.Result, error) {
	return services.Result{}, f.err
}

func rec(opDate, card, amount, rounded, category, description string) core.Record {
	return core.Record{
		OperationDate: opDate,
		PaymentDate:   opDate[:10],
		CardNumber:    card,
		Status:        core.StatusOK,
		Amount:        core.ParseAmount(amount),
		RoundedAmount: core.ParseAmount(rounded),
		Category:      category,
		Description:   description,
	}
}

func testLedger() []core.Record {
	return []core.Record{
		rec("31.12.2021 16:44:00", "*7197", "-160.89", "160.89", "Супермаркеты", "Колхоз"),
		rec("30.12.2021 10:00:00", "*7197", "-64.00", "64.00", "Супермаркеты", "Магнит"),
		rec("29.12.2021 12:00:00", "*5091", "-1000", "1000", "Переводы", "Анастасия Л."),
		rec("28.12.2021 09:30:00", "nan", "3000", "3000", "Пополнения", "Пополнение +7 921 111-22-33"),
	}
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	if opts.Reports == nil {
		opts.Reports = services.NewReportService(memory.New(testLedger()), nil, nil, nil, nil)
	}
	if opts.Category == "" {
		opts.Category = "Супермаркеты"
	}
	if opts.RoundingUnit == 0 {
		opts.RoundingUnit = 50
	}
	s := NewServer(":0", opts)
	s.now = func() time.Time { return time.Date(2021, time.December, 31, 20, 0, 0, 0, time.Local) }
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	rr := get(t, s, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected request ID header")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
}

func TestMainPage(t *testing.T) {
	s := newTestServer(t, Options{})

	rr := get(t, s, "/api/main?ref=2021-12-31+16:44:00")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	page := decode[core.MainPage](t, rr)
	if page.Greeting != core.GreetingAfternoon {
		t.Errorf("greeting = %s", page.Greeting)
	}
	if len(page.Cards) != 2 || len(page.TopTransactions) == 0 {
		t.Errorf("unexpected page: %+v", page)
	}
	if !strings.Contains(rr.Body.String(), "Добрый день") {
		t.Error("cyrillic should not be escaped")
	}

	rr = get(t, s, "/api/main")
	if got := decode[core.MainPage](t, rr).Greeting; got != core.GreetingEvening {
		t.Errorf("default reference greeting = %s", got)
	}
}

func TestMainPageBadReference(t *testing.T) {
	s := newTestServer(t, Options{})

	rr := get(t, s, "/api/main?ref=31.12.2021")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decode[errorResponse](t, rr)
	if body.RequestID == "" || !strings.Contains(body.Error, "invalid date format") {
		t.Errorf("unexpected error body: %+v", body)
	}
}

func TestSpending(t *testing.T) {
	s := newTestServer(t, Options{})

	rr := get(t, s, "/api/spending/category")
	got := decode[[]map[string]float64](t, rr)
	if len(got) != 1 || got[0]["Супермаркеты"] != 224.89 {
		t.Errorf("default category spend = %v", got)
	}

	rr = get(t, s, "/api/spending/category?category=%D0%BF%D0%B5%D1%80%D0%B5%D0%B2%D0%BE%D0%B4%D1%8B")
	got = decode[[]map[string]float64](t, rr)
	if len(got) != 1 || got[0]["Переводы"] != 1000 {
		t.Errorf("transfers spend = %v", got)
	}

	rr = get(t, s, "/api/spending/workday")
	workday := decode[core.WorkdaySpend](t, rr)
	if workday.AvgWorkday == 0 {
		t.Errorf("workday spend = %+v", workday)
	}

	rr = get(t, s, "/api/spending/weekday")
	if rr.Code != http.StatusOK {
		t.Errorf("weekday status = %d", rr.Code)
	}
}

func TestInvest(t *testing.T) {
	s := newTestServer(t, Options{})

	rr := get(t, s, "/api/invest?unit=10")
	jar := decode[core.InvestmentProjection](t, rr)
	if jar.Month != "2021-12" || jar.RoundingUnit != 10 {
		t.Errorf("unexpected jar: %+v", jar)
	}

	for _, target := range []string{"/api/invest?unit=0", "/api/invest?unit=abc", "/api/invest?month=12.2021"} {
		if rr := get(t, s, target); rr.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", target, rr.Code)
		}
	}
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		target string
		want   int
	}{
		{"/api/search?q=%D0%BA%D0%BE%D0%BB%D1%85%D0%BE%D0%B7", 1},
		{"/api/search?q=*", 4},
		{"/api/search", 4},
		{"/api/search?q=nothing", 0},
		{"/api/search/phones", 1},
		{"/api/search/transfers", 1},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rr := get(t, s, tt.target)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			got := decode[[]map[string]any](t, rr)
			if len(got) != tt.want {
				t.Errorf("got %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRuns(t *testing.T) {
	t.Run("without run log", func(t *testing.T) {
		s := newTestServer(t, Options{})
		if rr := get(t, s, "/api/runs"); rr.Code != http.StatusNotImplemented {
			t.Errorf("status = %d", rr.Code)
		}
	})

	t.Run("with run log", func(t *testing.T) {
		runs := &fakeRuns{runs: []core.ReportRun{{ID: "1", Report: "main_page", Status: core.RunSucceeded}}}
		s := newTestServer(t, Options{Runs: runs})

		rr := get(t, s, "/api/runs?limit=1000")
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
		if runs.limit != maxRunLimit {
			t.Errorf("limit = %d, want clamp to %d", runs.limit, maxRunLimit)
		}
		if got := decode[[]core.ReportRun](t, rr); len(got) != 1 || got[0].ID != "1" {
			t.Errorf("runs = %+v", got)
		}
	})

	t.Run("run log failure", func(t *testing.T) {
		s := newTestServer(t, Options{Runs: &fakeRuns{err: errors.New("db locked")}})
		rr := get(t, s, "/api/runs")
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rr.Code)
		}
		if strings.Contains(rr.Body.String(), "db locked") {
			t.Error("internal errors must not leak")
		}
	})
}

func TestServiceErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrUnknownReport, http.StatusNotFound},
		{core.ErrInvalidLimit, http.StatusBadRequest},
		{errors.New("sheet unavailable"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s := newTestServer(t, Options{Reports: failingBuilder{err: tt.err}})
		if rr := get(t, s, "/api/search/phones"); rr.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, rr.Code, tt.want)
		}
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimit: ratelimit.Config{RequestsPerMinute: 2}})

	for i := 0; i < 2; i++ {
		if rr := get(t, s, "/healthz"); rr.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i+1, rr.Code)
		}
	}
	rr := get(t, s, "/healthz")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestSuspiciousRequestRejected(t *testing.T) {
	s := newTestServer(t, Options{})
	if rr := get(t, s, "/.env"); rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, Options{})
	get(t, s, "/healthz")

	rr := get(t, s, "/api/metrics")
	body := decode[map[string]map[string]float64](t, rr)
	if body["requests"]["total_requests"] != 2 {
		t.Errorf("metrics = %v", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, Options{})
	if rr := get(t, s, "/api/balance"); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d", rr.Code)
	}
	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/main", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d", rr.Code)
	}
}
