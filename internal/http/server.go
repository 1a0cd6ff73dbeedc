// Package http serves the ledger reports as a read-only JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cardledger/internal/core"
	"cardledger/internal/log"
	"cardledger/internal/middleware/ratelimit"
	"cardledger/internal/middleware/security"
	"cardledger/internal/middleware/trace"
	"cardledger/internal/services"
)

// ReportBuilder computes reports on demand.
type ReportBuilder interface {
	Build(ctx context.Context, req services.Request) (services.Result, error)
}

// RunLister lists past report runs.
type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]core.ReportRun, error)
}

// Options configures a Server.
type Options struct {
	Reports ReportBuilder
	// Runs is optional; /api/runs answers 501 without it.
	Runs   RunLister
	Logger *log.Logger

	RateLimit    ratelimit.Config
	Category     string
	RoundingUnit int64
}

type Server struct {
	http.Server
	reports ReportBuilder
	runs    RunLister
	logger  *log.Logger

	category     string
	roundingUnit int64
	now          func() time.Time

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16, // 64KB
		},
		reports:      opts.Reports,
		runs:         opts.Runs,
		logger:       logger,
		category:     opts.Category,
		roundingUnit: opts.RoundingUnit,
		now:          time.Now,
		limiter:      ratelimit.NewLimiter(opts.RateLimit),
		detector:     security.NewDetector(),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /api/main", s.handleMainPage)
	mux.HandleFunc("GET /api/spending/category", s.handleCategory)
	mux.HandleFunc("GET /api/spending/weekday", s.handleWeekday)
	mux.HandleFunc("GET /api/spending/workday", s.handleWorkday)
	mux.HandleFunc("GET /api/invest", s.handleInvest)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/search/phones", s.handlePhones)
	mux.HandleFunc("GET /api/search/transfers", s.handleTransfers)
	mux.HandleFunc("GET /api/runs", s.handleRuns)
	mux.HandleFunc("GET /api/metrics", s.handleMetrics)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimit)(handler)
	handler = s.detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.tracer.Middleware(handler)
	s.Handler = handler

	return s
}

// Shutdown stops the rate limiter and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
