// Package services orchestrates report runs: it loads the ledger from a
// record source, runs the engine and persists the results.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardledger/internal/core"
	"cardledger/internal/engine"
	"cardledger/internal/log"
	"cardledger/internal/report"
	"cardledger/internal/search"
	"cardledger/internal/sheets"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Search reports served next to the engine ones.
const (
	ReportSearch          = "search"
	ReportSearchPhones    = "search_phones"
	ReportSearchTransfers = "search_transfers"
)

var ErrUnknownReport = errors.New("unknown report")

var reportFiles = map[string]string{
	engine.ReportMainPage:   report.FileMainPage,
	engine.ReportCategory:   report.FileSpendingCategory,
	engine.ReportWeekday:    report.FileSpendingWeekday,
	engine.ReportWorkday:    report.FileSpendingWorkday,
	engine.ReportInvestment: report.FileInvestmentJar,
	ReportSearch:            report.FileSearch,
	ReportSearchPhones:      report.FileSearchPhones,
	ReportSearchTransfers:   report.FileSearchTransfers,
}

// ReportNames lists every report the service can produce.
func ReportNames() []string {
	return []string{
		engine.ReportMainPage,
		engine.ReportCategory,
		engine.ReportWeekday,
		engine.ReportWorkday,
		engine.ReportInvestment,
		ReportSearch,
		ReportSearchPhones,
		ReportSearchTransfers,
	}
}

// RunRecorder stores the outcome of report runs.
type RunRecorder interface {
	RecordRun(ctx context.Context, run core.ReportRun) error
}

// Request selects one report and its parameters. Fields a report does not
// use are ignored.
type Request struct {
	Report       string
	Reference    time.Time
	Category     string
	Month        string
	RoundingUnit int64
	Query        string
}

// Result is a computed report and, when it was persisted, its file path.
type Result struct {
	Report      string
	Payload     any
	Path        string
	RecordCount int
}

// ReportService loads the ledger, runs the engine and hands results to the sink.
type ReportService struct {
	source sheets.RecordReader
	engine *engine.Engine
	sink   *report.Sink
	runs   RunRecorder
	logger *log.Logger

	newID func() string
	now   func() time.Time
}

// NewReportService wires a service. sink and runs may be nil, in which case
// Generate only computes and run history is not kept.
func NewReportService(source sheets.RecordReader, eng *engine.Engine, sink *report.Sink, runs RunRecorder, logger *log.Logger) *ReportService {
	if logger == nil {
		logger = log.Discard()
	}
	if eng == nil {
		eng = engine.New(logger)
	}
	return &ReportService{
		source: source,
		engine: eng,
		sink:   sink,
		runs:   runs,
		logger: logger.WithComponent(log.ComponentReport),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Records returns the current ledger.
func (s *ReportService) Records(ctx context.Context) ([]core.Record, error) {
	records, err := s.source.ReadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return records, nil
}

// Build computes one report without persisting it.
func (s *ReportService) Build(ctx context.Context, req Request) (Result, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.compute(records, req)
}

// Generate computes one report, writes it to the sink and records the run.
func (s *ReportService) Generate(ctx context.Context, req Request) (Result, error) {
	records, err := s.Records(ctx)
	if err != nil {
		s.recordRun(ctx, req, Result{Report: req.Report}, err)
		return Result{}, err
	}
	return s.generate(ctx, records, req)
}

// GenerateAll reads the ledger once and produces every requested report
// concurrently. Results keep the order of reqs.
func (s *ReportService) GenerateAll(ctx context.Context, reqs []Request) ([]Result, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := s.generate(gctx, records, req)
			if err != nil {
				return fmt.Errorf("%s: %w", req.Report, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *ReportService) generate(ctx context.Context, records []core.Record, req Request) (Result, error) {
	res, err := s.compute(records, req)
	if err == nil && s.sink != nil {
		res.Path, err = s.sink.Write(ctx, req.Report, reportFiles[req.Report], res.Payload)
	}
	s.recordRun(ctx, req, res, err)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *ReportService) compute(records []core.Record, req Request) (Result, error) {
	res := Result{Report: req.Report, RecordCount: len(records)}

	switch req.Report {
	case engine.ReportMainPage:
		res.Payload = s.engine.MainPage(records, req.Reference)
	case engine.ReportCategory:
		res.Payload = []core.CategorySpend{s.engine.SpendingByCategory(records, req.Category, req.Reference)}
	case engine.ReportWeekday:
		res.Payload = s.engine.SpendingByWeekday(records, req.Reference)
	case engine.ReportWorkday:
		res.Payload = s.engine.SpendingByWorkday(records, req.Reference)
	case engine.ReportInvestment:
		unit := req.RoundingUnit
		if unit == 0 {
			unit = engine.DefaultRoundingUnit
		}
		jar, err := s.engine.InvestmentJar(req.Month, records, unit)
		if err != nil {
			return Result{}, err
		}
		res.Payload = jar
	case ReportSearch:
		res.Payload = search.Search(records, req.Query)
	case ReportSearchPhones:
		res.Payload = search.ByPhone(records)
	case ReportSearchTransfers:
		res.Payload = search.ByTransfers(records)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownReport, req.Report)
	}
	return res, nil
}

func (s *ReportService) recordRun(ctx context.Context, req Request, res Result, runErr error) {
	if s.runs == nil {
		return
	}

	run := core.ReportRun{
		ID:          s.newID(),
		Report:      req.Report,
		OutputPath:  res.Path,
		RecordCount: res.RecordCount,
		Status:      core.RunSucceeded,
		CreatedAt:   s.now().UTC(),
	}
	if !req.Reference.IsZero() {
		run.Reference = req.Reference.Format(core.ReferenceLayout)
	}
	if runErr != nil {
		run.Status = core.RunFailed
		run.Error = runErr.Error()
	}

	if err := s.runs.RecordRun(ctx, run); err != nil {
		s.logger.WarnContext(ctx, "Failed to record report run",
			log.FieldReport, req.Report,
			log.FieldError, err)
	}
}

// Defaults returns the standard report batch for ref: the main page, the
// window reports and the investment jar for ref's month.
func Defaults(ref time.Time, category string, unit int64) []Request {
	month := fmt.Sprintf("%04d-%02d", ref.Year(), int(ref.Month()))
	return []Request{
		{Report: engine.ReportMainPage, Reference: ref},
		{Report: engine.ReportCategory, Reference: ref, Category: category},
		{Report: engine.ReportWeekday, Reference: ref},
		{Report: engine.ReportWorkday, Reference: ref},
		{Report: engine.ReportInvestment, Reference: ref, Month: month, RoundingUnit: unit},
	}
}

// WithInvestMonth points the investment jar requests in reqs at month.
// An empty month leaves reqs unchanged.
func WithInvestMonth(reqs []Request, month string) []Request {
	if month == "" {
		return reqs
	}
	for i := range reqs {
		if reqs[i].Report == engine.ReportInvestment {
			reqs[i].Month = month
		}
	}
	return reqs
}
