// Package worker turns queued report requests into report runs.
package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cardledger/internal/amqp"
	"cardledger/internal/core"
	"cardledger/internal/log"
	"cardledger/internal/services"
)

// ReportAll requests the default report batch instead of a single report.
const ReportAll = "all"

// Generator produces reports. *services.ReportService implements it.
type Generator interface {
	Generate(ctx context.Context, req services.Request) (services.Result, error)
	GenerateAll(ctx context.Context, reqs []services.Request) ([]services.Result, error)
}

// Defaults fill in request fields a message leaves empty.
type Defaults struct {
	Category     string
	RoundingUnit int64
}

// ReportWorker handles report requests consumed from AMQP
type ReportWorker struct {
	reports  Generator
	defaults Defaults
	logger   *log.Logger
	now      func() time.Time
}

func NewReportWorker(reports Generator, defaults Defaults, logger *log.Logger) *ReportWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &ReportWorker{
		reports:  reports,
		defaults: defaults,
		logger:   logger.WithComponent(log.ComponentWorker),
		now:      time.Now,
	}
}

// HandleReportRequest processes a single report request message
func (w *ReportWorker) HandleReportRequest(ctx context.Context, msg *amqp.ReportRequest) error {
	w.logger.InfoContext(ctx, "Processing report request",
		"id", msg.ID,
		log.FieldReport, msg.Report,
		log.FieldReference, msg.Reference)

	ref, err := w.reference(msg.Reference)
	if err != nil {
		return err
	}

	if strings.EqualFold(msg.Report, ReportAll) {
		reqs := services.WithInvestMonth(services.Defaults(ref, w.category(msg), w.unit(msg)), msg.Month)
		results, err := w.reports.GenerateAll(ctx, reqs)
		if err != nil {
			return fmt.Errorf("generate report batch: %w", err)
		}
		w.logger.InfoContext(ctx, "Report batch written", "id", msg.ID, "reports", len(results))
		return nil
	}

	req := services.Request{
		Report:       msg.Report,
		Reference:    ref,
		Category:     w.category(msg),
		Month:        msg.Month,
		RoundingUnit: w.unit(msg),
		Query:        msg.Query,
	}
	if req.Month == "" {
		req.Month = fmt.Sprintf("%04d-%02d", ref.Year(), int(ref.Month()))
	}

	res, err := w.reports.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate %s: %w", msg.Report, err)
	}

	w.logger.InfoContext(ctx, "Report written",
		"id", msg.ID,
		log.FieldReport, res.Report,
		log.FieldOutputPath, res.Path)
	return nil
}

func (w *ReportWorker) reference(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return w.now(), nil
	}
	return core.ParseReference(s)
}

func (w *ReportWorker) category(msg *amqp.ReportRequest) string {
	if msg.Category != "" {
		return msg.Category
	}
	return w.defaults.Category
}

func (w *ReportWorker) unit(msg *amqp.ReportRequest) int64 {
	if msg.RoundingUnit > 0 {
		return msg.RoundingUnit
	}
	return w.defaults.RoundingUnit
}
