package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cardledger/internal/log"
)

// SchedulerConfig holds configuration for the report scheduler
type SchedulerConfig struct {
	// Interval is how often the report batch is regenerated (default: 1h)
	Interval time.Duration

	// Category is the category used by the category report
	Category string

	// RoundingUnit is the investment jar step (default: 50)
	RoundingUnit int64
}

// DefaultSchedulerConfig returns sensible defaults
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:     time.Hour,
		Category:     "Супермаркеты",
		RoundingUnit: 50,
	}
}

// Scheduler regenerates the default report batch on a fixed interval,
// always using the current time as the reference.
type Scheduler struct {
	service *ReportService
	config  SchedulerConfig
	logger  *log.Logger
	now     func() time.Time

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewScheduler creates a new report scheduler
func NewScheduler(service *ReportService, config SchedulerConfig, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Discard()
	}
	return &Scheduler{
		service: service,
		config:  config,
		logger:  logger.WithComponent(log.ComponentWorker),
		now:     time.Now,
	}
}

// Start begins the scheduling loop. Returns an error if already running.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.config.Interval <= 0 {
		return fmt.Errorf("invalid scheduler interval %s", s.config.Interval)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("report scheduler is already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.runLoop(ctx)

	s.logger.InfoContext(ctx, "Report scheduler started", "interval", s.config.Interval)
	return nil
}

// Stop gracefully stops the scheduler and waits for the current batch.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)

	select {
	case <-doneCh:
		s.logger.InfoContext(ctx, "Report scheduler stopped gracefully")
	case <-ctx.Done():
		s.logger.WarnContext(ctx, "Report scheduler stop timed out")
		return ctx.Err()
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) runLoop(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Generate immediately on startup
	s.RunOnce(ctx)

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce generates the default batch for the current time.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ref := s.now()
	results, err := s.service.GenerateAll(ctx, Defaults(ref, s.config.Category, s.config.RoundingUnit))
	if err != nil {
		s.logger.ErrorContext(ctx, "Scheduled report batch failed",
			log.FieldReference, ref.Format(time.DateTime),
			log.FieldError, err)
		return
	}
	s.logger.InfoContext(ctx, "Scheduled report batch written",
		log.FieldReference, ref.Format(time.DateTime),
		"reports", len(results))
}
