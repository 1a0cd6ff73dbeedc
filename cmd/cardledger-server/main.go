package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"cardledger/internal/cache"
	"cardledger/internal/cli"
	"cardledger/internal/engine"
	apphttp "cardledger/internal/http"
	"cardledger/internal/log"
	"cardledger/internal/report"
	"cardledger/internal/services"
)

func main() {
	cfg, logger := cli.Bootstrap()

	res := cli.OpenBackend(context.Background(), logger, cfg)
	defer res.Close()

	cacheManager := cache.NewManager(logger)
	if res.Cache != nil && cfg.CacheTTL > 0 {
		cacheManager.Register(res.Cache)
		cacheManager.StartCleanup(cfg.CacheTTL)
	}

	reports := services.NewReportService(res.Backend, engine.New(logger), report.NewSink(cfg.OutputDir, logger), res.Runs, logger)

	var scheduler *services.Scheduler
	if cfg.ReportInterval > 0 {
		scheduler = services.NewScheduler(reports, services.SchedulerConfig{
			Interval:     cfg.ReportInterval,
			Category:     cfg.ReportCategory,
			RoundingUnit: int64(cfg.RoundingUnit),
		}, logger)
	}

	opts := apphttp.Options{
		Reports:      reports,
		Logger:       logger,
		Category:     cfg.ReportCategory,
		RoundingUnit: int64(cfg.RoundingUnit),
	}
	if res.Runs != nil {
		opts.Runs = res.Runs
	}
	srv := apphttp.NewServer(":"+cfg.Port, opts)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if scheduler != nil {
			if err := scheduler.Stop(shutdownCtx); err != nil {
				logger.Error("Scheduler shutdown error", log.FieldError, err)
			}
		}
		cacheManager.Stop()
	})

	if scheduler != nil {
		if err := scheduler.Start(ctx); err != nil {
			logger.Error("Failed to start report scheduler", log.FieldError, err)
			os.Exit(1)
		}
	}

	logger.Info("Starting cardledger server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		"report_interval", cfg.ReportInterval)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
