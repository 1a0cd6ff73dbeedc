package main

import (
	"context"
	"errors"
	"os"
	"time"

	"cardledger/internal/amqp"
	"cardledger/internal/cache"
	"cardledger/internal/cli"
	"cardledger/internal/engine"
	"cardledger/internal/log"
	"cardledger/internal/report"
	"cardledger/internal/services"
	"cardledger/internal/worker"
)

func main() {
	cfg, logger := cli.Bootstrap()
	logger.Info("Starting report-worker")

	res := cli.OpenBackend(context.Background(), logger, cfg)
	defer res.Close()

	cacheManager := cache.NewManager(logger)
	if res.Cache != nil && cfg.CacheTTL > 0 {
		cacheManager.Register(res.Cache)
		cacheManager.StartCleanup(cfg.CacheTTL)
	}
	defer cacheManager.Stop()

	reports := services.NewReportService(res.Backend, engine.New(logger), report.NewSink(cfg.OutputDir, logger), res.Runs, logger)
	reportWorker := worker.NewReportWorker(reports, worker.Defaults{
		Category:     cfg.ReportCategory,
		RoundingUnit: int64(cfg.RoundingUnit),
	}, logger)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	consumeErr := make(chan error, 1)
	go func() {
		consumeErr <- amqpClient.ConsumeReportRequests(ctx, reportWorker.HandleReportRequest)
	}()

	logger.Info("Consuming report requests",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		log.FieldBackend, cfg.DataBackend)

	select {
	case err := <-consumeErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", log.FieldError, err)
			os.Exit(1)
		}
	case <-ctx.Done():
		<-consumeErr
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
