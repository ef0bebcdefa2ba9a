package main

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"finance/internal/backend"
	"finance/internal/cli"
	applog "finance/internal/log"
	"finance/internal/services"
	"finance/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	bootLogger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.ConfigureLogger(cfg, applog.ComponentWorker)
	logger.Info("Starting finance-sync", "config", cfg)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync worker")
		os.Exit(1)
	}

	res := cli.InitBackend(context.Background(), logger.Logger, cfg)
	if res.AMQP == nil {
		logger.Error("AMQP client unavailable, nothing to consume")
		release(logger, res)
		os.Exit(1)
	}

	exporter := cli.InitExporter(context.Background(), logger.Logger, cfg)
	if exporter == nil {
		logger.Error("No export destination configured: set EXPORT_DIR or GOOGLE_SPREADSHEET_ID")
		release(logger, res)
		os.Exit(1)
	}

	// The worker only reads; it never publishes events of its own.
	incomes := services.NewIncomeService(res.Store, nil, nil)
	expenses := services.NewExpenseService(res.Store, nil, nil)
	reports := services.NewReportService(incomes, expenses)
	exportWorker := worker.NewExportWorker(reports, exporter, cfg.ExportTimeout)

	var wg sync.WaitGroup
	wg.Add(2)
	ctx, done := cli.GracefulShutdown(logger.Logger, shutdownTimeout, func() {
		wg.Wait()
		release(logger, res)
	})

	// On startup, bring the current month up to date in case events were missed
	logger.Info("Performing startup export")
	if err := exportWorker.ExportCurrentMonth(ctx); err != nil {
		logger.Error("Startup export failed", applog.FieldError, err)
	}

	go func() {
		defer wg.Done()
		err := res.AMQP.ConsumeRecordEvents(ctx, exportWorker.HandleRecordEvent)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", applog.FieldError, err)
		}
	}()

	go func() {
		defer wg.Done()
		exportWorker.RunPeriodic(ctx, cfg.ExportInterval)
	}()

	cli.WaitForShutdown(ctx, done)
}

func release(logger *applog.Logger, res *backend.BackendResult) {
	if err := res.Cleanup(); err != nil {
		logger.Error("Failed to release backend", applog.FieldError, err)
	}
}
