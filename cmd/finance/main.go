package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"finance/internal/cli"
	applog "finance/internal/log"
	"finance/internal/menu"
	"finance/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	bootLogger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.ConfigureLogger(cfg, applog.ComponentApp)
	logger.Info("Starting finance", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := cli.InitBackend(ctx, logger.Logger, cfg)
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Failed to release backend", applog.FieldError, err)
		}
	}()

	incomes := services.NewIncomeService(res.Store, nil, res.Events)
	expenses := services.NewExpenseService(res.Store, nil, res.Events)
	reports := services.NewReportService(incomes, expenses)
	exporter := cli.InitExporter(ctx, logger.Logger, cfg)

	controller := menu.NewController(os.Stdin, os.Stdout, incomes, expenses, reports, exporter).
		WithLogger(logger)
	if err := controller.Run(ctx); err != nil {
		logger.Error("Menu stopped", applog.FieldError, err)
	}
}
