// Package cli provides the initialization steps shared by cmd/finance and
// cmd/finance-sync.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance/internal/backend"
	"finance/internal/config"
	"finance/internal/export"
	applog "finance/internal/log"

	"github.com/joho/godotenv"
)

// SetupLogger installs a text logger on stderr at info level until the
// configuration is known. Stdout belongs to the menu.
func SetupLogger() *slog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger.Logger
}

// ConfigureLogger replaces the default logger with one honouring
// LOG_LEVEL and LOG_FORMAT.
func ConfigureLogger(cfg *config.Config, component string) *applog.Logger {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Warn("Unknown log level, using info", "level", cfg.LogLevel)
	}
	c := applog.DefaultConfig()
	c.Level = level
	c.Format = cfg.LogFormat
	c.Component = component

	logger := applog.New(c)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.PrepareDirs(); err != nil {
		logger.Error("Failed to prepare directories", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend opens the configured record store and optional event client.
// Exits the process on failure.
func InitBackend(ctx context.Context, logger *slog.Logger, cfg *config.Config) *backend.BackendResult {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.With(applog.FieldComponent, applog.ComponentBackend)).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return res
}

// InitExporter builds the configured export destinations. It returns nil
// when none is configured. A destination that fails to initialize is
// logged and skipped.
func InitExporter(ctx context.Context, logger *slog.Logger, cfg *config.Config) export.Exporter {
	logger = logger.With(applog.FieldComponent, applog.ComponentExport)
	var exporters []export.Exporter
	if cfg.ExportDir != "" {
		exporters = append(exporters, export.NewXLSXExporter(cfg.ExportDir))
	}
	if cfg.SheetsEnabled() {
		sheets, err := export.NewSheetsExporter(ctx, export.SheetsOptions{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleServiceAccountFile,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
		})
		if err != nil {
			logger.Warn("Failed to initialize Google Sheets export, skipping", "error", err)
		} else {
			exporters = append(exporters, sheets)
		}
	}

	m := export.NewMulti(exporters...)
	if len(m) == 0 {
		return nil
	}
	logger.Info("Export enabled", "destinations", m.Name())
	return m
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *slog.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		cancel()

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup()
			}
			close(finished)
		}()

		select {
		case <-finished:
			logger.Info("Shutdown complete")
		case <-time.After(timeout):
			logger.Warn("Shutdown timeout reached")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
