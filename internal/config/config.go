package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

type Config struct {
	// Backend selection: sqlite, mysql or memory
	DataBackend string `env:"DATA_BACKEND" envDefault:"sqlite"`

	// Database
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/finance.db"`
	MySQL        MySQL  `envPrefix:"MYSQL_"`

	// AMQP, optional: no URL means no change events
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"finance"`
	AMQPQueue    string `env:"AMQP_QUEUE" envDefault:"record_events"`

	// Export destinations, each optional
	ExportDir                string        `env:"EXPORT_DIR"`
	GoogleSpreadsheetID      string        `env:"GOOGLE_SPREADSHEET_ID"`
	GoogleSheetName          string        `env:"GOOGLE_SHEET_NAME" envDefault:"Ledger"`
	GoogleServiceAccountFile string        `env:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	GoogleServiceAccountJSON string        `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	ExportTimeout            time.Duration `env:"EXPORT_TIMEOUT" envDefault:"30s"`

	// Worker: periodic re-export of the current month
	ExportInterval time.Duration `env:"EXPORT_INTERVAL" envDefault:"1h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

type MySQL struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"3306"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASSWORD"`
	Database string `env:"DATABASE" envDefault:"finance_db"`
}

var (
	validBackends   = []string{"sqlite", "mysql", "memory"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// SheetsEnabled reports whether Google Sheets export is configured.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "mysql":
		if c.MySQL.Host == "" {
			errors = append(errors, "MySQL host cannot be empty when using mysql backend")
		}
		if c.MySQL.Port < 1 || c.MySQL.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid MySQL port %d: must be between 1 and 65535", c.MySQL.Port))
		}
		if c.MySQL.User == "" {
			errors = append(errors, "MySQL user cannot be empty when using mysql backend")
		}
		if c.MySQL.Database == "" {
			errors = append(errors, "MySQL database name cannot be empty when using mysql backend")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ExportDir != "" {
		if info, err := os.Stat(c.ExportDir); err == nil && !info.IsDir() {
			errors = append(errors, fmt.Sprintf("export path '%s' is not a directory", c.ExportDir))
		}
	}

	if c.SheetsEnabled() {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when GOOGLE_SPREADSHEET_ID is set")
		}
		hasFile := c.GoogleServiceAccountFile != ""
		hasJSON := c.GoogleServiceAccountJSON != ""
		if !hasFile && !hasJSON {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets export")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.ExportTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid export timeout %v: must be at least 1 second", c.ExportTimeout))
	}

	if c.ExportInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid export interval %v: must be at least 1 minute", c.ExportInterval))
	} else if c.ExportInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid export interval %v: must be at most 24 hours", c.ExportInterval))
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// PrepareDirs creates the directories the configured paths live in.
func (c *Config) PrepareDirs() error {
	if c.DataBackend == "sqlite" {
		if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create SQLite database directory '%s': %w", dir, err)
			}
		}
	}
	if c.ExportDir != "" {
		if err := os.MkdirAll(c.ExportDir, 0755); err != nil {
			return fmt.Errorf("create export directory '%s': %w", c.ExportDir, err)
		}
	}
	return nil
}

// LogValue hides credentials when the config is logged.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("data_backend", c.DataBackend),
		slog.String("sqlite_db_path", c.SQLiteDBPath),
		slog.String("mysql_addr", fmt.Sprintf("%s:%d", c.MySQL.Host, c.MySQL.Port)),
		slog.String("mysql_database", c.MySQL.Database),
		slog.Bool("amqp_enabled", c.AMQPURL != ""),
		slog.String("export_dir", c.ExportDir),
		slog.Bool("sheets_enabled", c.SheetsEnabled()),
		slog.String("log_level", c.LogLevel),
	)
}
