package backend

import (
	"fmt"

	"finance/internal/config"
	"finance/internal/storage"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		SQLiteDBPath: appConfig.SQLiteDBPath,

		MySQLHost:     appConfig.MySQL.Host,
		MySQLPort:     appConfig.MySQL.Port,
		MySQLUser:     appConfig.MySQL.User,
		MySQLPassword: appConfig.MySQL.Password,
		MySQLDatabase: appConfig.MySQL.Database,

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

func (c Config) mysqlOptions() storage.MySQLOptions {
	return storage.MySQLOptions{
		Host:     c.MySQLHost,
		Port:     c.MySQLPort,
		User:     c.MySQLUser,
		Password: c.MySQLPassword,
		Database: c.MySQLDatabase,
	}
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MySQLBackend:
		if err := c.mysqlOptions().Validate(); err != nil {
			return fmt.Errorf("mysql backend: %w", err)
		}
	case MemoryBackend:
		// nothing to check
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{SQLiteBackend, MySQLBackend, MemoryBackend}
}
