package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// SessionIdleTimeout clears the key session after this much inactivity.
	SessionIdleTimeout time.Duration
	// LogLevel is the zerolog level of the CLI log file.
	LogLevel string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the vault server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite path of the rotation journal.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client rotation settings.
type ClientWorkers struct {
	// RotationPageSize is the number of files requested per listing page.
	RotationPageSize int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates the CLI configuration. Command-line
// flags belong to the CLI itself, so only env, the JSON file and defaults
// are merged here; the CLI overrides fields afterwards via ApplyOverrides.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg), nil
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			SessionIdleTimeout: cfg.App.SessionIdleTimeout,
			LogLevel:           cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{RotationPageSize: cfg.Workers.RotationPageSize},
	}
}

// ApplyOverrides replaces fields with the non-empty CLI flag values and
// validates the result.
func (cfg *ClientConfig) ApplyOverrides(serverAddress, journalDSN string) error {
	if serverAddress != "" {
		cfg.Adapter.HTTPAddress = serverAddress
	}
	if journalDSN != "" {
		cfg.Storage.DB.DSN = journalDSN
	}

	return cfg.validate()
}
