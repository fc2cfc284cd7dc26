// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// legacy-shield server and CLI. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as signing keys,
	// token lifetimes and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the
	// ciphertext blob directory. The CLI reuses Storage.DB.DSN as the path
	// of its local rotation journal.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Security holds abuse-protection settings of the emergency unlock
	// endpoint.
	Security Security `envPrefix:"SECURITY_"`

	// Adapter holds the CLI's view of the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background workers and rotation.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the blob directory settings.
	Files Files `envPrefix:"FILES_"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// PasswordHashKey is the HMAC key applied to client auth hashes before
	// they are stored or compared.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an owner token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// EmergencyTokenDuration specifies how long the read-only credential
	// issued on emergency unlock remains valid.
	// Env: APP_EMERGENCY_TOKEN_DURATION
	EmergencyTokenDuration time.Duration `env:"EMERGENCY_TOKEN_DURATION"`

	// SessionIdleTimeout is how long the CLI keeps keys in memory without
	// use before the key session is cleared.
	// Env: APP_SESSION_IDLE_TIMEOUT
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC health server listens.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Security holds unlock endpoint protection settings.
type Security struct {
	// UnlockRate is the sustained number of unlock attempts per second
	// allowed per client IP.
	// Env: SECURITY_UNLOCK_RATE
	UnlockRate float64 `env:"UNLOCK_RATE"`

	// UnlockBurst is the number of unlock attempts allowed in a burst.
	// Env: SECURITY_UNLOCK_BURST
	UnlockBurst int `env:"UNLOCK_BURST"`

	// KDFConcurrency bounds the number of scrypt verifications running at
	// once on the server.
	// Env: SECURITY_KDF_CONCURRENCY
	KDFConcurrency int `env:"KDF_CONCURRENCY"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string on the server and the SQLite
	// file path on the CLI.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the ciphertext blob store.
type Files struct {
	// BinaryDataDir is the directory encrypted file bodies are stored in.
	// Env: STORAGE_FILES_BINARY_DATA_DIR
	BinaryDataDir string `env:"BINARY_DATA_DIR"`
}

// Adapter holds the CLI's connection settings.
type Adapter struct {
	// HTTPAddress is the base URL of the vault server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the timeout of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background workers and rotation.
type Workers struct {
	// RotationLeaseTTL is how long a rotation lease is held before another
	// rotation for the same user may take over.
	// Env: WORKERS_ROTATION_LEASE_TTL
	RotationLeaseTTL time.Duration `env:"ROTATION_LEASE_TTL"`

	// LeaseSweepInterval is how often expired leases are cleared.
	// Env: WORKERS_LEASE_SWEEP_INTERVAL
	LeaseSweepInterval time.Duration `env:"LEASE_SWEEP_INTERVAL"`

	// RotationPageSize is the number of files fetched per page during
	// rotation.
	// Env: WORKERS_ROTATION_PAGE_SIZE
	RotationPageSize int `env:"ROTATION_PAGE_SIZE"`
}

// GetStructuredConfig loads, merges, defaults and validates the server
// configuration. For each field the first non-zero value wins in the order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(flagArgs()).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
