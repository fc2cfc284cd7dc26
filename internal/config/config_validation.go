// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the merged server configuration can start the
// server: a database, a blob directory and both secret keys are required.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.BinaryDataDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.PasswordHashKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Security.UnlockRate <= 0 || cfg.Security.UnlockBurst <= 0 || cfg.Security.KDFConcurrency <= 0 {
		return ErrInvalidSecurityConfigs
	}

	if cfg.Workers.RotationLeaseTTL <= 0 || cfg.Workers.LeaseSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.RotationPageSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
