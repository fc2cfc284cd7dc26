package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// secretFiles names files holding the server secrets, for deployments that
// mount secrets instead of exporting them.
type secretFiles struct {
	PasswordHashKey string `env:"APP_PASSWORD_HASH_KEY_FILE,file"`
	TokenSignKey    string `env:"APP_TOKEN_SIGN_KEY_FILE,file"`
}

// parseEnv fills cfg from environ, or from the process environment when
// environ is nil. A secret set directly wins over its _FILE variant.
func parseEnv(cfg *StructuredConfig, environ map[string]string) error {
	opts := env.Options{Environment: environ}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	var files secretFiles
	if err := env.ParseWithOptions(&files, opts); err != nil {
		return fmt.Errorf("error reading secret files: %w", err)
	}

	if cfg.App.PasswordHashKey == "" {
		cfg.App.PasswordHashKey = strings.TrimSpace(files.PasswordHashKey)
	}
	if cfg.App.TokenSignKey == "" {
		cfg.App.TokenSignKey = strings.TrimSpace(files.TokenSignKey)
	}

	return nil
}
