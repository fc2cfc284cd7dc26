package config

import (
	"runtime"
	"time"
)

// defaults returns the values used for every field left zero by all
// configuration sources.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:            "legacy-shield",
			TokenDuration:          time.Hour,
			EmergencyTokenDuration: time.Hour,
			SessionIdleTimeout:     15 * time.Minute,
			LogLevel:               "debug",
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 30 * time.Second,
		},
		Security: Security{
			UnlockRate:     0.2,
			UnlockBurst:    5,
			KDFConcurrency: runtime.NumCPU(),
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			RotationLeaseTTL:   5 * time.Minute,
			LeaseSweepInterval: time.Minute,
			RotationPageSize:   100,
		},
	}
}
