package handler

import (
	"testing"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(httpAddr, grpcAddr string) config.StructuredConfig {
	return config.StructuredConfig{
		Server:   config.Server{HTTPAddress: httpAddr, GRPCAddress: grpcAddr},
		Security: config.Security{UnlockRate: 1, UnlockBurst: 5},
	}
}

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		httpAddr string
		grpcAddr string
		wantHTTP bool
		wantGRPC bool
	}{
		{"both", ":8080", ":9090", true, true},
		{"only http", ":8080", "", true, false},
		{"only grpc", "", ":9090", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(&service.Services{}, nil, testConfig(tt.httpAddr, tt.grpcAddr), logger.Nop())

			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_NoAddresses(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, nil, testConfig("", ""), logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}
