package http

import (
	"net/http"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/service"
)

type Handler struct {
	services *service.Services

	unlockLimiter *ipLimiter

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. security configures the per-IP
// limiter in front of the emergency unlock route.
func NewHandler(services *service.Services, security config.Security, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		unlockLimiter: newIPLimiter(security.UnlockRate, security.UnlockBurst, unlockLimiterTTL),
		logger:        logger,
	}
}

// getServerVersion answers with the plain version string so that health checkers and
// the CLI can read it without JSON decoding.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.services.AppInfoService.GetAppVersion(r.Context())))
}
