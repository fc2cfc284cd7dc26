package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/legacy-shield/internal/logger"
)

// LeaseSweeper is the subset of the emergency service the sweeper needs.
type LeaseSweeper interface {
	SweepExpiredLeases(ctx context.Context) (int64, error)
}

// leaseSweeper clears rotation leases whose holder died without releasing
// them, so a later rotation on another device does not wait for the TTL
// check on every request.
type leaseSweeper struct {
	sweeper  LeaseSweeper
	interval time.Duration

	logger *logger.Logger
}

// NewLeaseSweeper returns a worker sweeping expired leases every interval.
// A non-positive interval falls back to one minute.
func NewLeaseSweeper(sweeper LeaseSweeper, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &leaseSweeper{sweeper: sweeper, interval: interval, logger: logger}
}

func (s *leaseSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("lease sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("lease sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *leaseSweeper) sweep(ctx context.Context) {
	n, err := s.sweeper.SweepExpiredLeases(ctx)
	if err != nil {
		s.logger.Err(err).Msg("sweeping expired leases failed")
		return
	}
	if n > 0 {
		s.logger.Info().Int64("cleared", n).Msg("expired rotation leases cleared")
	}
}
