// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	"github.com/MKhiriev/legacy-shield/internal/mock"
	"github.com/MKhiriev/legacy-shield/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// countingWorker counts Run calls and blocks until ctx is done.
type countingWorker struct {
	runs atomic.Int32
}

func (c *countingWorker) Run(ctx context.Context) {
	c.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersRunUntilCancelled(t *testing.T) {
	w1, w2 := &countingWorker{}, &countingWorker{}
	ws := &Workers{workers: []Worker{w1, w2}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return w1.runs.Load() == 1 && w2.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	// returns at once with no workers
	ws.Run(context.Background())
}

func TestNewWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	emergency := mock.NewMockEmergencyService(ctrl)

	ws := NewWorkers(&service.Services{EmergencyService: emergency}, config.Workers{LeaseSweepInterval: time.Hour}, logger.Nop())

	assert.Len(t, ws.workers, 1)
}

func TestLeaseSweeper_SweepsOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	emergency := mock.NewMockEmergencyService(ctrl)

	var calls atomic.Int32
	emergency.EXPECT().SweepExpiredLeases(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("db down")
		}
		return 2, nil
	}).MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewLeaseSweeper(emergency, 5*time.Millisecond, logger.Nop()).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestNewLeaseSweeper_DefaultInterval(t *testing.T) {
	w := NewLeaseSweeper(nil, 0, logger.Nop()).(*leaseSweeper)

	assert.Equal(t, time.Minute, w.interval)
}
