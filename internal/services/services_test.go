package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingTracker struct {
	calls atomic.Int64
}

func (c *countingTracker) HandleActivity(_ context.Context, _, _ string, _ bool) {
	c.calls.Add(1)
}

type countingSyncer struct {
	calls atomic.Int64
}

func (c *countingSyncer) Sync(_ context.Context) error {
	c.calls.Add(1)
	return nil
}

type countingFetcher struct {
	calls atomic.Int64
}

func (c *countingFetcher) RefreshSummary(_ context.Context) error {
	c.calls.Add(1)
	return nil
}

// TestIdleHeartbeatService_StartStop tests the start/stop lifecycle and
// double start/stop errors.
func TestIdleHeartbeatService_StartStop(t *testing.T) {
	s := NewIdleHeartbeatService(time.Second, &countingTracker{}, zerolog.Nop())

	assert.NoError(t, s.Start())

	// Try to start again (should fail)
	err := s.Start()
	assert.Error(t, err)
	assert.Equal(t, "idle heartbeat service is already running", err.Error())

	assert.NoError(t, s.Stop())

	// Try to stop again (should fail)
	err = s.Stop()
	assert.Error(t, err)
	assert.Equal(t, "idle heartbeat service is not running", err.Error())
}

// TestIdleHeartbeatService_TicksInvokeTracker tests that each tick runs
// the activity justification check with no new editor signal.
func TestIdleHeartbeatService_TicksInvokeTracker(t *testing.T) {
	tracker := &countingTracker{}
	s := NewIdleHeartbeatService(50*time.Millisecond, tracker, zerolog.Nop())

	assert.NoError(t, s.Start())
	time.Sleep(130 * time.Millisecond)
	assert.NoError(t, s.Stop())

	assert.GreaterOrEqual(t, tracker.calls.Load(), int64(2))
}

// TestSyncService_TicksInvokeSync tests that the sync loop drives the
// delivery engine.
func TestSyncService_TicksInvokeSync(t *testing.T) {
	syncer := &countingSyncer{}
	s := NewSyncService(50*time.Millisecond, syncer, zerolog.Nop())

	assert.NoError(t, s.Start())
	time.Sleep(130 * time.Millisecond)
	assert.NoError(t, s.Stop())

	assert.GreaterOrEqual(t, syncer.calls.Load(), int64(2))
}

// TestSyncService_DoubleStart tests the running-state errors.
func TestSyncService_DoubleStart(t *testing.T) {
	s := NewSyncService(time.Second, &countingSyncer{}, zerolog.Nop())

	assert.NoError(t, s.Start())
	assert.Error(t, s.Start())
	assert.NoError(t, s.Stop())
	assert.Error(t, s.Stop())
}

// TestSummaryService_TicksInvokeFetcher tests that the summary loop
// refreshes periodically.
func TestSummaryService_TicksInvokeFetcher(t *testing.T) {
	fetcher := &countingFetcher{}
	s := NewSummaryService(50*time.Millisecond, fetcher, zerolog.Nop())

	assert.NoError(t, s.Start())
	time.Sleep(130 * time.Millisecond)
	assert.NoError(t, s.Stop())

	assert.GreaterOrEqual(t, fetcher.calls.Load(), int64(2))
}
