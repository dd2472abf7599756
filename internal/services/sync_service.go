package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Syncer is the part of the delivery engine the sync loop drives.
type Syncer interface {
	Sync(ctx context.Context) error
}

// SyncService periodically flushes the offline heartbeat queue.
type SyncService struct {
	Interval time.Duration
	Syncer   Syncer
	Logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncService initializes a new SyncService.
func NewSyncService(interval time.Duration, syncer Syncer, logger zerolog.Logger) *SyncService {
	return &SyncService{
		Interval: interval,
		Syncer:   syncer,
		Logger:   logger,
	}
}

// Start launches the sync loop in a separate goroutine.
func (s *SyncService) Start() error {
	if s.ctx != nil {
		s.Logger.Warn().Msg("SyncService is already running")
		return errors.New("sync service is already running")
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop()
	}()

	s.Logger.Info().Dur("interval", s.Interval).Msg("SyncService started successfully")
	return nil
}

// Stop gracefully stops the sync service.
func (s *SyncService) Stop() error {
	if s.ctx == nil {
		s.Logger.Warn().Msg("SyncService is not running")
		return errors.New("sync service is not running")
	}

	s.cancel()
	s.wg.Wait()

	s.ctx = nil
	s.cancel = nil

	s.Logger.Info().Msg("SyncService stopped successfully")
	return nil
}

func (s *SyncService) runLoop() {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Syncer.Sync(s.ctx); err != nil {
				s.Logger.Error().Err(err).Msg("Error syncing offline heartbeats")
			}

		case <-s.ctx.Done():
			s.Logger.Info().Msg("SyncService stopping gracefully")
			return
		}
	}
}
