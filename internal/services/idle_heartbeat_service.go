package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ActivityTracker is the part of the tracker the idle loop drives.
type ActivityTracker interface {
	HandleActivity(ctx context.Context, filePath, languageHint string, force bool)
}

// IdleHeartbeatService periodically re-runs the activity justification
// check with no new editor signal, acting as a keep-alive for a user who
// stays on the same file.
type IdleHeartbeatService struct {
	Interval time.Duration
	Tracker  ActivityTracker
	Logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewIdleHeartbeatService initializes a new IdleHeartbeatService.
func NewIdleHeartbeatService(interval time.Duration, tracker ActivityTracker, logger zerolog.Logger) *IdleHeartbeatService {
	return &IdleHeartbeatService{
		Interval: interval,
		Tracker:  tracker,
		Logger:   logger,
	}
}

// Start launches the idle heartbeat loop in a separate goroutine.
func (s *IdleHeartbeatService) Start() error {
	if s.ctx != nil {
		s.Logger.Warn().Msg("IdleHeartbeatService is already running")
		return errors.New("idle heartbeat service is already running")
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop()
	}()

	s.Logger.Info().Dur("interval", s.Interval).Msg("IdleHeartbeatService started successfully")
	return nil
}

// Stop gracefully stops the idle heartbeat service.
func (s *IdleHeartbeatService) Stop() error {
	if s.ctx == nil {
		s.Logger.Warn().Msg("IdleHeartbeatService is not running")
		return errors.New("idle heartbeat service is not running")
	}

	s.cancel()
	s.wg.Wait()

	s.ctx = nil
	s.cancel = nil

	s.Logger.Info().Msg("IdleHeartbeatService stopped successfully")
	return nil
}

func (s *IdleHeartbeatService) runLoop() {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tracker.HandleActivity(s.ctx, "", "", false)

		case <-s.ctx.Done():
			s.Logger.Info().Msg("IdleHeartbeatService stopping gracefully")
			return
		}
	}
}
