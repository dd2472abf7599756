package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SummaryFetcher is the part of the delivery engine the summary loop drives.
type SummaryFetcher interface {
	RefreshSummary(ctx context.Context) error
}

// SummaryService periodically refreshes today's aggregate usage from the
// server. Purely informational; failures never affect the offline queue.
type SummaryService struct {
	Interval time.Duration
	Fetcher  SummaryFetcher
	Logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSummaryService initializes a new SummaryService.
func NewSummaryService(interval time.Duration, fetcher SummaryFetcher, logger zerolog.Logger) *SummaryService {
	return &SummaryService{
		Interval: interval,
		Fetcher:  fetcher,
		Logger:   logger,
	}
}

// Start launches the summary refresh loop in a separate goroutine.
func (s *SummaryService) Start() error {
	if s.ctx != nil {
		s.Logger.Warn().Msg("SummaryService is already running")
		return errors.New("summary service is already running")
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop()
	}()

	s.Logger.Info().Dur("interval", s.Interval).Msg("SummaryService started successfully")
	return nil
}

// Stop gracefully stops the summary service.
func (s *SummaryService) Stop() error {
	if s.ctx == nil {
		s.Logger.Warn().Msg("SummaryService is not running")
		return errors.New("summary service is not running")
	}

	s.cancel()
	s.wg.Wait()

	s.ctx = nil
	s.cancel = nil

	s.Logger.Info().Msg("SummaryService stopped successfully")
	return nil
}

func (s *SummaryService) runLoop() {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Fetcher.RefreshSummary(s.ctx); err != nil {
				s.Logger.Error().Err(err).Msg("Error fetching daily summary")
			}

		case <-s.ctx.Done():
			s.Logger.Info().Msg("SummaryService stopping gracefully")
			return
		}
	}
}
