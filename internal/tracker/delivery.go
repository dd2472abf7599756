package tracker

import (
	"context"
	"sync"

	"github.com/0PandaDEV/ziit-agent/internal/models"
	"github.com/0PandaDEV/ziit-agent/pkg/transport"
	"github.com/0PandaDEV/ziit-agent/pkg/ziitconfig"
	"github.com/rs/zerolog"
)

// CredentialReader supplies the API key and base URL for deliveries.
type CredentialReader interface {
	Read() (ziitconfig.Config, error)
}

// DeliveryEngine decides whether heartbeats go over the wire or into the
// offline queue, and tracks connectivity and credential health. Both flags
// start optimistic and are flipped by delivery outcomes; network calls
// always happen with the state lock released.
type DeliveryEngine struct {
	transport   transport.Client
	credentials CredentialReader
	queue       *OfflineQueue
	logger      zerolog.Logger

	mu               sync.Mutex
	online           bool
	validCredentials bool
	lastSummary      *models.DailySummary
}

// NewDeliveryEngine creates a DeliveryEngine wired to the given transport,
// credential store and offline queue.
func NewDeliveryEngine(transportClient transport.Client, credentials CredentialReader,
	queue *OfflineQueue, logger zerolog.Logger) *DeliveryEngine {

	return &DeliveryEngine{
		transport:        transportClient,
		credentials:      credentials,
		queue:            queue,
		online:           true,
		validCredentials: true,
		logger:           logger,
	}
}

// Process attempts to deliver a single heartbeat, queueing it on any
// failure. No error is surfaced: the caller's heartbeat is never lost, and
// that is the whole contract.
func (e *DeliveryEngine) Process(ctx context.Context, heartbeat models.Heartbeat) {
	apiKey, baseURL, ok := e.readCredentials()
	if !ok {
		e.logger.Warn().Msg("API key or base URL not set, queueing heartbeat")
		e.queue.Enqueue(heartbeat)
		e.setCredentialsValid(false)
		return
	}

	if !e.IsOnline() {
		e.logger.Info().Msg("Currently offline, queueing heartbeat")
		e.queue.Enqueue(heartbeat)
		return
	}

	if err := e.transport.SendHeartbeat(ctx, baseURL, apiKey, heartbeat); err != nil {
		e.logger.Error().Err(err).Msg("Failed to send heartbeat, queueing offline")
		e.classifyFailure(err)
		e.queue.Enqueue(heartbeat)
		return
	}

	e.logger.Debug().Msg("Heartbeat sent")
	e.setOnline(true)
	e.setCredentialsValid(true)
}

// Sync delivers the entire offline queue in one batched call. A failed
// batch is restored to the front of the queue in original order, so no
// heartbeat is ever lost or reordered across the failure boundary.
func (e *DeliveryEngine) Sync(ctx context.Context) error {
	if !e.IsOnline() || e.queue.Len() == 0 {
		return nil
	}

	apiKey, baseURL, ok := e.readCredentials()
	if !ok {
		e.logger.Warn().Msg("Cannot sync offline heartbeats: API key or base URL not set")
		e.setCredentialsValid(false)
		return nil
	}

	batch := e.queue.DrainAll()
	if len(batch) == 0 {
		return nil
	}
	e.logger.Info().Int("count", len(batch)).Msg("Syncing offline heartbeats")

	if err := e.transport.SendBatch(ctx, baseURL, apiKey, batch); err != nil {
		e.logger.Error().Err(err).Msg("Batch sync failed, restoring queue")
		e.queue.Restore(batch)
		e.classifyFailure(err)
		return err
	}

	e.logger.Info().Int("count", len(batch)).Msg("Synced offline heartbeats")
	e.setOnline(true)
	e.setCredentialsValid(true)
	if err := e.queue.Persist(); err == nil {
		e.logger.Debug().Msg("Offline queue snapshot cleared")
	}

	// informational only; failure folds into connectivity state
	if err := e.RefreshSummary(ctx); err != nil {
		e.logger.Warn().Err(err).Msg("Post-sync summary refresh failed")
	}
	return nil
}

// RefreshSummary fetches today's aggregate usage. The result is cached for
// the status surface; failures reclassify connectivity and credential
// state but never touch the queue.
func (e *DeliveryEngine) RefreshSummary(ctx context.Context) error {
	apiKey, baseURL, ok := e.readCredentials()
	if !ok {
		e.logger.Warn().Msg("Cannot fetch daily summary: API key or base URL not set")
		e.setCredentialsValid(false)
		return nil
	}

	summary, err := e.transport.FetchSummary(ctx, baseURL, apiKey)
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to fetch daily summary")
		e.classifyFailure(err)
		return err
	}

	e.setOnline(true)
	e.setCredentialsValid(true)

	e.mu.Lock()
	e.lastSummary = summary
	e.mu.Unlock()

	if len(summary.Summaries) > 0 {
		e.logger.Info().Uint64("total_seconds", summary.Summaries[0].TotalSeconds).Msg("Today's coding time")
	} else {
		e.logger.Info().Msg("No summary data for today")
	}
	return nil
}

// IsOnline reports the cached belief about server reachability.
func (e *DeliveryEngine) IsOnline() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.online
}

// HasValidCredentials reports whether the last delivery accepted the API key.
func (e *DeliveryEngine) HasValidCredentials() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validCredentials
}

// LastSummary returns the most recently fetched daily summary, or nil.
func (e *DeliveryEngine) LastSummary() *models.DailySummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSummary
}

// classifyFailure folds a delivery error into the health flags: a rejected
// API key flags the credentials, anything else flags connectivity.
func (e *DeliveryEngine) classifyFailure(err error) {
	if transport.IsAuthFailure(err) {
		e.setCredentialsValid(false)
		return
	}
	e.setOnline(false)
}

func (e *DeliveryEngine) setOnline(online bool) {
	e.mu.Lock()
	changed := e.online != online
	e.online = online
	e.mu.Unlock()

	if changed {
		e.logger.Info().Bool("online", online).Msg("Online status changed")
	}
}

func (e *DeliveryEngine) setCredentialsValid(valid bool) {
	e.mu.Lock()
	changed := e.validCredentials != valid
	e.validCredentials = valid
	e.mu.Unlock()

	if changed {
		e.logger.Info().Bool("valid", valid).Msg("API key status changed")
	}
}

// readCredentials resolves the API key and base URL. ok is false when
// either is effectively unset.
func (e *DeliveryEngine) readCredentials() (apiKey, baseURL string, ok bool) {
	config, err := e.credentials.Read()
	if err != nil {
		e.logger.Error().Err(err).Msg("Failed to read credentials")
		return "", "", false
	}
	baseURL = config.ResolvedBaseURL()
	if config.APIKey == "" || baseURL == "" {
		return "", "", false
	}
	return config.APIKey, baseURL, true
}
