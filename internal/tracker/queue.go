package tracker

import (
	"sync"

	"github.com/0PandaDEV/ziit-agent/internal/models"
	"github.com/0PandaDEV/ziit-agent/pkg/file"
	"github.com/rs/zerolog"
)

// OfflineQueue is an ordered, durable buffer of heartbeats awaiting
// delivery. Heartbeats append at the tail and drain from the head; a failed
// batch is restored at the head so chronological order survives retries.
// Every mutation snapshots the full queue to disk, so any crash leaves a
// resumable state.
type OfflineQueue struct {
	path       string
	fileClient file.FileOperations
	logger     zerolog.Logger

	mu         sync.Mutex
	heartbeats []models.Heartbeat
}

// NewOfflineQueue creates an OfflineQueue persisted at path.
func NewOfflineQueue(path string, fileClient file.FileOperations, logger zerolog.Logger) *OfflineQueue {
	return &OfflineQueue{
		path:       path,
		fileClient: fileClient,
		logger:     logger,
	}
}

// Load reads the persisted snapshot. A corrupt file is discarded and the
// queue starts empty; availability wins over perfect retention here.
func (q *OfflineQueue) Load() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	exists, err := q.fileClient.IsFileExists(q.path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	var heartbeats []models.Heartbeat
	if err := q.fileClient.ReadJsonFile(q.path, &heartbeats); err != nil {
		q.logger.Error().Err(err).Str("path", q.path).Msg("Corrupt offline queue file, starting fresh")
		if removeErr := q.fileClient.RemoveFile(q.path); removeErr != nil {
			q.logger.Warn().Err(removeErr).Msg("Could not remove corrupt queue file")
		}
		return nil
	}

	q.heartbeats = heartbeats
	q.logger.Info().Int("count", len(heartbeats)).Msg("Loaded offline heartbeats")
	return nil
}

// Enqueue appends a heartbeat and persists the snapshot. A failed disk
// write is logged but does not fail the enqueue; the in-memory heartbeat
// is the one that must not be lost.
func (q *OfflineQueue) Enqueue(heartbeat models.Heartbeat) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.heartbeats = append(q.heartbeats, heartbeat)
	q.logger.Debug().Int("size", len(q.heartbeats)).Msg("Heartbeat added to offline queue")
	q.persistLocked()
}

// DrainAll atomically removes and returns the entire queue contents in
// order. The snapshot is not rewritten here; the caller persists once the
// batch outcome is known.
func (q *OfflineQueue) DrainAll() []models.Heartbeat {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := q.heartbeats
	q.heartbeats = nil
	return batch
}

// Restore puts a failed batch back at the front of the queue in its
// original order and persists the snapshot.
func (q *OfflineQueue) Restore(batch []models.Heartbeat) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.heartbeats = append(append([]models.Heartbeat{}, batch...), q.heartbeats...)
	q.persistLocked()
}

// Persist writes the current snapshot to disk.
func (q *OfflineQueue) Persist() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.persistLocked()
}

// Len returns the number of queued heartbeats.
func (q *OfflineQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heartbeats)
}

// Snapshot returns a copy of the queued heartbeats in order.
func (q *OfflineQueue) Snapshot() []models.Heartbeat {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.Heartbeat{}, q.heartbeats...)
}

func (q *OfflineQueue) persistLocked() error {
	snapshot := q.heartbeats
	if snapshot == nil {
		// nil marshals to JSON null; the file format is always an array
		snapshot = []models.Heartbeat{}
	}
	if err := q.fileClient.WriteJsonFile(q.path, snapshot); err != nil {
		q.logger.Error().Err(err).Str("path", q.path).Msg("Failed to persist offline queue")
		return err
	}
	return nil
}
