package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/0PandaDEV/ziit-agent/internal/models"
	"github.com/0PandaDEV/ziit-agent/pkg/language"
	"github.com/0PandaDEV/ziit-agent/pkg/project"
	"github.com/rs/zerolog"
)

// MetadataResolver resolves contextual metadata for a file path. All
// methods are best-effort lookups returning empty strings when unknown.
type MetadataResolver interface {
	Language(filePath string) string
	Project(filePath string) string
	Branch(filePath string) string
}

// GitMetadataResolver resolves metadata from file extensions and git.
type GitMetadataResolver struct{}

func (GitMetadataResolver) Language(filePath string) string { return language.Detect(filePath) }
func (GitMetadataResolver) Project(filePath string) string  { return project.Detect(filePath) }
func (GitMetadataResolver) Branch(filePath string) string   { return project.DetectBranch(filePath) }

// HeartbeatProcessor consumes built heartbeats for delivery.
type HeartbeatProcessor interface {
	Process(ctx context.Context, heartbeat models.Heartbeat)
}

// Tracker turns activity signals into heartbeats. It applies the coarse
// justification gate (file changed, interval elapsed, or forced) on top of
// the Debouncer, builds the immutable heartbeat record, and hands it to the
// delivery engine.
type Tracker struct {
	editor   string
	osName   string
	interval time.Duration
	resolver MetadataResolver
	delivery HeartbeatProcessor
	logger   zerolog.Logger

	mu            sync.Mutex
	lastHeartbeat time.Time
	lastFile      string
}

// NewTracker creates a Tracker reporting the given editor and OS names.
func NewTracker(editor, osName string, interval time.Duration, resolver MetadataResolver,
	delivery HeartbeatProcessor, logger zerolog.Logger) *Tracker {

	return &Tracker{
		editor:   editor,
		osName:   osName,
		interval: interval,
		resolver: resolver,
		delivery: delivery,
		logger:   logger,
	}
}

// HandleActivity records editor activity for filePath (empty for an idle
// tick) and sends a heartbeat when justified: the file differs from the
// last reported one, the heartbeat interval has elapsed, or force is set.
// The decision and state update happen atomically; delivery runs outside
// the lock.
func (t *Tracker) HandleActivity(ctx context.Context, filePath, languageHint string, force bool) {
	now := time.Now()

	t.mu.Lock()
	fileChanged := filePath != "" && filePath != t.lastFile
	intervalElapsed := t.lastHeartbeat.IsZero() || now.Sub(t.lastHeartbeat) >= t.interval

	if !force && !fileChanged && !intervalElapsed {
		t.mu.Unlock()
		t.logger.Debug().Msg("Skipping heartbeat: not enough activity or time passed")
		return
	}

	t.lastHeartbeat = now
	if filePath != "" {
		t.lastFile = filePath
	}
	t.mu.Unlock()

	heartbeat := t.buildHeartbeat(now, filePath, languageHint)
	t.logger.Debug().Str("file", filePath).Bool("force", force).Msg("Sending heartbeat")
	t.delivery.Process(ctx, heartbeat)
}

// buildHeartbeat assembles the immutable heartbeat record for an activity
// signal, resolving language, project and branch from the file path.
func (t *Tracker) buildHeartbeat(now time.Time, filePath, languageHint string) models.Heartbeat {
	heartbeat := models.Heartbeat{
		Timestamp: now.UTC().Format(time.RFC3339),
		Editor:    t.editor,
		OS:        t.osName,
	}

	if filePath != "" {
		heartbeat.File = &filePath
	}

	lang := languageHint
	if lang == "" {
		lang = t.resolver.Language(filePath)
	}
	if lang != "" {
		heartbeat.Language = &lang
	}

	if proj := t.resolver.Project(filePath); proj != "" {
		heartbeat.Project = &proj
	}
	if branch := t.resolver.Branch(filePath); branch != "" {
		heartbeat.Branch = &branch
	}

	return heartbeat
}
