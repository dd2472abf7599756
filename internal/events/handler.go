package events

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
)

// Debouncer decides whether a raw event should produce an activity signal.
type Debouncer interface {
	Observe(resource string, isWrite bool, now time.Time) bool
}

// ActivitySink receives qualifying activity signals.
type ActivitySink interface {
	HandleActivity(ctx context.Context, filePath, languageHint string, force bool)
}

// Handler is the boundary between editor notifications and the core. It
// converts file:// URIs to paths, tracks which files are open and focused,
// debounces change events, and forwards qualifying activity. Saves are
// always forwarded as forced signals.
type Handler struct {
	debouncer Debouncer
	sink      ActivitySink
	logger    zerolog.Logger

	openedFiles cmap.ConcurrentMap[string, struct{}]

	mu      sync.Mutex
	focused string
}

// NewHandler creates a Handler feeding the given sink.
func NewHandler(debouncer Debouncer, sink ActivitySink, logger zerolog.Logger) *Handler {
	return &Handler{
		debouncer:   debouncer,
		sink:        sink,
		logger:      logger,
		openedFiles: cmap.New[struct{}](),
	}
}

// HandleOpen records that a file was opened. No heartbeat yet; the first
// interaction with the file counts as the activity.
func (h *Handler) HandleOpen(uri string) {
	h.openedFiles.Set(uri, struct{}{})
	h.logger.Debug().Str("uri", uri).Msg("File opened and tracked")
}

// HandleChange processes an edit notification for the focused file.
func (h *Handler) HandleChange(ctx context.Context, uri, languageHint string) {
	wasJustOpened := h.openedFiles.Has(uri)
	h.openedFiles.Remove(uri)

	h.mu.Lock()
	focusChanged := h.focused != uri
	h.focused = uri
	h.mu.Unlock()

	if wasJustOpened || focusChanged {
		h.logger.Debug().Str("uri", uri).Msg("File became focused")
	}

	h.handleActivity(ctx, uri, languageHint, false)
}

// HandleSave processes a save notification. Saves always force a heartbeat.
func (h *Handler) HandleSave(ctx context.Context, uri, languageHint string) {
	h.openedFiles.Remove(uri)

	h.mu.Lock()
	h.focused = uri
	h.mu.Unlock()

	h.handleActivity(ctx, uri, languageHint, true)
}

func (h *Handler) handleActivity(ctx context.Context, uri, languageHint string, isWrite bool) {
	if !h.debouncer.Observe(uri, isWrite, time.Now()) {
		return
	}

	filePath, err := URIToPath(uri)
	if err != nil {
		h.logger.Error().Err(err).Str("uri", uri).Msg("Could not determine file path from URI")
		return
	}

	h.sink.HandleActivity(ctx, filePath, languageHint, isWrite)
}

// URIToPath converts a file:// URI into a filesystem path. Other URIs pass
// through unchanged.
func URIToPath(uri string) (string, error) {
	if !strings.HasPrefix(uri, "file://") {
		return uri, nil
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	return parsed.Path, nil
}
