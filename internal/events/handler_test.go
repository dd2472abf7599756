package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passAllDebouncer accepts every event and records what it saw.
type passAllDebouncer struct {
	mu       sync.Mutex
	observed []observation
	suppress bool
}

type observation struct {
	resource string
	isWrite  bool
}

func (d *passAllDebouncer) Observe(resource string, isWrite bool, _ time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observed = append(d.observed, observation{resource: resource, isWrite: isWrite})
	return !d.suppress
}

// recordingSink captures forwarded activity signals.
type recordingSink struct {
	mu      sync.Mutex
	signals []signal
}

type signal struct {
	filePath string
	language string
	force    bool
}

func (s *recordingSink) HandleActivity(_ context.Context, filePath, languageHint string, force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = append(s.signals, signal{filePath: filePath, language: languageHint, force: force})
}

func TestURIToPath(t *testing.T) {
	path, err := URIToPath("file:///home/me/src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/src/main.go", path)

	path, err = URIToPath("file:///a%20b/c.go")
	require.NoError(t, err)
	assert.Equal(t, "/a b/c.go", path)

	// non-file URIs pass through unchanged
	path, err = URIToPath("untitled:Untitled-1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:Untitled-1", path)
}

// TestHandler_ChangeForwardsActivity tests that a change event reaches the
// sink with the URI converted to a path.
func TestHandler_ChangeForwardsActivity(t *testing.T) {
	debouncer := &passAllDebouncer{}
	sink := &recordingSink{}
	h := NewHandler(debouncer, sink, zerolog.Nop())

	h.HandleChange(context.Background(), "file:///src/main.go", "Go")

	require.Len(t, sink.signals, 1)
	assert.Equal(t, "/src/main.go", sink.signals[0].filePath)
	assert.Equal(t, "Go", sink.signals[0].language)
	assert.False(t, sink.signals[0].force)
}

// TestHandler_SaveForcesHeartbeat tests that a save event is forwarded as
// a forced signal.
func TestHandler_SaveForcesHeartbeat(t *testing.T) {
	debouncer := &passAllDebouncer{}
	sink := &recordingSink{}
	h := NewHandler(debouncer, sink, zerolog.Nop())

	h.HandleSave(context.Background(), "file:///src/main.go", "")

	require.Len(t, sink.signals, 1)
	assert.True(t, sink.signals[0].force)
	require.Len(t, debouncer.observed, 1)
	assert.True(t, debouncer.observed[0].isWrite)
}

// TestHandler_SuppressedEventNeverReachesSink tests the debounce gate.
func TestHandler_SuppressedEventNeverReachesSink(t *testing.T) {
	debouncer := &passAllDebouncer{suppress: true}
	sink := &recordingSink{}
	h := NewHandler(debouncer, sink, zerolog.Nop())

	h.HandleChange(context.Background(), "file:///src/main.go", "")

	assert.Empty(t, sink.signals)
}

// TestHandler_OpenDoesNotSendHeartbeat tests that opening a file only
// tracks it; the first change afterwards is the activity.
func TestHandler_OpenDoesNotSendHeartbeat(t *testing.T) {
	debouncer := &passAllDebouncer{}
	sink := &recordingSink{}
	h := NewHandler(debouncer, sink, zerolog.Nop())

	h.HandleOpen("file:///src/main.go")
	assert.Empty(t, sink.signals)

	h.HandleChange(context.Background(), "file:///src/main.go", "")
	assert.Len(t, sink.signals, 1)
}
