package events

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
)

// Event is one editor notification on the wire: newline-delimited JSON.
type Event struct {
	URI      string `json:"uri"`
	Language string `json:"language,omitempty"`
	Open     bool   `json:"open,omitempty"`
	Save     bool   `json:"save,omitempty"`
}

// StdinSource reads editor events from a stream and dispatches them to a
// Handler. Malformed lines are logged and skipped.
type StdinSource struct {
	reader  io.Reader
	handler *Handler
	logger  zerolog.Logger
}

// NewStdinSource creates a StdinSource reading from r.
func NewStdinSource(r io.Reader, handler *Handler, logger zerolog.Logger) *StdinSource {
	return &StdinSource{
		reader:  r,
		handler: handler,
		logger:  logger,
	}
}

// Run consumes events until the stream ends or ctx is cancelled.
func (s *StdinSource) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			s.logger.Warn().Err(err).Msg("Skipping malformed event line")
			continue
		}
		if event.URI == "" {
			s.logger.Warn().Msg("Skipping event without uri")
			continue
		}

		switch {
		case event.Open:
			s.handler.HandleOpen(event.URI)
		case event.Save:
			s.handler.HandleSave(ctx, event.URI, event.Language)
		default:
			s.handler.HandleChange(ctx, event.URI, event.Language)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	s.logger.Info().Msg("Event stream closed")
	return nil
}
