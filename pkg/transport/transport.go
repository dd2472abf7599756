package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/0PandaDEV/ziit-agent/internal/models"
	"github.com/rs/zerolog"
)

// Client defines the calls the agent makes against a Ziit server.
type Client interface {
	SendHeartbeat(ctx context.Context, baseURL, apiKey string, heartbeat models.Heartbeat) error
	SendBatch(ctx context.Context, baseURL, apiKey string, heartbeats []models.Heartbeat) error
	FetchSummary(ctx context.Context, baseURL, apiKey string) (*models.DailySummary, error)
}

// HTTPError is a failed server response. The status code is kept so callers
// can classify authorization failures without parsing error strings.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server returned HTTP %d: %s", e.StatusCode, e.Body)
}

// IsAuthFailure reports whether the response indicates a rejected API key.
// Some deployments sit behind proxies that rewrite the status, so the body
// message is checked as a fallback.
func (e *HTTPError) IsAuthFailure() bool {
	if e.StatusCode == http.StatusUnauthorized {
		return true
	}
	return strings.Contains(strings.ToLower(e.Body), "invalid api key")
}

// IsAuthFailure reports whether err wraps an authorization failure.
func IsAuthFailure(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.IsAuthFailure()
}

// HTTPClient talks to the Ziit REST endpoints.
type HTTPClient struct {
	client    *http.Client
	userAgent string
	logger    zerolog.Logger
}

// NewHTTPClient creates an HTTPClient with a per-request timeout.
func NewHTTPClient(timeout time.Duration, userAgent string, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// SendHeartbeat delivers a single heartbeat.
func (c *HTTPClient) SendHeartbeat(ctx context.Context, baseURL, apiKey string, heartbeat models.Heartbeat) error {
	url := strings.TrimSuffix(baseURL, "/") + "/api/external/heartbeats"
	c.logger.Debug().Str("url", url).Msg("Sending heartbeat")
	return c.postJSON(ctx, url, apiKey, heartbeat)
}

// SendBatch delivers the given heartbeats in one call, oldest first.
func (c *HTTPClient) SendBatch(ctx context.Context, baseURL, apiKey string, heartbeats []models.Heartbeat) error {
	url := strings.TrimSuffix(baseURL, "/") + "/api/external/batch"
	c.logger.Debug().Int("count", len(heartbeats)).Str("url", url).Msg("Sending heartbeat batch")
	return c.postJSON(ctx, url, apiKey, heartbeats)
}

// FetchSummary retrieves today's aggregate usage, adjusted to the local
// midnight via the timezone offset query parameter.
func (c *HTTPClient) FetchSummary(ctx context.Context, baseURL, apiKey string) (*models.DailySummary, error) {
	_, offset := time.Now().Zone()
	url := fmt.Sprintf("%s/api/external/stats?timeRange=today&midnightOffsetSeconds=%d&t=%d",
		strings.TrimSuffix(baseURL, "/"), offset, time.Now().UnixMilli())
	c.logger.Debug().Str("url", url).Msg("Fetching daily summary")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := responseError(resp); err != nil {
		return nil, err
	}

	var summary models.DailySummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary response: %w", err)
	}
	return &summary, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, url, apiKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req, apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return responseError(resp)
}

func (c *HTTPClient) setHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// responseError converts a non-2xx response into an *HTTPError.
func responseError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
