package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0PandaDEV/ziit-agent/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *HTTPClient {
	return NewHTTPClient(5*time.Second, "ziit-agent/test", zerolog.Nop())
}

func sampleHeartbeat() models.Heartbeat {
	f := "/src/main.go"
	lang := "Go"
	return models.Heartbeat{
		Timestamp: "2026-08-29T10:00:00Z",
		File:      &f,
		Language:  &lang,
		Editor:    "Zed",
		OS:        "linux",
	}
}

// TestHTTPClient_SendHeartbeat tests the single-heartbeat request shape.
func TestHTTPClient_SendHeartbeat(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody models.Heartbeat

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := newTestClient().SendHeartbeat(context.Background(), server.URL, "test-key", sampleHeartbeat())

	require.NoError(t, err)
	assert.Equal(t, "/api/external/heartbeats", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, sampleHeartbeat(), gotBody)
}

// TestHTTPClient_SendBatch tests that the batch endpoint receives all
// heartbeats in order.
func TestHTTPClient_SendBatch(t *testing.T) {
	var gotPath string
	var gotBody []models.Heartbeat

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer server.Close()

	batch := []models.Heartbeat{sampleHeartbeat(), sampleHeartbeat()}
	err := newTestClient().SendBatch(context.Background(), server.URL, "test-key", batch)

	require.NoError(t, err)
	assert.Equal(t, "/api/external/batch", gotPath)
	assert.Equal(t, batch, gotBody)
}

// TestHTTPClient_FetchSummary tests summary decoding and query parameters.
func TestHTTPClient_FetchSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/external/stats", r.URL.Path)
		assert.Equal(t, "today", r.URL.Query().Get("timeRange"))
		assert.NotEmpty(t, r.URL.Query().Get("midnightOffsetSeconds"))

		json.NewEncoder(w).Encode(models.DailySummary{
			Summaries: []models.SummaryEntry{{Date: "2026-08-29", TotalSeconds: 5400}},
			Timezone:  "UTC",
		})
	}))
	defer server.Close()

	summary, err := newTestClient().FetchSummary(context.Background(), server.URL, "test-key")

	require.NoError(t, err)
	require.Len(t, summary.Summaries, 1)
	assert.Equal(t, uint64(5400), summary.Summaries[0].TotalSeconds)
	assert.Equal(t, "UTC", summary.Timezone)
}

// TestHTTPClient_ErrorCarriesStatusCode tests that failed responses come
// back as *HTTPError with the status code preserved.
func TestHTTPClient_ErrorCarriesStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "something broke", http.StatusInternalServerError)
	}))
	defer server.Close()

	err := newTestClient().SendHeartbeat(context.Background(), server.URL, "test-key", sampleHeartbeat())

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.False(t, httpErr.IsAuthFailure())
}

// TestHTTPError_AuthClassification tests authorization-failure detection
// by status code and by body message fallback.
func TestHTTPError_AuthClassification(t *testing.T) {
	assert.True(t, (&HTTPError{StatusCode: http.StatusUnauthorized}).IsAuthFailure())
	assert.True(t, (&HTTPError{StatusCode: http.StatusForbidden, Body: "Invalid API key provided"}).IsAuthFailure())
	assert.False(t, (&HTTPError{StatusCode: http.StatusInternalServerError, Body: "oops"}).IsAuthFailure())

	assert.True(t, IsAuthFailure(&HTTPError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, IsAuthFailure(errors.New("connection refused")))
	assert.False(t, IsAuthFailure(nil))
}
