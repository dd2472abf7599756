package tracker

import (
	"context"
	"sync"

	"github.com/0PandaDEV/ziit-agent/internal/models"
	"github.com/0PandaDEV/ziit-agent/pkg/ziitconfig"
	"github.com/stretchr/testify/mock"
)

// MockTransport is a mock implementation of the transport.Client interface.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SendHeartbeat(ctx context.Context, baseURL, apiKey string, heartbeat models.Heartbeat) error {
	args := m.Called(ctx, baseURL, apiKey, heartbeat)
	return args.Error(0)
}

func (m *MockTransport) SendBatch(ctx context.Context, baseURL, apiKey string, heartbeats []models.Heartbeat) error {
	args := m.Called(ctx, baseURL, apiKey, heartbeats)
	return args.Error(0)
}

func (m *MockTransport) FetchSummary(ctx context.Context, baseURL, apiKey string) (*models.DailySummary, error) {
	args := m.Called(ctx, baseURL, apiKey)
	if summary := args.Get(0); summary != nil {
		return summary.(*models.DailySummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCredentials is a mock implementation of the CredentialReader interface.
type MockCredentials struct {
	mock.Mock
}

func (m *MockCredentials) Read() (ziitconfig.Config, error) {
	args := m.Called()
	return args.Get(0).(ziitconfig.Config), args.Error(1)
}

// staticResolver returns fixed metadata for every file.
type staticResolver struct {
	language string
	project  string
	branch   string
}

func (r staticResolver) Language(string) string { return r.language }
func (r staticResolver) Project(string) string  { return r.project }
func (r staticResolver) Branch(string) string   { return r.branch }

// recordingProcessor captures every heartbeat handed to it.
type recordingProcessor struct {
	mu         sync.Mutex
	heartbeats []models.Heartbeat
}

func (p *recordingProcessor) Process(_ context.Context, heartbeat models.Heartbeat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.heartbeats = append(p.heartbeats, heartbeat)
}

func (p *recordingProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.heartbeats)
}
