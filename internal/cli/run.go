package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/0PandaDEV/ziit-agent/internal/events"
	"github.com/0PandaDEV/ziit-agent/internal/service_registry"
	"github.com/0PandaDEV/ziit-agent/internal/tracker"
	"github.com/0PandaDEV/ziit-agent/internal/utils"
	"github.com/0PandaDEV/ziit-agent/pkg/file"
	"github.com/0PandaDEV/ziit-agent/pkg/sysinfo"
	"github.com/0PandaDEV/ziit-agent/pkg/transport"
	"github.com/0PandaDEV/ziit-agent/pkg/ziitconfig"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const offlineQueueFileName = "offline_heartbeats.json"

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the agent, consuming editor events from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent()
		},
	}
}

func runAgent() error {
	// Structured logging goes to stderr; stdin carries the event stream.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	fileClient := file.NewFileService()

	config, err := utils.LoadConfig(resolveConfigPath(), fileClient)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, err := zerolog.ParseLevel(config.Agent.LogLevel); err == nil {
		logger = logger.Level(level)
	} else {
		logger.Warn().Str("log_level", config.Agent.LogLevel).Msg("Unknown log level, using info")
	}

	// A unique session ID distinguishes concurrent agent processes in logs
	// and in the transport User-Agent.
	sessionID := uuid.New().String()
	logger = logger.With().Str("session_id", sessionID).Logger()
	logger.Info().Str("version", Version).Msg("ziit-agent starting")

	dataDir, err := resolveDataDir(config)
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := fileClient.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	queue := tracker.NewOfflineQueue(filepath.Join(dataDir, offlineQueueFileName), fileClient, logger)
	if err := queue.Load(); err != nil {
		logger.Error().Err(err).Msg("Failed to load offline queue, starting empty")
	}

	store, err := newCredentialStore(fileClient, logger)
	if err != nil {
		return err
	}

	transportClient := transport.NewHTTPClient(
		time.Duration(config.HTTP.Timeout)*time.Second,
		fmt.Sprintf("ziit-agent/%s (%s)", Version, sessionID),
		logger,
	)

	engine := tracker.NewDeliveryEngine(transportClient, store, queue, logger)

	heartbeatInterval := time.Duration(config.Intervals.Heartbeat) * time.Second
	activityTracker := tracker.NewTracker(
		config.Agent.EditorName,
		sysinfo.OSName(),
		heartbeatInterval,
		tracker.GitMetadataResolver{},
		engine,
		logger,
	)
	debouncer := tracker.NewDebouncer(heartbeatInterval, logger)

	registry := service_registry.NewServiceRegistry(logger)
	registry.RegisterServices(config, activityTracker, engine)
	if err := registry.StartServices(); err != nil {
		return fmt.Errorf("failed to start services: %w", err)
	}
	logger.Info().Msg("All services started successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := events.NewHandler(debouncer, activityTracker, logger)
	source := events.NewStdinSource(os.Stdin, handler, logger)

	sourceDone := make(chan error, 1)
	go func() {
		sourceDone <- source.Run(ctx)
	}()

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stopCh:
		logger.Info().Msg("Shutting down gracefully...")
	case err := <-sourceDone:
		if err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("Event stream failed")
		}
		logger.Info().Msg("Event stream ended, shutting down...")
	}

	cancel()
	if err := registry.StopServices(); err != nil {
		logger.Error().Err(err).Msg("Some services failed to stop cleanly")
	}

	// Shutdown guarantees durability, not delivery: persist the queue once,
	// synchronously, and leave the flush to the next run.
	if err := queue.Persist(); err != nil {
		logger.Error().Err(err).Msg("Failed to persist offline queue on shutdown")
	}
	return nil
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return "configs/config.yaml"
}

func resolveDataDir(config *utils.Config) (string, error) {
	if config.Agent.DataDir != "" {
		return config.Agent.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ziit"), nil
}

func newCredentialStore(fileClient file.FileOperations, logger zerolog.Logger) (*ziitconfig.Store, error) {
	credentialPath, err := ziitconfig.DefaultConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	legacyPath, err := ziitconfig.DefaultLegacyPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve legacy config path: %w", err)
	}
	return ziitconfig.NewStore(credentialPath, legacyPath, fileClient, logger), nil
}
