package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0PandaDEV/ziit-agent/internal/models"
	"github.com/0PandaDEV/ziit-agent/internal/utils"
	"github.com/0PandaDEV/ziit-agent/pkg/file"
	"github.com/0PandaDEV/ziit-agent/pkg/sysinfo"
	"github.com/0PandaDEV/ziit-agent/pkg/ziitconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newSetAPIKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-api-key <key>",
		Short: "Store the Ziit API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := commandStore()
			if err != nil {
				return err
			}
			if err := store.SetAPIKey(args[0]); err != nil {
				return fmt.Errorf("failed to set API key: %w", err)
			}
			fmt.Println("API key updated successfully")
			return nil
		},
	}
}

func newSetBaseURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-base-url <url>",
		Short: "Store the Ziit server base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := commandStore()
			if err != nil {
				return err
			}
			if err := store.SetBaseURL(args[0]); err != nil {
				return fmt.Errorf("failed to set base URL: %w", err)
			}
			fmt.Println("Base URL updated successfully")
			return nil
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the Ziit dashboard URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := commandStore()
			if err != nil {
				return err
			}
			config, err := store.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			fmt.Printf("%s/dashboard\n", strings.TrimSuffix(config.ResolvedBaseURL(), "/"))
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and offline queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			fileClient := file.NewFileService()

			store, err := commandStore()
			if err != nil {
				return err
			}
			config, err := store.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			apiKeyState := "Not Set"
			if config.APIKey != "" {
				apiKeyState = "Set"
			}

			fmt.Printf("Config:   %s\n", store.Path())
			fmt.Printf("API Key:  %s\n", apiKeyState)
			fmt.Printf("Base URL: %s\n", config.ResolvedBaseURL())
			fmt.Printf("Platform: %s\n", sysinfo.Platform())
			fmt.Printf("Queued:   %d heartbeat(s)\n", queuedHeartbeats(fileClient))
			return nil
		},
	}
}

// queuedHeartbeats counts heartbeats awaiting delivery. Best-effort: any
// read problem reports zero.
func queuedHeartbeats(fileClient file.FileOperations) int {
	agentConfig, err := utils.LoadConfig(resolveConfigPath(), fileClient)
	if err != nil {
		return 0
	}
	dataDir, err := resolveDataDir(agentConfig)
	if err != nil {
		return 0
	}

	var heartbeats []models.Heartbeat
	if err := fileClient.ReadJsonFile(filepath.Join(dataDir, offlineQueueFileName), &heartbeats); err != nil {
		return 0
	}
	return len(heartbeats)
}

func commandStore() (*ziitconfig.Store, error) {
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	return newCredentialStore(file.NewFileService(), logger)
}
