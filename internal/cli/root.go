// Package cli wires up the ziit-agent command surface.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "0.1.0"

var configPath string

// NewRootCmd builds the ziit-agent command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ziit-agent",
		Short: "Track editor activity and report it to a Ziit server",
		Long: `ziit-agent converts editor activity into heartbeats and delivers them to a
Ziit time-tracking server. Heartbeats that cannot be delivered are queued
durably on disk and synced once the server is reachable again.

Editor events arrive on stdin as newline-delimited JSON:
  {"uri": "file:///home/me/src/main.go", "language": "Go", "save": false}`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the agent YAML config file")

	root.AddCommand(
		newRunCmd(),
		newSetAPIKeyCmd(),
		newSetBaseURLCmd(),
		newStatusCmd(),
		newDashboardCmd(),
	)
	return root
}
