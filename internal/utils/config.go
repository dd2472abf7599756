package utils

import (
	"os"

	"github.com/0PandaDEV/ziit-agent/pkg/file"
)

// Config represents the structure of the agent configuration file.
type Config struct {
	Agent struct {
		EditorName string `yaml:"editor_name"` // Editor name reported in heartbeats
		DataDir    string `yaml:"data_dir"`    // Directory for the offline queue (default ~/.ziit)
		LogLevel   string `yaml:"log_level"`   // zerolog level name
	} `yaml:"agent"`

	Intervals struct {
		Heartbeat int `yaml:"heartbeat"` // Idle heartbeat / debounce window (in seconds)
		Sync      int `yaml:"sync"`      // Offline queue sync interval (in seconds)
		Summary   int `yaml:"summary"`   // Daily summary refresh interval (in seconds)
	} `yaml:"intervals"`

	HTTP struct {
		Timeout int `yaml:"timeout"` // Per-request timeout (in seconds)
	} `yaml:"http"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	var config Config
	config.Agent.EditorName = "Zed"
	config.Agent.LogLevel = "info"
	config.Intervals.Heartbeat = 120
	config.Intervals.Sync = 30
	config.Intervals.Summary = 900
	config.HTTP.Timeout = 30
	return &config
}

// LoadConfig loads the YAML configuration from the specified file. A missing
// file yields the defaults; unset fields are filled in from the defaults.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	defaults := DefaultConfig()
	if config.Agent.EditorName == "" {
		config.Agent.EditorName = defaults.Agent.EditorName
	}
	if config.Agent.LogLevel == "" {
		config.Agent.LogLevel = defaults.Agent.LogLevel
	}
	if config.Intervals.Heartbeat <= 0 {
		config.Intervals.Heartbeat = defaults.Intervals.Heartbeat
	}
	if config.Intervals.Sync <= 0 {
		config.Intervals.Sync = defaults.Intervals.Sync
	}
	if config.Intervals.Summary <= 0 {
		config.Intervals.Summary = defaults.Intervals.Summary
	}
	if config.HTTP.Timeout <= 0 {
		config.HTTP.Timeout = defaults.HTTP.Timeout
	}

	return &config, nil
}
