package ziitconfig

import (
	"os"
	"path/filepath"

	"github.com/0PandaDEV/ziit-agent/pkg/file"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is used whenever the configuration has no base URL.
	DefaultBaseURL = "https://ziit.app"

	configFileName       = "config.json"
	legacyConfigFileName = ".ziit.json"
)

// Config holds the Ziit server credentials. Both fields are optional; an
// empty value means unset.
type Config struct {
	APIKey  string `json:"apiKey,omitempty"`
	BaseURL string `json:"baseUrl,omitempty"`
}

// ResolvedBaseURL returns the configured base URL or the public default.
func (c Config) ResolvedBaseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

// StoreInterface defines methods for reading and mutating the credential store.
type StoreInterface interface {
	Read() (Config, error)
	Write(config Config) error
	SetAPIKey(apiKey string) error
	SetBaseURL(baseURL string) error
	Path() string
}

// Store persists the Ziit credentials as a JSON file. Reads trigger a
// one-time best-effort migration from the legacy dotfile location.
type Store struct {
	configPath string
	legacyPath string
	fileClient file.FileOperations
	logger     zerolog.Logger
}

// NewStore creates a credential store rooted at the given paths.
func NewStore(configPath, legacyPath string, fileClient file.FileOperations, logger zerolog.Logger) *Store {
	return &Store{
		configPath: configPath,
		legacyPath: legacyPath,
		fileClient: fileClient,
		logger:     logger,
	}
}

// DefaultConfigPath resolves the per-user config file location, honoring
// XDG_CONFIG_HOME when set.
func DefaultConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ziit", configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ziit", configFileName), nil
}

// DefaultLegacyPath resolves the pre-XDG config file location.
func DefaultLegacyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, legacyConfigFileName), nil
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.configPath
}

// Read loads the configuration. A missing file yields a zero Config with no
// error. Migration failures are logged and never fatal.
func (s *Store) Read() (Config, error) {
	if err := s.migrateLegacyConfig(); err != nil {
		s.logger.Warn().Err(err).Msg("Legacy config migration failed")
	}

	exists, err := s.fileClient.IsFileExists(s.configPath)
	if err != nil {
		return Config{}, err
	}
	if !exists {
		return Config{}, nil
	}

	var config Config
	if err := s.fileClient.ReadJsonFile(s.configPath, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Write persists the configuration, creating the config directory if needed.
func (s *Store) Write(config Config) error {
	if err := s.fileClient.EnsureDir(filepath.Dir(s.configPath)); err != nil {
		return err
	}
	if err := s.fileClient.WriteJsonFile(s.configPath, config); err != nil {
		return err
	}
	s.logger.Info().Str("path", s.configPath).Msg("Config file updated")
	return nil
}

// SetAPIKey updates only the API key, preserving the rest of the config.
func (s *Store) SetAPIKey(apiKey string) error {
	config, err := s.Read()
	if err != nil {
		return err
	}
	config.APIKey = apiKey
	return s.Write(config)
}

// SetBaseURL updates only the base URL, preserving the rest of the config.
func (s *Store) SetBaseURL(baseURL string) error {
	config, err := s.Read()
	if err != nil {
		return err
	}
	config.BaseURL = baseURL
	return s.Write(config)
}

// migrateLegacyConfig moves the legacy dotfile into the XDG location. It
// runs at most once: once the new file exists it is a no-op.
func (s *Store) migrateLegacyConfig() error {
	exists, err := s.fileClient.IsFileExists(s.configPath)
	if err != nil || exists {
		return err
	}

	legacyExists, err := s.fileClient.IsFileExists(s.legacyPath)
	if err != nil || !legacyExists {
		return err
	}

	s.logger.Info().Str("from", s.legacyPath).Str("to", s.configPath).Msg("Migrating legacy config")

	var legacy Config
	if err := s.fileClient.ReadJsonFile(s.legacyPath, &legacy); err != nil {
		return err
	}
	if err := s.fileClient.EnsureDir(filepath.Dir(s.configPath)); err != nil {
		return err
	}
	if err := s.fileClient.WriteJsonFile(s.configPath, legacy); err != nil {
		return err
	}

	if err := s.fileClient.RemoveFile(s.legacyPath); err != nil {
		s.logger.Warn().Err(err).Msg("Could not remove legacy config file")
	}
	return nil
}
