// ABOUTME: Athlete configuration management with backend selection.
// ABOUTME: Loads JSON settings, applies ATHLETE_* env overrides, and builds storage and feedback.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/athlete/internal/feedback"
	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/logging"
	"github.com/harperreed/athlete/internal/storage"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

const defaultFeedbackTimeout = 30 * time.Second

// Config stores athlete tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `json:"backend,omitempty" env:"ATHLETE_BACKEND"`

	// DataDir is the root directory for data storage.
	// SQLite puts athlete.db here. Badger keeps its files under kv/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/athlete.
	DataDir string `json:"data_dir,omitempty" env:"ATHLETE_DATA_DIR"`

	LogLevel  string `json:"log_level,omitempty" env:"ATHLETE_LOG_LEVEL"`
	LogFile   string `json:"log_file,omitempty" env:"ATHLETE_LOG_FILE"`
	LogJSON   bool   `json:"log_json,omitempty" env:"ATHLETE_LOG_JSON"`
	LogStderr bool   `json:"log_stderr,omitempty" env:"ATHLETE_LOG_STDERR"`

	// FeedbackURL enables the remote feedback generator. The deterministic
	// classifier is used when it is empty or the remote call fails.
	FeedbackURL            string `json:"feedback_url,omitempty" env:"ATHLETE_FEEDBACK_URL"`
	FeedbackModel          string `json:"feedback_model,omitempty" env:"ATHLETE_FEEDBACK_MODEL"`
	FeedbackTimeoutSeconds int    `json:"feedback_timeout_seconds,omitempty" env:"ATHLETE_FEEDBACK_TIMEOUT_SECONDS"`
	// FeedbackAPIKey is read from the environment only.
	FeedbackAPIKey string `json:"-" env:"ATHLETE_FEEDBACK_API_KEY"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "athlete.db"))
	case BackendBadger:
		return storage.OpenKV(filepath.Join(dataDir, "kv"))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// LoggingParams converts the log settings for logging.Setup.
func (c *Config) LoggingParams() logging.SetupParams {
	return logging.SetupParams{
		LogFileName:   ExpandPath(c.LogFile),
		LogToStderr:   c.LogStderr,
		LogLevel:      c.LogLevel,
		LogFormatJSON: c.LogJSON,
	}
}

// FeedbackTimeout returns the remote generator timeout.
func (c *Config) FeedbackTimeout() time.Duration {
	if c.FeedbackTimeoutSeconds <= 0 {
		return defaultFeedbackTimeout
	}
	return time.Duration(c.FeedbackTimeoutSeconds) * time.Second
}

// FeedbackGenerator returns the classifier, or the remote generator backed by
// the classifier when FeedbackURL is set.
func (c *Config) FeedbackGenerator(r *i18n.Resolver, logger logrus.FieldLogger) feedback.Generator {
	classifier := feedback.NewClassifier(r)
	if strings.TrimSpace(c.FeedbackURL) == "" {
		return classifier
	}
	remote := feedback.NewRemoteGenerator(feedback.RemoteConfig{
		URL:     c.FeedbackURL,
		Model:   c.FeedbackModel,
		APIKey:  c.FeedbackAPIKey,
		Timeout: c.FeedbackTimeout(),
	}, r)
	return &feedback.Fallback{Primary: remote, Secondary: classifier, Logger: logger}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "athlete", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(GetConfigPath())
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ATHLETE_* environment variables.
// Unset variables leave the current value alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
