// ABOUTME: Tests for athlete configuration management.
// ABOUTME: Covers load, save, env overrides, backend selection, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/athlete/internal/feedback"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "Badger"}
	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend() = %q, want %q", got, "badger")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/athlete-data"}
	want := filepath.Join(home, "athlete-data")
	if got := cfg.GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/athlete", filepath.Join(home, "data/athlete")},
		{"data/athlete", "data/athlete"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != "" || cfg.DataDir != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		Backend:        "badger",
		DataDir:        "/tmp/athlete-data",
		FeedbackURL:    "https://example.test/v1/responses",
		FeedbackAPIKey: "secret",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Backend != "badger" {
		t.Errorf("Backend mismatch: got %q", loaded.Backend)
	}
	if loaded.DataDir != "/tmp/athlete-data" {
		t.Errorf("DataDir mismatch: got %q", loaded.DataDir)
	}
	if loaded.FeedbackURL != cfg.FeedbackURL {
		t.Errorf("FeedbackURL mismatch: got %q", loaded.FeedbackURL)
	}
	if loaded.FeedbackAPIKey != "" {
		t.Error("API key must not be written to the config file")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{Backend: "sqlite"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "athlete")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "athlete")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := (&Config{Backend: "sqlite", LogLevel: "info"}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	t.Setenv("ATHLETE_BACKEND", "badger")
	t.Setenv("ATHLETE_LOG_JSON", "true")
	t.Setenv("ATHLETE_FEEDBACK_TIMEOUT_SECONDS", "5")
	t.Setenv("ATHLETE_FEEDBACK_API_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend != "badger" {
		t.Errorf("Backend = %q, want env override", cfg.Backend)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want file value", cfg.LogLevel)
	}
	if !cfg.LogJSON {
		t.Error("LogJSON not overridden")
	}
	if cfg.FeedbackTimeout() != 5*time.Second {
		t.Errorf("FeedbackTimeout() = %v", cfg.FeedbackTimeout())
	}
	if cfg.FeedbackAPIKey != "from-env" {
		t.Errorf("FeedbackAPIKey = %q", cfg.FeedbackAPIKey)
	}
}

func TestApplyEnvInvalidValue(t *testing.T) {
	t.Setenv("ATHLETE_LOG_JSON", "maybe")

	cfg := &Config{}
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected parse error for invalid bool")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	want := filepath.Join(tmpDir, "athlete", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{Backend: "sqlite", DataDir: tmpDir}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for sqlite failed: %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "athlete.db")); os.IsNotExist(err) {
		t.Error("Expected athlete.db to be created")
	}
}

func TestOpenStorageBadger(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{Backend: "badger", DataDir: tmpDir}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for badger failed: %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "kv")); os.IsNotExist(err) {
		t.Error("Expected kv directory to be created")
	}
}

func TestOpenStorageDefaultBackend(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir()}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() with default backend failed: %v", err)
	}
	defer repo.Close()
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{Backend: "invalid", DataDir: t.TempDir()}

	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for invalid backend")
	}
}

func TestFeedbackGeneratorSelection(t *testing.T) {
	cfg := &Config{}
	if _, ok := cfg.FeedbackGenerator(nil, nil).(*feedback.Classifier); !ok {
		t.Error("expected classifier when no feedback URL is configured")
	}

	cfg.FeedbackURL = "https://example.test/v1/responses"
	cfg.FeedbackModel = "coach"
	gen, ok := cfg.FeedbackGenerator(nil, nil).(*feedback.Fallback)
	if !ok {
		t.Fatal("expected fallback generator when feedback URL is set")
	}
	if _, ok := gen.Secondary.(*feedback.Classifier); !ok {
		t.Error("expected classifier as the fallback")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{FeedbackAPIKey: "hidden"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
