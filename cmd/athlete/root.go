// ABOUTME: Root Cobra command for athlete CLI.
// ABOUTME: Loads config, sets up logging, and opens storage via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/config"
	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/logging"
	"github.com/harperreed/athlete/internal/metrics"
	"github.com/harperreed/athlete/internal/models"
	"github.com/harperreed/athlete/internal/storage"
	"github.com/harperreed/athlete/internal/tracker"
)

// noStorage marks commands that run without opening the data store.
const noStorage = "no-storage"

var (
	cfg      *config.Config
	repo     storage.Repository
	svc      *tracker.Service
	resolver = i18n.Default()
	registry *prometheus.Registry

	flagDataDir  string
	flagBackend  string
	flagLogLevel string
	flagLang     string
)

var rootCmd = &cobra.Command{
	Use:   "athlete",
	Short: "Athlete fitness assessment tracker",
	Long: `Athlete records standardized fitness tests, ranks athletes against their
cohort, and turns results into coaching feedback.

THE TESTS:

  t1  Height & Weight   cm/kg   submitted once with 'athlete measure'
  t2  Vertical Jump     cm
  t3  Shuttle Run       s
  t4  Sit-ups           reps
  t5  Endurance Run     min

QUICK START:

  $ athlete signup Priya Sharma --dob 2008-05-15 --sport athletics
  $ athlete measure 3f2a --height 175 --weight 68
  $ athlete record 3f2a vertical_jump 45
  $ athlete results 3f2a
  $ athlete feedback 3f2a --lang hi
  $ athlete leaderboard

LANGUAGES:

  Output is available in English (en), Hindi (hi), Tamil (ta), and Telugu (te).
  Missing translations fall back to English.

MCP INTEGRATION:

  Run 'athlete mcp' to start the Model Context Protocol server for AI assistants.

  {
    "mcpServers": {
      "athlete": { "command": "athlete", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  SQLite at ~/.local/share/athlete/athlete.db by default. Set "backend": "badger"
  in ~/.config/athlete/config.json (or ATHLETE_BACKEND=badger) for the embedded
  key-value store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if flagBackend != "" {
			cfg.Backend = flagBackend
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		logging.Setup(cfg.LoggingParams())

		if skipStorage(cmd) {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		registry = metrics.NewRegistry()
		svc = tracker.New(repo,
			tracker.WithGenerator(cfg.FeedbackGenerator(resolver, logrus.StandardLogger())),
			tracker.WithMetrics(metrics.NewManager(metrics.Namespace, metrics.Subsystem, registry)),
			tracker.WithLogger(logrus.StandardLogger()),
		)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStorage()
	},
}

func skipStorage(cmd *cobra.Command) bool {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return true
	}
	_, ok := cmd.Annotations[noStorage]
	return ok
}

func closeStorage() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	svc = nil
	return err
}

// outputLanguage returns --lang when given, else fallback.
func outputLanguage(fallback models.Language) models.Language {
	if flagLang != "" {
		return models.ParseLanguage(flagLang)
	}
	if fallback.IsValid() {
		return fallback
	}
	return models.DefaultLanguage
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/athlete)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite or badger")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "output language: en, hi, ta, te")
}
