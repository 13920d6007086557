// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies every athlete from the configured backend into the other one.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/config"
	"github.com/harperreed/athlete/internal/storage"
)

var (
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between SQLite and Badger",
	Long: `Copy all athletes, results, and measurements from the configured backend
into the other backend in the same data directory.

IMPORTANT:

  - The destination must be empty; existing data is never overwritten
  - The source is left untouched
  - Run with --dry-run first to see what would be migrated
  - Afterwards set "backend" in ~/.config/athlete/config.json

USAGE:

  athlete migrate --to badger --dry-run
  athlete migrate --to badger
  athlete --backend badger migrate --to sqlite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if migrateTo == cfg.GetBackend() {
			return fmt.Errorf("already using %s backend", migrateTo)
		}

		dataDir := cfg.GetDataDir()
		var dstPath string
		switch migrateTo {
		case config.BackendSQLite:
			dstPath = filepath.Join(dataDir, "athlete.db")
			if _, err := os.Stat(dstPath); err == nil {
				return fmt.Errorf("destination %s already exists", dstPath)
			}
		case config.BackendBadger:
			dstPath = filepath.Join(dataDir, "kv")
			nonEmpty, err := storage.IsDirNonEmpty(dstPath)
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination %s is not empty", dstPath)
			}
		default:
			return fmt.Errorf("unknown backend: %q (use sqlite or badger)", migrateTo)
		}

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			athletes, err := repo.ListAthletes(nil, 0)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Would migrate %d athletes to %s\n", len(athletes), dstPath)
			return nil
		}

		dstCfg := &config.Config{Backend: migrateTo, DataDir: dataDir}
		dst, err := dstCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Migrated to %s\n", dstPath)
		fmt.Fprintf(out, "  %d athletes, %d results, %d observations, %d measurements\n",
			summary.Athletes, summary.Results, summary.Observations, summary.Measurements)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendBadger, "destination backend: sqlite or badger")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
