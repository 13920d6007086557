// ABOUTME: CLI commands for exporting and importing athlete data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/storage"
)

var (
	exportOutput string
	exportSport  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export athlete data",
	Long: `Export athlete data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also importable)
  markdown   Markdown report with a results table per athlete

OPTIONS:

  --output, -o   Write to file instead of stdout
  --sport, -s    Only include one sport (markdown only)
  --lang         Language for test names in the markdown report

EXAMPLES:

  athlete export json                      # Export all data as JSON
  athlete export json -o backup.json       # Save to file
  athlete export yaml                      # Export as YAML
  athlete export markdown --sport cricket  # Cricket report`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown":
			sport, serr := sportFlag(exportSport)
			if serr != nil {
				return serr
			}
			var md string
			md, err = storage.ExportMarkdown(repo, storage.MarkdownOptions{
				Sport:    sport,
				Language: outputLanguage(""),
				AsOf:     svc.Now(),
				Resolver: resolver,
			})
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(out, "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(out, string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import athlete data from JSON or YAML",
	Long: `Import athlete data from a previously exported JSON or YAML file.
Files ending in .yaml or .yml are read as YAML, everything else as JSON.
Duplicate athletes (same ID) cause an error.

EXAMPLES:

  athlete import backup.json
  athlete import team.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			err = storage.ImportYAML(repo, data)
		default:
			err = storage.ImportJSON(repo, data)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported from %s\n", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportSport, "sport", "s", "", "filter by sport (markdown only)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
