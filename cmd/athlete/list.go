// ABOUTME: CLI command for listing athletes.
// ABOUTME: Supports filtering by sport and limiting results.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/age"
	"github.com/harperreed/athlete/internal/models"
)

var (
	listSport string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List athletes",
	Long: `List registered athletes ordered by name.

OUTPUT FORMAT:

  Each line shows: ID  NAME  AGE  SPORT  TESTS

  The ID is an 8-character prefix you can pass to any athlete command.

EXAMPLES:

  athlete list                   # Show up to 20 athletes
  athlete list --sport cricket   # Only cricket players
  athlete list -n 100            # Show more`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, err := sportFlag(listSport)
		if err != nil {
			return err
		}

		athletes, err := svc.Athletes(cmd.Context(), sport, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list athletes: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(athletes) == 0 {
			fmt.Fprintln(out, "No athletes found.")
			return nil
		}

		faint := color.New(color.Faint)
		now := svc.Now()
		for _, a := range athletes {
			observed := 0
			for _, r := range a.Results {
				if !r.IsPlaceholder() {
					observed++
				}
			}
			fmt.Fprintf(out, "%s %s %3d  %s %d/%d tests\n",
				faint.Sprint(a.ID.String()[:8]),
				padRight(truncate(a.FullName(), 24), 24),
				age.InYears(a.DOB, now),
				padRight(string(a.Sport), 12),
				observed, len(models.Catalog))
		}
		return nil
	},
}

func sportFlag(s string) (*models.Sport, error) {
	if s == "" {
		return nil, nil
	}
	sp, ok := models.ParseSport(s)
	if !ok {
		return nil, fmt.Errorf("unknown sport: %s\nValid sports: %s", s, sportList())
	}
	return &sp, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVarP(&listSport, "sport", "s", "", "filter by sport")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
