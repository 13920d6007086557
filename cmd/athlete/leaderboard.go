// ABOUTME: CLI command for the official dashboard.
// ABOUTME: Ranks athletes by average percentile and counts athletes per sport.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/leaderboard"
)

var (
	leaderboardSport string
	leaderboardLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"top", "dashboard"},
	Short:   "Rank athletes by average percentile",
	Long: `Show the top athletes by the rounded average of their test percentiles,
followed by the number of athletes in each sport. Athletes without any
recorded test are not ranked.

EXAMPLES:

  athlete leaderboard
  athlete leaderboard --sport hockey -n 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, err := sportFlag(leaderboardSport)
		if err != nil {
			return err
		}

		entries, err := svc.Leaderboard(cmd.Context(), sport, leaderboardLimit)
		if err != nil {
			return fmt.Errorf("failed to rank athletes: %w", err)
		}
		dist, err := svc.Distribution(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count athletes: %w", err)
		}

		out := cmd.OutOrStdout()
		lang := outputLanguage("")
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Fprintln(out, resolver.Resolve("leaderboard_title", lang, nil))
		if len(entries) == 0 {
			fmt.Fprintln(out, "  No ranked athletes yet.")
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%3d. %s %s %s %s\n",
				e.Rank,
				padRight(truncate(e.Name, 24), 24),
				padRight(resolver.Resolve("sport_"+string(e.Sport), lang, nil), 12),
				resolver.Resolve("leaderboard_avg_percentile", lang, i18n.Params{"percentile": e.AveragePercentile}),
				faint.Sprint(e.AthleteID.String()[:8]))
		}

		fmt.Fprintln(out)
		bold.Fprintln(out, resolver.Resolve("distribution_title", lang, nil))
		for _, c := range dist {
			fmt.Fprintf(out, "  %s %d\n",
				padRight(resolver.Resolve("sport_"+string(c.Sport), lang, nil), 12), c.Count)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().StringVarP(&leaderboardSport, "sport", "s", "", "rank only this sport")
	leaderboardCmd.Flags().IntVarP(&leaderboardLimit, "limit", "n", leaderboard.DefaultLimit, "number of athletes to show")
	rootCmd.AddCommand(leaderboardCmd)
}
