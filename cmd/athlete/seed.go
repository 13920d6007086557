// ABOUTME: CLI command for generating demo athletes.
// ABOUTME: Populates the store with fake but plausible results for trying out the tool.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/seed"
)

var (
	seedCount int
	seedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo athletes",
	Long: `Generate demo athletes with a height/weight measurement and a few
observations per test.

The same --seed always produces the same roster. Use --seed 0 for a random one.

EXAMPLES:

  athlete seed              # 10 athletes
  athlete seed -n 50 --seed 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCount <= 0 {
			return fmt.Errorf("count must be positive")
		}
		athletes, err := seed.Athletes(cmd.Context(), svc, seed.Options{Count: seedCount, Seed: seedValue})
		if err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		for _, a := range athletes {
			fmt.Fprintf(out, "%s %s\n", faint.Sprint(a.ID.String()[:8]), a.FullName())
		}
		color.New(color.FgGreen).Fprintf(out, "✓ Seeded %d athletes\n", len(athletes))
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 10, "number of athletes")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 1, "random seed (0 for random)")
	rootCmd.AddCommand(seedCmd)
}
