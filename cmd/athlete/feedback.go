// ABOUTME: CLI command for coaching feedback.
// ABOUTME: Uses the remote generator when configured, otherwise the classifier.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/models"
)

var feedbackCmd = &cobra.Command{
	Use:     "feedback <athlete>",
	Aliases: []string{"fb"},
	Short:   "Generate coaching feedback",
	Long: `Generate coaching feedback from an athlete's results.

Tests at or above the 80th percentile are strengths; tests below the 70th are
areas to improve. The first weak test gets a drill recommendation.

When "feedback_url" is configured the text comes from that service; if it
fails, the built-in classifier answers instead.

EXAMPLES:

  athlete feedback 3f2a
  athlete feedback 3f2a --lang te`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var lang models.Language
		if flagLang != "" {
			lang = models.ParseLanguage(flagLang)
		}

		doc, err := svc.Feedback(cmd.Context(), args[0], lang)
		if err != nil {
			return fmt.Errorf("failed to generate feedback: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, doc.Text)
		fmt.Fprintln(out)
		color.New(color.Faint).Fprintf(out, "source: %s\n", doc.Source)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
}
