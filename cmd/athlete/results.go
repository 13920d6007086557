// ABOUTME: CLI commands for viewing the test catalog and athlete results.
// ABOUTME: Shows localized test names, latest scores, history, and percentile cards.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/age"
	"github.com/harperreed/athlete/internal/composite"
	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/models"
	"github.com/harperreed/athlete/internal/units"
)

var testsDetails bool

var testsCmd = &cobra.Command{
	Use:         "tests",
	Short:       "List the fitness test catalog",
	Annotations: map[string]string{noStorage: ""},
	Long: `List the five standardized fitness tests in catalog order.

Use --details for how to perform, record, and assess each test, and --lang to
choose the language.

EXAMPLES:

  athlete tests
  athlete tests --details --lang ta`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		lang := outputLanguage(models.DefaultLanguage)
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		for _, d := range models.Catalog {
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(d.ID),
				bold.Sprint(padRight(resolver.Resolve(d.NameKey(), lang, nil), 20)),
				d.Unit)
			if !testsDetails {
				continue
			}
			fmt.Fprintf(out, "   %s\n", resolver.Resolve(d.DescriptionKey, lang, nil))
			fmt.Fprintf(out, "   - %s\n", resolver.Resolve(d.Instructions.Perform, lang, nil))
			fmt.Fprintf(out, "   - %s\n", resolver.Resolve(d.Instructions.Record, lang, nil))
			fmt.Fprintf(out, "   - %s\n\n", resolver.Resolve(d.Instructions.Assess, lang, nil))
		}
		return nil
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest <athlete> <test>",
	Short: "Show an athlete's latest score for a test",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, r, err := svc.Latest(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to get latest: %w", err)
		}
		printResultCard(cmd.OutOrStdout(), *r, outputLanguage(a.Language))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <athlete> <test>",
	Short: "Show every recorded score for a test",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, seq, err := svc.History(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}
		def, _ := models.LookupTest(args[1])

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		n := 0
		for o := range seq {
			n++
			r := models.TestResult{TestID: def.ID, LatestScore: o.Value}
			fmt.Fprintf(out, "%s %s\n", faint.Sprint(o.Date.Format("2006-01-02 15:04")), formatScore(&r))
		}
		if n == 0 {
			fmt.Fprintln(out, resolver.Resolve("card_not_recorded", outputLanguage(a.Language), nil))
		}
		return nil
	},
}

var resultsCmd = &cobra.Command{
	Use:     "results <athlete>",
	Aliases: []string{"show"},
	Short:   "Show an athlete's profile and all results",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := svc.Athlete(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get athlete: %w", err)
		}

		out := cmd.OutOrStdout()
		lang := outputLanguage(a.Language)
		faint := color.New(color.Faint)

		color.New(color.Bold).Fprintln(out, a.FullName())
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint("ID:"), a.ID)
		fmt.Fprintf(out, "  %s\n", resolver.Resolve("you_are_age", lang, i18n.Params{"age": age.InYears(a.DOB, svc.Now())}))
		if a.Sport != "" {
			sport := resolver.Resolve("sport_"+string(a.Sport), lang, nil)
			if a.RoleInSport != "" {
				sport += " (" + a.RoleInSport + ")"
			}
			fmt.Fprintf(out, "  %s %s\n", faint.Sprint("Sport:"), sport)
		}
		if m := a.Measurement; m != nil {
			fmt.Fprintf(out, "  %s %s, %s\n", faint.Sprint("Measured:"),
				units.FormatHeight(units.HeightToCm(m.Height, m.HeightUnit), m.HeightUnit),
				units.FormatWeight(units.WeightToKg(m.Weight, m.WeightUnit), m.WeightUnit))
		}
		fmt.Fprintln(out)

		for _, r := range a.ResultsInCatalogOrder() {
			printResultCard(out, r, lang)
		}
		return nil
	},
}

func printResultCard(out io.Writer, r models.TestResult, lang models.Language) {
	faint := color.New(color.Faint)
	fmt.Fprintf(out, "%s %s\n", faint.Sprint(r.TestID), color.New(color.Bold).Sprint(testLabel(r.TestID, lang)))
	if r.IsPlaceholder() {
		fmt.Fprintf(out, "   %s\n", faint.Sprint(resolver.Resolve("card_not_recorded", lang, nil)))
		return
	}
	fmt.Fprintf(out, "   %s\n", formatScore(&r))
	if r.TestID != models.HeightWeightTestID {
		fmt.Fprintf(out, "   %s\n", resolver.Resolve("card_benchmark", lang, i18n.Params{
			"benchmark": r.Benchmark,
			"unit":      testUnit(r.TestID),
		}))
	}
	color.New(color.FgCyan).Fprintf(out, "   %s\n",
		resolver.Resolve("card_top_percentile", lang, i18n.Params{"percentile": r.TopPercent()}))
}

func testLabel(testID string, lang models.Language) string {
	d, err := models.LookupTest(testID)
	if err != nil {
		return testID
	}
	return resolver.Resolve(d.NameKey(), lang, nil)
}

func testUnit(testID string) string {
	d, err := models.LookupTest(testID)
	if err != nil {
		return ""
	}
	return d.Unit
}

// formatScore renders a score in its test's unit, decoding height & weight.
func formatScore(r *models.TestResult) string {
	if r.TestID == models.HeightWeightTestID {
		hw, err := composite.Decode(r.LatestScore)
		if err != nil {
			return "-"
		}
		return fmt.Sprintf("%d cm / %d kg", hw.HeightCm, hw.WeightKg)
	}
	return fmt.Sprintf("%v %s", r.LatestScore, testUnit(r.TestID))
}

func init() {
	testsCmd.Flags().BoolVar(&testsDetails, "details", false, "show instructions for each test")
	rootCmd.AddCommand(testsCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resultsCmd)
}
