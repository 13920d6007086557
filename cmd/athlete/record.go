// ABOUTME: CLI commands for recording test scores and body measurements.
// ABOUTME: Scores append to the athlete's history; measurements are submitted once.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/models"
	"github.com/harperreed/athlete/internal/units"
)

var (
	recordAt string

	measureHeight      float64
	measureHeightUnit  string
	measureWeight      float64
	measureWeightUnit  string
	measureHeightVideo string
	measureWeightVideo string
	measureAt          string
)

var recordCmd = &cobra.Command{
	Use:     "record <athlete> <test> <value>",
	Aliases: []string{"rec"},
	Short:   "Record a test score",
	Long: `Record a fitness test score for an athlete.

The test can be given by ID (t2-t5) or name. Height & weight (t1) is recorded
with 'athlete measure' instead.

  vertical_jump   cm
  shuttle_run     seconds
  sit_ups         repetitions
  endurance_run   minutes

The first score of a test fixes the athlete's cohort benchmark and percentile.

EXAMPLES:

  athlete record 3f2a vertical_jump 45
  athlete record 3f2a t3 10.8 --at "2024-07-01 09:30"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[2])
		}
		at, err := timeFlag(recordAt)
		if err != nil {
			return err
		}

		a, r, err := svc.RecordTest(cmd.Context(), args[0], args[1], value, at)
		if err != nil {
			return fmt.Errorf("failed to record test: %w", err)
		}

		out := cmd.OutOrStdout()
		lang := outputLanguage(a.Language)
		color.New(color.FgGreen).Fprintf(out, "✓ Recorded %s for %s\n", testLabel(r.TestID, lang), a.FullName())
		fmt.Fprintf(out, "  %s (%d observations)\n", formatScore(r), len(r.History))
		return nil
	},
}

var measureCmd = &cobra.Command{
	Use:   "measure <athlete>",
	Short: "Submit height and weight",
	Long: `Submit an athlete's height and weight. This can only be done once.

Heights in feet are decimal feet (5.5 = 5 ft 6 in). Both values are converted
to centimetres and kilograms and stored as the height & weight score.

EXAMPLES:

  athlete measure 3f2a --height 175 --weight 68
  athlete measure 3f2a --height 5.75 --height-unit ft --weight 150 --weight-unit lbs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := timeFlag(measureAt)
		if err != nil {
			return err
		}

		m := models.NewBodyMeasurement(
			measureHeight, models.HeightUnit(measureHeightUnit),
			measureWeight, models.WeightUnit(measureWeightUnit),
		).WithVideos(measureHeightVideo, measureWeightVideo)
		m.SubmittedAt = at

		a, hw, err := svc.SubmitMeasurement(cmd.Context(), args[0], m, at)
		if err != nil {
			return fmt.Errorf("failed to submit measurement: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Measured %s\n", a.FullName())
		fmt.Fprintf(out, "  %s, %s\n",
			units.FormatHeight(float64(hw.HeightCm), m.HeightUnit),
			units.FormatWeight(float64(hw.WeightKg), m.WeightUnit))
		return nil
	},
}

func timeFlag(s string) (time.Time, error) {
	if s == "" {
		return svc.Now(), nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", s)
	}
	return t, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	recordCmd.Flags().StringVar(&recordAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	rootCmd.AddCommand(recordCmd)

	measureCmd.Flags().Float64Var(&measureHeight, "height", 0, "height value")
	measureCmd.Flags().StringVar(&measureHeightUnit, "height-unit", "cm", "cm or ft")
	measureCmd.Flags().Float64Var(&measureWeight, "weight", 0, "weight value")
	measureCmd.Flags().StringVar(&measureWeightUnit, "weight-unit", "kg", "kg or lbs")
	measureCmd.Flags().StringVar(&measureHeightVideo, "height-video", "", "reference to the height video")
	measureCmd.Flags().StringVar(&measureWeightVideo, "weight-video", "", "reference to the weight video")
	measureCmd.Flags().StringVar(&measureAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	_ = measureCmd.MarkFlagRequired("height")
	_ = measureCmd.MarkFlagRequired("weight")
	rootCmd.AddCommand(measureCmd)
}
