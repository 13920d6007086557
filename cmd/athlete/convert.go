// ABOUTME: CLI command for unit conversion.
// ABOUTME: Converts heights between cm and feet/inches and weights between kg and lbs.
package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/units"
)

var convertFrom string

var convertCmd = &cobra.Command{
	Use:         "convert",
	Short:       "Convert heights and weights",
	Annotations: map[string]string{noStorage: ""},
	Long: `Convert heights and weights. Results are rounded to one decimal.

EXAMPLES:

  athlete convert height 175        # 175 cm -> 5' 8.9"
  athlete convert height 5 9        # 5 ft 9 in -> 175.3 cm
  athlete convert weight 68         # 68 kg -> 149.9 lbs
  athlete convert weight 150 --from lbs`,
}

var convertHeightCmd = &cobra.Command{
	Use:         "height <cm> | height <feet> <inches>",
	Short:       "Convert a height",
	Annotations: map[string]string{noStorage: ""},
	Args:        cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			cm, err := parseNonNegative(args[0])
			if err != nil {
				return err
			}
			ft, in := units.HeightCmToFtIn(cm)
			fmt.Fprintf(out, "%v cm = %d' %v\"\n", cm, ft, in)
			return nil
		}

		ft, err := strconv.Atoi(args[0])
		if err != nil || ft < 0 {
			return fmt.Errorf("invalid feet: %s", args[0])
		}
		in, err := parseNonNegative(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d' %v\" = %v cm\n", ft, in, units.HeightFtInToCm(ft, in))
		return nil
	},
}

var convertWeightCmd = &cobra.Command{
	Use:         "weight <value>",
	Short:       "Convert a weight",
	Annotations: map[string]string{noStorage: ""},
	Args:        cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := parseNonNegative(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch convertFrom {
		case "kg":
			fmt.Fprintf(out, "%v kg = %v lbs\n", v, units.WeightKgToLbs(v))
		case "lbs":
			fmt.Fprintf(out, "%v lbs = %v kg\n", v, units.WeightLbsToKg(v))
		default:
			return fmt.Errorf("unknown unit: %s (use kg or lbs)", convertFrom)
		}
		return nil
	},
}

func parseNonNegative(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v >= 0) || math.IsInf(v, 1) {
		return 0, fmt.Errorf("invalid value: %s", s)
	}
	return v, nil
}

func init() {
	convertWeightCmd.Flags().StringVar(&convertFrom, "from", "kg", "source unit: kg or lbs")
	convertCmd.AddCommand(convertHeightCmd)
	convertCmd.AddCommand(convertWeightCmd)
	rootCmd.AddCommand(convertCmd)
}
