// ABOUTME: Pure conversions between metric and imperial height and weight.
// ABOUTME: All results are rounded to one decimal place.
package units

import (
	"fmt"
	"math"

	"github.com/harperreed/athlete/internal/models"
)

const (
	cmPerInch   = 2.54
	inchPerFoot = 12
	lbsPerKg    = 2.20462
)

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// HeightCmToFtIn splits a height in centimetres into whole feet and inches.
// Inches that round up to 12.0 carry into the next foot.
func HeightCmToFtIn(cm float64) (int, float64) {
	totalInches := cm / cmPerInch
	feet := int(math.Floor(totalInches / inchPerFoot))
	inches := round1(math.Mod(totalInches, inchPerFoot))
	if inches >= inchPerFoot {
		feet++
		inches = 0
	}
	return feet, inches
}

// HeightFtInToCm converts feet and inches to centimetres.
func HeightFtInToCm(feet int, inches float64) float64 {
	return round1((float64(feet)*inchPerFoot + inches) * cmPerInch)
}

// WeightKgToLbs converts kilograms to pounds.
func WeightKgToLbs(kg float64) float64 {
	return round1(kg * lbsPerKg)
}

// WeightLbsToKg converts pounds to kilograms.
func WeightLbsToKg(lbs float64) float64 {
	return round1(lbs / lbsPerKg)
}

// HeightToCm normalizes a tagged height to centimetres. A value in feet is
// decimal feet, so 5.5 means 5 ft 6 in.
func HeightToCm(value float64, unit models.HeightUnit) float64 {
	if unit == models.HeightFt {
		return round1(value * inchPerFoot * cmPerInch)
	}
	return value
}

// WeightToKg normalizes a tagged weight to kilograms.
func WeightToKg(value float64, unit models.WeightUnit) float64 {
	if unit == models.WeightLbs {
		return WeightLbsToKg(value)
	}
	return value
}

// FormatHeight renders a centimetre height in the requested unit.
func FormatHeight(cm float64, unit models.HeightUnit) string {
	if unit == models.HeightFt {
		feet, inches := HeightCmToFtIn(cm)
		return fmt.Sprintf("%d' %s\"", feet, trim(inches))
	}
	return trim(round1(cm)) + " cm"
}

// FormatWeight renders a kilogram weight in the requested unit.
func FormatWeight(kg float64, unit models.WeightUnit) string {
	if unit == models.WeightLbs {
		return trim(WeightKgToLbs(kg)) + " lbs"
	}
	return trim(round1(kg)) + " kg"
}

// trim formats with at most one decimal and drops a trailing ".0".
func trim(x float64) string {
	if x == math.Trunc(x) {
		return fmt.Sprintf("%.0f", x)
	}
	return fmt.Sprintf("%.1f", x)
}
