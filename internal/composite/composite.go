// ABOUTME: Packs a height and weight into a single score and back.
// ABOUTME: score = round(height cm) * 1000 + round(weight kg).
package composite

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange is returned when a value cannot be encoded losslessly.
	ErrOutOfRange = errors.New("composite value out of range")
	// ErrNotSet is returned when decoding a score that holds no measurement.
	ErrNotSet = errors.New("composite score not set")
)

const (
	multiplier = 1000
	// MinScore is the smallest score that decodes to a measurement (1 cm, 0 kg).
	MinScore = multiplier
)

// HeightWeight is a decoded composite score.
type HeightWeight struct {
	HeightCm int `json:"height_cm"`
	WeightKg int `json:"weight_kg"`
}

// Encode rounds both values to whole units and packs them into one score.
func Encode(heightCm, weightKg float64) (float64, error) {
	h := math.Round(heightCm)
	w := math.Round(weightKg)
	if math.IsNaN(h) || math.IsNaN(w) || math.IsInf(h, 0) || math.IsInf(w, 0) || h <= 0 || w < 0 || w >= multiplier {
		return 0, fmt.Errorf("%w: height %v cm, weight %v kg", ErrOutOfRange, heightCm, weightKg)
	}
	return h*multiplier + w, nil
}

// Decode unpacks a score produced by Encode. Zero, NaN, infinities and
// scores below MinScore mean no measurement has been recorded.
func Decode(score float64) (HeightWeight, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < MinScore {
		return HeightWeight{}, ErrNotSet
	}
	s := math.Round(score)
	return HeightWeight{
		HeightCm: int(math.Floor(s / multiplier)),
		WeightKg: int(math.Mod(s, multiplier)),
	}, nil
}

// IsSet reports whether score holds an encoded measurement.
func IsSet(score float64) bool {
	_, err := Decode(score)
	return err == nil
}
