// ABOUTME: BodyMeasurement model for the height and weight submission.
// ABOUTME: Units are tagged; video references are opaque and never inspected.
package models

import "time"

// HeightUnit tags how a height was entered.
type HeightUnit string

// WeightUnit tags how a weight was entered.
type WeightUnit string

const (
	HeightCm HeightUnit = "cm"
	HeightFt HeightUnit = "ft"

	WeightKg  WeightUnit = "kg"
	WeightLbs WeightUnit = "lbs"
)

// IsValid reports whether u is a known height unit.
func (u HeightUnit) IsValid() bool { return u == HeightCm || u == HeightFt }

// IsValid reports whether u is a known weight unit.
func (u WeightUnit) IsValid() bool { return u == WeightKg || u == WeightLbs }

// BodyMeasurement is an athlete's height and weight as submitted.
// It is immutable once stored.
type BodyMeasurement struct {
	Height     float64    `json:"height" yaml:"height"`
	HeightUnit HeightUnit `json:"height_unit" yaml:"height_unit"`
	Weight     float64    `json:"weight" yaml:"weight"`
	WeightUnit WeightUnit `json:"weight_unit" yaml:"weight_unit"`
	// HeightVideo and WeightVideo reference uploaded evidence clips.
	HeightVideo string    `json:"height_video,omitempty" yaml:"height_video,omitempty"`
	WeightVideo string    `json:"weight_video,omitempty" yaml:"weight_video,omitempty"`
	SubmittedAt time.Time `json:"submitted_at" yaml:"submitted_at"`
}

// NewBodyMeasurement creates a measurement stamped with the current time.
func NewBodyMeasurement(height float64, hu HeightUnit, weight float64, wu WeightUnit) *BodyMeasurement {
	return &BodyMeasurement{
		Height:      height,
		HeightUnit:  hu,
		Weight:      weight,
		WeightUnit:  wu,
		SubmittedAt: time.Now(),
	}
}

// WithVideos attaches the opaque video references.
func (m *BodyMeasurement) WithVideos(heightVideo, weightVideo string) *BodyMeasurement {
	m.HeightVideo = heightVideo
	m.WeightVideo = weightVideo
	return m
}
