// ABOUTME: Tests for the composite height/weight codec.
// ABOUTME: Covers sentinels, range errors, and the full encode/decode grid.
package composite

import (
	"errors"
	"math"
	"testing"
)

func TestEncode(t *testing.T) {
	got, err := Encode(175, 68)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != 175068 {
		t.Errorf("Encode(175, 68) = %v, want 175068", got)
	}

	got, err = Encode(174.6, 67.5)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != 175068 {
		t.Errorf("Encode(174.6, 67.5) = %v, want 175068", got)
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		h, w float64
	}{
		{"weight too large", 175, 1000},
		{"weight rounds to 1000", 175, 999.6},
		{"negative weight", 175, -1},
		{"zero height", 0, 68},
		{"NaN height", math.NaN(), 68},
		{"infinite height", math.Inf(1), 68},
		{"infinite weight", 175, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.h, tt.w)
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Encode(%v, %v) err = %v, want ErrOutOfRange", tt.h, tt.w, err)
			}
		})
	}
}

func TestDecodeNotSet(t *testing.T) {
	for _, score := range []float64{0, 999, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Decode(score); !errors.Is(err, ErrNotSet) {
			t.Errorf("Decode(%v) err = %v, want ErrNotSet", score, err)
		}
	}
	if IsSet(0) {
		t.Error("IsSet(0) = true")
	}
}

func TestDecodeBoundary(t *testing.T) {
	hw, err := Decode(1000)
	if err != nil {
		t.Fatalf("Decode(1000) failed: %v", err)
	}
	if hw != (HeightWeight{HeightCm: 1, WeightKg: 0}) {
		t.Errorf("Decode(1000) = %+v, want {1 0}", hw)
	}
}

func TestRoundTripGrid(t *testing.T) {
	for h := 50; h <= 250; h++ {
		for w := 0; w < 1000; w++ {
			score, err := Encode(float64(h), float64(w))
			if err != nil {
				t.Fatalf("Encode(%d, %d) failed: %v", h, w, err)
			}
			hw, err := Decode(score)
			if err != nil {
				t.Fatalf("Decode(%v) failed: %v", score, err)
			}
			if hw.HeightCm != h || hw.WeightKg != w {
				t.Fatalf("round trip (%d, %d) -> %v -> %+v", h, w, score, hw)
			}
		}
	}
}
