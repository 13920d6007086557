// ABOUTME: Tests for age calculation and sign-up validation.
// ABOUTME: Exercises birthday boundaries and non-positive ages.
package age

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInYears(t *testing.T) {
	dob := date(2008, time.May, 15)
	tests := []struct {
		name string
		asOf time.Time
		want int
	}{
		{"day before birthday", date(2024, time.May, 14), 15},
		{"on birthday", date(2024, time.May, 15), 16},
		{"earlier month", date(2024, time.January, 30), 15},
		{"later month", date(2024, time.December, 1), 16},
		{"same day of birth", dob, 0},
		{"before birth", date(2007, time.May, 15), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InYears(dob, tt.asOf); got != tt.want {
				t.Errorf("InYears = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInYearsReadsAsOfOnBirthCalendar(t *testing.T) {
	dob := date(2008, time.May, 15)
	ist := time.FixedZone("IST", 5*3600+1800)
	est := time.FixedZone("EST", -5*3600)

	// 00:30 on the 15th in IST is still the 14th in UTC.
	if got := InYears(dob, time.Date(2024, time.May, 15, 0, 30, 0, 0, ist)); got != 15 {
		t.Errorf("InYears(IST birthday morning) = %d, want 15", got)
	}
	// 23:30 on the 14th in EST is already the 15th in UTC.
	if got := InYears(dob, time.Date(2024, time.May, 14, 23, 30, 0, 0, est)); got != 16 {
		t.Errorf("InYears(EST birthday eve) = %d, want 16", got)
	}
}

func TestValidate(t *testing.T) {
	years, err := Validate(date(2008, time.May, 15), date(2024, time.June, 1))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if years != 16 {
		t.Errorf("years = %d, want 16", years)
	}

	_, err = Validate(date(2024, time.March, 1), date(2024, time.June, 1))
	if !errors.Is(err, ErrInvalidDOB) {
		t.Errorf("err = %v, want ErrInvalidDOB", err)
	}
}
