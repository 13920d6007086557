// ABOUTME: Whole-year age from a date of birth.
// ABOUTME: Also enforces the sign-up rule that age must be positive.
package age

import (
	"errors"
	"time"
)

// ErrInvalidDOB is returned when a date of birth yields an age of zero or less.
var ErrInvalidDOB = errors.New("invalid date of birth")

// InYears returns completed years between dob and asOf. The birthday
// counts on the day itself. asOf is read on dob's calendar. Non-positive
// results are returned as is.
func InYears(dob, asOf time.Time) int {
	asOf = asOf.In(dob.Location())
	years := asOf.Year() - dob.Year()
	if asOf.Month() < dob.Month() || (asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		years--
	}
	return years
}

// Validate returns the age at asOf, or ErrInvalidDOB when it is not positive.
func Validate(dob, asOf time.Time) (int, error) {
	years := InYears(dob, asOf)
	if years <= 0 {
		return years, ErrInvalidDOB
	}
	return years, nil
}
