// ABOUTME: Athlete profile model with keyed test results and body measurement.
// ABOUTME: Defines Gender and Sport enums and catalog-ordered result snapshots.
package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender of an athlete as captured at sign-up.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// AllGenders returns all valid genders.
var AllGenders = []Gender{GenderMale, GenderFemale, GenderOther}

// Sport is the athlete's primary sport affiliation.
type Sport string

const (
	SportAthletics  Sport = "Athletics"
	SportBasketball Sport = "Basketball"
	SportCricket    Sport = "Cricket"
	SportFootball   Sport = "Football"
	SportHockey     Sport = "Hockey"
	SportWrestling  Sport = "Wrestling"
)

// AllSports returns all valid sports in display order.
var AllSports = []Sport{
	SportAthletics, SportBasketball, SportCricket,
	SportFootball, SportHockey, SportWrestling,
}

// ParseSport matches a sport case-insensitively.
func ParseSport(s string) (Sport, bool) {
	for _, sp := range AllSports {
		if strings.EqualFold(string(sp), s) {
			return sp, true
		}
	}
	return "", false
}

// ParseGender matches a gender case-insensitively.
func ParseGender(s string) (Gender, bool) {
	for _, g := range AllGenders {
		if strings.EqualFold(string(g), s) {
			return g, true
		}
	}
	return "", false
}

// Athlete is a registered athlete and the owner of their performance ledger.
type Athlete struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	FirstName   string    `json:"first_name" yaml:"first_name"`
	LastName    string    `json:"last_name" yaml:"last_name"`
	DOB         time.Time `json:"dob" yaml:"dob"`
	Gender      Gender    `json:"gender" yaml:"gender"`
	Contact     string    `json:"contact,omitempty" yaml:"contact,omitempty"` // phone or email
	Language    Language  `json:"language" yaml:"language"`
	Sport       Sport     `json:"sport" yaml:"sport"`
	RoleInSport string    `json:"role_in_sport,omitempty" yaml:"role_in_sport,omitempty"`
	// Results is keyed by test ID; at most one TestResult per test.
	Results     map[string]*TestResult `json:"results" yaml:"results"`
	Measurement *BodyMeasurement       `json:"measurement,omitempty" yaml:"measurement,omitempty"`
	CreatedAt   time.Time              `json:"created_at" yaml:"created_at"`
}

// NewAthlete creates an Athlete with a generated UUID and an empty result set.
func NewAthlete(firstName, lastName string) *Athlete {
	return &Athlete{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Language:  DefaultLanguage,
		Results:   make(map[string]*TestResult),
		CreatedAt: time.Now(),
	}
}

// WithDOB sets the date of birth.
func (a *Athlete) WithDOB(dob time.Time) *Athlete {
	a.DOB = dob
	return a
}

// WithGender sets the gender.
func (a *Athlete) WithGender(g Gender) *Athlete {
	a.Gender = g
	return a
}

// WithContact sets the phone number or email.
func (a *Athlete) WithContact(contact string) *Athlete {
	a.Contact = contact
	return a
}

// WithLanguage sets the preferred language.
func (a *Athlete) WithLanguage(lang Language) *Athlete {
	a.Language = lang
	return a
}

// WithSport sets the sport and the role played within it.
func (a *Athlete) WithSport(sport Sport, role string) *Athlete {
	a.Sport = sport
	a.RoleInSport = role
	return a
}

// FullName returns "First Last".
func (a *Athlete) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Result returns the result for a test ID, or nil.
func (a *Athlete) Result(testID string) *TestResult {
	if a.Results == nil {
		return nil
	}
	return a.Results[testID]
}

// ResultsInCatalogOrder returns copies of the athlete's results ordered by
// the test catalog. Results for tests outside the catalog follow, sorted by ID.
func (a *Athlete) ResultsInCatalogOrder() []TestResult {
	out := make([]TestResult, 0, len(a.Results))
	for _, r := range a.Results {
		out = append(out, r.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := catalogIndex(out[i].TestID), catalogIndex(out[j].TestID)
		switch {
		case ci >= 0 && cj >= 0:
			return ci < cj
		case ci >= 0:
			return true
		case cj >= 0:
			return false
		default:
			return out[i].TestID < out[j].TestID
		}
	})
	return out
}
