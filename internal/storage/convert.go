// ABOUTME: Conversions between Athlete models and backend record shapes.
// ABOUTME: Shared ordering so every backend lists athletes the same way.
package storage

import (
	"sort"
	"time"

	"github.com/harperreed/athlete/internal/models"
)

func toProfile(a *models.Athlete) kvProfile {
	return kvProfile{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DOB:         formatDate(a.DOB),
		Gender:      a.Gender,
		Contact:     a.Contact,
		Language:    a.Language,
		Sport:       a.Sport,
		RoleInSport: a.RoleInSport,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}

func fromProfile(p kvProfile) *models.Athlete {
	a := &models.Athlete{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Gender:      p.Gender,
		Contact:     p.Contact,
		Language:    p.Language,
		Sport:       p.Sport,
		RoleInSport: p.RoleInSport,
		Results:     make(map[string]*models.TestResult),
	}
	if p.DOB != "" {
		a.DOB, _ = time.Parse(dateLayout, p.DOB)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, p.CreatedAt)
	return a
}

// sortAthletes orders by last name, first name, then ID, matching the SQLite backend.
func sortAthletes(athletes []*models.Athlete) {
	sort.SliceStable(athletes, func(i, j int) bool {
		a, b := athletes[i], athletes[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID.String() < b.ID.String()
	})
}
