// ABOUTME: Data migration between athlete storage backends.
// ABOUTME: Copies athletes with their results and measurements from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Athletes     int
	Results      int
	Observations int
	Measurements int
}

// MigrateData copies all data from src to dst storage. The destination
// should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	athletes, err := src.ListAthletes(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source athletes: %w", err)
	}

	for _, a := range athletes {
		if err := dst.CreateAthlete(a); err != nil {
			return nil, fmt.Errorf("create athlete %s: %w", a.ID, err)
		}
		summary.Athletes++
		summary.Results += len(a.Results)
		for _, r := range a.Results {
			summary.Observations += len(r.History)
		}
		if a.Measurement != nil {
			summary.Measurements++
		}
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
