// ABOUTME: Data migration between anamnesis storage backends.
// ABOUTME: Copies every assessment from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Assessments int
	Users       int
}

// MigrateData copies all assessments from src to dst storage.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	assessments, err := src.ListAssessments(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source assessments: %w", err)
	}

	users := make(map[string]bool)
	for _, a := range assessments {
		if err := dst.SaveAssessment(a); err != nil {
			return nil, fmt.Errorf("save assessment %s: %w", a.ID, err)
		}
		summary.Assessments++
		users[a.UserID] = true
	}
	summary.Users = len(users)

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
