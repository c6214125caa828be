// ABOUTME: Assessment model tying raw answers and a computed profile to a user.
// ABOUTME: This is the record handed to storage when onboarding completes.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Assessment is a completed anamnesis with its derived profile.
type Assessment struct {
	ID            uuid.UUID       `json:"id" yaml:"id"`
	UserID        string          `json:"user_id" yaml:"user_id"`
	SchemaVersion string          `json:"schema_version" yaml:"schema_version"`
	Answers       Answers         `json:"answers" yaml:"answers"`
	Profile       ComputedProfile `json:"profile" yaml:"profile"`
	CompletedAt   time.Time       `json:"completed_at" yaml:"completed_at"`
	CreatedAt     time.Time       `json:"created_at" yaml:"created_at"`
}

// NewAssessment creates an Assessment with generated UUID and current timestamp.
func NewAssessment(userID string, answers Answers, profile ComputedProfile) *Assessment {
	now := time.Now()
	return &Assessment{
		ID:          uuid.New(),
		UserID:      userID,
		Answers:     answers.Clone(),
		Profile:     profile,
		CompletedAt: now,
		CreatedAt:   now,
	}
}

// WithSchemaVersion records which questionnaire version produced the answers.
func (a *Assessment) WithSchemaVersion(version string) *Assessment {
	a.SchemaVersion = version
	return a
}

// WithCompletedAt sets a custom completion timestamp.
func (a *Assessment) WithCompletedAt(t time.Time) *Assessment {
	a.CompletedAt = t
	return a
}
