// ABOUTME: Adapter exposing a Repository as an onboarding result persister.
// ABOUTME: Wraps answers and profile in an Assessment before saving.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/harperreed/anamnesis/internal/models"
)

// Persister saves completed onboarding results to a Repository.
type Persister struct {
	repo          Repository
	schemaVersion string

	// CompletedAt stamps saved assessments when set; otherwise they use now.
	CompletedAt time.Time

	// Last is the most recently saved assessment.
	Last *models.Assessment
}

// NewPersister creates a Persister tagging assessments with schemaVersion.
func NewPersister(repo Repository, schemaVersion string) *Persister {
	return &Persister{repo: repo, schemaVersion: schemaVersion}
}

// Save stores answers and profile as a new assessment for userID.
func (p *Persister) Save(ctx context.Context, userID string, answers models.Answers, profile *models.ComputedProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if profile == nil {
		return errors.New("no profile to save")
	}

	a := models.NewAssessment(userID, answers, *profile).WithSchemaVersion(p.schemaVersion)
	if !p.CompletedAt.IsZero() {
		a.WithCompletedAt(p.CompletedAt)
	}
	if err := p.repo.SaveAssessment(a); err != nil {
		return err
	}
	p.Last = a
	return nil
}
