// ABOUTME: Repository interface for assessment storage.
// ABOUTME: Defines the contract shared by the SQLite and Charm KV backends.
package storage

import (
	"github.com/harperreed/anamnesis/internal/models"
)

// Repository defines the storage interface for completed assessments.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Assessment operations
	SaveAssessment(a *models.Assessment) error
	GetAssessment(idOrPrefix string) (*models.Assessment, error)
	ListAssessments(userID *string, limit int) ([]*models.Assessment, error)
	GetLatestAssessment(userID string) (*models.Assessment, error)
	DeleteAssessment(idOrPrefix string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
