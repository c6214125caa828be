// ABOUTME: Assessment storage operations for Charm KV.
// ABOUTME: Uses type-prefixed keys and client-side filtering and sorting.
package charm

import (
	"fmt"
	"sort"

	"github.com/harperreed/anamnesis/internal/models"
	"github.com/harperreed/anamnesis/internal/storage"
)

// Compile-time check that Client implements Repository.
var _ storage.Repository = (*Client)(nil)

// SaveAssessment stores a new assessment in the KV store.
func (c *Client) SaveAssessment(a *models.Assessment) error {
	key := AssessmentPrefix + a.ID.String()

	c.mu.RLock()
	existing, _ := c.kv.Get([]byte(key))
	c.mu.RUnlock()
	if existing != nil {
		return fmt.Errorf("save assessment: %s already exists", a.ID)
	}

	data, err := marshalJSON(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	return c.set(key, data)
}

// GetAssessment retrieves an assessment by ID or ID prefix.
func (c *Client) GetAssessment(idOrPrefix string) (*models.Assessment, error) {
	data, err := c.getByIDPrefix(AssessmentPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}

	a, err := unmarshalJSON[models.Assessment](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal assessment: %w", err)
	}
	return a, nil
}

// ListAssessments retrieves assessments, optionally for one user.
// Results are sorted by CompletedAt descending (most recent first).
func (c *Client) ListAssessments(userID *string, limit int) ([]*models.Assessment, error) {
	allData, err := c.listByPrefix(AssessmentPrefix)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}

	var out []*models.Assessment
	for _, data := range allData {
		a, err := unmarshalJSON[models.Assessment](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if userID != nil && a.UserID != *userID {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetLatestAssessment returns the most recent assessment for a user.
func (c *Client) GetLatestAssessment(userID string) (*models.Assessment, error) {
	list, err := c.ListAssessments(&userID, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no assessments found for user %s", userID)
	}
	return list[0], nil
}

// DeleteAssessment removes an assessment by ID or prefix.
func (c *Client) DeleteAssessment(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(AssessmentPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}

// AssessmentIDs lists the stored assessment IDs without decoding values.
func (c *Client) AssessmentIDs() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, k := range keys {
		key := string(k)
		if id := extractID(key, AssessmentPrefix); id != key {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	assessments, err := c.ListAssessments(nil, 0)
	if err != nil {
		return nil, err
	}
	return storage.NewExportData(assessments), nil
}

// ImportData imports data from an export file.
func (c *Client) ImportData(data *storage.ExportData) error {
	for _, a := range data.Assessments {
		if err := c.SaveAssessment(a); err != nil {
			return fmt.Errorf("import assessment %s: %w", a.ID, err)
		}
	}
	return nil
}
