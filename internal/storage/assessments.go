// ABOUTME: Assessment CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for assessments.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/anamnesis/internal/models"
)

// timeLayout is fixed-width UTC so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const assessmentColumns = `id, user_id, schema_version, answers, profile, completed_at, created_at`

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// SaveAssessment stores a new assessment in the database.
func (d *DB) SaveAssessment(a *models.Assessment) error {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	profile, err := json.Marshal(a.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query := `
		INSERT INTO assessments (id, user_id, schema_version, goal, target_calories, answers, profile, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query,
		a.ID.String(),
		a.UserID,
		a.SchemaVersion,
		string(a.Profile.Goal),
		a.Profile.TargetCalories,
		string(answers),
		string(profile),
		formatTime(a.CompletedAt),
		formatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

// GetAssessment retrieves an assessment by ID or ID prefix.
func (d *DB) GetAssessment(idOrPrefix string) (*models.Assessment, error) {
	id, err := d.resolveAssessmentID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE id = ?`
	a, err := scanAssessment(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found: %s", idOrPrefix)
		}
		return nil, err
	}
	return a, nil
}

// ListAssessments retrieves assessments, optionally for one user.
// Results are sorted by CompletedAt descending (most recent first).
func (d *DB) ListAssessments(userID *string, limit int) ([]*models.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments`
	var args []interface{}

	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	query += ` ORDER BY completed_at DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []*models.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetLatestAssessment returns the most recent assessment for a user.
func (d *DB) GetLatestAssessment(userID string) (*models.Assessment, error) {
	list, err := d.ListAssessments(&userID, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no assessments found for user %s", userID)
	}
	return list[0], nil
}

// DeleteAssessment removes an assessment by ID or prefix.
func (d *DB) DeleteAssessment(idOrPrefix string) error {
	id, err := d.resolveAssessmentID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM assessments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}

	return nil
}

// resolveAssessmentID finds the full ID from a prefix.
func (d *DB) resolveAssessmentID(idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("not found: empty id")
	}

	rows, err := d.db.Query(`SELECT id FROM assessments WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve assessment ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan assessment ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAssessment scans one row of assessmentColumns.
func scanAssessment(row rowScanner) (*models.Assessment, error) {
	var a models.Assessment
	var idStr, answers, profile, completedAt string
	var createdAt sql.NullString

	err := row.Scan(&idStr, &a.UserID, &a.SchemaVersion, &answers, &profile, &completedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assessment: %w", err)
	}

	a.ID, _ = uuid.Parse(idStr)
	if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
		return nil, fmt.Errorf("decode answers of %s: %w", idStr, err)
	}
	if err := json.Unmarshal([]byte(profile), &a.Profile); err != nil {
		return nil, fmt.Errorf("decode profile of %s: %w", idStr, err)
	}
	a.CompletedAt, _ = time.Parse(timeLayout, completedAt)
	if createdAt.Valid {
		a.CreatedAt, _ = time.Parse(timeLayout, createdAt.String)
	}

	return &a, nil
}
