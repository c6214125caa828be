// ABOUTME: Questionnaire schema loading and integrity checks.
// ABOUTME: Reads JSON or YAML schema files and rejects malformed questionnaires.
package anamnesis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/anamnesis/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadSchema reads a questionnaire from a .json, .yaml or .yml file.
func LoadSchema(path string) (*models.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	var s models.Schema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".json":
		err = json.Unmarshal(data, &s)
	default:
		return nil, fmt.Errorf("unsupported schema format: %s (use .json, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	if err := ValidateSchema(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ValidateSchema checks that a schema can be walked and computed on.
func ValidateSchema(s *models.Schema) error {
	if s == nil || len(s.Questions) == 0 {
		return fmt.Errorf("invalid schema: no questions")
	}

	seen := make(map[int]bool, len(s.Questions))
	roles := make(map[models.Role]int)

	for i := range s.Questions {
		q := &s.Questions[i]
		if seen[q.ID] {
			return fmt.Errorf("invalid schema: duplicate question id %d", q.ID)
		}
		if !q.Type.Valid() {
			return fmt.Errorf("invalid schema: question %d has unknown type %q", q.ID, q.Type)
		}
		if q.Type.HasOptions() && len(q.Options) == 0 {
			return fmt.Errorf("invalid schema: question %d (%s) has no options", q.ID, q.Type)
		}
		if q.Type == models.QuestionPersonalData && len(q.Fields) == 0 {
			return fmt.Errorf("invalid schema: question %d has no fields", q.ID)
		}
		if q.Conditional != nil {
			// Dependencies must come first so they are answered before the check runs.
			if !seen[q.Conditional.DependsOn] {
				return fmt.Errorf("invalid schema: question %d depends on %d, which does not precede it",
					q.ID, q.Conditional.DependsOn)
			}
		}
		if q.Role != models.RoleNone {
			if prev, ok := roles[q.Role]; ok {
				return fmt.Errorf("invalid schema: role %s used by questions %d and %d", q.Role, prev, q.ID)
			}
			roles[q.Role] = q.ID
		}
		seen[q.ID] = true
	}

	if pd := s.ByRole(models.RolePersonalData); pd != nil {
		if pd.Type != models.QuestionPersonalData {
			return fmt.Errorf("invalid schema: personal_data role on question %d of type %s", pd.ID, pd.Type)
		}
		for _, name := range []string{FieldSex, FieldAge, FieldHeight, FieldWeight} {
			if _, ok := pd.Field(name); !ok {
				return fmt.Errorf("invalid schema: personal data question %d lacks field %q", pd.ID, name)
			}
		}
	}
	return nil
}
