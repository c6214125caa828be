// ABOUTME: Tests for the built-in questionnaire and schema loading.
// ABOUTME: Covers integrity checks and JSON/YAML schema files.
package anamnesis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/anamnesis/internal/models"
	"gopkg.in/yaml.v3"
)

func TestDefaultSchemaIsValid(t *testing.T) {
	s := DefaultSchema()
	if err := ValidateSchema(s); err != nil {
		t.Fatalf("default schema invalid: %v", err)
	}
	if s.Len() != 23 {
		t.Errorf("Len() = %d, want 23", s.Len())
	}

	q16 := s.Question(16)
	if q16 == nil || q16.Conditional == nil {
		t.Fatal("question 16 should be conditional")
	}
	if q16.Conditional.DependsOn != 15 || q16.Conditional.RequiredValue != "sim" {
		t.Errorf("question 16 conditional = %+v", *q16.Conditional)
	}

	roles := []models.Role{
		models.RoleGoal,
		models.RolePersonalData,
		models.RoleBodyComposition,
		models.RoleOccupationalActivity,
		models.RoleLeisureActivity,
		models.RoleTrainingExperience,
		models.RolePharmaUsage,
	}
	for _, r := range roles {
		if s.ByRole(r) == nil {
			t.Errorf("no question carries role %s", r)
		}
	}
}

func TestValidateSchemaRejects(t *testing.T) {
	choice := func(id int) models.Question {
		return models.Question{ID: id, Type: models.QuestionSingleChoice, Options: []models.Option{{Value: "a"}}}
	}

	tests := []struct {
		name    string
		qs      []models.Question
		wantErr string
	}{
		{"empty", nil, "no questions"},
		{"duplicate id", []models.Question{choice(1), choice(1)}, "duplicate question id 1"},
		{"unknown type", []models.Question{{ID: 1, Type: "slider"}}, "unknown type"},
		{"no options", []models.Question{{ID: 1, Type: models.QuestionMultipleChoice}}, "has no options"},
		{"no fields", []models.Question{{ID: 1, Type: models.QuestionPersonalData}}, "has no fields"},
		{
			"forward conditional",
			[]models.Question{
				func() models.Question {
					q := choice(1)
					q.Conditional = &models.Conditional{DependsOn: 2, RequiredValue: "a"}
					return q
				}(),
				choice(2),
			},
			"does not precede it",
		},
		{
			"duplicate role",
			[]models.Question{
				{ID: 1, Type: models.QuestionSingleChoice, Role: models.RoleGoal, Options: []models.Option{{Value: "a"}}},
				{ID: 2, Type: models.QuestionSingleChoice, Role: models.RoleGoal, Options: []models.Option{{Value: "a"}}},
			},
			"role goal",
		},
		{
			"personal data missing field",
			[]models.Question{{
				ID: 5, Type: models.QuestionPersonalData, Role: models.RolePersonalData,
				Fields: []models.Field{{Name: FieldAge}},
			}},
			`lacks field "sexo"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchema(&models.Schema{Questions: tt.qs})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSchemaFormats(t *testing.T) {
	dir := t.TempDir()

	jsonData, err := json.Marshal(DefaultSchema())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	yamlData, err := yaml.Marshal(DefaultSchema())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	files := map[string][]byte{
		"schema.json": jsonData,
		"schema.yaml": yamlData,
	}
	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, data, 0600); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			got, err := LoadSchema(path)
			if err != nil {
				t.Fatalf("LoadSchema failed: %v", err)
			}
			if diff := cmp.Diff(DefaultSchema(), got); diff != "" {
				t.Errorf("schema mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadSchemaErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSchema(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	txt := filepath.Join(dir, "schema.txt")
	if err := os.WriteFile(txt, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSchema(txt); err == nil || !strings.Contains(err.Error(), "unsupported schema format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"version":"x","questions":[]}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSchema(empty); err == nil {
		t.Error("expected integrity error for empty schema")
	}
}
