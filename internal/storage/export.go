// ABOUTME: Export and import functionality for assessments.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/anamnesis/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for assessments.
type ExportData struct {
	Version     string               `json:"version" yaml:"version"`
	ExportedAt  time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool        string               `json:"tool" yaml:"tool"`
	Assessments []*models.Assessment `json:"assessments" yaml:"assessments"`
}

// NewExportData wraps assessments in an export envelope.
func NewExportData(assessments []*models.Assessment) *ExportData {
	return &ExportData{
		Version:     ExportVersion,
		ExportedAt:  time.Now(),
		Tool:        "anamnesis",
		Assessments: assessments,
	}
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	assessments, err := d.ListAssessments(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return NewExportData(assessments), nil
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	for _, a := range data.Assessments {
		if err := d.SaveAssessment(a); err != nil {
			return fmt.Errorf("import assessment %s: %w", a.ID, err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ParseExport decodes an export file in the given format ("json" or "yaml").
func ParseExport(raw []byte, format string) (*ExportData, error) {
	var data ExportData
	switch format {
	case "json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown import format: %s (use json or yaml)", format)
	}
	return &data, nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) error {
	data, err := ParseExport(raw, "json")
	if err != nil {
		return err
	}
	return repo.ImportData(data)
}

// ExportMarkdown renders assessments as a Markdown report. When schema is
// non-nil answers are listed with their question prompts.
func ExportMarkdown(repo Repository, schema *models.Schema, userID *string, since *time.Time) (string, error) {
	assessments, err := repo.ListAssessments(userID, 0)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Anamnesis Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	count := 0
	for _, a := range assessments {
		if since != nil && a.CompletedAt.Before(*since) {
			continue
		}
		count++
		writeAssessmentMarkdown(&sb, a, schema)
	}
	if count == 0 {
		sb.WriteString("No assessments.\n")
	}

	return sb.String(), nil
}

func writeAssessmentMarkdown(sb *strings.Builder, a *models.Assessment, schema *models.Schema) {
	p := a.Profile
	sb.WriteString(fmt.Sprintf("## %s - %s (%s)\n\n",
		a.CompletedAt.Local().Format("2006-01-02 15:04"), p.Goal.Label(), a.ID.String()[:8]))

	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| BMR (%s) | %.0f kcal |\n", p.Formula, p.BMR))
	sb.WriteString(fmt.Sprintf("| Adjusted BMR | %.0f kcal |\n", p.AdjustedBMR))
	sb.WriteString(fmt.Sprintf("| TDEE | %.0f kcal |\n", p.TDEE))
	sb.WriteString(fmt.Sprintf("| Target | %.0f kcal |\n", p.TargetCalories))
	sb.WriteString(fmt.Sprintf("| BMI | %.1f (%s) |\n\n", p.BMI, p.BMIClass.Label()))

	sb.WriteString("| Macro | Share | Grams | kcal |\n")
	sb.WriteString("|-------|-------|-------|------|\n")
	for _, m := range []struct {
		name  string
		macro models.Macro
	}{
		{"Protein", p.Macros.Protein},
		{"Carbs", p.Macros.Carbs},
		{"Fat", p.Macros.Fat},
	} {
		sb.WriteString(fmt.Sprintf("| %s | %.0f%% | %d g | %.0f |\n",
			m.name, m.macro.Percent*100, m.macro.Grams, m.macro.Calories))
	}
	sb.WriteString("\n")

	if len(a.Answers) == 0 {
		return
	}
	sb.WriteString("### Answers\n\n")
	for _, id := range a.Answers.IDs() {
		label := fmt.Sprintf("Q%d", id)
		if schema != nil {
			if q := schema.Question(id); q != nil {
				label = fmt.Sprintf("%d. %s", id, q.Prompt)
			}
		}
		sb.WriteString(fmt.Sprintf("- **%s** %s\n", label, a.Answers[id].String()))
	}
	sb.WriteString("\n")
}
