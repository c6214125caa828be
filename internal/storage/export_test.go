// ABOUTME: Tests for export and import of assessments.
// ABOUTME: Covers JSON and YAML round trips and the Markdown report.
package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/harperreed/anamnesis/internal/models"
)

func TestExportImportJSON(t *testing.T) {
	src := setupTestDB(t)
	a := sampleAssessment("u", time.Now())
	if err := src.SaveAssessment(a); err != nil {
		t.Fatal(err)
	}

	data, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if !strings.Contains(string(data), `"tool": "anamnesis"`) {
		t.Errorf("export missing tool marker: %s", data)
	}

	dst := setupTestDB(t)
	if err := ImportJSON(dst, data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	got, err := dst.GetAssessment(a.ID.String())
	if err != nil {
		t.Fatalf("GetAssessment after import failed: %v", err)
	}
	equalAssessment(t, a, got)
}

func TestExportImportYAML(t *testing.T) {
	src := setupTestDB(t)
	a := sampleAssessment("u", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC))
	if err := src.SaveAssessment(a); err != nil {
		t.Fatal(err)
	}

	data, err := ExportYAML(src)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	parsed, err := ParseExport(data, "yaml")
	if err != nil {
		t.Fatalf("ParseExport failed: %v", err)
	}
	if len(parsed.Assessments) != 1 {
		t.Fatalf("parsed %d assessments, want 1", len(parsed.Assessments))
	}
	equalAssessment(t, a, parsed.Assessments[0])
}

func TestParseExportErrors(t *testing.T) {
	if _, err := ParseExport([]byte("{"), "json"); err == nil {
		t.Error("expected JSON error")
	}
	if _, err := ParseExport([]byte("x"), "toml"); err == nil {
		t.Error("expected unknown format error")
	}
}

func TestImportDuplicateFails(t *testing.T) {
	db := setupTestDB(t)
	a := sampleAssessment("u", time.Now())
	if err := db.SaveAssessment(a); err != nil {
		t.Fatal(err)
	}
	if err := db.ImportData(NewExportData([]*models.Assessment{a})); err == nil {
		t.Error("importing an existing ID should fail")
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	old := sampleAssessment("u", time.Now().Add(-48*time.Hour))
	recent := sampleAssessment("u", time.Now())
	for _, a := range []*models.Assessment{old, recent} {
		if err := db.SaveAssessment(a); err != nil {
			t.Fatal(err)
		}
	}

	schema := &models.Schema{Questions: []models.Question{{ID: 1, Prompt: "Qual é o seu principal objetivo?"}}}
	since := time.Now().Add(-24 * time.Hour)

	md, err := ExportMarkdown(db, schema, nil, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Anamnesis Export",
		recent.ID.String()[:8],
		"| BMI | 22.9 (Peso normal) |",
		"| Protein | 30% | 126 g | 504 |",
		"1. Qual é o seu principal objetivo?",
		"**Q19** frango, ovos",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, old.ID.String()[:8]) {
		t.Error("markdown should skip assessments before --since")
	}
}

func TestExportMarkdownEmpty(t *testing.T) {
	db := setupTestDB(t)
	md, err := ExportMarkdown(db, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "No assessments.") {
		t.Errorf("unexpected empty report:\n%s", md)
	}
}
