// ABOUTME: Tests for answer completeness rules.
// ABOUTME: Covers each question type and whole-store validation.
package anamnesis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/anamnesis/internal/models"
)

func TestMissing(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name   string
		id     int
		answer *models.AnswerValue
		want   []string
	}{
		{"single choice unanswered", 1, nil, []string{MissingAnswer}},
		{"single choice blank", 1, ptr(models.Scalar("  ")), []string{MissingAnswer}},
		{"single choice answered", 1, ptr(models.Scalar("emagrecer")), nil},
		{"multiple choice empty", 19, ptr(models.Set()), []string{MissingAnswer}},
		{"multiple choice answered", 19, ptr(models.Set("ovos")), nil},
		{"text with option", 14, ptr(models.ScalarWithDetail("sim", "joelho")), nil},
		{"pharma unanswered", 17, nil, []string{MissingAnswer}},
		{"pharma answered", 17, ptr(models.List("nao")), nil},
		{"optional question", 16, nil, nil},
		{
			"personal data partial",
			5,
			ptr(models.RecordOf(models.Record{"sexo": "Masculino", "idade": "25"})),
			[]string{"altura", "peso"},
		},
		{
			"personal data non-numeric",
			5,
			ptr(models.RecordOf(models.Record{"sexo": "Masculino", "idade": "vinte", "altura": "175", "peso": "NaN"})),
			[]string{"idade", "peso"},
		},
		{
			"personal data out of range still valid",
			5,
			ptr(models.RecordOf(models.Record{"sexo": "Feminino", "idade": "0", "altura": "175,5", "peso": "-3"})),
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewAnswerStore(schema)
			if tt.answer != nil {
				if err := store.SetAnswer(tt.id, *tt.answer); err != nil {
					t.Fatalf("SetAnswer failed: %v", err)
				}
			}
			q := schema.Question(tt.id)
			got := Missing(q, store)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
			if IsValid(q, store) != (len(tt.want) == 0) {
				t.Errorf("IsValid disagrees with Missing")
			}
		})
	}
}

func TestValidateAll(t *testing.T) {
	store := completeStore(t)
	if got := ValidateAll(store); len(got) != 0 {
		t.Errorf("complete store reported missing: %v", got)
	}

	store.Clear(7)
	if err := store.SetAnswer(15, models.Scalar("sim")); err != nil {
		t.Fatal(err)
	}
	got := ValidateAll(store)
	want := map[int][]string{7: {MissingAnswer}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ValidateAll mismatch (-want +got):\n%s", diff)
	}
}

func ptr(a models.AnswerValue) *models.AnswerValue {
	return &a
}
