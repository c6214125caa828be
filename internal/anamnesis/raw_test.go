// ABOUTME: Tests for lenient answer decoding and answer files.
package anamnesis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/harperreed/anamnesis/internal/models"
)

func TestAnswerFromRaw(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name string
		id   int
		raw  any
		want models.AnswerValue
	}{
		{"scalar string", 1, "emagrecer", models.Scalar("emagrecer")},
		{"scalar number", 11, 4, models.Scalar("4")},
		{"scalar with detail", 14, map[string]any{"value": "sim", "detail": "joelho"}, models.ScalarWithDetail("sim", "joelho")},
		{"set from list", 19, []any{"frango", "ovos"}, models.Set("frango", "ovos")},
		{"set from csv", 19, "frango, ovos", models.Set("frango", "ovos")},
		{
			"record with numbers",
			5,
			map[string]any{"sexo": "Masculino", "idade": 25, "altura": 175.5, "peso": float64(70)},
			models.RecordOf(models.Record{"sexo": "Masculino", "idade": "25", "altura": "175.5", "peso": "70"}),
		},
		{
			"record from yaml map",
			5,
			map[any]any{"sexo": "Feminino", "idade": 30},
			models.RecordOf(models.Record{"sexo": "Feminino", "idade": "30"}),
		},
		{"pharma choice", 17, "nao", models.List("nao")},
		{
			"pharma rows",
			17,
			[]any{map[string]any{"id": "r1", "nome": "Testosterona", "dosagem": "200mg"}},
			models.List("sim", models.ListItem{ID: "r1", Fields: models.Record{"nome": "Testosterona", "dosagem": "200mg"}}),
		},
		{
			"pharma object",
			17,
			map[string]any{"value": "sim", "items": []any{map[string]any{"id": "r2", "nome": "GH"}}},
			models.List("sim", models.ListItem{ID: "r2", Fields: models.Record{"nome": "GH"}}),
		},
		{"tagged", 2, map[string]any{"kind": "set", "values": []any{"saude"}}, models.Set("saude")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnswerFromRaw(schema.Question(tt.id), tt.raw)
			if err != nil {
				t.Fatalf("AnswerFromRaw failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnswerFromRawRejects(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name string
		id   int
		raw  any
	}{
		{"object for scalar list", 1, []any{"a"}},
		{"scalar for record", 5, "Masculino"},
		{"bad set element", 19, []any{map[string]any{}}},
		{"bad pharma items", 17, map[string]any{"value": "sim", "items": "x"}},
		{"unknown tag", 1, map[string]any{"kind": "matrix"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AnswerFromRaw(schema.Question(tt.id), tt.raw); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadAnswersRejectsMismatch(t *testing.T) {
	_, err := LoadAnswers(DefaultSchema(), map[int]any{99: "x"})
	if err == nil {
		t.Error("expected error for unknown question")
	}

	_, err = LoadAnswers(DefaultSchema(), map[int]any{1: map[string]any{"kind": "set", "values": []any{"a"}}})
	if err == nil {
		t.Error("expected kind mismatch for tagged set on single choice")
	}
}

func TestReadAnswersFile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"answers.yaml": `
1: emagrecer
5:
  sexo: Masculino
  idade: 25
  altura: 175
  peso: 70
19: [frango, ovos]
`,
		"answers.json": `{"1": "emagrecer", "5": {"sexo": "Masculino", "idade": 25, "altura": 175, "peso": 70}, "19": ["frango", "ovos"]}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				t.Fatal(err)
			}

			raw, err := ReadAnswersFile(path)
			if err != nil {
				t.Fatalf("ReadAnswersFile failed: %v", err)
			}
			store, err := LoadAnswers(DefaultSchema(), raw)
			if err != nil {
				t.Fatalf("LoadAnswers failed: %v", err)
			}

			a, _ := store.Answer(5)
			if a.Fields["idade"] != "25" || a.Fields["sexo"] != "Masculino" {
				t.Errorf("unexpected personal data %+v", a.Fields)
			}
			a, _ = store.Answer(19)
			if !a.Contains("ovos") {
				t.Errorf("unexpected set %+v", a.Values)
			}
		})
	}
}
