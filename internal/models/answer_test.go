// ABOUTME: Tests for AnswerValue and Answers.
// ABOUTME: Validates constructors, cloning, display, and tagged JSON/YAML encoding.
package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestSetDropsDuplicates(t *testing.T) {
	a := Set("frango", "ovos", "frango")

	if a.Kind != AnswerSet {
		t.Fatalf("Kind = %v, want set", a.Kind)
	}
	if len(a.Values) != 2 {
		t.Errorf("Values = %v, want 2 unique members", a.Values)
	}
	if !a.Contains("ovos") {
		t.Error("expected set to contain ovos")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := List("sim", ListItem{ID: "a", Fields: Record{"nome": "Testosterona"}})
	cp := orig.Clone()
	cp.Items[0].Fields["nome"] = "changed"

	if orig.Items[0].Fields["nome"] != "Testosterona" {
		t.Error("mutating clone changed the original")
	}

	answers := Answers{5: RecordOf(Record{"idade": "25"})}
	snap := answers.Clone()
	snap[5].Fields["idade"] = "99"
	if answers[5].Fields["idade"] != "25" {
		t.Error("mutating cloned Answers changed the original")
	}
}

func TestAnswerString(t *testing.T) {
	tests := []struct {
		name string
		in   AnswerValue
		want string
	}{
		{"scalar", Scalar("emagrecer"), "emagrecer"},
		{"scalar with detail", ScalarWithDetail("sim", "joelho"), "sim: joelho"},
		{"set", Set("a", "b"), "a, b"},
		{"record sorted", RecordOf(Record{"peso": "70", "idade": "25"}), "idade=25 peso=70"},
		{"list", List("sim", ListItem{ID: "x"}), "sim (1 items)"},
		{"none", AnswerValue{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnswerJSONIsTagged(t *testing.T) {
	data, err := json.Marshal(Set("creatina"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"set"`) {
		t.Errorf("expected kind tag in %s", data)
	}
}

func TestAnswersJSONRoundTrip(t *testing.T) {
	answers := Answers{
		1:  Scalar("emagrecer"),
		2:  Set("saude", "outro"),
		5:  RecordOf(Record{"sexo": "Masculino", "idade": "25"}),
		17: List("sim", ListItem{ID: "row-1", Fields: Record{"nome": "Testosterona"}}),
	}

	data, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got Answers
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(answers, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswersYAMLRoundTrip(t *testing.T) {
	answers := Answers{
		14: ScalarWithDetail("sim", "dor lombar"),
		17: List("nao"),
	}

	data, err := yaml.Marshal(answers)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got Answers
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(answers, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalUnknownKind(t *testing.T) {
	var a AnswerValue
	err := json.Unmarshal([]byte(`{"kind":"matrix"}`), &a)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestUnmarshalSetDropsDuplicates(t *testing.T) {
	want := []string{"saude", "autoestima"}

	var fromJSON AnswerValue
	if err := json.Unmarshal([]byte(`{"kind":"set","values":["saude","saude","autoestima"]}`), &fromJSON); err != nil {
		t.Fatalf("Unmarshal JSON failed: %v", err)
	}
	if diff := cmp.Diff(want, fromJSON.Values); diff != "" {
		t.Errorf("JSON values (-want +got):\n%s", diff)
	}

	var fromYAML AnswerValue
	if err := yaml.Unmarshal([]byte("kind: set\nvalues: [saude, autoestima, saude]\n"), &fromYAML); err != nil {
		t.Fatalf("Unmarshal YAML failed: %v", err)
	}
	if diff := cmp.Diff(want, fromYAML.Values); diff != "" {
		t.Errorf("YAML values (-want +got):\n%s", diff)
	}
}

func TestAnswersIDsSorted(t *testing.T) {
	answers := Answers{9: Scalar("x"), 1: Scalar("y"), 5: Scalar("z")}
	ids := answers.IDs()
	if diff := cmp.Diff([]int{1, 5, 9}, ids); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}
}
