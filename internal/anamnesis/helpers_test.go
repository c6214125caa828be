// ABOUTME: Shared fixtures for anamnesis tests.
// ABOUTME: Provides a complete answer set for the built-in questionnaire.
package anamnesis

import (
	"testing"
)

// completeAnswers answers every required question of the default schema
// with the Scenario A profile (male, 25y, 175cm, 70kg, sedentary, weight loss).
func completeAnswers() map[int]any {
	return map[int]any{
		1:  "emagrecer",
		2:  []any{"saude"},
		3:  "medio",
		4:  "sustentavel",
		5:  map[string]any{"sexo": "Masculino", "idade": 25, "altura": 175, "peso": 70},
		6:  "normal",
		7:  "sedentario",
		8:  "tranquila",
		9:  "iniciante",
		10: "academia_completa",
		11: "4",
		12: []any{"musculacao", "corrida"},
		13: "7-8",
		14: "nao",
		15: "nao",
		17: "nao",
		18: "4-5",
		19: []any{"frango", "ovos"},
		20: []any{"arroz", "frutas"},
		21: "nao",
		22: "6+_copos",
		23: "1-2_livres",
	}
}

func completeStore(t *testing.T) *AnswerStore {
	t.Helper()
	store, err := LoadAnswers(DefaultSchema(), completeAnswers())
	if err != nil {
		t.Fatalf("LoadAnswers failed: %v", err)
	}
	return store
}
