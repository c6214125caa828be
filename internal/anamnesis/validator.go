// ABOUTME: Completeness checks for questionnaire answers.
// ABOUTME: Decides whether a step may be left; never returns errors for incomplete input.
package anamnesis

import (
	"strings"

	"github.com/harperreed/anamnesis/internal/models"
)

// MissingAnswer is reported for non-form questions that lack an answer.
const MissingAnswer = "answer"

// IsValid reports whether q has a complete answer in store.
func IsValid(q *models.Question, store *AnswerStore) bool {
	return len(Missing(q, store)) == 0
}

// Missing lists what keeps q from being complete: field names for form
// questions, MissingAnswer otherwise. Empty means valid.
func Missing(q *models.Question, store *AnswerStore) []string {
	if q == nil || !q.Required {
		return nil
	}

	a, _ := store.Answer(q.ID)

	switch q.Type {
	case models.QuestionSingleChoice, models.QuestionTextWithOption, models.QuestionPharmaUsage:
		if strings.TrimSpace(a.Text) == "" {
			return []string{MissingAnswer}
		}
	case models.QuestionMultipleChoice:
		if a.Kind != models.AnswerSet || len(a.Values) == 0 {
			return []string{MissingAnswer}
		}
	case models.QuestionPersonalData:
		var missing []string
		for _, f := range q.Fields {
			if !f.Required {
				continue
			}
			v := strings.TrimSpace(a.Fields[f.Name])
			if v == "" {
				missing = append(missing, f.Name)
				continue
			}
			if f.Type == models.FieldNumber {
				if _, ok := models.ParseNumber(v); !ok {
					missing = append(missing, f.Name)
				}
			}
		}
		return missing
	default:
		return []string{MissingAnswer}
	}
	return nil
}

// ValidateAll checks every visible question and returns the incomplete ones.
func ValidateAll(store *AnswerStore) map[int][]string {
	out := make(map[int][]string)
	schema := store.Schema()
	for i := range schema.Questions {
		q := &schema.Questions[i]
		if !Visible(q, store) {
			continue
		}
		if m := Missing(q, store); len(m) > 0 {
			out[q.ID] = m
		}
	}
	return out
}
