// ABOUTME: Tests for the question schema model.
// ABOUTME: Validates type-to-answer-kind mapping and schema lookups.
package models

import (
	"testing"
)

func TestQuestionTypeAnswerKind(t *testing.T) {
	tests := []struct {
		qt   QuestionType
		want AnswerKind
	}{
		{QuestionSingleChoice, AnswerScalar},
		{QuestionTextWithOption, AnswerScalar},
		{QuestionMultipleChoice, AnswerSet},
		{QuestionPersonalData, AnswerRecord},
		{QuestionPharmaUsage, AnswerList},
		{QuestionType("slider"), AnswerNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.qt), func(t *testing.T) {
			if got := tt.qt.AnswerKind(); got != tt.want {
				t.Errorf("AnswerKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllQuestionTypesValid(t *testing.T) {
	for _, qt := range AllQuestionTypes {
		if !qt.Valid() {
			t.Errorf("%s should be valid", qt)
		}
		if qt.AnswerKind() == AnswerNone {
			t.Errorf("%s has no answer kind", qt)
		}
	}
	if QuestionType("free_text").Valid() {
		t.Error("free_text should not be valid")
	}
}

func TestSchemaLookups(t *testing.T) {
	s := &Schema{Questions: []Question{
		{ID: 1, Type: QuestionSingleChoice, Role: RoleGoal, Options: []Option{{Value: "emagrecer"}}},
		{ID: 5, Type: QuestionPersonalData, Role: RolePersonalData, Fields: []Field{{Name: "idade"}}},
	}}

	if s.IndexOf(5) != 1 {
		t.Errorf("IndexOf(5) = %d, want 1", s.IndexOf(5))
	}
	if s.IndexOf(42) != -1 {
		t.Error("IndexOf(42) should be -1")
	}
	if q := s.ByRole(RoleGoal); q == nil || q.ID != 1 {
		t.Errorf("ByRole(goal) = %v, want question 1", q)
	}
	if s.ByRole(RoleNone) != nil {
		t.Error("ByRole(none) should be nil")
	}
	if _, ok := s.Question(1).Option("emagrecer"); !ok {
		t.Error("expected option emagrecer")
	}
	if _, ok := s.Question(5).Field("idade"); !ok {
		t.Error("expected field idade")
	}
}
