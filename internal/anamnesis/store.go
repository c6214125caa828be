// ABOUTME: AnswerStore holding one onboarding session's answers.
// ABOUTME: Enforces that each answer's kind matches its question type.
package anamnesis

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/anamnesis/internal/models"
)

var (
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrKindMismatch      = errors.New("answer kind does not match question type")
	ErrIndexOutOfRange   = errors.New("list index out of range")
	ErrLastListItem      = errors.New("cannot remove the last list item")
	ErrNotMultipleChoice = errors.New("question is not multiple choice")
)

// AnswerStore maps question IDs to answers for a single session.
// It is owned by one caller and is not safe for concurrent use.
type AnswerStore struct {
	schema  *models.Schema
	answers models.Answers
}

// NewAnswerStore creates an empty store bound to schema.
func NewAnswerStore(schema *models.Schema) *AnswerStore {
	return &AnswerStore{
		schema:  schema,
		answers: make(models.Answers),
	}
}

// Schema returns the schema the store is bound to.
func (s *AnswerStore) Schema() *models.Schema {
	return s.schema
}

// Answer returns the current answer for id.
func (s *AnswerStore) Answer(id int) (models.AnswerValue, bool) {
	a, ok := s.answers[id]
	return a, ok
}

// Snapshot returns a deep copy of all answers.
func (s *AnswerStore) Snapshot() models.Answers {
	return s.answers.Clone()
}

// Len returns the number of answered questions.
func (s *AnswerStore) Len() int {
	return len(s.answers)
}

func (s *AnswerStore) question(id int) (*models.Question, error) {
	q := s.schema.Question(id)
	if q == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
	}
	return q, nil
}

// SetAnswer overwrites the answer to question id.
//
// A scalar given to a pharma_usage question only changes the selected
// option; existing rows are kept.
func (s *AnswerStore) SetAnswer(id int, value models.AnswerValue) error {
	q, err := s.question(id)
	if err != nil {
		return err
	}

	want := q.Type.AnswerKind()
	if want == models.AnswerList && value.Kind == models.AnswerScalar {
		cur := s.answers[id]
		cur.Kind = models.AnswerList
		cur.Text = value.Text
		s.answers[id] = cur
		return nil
	}
	if value.Kind != want {
		return fmt.Errorf("%w: question %d is %s, got %s answer", ErrKindMismatch, id, q.Type, value.Kind)
	}

	value = value.Clone()
	if value.Kind == models.AnswerSet {
		value.Values = models.Set(value.Values...).Values
	}
	s.answers[id] = value
	return nil
}

// SetField sets one field of a form answer, creating the record if needed.
func (s *AnswerStore) SetField(id int, field, value string) error {
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if q.Type.AnswerKind() != models.AnswerRecord {
		return fmt.Errorf("%w: question %d is %s, not a form", ErrKindMismatch, id, q.Type)
	}

	cur := s.answers[id]
	if cur.Kind != models.AnswerRecord {
		cur = models.AnswerValue{Kind: models.AnswerRecord}
	}
	if cur.Fields == nil {
		cur.Fields = make(models.Record)
	}
	cur.Fields[field] = value
	s.answers[id] = cur
	return nil
}

// ToggleSetMember adds option to a multiple-choice answer, or removes it if present.
func (s *AnswerStore) ToggleSetMember(id int, option string) error {
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if q.Type != models.QuestionMultipleChoice {
		return fmt.Errorf("%w: question %d", ErrNotMultipleChoice, id)
	}

	cur := s.answers[id]
	if cur.Kind != models.AnswerSet {
		cur = models.AnswerValue{Kind: models.AnswerSet}
	}

	var values []string
	removed := false
	for _, v := range cur.Values {
		if v == option {
			removed = true
			continue
		}
		values = append(values, v)
	}
	if !removed {
		values = append(values, option)
	}
	cur.Values = values
	s.answers[id] = cur
	return nil
}

// UpsertListItem sets one field of row index. An index one past the end
// appends a new row with a fresh ID.
func (s *AnswerStore) UpsertListItem(id, index int, field, value string) error {
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if q.Type.AnswerKind() != models.AnswerList {
		return fmt.Errorf("%w: question %d is %s, not a list", ErrKindMismatch, id, q.Type)
	}

	cur := s.answers[id]
	cur.Kind = models.AnswerList
	if index < 0 || index > len(cur.Items) {
		return fmt.Errorf("%w: %d (list has %d items)", ErrIndexOutOfRange, index, len(cur.Items))
	}

	items := make([]models.ListItem, len(cur.Items), len(cur.Items)+1)
	copy(items, cur.Items)
	if index == len(items) {
		items = append(items, models.ListItem{ID: uuid.NewString()})
	}

	row := items[index]
	fields := row.Fields.Clone()
	if fields == nil {
		fields = make(models.Record)
	}
	fields[field] = value
	items[index] = models.ListItem{ID: row.ID, Fields: fields}

	cur.Items = items
	s.answers[id] = cur
	return nil
}

// RemoveListItem deletes row index, refusing to empty the list.
func (s *AnswerStore) RemoveListItem(id, index int) error {
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if q.Type.AnswerKind() != models.AnswerList {
		return fmt.Errorf("%w: question %d is %s, not a list", ErrKindMismatch, id, q.Type)
	}

	cur := s.answers[id]
	if index < 0 || index >= len(cur.Items) {
		return fmt.Errorf("%w: %d (list has %d items)", ErrIndexOutOfRange, index, len(cur.Items))
	}
	if len(cur.Items) <= 1 {
		return ErrLastListItem
	}

	items := make([]models.ListItem, 0, len(cur.Items)-1)
	items = append(items, cur.Items[:index]...)
	items = append(items, cur.Items[index+1:]...)
	cur.Items = items
	s.answers[id] = cur
	return nil
}

// Clear removes the answer to question id.
func (s *AnswerStore) Clear(id int) {
	delete(s.answers, id)
}
