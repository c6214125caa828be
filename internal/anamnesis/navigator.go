// ABOUTME: Navigator walking the questionnaire with conditional skipping.
// ABOUTME: Tracks the current step, the Completed terminal state, and progress.
package anamnesis

import "github.com/harperreed/anamnesis/internal/models"

// State is a snapshot of the navigator position.
type State struct {
	Index     int
	Question  *models.Question
	Completed bool
	Progress  float64
	// Missing is set by Session.Next when the current step blocked advancement.
	Missing []string
}

// Visible reports whether q should be shown given the current answers.
// A question whose dependency is unanswered is hidden.
func Visible(q *models.Question, store *AnswerStore) bool {
	if q.Conditional == nil {
		return true
	}
	a, ok := store.Answer(q.Conditional.DependsOn)
	if !ok {
		return false
	}
	switch a.Kind {
	case models.AnswerScalar, models.AnswerList:
		return a.Text == q.Conditional.RequiredValue
	case models.AnswerSet:
		return a.Contains(q.Conditional.RequiredValue)
	}
	return false
}

// ClearHidden removes answers to questions that are not visible and returns
// their IDs. Questions are checked in schema order, so a cleared dependency
// also hides the questions that depend on it.
func ClearHidden(store *AnswerStore) []int {
	var cleared []int
	schema := store.Schema()
	for i := range schema.Questions {
		q := &schema.Questions[i]
		if _, ok := store.Answer(q.ID); !ok || Visible(q, store) {
			continue
		}
		store.Clear(q.ID)
		cleared = append(cleared, q.ID)
	}
	return cleared
}

// Navigator moves through a schema one visible question at a time.
type Navigator struct {
	schema    *models.Schema
	index     int
	completed bool
}

// NewNavigator positions a navigator on the first visible question.
// A schema with no visible questions starts Completed.
func NewNavigator(schema *models.Schema, store *AnswerStore) *Navigator {
	n := &Navigator{schema: schema}
	n.index = n.seekForward(0, store)
	if n.index < 0 {
		n.completed = true
		n.index = len(schema.Questions)
	}
	return n
}

// CurrentStep returns the question being shown, or nil when Completed.
func (n *Navigator) CurrentStep() *models.Question {
	if n.completed {
		return nil
	}
	return &n.schema.Questions[n.index]
}

// Completed reports whether the terminal state has been reached.
func (n *Navigator) Completed() bool {
	return n.completed
}

// Next advances to the next visible question, or to Completed after the last.
// Calling Next from Completed does nothing.
func (n *Navigator) Next(store *AnswerStore) State {
	if n.completed {
		return n.State(store)
	}
	if i := n.seekForward(n.index+1, store); i >= 0 {
		n.index = i
	} else {
		n.completed = true
		n.index = len(n.schema.Questions)
	}
	return n.State(store)
}

// Previous moves back to the closest earlier visible question.
// From the first visible question, or from Completed, it does nothing.
func (n *Navigator) Previous(store *AnswerStore) State {
	if n.completed {
		return n.State(store)
	}
	if i := n.seekBackward(n.index-1, store); i >= 0 {
		n.index = i
	}
	return n.State(store)
}

// Reopen leaves Completed and positions on question id when it is visible,
// otherwise on the last visible question. Outside Completed it does nothing.
func (n *Navigator) Reopen(store *AnswerStore, id int) State {
	if !n.completed {
		return n.State(store)
	}
	i := n.schema.IndexOf(id)
	if i < 0 || !Visible(&n.schema.Questions[i], store) {
		i = n.seekBackward(len(n.schema.Questions)-1, store)
	}
	if i >= 0 {
		n.index = i
		n.completed = false
	}
	return n.State(store)
}

// Progress returns the fraction of visible questions already passed.
func (n *Navigator) Progress(store *AnswerStore) float64 {
	if n.completed {
		return 1
	}
	total, before := 0, 0
	for i := range n.schema.Questions {
		if !Visible(&n.schema.Questions[i], store) {
			continue
		}
		total++
		if i < n.index {
			before++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(before) / float64(total)
}

// State reports the current position.
func (n *Navigator) State(store *AnswerStore) State {
	return State{
		Index:     n.index,
		Question:  n.CurrentStep(),
		Completed: n.completed,
		Progress:  n.Progress(store),
	}
}

func (n *Navigator) seekForward(from int, store *AnswerStore) int {
	for i := from; i < len(n.schema.Questions); i++ {
		if Visible(&n.schema.Questions[i], store) {
			return i
		}
	}
	return -1
}

func (n *Navigator) seekBackward(from int, store *AnswerStore) int {
	for i := from; i >= 0; i-- {
		if Visible(&n.schema.Questions[i], store) {
			return i
		}
	}
	return -1
}

// Resume replays a navigator over already stored answers. It stops on the
// first visible question that is still invalid, or reaches Completed.
func Resume(schema *models.Schema, store *AnswerStore) *Navigator {
	n := NewNavigator(schema, store)
	for !n.completed {
		if !IsValid(n.CurrentStep(), store) {
			break
		}
		n.Next(store)
	}
	return n
}
