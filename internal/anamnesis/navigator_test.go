// ABOUTME: Tests for questionnaire navigation and conditional skipping.
// ABOUTME: Covers the supplement branch, terminal state, and progress.
package anamnesis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/anamnesis/internal/models"
)

// walk advances to Completed and returns the IDs shown along the way.
func walk(t *testing.T, nav *Navigator, store *AnswerStore) []int {
	t.Helper()
	var seen []int
	for i := 0; !nav.Completed(); i++ {
		if i > store.Schema().Len()+1 {
			t.Fatal("navigator did not terminate")
		}
		seen = append(seen, nav.CurrentStep().ID)
		nav.Next(store)
	}
	return seen
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func TestSupplementBranch(t *testing.T) {
	tests := []struct {
		answer  string
		visible bool
	}{
		{"nao", false},
		{"sim", true},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			store := completeStore(t)
			if err := store.SetAnswer(15, models.Scalar(tt.answer)); err != nil {
				t.Fatal(err)
			}

			seen := walk(t, NewNavigator(store.Schema(), store), store)
			i15 := indexOf(seen, 15)
			i16 := indexOf(seen, 16)

			if !tt.visible {
				if i16 != -1 {
					t.Errorf("question 16 shown although 15 = %s", tt.answer)
				}
				if seen[i15+1] != 17 {
					t.Errorf("after 15 got %d, want 17", seen[i15+1])
				}
				return
			}
			if i16 != i15+1 {
				t.Errorf("question 16 should follow 15 directly, got order %v", seen)
			}
		})
	}
}

func TestConditionalHiddenWithoutDependency(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())
	if Visible(DefaultSchema().Question(16), store) {
		t.Error("question 16 should be hidden before 15 is answered")
	}
}

func TestSkipInvariantAcrossAnswers(t *testing.T) {
	for _, v := range []string{"sim", "nao", "talvez", ""} {
		store := completeStore(t)
		if v == "" {
			store.Clear(15)
		} else if err := store.SetAnswer(15, models.Scalar(v)); err != nil {
			t.Fatal(err)
		}

		nav := NewNavigator(store.Schema(), store)
		for !nav.Completed() {
			q := nav.CurrentStep()
			if q.Conditional != nil {
				dep, _ := store.Answer(q.Conditional.DependsOn)
				if dep.Text != q.Conditional.RequiredValue {
					t.Errorf("15=%q: question %d shown with dependency %q", v, q.ID, dep.Text)
				}
			}
			nav.Next(store)
		}
	}
}

func TestPreviousSkipsHidden(t *testing.T) {
	store := completeStore(t)
	nav := NewNavigator(store.Schema(), store)
	for nav.CurrentStep().ID != 17 {
		nav.Next(store)
	}

	st := nav.Previous(store)
	if st.Question.ID != 15 {
		t.Errorf("Previous from 17 = %d, want 15", st.Question.ID)
	}
}

func TestPreviousAtStartIsNoop(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())
	nav := NewNavigator(store.Schema(), store)

	st := nav.Previous(store)
	if st.Index != 0 || st.Question.ID != 1 {
		t.Errorf("Previous at start moved to index %d", st.Index)
	}
	if st.Progress != 0 {
		t.Errorf("Progress at start = %f, want 0", st.Progress)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	store := completeStore(t)
	nav := NewNavigator(store.Schema(), store)
	walk(t, nav, store)

	st := nav.Next(store)
	if !st.Completed || st.Question != nil {
		t.Errorf("Next from Completed = %+v", st)
	}
	if st.Progress != 1 {
		t.Errorf("Progress = %f, want 1", st.Progress)
	}
	if st = nav.Previous(store); !st.Completed {
		t.Error("Previous should not leave Completed")
	}
}

func TestClearHidden(t *testing.T) {
	store := completeStore(t)
	if err := store.SetAnswer(16, models.Set("creatina")); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{16}, ClearHidden(store)); diff != "" {
		t.Errorf("cleared mismatch (-want +got):\n%s", diff)
	}
	if _, ok := store.Answer(16); ok {
		t.Error("hidden answer to 16 should be cleared")
	}

	if err := store.SetAnswer(15, models.Scalar("sim")); err != nil {
		t.Fatal(err)
	}
	if err := store.SetAnswer(16, models.Set("creatina")); err != nil {
		t.Fatal(err)
	}
	if cleared := ClearHidden(store); len(cleared) != 0 {
		t.Errorf("nothing should be cleared while 16 is visible, got %v", cleared)
	}
}

func TestReopen(t *testing.T) {
	store := completeStore(t)
	nav := NewNavigator(store.Schema(), store)

	if st := nav.Reopen(store, 5); st.Question.ID != 1 {
		t.Errorf("Reopen outside Completed moved to %d", st.Question.ID)
	}

	walk(t, nav, store)
	if st := nav.Reopen(store, 5); st.Completed || st.Question.ID != 5 {
		t.Errorf("Reopen(5) = %+v, want question 5", st)
	}

	walk(t, nav, store)
	// Question 16 is hidden while 15 is "nao", so the last visible one is used.
	if st := nav.Reopen(store, 16); st.Completed || st.Question.ID != 23 {
		t.Errorf("Reopen(16) = %+v, want question 23", st)
	}
}

func TestProgress(t *testing.T) {
	store := completeStore(t)
	nav := NewNavigator(store.Schema(), store)

	// 22 visible questions with 15 = nao.
	nav.Next(store)
	if got, want := nav.Progress(store), 1.0/22.0; got != want {
		t.Errorf("Progress = %f, want %f", got, want)
	}

	last := -1.0
	for !nav.Completed() {
		p := nav.Progress(store)
		if p < last || p < 0 || p > 1 {
			t.Fatalf("progress %f out of order or range", p)
		}
		last = p
		nav.Next(store)
	}
}

func TestEmptyVisibleSchemaStartsCompleted(t *testing.T) {
	schema := &models.Schema{Questions: []models.Question{
		{ID: 1, Type: models.QuestionSingleChoice, Options: []models.Option{{Value: "a"}},
			Conditional: &models.Conditional{DependsOn: 0, RequiredValue: "x"}},
	}}
	store := NewAnswerStore(schema)
	nav := NewNavigator(schema, store)

	if !nav.Completed() {
		t.Error("navigator with no visible questions should start Completed")
	}
	if nav.Progress(store) != 1 {
		t.Error("progress should be 1")
	}
}

func TestResume(t *testing.T) {
	store := completeStore(t)
	if !Resume(store.Schema(), store).Completed() {
		t.Error("complete answers should resume to Completed")
	}

	store.Clear(9)
	nav := Resume(store.Schema(), store)
	if nav.Completed() || nav.CurrentStep().ID != 9 {
		t.Errorf("expected to stop at 9, got %+v", nav.State(store))
	}

	empty := NewAnswerStore(DefaultSchema())
	if got := Resume(empty.Schema(), empty).CurrentStep().ID; got != 1 {
		t.Errorf("empty store resumes at %d, want 1", got)
	}
}
