// ABOUTME: Tests for AnswerStore mutations.
// ABOUTME: Covers kind enforcement, set toggling, and repeatable list rows.
package anamnesis

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/anamnesis/internal/models"
)

func TestSetAnswerEnforcesKind(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())

	if err := store.SetAnswer(1, models.Scalar("emagrecer")); err != nil {
		t.Fatalf("SetAnswer failed: %v", err)
	}
	if err := store.SetAnswer(1, models.Set("emagrecer")); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
	if err := store.SetAnswer(99, models.Scalar("x")); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("expected ErrUnknownQuestion, got %v", err)
	}

	a, ok := store.Answer(1)
	if !ok || a.Text != "emagrecer" {
		t.Errorf("Answer(1) = %v, %v", a, ok)
	}
}

func TestSetAnswerStoresCopy(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())
	rec := models.RecordOf(models.Record{"idade": "25"})
	if err := store.SetAnswer(5, rec); err != nil {
		t.Fatal(err)
	}
	rec.Fields["idade"] = "99"

	a, _ := store.Answer(5)
	if a.Fields["idade"] != "25" {
		t.Error("store should not alias caller's record")
	}
}

func TestSetField(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())

	for field, v := range map[string]string{"sexo": "Feminino", "idade": "30"} {
		if err := store.SetField(5, field, v); err != nil {
			t.Fatalf("SetField(%s) failed: %v", field, err)
		}
	}
	a, _ := store.Answer(5)
	if a.Kind != models.AnswerRecord || a.Fields["sexo"] != "Feminino" || a.Fields["idade"] != "30" {
		t.Errorf("unexpected record %+v", a)
	}

	if err := store.SetField(1, "x", "y"); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch for non-form question, got %v", err)
	}
}

func TestToggleSetMember(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())

	steps := []struct {
		option string
		want   []string
	}{
		{"frango", []string{"frango"}},
		{"ovos", []string{"frango", "ovos"}},
		{"frango", []string{"ovos"}},
		{"ovos", nil},
	}
	for _, s := range steps {
		if err := store.ToggleSetMember(19, s.option); err != nil {
			t.Fatalf("ToggleSetMember(%s) failed: %v", s.option, err)
		}
		a, _ := store.Answer(19)
		if diff := cmp.Diff(s.want, a.Values); diff != "" {
			t.Errorf("after toggling %s (-want +got):\n%s", s.option, diff)
		}
	}

	if err := store.ToggleSetMember(1, "emagrecer"); !errors.Is(err, ErrNotMultipleChoice) {
		t.Errorf("expected ErrNotMultipleChoice, got %v", err)
	}
}

func TestToggleAfterDuplicateInput(t *testing.T) {
	tagged := map[string]any{"kind": "set", "values": []any{"saude", "saude", "autoestima"}}
	store, err := LoadAnswers(DefaultSchema(), map[int]any{2: tagged})
	if err != nil {
		t.Fatalf("LoadAnswers failed: %v", err)
	}
	a, _ := store.Answer(2)
	if diff := cmp.Diff([]string{"saude", "autoestima"}, a.Values); diff != "" {
		t.Fatalf("decoded values (-want +got):\n%s", diff)
	}

	if err := store.ToggleSetMember(2, "autoestima"); err != nil {
		t.Fatal(err)
	}
	a, _ = store.Answer(2)
	if diff := cmp.Diff([]string{"saude"}, a.Values); diff != "" {
		t.Errorf("after toggle (-want +got):\n%s", diff)
	}

	dup := models.AnswerValue{Kind: models.AnswerSet, Values: []string{"ovos", "ovos"}}
	if err := store.SetAnswer(19, dup); err != nil {
		t.Fatal(err)
	}
	a, _ = store.Answer(19)
	if diff := cmp.Diff([]string{"ovos"}, a.Values); diff != "" {
		t.Errorf("SetAnswer values (-want +got):\n%s", diff)
	}
}

func TestUpsertListItem(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())

	if err := store.UpsertListItem(17, 0, "nome", "Testosterona"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.UpsertListItem(17, 0, "dosagem", "200mg"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := store.UpsertListItem(17, 5, "nome", "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	a, _ := store.Answer(17)
	if len(a.Items) != 1 {
		t.Fatalf("Items = %d, want 1", len(a.Items))
	}
	if a.Items[0].ID == "" {
		t.Error("new row should get an ID")
	}
	want := models.Record{"nome": "Testosterona", "dosagem": "200mg"}
	if diff := cmp.Diff(want, a.Items[0].Fields); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestPharmaScalarKeepsRows(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())
	if err := store.UpsertListItem(17, 0, "nome", "Oxandrolona"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetAnswer(17, models.Scalar("sim")); err != nil {
		t.Fatalf("SetAnswer failed: %v", err)
	}

	a, _ := store.Answer(17)
	if a.Kind != models.AnswerList || a.Text != "sim" || len(a.Items) != 1 {
		t.Errorf("unexpected answer %+v", a)
	}
}

func TestListRoundTrip(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())
	for i, name := range []string{"A", "B"} {
		if err := store.UpsertListItem(17, i, "nome", name); err != nil {
			t.Fatal(err)
		}
	}
	before, _ := store.Answer(17)

	if err := store.UpsertListItem(17, 2, "nome", "C"); err != nil {
		t.Fatal(err)
	}
	if err := store.RemoveListItem(17, 2); err != nil {
		t.Fatalf("RemoveListItem failed: %v", err)
	}

	after, _ := store.Answer(17)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("list not restored (-want +got):\n%s", diff)
	}
}

func TestRemoveListItem(t *testing.T) {
	store := NewAnswerStore(DefaultSchema())
	for i, name := range []string{"A", "B", "C"} {
		if err := store.UpsertListItem(17, i, "nome", name); err != nil {
			t.Fatal(err)
		}
	}
	a, _ := store.Answer(17)
	keepID := a.Items[2].ID

	if err := store.RemoveListItem(17, 1); err != nil {
		t.Fatalf("RemoveListItem failed: %v", err)
	}
	a, _ = store.Answer(17)
	if len(a.Items) != 2 || a.Items[1].Fields["nome"] != "C" {
		t.Fatalf("unexpected rows after remove: %+v", a.Items)
	}
	if a.Items[1].ID != keepID {
		t.Error("row IDs should survive compaction")
	}

	if err := store.RemoveListItem(17, 7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := store.RemoveListItem(17, 0); err != nil {
		t.Fatal(err)
	}
	if err := store.RemoveListItem(17, 0); !errors.Is(err, ErrLastListItem) {
		t.Errorf("expected ErrLastListItem, got %v", err)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	store := completeStore(t)
	snap := store.Snapshot()
	snap[5].Fields["peso"] = "120"

	a, _ := store.Answer(5)
	if a.Fields["peso"] != "70" {
		t.Error("mutating snapshot changed the store")
	}
}
