package slots

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rcliao/redstone-calc/internal/model"
	"github.com/rcliao/redstone-calc/internal/store"
)

func newTestSlots(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saved_data")
	s := New(store.NewTextFile(path), nil)
	s.Load(context.Background())
	return s, path
}

// failingBackend loads nothing and refuses every write.
type failingBackend struct{ saves int }

func (f *failingBackend) Load(ctx context.Context) ([]model.Value, error) { return nil, nil }
func (f *failingBackend) Save(ctx context.Context, v []model.Value) error {
	f.saves++
	return errors.New("disk full")
}
func (f *failingBackend) Close() error { return nil }

func TestSaveAndLabel(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSlots(t)

	if s.Label() != "" {
		t.Errorf("expected empty label, got %q", s.Label())
	}
	idx, err := s.Save(ctx, "12")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if s.Label() != "F1" {
		t.Errorf("expected label F1, got %q", s.Label())
	}
}

func TestSaveRejectsNonNumber(t *testing.T) {
	s, _ := newTestSlots(t)
	_, err := s.Save(context.Background(), "7+3")
	if !errors.Is(err, ErrNotANumber) {
		t.Errorf("expected ErrNotANumber, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected no slots, got %d", s.Len())
	}
}

func TestRecall(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSlots(t)
	s.Save(ctx, "5")
	s.Save(ctx, "2.5")

	v, err := s.Recall(2)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if v.String() != "2.5" {
		t.Errorf("expected 2.5, got %s", v)
	}
}

func TestOutOfRangeNeverMutates(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSlots(t)
	s.Save(ctx, "1")
	s.Save(ctx, "2")

	for _, idx := range []int{0, -1, 3, 9} {
		if _, err := s.Recall(idx); !errors.Is(err, ErrNoSlot) {
			t.Errorf("recall %d: expected ErrNoSlot, got %v", idx, err)
		}
		if err := s.Delete(ctx, idx); !errors.Is(err, ErrNoSlot) {
			t.Errorf("delete %d: expected ErrNoSlot, got %v", idx, err)
		}
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 slots, got %d", s.Len())
	}
}

func TestDeleteCompacts(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSlots(t)
	s.Save(ctx, "10")
	s.Save(ctx, "20")
	s.Save(ctx, "30")

	if err := s.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	v, _ := s.Recall(2)
	if v.String() != "30" {
		t.Errorf("expected slot 2 to hold 30, got %s", v)
	}
	if s.Label() != "F2" {
		t.Errorf("expected F2, got %q", s.Label())
	}

	reloaded := New(store.NewTextFile(path), nil)
	reloaded.Load(ctx)
	if reloaded.Len() != 2 {
		t.Errorf("expected 2 persisted slots, got %d", reloaded.Len())
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSlots(t)
	s.Save(ctx, "1")
	s.ClearAll(ctx)

	if s.Len() != 0 || s.Label() != "" {
		t.Errorf("expected empty store, got %d", s.Len())
	}
	reloaded := New(store.NewTextFile(path), nil)
	reloaded.Load(ctx)
	if reloaded.Len() != 0 {
		t.Errorf("expected empty file, got %d", reloaded.Len())
	}
}

func TestRoundTripKeepsKinds(t *testing.T) {
	ctx := context.Background()
	s, path := newTestSlots(t)
	s.Save(ctx, "12")
	s.Save(ctx, "12.0")
	s.Save(ctx, "-0.5")

	reloaded := New(store.NewTextFile(path), nil)
	reloaded.Load(ctx)

	before, after := s.Values(), reloaded.Values()
	if len(before) != len(after) {
		t.Fatalf("expected %d values, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("slot %d: expected %+v, got %+v", i+1, before[i], after[i])
		}
	}
	if after[0].Kind != model.KindInt || after[1].Kind != model.KindFloat {
		t.Error("kinds not preserved")
	}
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	fb := &failingBackend{}
	s := New(fb, nil)

	if _, err := s.Save(ctx, "4"); err != nil {
		t.Fatalf("save should not surface backend errors: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("in-memory list should keep the value, got %d", s.Len())
	}
	if fb.saves != 1 {
		t.Errorf("expected one write attempt, got %d", fb.saves)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSlots(t)
	s.Save(ctx, "1")
	s.Save(ctx, "2.5")

	exported := s.Export()
	if len(exported) != 2 || exported[1].Index != 2 {
		t.Fatalf("unexpected export %v", exported)
	}

	other, _ := newTestSlots(t)
	other.Save(ctx, "9")
	n := other.Import(ctx, []model.Slot{exported[1], exported[0]})
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}
	got := other.Values()
	if len(got) != 3 || got[1].String() != "1" || got[2].String() != "2.5" {
		t.Errorf("unexpected values after import %v", got)
	}
}
