package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/redstone-calc/internal/model"
)

func TestTextFileMissingIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved_data")
	tf := NewTextFile(path)

	got, err := tf.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("load must not create the file")
	}
}

func TestTextFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "saved_data")
	tf := NewTextFile(path)

	in := []model.Value{model.IntValue(12), model.FloatValue(3.0), model.FloatValue(0.25)}
	if err := tf.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	b, _ := os.ReadFile(path)
	if string(b) != "12\n3.0\n0.25\n" {
		t.Errorf("unexpected file contents %q", b)
	}

	got, err := NewTextFile(path).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("expected %d values, got %d", len(in), len(got))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("line %d: expected %v, got %v", i+1, in[i], got[i])
		}
	}
}

func TestTextFileSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved_data")
	os.WriteFile(path, []byte("5\nbogus\n\n1.5\n7+3\n-2\n"), 0o644)

	got, err := NewTextFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 values, got %v", got)
	}
	if got[0].Int != 5 || got[1].Float != 1.5 || got[2].Int != -2 {
		t.Errorf("unexpected values %v", got)
	}
}

func TestTextFileEmptySave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saved_data")
	tf := NewTextFile(path)

	tf.Save(ctx, []model.Value{model.IntValue(1)})
	if err := tf.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(b) != 0 {
		t.Errorf("expected empty file, got %q", b)
	}
}
