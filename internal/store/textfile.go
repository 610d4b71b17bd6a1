package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rcliao/redstone-calc/internal/model"
)

// DefaultSlotsFile is the file name of the text slot store.
const DefaultSlotsFile = "saved_data"

// TextFile stores one value per line, in order.
type TextFile struct {
	path string
}

// NewTextFile returns a text backend at path. The file is not created
// until the first Save.
func NewTextFile(path string) *TextFile {
	return &TextFile{path: path}
}

// Path returns the file path.
func (t *TextFile) Path() string { return t.path }

func (t *TextFile) Load(ctx context.Context) ([]model.Value, error) {
	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open slots file: %w", err)
	}
	defer f.Close()

	var values []model.Value
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := model.ParseValue(line)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return values, fmt.Errorf("read slots file: %w", err)
	}
	return values, nil
}

func (t *TextFile) Save(ctx context.Context, values []model.Value) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create slots dir: %w", err)
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(t.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write slots file: %w", err)
	}
	return nil
}

func (t *TextFile) Close() error { return nil }
