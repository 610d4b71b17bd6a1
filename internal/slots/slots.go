// Package slots implements the calculator memory: an ordered list of saved
// values addressed by 1-based position.
package slots

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rcliao/redstone-calc/internal/model"
	"github.com/rcliao/redstone-calc/internal/store"
)

var (
	// ErrNoSlot is returned for an index outside [1, Len()].
	ErrNoSlot = errors.New("no such slot")

	// ErrNotANumber is returned when saving text that is not a number.
	ErrNotANumber = errors.New("not a number")
)

// Store owns the slot list and writes every change through to its backend.
// Backend failures are logged; the in-memory list stays authoritative.
type Store struct {
	backend store.Backend
	logger  *slog.Logger
	values  []model.Value
}

// New returns an empty store. Call Load to read the backend.
func New(backend store.Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Load replaces the list with the backend contents.
func (s *Store) Load(ctx context.Context) {
	values, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Warn("load slots", "error", err)
	}
	s.values = values
}

// Save appends the value parsed from text and returns its index.
func (s *Store) Save(ctx context.Context, text string) (int, error) {
	v, err := model.ParseValue(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotANumber, err)
	}
	s.values = append(s.values, v)
	s.persist(ctx)
	return len(s.values), nil
}

// Recall returns the value at index.
func (s *Store) Recall(index int) (model.Value, error) {
	if !s.inRange(index) {
		return model.Value{}, fmt.Errorf("%w: %d", ErrNoSlot, index)
	}
	return s.values[index-1], nil
}

// Delete removes the value at index; later slots move down by one.
func (s *Store) Delete(ctx context.Context, index int) error {
	if !s.inRange(index) {
		return fmt.Errorf("%w: %d", ErrNoSlot, index)
	}
	s.values = append(s.values[:index-1:index-1], s.values[index:]...)
	s.persist(ctx)
	return nil
}

// ClearAll empties the list.
func (s *Store) ClearAll(ctx context.Context) {
	s.values = nil
	s.persist(ctx)
}

// Len returns the number of saved values.
func (s *Store) Len() int { return len(s.values) }

// Values returns a copy of the list.
func (s *Store) Values() []model.Value {
	out := make([]model.Value, len(s.values))
	copy(out, s.values)
	return out
}

// Label is the memory marker shown next to the display: "F<n>", or
// empty when nothing is saved.
func (s *Store) Label() string {
	if len(s.values) == 0 {
		return ""
	}
	return "F" + strconv.Itoa(len(s.values))
}

func (s *Store) inRange(index int) bool {
	return index >= 1 && index <= len(s.values)
}

func (s *Store) persist(ctx context.Context) {
	if err := s.backend.Save(ctx, s.values); err != nil {
		s.logger.Warn("save slots", "error", err, "count", len(s.values))
	}
}
