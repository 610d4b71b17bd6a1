package slots

import (
	"cmp"
	"context"
	"slices"

	"github.com/rcliao/redstone-calc/internal/model"
)

// Export returns every slot with its current index.
func (s *Store) Export() []model.Slot {
	out := make([]model.Slot, len(s.values))
	for i, v := range s.values {
		out[i] = model.Slot{Index: i + 1, Value: v}
	}
	return out
}

// Import appends slots in index order after the existing ones and
// persists once. Returns the number imported.
func (s *Store) Import(ctx context.Context, in []model.Slot) int {
	if len(in) == 0 {
		return 0
	}
	ordered := make([]model.Slot, len(in))
	copy(ordered, in)
	slices.SortStableFunc(ordered, func(a, b model.Slot) int {
		return cmp.Compare(a.Index, b.Index)
	})
	for _, sl := range ordered {
		s.values = append(s.values, sl.Value)
	}
	s.persist(ctx)
	return len(ordered)
}
