// Package store provides the backing stores for memory slots and the
// calculation tape: a plain text file and a SQLite database.
package store

import (
	"context"

	"github.com/rcliao/redstone-calc/internal/model"
)

// Backend persists the ordered slot list. Save always rewrites the whole list.
type Backend interface {
	// Load returns the persisted values in order. Malformed entries are
	// skipped. A missing store is an empty list, not an error.
	Load(ctx context.Context) ([]model.Value, error)

	// Save replaces the persisted list with values.
	Save(ctx context.Context, values []model.Value) error

	// Close releases the backend.
	Close() error
}

// TapeParams holds parameters for listing tape entries.
type TapeParams struct {
	Outcome string
	Query   string
	Limit   int
}

// Recorder stores evaluation attempts.
type Recorder interface {
	Record(ctx context.Context, e model.TapeEntry) (*model.TapeEntry, error)
}
