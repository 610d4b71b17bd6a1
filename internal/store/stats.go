package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string          `json:"db_path"`
	DBSizeBytes int64           `json:"db_size_bytes"`
	Slots       int             `json:"slots"`
	TapeEntries int             `json:"tape_entries"`
	Outcomes    []OutcomeCounts `json:"outcomes"`
}

// OutcomeCounts holds per-outcome tape counts.
type OutcomeCounts struct {
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM slots`).Scan(&st.Slots)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tape`).Scan(&st.TapeEntries)

	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome, COUNT(*) AS cnt
		FROM tape GROUP BY outcome ORDER BY cnt DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var oc OutcomeCounts
		rows.Scan(&oc.Outcome, &oc.Count)
		st.Outcomes = append(st.Outcomes, oc)
	}

	return st, nil
}
