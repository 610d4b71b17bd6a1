package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/redstone-calc/internal/model"
)

// DefaultDBFile is the file name of the SQLite database.
const DefaultDBFile = "redstone.db"

// Fixed width so created_at sorts as text.
const tapeTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Backend and Recorder using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy io.Reader
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		pos   INTEGER PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tape (
		id         TEXT PRIMARY KEY,
		expr       TEXT NOT NULL,
		outcome    TEXT NOT NULL,
		perturb    INTEGER NOT NULL DEFAULT 0,
		result     TEXT,
		err_text   TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tape_created ON tape(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_tape_outcome ON tape(outcome);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context) ([]model.Value, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT value FROM slots ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []model.Value
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		v, err := model.ParseValue(text)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, values []model.Value) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("clear slots: %w", err)
	}
	for i, v := range values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO slots (pos, value) VALUES (?, ?)`, i+1, v.String())
		if err != nil {
			return fmt.Errorf("insert slot: %w", err)
		}
	}
	return tx.Commit()
}

// Record appends an evaluation attempt to the tape.
func (s *SQLiteStore) Record(ctx context.Context, e model.TapeEntry) (*model.TapeEntry, error) {
	if !model.ValidOutcomes[e.Outcome] {
		return nil, fmt.Errorf("invalid outcome %q", e.Outcome)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.ID = s.newID(e.CreatedAt)

	var result, errText *string
	if e.Result != "" {
		result = &e.Result
	}
	if e.Error != "" {
		errText = &e.Error
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tape (id, expr, outcome, perturb, result, err_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Expr, e.Outcome, e.Offset, result, errText,
		e.CreatedAt.UTC().Format(tapeTimeFormat))
	if err != nil {
		return nil, fmt.Errorf("insert tape entry: %w", err)
	}
	return &e, nil
}

// ListTape returns tape entries, newest first.
func (s *SQLiteStore) ListTape(ctx context.Context, p TapeParams) ([]model.TapeEntry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"1 = 1"}
	var args []interface{}
	if p.Outcome != "" {
		where = append(where, "outcome = ?")
		args = append(args, p.Outcome)
	}
	if p.Query != "" {
		where = append(where, "(expr LIKE ? OR result LIKE ?)")
		like := "%" + p.Query + "%"
		args = append(args, like, like)
	}

	query := fmt.Sprintf(`
		SELECT id, expr, outcome, perturb, result, err_text, created_at
		FROM tape WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TapeEntry
	for rows.Next() {
		e, err := scanTape(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTape(row scanner) (model.TapeEntry, error) {
	var e model.TapeEntry
	var result, errText sql.NullString
	var createdAt string

	err := row.Scan(&e.ID, &e.Expr, &e.Outcome, &e.Offset, &result, &errText, &createdAt)
	if err != nil {
		return e, err
	}

	e.CreatedAt, _ = time.Parse(tapeTimeFormat, createdAt)
	if result.Valid {
		e.Result = result.String
	}
	if errText.Valid {
		e.Error = errText.String
	}
	return e, nil
}
