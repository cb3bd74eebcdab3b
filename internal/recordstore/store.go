// Package recordstore persists hierarchy records in SQLite so a tree can be
// saved by one process and rebuilt with SetData by another.
package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record id is not in the store.
var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	parent_id TEXT,
	position INTEGER NOT NULL,
	record JSON NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_position ON records(position);
`

// Row is one stored record. ParentID is empty for records without a parent.
type Row struct {
	ID       string
	ParentID string
	Position int64
	Record   json.RawMessage
}

// Store is a SQLite-backed record table. Rows keep the position of their
// first insert, so streaming returns records in insertion order.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const upsert = `
INSERT INTO records (id, parent_id, position, record)
VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM records), ?)
ON CONFLICT(id) DO UPDATE SET parent_id = excluded.parent_id, record = excluded.record
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Put inserts or replaces one record. record is stored as JSON.
func (s *Store) Put(ctx context.Context, id, parentID string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return put(ctx, s.db, id, parentID, record)
}

// PutAll stores rows in one transaction. Nothing is written if any row fails.
func (s *Store) PutAll(ctx context.Context, rows []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, r := range rows {
		if err := put(ctx, tx, r.ID, r.ParentID, r.Record); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func put(ctx context.Context, ex execer, id, parentID string, record any) error {
	var raw []byte
	switch r := record.(type) {
	case json.RawMessage:
		raw = r
	default:
		var err error
		raw, err = json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encode record %s: %w", id, err)
		}
	}
	if !json.Valid(raw) {
		return fmt.Errorf("encode record %s: invalid json", id)
	}
	var parent sql.NullString
	if parentID != "" {
		parent = sql.NullString{String: parentID, Valid: true}
	}
	if _, err := ex.ExecContext(ctx, upsert, id, parent, string(raw)); err != nil {
		return fmt.Errorf("insert record %s: %w", id, err)
	}
	return nil
}

// Delete removes one record. Children are left in place; SetData drops them
// as orphans when the tree is rebuilt.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Get returns one stored record.
func (s *Store) Get(ctx context.Context, id string) (Row, error) {
	var (
		r      Row
		parent sql.NullString
		raw    string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, parent_id, position, record FROM records WHERE id = ?", id,
	).Scan(&r.ID, &parent, &r.Position, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Row{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Row{}, fmt.Errorf("query record %s: %w", id, err)
	}
	r.ParentID = parent.String
	r.Record = json.RawMessage(raw)
	return r, nil
}

// Len returns the number of stored records.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Stream calls fn for every record in insertion order, one row at a time.
// It stops at the first error fn returns.
func (s *Store) Stream(ctx context.Context, fn func(Row) error) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, parent_id, position, record FROM records ORDER BY position")
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			r      Row
			parent sql.NullString
			raw    string
		)
		if err := rows.Scan(&r.ID, &parent, &r.Position, &raw); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		r.ParentID = parent.String
		r.Record = json.RawMessage(raw)
		if err := fn(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadAll decodes every record into T, in insertion order.
func LoadAll[T any](ctx context.Context, s *Store) ([]T, error) {
	var out []T
	err := s.Stream(ctx, func(r Row) error {
		var v T
		if err := json.Unmarshal(r.Record, &v); err != nil {
			return fmt.Errorf("parse record %s: %w", r.ID, err)
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
