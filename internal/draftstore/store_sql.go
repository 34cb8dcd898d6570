package draftstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/sentinel"
)

// dialect holds the statements that differ between SQL backends.
type dialect struct {
	name    string
	schema  string
	selectQ string
	upsertQ string
	deleteQ string
}

var sqliteDialect = dialect{
	name: "sqlite",
	schema: `CREATE TABLE IF NOT EXISTS draft_entries (
		session_id TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (session_id, key)
	)`,
	selectQ: `SELECT value FROM draft_entries WHERE session_id = ? AND key = ?`,
	upsertQ: `INSERT INTO draft_entries (session_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
	deleteQ: `DELETE FROM draft_entries WHERE session_id = ? AND key = ?`,
}

var postgresDialect = dialect{
	name: "postgres",
	schema: `CREATE TABLE IF NOT EXISTS draft_entries (
		session_id UUID NOT NULL,
		key        TEXT NOT NULL,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (session_id, key)
	)`,
	selectQ: `SELECT value FROM draft_entries WHERE session_id = $1 AND key = $2`,
	upsertQ: `INSERT INTO draft_entries (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`,
	deleteQ: `DELETE FROM draft_entries WHERE session_id = $1 AND key = $2`,
}

// SQLStore persists entries in a single draft_entries table.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	clock   func() time.Time
}

// SQLOption configures a SQLStore.
type SQLOption func(*SQLStore)

// WithClock sets the clock used for updated_at.
func WithClock(clock func() time.Time) SQLOption {
	return func(s *SQLStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewSQLite returns a Store on a modernc.org/sqlite database. The file
// survives process restarts.
func NewSQLite(db *sql.DB, opts ...SQLOption) *SQLStore {
	return newSQLStore(db, sqliteDialect, opts)
}

// NewPostgres returns a Store on a lib/pq database.
func NewPostgres(db *sql.DB, opts ...SQLOption) *SQLStore {
	return newSQLStore(db, postgresDialect, opts)
}

func newSQLStore(db *sql.DB, d dialect, opts []SQLOption) *SQLStore {
	s := &SQLStore{db: db, dialect: d, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Migrate creates the table if it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("migrate %s draft store: %w", s.dialect.name, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, session id.SessionID, key Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.selectQ, session.String(), string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft entry: %w", err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, session id.SessionID, key Key, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, s.dialect.upsertQ, session.String(), string(key), value, s.clock().UTC())
	if err != nil {
		return fmt.Errorf("set draft entry: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, session id.SessionID, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.deleteQ, session.String(), string(key)); err != nil {
		return fmt.Errorf("delete draft entry: %w", err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
