// Package sqlite opens the pure-Go SQLite database that backs the file-based
// Draft Store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"rxintake/internal/platform/config"
)

// Open opens the database file, enabling WAL and a busy timeout so concurrent
// requests for different sessions do not fail with SQLITE_BUSY.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}
	return db, nil
}
