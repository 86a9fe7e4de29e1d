package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS timerdeck_state (
	state_key  TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at DATETIME NOT NULL
)`

const sqliteUpsert = `INSERT INTO timerdeck_state (state_key, payload, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(state_key) DO UPDATE SET
	payload = excluded.payload,
	updated_at = excluded.updated_at`

// SQLiteStore persists documents in an embedded SQLite database.
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens (or creates) the database file at path.
func NewSQLiteStore(ctx context.Context, path string, log *slog.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if log == nil {
		log = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One writer; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if err := pingContext(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	log.Info("sqlite store ready", slog.String("path", path))

	return &SQLiteStore{sqlStore{db: db, log: log, backend: "sqlite", upsert: sqliteUpsert}}, nil
}
