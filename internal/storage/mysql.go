package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const mysqlSchema = `CREATE TABLE IF NOT EXISTS timerdeck_state (
	state_key  VARCHAR(64) NOT NULL PRIMARY KEY,
	payload    LONGTEXT NOT NULL,
	updated_at DATETIME(6) NOT NULL
) ENGINE=InnoDB`

const mysqlUpsert = `INSERT INTO timerdeck_state (state_key, payload, updated_at)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
	payload = VALUES(payload),
	updated_at = VALUES(updated_at)`

// MySQLStore persists documents in a MySQL table, for setups that keep
// timer state on a shared database host.
type MySQLStore struct {
	sqlStore
}

// NewMySQLStore opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true
func NewMySQLStore(ctx context.Context, dsn string, log *slog.Logger) (*MySQLStore, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	if log == nil {
		log = slog.Default()
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := pingContext(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: create schema: %w", err)
	}
	log.Info("mysql store ready")

	return &MySQLStore{sqlStore{db: db, log: log, backend: "mysql", upsert: mysqlUpsert}}, nil
}
