package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"timerdeck/internal/config"
)

const sqliteFileName = "timerdeck.db"

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		store, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		store, err := NewSQLiteStore(ctx, filepath.Join(cfg.DataDir, sqliteFileName), log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendMySQL:
		store, err := NewMySQLStore(ctx, cfg.MySQLDSN, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
}
