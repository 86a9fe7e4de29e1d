package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const stateTable = "timerdeck_state"

// sqlStore implements Port on top of a single key/value table.
// Dialects differ only in DDL and upsert syntax.
type sqlStore struct {
	db      *sql.DB
	log     *slog.Logger
	backend string
	upsert  string
}

func (store *sqlStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, span := store.startSpan(ctx, "storage.Load", key)
	defer span.End()

	var payload string
	err := store.db.QueryRowContext(ctx,
		"SELECT payload FROM "+stateTable+" WHERE state_key = ?", key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("%s: load %s: %w", store.backend, key, err)
	}
	return []byte(payload), nil
}

func (store *sqlStore) Save(ctx context.Context, key string, data []byte) error {
	ctx, span := store.startSpan(ctx, "storage.Save", key)
	defer span.End()

	if _, err := store.db.ExecContext(ctx, store.upsert, key, string(data), time.Now().UTC()); err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("%s: save %s: %w", store.backend, key, err)
	}
	store.log.Debug("state saved", slog.String("backend", store.backend), slog.String("key", key), slog.Int("bytes", len(data)))
	return nil
}

func (store *sqlStore) Close() error {
	return store.db.Close()
}

func (store *sqlStore) startSpan(ctx context.Context, name, key string) (context.Context, trace.Span) {
	return otel.Tracer("timerdeck/storage").Start(ctx, name, trace.WithAttributes(
		attribute.String("storage.backend", store.backend),
		attribute.String("storage.key", key),
	))
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func pingContext(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(pingCtx)
}
