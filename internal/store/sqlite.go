package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// schemaSQL is shared by the SQLite and Postgres backends
//
//go:embed schema.sql
var schemaSQL string

// SQLiteBackend stores snapshot documents in a single SQLite table
type SQLiteBackend struct {
	conn    *sql.DB
	writeMu sync.Mutex // Serializes writes; SQLite has a single writer
	logger  *zap.SugaredLogger
}

// NewSQLiteBackend opens a SQLite database with WAL mode enabled and
// ensures the schema
func NewSQLiteBackend(ctx context.Context, dbPath string, logger *zap.SugaredLogger) (*SQLiteBackend, error) {
	dsn := dbPath + "?_journal=WAL&_fk=1&_busy_timeout=5000"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection plus writeMu avoids "database is locked" between
	// checkpoint writes and readers in the same process
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			logger.Warnw("SQLite: failed to set pragma", "pragma", pragma, "error", err)
		}
	}

	b := &SQLiteBackend{conn: conn, logger: logger}
	if err := b.ensureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Infow("SQLite: connected", "path", dbPath)
	return b, nil
}

func (b *SQLiteBackend) ensureSchema(ctx context.Context) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if _, err := b.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var body string
	err := b.conn.QueryRowContext(ctx, "SELECT body FROM snapshots WHERE name = ?", name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return []byte(body), nil
}

func (b *SQLiteBackend) Write(ctx context.Context, name string, data []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	_, err := b.conn.ExecContext(ctx, `
		INSERT INTO snapshots (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`,
		name, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (b *SQLiteBackend) UpdatedAt(ctx context.Context, name string) (time.Time, error) {
	var updatedAt string
	err := b.conn.QueryRowContext(ctx, "SELECT updated_at FROM snapshots WHERE name = ?", name).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return time.Parse(time.RFC3339, updatedAt)
}

func (b *SQLiteBackend) Close() error {
	return b.conn.Close()
}
