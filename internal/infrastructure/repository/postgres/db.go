package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083001)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	organization TEXT
);

CREATE TABLE IF NOT EXISTS uploads (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	format TEXT NOT NULL,
	status TEXT NOT NULL,
	created_by TEXT NOT NULL REFERENCES users(id),
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS upload_entries (
	upload_id BIGINT NOT NULL REFERENCES uploads(id) ON DELETE CASCADE,
	id INT NOT NULL,
	text TEXT NOT NULL,
	sentiment TEXT,
	PRIMARY KEY (upload_id, id)
);

CREATE TABLE IF NOT EXISTS upload_access (
	upload_id BIGINT NOT NULL REFERENCES uploads(id) ON DELETE CASCADE,
	recipient_id TEXT NOT NULL,
	recipient_type TEXT NOT NULL,
	PRIMARY KEY (upload_id, recipient_id, recipient_type)
);

CREATE INDEX IF NOT EXISTS idx_uploads_created_by ON uploads(created_by);
CREATE INDEX IF NOT EXISTS idx_upload_access_recipient ON upload_access(recipient_id, recipient_type);
CREATE INDEX IF NOT EXISTS idx_users_organization ON users(organization);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
