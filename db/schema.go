// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect selects the DDL and driver for a backend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// CreateSchema creates all tables needed for the submission store.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	var stmts []string
	switch dialect {
	case DialectPostgres:
		stmts = postgresSchema
	case DialectSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unknown dialect %q", dialect)
	}

	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", classify(err))
		}
	}

	return nil
}

// Submissions keep append order through seq. The fingerprint table is the
// dedup index; its primary key makes the conditional insert atomic.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS submission (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    recorded_at TIMESTAMP NOT NULL DEFAULT NOW(),
    payload TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS submission_fingerprint (
    fingerprint TEXT PRIMARY KEY,
    submission_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_submission_recorded_at ON submission(recorded_at)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS submission (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    payload TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS submission_fingerprint (
    fingerprint TEXT PRIMARY KEY,
    submission_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_submission_recorded_at ON submission(recorded_at)`,
}
