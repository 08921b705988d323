// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/danielhkuo/meai-survey/models"
	"github.com/danielhkuo/meai-survey/store"
)

// SQLStore implements store.Store on PostgreSQL or SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect

	mu    sync.Mutex
	ready bool
}

var (
	_ store.Store    = (*SQLStore)(nil)
	_ store.Recorder = (*SQLStore)(nil)
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NewSQLStore wraps an open connection. The schema is created on first use
// if it does not exist yet.
func NewSQLStore(conn *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

func (s *SQLStore) DB() *sql.DB { return s.db }

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := CreateSchema(ctx, s.db, s.dialect); err != nil {
		return err
	}
	s.ready = true
	return nil
}

func (s *SQLStore) Append(ctx context.Context, sub models.Submission) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	return insertSubmission(ctx, s.db, sub, payload)
}

func (s *SQLStore) ListAll(ctx context.Context) ([]models.Submission, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payload FROM submission ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", classify(err))
	}
	defer rows.Close()

	subs := make([]models.Submission, 0)
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", classify(err))
		}

		var sub models.Submission
		if err := json.Unmarshal([]byte(payload), &sub); err != nil {
			slog.Warn("skipping unreadable submission", "submission_id", id, "error", err)
			continue
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", classify(err))
	}

	return subs, nil
}

func (s *SQLStore) Get(ctx context.Context, fingerprint string) (*models.Submission, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM submission_fingerprint WHERE fingerprint = $1
	`, fingerprint).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprint: %w", classify(err))
	}

	var sub models.Submission
	if err := json.Unmarshal([]byte(payload), &sub); err != nil {
		return nil, fmt.Errorf("failed to decode indexed submission: %w", err)
	}
	return &sub, nil
}

func (s *SQLStore) SetIfAbsent(ctx context.Context, fingerprint string, sub models.Submission) (bool, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return false, err
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return false, fmt.Errorf("failed to encode submission: %w", err)
	}

	return indexFingerprint(ctx, s.db, fingerprint, sub, payload)
}

// Record claims fingerprint and appends sub in one transaction. When the
// fingerprint is taken, or either insert fails, neither table changes.
func (s *SQLStore) Record(ctx context.Context, fingerprint string, sub models.Submission) (bool, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return false, err
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return false, fmt.Errorf("failed to encode submission: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", classify(err))
	}
	defer tx.Rollback()

	ok, err := indexFingerprint(ctx, tx, fingerprint, sub, payload)
	if err != nil || !ok {
		return false, err
	}
	if err := insertSubmission(ctx, tx, sub, payload); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit submission: %w", classify(err))
	}
	return true, nil
}

func insertSubmission(ctx context.Context, q execer, sub models.Submission, payload []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO submission (id, recorded_at, payload)
		VALUES ($1, $2, $3)
	`, sub.ID, sub.Timestamp.UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", classify(err))
	}
	return nil
}

// indexFingerprint reports whether the row was written. Primary key on
// fingerprint: a concurrent second insert is a no-op.
func indexFingerprint(ctx context.Context, q execer, fingerprint string, sub models.Submission, payload []byte) (bool, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO submission_fingerprint (fingerprint, submission_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (fingerprint) DO NOTHING
	`, fingerprint, sub.ID, string(payload), sub.Timestamp.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to index fingerprint: %w", classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n == 1, nil
}

// Count returns the number of stored submissions.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submission`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", classify(err))
	}
	return n, nil
}

// classify marks connection-level failures as store.ErrUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return err
}
