// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/meai-survey/cliparse"
	"github.com/danielhkuo/meai-survey/store"
)

const connectTimeout = 5 * time.Second

// Open connects to a postgres or sqlite database and prepares the schema.
// A failed ping is logged and the store is still returned; calls made while
// the database is down fail with store.ErrUnavailable.
func Open(dbType, url string) (*SQLStore, error) {
	dialect := Dialect(dbType)
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(string(dialect), url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if dialect == DialectSQLite {
		// One writer at a time; avoids SQLITE_BUSY under concurrent submits
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	s := NewSQLStore(conn, dialect)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		slog.Warn("database ping failed, continuing without storage", "type", dbType, "error", err)
		return s, nil
	}

	if err := s.ensureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	slog.Info("Database schema ready", "type", dbType)

	return s, nil
}

// OpenStore picks the store backend from configuration. An empty database
// URL leaves the store unavailable instead of failing startup.
func OpenStore(cfg cliparse.Config) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.DatabaseType {
	case cliparse.DatabaseMemory:
		slog.Info("using in-memory submission store")
		return store.NewMemory(), noop, nil
	case string(DialectPostgres), string(DialectSQLite):
		if cfg.DatabaseURL == "" {
			slog.Warn("no database URL configured, submission store unavailable")
			return store.Unavailable{}, noop, nil
		}
		s, err := Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	}

	return nil, noop, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
}
