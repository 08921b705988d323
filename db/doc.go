// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db implements the submission store on a SQL database.

# Backends

Two drivers are registered:

  - postgres (github.com/lib/pq)
  - sqlite (modernc.org/sqlite, pure Go)

OpenStore picks the backend from configuration:

	st, closeStore, err := db.OpenStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

DATABASE_TYPE=memory selects store.Memory. An empty DATABASE_URL selects
store.Unavailable.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS. SQLStore
calls it on first use, so a database that was down at startup is picked up
once it comes back.

# Tables

  - submission: append-only list, ordered by seq, JSON payload
  - submission_fingerprint: dedup index, one row per fingerprint

# Deduplication

SetIfAbsent is a single conditional insert:

	INSERT ... ON CONFLICT (fingerprint) DO NOTHING

RowsAffected tells the caller whether it won. Two concurrent submissions
with one fingerprint cannot both be indexed.

# Errors

Connection-level failures wrap store.ErrUnavailable.
*/
package db
