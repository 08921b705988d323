// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the submission store capability and its in-process
implementations.

# Operations

	Append(ctx, sub)                   // add to the append-only list
	ListAll(ctx)                       // every submission, append order
	Get(ctx, fingerprint)              // indexed submission or nil
	SetIfAbsent(ctx, fingerprint, sub) // atomic dedup write

A backend that can also implement Recorder claims the fingerprint and appends
in one write, so a failure cannot leave a claimed fingerprint without its
submission:

	Record(ctx, fingerprint, sub)      // dedup and append together

# Implementations

  - Memory: mutex-guarded, for development and tests
  - Unavailable: every call fails with ErrUnavailable
  - db.SQLStore (package db): PostgreSQL or SQLite

A store may be entirely unavailable. Check with IsUnavailable:

	if store.IsUnavailable(err) {
		// degrade
	}
*/
package store
