// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the MeAi survey API server.

MeAi is an anonymous wellbeing survey. Respondents fill in a catalog of
questions once (one submission per fingerprint); admins read aggregated
analytics and export raw responses.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	FINGERPRINT_SALT=... DATABASE_URL=./meai.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -fingerprint-salt dev

Variables from a .env file are loaded first but never override the process
environment.

# Configuration

Required settings:

  - FINGERPRINT_SALT (-fingerprint-salt): Secret for derived fingerprints and IP hashes

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string or SQLite file; empty leaves storage unavailable
  - CATALOG_PATH (-catalog): Question catalog YAML (built-in catalog if empty)
  - HASH_IPS (-hash-ips): Store a salted hash instead of the client IP
  - STRICT_VALIDATION (-strict): Reject submissions that fail catalog validation

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (form, submissions, analytics, export)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - intake: Submission pipeline (validation, dedup, persistence)
  - analytics: Aggregation engine and filters
  - export: CSV and JSON renderers
  - catalog, form: Question catalog and form rules
  - store, db: Submission storage (memory, SQLite, PostgreSQL)
  - fingerprint: Respondent fingerprints and IP hashing
  - cliparse: Configuration parsing

The surveyctl command (cmd/surveyctl) reads the same store from the shell.

See package documentation for each component.
*/
package main
