// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite, postgres or memory (default: sqlite)
  - DatabaseURL: Connection string or SQLite path (optional)
  - CatalogPath: YAML question catalog (optional, built-in catalog otherwise)
  - FingerprintSalt: Secret for server-derived fingerprints and IP hashes (required)
  - HashIPs: Store a salted hash instead of the raw client address
  - StrictValidation: Reject submissions that fail catalog validation

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-catalog           Catalog file
	-fingerprint-salt  Fingerprint salt
	-hash-ips          true/false
	-strict            true/false
	-env               dotenv file (default .env)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	CATALOG_PATH      → -catalog
	FINGERPRINT_SALT  → -fingerprint-salt
	HASH_IPS          → -hash-ips
	STRICT_VALIDATION → -strict

Precedence is CLI flag, then process environment, then the dotenv file.
A missing dotenv file is ignored.

# Validation

ParseFlags returns an error if:

  - FINGERPRINT_SALT is missing
  - DATABASE_TYPE is not sqlite, postgres or memory
  - PORT or a boolean setting does not parse

An empty DATABASE_URL is allowed. The server then runs with the submission
store unavailable: analytics returns an empty report and submissions are
refused.
*/
package cliparse
