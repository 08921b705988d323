// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/meai-survey/cliparse"
	"github.com/danielhkuo/meai-survey/db"
	"github.com/danielhkuo/meai-survey/models"
	"github.com/danielhkuo/meai-survey/store"
)

// TestSalt is the fingerprint salt used by GetTestConfig
const TestSalt = "test-fingerprint-salt"

// SetupTestStore opens a fresh SQLite-backed store in a temp directory.
// The store is closed when the test ends.
func SetupTestStore(t *testing.T) *db.SQLStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "survey_test.db")
	s, err := db.Open(cliparse.DatabaseSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    cliparse.DatabaseSQLite,
		FingerprintSalt: TestSalt,
	}
}

// SeedSubmission writes sub to the store the way the intake pipeline does:
// fingerprint index first, then the listing.
func SeedSubmission(t *testing.T, st store.Store, sub models.Submission) {
	t.Helper()

	ctx := context.Background()
	if sub.Timestamp.IsZero() {
		sub.Timestamp = time.Now().UTC().Truncate(time.Millisecond)
	}
	if sub.Fingerprint == "" {
		sub.Fingerprint = "seed-" + sub.ID
	}

	ok, err := st.SetIfAbsent(ctx, sub.Fingerprint, sub)
	if err != nil {
		t.Fatalf("Failed to index seeded submission: %v", err)
	}
	if !ok {
		t.Fatalf("Seeded fingerprint %q already present", sub.Fingerprint)
	}
	if err := st.Append(ctx, sub); err != nil {
		t.Fatalf("Failed to append seeded submission: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
