// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/models"
	"github.com/danielhkuo/meai-survey/testutil"
)

// TestConcurrentSubmissions verifies that simultaneous submissions from
// different respondents are all stored without loss or duplication
func TestConcurrentSubmissions(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSubmissionHandler(st, catalog.Default(), testutil.GetTestConfig())

	numRespondents := 10

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRespondents; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			submitReq := models.SubmitRequest{
				Answers: models.Answers{
					models.QuestionAgeGroup: models.TextAnswer("18-24"),
					"happiness_level":       models.TextAnswer(fmt.Sprint(idx%10 + 1)),
				},
				CompletionTime: 30 + idx,
				Fingerprint:    fmt.Sprintf("respondent-%d", idx),
			}
			body, _ := json.Marshal(submitReq)
			req := httptest.NewRequest("POST", "/api/submit", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numRespondents {
		t.Errorf("Expected %d successful submissions, got %d", numRespondents, successCount.Load())
	}

	count, err := st.Count(t.Context())
	if err != nil {
		t.Fatalf("Failed to count submissions: %v", err)
	}
	if count != numRespondents {
		t.Errorf("Expected %d submissions in store, got %d", numRespondents, count)
	}
}

// TestConcurrentDuplicateSubmissions verifies that when several goroutines
// submit with the same fingerprint, exactly one is accepted
func TestConcurrentDuplicateSubmissions(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSubmissionHandler(st, catalog.Default(), testutil.GetTestConfig())

	numAttempts := 8

	var accepted, duplicates atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := []byte(`{"answers":{"age_group":"25-34"},"completionTime":12,"fingerprint":"same-person"}`)
			req := httptest.NewRequest("POST", "/api/submit", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			switch w.Code {
			case http.StatusCreated:
				accepted.Add(1)
			case http.StatusTooManyRequests:
				duplicates.Add(1)
			}
		}()
	}

	wg.Wait()

	if accepted.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted submission, got %d", accepted.Load())
	}
	if int(duplicates.Load()) != numAttempts-1 {
		t.Errorf("Expected %d duplicates, got %d", numAttempts-1, duplicates.Load())
	}

	count, err := st.Count(t.Context())
	if err != nil {
		t.Fatalf("Failed to count submissions: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 submission in store, got %d", count)
	}
}

// TestConcurrentReadsDuringWrites verifies that analytics can be served
// while submissions are still arriving
func TestConcurrentReadsDuringWrites(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cat := catalog.Default()
	submitHandler := NewSubmissionHandler(st, cat, testutil.GetTestConfig())
	analyticsHandler := NewAnalyticsHandler(st, cat)

	var failures atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"answers":{"place_of_living":"Urban"},"fingerprint":"rw-%d"}`, idx)
			req := httptest.NewRequest("POST", "/api/submit", bytes.NewReader([]byte(body)))
			w := httptest.NewRecorder()
			submitHandler.Submit(w, req)
			if w.Code != http.StatusCreated {
				failures.Add(1)
			}
		}(i)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			analyticsHandler.GetAnalytics(w, httptest.NewRequest("GET", "/api/admin/analytics", nil))
			if w.Code != http.StatusOK {
				failures.Add(1)
			}
		}()
	}

	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected no failed requests, got %d", failures.Load())
	}
}
