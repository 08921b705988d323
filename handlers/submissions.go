// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/cliparse"
	"github.com/danielhkuo/meai-survey/form"
	"github.com/danielhkuo/meai-survey/intake"
	"github.com/danielhkuo/meai-survey/middleware"
	"github.com/danielhkuo/meai-survey/models"
	"github.com/danielhkuo/meai-survey/store"
)

const submitSuccessMessage = "Thank you for completing the survey!"

type SubmissionHandler struct {
	pipeline *intake.Pipeline
}

func NewSubmissionHandler(st store.Store, cat *catalog.Catalog, cfg cliparse.Config) *SubmissionHandler {
	return &SubmissionHandler{
		pipeline: intake.NewPipeline(st, cat,
			intake.WithFingerprintSalt(cfg.FingerprintSalt),
			intake.WithIPHashing(cfg.HashIPs),
			intake.WithStrictValidation(cfg.StrictValidation),
		),
	}
}

// Submit handles POST /api/submit
// One submission per fingerprint; a repeat is rejected with 429
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmit(r)
	if err != nil {
		reason := intake.Reason(err)
		message := intake.Message(err)
		if reason == intake.ReasonInvalidAnswers {
			message = "Invalid JSON"
		}
		slog.Debug("submit body rejected", "reason", reason, "error", err)
		middleware.RejectResponse(w, http.StatusBadRequest, reason, message, nil)
		return
	}

	result, err := h.pipeline.Submit(r.Context(), intake.Request{
		Answers:        req.Answers,
		CompletionTime: req.CompletionTime,
		Fingerprint:    req.Fingerprint,
		ClientIP:       middleware.GetClientIP(r),
		UserAgent:      r.UserAgent(),
	})
	if err != nil {
		reason := intake.Reason(err)
		status := rejectStatus(reason)
		if status == http.StatusInternalServerError {
			slog.Error("submission failed", "reason", reason, "error", err)
		}

		var problems []string
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			problems = form.Messages(verr.Problems)
		}

		middleware.RejectResponse(w, status, reason, intake.Message(err), problems)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		Message:      submitSuccessMessage,
		SubmissionID: result.SubmissionID(),
	})
}

// submitBody holds answers raw so a non-object can be told apart from a
// body that does not parse at all
type submitBody struct {
	Answers        json.RawMessage `json:"answers"`
	CompletionTime int             `json:"completionTime"`
	Fingerprint    string          `json:"fingerprint"`
}

// decodeSubmit reads a submit body. Answers that are present but not an
// object count as no answers; anything else that fails to decode is invalid.
func decodeSubmit(r *http.Request) (models.SubmitRequest, error) {
	var body submitBody
	if err := middleware.ParseJSONBody(r, &body); err != nil {
		return models.SubmitRequest{}, fmt.Errorf("%w: %v", intake.ErrInvalidAnswers, err)
	}

	req := models.SubmitRequest{
		CompletionTime: body.CompletionTime,
		Fingerprint:    body.Fingerprint,
	}

	raw := bytes.TrimSpace(body.Answers)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		// left to the pipeline, which rejects it as empty
		return req, nil
	}
	if raw[0] != '{' {
		return req, intake.ErrEmptyAnswers
	}
	if err := json.Unmarshal(raw, &req.Answers); err != nil {
		return req, fmt.Errorf("%w: %v", intake.ErrInvalidAnswers, err)
	}
	return req, nil
}

// GetStatus handles GET /api/submit/status?fingerprint=
// Lets the frontend check for an earlier submission before rendering the form
func (h *SubmissionHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	fp := strings.TrimSpace(r.URL.Query().Get("fingerprint"))
	if fp == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "fingerprint is required")
		return
	}

	id, err := h.pipeline.Status(r.Context(), fp)
	if err != nil {
		reason := intake.Reason(err)
		middleware.RejectResponse(w, rejectStatus(reason), reason, "Submission status is not available right now", nil)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmissionStatusResponse{
		Submitted:    id != "",
		SubmissionID: id,
	})
}

// rejectStatus maps a rejection reason to its HTTP status
func rejectStatus(reason string) int {
	switch reason {
	case intake.ReasonEmptyAnswers, intake.ReasonInvalidAnswers:
		return http.StatusBadRequest
	case intake.ReasonDuplicateSubmission:
		return http.StatusTooManyRequests
	case intake.ReasonStoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
