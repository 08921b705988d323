// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/middleware"
)

const readOnlyMessage = "The question catalog is read-only. Edit the catalog file and restart the server."

type QuestionsHandler struct {
	catalog *catalog.Catalog
}

func NewQuestionsHandler(cat *catalog.Catalog) *QuestionsHandler {
	return &QuestionsHandler{catalog: cat}
}

// ListQuestions handles GET /api/researcher/questions
// The body is a bare array in display order
func (h *QuestionsHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.catalog.List())
}

// ReadOnly handles every catalog write: create, update, delete and reorder
func (h *QuestionsHandler) ReadOnly(w http.ResponseWriter, r *http.Request) {
	middleware.ErrorResponse(w, http.StatusServiceUnavailable, readOnlyMessage)
}
