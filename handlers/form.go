// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/form"
	"github.com/danielhkuo/meai-survey/middleware"
	"github.com/danielhkuo/meai-survey/models"
)

type FormHandler struct {
	catalog *catalog.Catalog
}

func NewFormHandler(cat *catalog.Catalog) *FormHandler {
	return &FormHandler{catalog: cat}
}

// GetForm handles GET /api/form
// Returns the survey title, description and questions in display order
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.FormResponse{
		Title:       h.catalog.Title(),
		Description: h.catalog.Description(),
		Questions:   h.catalog.List(),
	})
}

// ValidateForm handles POST /api/form/validate
// Advisory only: nothing is stored and the submit endpoint does its own checks
func (h *FormHandler) ValidateForm(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Answers == nil {
		req.Answers = models.Answers{}
	}

	problems := form.Validate(h.catalog, req.Answers)
	middleware.JSONResponse(w, http.StatusOK, models.ValidateFormResponse{
		Valid:    len(problems) == 0,
		Errors:   form.Messages(problems),
		Progress: form.Progress(h.catalog, req.Answers),
	})
}
