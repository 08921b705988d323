// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/meai-survey/analytics"
	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/export"
	"github.com/danielhkuo/meai-survey/middleware"
	"github.com/danielhkuo/meai-survey/store"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type ExportHandler struct {
	service *analytics.Service
	catalog *catalog.Catalog
}

func NewExportHandler(st store.Store, cat *catalog.Catalog) *ExportHandler {
	return &ExportHandler{service: analytics.NewService(st, cat), catalog: cat}
}

// ExportSubmissions handles GET /api/admin/submissions?format=json|csv
// Accepts the same filters as the analytics endpoint
func (h *ExportHandler) ExportSubmissions(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatCSV {
		middleware.ErrorResponse(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	filter, err := analytics.ParseFilter(r.URL.Query())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	subs, err := h.service.Submissions(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list submissions for export", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export submissions")
		return
	}

	// Render fully before writing headers so a failure can still be a 500
	var buf bytes.Buffer
	if format == FormatCSV {
		err = export.WriteCSV(&buf, h.catalog, subs)
	} else {
		err = export.WriteJSON(&buf, subs)
	}
	if err != nil {
		slog.Error("failed to render export", "format", format, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export submissions")
		return
	}

	if format == FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("failed to write export", "error", err)
	}
	slog.Info("submissions exported", "format", format, "count", len(subs))
}
