// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/meai-survey/analytics"
	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/middleware"
	"github.com/danielhkuo/meai-survey/store"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(st store.Store, cat *catalog.Catalog) *AnalyticsHandler {
	return &AnalyticsHandler{service: analytics.NewService(st, cat)}
}

// GetAnalytics handles GET /api/admin/analytics
// Optional filters: startDate, endDate (YYYY-MM-DD), ageGroup, placeOfLiving
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	filter, err := analytics.ParseFilter(r.URL.Query())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Report(r.Context(), filter)
	if err != nil {
		slog.Error("failed to compute analytics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report)
}
