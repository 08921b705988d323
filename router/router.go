// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/cliparse"
	"github.com/danielhkuo/meai-survey/handlers"
	"github.com/danielhkuo/meai-survey/middleware"
	"github.com/danielhkuo/meai-survey/store"
)

func NewRouter(st store.Store, cat *catalog.Catalog, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	formHandler := handlers.NewFormHandler(cat)
	submissionHandler := handlers.NewSubmissionHandler(st, cat, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(st, cat)
	exportHandler := handlers.NewExportHandler(st, cat)
	questionsHandler := handlers.NewQuestionsHandler(cat)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Respondent form
	mux.HandleFunc("GET /api/form", middleware.WithLogging(formHandler.GetForm))
	mux.HandleFunc("POST /api/form/validate", middleware.WithLogging(formHandler.ValidateForm))

	// Submission intake
	mux.HandleFunc("POST /api/submit", middleware.WithLogging(submissionHandler.Submit))
	mux.HandleFunc("GET /api/submit/status", middleware.WithLogging(submissionHandler.GetStatus))

	// Admin reporting
	mux.HandleFunc("GET /api/admin/analytics", middleware.WithLogging(analyticsHandler.GetAnalytics))
	mux.HandleFunc("GET /api/admin/submissions", middleware.WithLogging(exportHandler.ExportSubmissions))

	// Researcher catalog view (read-only)
	mux.HandleFunc("GET /api/researcher/questions", middleware.WithLogging(questionsHandler.ListQuestions))
	mux.HandleFunc("POST /api/researcher/questions", middleware.WithLogging(questionsHandler.ReadOnly))
	mux.HandleFunc("PUT /api/researcher/questions/reorder", middleware.WithLogging(questionsHandler.ReadOnly))
	mux.HandleFunc("PUT /api/researcher/questions/{id}", middleware.WithLogging(questionsHandler.ReadOnly))
	mux.HandleFunc("DELETE /api/researcher/questions/{id}", middleware.WithLogging(questionsHandler.ReadOnly))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("meai-survey API v1"))
	})

	return mux
}
