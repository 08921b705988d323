// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the MeAi survey API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cat, cfg)

# Endpoints

Health:

	GET /health

Respondent form:

	GET  /api/form          - Title, description and ordered questions
	POST /api/form/validate - Advisory validation and progress

Submission intake:

	POST /api/submit        - Record one submission per fingerprint
	GET  /api/submit/status - Check for an earlier submission

Admin reporting:

	GET /api/admin/analytics   - Aggregated report (filterable)
	GET /api/admin/submissions - Raw export as json or csv (filterable)

Researcher catalog view:

	GET    /api/researcher/questions         - Questions in display order
	POST   /api/researcher/questions         - 503, the catalog is read-only
	PUT    /api/researcher/questions/reorder - 503
	PUT    /api/researcher/questions/{id}    - 503
	DELETE /api/researcher/questions/{id}    - 503

# Handler Initialization

The router creates handler instances with dependency injection:

	formHandler := handlers.NewFormHandler(cat)
	submissionHandler := handlers.NewSubmissionHandler(st, cat, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(st, cat)

All handlers share the same store and catalog.
*/
package router
