// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the MeAi survey API.

# Handler Types

Each handler is a struct built from the shared store, catalog and config:

  - FormHandler: Form rendering and advisory validation
  - SubmissionHandler: Submission intake and status lookup
  - AnalyticsHandler: Aggregated analytics report
  - ExportHandler: Raw submission export (JSON or CSV)
  - QuestionsHandler: Read-only catalog view for researchers

Handlers are created via constructor functions:

	submissionHandler := handlers.NewSubmissionHandler(st, cat, cfg)

# Submission Intake

	POST /api/submit → Submit

Rejections carry a reason and map to status codes:

	EmptyAnswers, InvalidAnswers → 400
	DuplicateSubmission          → 429
	StoreUnavailable             → 503
	StoreFault                   → 500

A missing fingerprint is replaced by one derived from the user agent and
client IP.

# Reporting

	GET /api/admin/analytics   → GetAnalytics
	GET /api/admin/submissions → ExportSubmissions

Both accept startDate, endDate (YYYY-MM-DD), ageGroup and placeOfLiving
filters. An unavailable store produces an empty report rather than an error.
*/
package handlers
