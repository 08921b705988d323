// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitRequest: answers, completionTime, fingerprint
  - ValidateFormRequest: answers

# Response Types

Types for JSON responses:

  - SubmitResponse: message, submissionId
  - SubmissionStatusResponse: submitted, submissionId
  - FormResponse: title, description, questions
  - ValidateFormResponse: valid, errors, progress
  - ErrorResponse: error, message, reason, problems

# Domain Types

  - Question: catalog entry (type, text, options, validation, conditional)
  - Submission: one respondent's answers, immutable once stored
  - AnswerValue: tagged union of the answer shapes

# Answer Shapes

AnswerValue is decoded from whatever JSON the form sent:

	"7"                 → AnswerText
	7                   → AnswerNumber
	["Reading","Music"] → AnswerMultiSelect
	null                → AnswerEmpty
	true, {...}         → AnswerOther (kept, never counted)

Tallies returns the keys an answer contributes to a distribution, so the
aggregation code never inspects JSON types itself.

# Constants

Question types:

	TypeSingleChoice   = "single-choice"
	TypeMultipleChoice = "multiple-choice"
	TypeShortText      = "short-text"
	TypeLongText       = "long-text"
	TypeNumeric        = "numeric"
	TypeRating         = "rating"
	TypeDate           = "date"

Demographic question ids:

	QuestionAgeGroup      = "age_group"
	QuestionPlaceOfLiving = "place_of_living"
*/
package models
