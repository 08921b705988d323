// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package intake

import (
	"errors"
	"strings"

	"github.com/danielhkuo/meai-survey/form"
)

var (
	ErrEmptyAnswers        = errors.New("no answers provided")
	ErrInvalidAnswers      = errors.New("invalid answers")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrStoreUnavailable    = errors.New("submission store unavailable")
	ErrStoreFault          = errors.New("submission store fault")
)

// Machine-readable rejection reasons
const (
	ReasonEmptyAnswers        = "EmptyAnswers"
	ReasonInvalidAnswers      = "InvalidAnswers"
	ReasonDuplicateSubmission = "DuplicateSubmission"
	ReasonStoreUnavailable    = "StoreUnavailable"
	ReasonStoreFault          = "StoreFault"
)

// ValidationError carries the catalog problems behind an InvalidAnswers
// rejection.
type ValidationError struct {
	Problems []form.Problem
}

func (e *ValidationError) Error() string {
	return "invalid answers: " + strings.Join(form.Messages(e.Problems), "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidAnswers }

// Reason maps a Submit error to its rejection reason, or "" for nil and
// unrecognized errors.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyAnswers):
		return ReasonEmptyAnswers
	case errors.Is(err, ErrInvalidAnswers):
		return ReasonInvalidAnswers
	case errors.Is(err, ErrDuplicateSubmission):
		return ReasonDuplicateSubmission
	case errors.Is(err, ErrStoreUnavailable):
		return ReasonStoreUnavailable
	case errors.Is(err, ErrStoreFault):
		return ReasonStoreFault
	}
	return ""
}

// Message is the respondent-facing text for a Submit error.
func Message(err error) string {
	switch Reason(err) {
	case ReasonEmptyAnswers:
		return "No answers provided"
	case ReasonInvalidAnswers:
		var verr *ValidationError
		if errors.As(err, &verr) && len(verr.Problems) > 0 {
			return verr.Problems[0].Message
		}
		return "Some answers are invalid"
	case ReasonDuplicateSubmission:
		return "You have already submitted this survey. Only one submission per person is allowed."
	case ReasonStoreUnavailable:
		return "Your response could not be saved right now. Please try again later."
	case ReasonStoreFault:
		return "Failed to submit response"
	}
	return "Failed to submit response"
}
