// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/meai-survey/models"
)

// ErrUnavailable means no backend is reachable. Callers degrade instead of
// failing: analytics serves an empty report, intake refuses to record.
var ErrUnavailable = errors.New("submission store unavailable")

// Store is the submission store capability. Submissions are append-only and
// at most one is indexed per fingerprint.
type Store interface {
	// Append adds sub to the end of the submission list.
	Append(ctx context.Context, sub models.Submission) error
	// ListAll returns every submission in append order.
	ListAll(ctx context.Context) ([]models.Submission, error)
	// Get returns the submission indexed under fingerprint, or nil, nil.
	Get(ctx context.Context, fingerprint string) (*models.Submission, error)
	// SetIfAbsent indexes sub under fingerprint unless the key is taken.
	// It reports whether the write happened. The check and the write are
	// one atomic step.
	SetIfAbsent(ctx context.Context, fingerprint string, sub models.Submission) (bool, error)
}

// Recorder is implemented by stores that can claim a fingerprint and append
// the submission as one atomic write. Record reports false, nil when the
// fingerprint is already taken.
type Recorder interface {
	Record(ctx context.Context, fingerprint string, sub models.Submission) (bool, error)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
