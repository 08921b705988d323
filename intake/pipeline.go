// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package intake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/fingerprint"
	"github.com/danielhkuo/meai-survey/form"
	"github.com/danielhkuo/meai-survey/models"
	"github.com/danielhkuo/meai-survey/store"
)

// Request is one submission attempt as received from the transport.
type Request struct {
	Answers        models.Answers
	CompletionTime int
	Fingerprint    string
	ClientIP       string
	UserAgent      string
}

// Result describes an accepted submission.
type Result struct {
	Submission models.Submission
}

func (r *Result) SubmissionID() string { return r.Submission.ID }

type Option func(*Pipeline)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDGenerator overrides submission id allocation.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(p *Pipeline) { p.newID = newID }
}

// WithStrictValidation rejects answers that fail catalog validation.
func WithStrictValidation(strict bool) Option {
	return func(p *Pipeline) { p.strict = strict }
}

// WithFingerprintSalt sets the salt for derived fingerprints and IP hashes.
func WithFingerprintSalt(salt string) Option {
	return func(p *Pipeline) { p.salt = salt }
}

// WithIPHashing stores a salted hash instead of the client address.
func WithIPHashing(enabled bool) Option {
	return func(p *Pipeline) { p.hashIPs = enabled }
}

// Pipeline validates, dedups, builds and persists submissions.
type Pipeline struct {
	store   store.Store
	catalog *catalog.Catalog

	now     func() time.Time
	newID   func() (string, error)
	strict  bool
	salt    string
	hashIPs bool
}

func NewPipeline(st store.Store, cat *catalog.Catalog, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:   st,
		catalog: cat,
		now:     time.Now,
		newID:   newSubmissionID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// newSubmissionID returns a UUIDv7, unique and ordered by creation time.
func newSubmissionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate submission id: %w", err)
	}
	return id.String(), nil
}

// Submit records one submission. Per accepted submission the store sees
// exactly one fingerprint index write and one append; a rejected one causes
// no writes. Stores that implement store.Recorder do both in one step.
func (p *Pipeline) Submit(ctx context.Context, req Request) (*Result, error) {
	if len(req.Answers) == 0 {
		return nil, ErrEmptyAnswers
	}
	if req.CompletionTime < 0 {
		return nil, fmt.Errorf("%w: completion time must not be negative", ErrInvalidAnswers)
	}
	if p.strict {
		if problems := form.Validate(p.catalog, req.Answers); len(problems) > 0 {
			return nil, &ValidationError{Problems: problems}
		}
	}

	fp := p.resolveFingerprint(req)

	sub, err := p.buildRecord(req, fp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFault, err)
	}

	derived := fingerprint.IsDerived(fp)

	if rec, ok := p.store.(store.Recorder); ok {
		recorded, err := rec.Record(ctx, fp, sub)
		if err != nil {
			return nil, p.writeFailure(fp, err, "record")
		}
		if !recorded {
			slog.Info("duplicate submission rejected", "fingerprint", fp, "derived", derived)
			return nil, ErrDuplicateSubmission
		}
	} else {
		// Atomic dedup: the index write both checks and claims the fingerprint
		ok, err := p.store.SetIfAbsent(ctx, fp, sub)
		if err != nil {
			return nil, p.writeFailure(fp, err, "index write")
		}
		if !ok {
			slog.Info("duplicate submission rejected", "fingerprint", fp, "derived", derived)
			return nil, ErrDuplicateSubmission
		}

		if err := p.store.Append(ctx, sub); err != nil {
			// The fingerprint is claimed but the record is not listed
			slog.Error("partial submission write",
				"submission_id", sub.ID,
				"fingerprint", fp,
				"error", err,
			)
			return nil, fmt.Errorf("%w: append after index write: %v", ErrStoreFault, err)
		}
	}

	slog.Info("submission recorded",
		"submission_id", sub.ID,
		"answers", len(sub.Answers),
		"derived", derived,
	)

	return &Result{Submission: sub}, nil
}

// writeFailure maps a failed claim on the fingerprint to an intake error.
func (p *Pipeline) writeFailure(fp string, err error, step string) error {
	if store.IsUnavailable(err) {
		slog.Warn("submission store unavailable", "fingerprint", fp, "error", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	slog.Error("failed to index submission", "fingerprint", fp, "step", step, "error", err)
	return fmt.Errorf("%w: %s: %v", ErrStoreFault, step, err)
}

func (p *Pipeline) resolveFingerprint(req Request) string {
	if fp := fingerprint.Normalize(req.Fingerprint); fp != "" {
		return fp
	}
	return fingerprint.Derive(req.UserAgent, req.ClientIP, p.salt)
}

func (p *Pipeline) buildRecord(req Request, fp string) (models.Submission, error) {
	id, err := p.newID()
	if err != nil {
		return models.Submission{}, err
	}

	ip := req.ClientIP
	if p.hashIPs {
		ip = fingerprint.HashIP(ip, p.salt)
	}

	return models.Submission{
		ID:             id,
		Timestamp:      p.now().UTC().Truncate(time.Millisecond),
		Answers:        req.Answers,
		CompletionTime: req.CompletionTime,
		Fingerprint:    fp,
		IPAddress:      ip,
	}, nil
}

// Status returns the id of the submission recorded for fingerprint, or ""
// when there is none.
func (p *Pipeline) Status(ctx context.Context, fp string) (string, error) {
	fp = fingerprint.Normalize(fp)
	if fp == "" {
		return "", nil
	}

	sub, err := p.store.Get(ctx, fp)
	if err != nil {
		if store.IsUnavailable(err) {
			return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return "", fmt.Errorf("%w: %v", ErrStoreFault, err)
	}
	if sub == nil {
		return "", nil
	}
	return sub.ID, nil
}
