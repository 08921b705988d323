// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/models"
	"github.com/danielhkuo/meai-survey/store"
)

// Service reads the store and builds reports.
type Service struct {
	store   store.Store
	catalog *catalog.Catalog
}

func NewService(st store.Store, cat *catalog.Catalog) *Service {
	return &Service{store: st, catalog: cat}
}

// Submissions lists stored submissions that match f. An unavailable store
// yields an empty list.
func (s *Service) Submissions(ctx context.Context, f Filter) ([]models.Submission, error) {
	subs, err := s.store.ListAll(ctx)
	if err != nil {
		if store.IsUnavailable(err) {
			slog.Warn("submission store unavailable, serving empty data", "error", err)
			return []models.Submission{}, nil
		}
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return f.Apply(subs), nil
}

// Report computes the analytics report over the filtered submissions.
func (s *Service) Report(ctx context.Context, f Filter) (*Report, error) {
	subs, err := s.Submissions(ctx, f)
	if err != nil {
		return nil, err
	}
	return Compute(s.catalog, subs), nil
}
