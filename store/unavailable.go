package store

import (
	"context"

	"github.com/danielhkuo/meai-survey/models"
)

// Unavailable stands in when no backend is configured.
type Unavailable struct{}

func (Unavailable) Append(context.Context, models.Submission) error { return ErrUnavailable }

func (Unavailable) ListAll(context.Context) ([]models.Submission, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Get(context.Context, string) (*models.Submission, error) {
	return nil, ErrUnavailable
}

func (Unavailable) SetIfAbsent(context.Context, string, models.Submission) (bool, error) {
	return false, ErrUnavailable
}
