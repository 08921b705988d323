// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/danielhkuo/meai-survey/models"
)

// Memory keeps submissions in process. Used for development and tests.
type Memory struct {
	mu           sync.RWMutex
	submissions  []models.Submission
	fingerprints map[string]models.Submission
}

func NewMemory() *Memory {
	return &Memory{fingerprints: make(map[string]models.Submission)}
}

func (m *Memory) Append(ctx context.Context, sub models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, sub)
	return nil
}

func (m *Memory) ListAll(ctx context.Context) ([]models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Submission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func (m *Memory) Get(ctx context.Context, fingerprint string) (*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.fingerprints[fingerprint]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (m *Memory) SetIfAbsent(ctx context.Context, fingerprint string, sub models.Submission) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.fingerprints[fingerprint]; taken {
		return false, nil
	}
	m.fingerprints[fingerprint] = sub
	return true, nil
}

// Len returns the number of appended submissions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.submissions)
}
