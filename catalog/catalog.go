// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/meai-survey/models"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the immutable, ordered list of survey questions.
// It is built once at startup and shared read-only by every component.
type Catalog struct {
	title       string
	description string
	questions   []models.Question
	index       map[string]int
}

// file is the on-disk YAML layout
type file struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Questions   []models.Question `yaml:"questions"`
}

// New validates the questions and orders them locked-first, then by order.
func New(title, description string, questions []models.Question) (*Catalog, error) {
	qs := make([]models.Question, len(questions))
	copy(qs, questions)

	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: duplicate question id %q", ErrInvalidCatalog, q.ID)
		}
		seen[q.ID] = true
	}

	for _, q := range qs {
		if q.Conditional == nil {
			continue
		}
		if !seen[q.Conditional.DependsOn] {
			return nil, fmt.Errorf("%w: question %q depends on unknown question %q",
				ErrInvalidCatalog, q.ID, q.Conditional.DependsOn)
		}
		if q.Conditional.DependsOn == q.ID {
			return nil, fmt.Errorf("%w: question %q depends on itself", ErrInvalidCatalog, q.ID)
		}
	}

	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Locked != qs[j].Locked {
			return qs[i].Locked
		}
		return qs[i].Order < qs[j].Order
	})

	index := make(map[string]int, len(qs))
	for i, q := range qs {
		index[q.ID] = i
	}

	return &Catalog{
		title:       title,
		description: description,
		questions:   qs,
		index:       index,
	}, nil
}

func validateQuestion(q models.Question) error {
	if q.ID == "" {
		return fmt.Errorf("%w: question id is required", ErrInvalidCatalog)
	}
	if !q.Type.Valid() {
		return fmt.Errorf("%w: question %q has unknown type %q", ErrInvalidCatalog, q.ID, q.Type)
	}
	if q.Text == "" {
		return fmt.Errorf("%w: question %q has no text", ErrInvalidCatalog, q.ID)
	}
	if q.Type.NeedsOptions() && len(q.Options) == 0 {
		return fmt.Errorf("%w: %s question %q needs options", ErrInvalidCatalog, q.Type, q.ID)
	}
	if v := q.Validation; v != nil {
		if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
			return fmt.Errorf("%w: question %q has min > max", ErrInvalidCatalog, q.ID)
		}
		if v.Pattern != "" {
			if _, err := regexp.Compile(v.Pattern); err != nil {
				return fmt.Errorf("%w: question %q pattern: %v", ErrInvalidCatalog, q.ID, err)
			}
		}
	}
	return nil
}

// Load reads a YAML catalog file. Unknown fields are rejected.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("%w: %s has no questions", ErrInvalidCatalog, path)
	}

	return New(f.Title, f.Description, f.Questions)
}

// FromPath loads path, or returns the built-in catalog when path is empty.
func FromPath(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Catalog) Title() string       { return c.title }
func (c *Catalog) Description() string { return c.description }
func (c *Catalog) Len() int            { return len(c.questions) }

// List returns a copy of the ordered questions.
func (c *Catalog) List() []models.Question {
	out := make([]models.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// IDs returns question ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.questions))
	for i, q := range c.questions {
		ids[i] = q.ID
	}
	return ids
}

// Get looks up a question by id.
func (c *Catalog) Get(id string) (models.Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Question{}, false
	}
	return c.questions[i], true
}

// Position returns the catalog index of id, or -1.
func (c *Catalog) Position(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// OrderAnswerIDs returns the question ids present in answers: catalog
// questions first in catalog order, then unknown ids sorted.
func (c *Catalog) OrderAnswerIDs(answers models.Answers) []string {
	ids := make([]string, 0, len(answers))
	for _, q := range c.questions {
		if _, ok := answers[q.ID]; ok {
			ids = append(ids, q.ID)
		}
	}
	var extra []string
	for id := range answers {
		if _, known := c.index[id]; !known {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}
