// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/models"
)

const dateLayout = "2006-01-02"

// Problem is one validation failure on one question.
type Problem struct {
	QuestionID string `json:"questionId"`
	Message    string `json:"message"`
}

func (p Problem) Error() string { return p.Message }

// Messages flattens problems into their messages.
func Messages(problems []Problem) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.Message
	}
	return out
}

// Visible reports whether q is shown given the current answers. A
// multi-select dependency keeps the question hidden.
func Visible(q models.Question, answers models.Answers) bool {
	if q.Conditional == nil {
		return true
	}

	dep, ok := answers[q.Conditional.DependsOn]
	if !ok || dep.IsEmpty() {
		return false
	}

	// Only a scalar answer can satisfy showWhen; a list never does
	s, ok := dep.Scalar()
	return ok && q.Conditional.ShowWhen.Contains(s)
}

// VisibleQuestions returns the catalog questions shown for answers, in order.
func VisibleQuestions(c *catalog.Catalog, answers models.Answers) []models.Question {
	var out []models.Question
	for _, q := range c.List() {
		if Visible(q, answers) {
			out = append(out, q)
		}
	}
	return out
}

// Progress is the rounded percentage of visible questions answered.
func Progress(c *catalog.Catalog, answers models.Answers) int {
	visible := VisibleQuestions(c, answers)
	if len(visible) == 0 {
		return 0
	}

	answered := 0
	for _, q := range visible {
		if a, ok := answers[q.ID]; ok && !a.IsEmpty() {
			answered++
		}
	}
	return int(math.Round(float64(answered) / float64(len(visible)) * 100))
}

// Validate checks answers against the visible catalog questions. Hidden
// questions are never validated.
func Validate(c *catalog.Catalog, answers models.Answers) []Problem {
	var problems []Problem
	for _, q := range VisibleQuestions(c, answers) {
		problems = append(problems, validateQuestion(q, answers[q.ID])...)
	}
	return problems
}

func validateQuestion(q models.Question, a models.AnswerValue) []Problem {
	problem := func(format string, args ...any) Problem {
		return Problem{QuestionID: q.ID, Message: q.Text + " " + fmt.Sprintf(format, args...)}
	}

	if a.IsEmpty() {
		if q.Required {
			return []Problem{problem("is required")}
		}
		return nil
	}

	var problems []Problem

	switch q.Type {
	case models.TypeSingleChoice, models.TypeRating:
		s, ok := a.Scalar()
		if !ok {
			return []Problem{problem("must be a single choice")}
		}
		if !q.HasOption(s) {
			problems = append(problems, problem("has an unknown option %q", s))
		}
	case models.TypeMultipleChoice:
		values := a.Values()
		if a.Kind() != models.AnswerMultiSelect {
			s, ok := a.Scalar()
			if !ok {
				return []Problem{problem("must be a list of choices")}
			}
			values = []string{s}
		}
		for _, v := range values {
			if !q.HasOption(v) {
				problems = append(problems, problem("has an unknown option %q", v))
			}
		}
	case models.TypeShortText:
		if q.Validation != nil && q.Validation.Pattern != "" {
			re, err := regexp.Compile(q.Validation.Pattern)
			if err == nil && !re.MatchString(a.String()) {
				problems = append(problems, problem("format is invalid"))
			}
		}
	case models.TypeDate:
		if _, err := time.Parse(dateLayout, a.String()); err != nil {
			problems = append(problems, problem("must be a date (YYYY-MM-DD)"))
		}
	}

	if q.Type.Bounded() && q.Validation != nil {
		n, ok := a.Number()
		if !ok {
			return append(problems, problem("must be a number"))
		}
		if q.Validation.Min != nil && n < *q.Validation.Min {
			problems = append(problems, problem("must be at least %s", formatBound(*q.Validation.Min)))
		}
		if q.Validation.Max != nil && n > *q.Validation.Max {
			problems = append(problems, problem("must be at most %s", formatBound(*q.Validation.Max)))
		}
	} else if q.Type == models.TypeNumeric {
		if _, ok := a.Number(); !ok {
			problems = append(problems, problem("must be a number"))
		}
	}

	return problems
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
