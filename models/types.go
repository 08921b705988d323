package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Question types
type QuestionType string

const (
	TypeSingleChoice   QuestionType = "single-choice"
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeShortText      QuestionType = "short-text"
	TypeLongText       QuestionType = "long-text"
	TypeNumeric        QuestionType = "numeric"
	TypeRating         QuestionType = "rating"
	TypeDate           QuestionType = "date"
)

// Locked demographic questions used for breakdowns and the pivot
const (
	QuestionAgeGroup      = "age_group"
	QuestionPlaceOfLiving = "place_of_living"
)

// TimestampLayout matches JavaScript's Date.toISOString output.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeSingleChoice, TypeMultipleChoice, TypeShortText, TypeLongText,
		TypeNumeric, TypeRating, TypeDate:
		return true
	}
	return false
}

// NeedsOptions reports whether answers are picked from Question.Options.
func (t QuestionType) NeedsOptions() bool {
	return t == TypeSingleChoice || t == TypeMultipleChoice || t == TypeRating
}

// Bounded reports whether Validation.Min/Max apply to the type.
func (t QuestionType) Bounded() bool {
	return t == TypeNumeric || t == TypeRating
}

// Catalog types

type Validation struct {
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

type Conditional struct {
	DependsOn string     `json:"dependsOn" yaml:"dependsOn"`
	ShowWhen  StringList `json:"showWhen" yaml:"showWhen"`
}

type Question struct {
	ID          string       `json:"id" yaml:"id"`
	Type        QuestionType `json:"type" yaml:"type"`
	Text        string       `json:"text" yaml:"text"`
	Required    bool         `json:"required" yaml:"required"`
	Locked      bool         `json:"locked,omitempty" yaml:"locked,omitempty"`
	Order       int          `json:"order" yaml:"order"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Validation  *Validation  `json:"validation,omitempty" yaml:"validation,omitempty"`
	Conditional *Conditional `json:"conditional,omitempty" yaml:"conditional,omitempty"`
}

// HasOption reports whether v is one of the question's options.
func (q Question) HasOption(v string) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}

// StringList accepts either a single string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = many
	return nil
}

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	return fmt.Errorf("line %d: expected string or list of strings", value.Line)
}

// Contains reports whether v is in the list.
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

// Domain types

// Submission is one respondent's answer set. Created once, never mutated.
type Submission struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Answers        Answers   `json:"answers"`
	CompletionTime int       `json:"completionTime"`
	Fingerprint    string    `json:"fingerprint"`
	IPAddress      string    `json:"ipAddress,omitempty"`
}

// MarshalJSON writes the timestamp with millisecond precision in UTC.
func (s Submission) MarshalJSON() ([]byte, error) {
	answers := s.Answers
	if answers == nil {
		answers = Answers{}
	}
	return json.Marshal(struct {
		ID             string  `json:"id"`
		Timestamp      string  `json:"timestamp"`
		Answers        Answers `json:"answers"`
		CompletionTime int     `json:"completionTime"`
		Fingerprint    string  `json:"fingerprint"`
		IPAddress      string  `json:"ipAddress,omitempty"`
	}{
		ID:             s.ID,
		Timestamp:      s.Timestamp.UTC().Format(TimestampLayout),
		Answers:        answers,
		CompletionTime: s.CompletionTime,
		Fingerprint:    s.Fingerprint,
		IPAddress:      s.IPAddress,
	})
}

// UnmarshalJSON treats a missing or malformed answers field as an empty
// mapping instead of failing the whole record.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID             string          `json:"id"`
		Timestamp      string          `json:"timestamp"`
		Answers        json.RawMessage `json:"answers"`
		CompletionTime json.Number     `json:"completionTime"`
		Fingerprint    string          `json:"fingerprint"`
		IPAddress      string          `json:"ipAddress"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	answers := Answers{}
	if len(aux.Answers) > 0 {
		if err := json.Unmarshal(aux.Answers, &answers); err != nil {
			answers = Answers{}
		}
	}
	// "answers": null leaves a nil map behind
	if answers == nil {
		answers = Answers{}
	}

	completion := 0
	if aux.CompletionTime != "" {
		if f, err := aux.CompletionTime.Float64(); err == nil && f > 0 {
			completion = int(f)
		}
	}

	var ts time.Time
	if aux.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, aux.Timestamp); err == nil {
			ts = parsed
		}
	}

	*s = Submission{
		ID:             aux.ID,
		Timestamp:      ts,
		Answers:        answers,
		CompletionTime: completion,
		Fingerprint:    aux.Fingerprint,
		IPAddress:      aux.IPAddress,
	}
	return nil
}

// Request types

type SubmitRequest struct {
	Answers        Answers `json:"answers"`
	CompletionTime int     `json:"completionTime"`
	Fingerprint    string  `json:"fingerprint"`
}

type ValidateFormRequest struct {
	Answers Answers `json:"answers"`
}

// Response types

type SubmitResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}

type SubmissionStatusResponse struct {
	Submitted    bool   `json:"submitted"`
	SubmissionID string `json:"submissionId,omitempty"`
}

type FormResponse struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

type ValidateFormResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Progress int      `json:"progress"`
}

// Error response

type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Problems []string `json:"problems,omitempty"`
}
