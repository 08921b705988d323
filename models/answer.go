// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// AnswerKind tags the shape of an AnswerValue
type AnswerKind int

const (
	AnswerEmpty AnswerKind = iota
	AnswerText
	AnswerNumber
	AnswerMultiSelect
	// AnswerOther is any JSON shape we keep but never count (bool, object).
	AnswerOther
)

// AnswerValue is a single answer: a scalar (text or number), a multi-select
// list, or empty. The original JSON bytes are kept so a stored answer is
// re-emitted exactly as the respondent sent it.
type AnswerValue struct {
	kind  AnswerKind
	text  string
	num   float64
	multi []string
	raw   json.RawMessage
}

// Answers maps question id to answer.
type Answers map[string]AnswerValue

// TextAnswer builds a text scalar.
func TextAnswer(s string) AnswerValue {
	return AnswerValue{kind: AnswerText, text: s}
}

// NumberAnswer builds a numeric scalar.
func NumberAnswer(f float64) AnswerValue {
	return AnswerValue{kind: AnswerNumber, num: f, text: formatNumber(f)}
}

// MultiAnswer builds a multi-select answer.
func MultiAnswer(values ...string) AnswerValue {
	return AnswerValue{kind: AnswerMultiSelect, multi: append([]string{}, values...)}
}

func (a AnswerValue) Kind() AnswerKind { return a.kind }

// Text returns the scalar form of a text or number answer.
func (a AnswerValue) Text() string {
	if a.kind == AnswerText || a.kind == AnswerNumber {
		return a.text
	}
	return ""
}

// Number returns the numeric value of a number answer, or of a text answer
// that parses as a number (rating answers arrive as "7").
func (a AnswerValue) Number() (float64, bool) {
	switch a.kind {
	case AnswerNumber:
		return a.num, true
	case AnswerText:
		f, err := strconv.ParseFloat(strings.TrimSpace(a.text), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Values returns the selections of a multi-select answer.
func (a AnswerValue) Values() []string {
	if a.kind != AnswerMultiSelect {
		return nil
	}
	return append([]string{}, a.multi...)
}

// Scalar returns the non-empty scalar key of the answer.
func (a AnswerValue) Scalar() (string, bool) {
	switch a.kind {
	case AnswerNumber:
		return a.text, true
	case AnswerText:
		return a.text, a.text != ""
	}
	return "", false
}

// IsEmpty reports whether the respondent left the question unanswered.
func (a AnswerValue) IsEmpty() bool {
	switch a.kind {
	case AnswerEmpty:
		return true
	case AnswerText:
		return a.text == ""
	case AnswerMultiSelect:
		return len(a.multi) == 0
	}
	return false
}

// Tallies returns the distribution keys this answer contributes: one for a
// scalar, one per selection for a multi-select, none otherwise.
func (a AnswerValue) Tallies() []string {
	switch a.kind {
	case AnswerText, AnswerNumber:
		if s, ok := a.Scalar(); ok {
			return []string{s}
		}
	case AnswerMultiSelect:
		return a.multi
	}
	return nil
}

// String renders the answer for flat output such as CSV cells.
func (a AnswerValue) String() string {
	switch a.kind {
	case AnswerText, AnswerNumber:
		return a.text
	case AnswerMultiSelect:
		return strings.Join(a.multi, "; ")
	case AnswerOther:
		return string(a.raw)
	}
	return ""
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	switch a.kind {
	case AnswerText:
		return json.Marshal(a.text)
	case AnswerNumber:
		return []byte(a.text), nil
	case AnswerMultiSelect:
		if a.multi == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.multi)
	}
	return []byte("null"), nil
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	raw := append(json.RawMessage{}, trimmed...)

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = AnswerValue{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = AnswerValue{kind: AnswerText, text: s, raw: raw}
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return err
		}
		// Non-string elements are kept in raw but never counted.
		values := make([]string, 0, len(elems))
		for _, e := range elems {
			e = bytes.TrimSpace(e)
			if len(e) == 0 || e[0] != '"' {
				continue
			}
			var s string
			if err := json.Unmarshal(e, &s); err == nil {
				values = append(values, s)
			}
		}
		*a = AnswerValue{kind: AnswerMultiSelect, multi: values, raw: raw}
	case '{', 't', 'f':
		*a = AnswerValue{kind: AnswerOther, raw: raw}
	default:
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return err
		}
		*a = AnswerValue{kind: AnswerNumber, num: f, text: formatNumber(f), raw: raw}
	}
	return nil
}

// formatNumber renders f the way JavaScript stringifies numbers used as
// object keys: 7 -> "7", 2.5 -> "2.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
