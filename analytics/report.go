// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"strconv"

	"github.com/danielhkuo/meai-survey/models"
)

// Report is the analytics view over a submission list. It is derived on
// every request and never stored.
type Report struct {
	Summary               Summary                `json:"summary"`
	QuestionDistributions []QuestionDistribution `json:"questionDistributions"`
	// QuestionResponses is questionId → answer → count
	QuestionResponses *Ordered[*Counts] `json:"questionResponses"`
	AgeGroupBreakdown *Breakdown        `json:"ageGroupBreakdown"`
	PlaceBreakdown    *Breakdown        `json:"placeBreakdown"`
	Pivot             *Pivot            `json:"pivot"`
}

type Summary struct {
	TotalSubmissions       int        `json:"totalSubmissions"`
	AverageCompletionTime  int        `json:"averageCompletionTime"`
	RequiredCompletionRate Percentage `json:"requiredCompletionRate"`
	AgeGroupCounts         *Counts    `json:"ageGroupCounts"`
	PlaceOfLivingCounts    *Counts    `json:"placeOfLivingCounts"`
}

type QuestionDistribution struct {
	QuestionID   string                `json:"questionId"`
	QuestionText string                `json:"questionText"`
	QuestionType models.QuestionType   `json:"questionType"`
	TotalAnswers int                   `json:"totalAnswers"`
	Distribution *Ordered[AnswerShare] `json:"distribution"`
}

type AnswerShare struct {
	Count      int        `json:"count"`
	Percentage Percentage `json:"percentage"`
}

// Breakdown is demographic value → questionId → answer → count.
type Breakdown = Ordered[*Ordered[*Counts]]

// Pivot is age group → place of living → questionId → answer → count.
type Pivot = Ordered[*Breakdown]

// Percentage is stored in tenths of a percent and always encodes with one
// decimal place: 500 → 50.0.
type Percentage int

// PercentOf returns part/whole × 100 rounded half-up to one decimal.
func PercentOf(part, whole int) Percentage {
	if whole <= 0 {
		return 0
	}
	return Percentage((part*1000*2 + whole) / (2 * whole))
}

func (p Percentage) Float() float64 { return float64(p) / 10 }

func (p Percentage) String() string {
	return strconv.FormatFloat(p.Float(), 'f', 1, 64)
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Percentage) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*p = Percentage(f*10 + 0.5)
	return nil
}

func newReport() *Report {
	return &Report{
		Summary: Summary{
			AgeGroupCounts:      NewCounts(),
			PlaceOfLivingCounts: NewCounts(),
		},
		QuestionDistributions: []QuestionDistribution{},
		QuestionResponses:     NewOrdered[*Counts](),
		AgeGroupBreakdown:     NewOrdered[*Ordered[*Counts]](),
		PlaceBreakdown:        NewOrdered[*Ordered[*Counts]](),
		Pivot:                 NewOrdered[*Breakdown](),
	}
}
