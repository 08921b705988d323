// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"sort"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/form"
	"github.com/danielhkuo/meai-survey/models"
)

// Compute aggregates submissions into a report. It is pure: the same
// catalog and submission list always give a byte-identical encoding.
//
// Submissions are visited in list order and each submission's answers in
// catalog order, so answer buckets appear in first-seen order.
func Compute(c *catalog.Catalog, subs []models.Submission) *Report {
	r := newReport()
	r.Summary.TotalSubmissions = len(subs)

	var completionSum, complete int
	for _, sub := range subs {
		answers := sub.Answers
		if answers == nil {
			answers = models.Answers{}
		}

		if sub.CompletionTime > 0 {
			completionSum += sub.CompletionTime
		}
		if requiredAnswered(c, answers) {
			complete++
		}

		age, hasAge := demographic(answers, models.QuestionAgeGroup)
		place, hasPlace := demographic(answers, models.QuestionPlaceOfLiving)

		var ageQuestions, placeQuestions, pivotQuestions *Ordered[*Counts]
		if hasAge {
			Increment(r.Summary.AgeGroupCounts, age)
			ageQuestions = r.AgeGroupBreakdown.GetOrInit(age, newQuestionCounts)
		}
		if hasPlace {
			Increment(r.Summary.PlaceOfLivingCounts, place)
			placeQuestions = r.PlaceBreakdown.GetOrInit(place, newQuestionCounts)
		}
		// Submissions missing either demographic stay out of the pivot
		if hasAge && hasPlace {
			pivotQuestions = r.Pivot.GetOrInit(age, newBreakdown).GetOrInit(place, newQuestionCounts)
		}

		for _, qid := range c.OrderAnswerIDs(answers) {
			// Every id seen gets an entry, even when nothing in it is countable
			counts := r.QuestionResponses.GetOrInit(qid, NewCounts)
			for _, key := range answers[qid].Tallies() {
				if key == "" {
					continue
				}
				Increment(counts, key)
				if ageQuestions != nil && qid != models.QuestionAgeGroup {
					Increment(ageQuestions.GetOrInit(qid, NewCounts), key)
				}
				if placeQuestions != nil && qid != models.QuestionPlaceOfLiving {
					Increment(placeQuestions.GetOrInit(qid, NewCounts), key)
				}
				if pivotQuestions != nil {
					Increment(pivotQuestions.GetOrInit(qid, NewCounts), key)
				}
			}
		}
	}

	if n := len(subs); n > 0 {
		// Round half up in integer arithmetic
		r.Summary.AverageCompletionTime = (2*completionSum + n) / (2 * n)
		r.Summary.RequiredCompletionRate = PercentOf(complete, n)
	}

	r.QuestionDistributions = distributions(c, r.QuestionResponses)

	return r
}

func newQuestionCounts() *Ordered[*Counts] { return NewOrdered[*Counts]() }

func newBreakdown() *Breakdown { return NewOrdered[*Ordered[*Counts]]() }

// demographic returns a non-empty scalar answer for id.
func demographic(answers models.Answers, id string) (string, bool) {
	a, ok := answers[id]
	if !ok {
		return "", false
	}
	return a.Scalar()
}

// requiredAnswered reports whether every visible required question has an
// answer.
func requiredAnswered(c *catalog.Catalog, answers models.Answers) bool {
	for _, q := range c.List() {
		if !q.Required || !form.Visible(q, answers) {
			continue
		}
		if a, ok := answers[q.ID]; !ok || a.IsEmpty() {
			return false
		}
	}
	return true
}

// distributions covers the question ids seen in any submission: catalog
// questions in catalog order, then ids the catalog does not know, sorted.
func distributions(c *catalog.Catalog, responses *Ordered[*Counts]) []QuestionDistribution {
	out := make([]QuestionDistribution, 0, responses.Len())

	for _, q := range c.List() {
		if counts, ok := responses.Get(q.ID); ok {
			out = append(out, distribution(q.ID, q.Text, q.Type, counts))
		}
	}

	var unknown []string
	for _, id := range responses.Keys() {
		if c.Position(id) < 0 {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		counts, _ := responses.Get(id)
		out = append(out, distribution(id, id, "", counts))
	}

	return out
}

func distribution(id, text string, qt models.QuestionType, counts *Counts) QuestionDistribution {
	total := Sum(counts)
	shares := NewOrdered[AnswerShare]()
	counts.Each(func(answer string, n int) {
		shares.Set(answer, AnswerShare{Count: n, Percentage: PercentOf(n, total)})
	})
	return QuestionDistribution{
		QuestionID:   id,
		QuestionText: text,
		QuestionType: qt,
		TotalAnswers: total,
		Distribution: shares,
	}
}
