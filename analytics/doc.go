// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package analytics implements the analytics aggregation engine.

# Report

Compute folds a submission list into a Report in one pass:

	report := analytics.Compute(cat, subs)

The report holds:

  - summary: totalSubmissions, averageCompletionTime (rounded seconds),
    requiredCompletionRate, ageGroupCounts, placeOfLivingCounts
  - questionDistributions: per answered question, answer → {count, percentage}
  - questionResponses: questionId → answer → count
  - ageGroupBreakdown / placeBreakdown: value → questionId → answer → count,
    excluding the grouping question itself
  - pivot: age group → place → questionId → answer → count

# Counting

A scalar answer adds one to its value. A multi-select answer adds one per
selection. Empty, null, boolean and object answers are not counted.
Percentages are relative to the question's total tallies, one decimal,
rounded half up.

# Ordering

All maps are Ordered and encode in insertion order. Questions follow the
catalog (locked first, then order) with unknown ids sorted after it.
Answer buckets keep first-seen order. Encoding the same input twice gives
identical bytes.

# Service

Service reads the store, applies a Filter and computes the report. An
unavailable store gives an empty report, not an error.
*/
package analytics
