// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/models"
)

// Filename is the attachment name for CSV downloads
const Filename = "meai_responses.csv"

var baseColumns = []string{"id", "timestamp", "completionTime"}

// Columns returns the question columns for subs: every question id that
// appears in at least one submission, catalog questions first in catalog
// order, then unknown ids sorted.
func Columns(c *catalog.Catalog, subs []models.Submission) []string {
	present := models.Answers{}
	for _, sub := range subs {
		for id := range sub.Answers {
			present[id] = models.AnswerValue{}
		}
	}
	return c.OrderAnswerIDs(present)
}

// WriteCSV writes one row per submission under a header row. Multi-select
// answers are joined with "; " and always quoted. Other cells are quoted
// only when they contain a comma, quote or line break.
func WriteCSV(w io.Writer, c *catalog.Catalog, subs []models.Submission) error {
	bw := bufio.NewWriter(w)
	columns := Columns(c, subs)

	header := make([]string, 0, len(baseColumns)+len(columns))
	for _, col := range append(append([]string{}, baseColumns...), columns...) {
		header = append(header, quoteIfNeeded(col))
	}
	if err := writeRow(bw, header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, sub := range subs {
		row = row[:0]
		row = append(row,
			quoteIfNeeded(sub.ID),
			formatTimestamp(sub),
			strconv.Itoa(sub.CompletionTime),
		)
		for _, id := range columns {
			row = append(row, cell(sub.Answers[id]))
		}
		if err := writeRow(bw, row); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeRow(w *bufio.Writer, cells []string) error {
	if _, err := w.WriteString(strings.Join(cells, ",")); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

func formatTimestamp(sub models.Submission) string {
	if sub.Timestamp.IsZero() {
		return ""
	}
	return sub.Timestamp.UTC().Format(models.TimestampLayout)
}

func cell(a models.AnswerValue) string {
	switch a.Kind() {
	case models.AnswerEmpty:
		return ""
	case models.AnswerMultiSelect:
		return quote(strings.Join(a.Values(), "; "))
	}
	return quoteIfNeeded(a.String())
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
