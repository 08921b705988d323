// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/meai-survey/analytics"
)

// NewAnalyticsCommand creates the analytics command.
func NewAnalyticsCommand(rootOpts *RootOptions) *cobra.Command {
	var filter analytics.Filter

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Print the analytics report",
		Long: `Compute the analytics report over stored submissions.

Filters match the admin API: --start and --end are inclusive UTC dates
(YYYY-MM-DD); --age-group and --place match demographic answers exactly.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalytics(cmd, rootOpts, filter)
		},
	}

	cmd.Flags().StringVar(&filter.StartDate, "start", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "end", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.AgeGroup, "age-group", "", "only this age group")
	cmd.Flags().StringVar(&filter.PlaceOfLiving, "place", "", "only this place of living")

	return cmd
}

func runAnalytics(cmd *cobra.Command, opts *RootOptions, filter analytics.Filter) error {
	if err := filter.Validate(); err != nil {
		return err
	}

	st, cat, closeFn, err := openStore(opts)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := analytics.NewService(st, cat).Report(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeReportText(cmd.OutOrStdout(), report)
}

func writeReportText(w io.Writer, r *analytics.Report) error {
	s := r.Summary
	fmt.Fprintf(w, "Submissions:           %s\n", humanize.Comma(int64(s.TotalSubmissions)))
	fmt.Fprintf(w, "Average completion:    %ss\n", humanize.Comma(int64(s.AverageCompletionTime)))
	fmt.Fprintf(w, "Required answered:     %s%%\n", s.RequiredCompletionRate)

	writeCounts(w, "Age groups", s.AgeGroupCounts, s.TotalSubmissions)
	writeCounts(w, "Places of living", s.PlaceOfLivingCounts, s.TotalSubmissions)

	for _, d := range r.QuestionDistributions {
		if d.TotalAnswers == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%s answers)\n", d.QuestionText, humanize.Comma(int64(d.TotalAnswers)))
		d.Distribution.Each(func(key string, share analytics.AnswerShare) {
			fmt.Fprintf(w, "  %-24s %8s  %5s%%\n", key, humanize.Comma(int64(share.Count)), share.Percentage)
		})
	}
	return nil
}

func writeCounts(w io.Writer, title string, c *analytics.Counts, total int) {
	if c.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	c.Each(func(key string, n int) {
		fmt.Fprintf(w, "  %-24s %8s  %5s%%\n", key, humanize.Comma(int64(n)), analytics.PercentOf(n, total))
	})
}
