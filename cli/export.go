// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/meai-survey/analytics"
	"github.com/danielhkuo/meai-survey/export"
)

type exportOptions struct {
	As     string
	Output string
	filter analytics.Filter
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export raw submissions as CSV or JSON",
		Long: `Write every stored submission (optionally filtered) as CSV or JSON.

The CSV layout is the one served by the admin API. Output goes to stdout
unless -o is given; a one-line summary is printed to stderr.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "csv", "export format (csv|json)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&opts.filter.StartDate, "start", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.filter.EndDate, "end", "", "last day to include (YYYY-MM-DD)")

	return cmd
}

func runExport(cmd *cobra.Command, rootOpts *RootOptions, opts *exportOptions) error {
	if opts.As != "csv" && opts.As != "json" {
		return fmt.Errorf("invalid export format %q: must be csv or json", opts.As)
	}
	if err := opts.filter.Validate(); err != nil {
		return err
	}

	st, cat, closeFn, err := openStore(rootOpts)
	if err != nil {
		return err
	}
	defer closeFn()

	subs, err := analytics.NewService(st, cat).Submissions(cmd.Context(), opts.filter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if opts.As == "csv" {
		err = export.WriteCSV(&buf, cat, subs)
	} else {
		err = export.WriteJSON(&buf, subs)
	}
	if err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}

	dest := "stdout"
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.Output, err)
		}
		dest = opts.Output
	} else if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "exported %s submissions (%s) to %s\n",
		humanize.Comma(int64(len(subs))), humanize.Bytes(uint64(buf.Len())), dest)
	return nil
}
