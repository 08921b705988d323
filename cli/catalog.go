// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/models"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "catalog",
		Short:        "Validate and print the question catalog",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.FromPath(rootOpts.CatalogPath)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(models.FormResponse{
					Title:       cat.Title(),
					Description: cat.Description(),
					Questions:   cat.List(),
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n%s\n\n", cat.Title(), cat.Description())
			for i, q := range cat.List() {
				fmt.Fprintf(w, "%2d. %-22s %-16s %s\n", i+1, q.ID, q.Type, questionFlags(q))
				fmt.Fprintf(w, "    %s\n", q.Text)
			}
			return nil
		},
	}
}

func questionFlags(q models.Question) string {
	var flags []string
	if q.Required {
		flags = append(flags, "required")
	}
	if q.Locked {
		flags = append(flags, "locked")
	}
	if q.Conditional != nil {
		flags = append(flags, "when "+q.Conditional.DependsOn+" in ["+strings.Join(q.Conditional.ShowWhen, ", ")+"]")
	}
	return strings.Join(flags, ", ")
}
