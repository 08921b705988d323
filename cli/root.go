// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/cliparse"
	"github.com/danielhkuo/meai-survey/db"
	"github.com/danielhkuo/meai-survey/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format      string // "json" | "text"
	DBType      string
	DBURL       string
	CatalogPath string
	EnvFile     string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for surveyctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "surveyctl",
		Short: "Operator tool for the MeAi survey store",
		Long:  "Read analytics, export submissions and inspect the question catalog without going through the HTTP API.",
		// main prints the error once
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if err := cliparse.LoadEnvFile(opts.EnvFile); err != nil {
				return err
			}
			applyEnv(cmd, "db-type", &opts.DBType, "DATABASE_TYPE")
			applyEnv(cmd, "db-url", &opts.DBURL, "DATABASE_URL")
			applyEnv(cmd, "catalog", &opts.CatalogPath, "CATALOG_PATH")
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBType, "db-type", cliparse.DatabaseSQLite, "database type (sqlite|postgres)")
	cmd.PersistentFlags().StringVar(&opts.DBURL, "db-url", "", "database URL or SQLite file path")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "question catalog YAML file (built-in if empty)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env", cliparse.DefaultEnvFile, "dotenv file to load")

	// Add subcommands
	cmd.AddCommand(NewAnalyticsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

// applyEnv fills an unset flag from the environment.
func applyEnv(cmd *cobra.Command, name string, dst *string, envKey string) {
	if f := cmd.Flag(name); f != nil && f.Changed {
		return
	}
	if v := os.Getenv(envKey); v != "" {
		*dst = v
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore loads the catalog and opens the configured store. The returned
// close function is always safe to call.
func openStore(opts *RootOptions) (store.Store, *catalog.Catalog, func() error, error) {
	noop := func() error { return nil }

	cat, err := catalog.FromPath(opts.CatalogPath)
	if err != nil {
		return nil, nil, noop, err
	}

	if opts.DBType == cliparse.DatabaseMemory {
		return nil, nil, noop, fmt.Errorf("database type %q holds no data outside the server", opts.DBType)
	}
	if opts.DBURL == "" {
		return nil, nil, noop, fmt.Errorf("--db-url (or DATABASE_URL) is required")
	}

	st, closeFn, err := db.OpenStore(cliparse.Config{
		DatabaseType: opts.DBType,
		DatabaseURL:  opts.DBURL,
	})
	if err != nil {
		return nil, nil, noop, err
	}
	return st, cat, closeFn, nil
}
