package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/erm-core/internal/db"
	"github.com/hurou927/erm-core/internal/introspect"
	"github.com/hurou927/erm-core/internal/loader"
)

var (
	introspectOutput string
	introspectFormat string
)

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Build a diagram document from a PostgreSQL schema",
	Long:  `Connects to the database, reads tables, keys, indexes and foreign keys of the configured schemas, and writes them as a diagram document.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.ValidateForIntrospect(); err != nil {
			return err
		}

		outPath := introspectOutput
		if outPath == "" {
			outPath = cfg.Output
		}
		format := loader.Format(introspectFormat)
		if format == "" {
			format = loader.FormatJSON
			if outPath != "" && outPath != "-" {
				var err error
				if format, err = loader.FormatOf(outPath); err != nil {
					return err
				}
			}
		}

		pool, err := db.NewPool(ctx, &cfg.Connection)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		d, err := introspect.Introspect(ctx, pool, cfg.Schemas)
		if err != nil {
			return fmt.Errorf("introspecting schema: %w", err)
		}
		logger.Info("schema introspected", "schemas", cfg.Schemas, "tables", len(d.DiagramWalkers.Tables))

		w, err := openOutput(outPath)
		if err != nil {
			return err
		}
		defer w.Close()

		if err := loader.Encode(w, d, format); err != nil {
			return fmt.Errorf("writing diagram: %w", err)
		}
		if outPath != "" && outPath != "-" {
			fmt.Fprintf(os.Stderr, "Output written to: %s\n", outPath)
		}
		return nil
	},
}

func init() {
	introspectCmd.Flags().StringVar(&introspectOutput, "output", "", "output file path (overrides config)")
	introspectCmd.Flags().StringVar(&introspectFormat, "format", "", "document format: json or yaml (default from the output extension)")
	rootCmd.AddCommand(introspectCmd)
}
