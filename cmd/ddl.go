package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/erm-core/internal/output"
)

var ddlOutput string

var ddlCmd = &cobra.Command{
	Use:   "ddl [diagram]",
	Short: "Render a diagram as PostgreSQL DDL",
	Long:  `Loads the diagram and writes CREATE TABLE, CREATE INDEX and foreign key statements with parent tables first.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := diagramArg(args)
		if err != nil {
			return err
		}
		s, err := loadStore(cmd.Context(), path)
		if err != nil {
			return err
		}

		outPath := ddlOutput
		if outPath == "" {
			outPath = cfg.Output
		}
		w, err := openOutput(outPath)
		if err != nil {
			return err
		}
		defer w.Close()

		snap := s.Snapshot()
		if err := output.WriteDiagram(w, snap.Tables, snap.Relationships, snap.ColumnGroups); err != nil {
			return fmt.Errorf("writing ddl: %w", err)
		}
		if outPath != "" && outPath != "-" {
			fmt.Fprintf(os.Stderr, "Output written to: %s\n", outPath)
		}
		return nil
	},
}

func init() {
	ddlCmd.Flags().StringVar(&ddlOutput, "output", "", "output file path (overrides config)")
	rootCmd.AddCommand(ddlCmd)
}
