package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/erm-core/internal/config"
	"github.com/hurou927/erm-core/internal/graph"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [diagram]",
	Short: "Analyze the relationship graph of a diagram",
	Long:  `Loads the diagram, builds the relationship graph and outputs it in the specified format.`,
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
		snap := s.Snapshot()
		g := graph.Build(snap.Tables, snap.Relationships, snap.ColumnGroups)

		format := analyzeFormat
		if format == "" {
			format = cfg.Format
		}
		switch format {
		case config.FormatMermaid:
			return graph.WriteMermaid(os.Stdout, g)
		case config.FormatText:
			return graph.WriteText(os.Stdout, g)
		default:
			return fmt.Errorf("unknown format: %s (supported: mermaid, text)", format)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "output format: mermaid or text (overrides config)")
	rootCmd.AddCommand(analyzeCmd)
}
