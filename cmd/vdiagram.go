package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/erm-core/internal/view"
)

var vdiagramName string

var vdiagramCmd = &cobra.Command{
	Use:   "vdiagram [diagram]",
	Short: "List the tables and relationships shown on a virtual diagram",
	Long:  `Without --name, lists the virtual diagrams of the document. With --name, lists the placed tables with their coordinates and the relationships between them.`,
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

		if vdiagramName == "" {
			for _, vd := range snap.VDiagrams {
				fmt.Fprintf(os.Stdout, "%s (%d tables)\n", vd.VDiagramName, len(vd.VTables))
			}
			return nil
		}

		if view.Find(snap.VDiagrams, vdiagramName) == nil {
			return fmt.Errorf("virtual diagram %q not found", vdiagramName)
		}
		tables := view.VisibleTables(snap.Tables, snap.VDiagrams, vdiagramName)
		fmt.Fprintf(os.Stdout, "=== %s ===\n", vdiagramName)
		for _, t := range tables {
			fmt.Fprintf(os.Stdout, "  %s (%d, %d)\n", t.PhysicalName, t.X, t.Y)
		}
		rels := view.VisibleRelationships(snap.Relationships, tables)
		if len(rels) > 0 {
			fmt.Fprintln(os.Stdout, "Relationships:")
			for _, rel := range rels {
				fmt.Fprintf(os.Stdout, "  %s: %s -> %s\n", rel.Name, rel.Source, rel.Target)
			}
		}
		return nil
	},
}

func init() {
	vdiagramCmd.Flags().StringVar(&vdiagramName, "name", "", "virtual diagram name")
	rootCmd.AddCommand(vdiagramCmd)
}
