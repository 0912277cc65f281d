package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/erm-core/internal/schema"
	"github.com/hurou927/erm-core/internal/store"
)

var (
	renameFrom string
	renameTo   string
)

var renameTableCmd = &cobra.Command{
	Use:   "rename-table [diagram]",
	Short: "Rename a table and the relationship references to it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadForRename(cmd, args)
		if err != nil {
			return err
		}

		t := schema.FindTable(s.Snapshot().Tables, renameFrom)
		if t == nil {
			return fmt.Errorf("table %q not found", renameFrom)
		}
		next := t.Clone()
		next.PhysicalName = renameTo
		if err := s.UpdateTable(next, renameFrom); err != nil {
			return err
		}
		return writeRelationships(os.Stdout, s.Snapshot())
	},
}

var renameRelationshipCmd = &cobra.Command{
	Use:   "rename-relationship [diagram]",
	Short: "Rename a relationship",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadForRename(cmd, args)
		if err != nil {
			return err
		}

		rel := schema.FindRelationship(s.Snapshot().Relationships, renameFrom)
		if rel == nil {
			return fmt.Errorf("relationship %q not found", renameFrom)
		}
		next := rel.Clone()
		next.Name = renameTo
		if err := s.UpdateRelationship(next, renameFrom); err != nil {
			return err
		}
		return writeRelationships(os.Stdout, s.Snapshot())
	},
}

func loadForRename(cmd *cobra.Command, args []string) (*store.Store, error) {
	if renameFrom == "" || renameTo == "" {
		return nil, fmt.Errorf("--from and --to are required")
	}
	path, err := diagramArg(args)
	if err != nil {
		return nil, err
	}
	return loadStore(cmd.Context(), path)
}

// writeRelationships lists every relationship as "name: parent -> child".
func writeRelationships(w io.Writer, snap store.Snapshot) error {
	for _, rel := range snap.Relationships {
		if _, err := fmt.Fprintf(w, "%s: %s -> %s\n", rel.Name, rel.Source, rel.Target); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{renameTableCmd, renameRelationshipCmd} {
		c.Flags().StringVar(&renameFrom, "from", "", "current name")
		c.Flags().StringVar(&renameTo, "to", "", "new name")
		rootCmd.AddCommand(c)
	}
}
