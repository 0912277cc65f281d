package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/erm-core/internal/config"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "erm-core",
	Short: "Load, analyze and edit ER diagrams",
	Long: `erm-core loads an ER diagram document (JSON or YAML), normalizes it into
tables, relationships, column groups and virtual diagrams, and runs analyses
and edits against it. Diagrams can also be introspected from PostgreSQL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath == "" {
			cfg, err = config.Default()
		} else {
			cfg, err = config.Load(cfgPath)
		}
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// diagramArg returns the diagram path from args or the config.
func diagramArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Diagram != "" {
		return cfg.Diagram, nil
	}
	return "", fmt.Errorf("no diagram given: pass a path or set diagram in the config")
}
