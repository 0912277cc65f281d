package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hurou927/erm-core/internal/graph"
	"github.com/hurou927/erm-core/internal/loader"
	"github.com/hurou927/erm-core/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch [diagram]",
	Short: "Reload a diagram whenever its file changes",
	Long:  `Loads the diagram, then reloads it on every write to the file and prints the analysis of each installed version. Stops on SIGINT or SIGTERM.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := diagramArg(args)
		if err != nil {
			return err
		}
		if path, err = filepath.Abs(path); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := store.New(store.WithLogger(logger))
		unsubscribe := s.Subscribe(func(snap store.Snapshot) {
			if !snap.Loaded {
				return
			}
			fmt.Fprintf(os.Stdout, "--- %s (generation %d) ---\n", snap.Source, snap.Generation)
			g := graph.Build(snap.Tables, snap.Relationships, snap.ColumnGroups)
			if err := graph.WriteText(os.Stdout, g); err != nil {
				logger.Error("writing analysis", "error", err)
			}
		})
		defer unsubscribe()

		if err := s.Load(ctx, loader.FileSource{}, path); err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer watcher.Close()

		// Editors often replace the file, so the directory is watched.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}

		return watchLoop(ctx, watcher, s, path)
	},
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, s *store.Store, path string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := s.Load(ctx, loader.FileSource{}, path); err != nil && !errors.Is(err, store.ErrStaleLoad) {
				logger.Error("reload failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
