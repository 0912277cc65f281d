package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hurou927/erm-core/internal/loader"
	"github.com/hurou927/erm-core/internal/store"
)

// loadStore reads the diagram at path into a new store.
func loadStore(ctx context.Context, path string) (*store.Store, error) {
	s := store.New(store.WithLogger(logger))
	if err := s.Load(ctx, loader.FileSource{}, path); err != nil {
		return nil, err
	}
	return s, nil
}

// openOutput returns stdout for "" or "-", otherwise a created file.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
