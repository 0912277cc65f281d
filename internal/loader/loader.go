// Package loader fetches raw diagram documents from outside the core.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hurou927/erm-core/internal/wire"
)

// ErrUnsupportedFormat is returned for a file extension no decoder handles.
var ErrUnsupportedFormat = errors.New("loader: unsupported diagram format")

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Source fetches the raw diagram identified by id.
type Source interface {
	Load(ctx context.Context, id string) (*wire.Diagram, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, id string) (*wire.Diagram, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context, id string) (*wire.Diagram, error) {
	return f(ctx, id)
}

// FileSource reads diagrams from the filesystem. Relative ids are resolved
// against Dir when it is set.
type FileSource struct {
	Dir string
}

// Load reads and decodes the file named by id. The format is chosen by
// extension: .json, .yaml or .yml.
func (s FileSource) Load(ctx context.Context, id string) (*wire.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := id
	if s.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, path)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diagram file: %w", err)
	}

	d, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("parsing diagram file %s: %w", path, err)
	}
	return d, nil
}

// FormatOf maps a file name to its format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode reads one diagram document in the given format.
func Decode(r io.Reader, format Format) (*wire.Diagram, error) {
	var d wire.Diagram
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &d, nil
}

// Encode writes d in the given format.
func Encode(w io.Writer, d *wire.Diagram, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
