package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hurou927/erm-core/internal/loader"
	"github.com/hurou927/erm-core/internal/mapper"
)

// Load fetches the diagram id from src, normalizes it and installs it.
// Fetching and normalization run without holding the store lock. The result
// is installed only if no load started later has been installed meanwhile;
// otherwise ErrStaleLoad is returned. On any failure the current snapshot is
// left as it was.
func (s *Store) Load(ctx context.Context, src loader.Source, id string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	log := s.logger.With("load_id", uuid.NewString(), "diagram", id, "generation", gen)
	log.Debug("loading diagram")

	raw, err := src.Load(ctx, id)
	if err != nil {
		log.Warn("loading diagram failed", "error", err)
		return fmt.Errorf("loading diagram %s: %w", id, err)
	}

	d, err := mapper.MapDiagram(raw)
	if err != nil {
		log.Warn("normalizing diagram failed", "error", err)
		return fmt.Errorf("normalizing diagram %s: %w", id, err)
	}

	if err := s.install(d, id, gen); err != nil {
		log.Warn("discarding stale load", "error", err)
		return err
	}
	log.Info("diagram loaded", "tables", len(d.Tables), "relationships", len(d.Relationships))
	return nil
}
