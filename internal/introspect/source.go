package introspect

import (
	"context"
	"strings"

	"github.com/hurou927/erm-core/internal/wire"
)

// Source loads diagrams from a database. The id passed to Load is a
// comma-separated schema list; an empty id uses Schemas.
type Source struct {
	DB      Querier
	Schemas []string
}

// Load introspects the schemas named by id.
func (s Source) Load(ctx context.Context, id string) (*wire.Diagram, error) {
	schemas := s.Schemas
	if id != "" {
		schemas = nil
		for _, name := range strings.Split(id, ",") {
			if name = strings.TrimSpace(name); name != "" {
				schemas = append(schemas, name)
			}
		}
	}
	return Introspect(ctx, s.DB, schemas)
}
