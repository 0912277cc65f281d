// Package integrity keeps relationship references consistent when tables and
// relationships are renamed.
package integrity

import (
	"slices"

	"github.com/hurou927/erm-core/internal/schema"
)

// TableUpdate is the result of replacing a table.
type TableUpdate struct {
	Tables        []*schema.Table
	Relationships []*schema.Relationship
}

// UpdateTableAndRef replaces the table whose physical name is previous with
// next, keeping its position. When the physical name changed, every
// relationship end addressing the old name is rewritten; relationships that do
// not mention it are returned as the same pointers. When the name is
// unchanged the input relationships slice itself is returned.
//
// A missing table yields a *NotFoundError and no change.
func UpdateTableAndRef(tables []*schema.Table, relationships []*schema.Relationship, next *schema.Table, previous string) (TableUpdate, error) {
	i := slices.IndexFunc(tables, func(t *schema.Table) bool {
		return t.PhysicalName == previous
	})
	if i < 0 {
		return TableUpdate{}, newNotFound("table", previous)
	}

	nextTables := slices.Clone(tables)
	nextTables[i] = next

	if next.PhysicalName == previous {
		return TableUpdate{Tables: nextTables, Relationships: relationships}, nil
	}

	nextRelationships := make([]*schema.Relationship, len(relationships))
	for j, r := range relationships {
		nextRelationships[j] = RenameRelationshipRefs(r, previous, next.PhysicalName)
	}
	return TableUpdate{Tables: nextTables, Relationships: nextRelationships}, nil
}
