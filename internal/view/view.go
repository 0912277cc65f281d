// Package view derives what a virtual diagram shows from the full model.
package view

import "github.com/hurou927/erm-core/internal/schema"

// Find returns the virtual diagram with the given name, or nil.
func Find(vdiagrams []*schema.VirtualDiagram, name string) *schema.VirtualDiagram {
	for _, vd := range vdiagrams {
		if vd.VDiagramName == name {
			return vd
		}
	}
	return nil
}

// VisibleTables returns the tables placed on the named virtual diagram, in
// placement order. Each result is a copy of the real table with the placement
// coordinates applied. Placements whose table no longer exists are dropped.
// An unknown diagram name yields an empty list.
func VisibleTables(tables []*schema.Table, vdiagrams []*schema.VirtualDiagram, name string) []*schema.Table {
	vd := Find(vdiagrams, name)
	if vd == nil {
		return []*schema.Table{}
	}

	byID := make(map[string]*schema.Table, len(tables))
	for _, t := range tables {
		if _, ok := byID[t.ID()]; !ok {
			byID[t.ID()] = t
		}
	}

	visible := make([]*schema.Table, 0, len(vd.VTables))
	for _, vt := range vd.VTables {
		t, ok := byID[vt.TableID]
		if !ok {
			continue
		}
		projected := t.Clone()
		projected.X = vt.X
		projected.Y = vt.Y
		visible = append(visible, projected)
	}
	return visible
}

// VisibleRelationships keeps the relationships whose source and target are
// both among the visible tables.
func VisibleRelationships(relationships []*schema.Relationship, visible []*schema.Table) []*schema.Relationship {
	ids := make(map[string]struct{}, len(visible))
	for _, t := range visible {
		ids[t.ID()] = struct{}{}
	}

	out := make([]*schema.Relationship, 0, len(relationships))
	for _, r := range relationships {
		_, src := ids[r.Source]
		_, dst := ids[r.Target]
		if src && dst {
			out = append(out, r)
		}
	}
	return out
}
