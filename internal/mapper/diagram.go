package mapper

import (
	"fmt"

	"github.com/hurou927/erm-core/internal/schema"
	"github.com/hurou927/erm-core/internal/wire"
)

// Diagram is the fully normalized diagram ready to be installed in a store.
type Diagram struct {
	Settings      schema.Settings
	Tables        []*schema.Table
	Relationships []*schema.Relationship
	ColumnGroups  []*schema.ColumnGroup
	VDiagrams     []*schema.VirtualDiagram
}

// MapSettings converts the raw settings.
func MapSettings(raw wire.DiagramSettings) schema.Settings {
	return schema.Settings{
		Database: raw.Database,
		ViewMode: schema.ViewMode(raw.ViewMode),
	}
}

// MapVDiagrams converts the raw virtual diagrams. An absent vtable list maps
// to an empty slice.
func MapVDiagrams(raw []wire.VDiagram) []*schema.VirtualDiagram {
	out := make([]*schema.VirtualDiagram, 0, len(raw))
	for _, vd := range raw {
		vtables := make([]schema.VirtualTable, 0, len(vd.VTables.VTables))
		for _, vt := range vd.VTables.VTables {
			vtables = append(vtables, schema.VirtualTable{
				TableID:  vt.TableID,
				X:        vt.X,
				Y:        vt.Y,
				FontName: vt.FontName,
				FontSize: vt.FontSize,
			})
		}
		out = append(out, &schema.VirtualDiagram{
			VDiagramName: vd.VDiagramName,
			Color:        vd.Color,
			VTables:      vtables,
			WalkerNotes:  vd.WalkerNotes,
			WalkerGroups: vd.WalkerGroups,
		})
	}
	return out
}

// MapDiagram runs the whole load-time normalization.
func MapDiagram(d *wire.Diagram) (*Diagram, error) {
	tables := d.DiagramWalkers.Tables

	relationships, err := MapRelationships(tables)
	if err != nil {
		return nil, fmt.Errorf("mapping relationships: %w", err)
	}

	var groups []wire.ColumnGroup
	if d.ColumnGroups != nil {
		groups = d.ColumnGroups.ColumnGroups
	}
	var vdiagrams []wire.VDiagram
	if d.VDiagrams != nil {
		vdiagrams = d.VDiagrams.VDiagrams
	}

	return &Diagram{
		Settings:      MapSettings(d.DiagramSettings),
		Tables:        MapTables(tables),
		Relationships: relationships,
		ColumnGroups:  MapColumnGroups(groups),
		VDiagrams:     MapVDiagrams(vdiagrams),
	}, nil
}
