package mapper

import (
	"github.com/hurou927/erm-core/internal/reference"
	"github.com/hurou927/erm-core/internal/schema"
	"github.com/hurou927/erm-core/internal/wire"
)

// MapTables converts every raw table, resolving inherited column types
// against the full table list.
func MapTables(tables []wire.Table) []*schema.Table {
	out := make([]*schema.Table, 0, len(tables))
	for i := range tables {
		out = append(out, MapTable(tables[i], tables))
	}
	return out
}

// MapTable converts one raw table.
func MapTable(raw wire.Table, tables []wire.Table) *schema.Table {
	t := &schema.Table{
		PhysicalName:    raw.PhysicalName,
		LogicalName:     raw.LogicalName,
		Description:     raw.Description,
		X:               raw.X,
		Y:               raw.Y,
		Width:           raw.Width,
		Height:          raw.Height,
		Color:           raw.Color,
		TableConstraint: raw.TableConstraint,
		PrimaryKeyName:  raw.PrimaryKeyName,
		Option:          raw.Option,
	}

	if raw.Columns.Items != nil {
		t.Columns = make([]schema.ColumnItem, 0, len(raw.Columns.Items))
		for _, item := range raw.Columns.Items {
			if item.IsGroup() {
				t.Columns = append(t.Columns, schema.GroupRefItem(item.GroupName))
				continue
			}
			t.Columns = append(t.Columns, schema.ColumnItemOf(MapColumn(*item.Column, tables)))
		}
	}

	if raw.Indexes.Indexes != nil {
		t.Indexes = make([]schema.Index, 0, len(raw.Indexes.Indexes))
		for _, idx := range raw.Indexes.Indexes {
			t.Indexes = append(t.Indexes, mapIndex(idx))
		}
	}

	if keys := raw.CompoundUniqueKeyList.CompoundUniqueKeys; keys != nil {
		t.CompoundUniqueKeys = make([]schema.CompoundUniqueKey, 0, len(keys))
		for _, k := range keys {
			t.CompoundUniqueKeys = append(t.CompoundUniqueKeys, mapCompoundUniqueKey(k))
		}
	}

	return t
}

func mapIndex(raw wire.Index) schema.Index {
	cols := make([]schema.IndexColumn, 0, len(raw.Columns.Columns))
	for _, c := range raw.Columns.Columns {
		cols = append(cols, schema.IndexColumn{ColumnID: c.ColumnID, Desc: c.Desc})
	}
	return schema.Index{
		Name:        raw.Name,
		IndexType:   raw.IndexType,
		Description: raw.Description,
		FullText:    raw.FullText,
		NonUnique:   raw.NonUnique,
		Columns:     cols,
	}
}

// mapCompoundUniqueKey reduces each member reference to its bare column name,
// or "" when the reference has no column segment.
func mapCompoundUniqueKey(raw wire.CompoundUniqueKey) schema.CompoundUniqueKey {
	cols := make([]string, 0, len(raw.Columns.Columns))
	for _, c := range raw.Columns.Columns {
		cols = append(cols, reference.Parse(c.ColumnID).ColumnName)
	}
	return schema.CompoundUniqueKey{Name: raw.Name, Columns: cols}
}
