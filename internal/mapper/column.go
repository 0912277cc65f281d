// Package mapper normalizes the wire diagram into the canonical schema model.
package mapper

import (
	"github.com/hurou927/erm-core/internal/reference"
	"github.com/hurou927/erm-core/internal/schema"
	"github.com/hurou927/erm-core/internal/wire"
)

// MapColumn converts a raw column. The type is taken from the explicit type
// string or, failing that, inherited from the column its referredColumn points at.
func MapColumn(raw wire.NormalColumn, tables []wire.Table) *schema.Column {
	return &schema.Column{
		PhysicalName:   raw.PhysicalName,
		LogicalName:    raw.LogicalName,
		Description:    raw.Description,
		Type:           resolveType(raw, tables, nil),
		Length:         raw.Length,
		Decimal:        raw.Decimal,
		EnumArgs:       raw.Args,
		Unsigned:       raw.Unsigned,
		NotNull:        raw.NotNull,
		Unique:         raw.UniqueKey,
		PrimaryKey:     raw.PrimaryKey,
		AutoIncrement:  raw.AutoIncrement,
		DefaultValue:   raw.DefaultValue,
		ReferredColumn: raw.ReferredColumn,
	}
}

// resolveType follows referredColumn links until a declared type is found.
// A missing table, column or type, or a cycle, yields nil.
func resolveType(raw wire.NormalColumn, tables []wire.Table, seen map[string]bool) *schema.ColumnType {
	if raw.ColumnType != "" {
		return schema.ParseColumnType(raw.ColumnType)
	}
	if raw.ReferredColumn == "" {
		return nil
	}
	ref := reference.Parse(raw.ReferredColumn)
	if ref.TableName == "" || ref.ColumnName == "" {
		return nil
	}
	key := ref.TableName + "." + ref.ColumnName
	if seen[key] {
		return nil
	}
	target := findRawColumn(tables, ref.TableName, ref.ColumnName)
	if target == nil {
		return nil
	}
	if seen == nil {
		seen = make(map[string]bool)
	}
	seen[key] = true
	return resolveType(*target, tables, seen)
}

// findRawColumn looks up an inline column by table and physical name,
// skipping column group slots.
func findRawColumn(tables []wire.Table, tableName, columnName string) *wire.NormalColumn {
	tbl := findRawTable(tables, tableName)
	if tbl == nil {
		return nil
	}
	for _, item := range tbl.Columns.Items {
		if item.IsGroup() {
			continue
		}
		if item.Column.PhysicalName == columnName {
			return item.Column
		}
	}
	return nil
}

func findRawTable(tables []wire.Table, physicalName string) *wire.Table {
	for i := range tables {
		if tables[i].PhysicalName == physicalName {
			return &tables[i]
		}
	}
	return nil
}

// MapColumnGroups converts the raw column groups. Group columns always carry
// an explicit type.
func MapColumnGroups(raw []wire.ColumnGroup) []*schema.ColumnGroup {
	groups := make([]*schema.ColumnGroup, 0, len(raw))
	for _, g := range raw {
		cols := make([]*schema.Column, 0, len(g.Columns.NormalColumns))
		for _, c := range g.Columns.NormalColumns {
			cols = append(cols, MapColumn(c, nil))
		}
		groups = append(groups, &schema.ColumnGroup{
			ColumnGroupName: g.ColumnGroupName,
			Columns:         cols,
		})
	}
	return groups
}
