package schema

import (
	"slices"

	"github.com/hurou927/erm-core/internal/reference"
)

// Color is an RGB triple used for table and diagram styling.
type Color struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

// Column represents a canonical table column.
type Column struct {
	PhysicalName  string
	LogicalName   string
	Description   string
	Type          *ColumnType // nil when the type could not be resolved
	Length        *int
	Decimal       *int
	EnumArgs      string
	Unsigned      bool
	NotNull       bool
	Unique        bool
	PrimaryKey    bool
	AutoIncrement bool
	DefaultValue  string

	// ReferredColumn is the reference of the column this one inherits its type from.
	ReferredColumn string
}

// ItemKind discriminates the entries of a table's column list.
type ItemKind int

const (
	ItemColumn   ItemKind = iota // inline column
	ItemGroupRef                 // name of a shared column group
)

// ColumnItem is either an inline column or a reference to a column group.
type ColumnItem struct {
	Kind      ItemKind
	Column    *Column
	GroupName string
}

// ColumnItemOf wraps an inline column.
func ColumnItemOf(c *Column) ColumnItem {
	return ColumnItem{Kind: ItemColumn, Column: c}
}

// GroupRefItem references a column group by name.
func GroupRefItem(name string) ColumnItem {
	return ColumnItem{Kind: ItemGroupRef, GroupName: name}
}

// IsGroupRef reports whether the item names a column group.
func (i ColumnItem) IsGroupRef() bool {
	return i.Kind == ItemGroupRef
}

// ColumnGroup is a reusable, globally named bundle of columns.
type ColumnGroup struct {
	ColumnGroupName string
	Columns         []*Column
}

// IndexColumn is one key column of an index. ColumnID is a reference string.
type IndexColumn struct {
	ColumnID string
	Desc     bool
}

// Index is a table index; the order of Columns is the key order.
type Index struct {
	Name        string
	IndexType   string
	Description string
	FullText    bool
	NonUnique   bool
	Columns     []IndexColumn
}

// CompoundUniqueKey is a named multi-column unique constraint. Columns holds
// bare column names.
type CompoundUniqueKey struct {
	Name    string
	Columns []string
}

// Table represents a canonical diagram table. PhysicalName is its identity.
type Table struct {
	PhysicalName    string
	LogicalName     string
	Description     string
	X               int
	Y               int
	Width           int
	Height          int
	Color           Color
	TableConstraint string
	PrimaryKeyName  string
	Option          string
	Columns         []ColumnItem

	// Indexes and CompoundUniqueKeys are nil when the source had none.
	Indexes            []Index
	CompoundUniqueKeys []CompoundUniqueKey
}

// ID returns the canonical reference of the table, e.g. "table.users".
func (t *Table) ID() string {
	return reference.Table(t.PhysicalName)
}

// Column returns the inline column with the given physical name, or nil.
func (t *Table) Column(name string) *Column {
	for _, item := range t.Columns {
		if item.Kind == ItemColumn && item.Column != nil && item.Column.PhysicalName == name {
			return item.Column
		}
	}
	return nil
}

// PrimaryKeyColumns returns the inline columns flagged as primary key, in column order.
func (t *Table) PrimaryKeyColumns() []*Column {
	var cols []*Column
	for _, item := range t.Columns {
		if item.Kind == ItemColumn && item.Column != nil && item.Column.PrimaryKey {
			cols = append(cols, item.Column)
		}
	}
	return cols
}

// CompoundUniqueKey returns the compound unique key with the given name, or nil.
func (t *Table) CompoundUniqueKey(name string) *CompoundUniqueKey {
	for i := range t.CompoundUniqueKeys {
		if t.CompoundUniqueKeys[i].Name == name {
			return &t.CompoundUniqueKeys[i]
		}
	}
	return nil
}

// ExpandColumns resolves column group references against groups and returns
// the flat column list. Unknown group names are skipped.
func (t *Table) ExpandColumns(groups []*ColumnGroup) []*Column {
	var cols []*Column
	for _, item := range t.Columns {
		switch item.Kind {
		case ItemColumn:
			if item.Column != nil {
				cols = append(cols, item.Column)
			}
		case ItemGroupRef:
			i := slices.IndexFunc(groups, func(g *ColumnGroup) bool {
				return g.ColumnGroupName == item.GroupName
			})
			if i >= 0 {
				cols = append(cols, groups[i].Columns...)
			}
		}
	}
	return cols
}

// Clone returns a shallow copy of the table. Slices are shared.
func (t *Table) Clone() *Table {
	c := *t
	return &c
}

// FindTable returns the table with the given physical name, or nil.
func FindTable(tables []*Table, physicalName string) *Table {
	for _, t := range tables {
		if t.PhysicalName == physicalName {
			return t
		}
	}
	return nil
}
