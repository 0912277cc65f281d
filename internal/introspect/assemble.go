package introspect

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/hurou927/erm-core/internal/reference"
	"github.com/hurou927/erm-core/internal/schema"
	"github.com/hurou927/erm-core/internal/wire"
)

// Layout of introspected tables on the canvas.
const (
	gridColumns  = 4
	gridSpacingX = 300
	gridSpacingY = 260
	gridMargin   = 50
	tableWidth   = 220
	headerHeight = 40
	rowHeight    = 20
)

var defaultColor = schema.Color{R: 128, G: 128, B: 192}

var typeArgs = regexp.MustCompile(`\((\d+)(?:\s*,\s*(\d+))?\)`)

type tableKey struct{ schema, table string }

type key struct {
	name    string
	primary bool
	columns []string
}

type foreignKey struct {
	name          string
	child, parent tableKey
	childCols     []string
	parentCols    []string
	onDelete      string
	onUpdate      string
}

// Assemble turns catalog rows into a diagram. Tables keep the order in
// which their columns appear in rows.Columns. Table names are bare; when the
// same name exists in several schemas, later ones are qualified as
// "<schema>_<table>".
func Assemble(rows *Rows) *wire.Diagram {
	var order []tableKey
	tables := make(map[tableKey]*wire.Table)
	nullable := make(map[tableKey]map[string]bool)

	for _, r := range rows.Columns {
		k := tableKey{r.Schema, r.Table}
		tbl, ok := tables[k]
		if !ok {
			tbl = &wire.Table{
				LogicalName: r.Table,
				Description: r.TableComment,
				Color:       defaultColor,
			}
			tables[k] = tbl
			nullable[k] = make(map[string]bool)
			order = append(order, k)
		}
		tbl.Columns.Items = append(tbl.Columns.Items, wire.ColumnOf(column(r)))
		nullable[k][r.Column] = r.Nullable
	}

	names := physicalNames(order)
	for _, k := range order {
		tables[k].PhysicalName = names[k]
	}

	keys := groupKeys(rows.Keys)
	for _, k := range order {
		tbl := tables[k]
		for _, ck := range keys[k] {
			switch {
			case ck.primary:
				tbl.PrimaryKeyName = ck.name
				for _, c := range ck.columns {
					setFlag(tbl, c, func(nc *wire.NormalColumn) { nc.PrimaryKey = true })
				}
			case len(ck.columns) == 1:
				setFlag(tbl, ck.columns[0], func(nc *wire.NormalColumn) { nc.UniqueKey = true })
			default:
				ids := make([]wire.IndexColumn, len(ck.columns))
				for i, c := range ck.columns {
					ids[i] = wire.IndexColumn{ColumnID: reference.Column(tbl.PhysicalName, c)}
				}
				tbl.CompoundUniqueKeyList.CompoundUniqueKeys = append(tbl.CompoundUniqueKeyList.CompoundUniqueKeys,
					wire.CompoundUniqueKey{Name: ck.name, Columns: wire.IndexColumns{Columns: ids}})
			}
		}
	}

	for _, idx := range groupIndexes(rows.Indexes) {
		tbl, ok := tables[idx.table]
		if !ok {
			continue
		}
		for i := range idx.index.Columns.Columns {
			c := &idx.index.Columns.Columns[i]
			c.ColumnID = reference.Column(tbl.PhysicalName, c.ColumnID)
		}
		tbl.Indexes.Indexes = append(tbl.Indexes.Indexes, idx.index)
	}

	for _, fk := range groupForeignKeys(rows.ForeignKeys) {
		child, ok := tables[fk.child]
		if !ok {
			continue
		}
		parent, ok := tables[fk.parent]
		if !ok {
			continue
		}
		rel := relationship(fk, parent, child, keys[fk.parent], keys[fk.child], nullable[fk.child])
		child.Connections.Relationships = append(child.Connections.Relationships, rel)
		for i, c := range fk.childCols {
			ref := reference.Column(parent.PhysicalName, fk.parentCols[i])
			setFlag(child, c, func(nc *wire.NormalColumn) {
				if nc.ReferredColumn == "" {
					nc.ReferredColumn = ref
					nc.Relationship = fk.name
				}
			})
		}
	}

	d := &wire.Diagram{
		DiagramSettings: wire.DiagramSettings{Database: "PostgreSQL", ViewMode: int(schema.ViewPhysical)},
	}
	for i, k := range order {
		tbl := tables[k]
		tbl.X = gridMargin + (i%gridColumns)*gridSpacingX
		tbl.Y = gridMargin + (i/gridColumns)*gridSpacingY
		tbl.Width = tableWidth
		tbl.Height = headerHeight + rowHeight*len(tbl.Columns.Items)
		d.DiagramWalkers.Tables = append(d.DiagramWalkers.Tables, *tbl)
	}
	return d
}

func column(r ColumnRow) wire.NormalColumn {
	c := wire.NormalColumn{
		PhysicalName:  r.Column,
		LogicalName:   r.Column,
		Description:   r.Comment,
		ColumnType:    r.DataType,
		NotNull:       !r.Nullable,
		AutoIncrement: r.Identity || strings.HasPrefix(r.Default, "nextval("),
	}
	if !c.AutoIncrement {
		c.DefaultValue = r.Default
	}
	if m := typeArgs.FindStringSubmatch(r.DataType); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.Length = &n
		}
		if m[2] != "" {
			if n, err := strconv.Atoi(m[2]); err == nil {
				c.Decimal = &n
			}
		}
	}
	return c
}

// physicalNames assigns diagram names, qualifying names that repeat.
func physicalNames(order []tableKey) map[tableKey]string {
	names := make(map[tableKey]string, len(order))
	used := make(map[string]bool, len(order))
	for _, k := range order {
		name := k.table
		if used[name] {
			name = k.schema + "_" + k.table
		}
		used[name] = true
		names[k] = name
	}
	return names
}

func setFlag(tbl *wire.Table, columnName string, fn func(*wire.NormalColumn)) {
	for _, item := range tbl.Columns.Items {
		if !item.IsGroup() && item.Column.PhysicalName == columnName {
			fn(item.Column)
			return
		}
	}
}

func groupKeys(rows []KeyRow) map[tableKey][]*key {
	out := make(map[tableKey][]*key)
	for _, r := range rows {
		k := tableKey{r.Schema, r.Table}
		list := out[k]
		if n := len(list); n > 0 && list[n-1].name == r.Constraint {
			list[n-1].columns = append(list[n-1].columns, r.Column)
			continue
		}
		out[k] = append(list, &key{name: r.Constraint, primary: r.Primary, columns: []string{r.Column}})
	}
	return out
}

type tableIndex struct {
	table tableKey
	index wire.Index
}

// groupIndexes collects index rows; column ids hold bare names until the
// table's physical name is known.
func groupIndexes(rows []IndexRow) []*tableIndex {
	var out []*tableIndex
	for _, r := range rows {
		k := tableKey{r.Schema, r.Table}
		if n := len(out); n > 0 && out[n-1].table == k && out[n-1].index.Name == r.Index {
			cols := &out[n-1].index.Columns.Columns
			*cols = append(*cols, wire.IndexColumn{ColumnID: r.Column, Desc: r.Desc})
			continue
		}
		out = append(out, &tableIndex{
			table: k,
			index: wire.Index{
				Name:      r.Index,
				IndexType: strings.ToUpper(r.Method),
				NonUnique: !r.Unique,
				Columns:   wire.IndexColumns{Columns: []wire.IndexColumn{{ColumnID: r.Column, Desc: r.Desc}}},
			},
		})
	}
	return out
}

func groupForeignKeys(rows []ForeignKeyRow) []*foreignKey {
	var out []*foreignKey
	for _, r := range rows {
		child := tableKey{r.ChildSchema, r.ChildTable}
		if n := len(out); n > 0 && out[n-1].child == child && out[n-1].name == r.Name {
			out[n-1].childCols = append(out[n-1].childCols, r.ChildColumn)
			out[n-1].parentCols = append(out[n-1].parentCols, r.ParentColumn)
			continue
		}
		out = append(out, &foreignKey{
			name:       r.Name,
			child:      child,
			parent:     tableKey{r.ParentSchema, r.ParentTable},
			childCols:  []string{r.ChildColumn},
			parentCols: []string{r.ParentColumn},
			onDelete:   r.OnDelete,
			onUpdate:   r.OnUpdate,
		})
	}
	return out
}

func relationship(fk *foreignKey, parent, child *wire.Table, parentKeys, childKeys []*key, childNullable map[string]bool) wire.Relationship {
	rel := wire.Relationship{
		Name:              fk.name,
		Source:            reference.Table(parent.PhysicalName),
		Target:            reference.Table(child.PhysicalName),
		ParentCardinality: string(schema.CardinalityOne),
		ChildCardinality:  string(schema.CardinalityZeroN),
		OnDeleteAction:    string(action(fk.onDelete)),
		OnUpdateAction:    string(action(fk.onUpdate)),
	}
	for _, c := range fk.childCols {
		rel.FKColumns.FKColumn = append(rel.FKColumns.FKColumn, wire.FKColumn{FKColumnName: c})
		if childNullable[c] {
			rel.ParentCardinality = string(schema.CardinalityZeroOne)
		}
	}
	if findKey(childKeys, fk.childCols) != nil {
		rel.ChildCardinality = string(schema.CardinalityZeroOne)
	}

	switch k := findKey(parentKeys, fk.parentCols); {
	case k != nil && k.primary:
		rel.ReferenceForPK = true
	case len(fk.parentCols) == 1:
		rel.ReferredSimpleUniqueColumn = fk.parentCols[0]
	case k != nil:
		rel.ReferredCompoundUniqueKey = k.name
	}
	return rel
}

// sortedCopy returns a sorted copy of s, leaving s untouched.
func sortedCopy(s []string) []string {
	c := slices.Clone(s)
	slices.Sort(c)
	return c
}

// findKey returns the key whose columns are exactly cols, in any order.
func findKey(keys []*key, cols []string) *key {
	want := sortedCopy(cols)
	for _, k := range keys {
		if slices.Equal(sortedCopy(k.columns), want) {
			return k
		}
	}
	return nil
}

func action(code string) schema.ReferenceOperation {
	switch code {
	case "r":
		return schema.OpRestrict
	case "c":
		return schema.OpCascade
	case "n":
		return schema.OpSetNull
	case "d":
		return schema.OpSetDefault
	default:
		return schema.OpNoAction
	}
}
