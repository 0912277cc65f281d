package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnType(t *testing.T) {
	tests := []struct {
		in     string
		family TypeFamily
		name   string
	}{
		{"int", FamilyInteger, "int"},
		{"BIGINT", FamilyInteger, "bigint"},
		{"int unsigned", FamilyInteger, "int"},
		{"varchar(n)", FamilyString, "varchar"},
		{"character varying(255)", FamilyString, "character varying"},
		{"decimal(p,s)", FamilyDecimal, "decimal"},
		{"timestamp with time zone", FamilyTimestamp, "timestamp with time zone"},
		{"enum", FamilyEnum, "enum"},
		{"geometry", FamilyOther, "geometry"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseColumnType(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.family, got.Family)
			assert.Equal(t, tt.name, got.Name)
		})
	}

	assert.Nil(t, ParseColumnType(""))
	assert.Nil(t, ParseColumnType("   "))
}

func TestColumnTypeArguments(t *testing.T) {
	assert.True(t, ParseColumnType("varchar(n)").HasLength())
	assert.False(t, ParseColumnType("bytea").HasLength())
	assert.True(t, ParseColumnType("numeric(p,s)").HasPrecision())
	assert.False(t, ParseColumnType("int").HasPrecision())
}

func TestTableHelpers(t *testing.T) {
	id := &Column{PhysicalName: "id", PrimaryKey: true}
	name := &Column{PhysicalName: "name"}
	audit := &ColumnGroup{
		ColumnGroupName: "audit",
		Columns:         []*Column{{PhysicalName: "created_at"}, {PhysicalName: "updated_at"}},
	}
	tbl := &Table{
		PhysicalName: "users",
		Columns: []ColumnItem{
			ColumnItemOf(id),
			GroupRefItem("audit"),
			ColumnItemOf(name),
			GroupRefItem("missing"),
		},
		CompoundUniqueKeys: []CompoundUniqueKey{{Name: "uq_users", Columns: []string{"id", "name"}}},
	}

	assert.Equal(t, "table.users", tbl.ID())
	assert.Same(t, name, tbl.Column("name"))
	assert.Nil(t, tbl.Column("created_at"), "group columns are not inline")
	assert.Equal(t, []*Column{id}, tbl.PrimaryKeyColumns())
	require.NotNil(t, tbl.CompoundUniqueKey("uq_users"))
	assert.Nil(t, tbl.CompoundUniqueKey("uq_other"))

	expanded := tbl.ExpandColumns([]*ColumnGroup{audit})
	names := make([]string, len(expanded))
	for i, c := range expanded {
		names[i] = c.PhysicalName
	}
	assert.Equal(t, []string{"id", "created_at", "updated_at", "name"}, names)
}

func TestExpandColumnsFollowsGroupChanges(t *testing.T) {
	tbl := &Table{PhysicalName: "t", Columns: []ColumnItem{GroupRefItem("g")}}
	groups := []*ColumnGroup{{ColumnGroupName: "g", Columns: []*Column{{PhysicalName: "a"}}}}
	assert.Len(t, tbl.ExpandColumns(groups), 1)

	groups[0] = &ColumnGroup{ColumnGroupName: "g", Columns: []*Column{{PhysicalName: "a"}, {PhysicalName: "b"}}}
	assert.Len(t, tbl.ExpandColumns(groups), 2)
}

func TestRelationshipHelpers(t *testing.T) {
	r := &Relationship{ReferredColumn: "id", ReferredColumnOptions: []string{"id", "email"}}
	assert.True(t, r.ReferredColumnValid())

	r.ReferredColumn = "uq_gone"
	assert.False(t, r.ReferredColumnValid())

	assert.Equal(t, "NO ACTION", OpNoAction.Display())
	assert.Equal(t, "CASCADE", OpCascade.Display())

	assert.True(t, CardinalityZeroN.IsMany())
	assert.True(t, CardinalityZeroN.IsOptional())
	assert.False(t, CardinalityOne.IsMany())
	assert.False(t, CardinalityOne.IsOptional())
}

func TestViewModeString(t *testing.T) {
	assert.Equal(t, "physical", ViewPhysical.String())
	assert.Equal(t, "ViewMode(7)", ViewMode(7).String())
}
