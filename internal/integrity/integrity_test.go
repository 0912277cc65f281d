package integrity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/erm-core/internal/schema"
)

func newTable(name string) *schema.Table {
	return &schema.Table{PhysicalName: name, LogicalName: name, Width: 120, Height: 80}
}

func newRelationship(name, source, target string) *schema.Relationship {
	return &schema.Relationship{
		Name:                  name,
		Source:                source,
		Target:                target,
		FKColumnNames:         []string{"id"},
		ParentCardinality:     schema.CardinalityOne,
		ChildCardinality:      schema.CardinalityZeroN,
		ReferredColumn:        "id",
		ReferredColumnOptions: []string{"id"},
	}
}

func TestUpdateTableAndRefNotFound(t *testing.T) {
	tables := []*schema.Table{newTable("TABLE_A")}
	relationships := []*schema.Relationship{newRelationship("r", "table.TABLE_A", "table.TABLE_B")}

	got, err := UpdateTableAndRef(tables, relationships, newTable("TABLE_B"), "MISSING_TABLE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(err))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "table", nf.Kind())
	assert.Equal(t, "MISSING_TABLE", nf.Key())

	assert.Nil(t, got.Tables)
	assert.Equal(t, "TABLE_A", tables[0].PhysicalName)
}

func TestUpdateTableAndRefSameName(t *testing.T) {
	a, b := newTable("TABLE_A"), newTable("TABLE_B")
	tables := []*schema.Table{a, b}
	relationships := []*schema.Relationship{newRelationship("r", "table.TABLE_A", "table.TABLE_B")}

	next := newTable("TABLE_A")
	next.LogicalName = "New Name"

	got, err := UpdateTableAndRef(tables, relationships, next, "TABLE_A")
	require.NoError(t, err)

	assert.Same(t, next, got.Tables[0])
	assert.Same(t, b, got.Tables[1])
	assert.Same(t, a, tables[0], "input slice is not modified")
	// The relationships slice is returned as-is.
	assert.Same(t, &relationships[0], &got.Relationships[0])
	assert.Len(t, got.Relationships, 1)
}

func TestUpdateTableAndRefRename(t *testing.T) {
	tables := []*schema.Table{newTable("OTHER_TABLE"), newTable("OLD_TABLE")}
	asSource := newRelationship("REL_SOURCE", "table.OLD_TABLE", "table.OTHER_TABLE")
	asTarget := newRelationship("REL_TARGET", "table.OTHER_TABLE", "table.OLD_TABLE")
	untouched := newRelationship("REL_OTHER", "table.OTHER_TABLE", "table.THIRD")
	self := newRelationship("REL_SELF", "table.OLD_TABLE", "table.OLD_TABLE")
	relationships := []*schema.Relationship{asSource, asTarget, untouched, self}

	got, err := UpdateTableAndRef(tables, relationships, newTable("NEW_TABLE"), "OLD_TABLE")
	require.NoError(t, err)

	require.Len(t, got.Tables, 2)
	assert.Equal(t, "OTHER_TABLE", got.Tables[0].PhysicalName)
	assert.Equal(t, "NEW_TABLE", got.Tables[1].PhysicalName)

	require.Len(t, got.Relationships, 4)
	assert.Equal(t, "table.NEW_TABLE", got.Relationships[0].Source)
	assert.Equal(t, "table.OTHER_TABLE", got.Relationships[0].Target)
	assert.Equal(t, "table.OTHER_TABLE", got.Relationships[1].Source)
	assert.Equal(t, "table.NEW_TABLE", got.Relationships[1].Target)
	assert.Same(t, untouched, got.Relationships[2])
	assert.Equal(t, "table.NEW_TABLE", got.Relationships[3].Source)
	assert.Equal(t, "table.NEW_TABLE", got.Relationships[3].Target)

	// Rewritten relationships are new values sharing their other fields.
	assert.NotSame(t, asSource, got.Relationships[0])
	assert.Equal(t, "table.OLD_TABLE", asSource.Source)
	assert.Equal(t, asSource.Name, got.Relationships[0].Name)
	assert.Same(t, &asSource.FKColumnNames[0], &got.Relationships[0].FKColumnNames[0])
	assert.Same(t, &asSource.ReferredColumnOptions[0], &got.Relationships[0].ReferredColumnOptions[0])
}

func TestUpdateTableAndRefKeepsPrefixAndColumn(t *testing.T) {
	tables := []*schema.Table{newTable("OLD")}
	rel := newRelationship("r", "vtable.OLD.id", "OTHER")

	got, err := UpdateTableAndRef(tables, []*schema.Relationship{rel}, newTable("NEW"), "OLD")
	require.NoError(t, err)
	assert.Equal(t, "vtable.NEW.id", got.Relationships[0].Source)
	assert.Equal(t, "OTHER", got.Relationships[0].Target)
}

func TestUpdateRelation(t *testing.T) {
	a := newRelationship("a", "table.X", "table.Y")
	b := newRelationship("b", "table.X", "table.Z")
	relationships := []*schema.Relationship{a, b}

	next := newRelationship("renamed", "table.X", "table.Y")
	got, err := UpdateRelation(relationships, next, "a")
	require.NoError(t, err)
	assert.Equal(t, []*schema.Relationship{next, b}, got)
	assert.Same(t, b, got[1])
	assert.Same(t, a, relationships[0])

	_, err = UpdateRelation(relationships, next, "missing")
	assert.True(t, IsNotFound(err))
}

func TestRenameRelationshipRefs(t *testing.T) {
	rel := newRelationship("r", "table.USERS", "table.POSTS")

	assert.Same(t, rel, RenameRelationshipRefs(rel, "NOPE", "NEW"))

	got := RenameRelationshipRefs(rel, "POSTS", "ARTICLES")
	assert.NotSame(t, rel, got)
	assert.Equal(t, "table.USERS", got.Source)
	assert.Equal(t, "table.ARTICLES", got.Target)
	assert.Equal(t, "table.POSTS", rel.Target)
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", newNotFound("table", "x"))))
	assert.EqualError(t, newNotFound("relationship", "r1"), `integrity: relationship "r1" not found`)
}
