package graph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hurou927/erm-core/internal/schema"
)

func col(name string, opts ...func(*schema.Column)) schema.ColumnItem {
	c := &schema.Column{PhysicalName: name, Type: schema.ParseColumnType("bigint")}
	for _, opt := range opts {
		opt(c)
	}
	return schema.ColumnItemOf(c)
}

func pk(c *schema.Column)     { c.PrimaryKey = true }
func unique(c *schema.Column) { c.Unique = true }

func rel(name, parent, child string, fk ...string) *schema.Relationship {
	return &schema.Relationship{
		Name:                  name,
		Source:                "table." + parent,
		Target:                "table." + child,
		FKColumnNames:         fk,
		ParentCardinality:     schema.CardinalityOne,
		ChildCardinality:      schema.CardinalityZeroN,
		ReferredColumn:        "id",
		ReferredColumnOptions: []string{"id"},
	}
}

// users <- posts <- comments, users <- comments, categories (self), tags (alone, no PK)
func fixture() *Graph {
	tables := []*schema.Table{
		{PhysicalName: "comments", Columns: []schema.ColumnItem{col("id", pk), col("post_id"), col("user_id")}},
		{PhysicalName: "posts", Columns: []schema.ColumnItem{col("id", pk), col("user_id"), schema.GroupRefItem("audit")}},
		{PhysicalName: "users", Columns: []schema.ColumnItem{col("id", pk), col("email", unique)}},
		{PhysicalName: "categories", Columns: []schema.ColumnItem{col("id", pk), col("parent_id")}},
		{PhysicalName: "tags", Columns: []schema.ColumnItem{col("label")}},
	}
	relationships := []*schema.Relationship{
		rel("post_comments", "posts", "comments", "post_id"),
		rel("user_posts", "users", "posts", "user_id"),
		rel("user_comments", "users", "comments", "user_id"),
		rel("category_tree", "categories", "categories", "parent_id"),
		rel("ghost", "users", "nowhere", "x"),
	}
	groups := []*schema.ColumnGroup{{
		ColumnGroupName: "audit",
		Columns:         []*schema.Column{{PhysicalName: "created_at", Type: schema.ParseColumnType("timestamp with time zone")}},
	}}
	return Build(tables, relationships, groups)
}

func TestBuild(t *testing.T) {
	g := fixture()

	assert.Equal(t, []string{"comments", "posts", "users", "categories", "tags"}, g.Names)
	assert.Len(t, g.Edges, 3)
	assert.Equal(t, []string{"posts", "users"}, g.Parents["comments"])
	assert.Equal(t, []string{"posts", "comments"}, g.Children["users"])
	require.Len(t, g.SelfRefs["categories"], 1)
	require.Len(t, g.Dangling, 1)
	assert.Equal(t, "ghost", g.Dangling[0].Name)
	assert.Equal(t, []string{"users", "categories", "tags"}, g.Roots())
	assert.Equal(t, []string{"id"}, g.PrimaryKey("posts"))
	assert.Len(t, g.Columns("posts"), 3)
	assert.Nil(t, g.Columns("missing"))
}

func TestFindComponents(t *testing.T) {
	comps := FindComponents(fixture())
	require.Len(t, comps, 3)
	assert.Equal(t, []string{"comments", "posts", "users"}, comps[0].Tables)
	assert.Equal(t, []string{"categories"}, comps[1].Tables)
	assert.Equal(t, []string{"tags"}, comps[2].Tables)
}

func TestTopoSort(t *testing.T) {
	g := fixture()

	res := TopoSortAll(g)
	assert.False(t, res.HasCycle)
	assert.NoError(t, ValidateCycles(res))
	assert.Equal(t, []string{"users", "categories", "tags", "posts", "comments"}, res.Order)
	assert.Equal(t, res.Order, Ordered(g))
}

func TestTopoSortCycle(t *testing.T) {
	tables := []*schema.Table{{PhysicalName: "a"}, {PhysicalName: "b"}, {PhysicalName: "c"}, {PhysicalName: "root"}}
	g := Build(tables, []*schema.Relationship{
		rel("ab", "a", "b"),
		rel("ba", "b", "a"),
		rel("bc", "b", "c"),
	}, nil)

	res := TopoSortAll(g)
	assert.True(t, res.HasCycle)
	assert.Equal(t, []string{"root"}, res.Order)
	assert.Equal(t, []string{"a", "b", "c"}, res.CycleTables)
	assert.EqualError(t, ValidateCycles(res), "circular dependency detected among tables: [a b c]")
	assert.Equal(t, []string{"root", "a", "b", "c"}, Ordered(g))
}

func TestWriteMermaid(t *testing.T) {
	tables := []*schema.Table{
		{PhysicalName: "users", Columns: []schema.ColumnItem{col("id", pk), col("email", unique)}},
		{PhysicalName: "user posts", Columns: []schema.ColumnItem{col("id", pk), col("user_id")}},
		{PhysicalName: "empty"},
	}
	r := rel("user_posts", "users", "user posts", "user_id")
	opt := rel("optional", "users", "user posts")
	opt.ParentCardinality = schema.CardinalityZeroOne
	opt.ChildCardinality = schema.CardinalityOneN
	self := rel("self", "users", "users")
	self.ChildCardinality = schema.CardinalityZeroOne

	var buf bytes.Buffer
	require.NoError(t, WriteMermaid(&buf, Build(tables, []*schema.Relationship{r, opt, self}, nil)))

	assert.Equal(t, `erDiagram
    users {
        bigint id PK
        bigint email UK
    }
    user_posts {
        bigint id PK
        bigint user_id FK
    }
    empty
    users ||--o{ user_posts : "user_posts"
    users |o--|{ user_posts : "optional"
    users ||--o| users : "self"
`, buf.String())
}

func TestGlyphs(t *testing.T) {
	assert.Equal(t, "}o", parentGlyph(schema.CardinalityZeroN))
	assert.Equal(t, "}|", parentGlyph(schema.CardinalityOneN))
	assert.Equal(t, "||", parentGlyph(""))
	assert.Equal(t, "||", childGlyph(schema.CardinalityOne))
	assert.Equal(t, "o{", childGlyph(""))
}

func TestWriteText(t *testing.T) {
	g := fixture()
	g.Edges[0].Relationship.ReferredColumn = "gone"

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, g))
	out := buf.String()

	assert.Contains(t, out, "Tables: 5\n")
	assert.Contains(t, out, "Relationships: 5\n")
	assert.Contains(t, out, "Connected Components: 3\n")
	assert.Contains(t, out, "WARNING: Tables without primary key: [tags]")
	assert.Contains(t, out, "WARNING: Relationships with invalid referred column: [post_comments(gone)]")
	assert.Contains(t, out, "WARNING: Relationships with unknown tables: [ghost]")
	assert.Contains(t, out, "Self-referencing tables: [categories]")
	assert.Contains(t, out, "Root tables (no parents): [users categories tags]")
	assert.Contains(t, out, "=== Component 1 (3 tables) ===\n  Topological order:\n    1. users (2 cols, PK: id, 0 parents)\n    2. posts (3 cols, PK: id, 1 parents)\n    3. comments (3 cols, PK: id, 2 parents)\n")
	assert.NotContains(t, out, "Circular")
}
