// Package graph analyzes the relationship structure of a diagram.
package graph

import (
	"slices"

	"github.com/hurou927/erm-core/internal/reference"
	"github.com/hurou927/erm-core/internal/schema"
)

// Edge is a relationship between two distinct tables, seen from the child.
type Edge struct {
	Relationship *schema.Relationship
	ChildTable   string // physical name
	ParentTable  string // physical name
}

// Graph is a directed graph built from relationships, child → parent.
type Graph struct {
	// Names lists the table physical names in diagram order.
	Names []string

	// Tables maps physical name → table
	Tables map[string]*schema.Table

	// Groups resolves column group references of the tables.
	Groups []*schema.ColumnGroup

	// Edges are the relationships between distinct tables.
	Edges []Edge

	// SelfRefs holds relationships whose parent and child are the same table.
	SelfRefs map[string][]*schema.Relationship

	// Dangling holds relationships with an end that is not a table of the diagram.
	Dangling []*schema.Relationship

	// Children maps parent name → child names, Parents the reverse.
	Children map[string][]string
	Parents  map[string][]string

	// Adjacency lists undirected neighbours, in edge order.
	Adjacency map[string][]string
}

// Build constructs the graph. groups is used to expand column group references
// when reporting on columns.
func Build(tables []*schema.Table, relationships []*schema.Relationship, groups []*schema.ColumnGroup) *Graph {
	g := &Graph{
		Tables:    make(map[string]*schema.Table, len(tables)),
		Groups:    groups,
		SelfRefs:  make(map[string][]*schema.Relationship),
		Children:  make(map[string][]string),
		Parents:   make(map[string][]string),
		Adjacency: make(map[string][]string),
	}

	for _, t := range tables {
		if _, dup := g.Tables[t.PhysicalName]; dup {
			continue
		}
		g.Names = append(g.Names, t.PhysicalName)
		g.Tables[t.PhysicalName] = t
	}

	for _, rel := range relationships {
		parent := reference.Parse(rel.Source).TableName
		child := reference.Parse(rel.Target).TableName
		if g.Tables[parent] == nil || g.Tables[child] == nil {
			g.Dangling = append(g.Dangling, rel)
			continue
		}
		if parent == child {
			g.SelfRefs[child] = append(g.SelfRefs[child], rel)
			continue
		}

		g.Edges = append(g.Edges, Edge{Relationship: rel, ChildTable: child, ParentTable: parent})
		g.Children[parent] = appendUnique(g.Children[parent], child)
		g.Parents[child] = appendUnique(g.Parents[child], parent)
		g.Adjacency[child] = appendUnique(g.Adjacency[child], parent)
		g.Adjacency[parent] = appendUnique(g.Adjacency[parent], child)
	}

	return g
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

// Roots returns tables that have no parents, in diagram order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, name := range g.Names {
		if len(g.Parents[name]) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// Columns returns the expanded columns of a table.
func (g *Graph) Columns(name string) []*schema.Column {
	t := g.Tables[name]
	if t == nil {
		return nil
	}
	return t.ExpandColumns(g.Groups)
}

// PrimaryKey returns the primary key column names of a table, group columns included.
func (g *Graph) PrimaryKey(name string) []string {
	var pk []string
	for _, c := range g.Columns(name) {
		if c.PrimaryKey {
			pk = append(pk, c.PhysicalName)
		}
	}
	return pk
}
