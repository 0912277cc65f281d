package graph

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/hurou927/erm-core/internal/schema"
)

// WriteMermaid writes the graph as a Mermaid erDiagram to w: one entity per
// table with its expanded columns, then one line per relationship.
func WriteMermaid(w io.Writer, g *Graph) error {
	fmt.Fprintln(w, "erDiagram")

	for _, name := range g.Names {
		cols := g.Columns(name)
		if len(cols) == 0 {
			fmt.Fprintf(w, "    %s\n", mermaidID(name))
			continue
		}
		fmt.Fprintf(w, "    %s {\n", mermaidID(name))
		for _, c := range cols {
			line := fmt.Sprintf("        %s %s", mermaidType(c), mermaidID(c.PhysicalName))
			if keys := columnKeys(g, name, c); keys != "" {
				line += " " + keys
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, "    }")
	}

	for _, edge := range g.Edges {
		writeRelationship(w, edge.ParentTable, edge.ChildTable, edge.Relationship)
	}
	for _, name := range g.Names {
		for _, rel := range g.SelfRefs[name] {
			writeRelationship(w, name, name, rel)
		}
	}

	return nil
}

func writeRelationship(w io.Writer, parent, child string, rel *schema.Relationship) {
	fmt.Fprintf(w, "    %s %s--%s %s : %q\n",
		mermaidID(parent), parentGlyph(rel.ParentCardinality), childGlyph(rel.ChildCardinality),
		mermaidID(child), rel.Name)
}

// parentGlyph renders the left-hand crow's foot marker.
func parentGlyph(c schema.Cardinality) string {
	switch c {
	case schema.CardinalityZeroOne:
		return "|o"
	case schema.CardinalityOneN:
		return "}|"
	case schema.CardinalityZeroN:
		return "}o"
	default:
		return "||"
	}
}

// childGlyph renders the right-hand crow's foot marker.
func childGlyph(c schema.Cardinality) string {
	switch c {
	case schema.CardinalityOne:
		return "||"
	case schema.CardinalityZeroOne:
		return "o|"
	case schema.CardinalityOneN:
		return "|{"
	default:
		return "o{"
	}
}

// columnKeys returns the PK/FK/UK markers of a column.
func columnKeys(g *Graph, table string, c *schema.Column) string {
	var keys []string
	if c.PrimaryKey {
		keys = append(keys, "PK")
	}
	if isForeignKey(g, table, c.PhysicalName) {
		keys = append(keys, "FK")
	}
	if c.Unique && !c.PrimaryKey {
		keys = append(keys, "UK")
	}
	return strings.Join(keys, ", ")
}

func isForeignKey(g *Graph, table, column string) bool {
	check := func(rel *schema.Relationship) bool {
		return slices.Contains(rel.FKColumnNames, column)
	}
	for _, edge := range g.Edges {
		if edge.ChildTable == table && check(edge.Relationship) {
			return true
		}
	}
	for _, rel := range g.SelfRefs[table] {
		if check(rel) {
			return true
		}
	}
	return false
}

var unsafeID = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// mermaidID converts a name to a Mermaid-safe identifier.
func mermaidID(name string) string {
	if name == "" {
		return "_"
	}
	return unsafeID.ReplaceAllString(name, "_")
}

func mermaidType(c *schema.Column) string {
	if c.Type == nil {
		return "unknown"
	}
	return mermaidID(c.Type.Name)
}
