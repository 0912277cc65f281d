package graph

import (
	"fmt"
	"io"
	"strings"
)

// WriteText writes a text summary of the graph to w.
func WriteText(w io.Writer, g *Graph) error {
	components := FindComponents(g)

	fmt.Fprintf(w, "Tables: %d\n", len(g.Tables))
	fmt.Fprintf(w, "Relationships: %d\n", len(g.Edges)+countSelfRefs(g)+len(g.Dangling))
	fmt.Fprintf(w, "Connected Components: %d\n\n", len(components))

	topoResult := TopoSortAll(g)
	if topoResult.HasCycle {
		fmt.Fprintf(w, "WARNING: Circular dependencies detected: %v\n\n", topoResult.CycleTables)
	}

	var noPKTables []string
	for _, name := range g.Names {
		if len(g.PrimaryKey(name)) == 0 {
			noPKTables = append(noPKTables, name)
		}
	}
	if len(noPKTables) > 0 {
		fmt.Fprintf(w, "WARNING: Tables without primary key: %v\n\n", noPKTables)
	}

	// A relationship whose referred column is no longer an option is reported, not repaired.
	var invalid []string
	for _, edge := range g.Edges {
		if !edge.Relationship.ReferredColumnValid() {
			invalid = append(invalid, fmt.Sprintf("%s(%s)", edge.Relationship.Name, edge.Relationship.ReferredColumn))
		}
	}
	for _, name := range g.Names {
		for _, rel := range g.SelfRefs[name] {
			if !rel.ReferredColumnValid() {
				invalid = append(invalid, fmt.Sprintf("%s(%s)", rel.Name, rel.ReferredColumn))
			}
		}
	}
	if len(invalid) > 0 {
		fmt.Fprintf(w, "WARNING: Relationships with invalid referred column: %v\n\n", invalid)
	}

	if len(g.Dangling) > 0 {
		var names []string
		for _, rel := range g.Dangling {
			names = append(names, rel.Name)
		}
		fmt.Fprintf(w, "WARNING: Relationships with unknown tables: %v\n\n", names)
	}

	var selfRefTables []string
	for _, name := range g.Names {
		if len(g.SelfRefs[name]) > 0 {
			selfRefTables = append(selfRefTables, name)
		}
	}
	if len(selfRefTables) > 0 {
		fmt.Fprintf(w, "Self-referencing tables: %v\n\n", selfRefTables)
	}

	fmt.Fprintf(w, "Root tables (no parents): %v\n\n", g.Roots())

	for i, comp := range components {
		fmt.Fprintf(w, "=== Component %d (%d tables) ===\n", i+1, len(comp.Tables))

		topoComp := TopoSort(g, comp.Tables)
		if topoComp.HasCycle {
			fmt.Fprintf(w, "  Topological order (partial, has cycle):\n")
		} else {
			fmt.Fprintf(w, "  Topological order:\n")
		}
		for j, t := range topoComp.Order {
			pkInfo := "no PK"
			if pk := g.PrimaryKey(t); len(pk) > 0 {
				pkInfo = fmt.Sprintf("PK: %s", strings.Join(pk, ", "))
			}
			fmt.Fprintf(w, "    %d. %s (%d cols, %s, %d parents)\n",
				j+1, t, len(g.Columns(t)), pkInfo, len(g.Parents[t]))
		}
		if topoComp.HasCycle {
			fmt.Fprintf(w, "  Cycle tables: %v\n", topoComp.CycleTables)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func countSelfRefs(g *Graph) int {
	count := 0
	for _, rels := range g.SelfRefs {
		count += len(rels)
	}
	return count
}
