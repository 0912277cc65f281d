package graph

// Component represents a connected component of tables.
type Component struct {
	Tables []string
}

// FindComponents detects connected components using undirected BFS. Components
// and their tables follow diagram order.
func FindComponents(g *Graph) []Component {
	visited := make(map[string]bool)
	var components []Component

	for _, name := range g.Names {
		if visited[name] {
			continue
		}
		comp := bfs(g, name, visited)
		components = append(components, Component{Tables: g.ordered(comp)})
	}

	return components
}

func bfs(g *Graph, start string, visited map[string]bool) map[string]bool {
	queue := []string{start}
	visited[start] = true
	result := map[string]bool{}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result[node] = true

		for _, neighbor := range g.Adjacency[node] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return result
}

// ordered returns the members of set in diagram order.
func (g *Graph) ordered(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for _, name := range g.Names {
		if set[name] {
			out = append(out, name)
		}
	}
	return out
}
