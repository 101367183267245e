package graph

// Reachable runs a multi-source breadth-first traversal over every outgoing
// link, whatever its type, and returns the visited node IDs. Seeds that are
// not nodes are ignored.
func (g *Graph) Reachable(seeds []string) map[string]bool {
	visited := make(map[string]bool, len(g.Nodes))
	queue := make([]string, 0, len(seeds))
	for _, id := range seeds {
		if !g.HasNode(id) || visited[id] {
			continue
		}
		visited[id] = true
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.Successors(current) {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}

// Unreachable returns every Module node ID not in reachable, sorted.
func (g *Graph) Unreachable(reachable map[string]bool) []string {
	out := make([]string, 0)
	for _, id := range g.ModuleIDs() {
		if !reachable[id] {
			out = append(out, id)
		}
	}
	return out
}
