package analyze

import "github.com/biofabric/biofabric/pkg/graph"

// ConnectedComponents partitions the network's nodes into connected
// components. Each component is built by BFS starting from the highest-
// degree unvisited node (ties broken lexicographically); the result is
// sorted by component size, largest first.
func ConnectedComponents(g *graph.Network) [][]graph.NodeId {
	unvisited := make(map[graph.NodeId]bool)
	for _, id := range g.Nodes() {
		unvisited[id] = true
	}

	var components [][]graph.NodeId
	for len(unvisited) > 0 {
		start := highestDegreeAmong(g, unvisited)
		comp := bfsWithin(g, start, unvisited)
		for _, id := range comp {
			delete(unvisited, id)
		}
		components = append(components, comp)
	}

	// Stable sort preserves the discovery order (which already favors
	// higher-degree starts) among equal-size components.
	for i := 1; i < len(components); i++ {
		for j := i; j > 0 && len(components[j]) > len(components[j-1]); j-- {
			components[j], components[j-1] = components[j-1], components[j]
		}
	}
	return components
}

func highestDegreeAmong(g *graph.Network, candidates map[graph.NodeId]bool) graph.NodeId {
	var best graph.NodeId
	bestDeg := -1
	first := true
	for id := range candidates {
		deg := g.Degree(id)
		if first || deg > bestDeg || (deg == bestDeg && id < best) {
			best, bestDeg, first = id, deg, false
		}
	}
	return best
}

// bfsWithin runs BFS from start but only considers nodes still present
// in the allowed set (used to keep components disjoint).
func bfsWithin(g *graph.Network, start graph.NodeId, allowed map[graph.NodeId]bool) []graph.NodeId {
	visited := map[graph.NodeId]bool{start: true}
	queue := []graph.NodeId{start}
	var order []graph.NodeId

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, nb := range g.Neighbors(id) {
			if !allowed[nb] || visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
	return order
}
