package analyze

import "github.com/biofabric/biofabric/pkg/graph"

// BFS returns nodes reachable from start in breadth-first visit order.
// Neighbors are sorted lexicographically before being enqueued, so the
// result is deterministic. Returns an empty slice if start is absent.
func BFS(g *graph.Network, start graph.NodeId) []graph.NodeId {
	if !g.ContainsNode(start) {
		return nil
	}
	visited := map[graph.NodeId]bool{start: true}
	queue := []graph.NodeId{start}
	var order []graph.NodeId

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, nb := range g.Neighbors(id) {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return order
}

// DFS returns nodes reachable from start in depth-first visit order,
// with neighbors sorted lexicographically for determinism.
func DFS(g *graph.Network, start graph.NodeId) []graph.NodeId {
	if !g.ContainsNode(start) {
		return nil
	}
	visited := make(map[graph.NodeId]bool)
	var order []graph.NodeId

	var visit func(id graph.NodeId)
	visit = func(id graph.NodeId) {
		if visited[id] {
			return
		}
		visited[id] = true
		order = append(order, id)
		for _, nb := range g.Neighbors(id) {
			visit(nb)
		}
	}
	visit(start)
	return order
}

// ShortestPath returns the unweighted BFS shortest path from start to
// end (inclusive of both endpoints), or false if no path exists.
func ShortestPath(g *graph.Network, start, end graph.NodeId) ([]graph.NodeId, bool) {
	if !g.ContainsNode(start) || !g.ContainsNode(end) {
		return nil, false
	}
	if start == end {
		return []graph.NodeId{start}, true
	}

	parent := map[graph.NodeId]graph.NodeId{start: start}
	queue := []graph.NodeId{start}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, nb := range g.Neighbors(id) {
			if _, seen := parent[nb]; seen {
				continue
			}
			parent[nb] = id
			if nb == end {
				return reconstructPath(parent, start, end), true
			}
			queue = append(queue, nb)
		}
	}
	return nil, false
}

func reconstructPath(parent map[graph.NodeId]graph.NodeId, start, end graph.NodeId) []graph.NodeId {
	var rev []graph.NodeId
	for cur := end; ; {
		rev = append(rev, cur)
		if cur == start {
			break
		}
		cur = parent[cur]
	}
	path := make([]graph.NodeId, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}
