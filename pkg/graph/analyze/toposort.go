package analyze

import "github.com/biofabric/biofabric/pkg/graph"

// TopologicalSort computes a Kahn's-algorithm ordering over directed,
// non-shadow links. Returns (order, true) if the graph is a DAG, or
// (nil, false) on a cycle.
//
// When compress is true, nodes are processed one level-set (BFS
// frontier) at a time, each level sorted by degree descending then node
// ID ascending, instead of Kahn's plain FIFO order.
func TopologicalSort(g *graph.Network, compress bool) ([]graph.NodeId, bool) {
	inDegree := make(map[graph.NodeId]int, g.NodeCount())
	for _, id := range g.Nodes() {
		inDegree[id] = 0
	}
	succ := directedSuccessors(g)
	for _, l := range g.Links() {
		if l.Directed == graph.DirectedYes && !l.IsShadow {
			inDegree[l.Target]++
		}
	}

	var queue []graph.NodeId
	for _, id := range g.Nodes() {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sortNodeIds(queue)

	result := make([]graph.NodeId, 0, g.NodeCount())

	if compress {
		for len(queue) > 0 {
			levelSize := len(queue)
			level := make([]NodeDegree, levelSize)
			for i := 0; i < levelSize; i++ {
				level[i] = NodeDegree{ID: queue[i], Degree: g.Degree(queue[i])}
			}
			queue = queue[:0]

			sortLevel(level)

			for _, nd := range level {
				result = append(result, nd.ID)
				var successors []graph.NodeId
				for _, tgt := range succ[nd.ID] {
					inDegree[tgt]--
					if inDegree[tgt] == 0 {
						successors = append(successors, tgt)
					}
				}
				sortNodeIds(successors)
				queue = append(queue, successors...)
			}
		}
	} else {
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			result = append(result, id)

			var successors []graph.NodeId
			for _, tgt := range succ[id] {
				inDegree[tgt]--
				if inDegree[tgt] == 0 {
					successors = append(successors, tgt)
				}
			}
			sortNodeIds(successors)
			queue = append(queue, successors...)
		}
	}

	if len(result) == g.NodeCount() {
		return result, true
	}
	return nil, false
}

func sortLevel(level []NodeDegree) {
	for i := 1; i < len(level); i++ {
		for j := i; j > 0; j-- {
			a, b := level[j-1], level[j]
			if a.Degree > b.Degree || (a.Degree == b.Degree && a.ID <= b.ID) {
				break
			}
			level[j-1], level[j] = level[j], level[j-1]
		}
	}
}
