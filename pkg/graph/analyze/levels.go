package analyze

import "github.com/biofabric/biofabric/pkg/graph"

// DAGLevels computes each node's level (longest path from any source)
// over directed, non-shadow links. Returns (nil, false) if the network
// contains a cycle.
func DAGLevels(g *graph.Network) (map[graph.NodeId]int, bool) {
	topo, ok := TopologicalSort(g, false)
	if !ok {
		return nil, false
	}

	succ := directedSuccessors(g)
	levels := make(map[graph.NodeId]int, len(topo))
	for _, id := range topo {
		levels[id] = 0
	}
	for _, id := range topo {
		cur := levels[id]
		for _, tgt := range succ[id] {
			if cur+1 > levels[tgt] {
				levels[tgt] = cur + 1
			}
		}
	}
	return levels, true
}
