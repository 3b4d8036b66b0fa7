package analyze

import "github.com/biofabric/biofabric/pkg/graph"

type color int

const (
	white color = iota
	grey
	black
)

// CycleResult reports whether a directed graph contains a cycle, and
// one example cycle if so.
type CycleResult struct {
	HasCycle     bool
	ExampleCycle []graph.NodeId
}

// FindCycle runs a three-color DFS over directed, non-shadow links and
// returns the first cycle found (nodes in traversal order; the last
// node connects back to the first). Returns immediately on the first
// cycle — it does not enumerate every cycle in the graph.
func FindCycle(g *graph.Network) CycleResult {
	colors := make(map[graph.NodeId]color, g.NodeCount())
	for _, id := range g.Nodes() {
		colors[id] = white
	}
	succ := directedSuccessors(g)

	var path []graph.NodeId
	var cycle []graph.NodeId

	var visit func(id graph.NodeId) bool
	visit = func(id graph.NodeId) bool {
		colors[id] = grey
		path = append(path, id)
		for _, nb := range succ[id] {
			switch colors[nb] {
			case grey:
				cycle = cyclePathFrom(path, nb)
				return true
			case white:
				if visit(nb) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		colors[id] = black
		return false
	}

	for _, id := range g.Nodes() {
		if colors[id] == white {
			if visit(id) {
				return CycleResult{HasCycle: true, ExampleCycle: cycle}
			}
		}
	}
	return CycleResult{}
}

// IsDAG reports whether the graph has no directed cycle.
func IsDAG(g *graph.Network) bool {
	return !FindCycle(g).HasCycle
}

func cyclePathFrom(path []graph.NodeId, target graph.NodeId) []graph.NodeId {
	for i, id := range path {
		if id == target {
			out := make([]graph.NodeId, len(path)-i)
			copy(out, path[i:])
			return out
		}
	}
	return nil
}

// directedSuccessors builds an adjacency map over directed, non-shadow
// links, with each node's successor list sorted lexicographically.
func directedSuccessors(g *graph.Network) map[graph.NodeId][]graph.NodeId {
	succ := make(map[graph.NodeId][]graph.NodeId, g.NodeCount())
	for _, l := range g.Links() {
		if l.Directed != graph.DirectedYes || l.IsShadow {
			continue
		}
		succ[l.Source] = append(succ[l.Source], l.Target)
	}
	for id := range succ {
		sortNodeIds(succ[id])
	}
	return succ
}
