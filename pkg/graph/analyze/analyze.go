// Package analyze implements the deterministic graph algorithms used by
// layout: breadth/depth-first search, connected components, cycle
// detection, topological sort, and DAG level assignment.
//
// # Determinism
//
// Every algorithm here sorts its frontier before use — neighbors before
// enqueueing, zero-in-degree nodes before seeding a queue — so that two
// runs over the same Network produce byte-identical output. This is a
// hard requirement (spec §9, "Deterministic ordering everywhere"): node
// layout algorithms built on top of BFS/DFS/topological sort must be
// reproducible across runs and across machines.
package analyze

import (
	"sort"

	"github.com/biofabric/biofabric/pkg/graph"
)

// HighestDegreeNode returns the node with the highest degree, breaking
// ties lexicographically. Returns ("", false) for an empty network.
func HighestDegreeNode(g *graph.Network) (graph.NodeId, bool) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return "", false
	}
	best := nodes[0]
	bestDeg := g.Degree(best)
	for _, id := range nodes[1:] {
		deg := g.Degree(id)
		if deg > bestDeg || (deg == bestDeg && id < best) {
			best, bestDeg = id, deg
		}
	}
	return best, true
}

// NodesByDegree returns every node with its degree, sorted by degree
// descending then node ID ascending.
func NodesByDegree(g *graph.Network) []NodeDegree {
	nodes := g.Nodes()
	out := make([]NodeDegree, len(nodes))
	for i, id := range nodes {
		out[i] = NodeDegree{ID: id, Degree: g.Degree(id)}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Degree != out[j].Degree {
			return out[i].Degree > out[j].Degree
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// NodeDegree pairs a node with its degree.
type NodeDegree struct {
	ID     graph.NodeId
	Degree int
}

func sortNodeIds(ids []graph.NodeId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
