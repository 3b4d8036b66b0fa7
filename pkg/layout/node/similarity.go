package node

import (
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// Similarity orders nodes by Jaccard similarity of their neighborhoods:
// starting from the highest-degree node (or params.StartNode), each
// subsequent node is the unvisited node most similar to the previously
// placed one. Ties break by higher degree, then lexicographically.
// Disconnected components restart from the highest-degree unvisited
// node, exactly like Default.
type Similarity struct{}

// LayoutNodes implements Layout.
func (Similarity) LayoutNodes(net *graph.Network, params Params, mon *progress.Monitor) ([]graph.NodeId, error) {
	total := net.NodeCount()
	mon = ensureMonitor(mon, total)

	lone := make(map[graph.NodeId]bool)
	for _, id := range net.LoneNodes() {
		lone[id] = true
	}

	neighborSets := make(map[graph.NodeId]map[graph.NodeId]bool, total)
	for _, id := range net.Nodes() {
		set := make(map[graph.NodeId]bool)
		for _, nb := range net.Neighbors(id) {
			set[nb] = true
		}
		neighborSets[id] = set
	}

	visited := make(map[graph.NodeId]bool, total)
	order := make([]graph.NodeId, 0, total)

	place := func(id graph.NodeId) {
		visited[id] = true
		order = append(order, id)
		mon.Step()
	}

	start := params.StartNode
	if start == "" || !net.ContainsNode(start) || lone[start] {
		if s, ok := highestDegreeUnvisited(net, visited, lone); ok {
			start = s
		} else {
			start = ""
		}
	}

	for start != "" {
		if mon.Cancelled() {
			return nil, cancelled("node.Similarity")
		}
		place(start)
		last := start
		start = ""
		for {
			next, found := mostSimilarUnvisited(net, neighborSets, last, visited, lone)
			if !found {
				break
			}
			place(next)
			last = next
		}
		if s, ok := highestDegreeUnvisited(net, visited, lone); ok {
			start = s
		}
	}

	for _, id := range net.LoneNodes() {
		if !visited[id] {
			place(id)
		}
	}

	return order, nil
}

// CriteriaMet implements Layout: Similarity accepts any network.
func (Similarity) CriteriaMet(*graph.Network) error { return nil }

// Name implements Layout.
func (Similarity) Name() string { return "Node Similarity (Jaccard)" }

func mostSimilarUnvisited(net *graph.Network, neighborSets map[graph.NodeId]map[graph.NodeId]bool, last graph.NodeId, visited, lone map[graph.NodeId]bool) (graph.NodeId, bool) {
	lastSet := neighborSets[last]
	var best graph.NodeId
	bestSim := -1.0
	bestDeg := -1
	found := false
	for _, id := range net.Nodes() {
		if visited[id] || lone[id] {
			continue
		}
		sim := jaccard(lastSet, neighborSets[id])
		deg := net.Degree(id)
		switch {
		case !found:
			best, bestSim, bestDeg, found = id, sim, deg, true
		case sim > bestSim:
			best, bestSim, bestDeg = id, sim, deg
		case sim == bestSim && deg > bestDeg:
			best, bestDeg = id, deg
		case sim == bestSim && deg == bestDeg && id < best:
			best = id
		}
	}
	return best, found
}

// jaccard returns |a ∩ b| / |a ∪ b|, defined as 1.0 when both sets are
// empty (two isolated-within-the-unvisited-set nodes are "identical").
func jaccard(a, b map[graph.NodeId]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for id := range a {
		if b[id] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
