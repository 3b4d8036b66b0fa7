package node

import (
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// Default orders nodes by breadth-first search from the highest-degree
// node, repeating from the next highest-degree unvisited node whenever a
// component runs dry, and appending lone nodes last. Ties at every step
// break lexicographically.
type Default struct{}

// LayoutNodes implements Layout.
func (Default) LayoutNodes(net *graph.Network, params Params, mon *progress.Monitor) ([]graph.NodeId, error) {
	total := net.NodeCount()
	mon = ensureMonitor(mon, total)

	lone := make(map[graph.NodeId]bool)
	for _, id := range net.LoneNodes() {
		lone[id] = true
	}

	visited := make(map[graph.NodeId]bool, total)
	order := make([]graph.NodeId, 0, total)

	bfsFrom := func(start graph.NodeId) {
		queue := []graph.NodeId{start}
		visited[start] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			order = append(order, id)
			mon.Step()
			for _, nb := range net.Neighbors(id) {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}

	if params.StartNode != "" && net.ContainsNode(params.StartNode) && !lone[params.StartNode] {
		bfsFrom(params.StartNode)
	}

	for {
		if mon.Cancelled() {
			return nil, cancelled("node.Default")
		}
		next, ok := highestDegreeUnvisited(net, visited, lone)
		if !ok {
			break
		}
		bfsFrom(next)
	}

	for _, id := range net.LoneNodes() {
		if !visited[id] {
			order = append(order, id)
			visited[id] = true
			mon.Step()
		}
	}

	return order, nil
}

// CriteriaMet implements Layout: Default accepts any network.
func (Default) CriteriaMet(*graph.Network) error { return nil }

// Name implements Layout.
func (Default) Name() string { return "Default (BFS from highest degree)" }

func highestDegreeUnvisited(net *graph.Network, visited, lone map[graph.NodeId]bool) (graph.NodeId, bool) {
	var best graph.NodeId
	bestDeg := -1
	found := false
	for _, id := range net.Nodes() {
		if visited[id] || lone[id] {
			continue
		}
		deg := net.Degree(id)
		if !found || deg > bestDeg || (deg == bestDeg && id < best) {
			best, bestDeg, found = id, deg, true
		}
	}
	return best, found
}
