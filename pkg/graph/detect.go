package graph

// DetectDirected is a single O(E) scan setting Metadata.IsDirected to
// true iff any link is known-directed.
func (n *Network) DetectDirected() bool {
	directed := false
	for _, l := range n.links {
		if l.Directed == DirectedYes {
			directed = true
			break
		}
	}
	n.Metadata.IsDirected = directed
	return directed
}

// DetectBipartite runs a BFS two-coloring over the whole network (one
// BFS per connected component) and sets Metadata.IsBipartite.
func (n *Network) DetectBipartite() bool {
	color := make(map[NodeId]bool, len(n.nodeOrder))
	bipartite := true

outer:
	for _, start := range n.nodeOrder {
		if _, seen := color[start]; seen {
			continue
		}
		color[start] = false
		queue := []NodeId{start}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			c := color[id]
			for _, nb := range n.Neighbors(id) {
				if nc, seen := color[nb]; seen {
					if nc == c {
						bipartite = false
						break outer
					}
					continue
				}
				color[nb] = !c
				queue = append(queue, nb)
			}
		}
	}

	n.Metadata.IsBipartite = &bipartite
	return bipartite
}

// DetectDAG runs Kahn's algorithm over directed, non-shadow links and
// sets Metadata.IsDAG. A non-directed network is never a DAG.
func (n *Network) DetectDAG() bool {
	if !n.Metadata.IsDirected {
		isDAG := false
		n.Metadata.IsDAG = &isDAG
		return false
	}

	inDegree := make(map[NodeId]int, len(n.nodeOrder))
	outgoing := make(map[NodeId][]NodeId, len(n.nodeOrder))
	for _, id := range n.nodeOrder {
		inDegree[id] = 0
	}
	for _, l := range n.links {
		if l.Directed != DirectedYes || l.IsShadow {
			continue
		}
		inDegree[l.Target]++
		outgoing[l.Source] = append(outgoing[l.Source], l.Target)
	}

	var queue []NodeId
	for _, id := range n.nodeOrder {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, tgt := range outgoing[id] {
			inDegree[tgt]--
			if inDegree[tgt] == 0 {
				queue = append(queue, tgt)
			}
		}
	}

	isDAG := visited == len(n.nodeOrder)
	n.Metadata.IsDAG = &isDAG
	return isDAG
}
