package graph

// NHopNeighborhood returns the set of node IDs within maxHops edges of
// start (start itself is always included, at 0 hops).
func (n *Network) NHopNeighborhood(start NodeId, maxHops int) map[NodeId]bool {
	visited := map[NodeId]bool{start: true}
	type frame struct {
		id    NodeId
		depth int
	}
	queue := []frame{{start, 0}}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if f.depth >= maxHops {
			continue
		}
		for _, nb := range n.Neighbors(f.id) {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, frame{nb, f.depth + 1})
			}
		}
	}
	return visited
}

// FirstNeighbors returns nodes ∪ their immediate neighbors.
func (n *Network) FirstNeighbors(nodes map[NodeId]bool) map[NodeId]bool {
	result := make(map[NodeId]bool, len(nodes))
	for id := range nodes {
		result[id] = true
	}
	for id := range nodes {
		for _, nb := range n.Neighbors(id) {
			result[nb] = true
		}
	}
	return result
}

// ExtractSubnetwork returns a new Network containing only the nodes in
// ids (those found; missing ids are silently skipped) and the links
// whose endpoints are both in ids. Lone nodes in the subset remain lone
// if they have no surviving incident links.
func (n *Network) ExtractSubnetwork(ids map[NodeId]bool) *Network {
	sub := New()
	for _, id := range n.nodeOrder {
		if !ids[id] {
			continue
		}
		node, _ := n.GetNode(id)
		sub.AddNode(node)
		if n.loneNodes[id] {
			sub.loneNodes[id] = true
		}
	}
	for _, l := range n.links {
		if ids[l.Source] && ids[l.Target] {
			sub.links = append(sub.links, l)
			delete(sub.loneNodes, l.Source)
			delete(sub.loneNodes, l.Target)
		}
	}
	sub.Metadata = n.Metadata
	if n.Metadata.DisplayName != "" {
		sub.Metadata.DisplayName = n.Metadata.DisplayName + " (subnetwork)"
	}
	return sub
}

// ExtractNeighborhood extracts the subnetwork reachable within maxHops
// of start, combining NHopNeighborhood and ExtractSubnetwork.
func (n *Network) ExtractNeighborhood(start NodeId, maxHops int) *Network {
	return n.ExtractSubnetwork(n.NHopNeighborhood(start, maxHops))
}
