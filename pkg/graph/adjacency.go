package graph

import "sort"

// rebuildAdjacencyIndex populates byNode with, for every link index i,
// an entry under both endpoints — except for self-loops, which are
// recorded only once.
func (n *Network) rebuildAdjacencyIndex() {
	byNode := make(map[NodeId][]int, len(n.nodeOrder))
	for _, id := range n.nodeOrder {
		byNode[id] = nil
	}
	for i, link := range n.links {
		byNode[link.Source] = append(byNode[link.Source], i)
		if link.Source != link.Target {
			byNode[link.Target] = append(byNode[link.Target], i)
		}
	}
	n.adjacency.byNode = byNode
	n.adjacency.built = true
}

func (n *Network) indicesFor(id NodeId) ([]int, bool) {
	if !n.adjacency.built {
		n.rebuildAdjacencyIndex()
	}
	idx, ok := n.adjacency.byNode[id]
	return idx, ok
}

// LinksForNode returns every link incident to id, as source or target.
func (n *Network) LinksForNode(id NodeId) []Link {
	indices, _ := n.indicesFor(id)
	out := make([]Link, 0, len(indices))
	for _, i := range indices {
		out = append(out, n.links[i])
	}
	return out
}

// Degree returns the number of links incident to id.
func (n *Network) Degree(id NodeId) int {
	indices, _ := n.indicesFor(id)
	return len(indices)
}

// Neighbors returns the distinct node IDs adjacent to id, sorted
// lexicographically.
func (n *Network) Neighbors(id NodeId) []NodeId {
	indices, _ := n.indicesFor(id)
	seen := make(map[NodeId]bool, len(indices))
	for _, i := range indices {
		link := n.links[i]
		if link.Source == id {
			seen[link.Target] = true
		} else if link.Target == id {
			seen[link.Source] = true
		}
	}
	out := make([]NodeId, 0, len(seen))
	for nb := range seen {
		out = append(out, nb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
