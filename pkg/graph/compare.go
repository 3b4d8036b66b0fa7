package graph

import "sort"

// NodeComparison is the result of comparing the neighborhoods of two
// nodes: their shared and exclusive neighbor sets plus Jaccard
// similarity.
type NodeComparison struct {
	NodeA, NodeB           NodeId
	DegreeA, DegreeB       int
	SharedNeighbors        []NodeId
	ExclusiveA, ExclusiveB []NodeId
	JaccardSimilarity      float64
}

// CompareNodes compares the neighbor sets of a and b. Returns a NotFound
// *errors.Error if either node is absent from the network.
func (n *Network) CompareNodes(a, b NodeId) (*NodeComparison, error) {
	if !n.ContainsNode(a) {
		return nil, compareNodesNotFound(a)
	}
	if !n.ContainsNode(b) {
		return nil, compareNodesNotFound(b)
	}

	neighborsA := toSet(n.Neighbors(a))
	neighborsB := toSet(n.Neighbors(b))

	var shared, exclusiveA, exclusiveB []NodeId
	for id := range neighborsA {
		if neighborsB[id] {
			shared = append(shared, id)
		} else {
			exclusiveA = append(exclusiveA, id)
		}
	}
	for id := range neighborsB {
		if !neighborsA[id] {
			exclusiveB = append(exclusiveB, id)
		}
	}

	unionSize := len(neighborsA) + len(neighborsB) - len(shared)
	var jaccard float64
	if unionSize == 0 {
		jaccard = 1.0
	} else {
		jaccard = float64(len(shared)) / float64(unionSize)
	}

	sortIds(shared)
	sortIds(exclusiveA)
	sortIds(exclusiveB)

	return &NodeComparison{
		NodeA:             a,
		NodeB:             b,
		DegreeA:           len(neighborsA),
		DegreeB:           len(neighborsB),
		SharedNeighbors:   shared,
		ExclusiveA:        exclusiveA,
		ExclusiveB:        exclusiveB,
		JaccardSimilarity: jaccard,
	}, nil
}

func toSet(ids []NodeId) map[NodeId]bool {
	set := make(map[NodeId]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sortIds(ids []NodeId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
