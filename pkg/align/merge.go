package align

import (
	"sort"

	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// MergedNetwork is the result of fusing G1 and G2 under an alignment: a
// single Network whose nodes are tagged Purple/Blue/Red and whose links
// carry a parallel EdgeType classification.
type MergedNetwork struct {
	Network *graph.Network

	NodeColors map[graph.NodeId]NodeColor
	// EdgeTypes is parallel to Network.Links(): EdgeTypes[i] classifies
	// Network.Links()[i].
	EdgeTypes  []EdgeType
	NodeOrigin map[graph.NodeId]MergedNodeId

	// MergedToCorrect holds per-node correctness against a supplied
	// perfect alignment. Nil unless Merge was called with one.
	MergedToCorrect map[graph.NodeId]bool

	G1NodeCount  int
	G2NodeCount  int
	AlignedCount int
}

// CountByEdgeType returns the number of non-shadow links of type t.
// Shadow links mirror a real link's type, so they are excluded to avoid
// double-counting.
func (m *MergedNetwork) CountByEdgeType(t EdgeType) int {
	count := 0
	links := m.Network.Links()
	for i, l := range links {
		if l.IsShadow {
			continue
		}
		if m.EdgeTypes[i] == t {
			count++
		}
	}
	return count
}

// realNodeSet collects every node referenced by a non-shadow link, plus
// every lone node, in a deterministic (sorted) order.
func realNodeSet(net *graph.Network) []graph.NodeId {
	seen := make(map[graph.NodeId]bool)
	for _, l := range net.Links() {
		if l.IsShadow {
			continue
		}
		seen[l.Source] = true
		seen[l.Target] = true
	}
	for _, id := range net.LoneNodes() {
		seen[id] = true
	}
	out := make([]graph.NodeId, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type edgeKey struct{ a, b graph.NodeId }

func normalize(a, b graph.NodeId) edgeKey {
	if a <= b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// normalizedEdges deduplicates net's non-shadow links by normalized
// endpoint pair, rewriting each endpoint through lookup. Links whose
// endpoint is absent from lookup are skipped — callers guarantee every
// referenced node has an entry.
func normalizedEdges(net *graph.Network, lookup map[graph.NodeId]graph.NodeId) []edgeKey {
	seen := make(map[edgeKey]bool)
	var out []edgeKey
	for _, l := range net.Links() {
		if l.IsShadow {
			continue
		}
		src, srcOK := lookup[l.Source]
		tgt, tgtOK := lookup[l.Target]
		if !srcOK || !tgtOK {
			continue
		}
		key := normalize(src, tgt)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// Merge fuses g1 and g2 under alignment, classifying every node and
// edge per §4.6. perfect, when non-nil, enables per-node correctness
// tracking in the returned MergedNetwork.MergedToCorrect.
func Merge(g1, g2 *graph.Network, alignment AlignmentMap, perfect AlignmentMap, mon *progress.Monitor) (*MergedNetwork, error) {
	g1Nodes := realNodeSet(g1)
	g2Nodes := realNodeSet(g2)
	mon = ensureMonitor(mon, len(g1Nodes)+len(g2Nodes))

	alignedG2 := make(map[graph.NodeId]bool, len(alignment))
	for _, g2n := range alignment {
		alignedG2[g2n] = true
	}

	g1ToMerged := make(map[graph.NodeId]graph.NodeId)
	g2ToMerged := make(map[graph.NodeId]graph.NodeId)
	nodeColors := make(map[graph.NodeId]NodeColor)
	nodeOrigin := make(map[graph.NodeId]MergedNodeId)
	var correct map[graph.NodeId]bool
	if perfect != nil {
		correct = make(map[graph.NodeId]bool)
	}

	// 1a. Purple nodes, in deterministic G1-key order.
	g1Keys := make([]graph.NodeId, 0, len(alignment))
	for g1n := range alignment {
		g1Keys = append(g1Keys, g1n)
	}
	sort.Slice(g1Keys, func(i, j int) bool { return g1Keys[i] < g1Keys[j] })
	for _, g1n := range g1Keys {
		g2n := alignment[g1n]
		merged := aligned(g1n, g2n)
		id := merged.ToNodeID()
		nodeColors[id] = Purple
		nodeOrigin[id] = merged
		g1ToMerged[g1n] = id
		g2ToMerged[g2n] = id
		if correct != nil {
			correct[id] = perfect[g1n] == g2n
		}
	}

	// 1b. Blue nodes: G1 nodes absent from the alignment's domain.
	for _, g1n := range g1Nodes {
		if mon.Cancelled() {
			return nil, cancelled("align.Merge")
		}
		if _, ok := g1ToMerged[g1n]; ok {
			continue
		}
		merged := g1Only(g1n)
		id := merged.ToNodeID()
		nodeColors[id] = Blue
		nodeOrigin[id] = merged
		g1ToMerged[g1n] = id
		if correct != nil {
			_, hasPerfect := perfect[g1n]
			correct[id] = !hasPerfect
		}
		mon.Step()
	}

	// 1c. Red nodes: G2 nodes absent from the alignment's image.
	for _, g2n := range g2Nodes {
		if mon.Cancelled() {
			return nil, cancelled("align.Merge")
		}
		if _, ok := g2ToMerged[g2n]; ok {
			continue
		}
		merged := g2Only(g2n)
		id := merged.ToNodeID()
		nodeColors[id] = Red
		nodeOrigin[id] = merged
		g2ToMerged[g2n] = id
		mon.Step()
	}

	g1Edges := normalizedEdges(g1, g1ToMerged)
	g2Edges := normalizedEdges(g2, g2ToMerged)

	g1EdgeSet := make(map[edgeKey]bool, len(g1Edges))
	for _, e := range g1Edges {
		g1EdgeSet[e] = true
	}
	g2EdgeSet := make(map[edgeKey]bool, len(g2Edges))
	for _, e := range g2Edges {
		g2EdgeSet[e] = true
	}

	alignedMergedG1 := make(map[graph.NodeId]bool)
	for g1n := range alignment {
		alignedMergedG1[g1ToMerged[g1n]] = true
	}
	alignedMergedG2 := make(map[graph.NodeId]bool)
	for _, g2n := range alignment {
		alignedMergedG2[g2ToMerged[g2n]] = true
	}

	net := graph.New()
	var edgeTypes []EdgeType

	addClassified := func(e edgeKey, t EdgeType) {
		tag := t.ShortCode()
		net.AddLink(graph.Link{Source: e.a, Target: e.b, Relation: tag})
		edgeTypes = append(edgeTypes, t)
		if e.a != e.b {
			net.AddLink(graph.Link{Source: e.b, Target: e.a, Relation: tag, IsShadow: true})
			edgeTypes = append(edgeTypes, t)
		}
	}

	// G2 edges first, matching the reference merge order.
	for _, e := range g2Edges {
		var t EdgeType
		switch {
		case g1EdgeSet[e]:
			t = Covered
		case alignedMergedG2[e.a] && alignedMergedG2[e.b]:
			t = InducedGraph2
		case alignedMergedG2[e.a] || alignedMergedG2[e.b]:
			t = HalfUnalignedGraph2
		default:
			t = FullUnalignedGraph2
		}
		addClassified(e, t)
	}

	// G1 edges not already covered.
	for _, e := range g1Edges {
		if g2EdgeSet[e] {
			continue
		}
		var t EdgeType
		switch {
		case alignedMergedG1[e.a] && alignedMergedG1[e.b]:
			t = InducedGraph1
		case alignedMergedG1[e.a] || alignedMergedG1[e.b]:
			t = HalfOrphanGraph1
		default:
			t = FullOrphanGraph1
		}
		addClassified(e, t)
	}

	for _, lone := range g1.LoneNodes() {
		if id, ok := g1ToMerged[lone]; ok {
			net.AddLoneNode(id)
		}
	}
	for _, lone := range g2.LoneNodes() {
		if id, ok := g2ToMerged[lone]; ok {
			net.AddLoneNode(id)
		}
	}

	return &MergedNetwork{
		Network:         net,
		NodeColors:      nodeColors,
		EdgeTypes:       edgeTypes,
		NodeOrigin:      nodeOrigin,
		MergedToCorrect: correct,
		G1NodeCount:     len(g1Nodes),
		G2NodeCount:     len(g2Nodes),
		AlignedCount:    len(alignment),
	}, nil
}

// NodeCorrectness returns the NC metric: the fraction of tracked nodes
// (Purple and Blue; Red nodes are never tracked) whose MergedToCorrect
// entry is true. Returns (0, false) if no perfect alignment was
// supplied to Merge.
func (m *MergedNetwork) NodeCorrectness() (float64, bool) {
	if m.MergedToCorrect == nil {
		return 0, false
	}
	if len(m.MergedToCorrect) == 0 {
		return 0, true
	}
	correctCount := 0
	for _, ok := range m.MergedToCorrect {
		if ok {
			correctCount++
		}
	}
	return float64(correctCount) / float64(len(m.MergedToCorrect)), true
}
