package align

import "github.com/biofabric/biofabric/pkg/graph"

// OrphanFilter is a merged network restricted to "orphan" edges —
// every edge touching a blue (InducedGraph1-endpoint) node — plus the
// aligned (Purple) nodes adjacent to those edges, kept as context.
type OrphanFilter struct {
	Network      *graph.Network
	ContextNodes map[graph.NodeId]bool
	// OriginalLinkIndices maps each link in Network (by position) back
	// to its index in the source MergedNetwork's Links().
	OriginalLinkIndices []int
	EdgeTypes           []EdgeType
}

// FilterOrphans builds the Orphan-mode subnetwork for m, per §4.8:
// blue nodes are the endpoints of InducedGraph1 edges; every edge
// (of any type) incident to a blue node is pulled in, along with
// whichever non-blue nodes that reach touches (kept as context when
// Purple).
func FilterOrphans(m *MergedNetwork) *OrphanFilter {
	links := m.Network.Links()

	blueNodes := make(map[graph.NodeId]bool)
	for i, l := range links {
		if l.IsShadow {
			continue
		}
		if m.EdgeTypes[i] == InducedGraph1 {
			blueNodes[l.Source] = true
			blueNodes[l.Target] = true
		}
	}

	net := graph.New()
	needed := make(map[graph.NodeId]bool)
	var indices []int
	var types []EdgeType

	for i, l := range links {
		if l.IsShadow {
			continue
		}
		if !blueNodes[l.Source] && !blueNodes[l.Target] {
			continue
		}
		net.AddLink(l)
		indices = append(indices, i)
		types = append(types, m.EdgeTypes[i])
		needed[l.Source] = true
		needed[l.Target] = true
	}

	context := make(map[graph.NodeId]bool)
	for id := range needed {
		if m.NodeColors[id] == Purple {
			context[id] = true
		}
	}

	return &OrphanFilter{
		Network:             net,
		ContextNodes:        context,
		OriginalLinkIndices: indices,
		EdgeTypes:           types,
	}
}

// IsOrphanType reports whether t is one of the four orphan-typed edge
// classes (HalfOrphanGraph1, FullOrphanGraph1, HalfUnalignedGraph2,
// FullUnalignedGraph2).
func IsOrphanType(t EdgeType) bool {
	return t.IsOrphan()
}

// OrphanEdgeCount returns the number of edges retained in the filtered
// subnetwork.
func (f *OrphanFilter) OrphanEdgeCount() int {
	return f.Network.LinkCount()
}

// ContextNodeCount returns the number of aligned (Purple) nodes kept
// for structural anchoring.
func (f *OrphanFilter) ContextNodeCount() int {
	return len(f.ContextNodes)
}
