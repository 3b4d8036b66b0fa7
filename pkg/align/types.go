// Package align implements network alignment merging: fusing two
// networks under a partial node mapping into a single MergedNetwork
// with a 7-way edge-type classification and a 3-way node-color
// classification. Downstream packages (pkg/align/cycle,
// pkg/align/layout, pkg/align/score) build on the MergedNetwork this
// package produces.
package align

import "github.com/biofabric/biofabric/pkg/graph"

// NodeColor classifies a merged node by which side(s) of the alignment
// it came from.
type NodeColor int

const (
	// Purple nodes are aligned: present in both G1 and G2.
	Purple NodeColor = iota
	// Blue nodes are G1-only: unaligned in the supplied alignment.
	Blue
	// Red nodes are G2-only: not in the alignment's image.
	Red
)

// String returns the single-character code used in node-group tags.
func (c NodeColor) String() string {
	switch c {
	case Purple:
		return "P"
	case Blue:
		return "b"
	case Red:
		return "r"
	default:
		return "?"
	}
}

// priority orders node groups Purple < Blue < Red, per §4.8.
func (c NodeColor) priority() int {
	switch c {
	case Purple:
		return 0
	case Blue:
		return 1
	default:
		return 2
	}
}

// EdgeType classifies a merged link by which graph(s) it came from and
// the alignment status of its endpoints.
type EdgeType int

const (
	// Covered edges are present in both G1 and G2.
	Covered EdgeType = iota
	// InducedGraph1 edges have both endpoints aligned but the edge is
	// present only in G1.
	InducedGraph1
	// HalfOrphanGraph1 edges have exactly one endpoint aligned, the
	// edge present only in G1.
	HalfOrphanGraph1
	// FullOrphanGraph1 edges have neither endpoint aligned, the edge
	// present only in G1.
	FullOrphanGraph1
	// InducedGraph2 edges have both endpoints aligned but the edge is
	// present only in G2.
	InducedGraph2
	// HalfUnalignedGraph2 edges have exactly one endpoint aligned, the
	// edge present only in G2.
	HalfUnalignedGraph2
	// FullUnalignedGraph2 edges have neither endpoint aligned, the
	// edge present only in G2.
	FullUnalignedGraph2
)

// AllEdgeTypes returns the 7 edge types in canonical order, used both
// for node-group edge-type sets and for link-group ratio vectors.
func AllEdgeTypes() []EdgeType {
	return []EdgeType{
		Covered,
		InducedGraph1,
		HalfOrphanGraph1,
		FullOrphanGraph1,
		InducedGraph2,
		HalfUnalignedGraph2,
		FullUnalignedGraph2,
	}
}

// ShortCode returns the short tag used as a merged link's relation
// label. G1-side orphan tags follow the "<src><B><dst>" pattern (p =
// purple/aligned, b = blue/unaligned-G1); G2-side unaligned tags follow
// the analogous "<src><R><dst>" pattern with r = red/unaligned-G2.
func (t EdgeType) ShortCode() string {
	switch t {
	case Covered:
		return "G12"
	case InducedGraph1:
		return "pBp"
	case HalfOrphanGraph1:
		return "pBb"
	case FullOrphanGraph1:
		return "bBb"
	case InducedGraph2:
		return "pRp"
	case HalfUnalignedGraph2:
		return "pRr"
	case FullUnalignedGraph2:
		return "rRr"
	default:
		return "?"
	}
}

// IsGraph1 reports whether an edge type is one of the G1-only
// (induced/orphan) types, used by JS scoring to split a merged node's
// neighbors by origin graph.
func (t EdgeType) IsGraph1() bool {
	switch t {
	case InducedGraph1, HalfOrphanGraph1, FullOrphanGraph1:
		return true
	default:
		return false
	}
}

// IsGraph2 reports whether an edge type is one of the G2-only
// (induced/unaligned) types.
func (t EdgeType) IsGraph2() bool {
	switch t {
	case InducedGraph2, HalfUnalignedGraph2, FullUnalignedGraph2:
		return true
	default:
		return false
	}
}

// IsOrphan reports whether an edge type involves at least one
// unaligned endpoint — the edges shown by Orphan-mode layout.
func (t EdgeType) IsOrphan() bool {
	switch t {
	case HalfOrphanGraph1, FullOrphanGraph1, HalfUnalignedGraph2, FullUnalignedGraph2:
		return true
	default:
		return false
	}
}

// AlignmentMap is a partial mapping from a G1 node to a G2 node. It is
// neither injective nor total in general, though callers typically
// supply an injective map.
type AlignmentMap map[graph.NodeId]graph.NodeId

// Inverse returns the G2->G1 inverse of m. Where m is not injective,
// later iteration order (map order, i.e. unspecified) wins; callers
// relying on Inverse should supply injective alignments.
func (m AlignmentMap) Inverse() AlignmentMap {
	inv := make(AlignmentMap, len(m))
	for g1, g2 := range m {
		inv[g2] = g1
	}
	return inv
}

// MergedNodeId names a node of the merged network: the "g1::g2" form
// for an aligned node, "g1::" for a G1-only node, or "::g2" for a
// G2-only node.
type MergedNodeId struct {
	G1 graph.NodeId // empty if this is a Red (G2-only) node
	G2 graph.NodeId // empty if this is a Blue (G1-only) node
}

// ToNodeID renders the merged node's canonical "g1::g2" identifier.
func (m MergedNodeId) ToNodeID() graph.NodeId {
	return graph.NodeId(string(m.G1) + "::" + string(m.G2))
}

func aligned(g1, g2 graph.NodeId) MergedNodeId  { return MergedNodeId{G1: g1, G2: g2} }
func g1Only(g1 graph.NodeId) MergedNodeId       { return MergedNodeId{G1: g1} }
func g2Only(g2 graph.NodeId) MergedNodeId       { return MergedNodeId{G2: g2} }
