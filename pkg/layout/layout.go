// Package layout defines the layout result types shared by every node
// and edge layout algorithm: NodeLayout, LinkLayout, NetworkLayout, and
// the annotation sets that ride alongside them.
//
// # Dual Column Tracking
//
// A NetworkLayout always carries two column streams — one including
// shadow links ("shadow-on") and one excluding them ("shadow-off") — so
// that toggling the display's show_shadows flag never requires
// recomputing layout. See ColumnNoShadows on LinkLayout and the four
// column-span fields on NodeLayout.
package layout

import (
	"sort"

	"github.com/biofabric/biofabric/pkg/graph"
)

// ColumnRange is an inclusive [Start, End] range of grid columns (or, in
// annotation contexts, of rows). An empty range is represented with
// Start > End.
type ColumnRange struct {
	Start, End int
}

// Empty reports whether the range has no members.
func (r ColumnRange) Empty() bool {
	return r.Start > r.End
}

// DrainZones holds a node's precomputed trailing (plain) and leading
// (shadow) contiguous column ranges, used by the renderer to draw a
// node's label anchor. Present only when precomputed (e.g. after
// submodel extraction); otherwise derivable on demand from the link
// list.
type DrainZones struct {
	Plain  ColumnRange
	Shadow ColumnRange
}

// NodeLayout is the placement of one node: its row, and the column
// spans of its incident links in shadow-on and shadow-off space.
type NodeLayout struct {
	Row                int
	MinCol, MaxCol     int
	MinColNoShadows    int
	MaxColNoShadows    int
	ColorIndex         int
	ClusterTag         string
	DrainZones         *DrainZones
}

// LinkLayout is the placement of one link: its column in shadow-on
// space (always present) and shadow-off space (present only for
// non-shadow links, and always ≤ Column).
type LinkLayout struct {
	Column           int
	ColumnNoShadows  *int
	SourceRow        int
	TargetRow        int
	Source           graph.NodeId
	Target           graph.NodeId
	Relation         string
	IsShadow         bool
	ColorIndex       int
	Directed         graph.Directedness
}

// TopRow and BottomRow are the row extremes of a placed link.
func (l LinkLayout) TopRow() int {
	if l.SourceRow < l.TargetRow {
		return l.SourceRow
	}
	return l.TargetRow
}

func (l LinkLayout) BottomRow() int {
	if l.SourceRow > l.TargetRow {
		return l.SourceRow
	}
	return l.TargetRow
}

// Annotation is a labeled, colored range — a row range for node
// annotations (level/cluster boundaries) or a column range for link
// annotations (link-group boundaries).
type Annotation struct {
	Label string
	Start int
	End   int
	Color string // hex RGBA string, or "" for no explicit color
}

// NetworkLayout is the full layout container: ordered links, an order-
// preserving node map, totals, and the three annotation sets.
type NetworkLayout struct {
	Links                    []LinkLayout
	nodeOrder                []graph.NodeId
	nodes                    map[graph.NodeId]NodeLayout

	RowCount               int
	ColumnCount            int
	ColumnCountNoShadows   int
	LinkGroupOrder         []string

	NodeAnnotations          []Annotation
	LinkAnnotations          []Annotation
	LinkAnnotationsNoShadows []Annotation
}

// NewNetworkLayout creates an empty NetworkLayout.
func NewNetworkLayout() *NetworkLayout {
	return &NetworkLayout{nodes: make(map[graph.NodeId]NodeLayout)}
}

// SetNode installs or replaces a node's layout, preserving insertion
// order for new IDs.
func (nl *NetworkLayout) SetNode(id graph.NodeId, layout NodeLayout) {
	if _, ok := nl.nodes[id]; !ok {
		nl.nodeOrder = append(nl.nodeOrder, id)
	}
	nl.nodes[id] = layout
}

// Node returns the layout for id, and whether it is present.
func (nl *NetworkLayout) Node(id graph.NodeId) (NodeLayout, bool) {
	n, ok := nl.nodes[id]
	return n, ok
}

// NodeOrder returns node IDs in the order they were first set.
func (nl *NetworkLayout) NodeOrder() []graph.NodeId {
	out := make([]graph.NodeId, len(nl.nodeOrder))
	copy(out, nl.nodeOrder)
	return out
}

// NodeCount returns the number of nodes carrying a layout.
func (nl *NetworkLayout) NodeCount() int {
	return len(nl.nodeOrder)
}

// SortLinksByColumn reorders Links in strictly increasing Column order,
// as required by the invariant that LinkLayouts are listed in column
// order.
func (nl *NetworkLayout) SortLinksByColumn() {
	sort.SliceStable(nl.Links, func(i, j int) bool {
		return nl.Links[i].Column < nl.Links[j].Column
	})
}
