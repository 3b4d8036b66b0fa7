// Package edge implements the edge-placement family of layout
// algorithms: given a node row order (from pkg/layout/node), it assigns
// every link — real and shadow — a column, computing both the
// shadow-on and shadow-off column streams in one pass.
package edge

import (
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
	"github.com/biofabric/biofabric/pkg/progress"
)

// LayoutMode selects where a link's group ordinal falls in the sort
// key: PerNode keeps it a tiebreaker within a node's own incident
// links (the default), while PerNetwork promotes it to the primary
// key so every link of a relation group clusters together across the
// whole network before row position is considered at all.
type LayoutMode int

const (
	// PerNode orders links by row position first, link group only as
	// a tiebreaker — the default, minimizing each node's span.
	PerNode LayoutMode = iota
	// PerNetwork orders links by link-group ordinal first, globally
	// grouping every link of a relation together ahead of row
	// position.
	PerNetwork
)

// String returns the config-file key for mode ("per_node"/"per_network").
func (m LayoutMode) String() string {
	if m == PerNetwork {
		return "per_network"
	}
	return "per_node"
}

// Params configures link-group annotation behavior. An empty Params
// produces an ungrouped layout: every link sorts purely by row/
// direction/relation, with no group annotations installed.
type Params struct {
	// LinkGroups is the ordered list of relation groups that defines
	// both the primary sort key and the annotation/legend order. A
	// link's group is the longest suffix of LinkGroups matching its
	// relation label (see bestSuffixMatch); links matching no group
	// sort after every grouped link.
	LinkGroups []string
	// ColorMap overrides the auto-generated annotation color for a
	// relation group. Groups absent from ColorMap get a color cycled
	// from a fixed palette, keyed by their position in LinkGroups.
	ColorMap map[string]string
	// LayoutMode selects whether the link-group ordinal is a per-node
	// tiebreaker or the network-wide primary sort key. Zero value is
	// PerNode.
	LayoutMode LayoutMode
}

// Layout assigns columns to a network's links, given a fixed node row
// order.
type Layout interface {
	LayoutEdges(net *graph.Network, nodeOrder []graph.NodeId, params Params, mon *progress.Monitor) (*layout.NetworkLayout, error)
	Name() string
}

// Default places links to keep each node's incident edges close
// together: links are sorted by an interleaved real/shadow comparator
// (see sortkey.go) and assigned sequential columns in that order. Every
// non-self-loop real link gets a shadow mirror via
// graph.Network.GenerateShadows before sorting, so the result always
// carries the full shadow-on stream; the shadow-off stream is derived
// in the same pass by giving only non-shadow links a column_no_shadows.
type Default struct{}

// LayoutEdges implements Layout.
func (Default) LayoutEdges(net *graph.Network, nodeOrder []graph.NodeId, params Params, mon *progress.Monitor) (*layout.NetworkLayout, error) {
	net.GenerateShadows()

	rowOf := make(map[graph.NodeId]int, len(nodeOrder))
	for i, id := range nodeOrder {
		rowOf[id] = i
	}

	links := append([]graph.Link(nil), net.Links()...)
	mon = ensureMonitor(mon, len(links))

	groupOf := make(map[string]int, len(params.LinkGroups))
	relationGroup := make(map[string]string)
	for _, l := range links {
		if _, done := relationGroup[l.Relation]; done {
			continue
		}
		relationGroup[l.Relation] = bestSuffixMatch(l.Relation, params.LinkGroups)
	}
	for i, g := range params.LinkGroups {
		groupOf[g] = i
	}
	ordinal := func(relation string) int {
		g := relationGroup[relation]
		if g == "" {
			return len(params.LinkGroups)
		}
		return groupOf[g]
	}

	keyed := make([]sortable, len(links))
	for i, l := range links {
		keyed[i] = sortable{link: l, topRow: rowOf[l.Source], bottomRow: rowOf[l.Target], ordinal: ordinal(l.Relation)}
		if keyed[i].topRow > keyed[i].bottomRow {
			keyed[i].topRow, keyed[i].bottomRow = keyed[i].bottomRow, keyed[i].topRow
		}
	}
	sortLinks(keyed, params.LayoutMode)

	nl := layout.NewNetworkLayout()
	nl.Links = make([]layout.LinkLayout, 0, len(keyed))
	nl.RowCount = len(nodeOrder)
	nl.LinkGroupOrder = append([]string(nil), params.LinkGroups...)

	nodes := make(map[graph.NodeId]layout.NodeLayout, len(nodeOrder))
	for _, id := range nodeOrder {
		nodes[id] = layout.NodeLayout{MinCol: -1, MaxCol: -1, MinColNoShadows: -1, MaxColNoShadows: -1}
	}

	noShadowCol := 0
	for i, k := range keyed {
		if mon.Cancelled() {
			return nil, cancelled("edge.Default")
		}
		l := k.link
		ll := layout.LinkLayout{
			Column:    i,
			SourceRow: rowOf[l.Source],
			TargetRow: rowOf[l.Target],
			Source:    l.Source,
			Target:    l.Target,
			Relation:  l.Relation,
			IsShadow:  l.IsShadow,
			Directed:  l.Directed,
		}
		if !l.IsShadow {
			col := noShadowCol
			ll.ColumnNoShadows = &col
			noShadowCol++
		}
		nl.Links = append(nl.Links, ll)

		updateSpan(nodes, l.Source, i, ll.ColumnNoShadows)
		updateSpan(nodes, l.Target, i, ll.ColumnNoShadows)
		mon.Step()
	}

	nl.ColumnCount = len(keyed)
	nl.ColumnCountNoShadows = noShadowCol

	for _, id := range nodeOrder {
		n := nodes[id]
		n.Row = rowOf[id]
		if n.MinCol < 0 {
			n.MinCol, n.MaxCol = 0, -1 // empty span
		}
		if n.MinColNoShadows < 0 {
			n.MinColNoShadows, n.MaxColNoShadows = 0, -1
		}
		nl.SetNode(id, n)
	}

	if len(params.LinkGroups) > 0 {
		colors := resolveColors(params.LinkGroups, params.ColorMap)
		nl.LinkAnnotations = calcGroupLinkAnnotations(nl, true, colors)
		nl.LinkAnnotationsNoShadows = calcGroupLinkAnnotations(nl, false, colors)
	}

	return nl, nil
}

// Name implements Layout.
func (Default) Name() string { return "Default (minimize span)" }

func updateSpan(nodes map[graph.NodeId]layout.NodeLayout, id graph.NodeId, col int, colNoShadow *int) {
	n := nodes[id]
	if n.MinCol < 0 || col < n.MinCol {
		n.MinCol = col
	}
	if col > n.MaxCol {
		n.MaxCol = col
	}
	if colNoShadow != nil {
		if n.MinColNoShadows < 0 || *colNoShadow < n.MinColNoShadows {
			n.MinColNoShadows = *colNoShadow
		}
		if *colNoShadow > n.MaxColNoShadows {
			n.MaxColNoShadows = *colNoShadow
		}
	}
	nodes[id] = n
}
