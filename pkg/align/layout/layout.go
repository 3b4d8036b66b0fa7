// Package layout implements the three alignment-aware layout modes —
// Group, Orphan, and Cycle — that lay out a MergedNetwork for display,
// building on pkg/layout/node and pkg/layout/edge's Default algorithms.
package layout

import (
	"fmt"
	"sort"

	"github.com/biofabric/biofabric/pkg/align"
	"github.com/biofabric/biofabric/pkg/align/cycle"
	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
	"github.com/biofabric/biofabric/pkg/layout/edge"
	"github.com/biofabric/biofabric/pkg/layout/node"
	"github.com/biofabric/biofabric/pkg/progress"
)

// Mode selects which alignment-aware layout to build.
type Mode int

const (
	// Group orders nodes by their node-group classification, BFS within
	// each group, with one node annotation per group.
	Group Mode = iota
	// Orphan filters to every edge (of any type) touching an endpoint
	// of an InducedGraph1 edge, then applies the Default node/edge
	// layout to the filtered graph.
	Orphan
	// Cycle orders correct singletons first, then every other detected
	// chain in case order, unrolled in walk order, with cycle-aware
	// link annotations.
	Cycle
)

func (m Mode) String() string {
	switch m {
	case Group:
		return "Alignment (Group)"
	case Orphan:
		return "Alignment (Orphan)"
	case Cycle:
		return "Alignment (Cycle)"
	default:
		return "Alignment (unknown)"
	}
}

func cancelled(op string) *biofabric.Error {
	return biofabric.New(biofabric.ErrCodeCancelled, "%s: alignment layout cancelled", op)
}

func ensureMonitor(mon *progress.Monitor, total int) *progress.Monitor {
	if mon != nil {
		return mon
	}
	return progress.New(nil, total)
}

// linkGroupOrder is the 7 EdgeType short codes, in canonical order —
// used as both the sort key and the annotation/legend order for Group
// and Cycle mode edge layouts.
func linkGroupOrder() []string {
	var out []string
	for _, t := range align.AllEdgeTypes() {
		out = append(out, t.ShortCode())
	}
	return out
}

// Build lays out merged according to mode. cycles is required for
// Cycle mode (the caller runs cycle.Detect separately, since it alone
// knows the full G1/G2 domains) and ignored otherwise.
func Build(merged *align.MergedNetwork, mode Mode, cycles *cycle.Cycles, mon *progress.Monitor) (*layout.NetworkLayout, error) {
	switch mode {
	case Group:
		return buildGroup(merged, mon)
	case Orphan:
		return buildOrphan(merged, mon)
	case Cycle:
		if cycles == nil {
			return nil, biofabric.New(biofabric.ErrCodeInvalidInput, "align/layout.Build: Cycle mode requires a non-nil cycle.Cycles")
		}
		return buildCycle(merged, cycles, mon)
	default:
		return nil, biofabric.New(biofabric.ErrCodeInvalidInput, "align/layout.Build: unknown mode %d", int(mode))
	}
}

// groupNodeColor renders a node-group's display color by its
// NodeColor, distinct from the fixed per-tag colors used in Cycle
// mode's edge annotations.
func groupNodeColor(c align.NodeColor) string {
	switch c {
	case align.Purple:
		return "#800080"
	case align.Blue:
		return "#4682B4" // steel blue
	default: // Red
		return "#B22222" // firebrick
	}
}

func buildGroup(merged *align.MergedNetwork, mon *progress.Monitor) (*layout.NetworkLayout, error) {
	groups := align.BuildNodeGroups(merged)
	mon = ensureMonitor(mon, merged.Network.NodeCount())

	var nodeOrder []graph.NodeId
	var nodeAnnotations []layout.Annotation
	pos := 0
	for _, g := range groups.Groups {
		if mon.Cancelled() {
			return nil, cancelled("align/layout.Group")
		}
		ordered := bfsWithin(merged.Network, g.Members)
		nodeOrder = append(nodeOrder, ordered...)
		if len(ordered) > 0 {
			nodeAnnotations = append(nodeAnnotations, layout.Annotation{
				Label: g.Tag,
				Start: pos,
				End:   pos + len(ordered) - 1,
				Color: groupNodeColor(g.Color),
			})
		}
		pos += len(ordered)
		mon.Step()
	}

	colors := make(map[string]string, 7)
	for _, code := range linkGroupOrder() {
		colors[code] = "#CCCCCC" // grayscale: node annotations already carry color
	}
	nl, err := edge.Default{}.LayoutEdges(merged.Network, nodeOrder, edge.Params{LinkGroups: linkGroupOrder(), ColorMap: colors}, mon)
	if err != nil {
		return nil, err
	}
	nl.NodeAnnotations = nodeAnnotations
	return nl, nil
}

// bfsWithin orders members by BFS restricted to edges between members
// of the same set (the induced subgraph), repeating from the
// lowest-ID unvisited member whenever a component runs dry.
func bfsWithin(net *graph.Network, members []graph.NodeId) []graph.NodeId {
	memberSet := make(map[graph.NodeId]bool, len(members))
	for _, id := range members {
		memberSet[id] = true
	}
	sorted := append([]graph.NodeId(nil), members...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	visited := make(map[graph.NodeId]bool, len(members))
	var order []graph.NodeId

	bfsFrom := func(start graph.NodeId) {
		queue := []graph.NodeId{start}
		visited[start] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			order = append(order, id)
			neighbors := append([]graph.NodeId(nil), net.Neighbors(id)...)
			sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
			for _, nb := range neighbors {
				if memberSet[nb] && !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}

	for _, id := range sorted {
		if !visited[id] {
			bfsFrom(id)
		}
	}
	return order
}

func buildOrphan(merged *align.MergedNetwork, mon *progress.Monitor) (*layout.NetworkLayout, error) {
	filter := align.FilterOrphans(merged)
	mon = ensureMonitor(mon, filter.Network.NodeCount())

	nodeOrder, err := node.Default{}.LayoutNodes(filter.Network, node.Params{}, mon)
	if err != nil {
		return nil, err
	}
	return edge.Default{}.LayoutEdges(filter.Network, nodeOrder, edge.Params{}, mon)
}

func buildCycle(merged *align.MergedNetwork, cycles *cycle.Cycles, mon *progress.Monitor) (*layout.NetworkLayout, error) {
	mon = ensureMonitor(mon, merged.Network.NodeCount())

	entries := append([]cycle.Path(nil), cycles.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		ci, cj := entries[i], entries[j]
		iCorrect, jCorrect := ci.Case.IsCorrect(), cj.Case.IsCorrect()
		if iCorrect != jCorrect {
			return iCorrect
		}
		if ci.Case != cj.Case {
			return ci.Case < cj.Case
		}
		return firstNode(ci) < firstNode(cj)
	})

	var nodeOrder []graph.NodeId
	for _, e := range entries {
		nodeOrder = append(nodeOrder, e.MergedNodes...)
		if mon.Cancelled() {
			return nil, cancelled("align/layout.Cycle")
		}
		mon.Step()
	}

	colorMap := cycleEdgeTypeColorMap()
	nl, err := edge.Default{}.LayoutEdges(merged.Network, nodeOrder, edge.Params{LinkGroups: linkGroupOrder(), ColorMap: colorMap}, mon)
	if err != nil {
		return nil, err
	}

	bounds := make([]cycle.Bound, len(cycles.Entries))
	for i, e := range cycles.Entries {
		bounds[i] = e.Bound()
	}
	nl.LinkAnnotations = calcCycleLinkAnnotations(nl, bounds, true)
	nl.LinkAnnotationsNoShadows = nil // no shadows, no diagonal: no cycle annotations (see calcCycleLinkAnnotations doc).

	return nl, nil
}

func firstNode(p cycle.Path) graph.NodeId {
	if len(p.MergedNodes) == 0 {
		return ""
	}
	return p.MergedNodes[0]
}

// cycleEdgeTypeColorMap collapses the 7 EdgeType short codes into the
// 3 fixed cycle-mode colors: Covered edges (G12) are Purple, every
// G1-family edge (induced/orphan) is PowderBlue, every G2-family edge
// (induced/unaligned) is Pink.
func cycleEdgeTypeColorMap() map[string]string {
	m := make(map[string]string, 7)
	for _, t := range align.AllEdgeTypes() {
		switch {
		case t == align.Covered:
			m[t.ShortCode()] = "#800080" // Purple
		case t.IsGraph1():
			m[t.ShortCode()] = "#B0E0E6" // PowderBlue
		case t.IsGraph2():
			m[t.ShortCode()] = "#FFC0CB" // Pink
		}
	}
	return m
}

// calcCycleLinkAnnotations walks a cycle-mode layout's links in column
// order and emits one annotation per detected chain, alternating
// Orange/Green, skipping correctly-aligned singletons. shadow=false
// always yields no annotations: without the shadow-on stream, not
// every node sits on the diagonal, so a chain's link run is
// discontinuous and cannot be bounded by a single column span.
func calcCycleLinkAnnotations(nl *layout.NetworkLayout, bounds []cycle.Bound, shadow bool) []layout.Annotation {
	if !shadow {
		return nil
	}

	zoneNode := func(ll layout.LinkLayout) graph.NodeId {
		if ll.IsShadow {
			if ll.SourceRow > ll.TargetRow {
				return ll.Source
			}
			return ll.Target
		}
		if ll.SourceRow < ll.TargetRow {
			return ll.Source
		}
		return ll.Target
	}

	var annots []layout.Annotation
	var currZoner graph.NodeId
	haveZoner := false
	var currBound cycle.Bound
	seen := make(map[graph.NodeId]bool)
	cycleIdx := 0
	startPos, endPos, count := 0, 0, 0

	finalize := func() {
		if currBound.Start != currBound.End || !currBound.IsCorrect {
			color := "#FFA500" // Orange
			if cycleIdx%2 != 0 {
				color = "#008000" // Green
			}
			kind := "path "
			if currBound.IsCycle {
				kind = "cycle "
			}
			annots = append(annots, layout.Annotation{
				Label: fmt.Sprintf("%s%d", kind, cycleIdx),
				Start: startPos,
				End:   endPos,
				Color: color,
			})
			cycleIdx++
		}
	}

	for _, ll := range nl.Links {
		if ll.IsShadow && !shadow {
			continue
		}
		zoner := zoneNode(ll)

		if !haveZoner || currZoner != zoner {
			if haveZoner && currZoner == currBound.End {
				finalize()
			}
			currZoner = zoner
			haveZoner = true
			for _, b := range bounds {
				if !seen[b.Start] && b.Start == zoner {
					startPos = count
					seen[b.Start] = true
					currBound = b
				}
			}
		}

		endPos = count
		count++
	}

	if currBound.Start != currBound.End || !currBound.IsCorrect {
		if count > 0 {
			color := "#FFA500"
			if cycleIdx%2 != 0 {
				color = "#008000"
			}
			kind := "path "
			if currBound.IsCycle {
				kind = "cycle "
			}
			annots = append(annots, layout.Annotation{
				Label: fmt.Sprintf("%s%d", kind, cycleIdx),
				Start: startPos,
				End:   endPos,
				Color: color,
			})
		}
	}

	return annots
}
