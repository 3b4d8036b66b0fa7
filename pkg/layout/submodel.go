package layout

import (
	"sort"

	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
)

// compressionMap maps original integer values (sorted ascending) onto
// contiguous [0, k) positions.
type compressionMap struct {
	pos map[int]int
	max int // k-1, the global maximum compressed value; -1 if empty
}

func newCompressionMap(values map[int]bool) compressionMap {
	sorted := make([]int, 0, len(values))
	for v := range values {
		sorted = append(sorted, v)
	}
	sort.Ints(sorted)
	pos := make(map[int]int, len(sorted))
	for i, v := range sorted {
		pos[v] = i
	}
	return compressionMap{pos: pos, max: len(sorted) - 1}
}

func (m compressionMap) remap(v int) int {
	return m.pos[v]
}

// ExtractSubmodel compresses full into the layout induced by subset,
// alongside the corresponding compressed Network (via
// graph.Network.ExtractSubnetwork). Rows and both column streams are
// renumbered to contiguous [0, k); nodes or links not in the subset are
// dropped. Missing node IDs in subset are silently ignored, matching
// extract_subnetwork's own failure policy.
//
// max_col and max_col_no_shadows are deliberately set, for every
// retained node, to the compressed stream's global maximum rather than
// to that node's own rightmost incident column — this reproduces an
// intentional behavior of the reference implementation, under which a
// submodel's drain zones are treated as spanning to the canvas edge.
func ExtractSubmodel(full *NetworkLayout, net *graph.Network, subset map[graph.NodeId]bool) (*NetworkLayout, *graph.Network, error) {
	if full == nil || net == nil {
		return nil, nil, biofabric.New(biofabric.ErrCodeInternal, "ExtractSubmodel requires a non-nil layout and network").WithOp("layout.ExtractSubmodel")
	}

	// Step 1: select the subset of links whose endpoints are both in S.
	var selected []LinkLayout
	for _, l := range full.Links {
		if subset[l.Source] && subset[l.Target] {
			selected = append(selected, l)
		}
	}

	// Step 2: gather original row/column index sets.
	rowSet := make(map[int]bool)
	shadowColSet := make(map[int]bool)
	noShadowColSet := make(map[int]bool)

	for id := range subset {
		if nodeLayout, ok := full.Node(id); ok {
			rowSet[nodeLayout.Row] = true
		}
	}
	for _, l := range selected {
		rowSet[l.SourceRow] = true
		rowSet[l.TargetRow] = true
		shadowColSet[l.Column] = true
		if l.ColumnNoShadows != nil {
			noShadowColSet[*l.ColumnNoShadows] = true
		}
	}

	rowMap := newCompressionMap(rowSet)
	shadowColMap := newCompressionMap(shadowColSet)
	noShadowColMap := newCompressionMap(noShadowColSet)

	// Step 3: remap selected links.
	compressed := NewNetworkLayout()
	compressed.Links = make([]LinkLayout, 0, len(selected))
	for _, l := range selected {
		nl := l
		nl.Column = shadowColMap.remap(l.Column)
		if l.ColumnNoShadows != nil {
			remapped := noShadowColMap.remap(*l.ColumnNoShadows)
			nl.ColumnNoShadows = &remapped
		}
		nl.SourceRow = rowMap.remap(l.SourceRow)
		nl.TargetRow = rowMap.remap(l.TargetRow)
		compressed.Links = append(compressed.Links, nl)
	}
	compressed.SortLinksByColumn()

	// Step 4: remap selected nodes. max_col/max_col_no_shadows are
	// uniformly set to the global compressed maximum (see doc comment).
	for _, id := range full.NodeOrder() {
		if !subset[id] {
			continue
		}
		orig, ok := full.Node(id)
		if !ok {
			continue
		}
		nodeLayout := NodeLayout{
			Row:             rowMap.remap(orig.Row),
			MinCol:          remapOrZero(shadowColMap, orig.MinCol, len(shadowColSet) > 0),
			MaxCol:          shadowColMap.max,
			MinColNoShadows: remapOrZero(noShadowColMap, orig.MinColNoShadows, len(noShadowColSet) > 0),
			MaxColNoShadows: noShadowColMap.max,
			ColorIndex:      orig.ColorIndex,
			ClusterTag:      orig.ClusterTag,
		}
		compressed.SetNode(id, nodeLayout)
	}

	compressed.RowCount = len(rowSet)
	compressed.ColumnCount = len(shadowColSet)
	compressed.ColumnCountNoShadows = len(noShadowColSet)
	compressed.LinkGroupOrder = append([]string(nil), full.LinkGroupOrder...)

	// Step 5: recompute drain zones for each retained node.
	byShadowCol := make(map[int]LinkLayout, len(compressed.Links))
	byNoShadowCol := make(map[int]LinkLayout, len(compressed.Links))
	for _, l := range compressed.Links {
		byShadowCol[l.Column] = l
		if l.ColumnNoShadows != nil {
			byNoShadowCol[*l.ColumnNoShadows] = l
		}
	}
	for _, id := range compressed.NodeOrder() {
		nodeLayout, _ := compressed.Node(id)
		nodeLayout.DrainZones = &DrainZones{
			Plain:  plainDrainZone(nodeLayout, id, byNoShadowCol),
			Shadow: shadowDrainZone(nodeLayout, id, byShadowCol),
		}
		compressed.SetNode(id, nodeLayout)
	}

	// Step 6: compressed network via C1 extraction.
	compressedNet := net.ExtractSubnetwork(subset)

	return compressed, compressedNet, nil
}

func remapOrZero(m compressionMap, v int, nonEmpty bool) int {
	if !nonEmpty {
		return 0
	}
	return m.remap(v)
}

// plainDrainZone scans backward from MaxColNoShadows to MinColNoShadows,
// accumulating the contiguous trailing range of real links incident to
// id as the link's top endpoint.
func plainDrainZone(n NodeLayout, id graph.NodeId, byCol map[int]LinkLayout) ColumnRange {
	if n.MaxColNoShadows < n.MinColNoShadows {
		return ColumnRange{Start: 0, End: -1}
	}
	c := n.MaxColNoShadows
	for c >= n.MinColNoShadows {
		l, ok := byCol[c]
		if !ok || l.IsShadow || l.TopRow() != n.Row || !(l.Source == id || l.Target == id) {
			break
		}
		c--
	}
	if c == n.MaxColNoShadows {
		return ColumnRange{Start: 0, End: -1}
	}
	return ColumnRange{Start: c + 1, End: n.MaxColNoShadows}
}

// shadowDrainZone scans forward from MinCol to MaxCol, accumulating the
// leading contiguous range of links where id is the top of a real link
// or the bottom of a shadow link.
func shadowDrainZone(n NodeLayout, id graph.NodeId, byCol map[int]LinkLayout) ColumnRange {
	if n.MaxCol < n.MinCol {
		return ColumnRange{Start: 0, End: -1}
	}
	c := n.MinCol
	for c <= n.MaxCol {
		l, ok := byCol[c]
		if !ok || !(l.Source == id || l.Target == id) {
			break
		}
		qualifies := (!l.IsShadow && l.TopRow() == n.Row) || (l.IsShadow && l.BottomRow() == n.Row)
		if !qualifies {
			break
		}
		c++
	}
	if c == n.MinCol {
		return ColumnRange{Start: 0, End: -1}
	}
	return ColumnRange{Start: n.MinCol, End: c - 1}
}
