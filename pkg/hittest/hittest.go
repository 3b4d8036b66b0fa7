package hittest

import (
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
)

// HitKind distinguishes what a HitElement refers to.
type HitKind int

const (
	// HitNode is a node (horizontal line) hit.
	HitNode HitKind = iota
	// HitLink is a link (vertical line segment) hit.
	HitLink
)

// HitElement is one element found by a hit-test or selection-rectangle
// query: either a node or a link, identified by enough information for a
// caller to re-resolve it against the originating NetworkLayout.
type HitElement struct {
	Kind HitKind

	// Populated when Kind == HitNode.
	NodeID graph.NodeId
	Row    int

	// Populated when Kind == HitLink.
	LinkIndex int
	Source    graph.NodeId
	Target    graph.NodeId
	Column    int
}

// HitResult is the outcome of a hit-test or selection-rectangle query.
type HitResult struct {
	Hits []HitElement
}

// IsEmpty reports whether no element was hit.
func (r HitResult) IsEmpty() bool { return len(r.Hits) == 0 }

// FirstNode returns the first node hit, if any.
func (r HitResult) FirstNode() (graph.NodeId, bool) {
	for _, h := range r.Hits {
		if h.Kind == HitNode {
			return h.NodeID, true
		}
	}
	return "", false
}

// FirstLink returns the layout link index of the first link hit, if any.
func (r HitResult) FirstLink() (int, bool) {
	for _, h := range r.Hits {
		if h.Kind == HitLink {
			return h.LinkIndex, true
		}
	}
	return 0, false
}

// Index is a spatial index over a computed layout's geometry, built once
// after layout and queried repeatedly on user interaction.
type Index struct {
	tree *quadTree
}

// defaultMaxItems and defaultMaxDepth bound quadtree node capacity before
// a split, and the deepest a split is allowed to recurse.
const (
	defaultMaxItems = 16
	defaultMaxDepth = 12
)

// Build indexes every node and link in nl. showShadows selects whether
// shadow links (and the node spans that only exist because of them) are
// indexed; it should match the layout's current display mode, since a
// query against an index built for the wrong mode would resolve hits
// against geometry the viewer isn't actually showing.
func Build(nl *layout.NetworkLayout, showShadows bool) *Index {
	cols := nl.ColumnCount
	if !showShadows {
		cols = nl.ColumnCountNoShadows
	}
	bounds := NewRect(0, 0, float64(cols)+1.0, float64(nl.RowCount)+1.0)
	tree := newQuadTree(bounds, defaultMaxItems, defaultMaxDepth, 0)

	for _, id := range nl.NodeOrder() {
		n, ok := nl.Node(id)
		if !ok {
			continue
		}
		minCol, maxCol := n.MinCol, n.MaxCol
		if !showShadows {
			minCol, maxCol = n.MinColNoShadows, n.MaxColNoShadows
		}
		if minCol > maxCol {
			continue // no edges in this display mode
		}
		tree.insert(quadItem{
			bounds: NewRect(float64(minCol), float64(n.Row), float64(maxCol-minCol), 0.0),
			data:   HitElement{Kind: HitNode, NodeID: id, Row: n.Row},
		})
	}

	for i, ll := range nl.Links {
		if !showShadows && ll.IsShadow {
			continue
		}
		col := ll.Column
		if !showShadows {
			if ll.ColumnNoShadows == nil {
				continue
			}
			col = *ll.ColumnNoShadows
		}
		top, bottom := float64(ll.TopRow()), float64(ll.BottomRow())
		tree.insert(quadItem{
			bounds: NewRect(float64(col), top, 0.0, bottom-top),
			data: HitElement{
				Kind: HitLink, LinkIndex: i,
				Source: ll.Source, Target: ll.Target, Column: col,
			},
		})
	}

	return &Index{tree: tree}
}

// Len is the total number of indexed elements.
func (idx *Index) Len() int { return idx.tree.len() }

// HitTest finds every element within tolerance grid units of (x, y).
// Increase tolerance at low zoom, where a click's screen-pixel tolerance
// maps to more grid units, to keep clicking equally easy at any zoom.
func (idx *Index) HitTest(x, y, tolerance float64) HitResult {
	return idx.SelectRect(NewRect(x-tolerance, y-tolerance, tolerance*2.0, tolerance*2.0))
}

// SelectRect finds every element intersecting rect (drag-select).
func (idx *Index) SelectRect(rect Rect) HitResult {
	items := idx.tree.query(rect, nil)
	hits := make([]HitElement, len(items))
	for i, it := range items {
		hits[i] = it.data
	}
	return HitResult{Hits: hits}
}
