// Package selection tracks which nodes and links are currently selected
// in the visualization — by mouse interaction interactively, or
// programmatically from a CLI query ("select all nodes in group X"). The
// selection feeds rendering (highlight), CLI info output, and navigation
// (zoom-to-selection).
package selection

import (
	"math"

	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
)

// orderedNodeSet is a minimal insertion-ordered set of node IDs: iteration
// order matches insertion order, membership is O(1), and remove is O(n)
// since it reindexes every later element. It exists
// because the reference uses an insertion-ordered set (indexmap::IndexSet)
// and no pack dependency offers a Go equivalent — see DESIGN.md.
type orderedNodeSet struct {
	order []graph.NodeId
	index map[graph.NodeId]int
}

func newOrderedNodeSet() orderedNodeSet {
	return orderedNodeSet{index: make(map[graph.NodeId]int)}
}

func (s *orderedNodeSet) contains(id graph.NodeId) bool {
	_, ok := s.index[id]
	return ok
}

func (s *orderedNodeSet) insert(id graph.NodeId) {
	if s.contains(id) {
		return
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
}

// remove deletes id and shifts every later element's recorded position
// down by one, preserving relative order of what remains.
func (s *orderedNodeSet) remove(id graph.NodeId) {
	pos, ok := s.index[id]
	if !ok {
		return
	}
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.order); i++ {
		s.index[s.order[i]] = i
	}
}

func (s *orderedNodeSet) clear() {
	s.order = s.order[:0]
	for k := range s.index {
		delete(s.index, k)
	}
}

func (s orderedNodeSet) items() []graph.NodeId {
	out := make([]graph.NodeId, len(s.order))
	copy(out, s.order)
	return out
}

// orderedIntSet is the link-index analog of orderedNodeSet.
type orderedIntSet struct {
	order []int
	index map[int]bool
}

func newOrderedIntSet() orderedIntSet {
	return orderedIntSet{index: make(map[int]bool)}
}

func (s *orderedIntSet) contains(v int) bool { return s.index[v] }

func (s *orderedIntSet) insert(v int) {
	if s.contains(v) {
		return
	}
	s.index[v] = true
	s.order = append(s.order, v)
}

func (s *orderedIntSet) clear() {
	s.order = s.order[:0]
	for k := range s.index {
		delete(s.index, k)
	}
}

func (s orderedIntSet) items() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// State is what is currently selected: a set of node IDs and a set of
// link indices (into a NetworkLayout's link list).
type State struct {
	nodes orderedNodeSet
	links orderedIntSet
}

// New creates an empty selection.
func New() *State {
	return &State{nodes: newOrderedNodeSet(), links: newOrderedIntSet()}
}

// IsEmpty reports whether nothing is selected.
func (s *State) IsEmpty() bool {
	return len(s.nodes.order) == 0 && len(s.links.order) == 0
}

// Clear empties the selection.
func (s *State) Clear() {
	s.nodes.clear()
	s.links.clear()
}

// SelectNode replaces the selection with a single node.
func (s *State) SelectNode(id graph.NodeId) {
	s.Clear()
	s.nodes.insert(id)
}

// SelectLink replaces the selection with a single link.
func (s *State) SelectLink(index int) {
	s.Clear()
	s.links.insert(index)
}

// AddNode adds a node to the selection without clearing it.
func (s *State) AddNode(id graph.NodeId) {
	s.nodes.insert(id)
}

// AddLink adds a link to the selection without clearing it.
func (s *State) AddLink(index int) {
	s.links.insert(index)
}

// ToggleNode flips a node's membership in the selection.
func (s *State) ToggleNode(id graph.NodeId) {
	if s.nodes.contains(id) {
		s.nodes.remove(id)
	} else {
		s.nodes.insert(id)
	}
}

// IsNodeSelected reports whether id is selected.
func (s *State) IsNodeSelected(id graph.NodeId) bool {
	return s.nodes.contains(id)
}

// IsLinkSelected reports whether the link at index is selected.
func (s *State) IsLinkSelected(index int) bool {
	return s.links.contains(index)
}

// Nodes returns the selected node IDs in selection order.
func (s *State) Nodes() []graph.NodeId {
	return s.nodes.items()
}

// Links returns the selected link indices in selection order.
func (s *State) Links() []int {
	return s.links.items()
}

// Bounds computes the selection's bounding rectangle in grid coordinates
// as (minCol, minRow, maxCol, maxRow), or false if the selection is empty
// or none of its elements have layout info in nl.
func (s *State) Bounds(nl *layout.NetworkLayout, showShadows bool) (minCol, minRow, maxCol, maxRow float64, ok bool) {
	minCol, minRow = math.MaxFloat64, math.MaxFloat64
	maxCol, maxRow = -math.MaxFloat64, -math.MaxFloat64
	found := false

	for _, id := range s.nodes.order {
		n, present := nl.Node(id)
		if !present {
			continue
		}
		ncMin, ncMax := float64(n.MinCol), float64(n.MaxCol)
		if !showShadows {
			ncMin, ncMax = float64(n.MinColNoShadows), float64(n.MaxColNoShadows)
		}
		minCol = minF(minCol, ncMin)
		maxCol = maxF(maxCol, ncMax)
		minRow = minF(minRow, float64(n.Row))
		maxRow = maxF(maxRow, float64(n.Row))
		found = true
	}

	links := nl.Links
	for _, idx := range s.links.order {
		if idx < 0 || idx >= len(links) {
			continue
		}
		ll := links[idx]
		col := ll.Column
		if !showShadows && ll.ColumnNoShadows != nil {
			col = *ll.ColumnNoShadows
		}
		minCol = minF(minCol, float64(col))
		maxCol = maxF(maxCol, float64(col))
		minRow = minF(minRow, float64(ll.TopRow()))
		maxRow = maxF(maxRow, float64(ll.BottomRow()))
		found = true
	}

	if !found {
		return 0, 0, 0, 0, false
	}
	return minCol, minRow, maxCol, maxRow, true
}

// SelectAnnotationNodes adds every node whose row falls within
// [startRow, endRow] to the selection — "select all nodes in group X".
func (s *State) SelectAnnotationNodes(nl *layout.NetworkLayout, startRow, endRow int) {
	for _, id := range nl.NodeOrder() {
		n, ok := nl.Node(id)
		if ok && n.Row >= startRow && n.Row <= endRow {
			s.nodes.insert(id)
		}
	}
}

// NHopNeighborhood selects the nodes within maxHops edges of start (BFS
// neighborhood, start included at 0 hops), replacing the current node
// selection. Delegates the graph walk to graph.Network.NHopNeighborhood,
// then orders the result deterministically by the layout's node order so
// selection iteration order doesn't depend on map iteration.
func (s *State) NHopNeighborhood(g *graph.Network, nl *layout.NetworkLayout, start graph.NodeId, maxHops int) {
	ids := g.NHopNeighborhood(start, maxHops)
	s.nodes.clear()
	for _, id := range nl.NodeOrder() {
		if ids[id] {
			s.nodes.insert(id)
		}
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
