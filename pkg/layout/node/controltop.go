package node

import (
	"sort"

	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/graph/analyze"
	"github.com/biofabric/biofabric/pkg/progress"
)

// ControlOrder selects how control nodes are ordered among themselves.
type ControlOrder int

const (
	// ControlPartialOrder orders controllers by a topological partial
	// order restricted to the control set's own directed links.
	ControlPartialOrder ControlOrder = iota
	// ControlByIntraDegree orders by connectivity within the control
	// set, descending.
	ControlByIntraDegree
	// ControlByMedianTargetDegree orders by the median degree of each
	// controller's targets, descending.
	ControlByMedianTargetDegree
	// ControlByDegree orders by overall network degree, descending.
	ControlByDegree
	// ControlFixedList uses Params.ControlNodes verbatim, in the order
	// supplied.
	ControlFixedList
)

// TargetOrder selects how non-control ("target") nodes are ordered.
type TargetOrder int

const (
	// TargetGrayCode orders targets by a reflected Gray code over
	// their controller-membership bitmask, minimizing the visual
	// disruption between adjacent targets.
	TargetGrayCode TargetOrder = iota
	// TargetDegreeOdometer orders by a bitmask-then-degree odometer:
	// membership bitmask first, breaking ties by degree descending.
	TargetDegreeOdometer
	// TargetByDegree orders simply by degree, descending.
	TargetByDegree
	// TargetBreadthFirst orders by BFS distance from the control set.
	TargetBreadthFirst
)

// ControlTop places a caller-designated set of "control" nodes first,
// followed by every other node ("targets"), each ordered by the
// configured strategy. Requires a fully directed network and a
// non-empty control set.
type ControlTop struct {
	ControlNodes []graph.NodeId
	ControlOrder ControlOrder
	TargetOrder  TargetOrder
}

// LayoutNodes implements Layout.
func (c ControlTop) LayoutNodes(net *graph.Network, params Params, mon *progress.Monitor) ([]graph.NodeId, error) {
	if err := c.CriteriaMet(net); err != nil {
		return nil, err
	}
	mon = ensureMonitor(mon, net.NodeCount())

	controlSet := make(map[graph.NodeId]bool, len(c.ControlNodes))
	for _, id := range c.ControlNodes {
		controlSet[id] = true
	}

	controls := c.orderControls(net, controlSet)

	var targets []graph.NodeId
	for _, id := range net.Nodes() {
		if !controlSet[id] {
			targets = append(targets, id)
		}
	}
	targets = c.orderTargets(net, targets, controls)

	order := make([]graph.NodeId, 0, net.NodeCount())
	for _, id := range controls {
		if mon.Cancelled() {
			return nil, cancelled("node.ControlTop")
		}
		order = append(order, id)
		mon.Step()
	}
	for _, id := range targets {
		if mon.Cancelled() {
			return nil, cancelled("node.ControlTop")
		}
		order = append(order, id)
		mon.Step()
	}
	return order, nil
}

// CriteriaMet implements Layout: the network must be fully directed and
// the control set non-empty, with every control node present.
func (c ControlTop) CriteriaMet(net *graph.Network) error {
	if !net.Metadata.IsDirected {
		return biofabric.New(biofabric.ErrCodeCriteriaNotMet, "ControlTopLayout requires a fully directed network").WithOp("node.ControlTop")
	}
	if len(c.ControlNodes) == 0 {
		return biofabric.New(biofabric.ErrCodeCriteriaNotMet, "ControlTopLayout requires at least one control node").WithOp("node.ControlTop")
	}
	for _, id := range c.ControlNodes {
		if !net.ContainsNode(id) {
			return biofabric.New(biofabric.ErrCodeCriteriaNotMet, "control node %q not found in network", id).WithOp("node.ControlTop")
		}
	}
	return nil
}

// Name implements Layout.
func (ControlTop) Name() string { return "Control Top" }

func (c ControlTop) orderControls(net *graph.Network, controlSet map[graph.NodeId]bool) []graph.NodeId {
	switch c.ControlOrder {
	case ControlFixedList:
		return append([]graph.NodeId(nil), c.ControlNodes...)

	case ControlByDegree:
		out := append([]graph.NodeId(nil), c.ControlNodes...)
		sort.Slice(out, func(i, j int) bool {
			di, dj := net.Degree(out[i]), net.Degree(out[j])
			if di != dj {
				return di > dj
			}
			return out[i] < out[j]
		})
		return out

	case ControlByIntraDegree:
		intraDeg := make(map[graph.NodeId]int, len(c.ControlNodes))
		for _, id := range c.ControlNodes {
			n := 0
			for _, nb := range net.Neighbors(id) {
				if controlSet[nb] {
					n++
				}
			}
			intraDeg[id] = n
		}
		out := append([]graph.NodeId(nil), c.ControlNodes...)
		sort.Slice(out, func(i, j int) bool {
			if intraDeg[out[i]] != intraDeg[out[j]] {
				return intraDeg[out[i]] > intraDeg[out[j]]
			}
			return out[i] < out[j]
		})
		return out

	case ControlByMedianTargetDegree:
		medianDeg := make(map[graph.NodeId]int, len(c.ControlNodes))
		for _, id := range c.ControlNodes {
			var targetDegs []int
			for _, nb := range net.Neighbors(id) {
				if !controlSet[nb] {
					targetDegs = append(targetDegs, net.Degree(nb))
				}
			}
			medianDeg[id] = median(targetDegs)
		}
		out := append([]graph.NodeId(nil), c.ControlNodes...)
		sort.Slice(out, func(i, j int) bool {
			if medianDeg[out[i]] != medianDeg[out[j]] {
				return medianDeg[out[i]] > medianDeg[out[j]]
			}
			return out[i] < out[j]
		})
		return out

	default: // ControlPartialOrder
		sub := net.ExtractSubnetwork(controlSet)
		topo, ok := analyze.TopologicalSort(sub, false)
		if !ok {
			// Cyclic control set: fall back to degree ordering rather
			// than fail a layout whose criteria were otherwise met.
			return degreeOrderFallback(net, c.ControlNodes)
		}
		return topo
	}
}

func degreeOrderFallback(net *graph.Network, ids []graph.NodeId) []graph.NodeId {
	out := append([]graph.NodeId(nil), ids...)
	sort.Slice(out, func(i, j int) bool {
		di, dj := net.Degree(out[i]), net.Degree(out[j])
		if di != dj {
			return di > dj
		}
		return out[i] < out[j]
	})
	return out
}

func median(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func (c ControlTop) orderTargets(net *graph.Network, targets []graph.NodeId, controls []graph.NodeId) []graph.NodeId {
	switch c.TargetOrder {
	case TargetByDegree:
		out := append([]graph.NodeId(nil), targets...)
		sort.Slice(out, func(i, j int) bool {
			di, dj := net.Degree(out[i]), net.Degree(out[j])
			if di != dj {
				return di > dj
			}
			return out[i] < out[j]
		})
		return out

	case TargetBreadthFirst:
		return breadthFromSet(net, controls, targets)

	case TargetDegreeOdometer, TargetGrayCode:
		return bitmaskOrder(net, controls, targets, c.TargetOrder == TargetGrayCode)

	default:
		return bitmaskOrder(net, controls, targets, true)
	}
}

// breadthFromSet orders targets by BFS distance from the control set as
// a whole (multi-source BFS), ties broken lexicographically. Targets
// unreachable from the control set follow every reachable one.
func breadthFromSet(net *graph.Network, controls, targets []graph.NodeId) []graph.NodeId {
	dist := make(map[graph.NodeId]int)
	queue := make([]graph.NodeId, 0, len(controls))
	for _, id := range sortedLexicographic(controls) {
		if _, seen := dist[id]; !seen {
			dist[id] = 0
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, nb := range net.Neighbors(id) {
			if _, seen := dist[nb]; !seen {
				dist[nb] = dist[id] + 1
				queue = append(queue, nb)
			}
		}
	}
	out := append([]graph.NodeId(nil), targets...)
	sort.Slice(out, func(i, j int) bool {
		di, oki := dist[out[i]]
		dj, okj := dist[out[j]]
		if oki != okj {
			return oki
		}
		if di != dj {
			return di < dj
		}
		return out[i] < out[j]
	})
	return out
}

// bitmaskOrder ranks each target by which controllers it connects to,
// encoded as a bitmask over controls' fixed index order, then either
// ranks that bitmask by its position in the reflected Gray code
// sequence (grayCode=true) or compares it as a plain integer (an
// "odometer"). Ties within equal
// rank break by degree descending, then lexicographically.
func bitmaskOrder(net *graph.Network, controls, targets []graph.NodeId, grayCode bool) []graph.NodeId {
	index := make(map[graph.NodeId]int, len(controls))
	for i, id := range controls {
		index[id] = i
	}
	rankOf := make(map[graph.NodeId]int, len(targets))
	for _, id := range targets {
		mask := 0
		for _, nb := range net.Neighbors(id) {
			if i, ok := index[nb]; ok {
				mask |= 1 << uint(i)
			}
		}
		if grayCode {
			// Position of mask in the reflected Gray sequence (inverse
			// Gray transform), so consecutive ranks differ in one bit.
			rank := mask
			for shift := mask >> 1; shift != 0; shift >>= 1 {
				rank ^= shift
			}
			rankOf[id] = rank
		} else {
			rankOf[id] = mask
		}
	}
	out := append([]graph.NodeId(nil), targets...)
	sort.Slice(out, func(i, j int) bool {
		if rankOf[out[i]] != rankOf[out[j]] {
			return rankOf[out[i]] < rankOf[out[j]]
		}
		di, dj := net.Degree(out[i]), net.Degree(out[j])
		if di != dj {
			return di > dj
		}
		return out[i] < out[j]
	})
	return out
}
