package node

import (
	"sort"

	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/graph/analyze"
	"github.com/biofabric/biofabric/pkg/progress"
)

// HierDAG orders nodes by DAG level (longest path from any source).
// Within a level, nodes are sorted by degree descending, then
// lexicographically. Requires an acyclic directed network; use
// graph/analyze.FindCycle to verify beforehand, or rely on CriteriaMet.
type HierDAG struct{}

// LayoutNodes implements Layout.
func (HierDAG) LayoutNodes(net *graph.Network, params Params, mon *progress.Monitor) ([]graph.NodeId, error) {
	if err := (HierDAG{}).CriteriaMet(net); err != nil {
		return nil, err
	}
	mon = ensureMonitor(mon, net.NodeCount())

	levels, ok := analyze.DAGLevels(net)
	if !ok {
		return nil, biofabric.New(biofabric.ErrCodeCriteriaNotMet, "HierDAG requires an acyclic network").WithOp("node.HierDAG")
	}

	byLevel := make(map[int][]graph.NodeId)
	maxLevel := -1
	for id, lvl := range levels {
		byLevel[lvl] = append(byLevel[lvl], id)
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	order := make([]graph.NodeId, 0, net.NodeCount())
	for lvl := 0; lvl <= maxLevel; lvl++ {
		if mon.Cancelled() {
			return nil, cancelled("node.HierDAG")
		}
		nodes := byLevel[lvl]
		sort.Slice(nodes, func(i, j int) bool {
			di, dj := net.Degree(nodes[i]), net.Degree(nodes[j])
			if di != dj {
				return di > dj
			}
			return nodes[i] < nodes[j]
		})
		order = append(order, nodes...)
		for range nodes {
			mon.Step()
		}
	}

	for _, id := range net.LoneNodes() {
		if _, placed := levels[id]; !placed {
			order = append(order, id)
			mon.Step()
		}
	}

	return order, nil
}

// CriteriaMet implements Layout: the network must be acyclic.
func (HierDAG) CriteriaMet(net *graph.Network) error {
	cyc := analyze.FindCycle(net)
	if cyc.HasCycle {
		return biofabric.New(biofabric.ErrCodeCriteriaNotMet, "HierDAG requires a directed acyclic network; found a cycle").WithOp("node.HierDAG")
	}
	return nil
}

// Name implements Layout.
func (HierDAG) Name() string { return "Hierarchical DAG" }
