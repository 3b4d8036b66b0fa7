package node

import (
	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
	"testing"
)

func dagNet() *graph.Network {
	net := graph.New()
	net.AddLink(graph.Link{Source: "a", Target: "b", Relation: "r", Directed: graph.DirectedYes})
	net.AddLink(graph.Link{Source: "a", Target: "c", Relation: "r", Directed: graph.DirectedYes})
	net.AddLink(graph.Link{Source: "b", Target: "d", Relation: "r", Directed: graph.DirectedYes})
	net.AddLink(graph.Link{Source: "c", Target: "d", Relation: "r", Directed: graph.DirectedYes})
	return net
}

func TestHierDAGOrdersByLevel(t *testing.T) {
	net := dagNet()
	order, err := (HierDAG{}).LayoutNodes(net, Params{}, nil)
	if err != nil {
		t.Fatalf("LayoutNodes() error = %v", err)
	}
	pos := make(map[graph.NodeId]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos["a"] >= pos["b"] || pos["a"] >= pos["c"] {
		t.Errorf("order = %v, want a before b and c", order)
	}
	if pos["b"] >= pos["d"] || pos["c"] >= pos["d"] {
		t.Errorf("order = %v, want b and c before d", order)
	}
}

func TestHierDAGRejectsCycle(t *testing.T) {
	net := graph.New()
	net.AddLink(graph.Link{Source: "a", Target: "b", Relation: "r", Directed: graph.DirectedYes})
	net.AddLink(graph.Link{Source: "b", Target: "a", Relation: "r", Directed: graph.DirectedYes})

	_, err := (HierDAG{}).LayoutNodes(net, Params{}, nil)
	if err == nil {
		t.Fatal("LayoutNodes() error = nil, want CriteriaNotMet")
	}
	if !biofabric.Is(err, biofabric.ErrCodeCriteriaNotMet) {
		t.Errorf("GetCode() = %v, want CriteriaNotMet", biofabric.GetCode(err))
	}
}

func TestHierDAGCriteriaMet(t *testing.T) {
	if err := (HierDAG{}).CriteriaMet(dagNet()); err != nil {
		t.Errorf("CriteriaMet() = %v, want nil", err)
	}
}
