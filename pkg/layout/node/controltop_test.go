package node

import (
	"testing"

	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
)

func directedNet() *graph.Network {
	net := graph.New()
	net.AddLink(graph.Link{Source: "tf1", Target: "g1", Relation: "r", Directed: graph.DirectedYes})
	net.AddLink(graph.Link{Source: "tf1", Target: "g2", Relation: "r", Directed: graph.DirectedYes})
	net.AddLink(graph.Link{Source: "tf2", Target: "g2", Relation: "r", Directed: graph.DirectedYes})
	net.Metadata.IsDirected = true
	return net
}

func TestControlTopRejectsUndirected(t *testing.T) {
	net := graph.New()
	net.AddLink(graph.Link{Source: "a", Target: "b", Relation: "r"})
	c := ControlTop{ControlNodes: []graph.NodeId{"a"}}
	_, err := c.LayoutNodes(net, Params{}, nil)
	if !biofabric.Is(err, biofabric.ErrCodeCriteriaNotMet) {
		t.Fatalf("GetCode() = %v, want CriteriaNotMet", biofabric.GetCode(err))
	}
}

func TestControlTopRejectsEmptyControlSet(t *testing.T) {
	net := directedNet()
	c := ControlTop{}
	_, err := c.LayoutNodes(net, Params{}, nil)
	if !biofabric.Is(err, biofabric.ErrCodeCriteriaNotMet) {
		t.Fatalf("GetCode() = %v, want CriteriaNotMet", biofabric.GetCode(err))
	}
}

func TestControlTopRejectsUnknownControlNode(t *testing.T) {
	net := directedNet()
	c := ControlTop{ControlNodes: []graph.NodeId{"nope"}}
	_, err := c.LayoutNodes(net, Params{}, nil)
	if !biofabric.Is(err, biofabric.ErrCodeCriteriaNotMet) {
		t.Fatalf("GetCode() = %v, want CriteriaNotMet", biofabric.GetCode(err))
	}
}

func TestControlTopPlacesControlsFirst(t *testing.T) {
	net := directedNet()
	c := ControlTop{ControlNodes: []graph.NodeId{"tf1", "tf2"}, ControlOrder: ControlByDegree}
	order, err := c.LayoutNodes(net, Params{}, nil)
	if err != nil {
		t.Fatalf("LayoutNodes() error = %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("len(order) = %d, want 4", len(order))
	}
	pos := make(map[graph.NodeId]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos["tf1"] > pos["g1"] || pos["tf1"] > pos["g2"] || pos["tf2"] > pos["g1"] || pos["tf2"] > pos["g2"] {
		t.Errorf("order = %v, want both controls before both targets", order)
	}
}

func TestControlTopFixedListPreservesOrder(t *testing.T) {
	net := directedNet()
	c := ControlTop{ControlNodes: []graph.NodeId{"tf2", "tf1"}, ControlOrder: ControlFixedList}
	order, err := c.LayoutNodes(net, Params{}, nil)
	if err != nil {
		t.Fatalf("LayoutNodes() error = %v", err)
	}
	if order[0] != "tf2" || order[1] != "tf1" {
		t.Errorf("order[:2] = %v, want [tf2 tf1]", order[:2])
	}
}

func TestMedianOddEven(t *testing.T) {
	if got := median([]int{1, 2, 3}); got != 2 {
		t.Errorf("median(odd) = %d, want 2", got)
	}
	if got := median([]int{1, 2, 3, 4}); got != 2 {
		t.Errorf("median(even) = %d, want 2", got)
	}
	if got := median(nil); got != 0 {
		t.Errorf("median(nil) = %d, want 0", got)
	}
}
