package node

import (
	"testing"

	"github.com/biofabric/biofabric/pkg/graph"
)

func TestJaccardIdentical(t *testing.T) {
	a := map[graph.NodeId]bool{"1": true, "2": true, "3": true}
	b := map[graph.NodeId]bool{"1": true, "2": true, "3": true}
	if got := jaccard(a, b); got != 1.0 {
		t.Errorf("jaccard() = %v, want 1.0", got)
	}
}

func TestJaccardDisjoint(t *testing.T) {
	a := map[graph.NodeId]bool{"1": true}
	b := map[graph.NodeId]bool{"2": true}
	if got := jaccard(a, b); got != 0.0 {
		t.Errorf("jaccard() = %v, want 0.0", got)
	}
}

func TestJaccardPartial(t *testing.T) {
	a := map[graph.NodeId]bool{"1": true, "2": true, "3": true}
	b := map[graph.NodeId]bool{"2": true, "3": true, "4": true}
	if got := jaccard(a, b); got != 0.5 {
		t.Errorf("jaccard() = %v, want 0.5", got)
	}
}

func TestJaccardBothEmpty(t *testing.T) {
	if got := jaccard(map[graph.NodeId]bool{}, map[graph.NodeId]bool{}); got != 1.0 {
		t.Errorf("jaccard() = %v, want 1.0", got)
	}
}

func TestSimilarityGroupsIdenticalNeighborhoods(t *testing.T) {
	// hub connects to p and q; p and q share no other edges, so they
	// have identical 1-neighborhoods ({hub}) and should land adjacent.
	net := graph.New()
	net.AddLink(graph.Link{Source: "hub", Target: "p", Relation: "pp"})
	net.AddLink(graph.Link{Source: "hub", Target: "q", Relation: "pp"})

	order, err := (Similarity{}).LayoutNodes(net, Params{}, nil)
	if err != nil {
		t.Fatalf("LayoutNodes() error = %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("len(order) = %d, want 3", len(order))
	}
	if order[0] != "hub" {
		t.Errorf("order[0] = %q, want %q", order[0], "hub")
	}
}

func TestSimilarityCriteriaMetAlwaysNil(t *testing.T) {
	if err := (Similarity{}).CriteriaMet(graph.New()); err != nil {
		t.Errorf("CriteriaMet() = %v, want nil", err)
	}
}
