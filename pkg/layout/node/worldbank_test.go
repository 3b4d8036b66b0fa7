package node

import (
	"testing"

	"github.com/biofabric/biofabric/pkg/graph"
)

func TestWorldBankGroupsSatellitesUnderHub(t *testing.T) {
	net := graph.New()
	net.AddLink(graph.Link{Source: "hub", Target: "s1", Relation: "r"})
	net.AddLink(graph.Link{Source: "hub", Target: "s2", Relation: "r"})
	net.AddLink(graph.Link{Source: "hub", Target: "s3", Relation: "r"})

	order, err := (WorldBank{}).LayoutNodes(net, Params{}, nil)
	if err != nil {
		t.Fatalf("LayoutNodes() error = %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("len(order) = %d, want 4", len(order))
	}
	if order[0] != "hub" {
		t.Errorf("order[0] = %q, want hub", order[0])
	}
	if order[1] != "s1" || order[2] != "s2" || order[3] != "s3" {
		t.Errorf("order[1:] = %v, want satellites sorted lexicographically", order[1:])
	}
}

func TestWorldBankFallsBackForNonHubNodes(t *testing.T) {
	// A triangle: every node has degree 2, so none qualifies as a
	// degree-1 satellite and the whole layout falls back to Default.
	net := graph.New()
	net.AddLink(graph.Link{Source: "a", Target: "b", Relation: "r"})
	net.AddLink(graph.Link{Source: "b", Target: "c", Relation: "r"})
	net.AddLink(graph.Link{Source: "c", Target: "a", Relation: "r"})

	order, err := (WorldBank{}).LayoutNodes(net, Params{}, nil)
	if err != nil {
		t.Fatalf("LayoutNodes() error = %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("len(order) = %d, want 3", len(order))
	}
}
