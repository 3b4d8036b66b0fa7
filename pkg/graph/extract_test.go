package graph

import "testing"

func buildChain(t *testing.T) *Network {
	t.Helper()
	g := New()
	g.AddLink(Link{Source: "a", Target: "b", Relation: "pp"})
	g.AddLink(Link{Source: "b", Target: "c", Relation: "pp"})
	g.AddLink(Link{Source: "c", Target: "d", Relation: "pp"})
	return g
}

func TestNHopNeighborhood(t *testing.T) {
	g := buildChain(t)

	got := g.NHopNeighborhood("a", 1)
	want := map[NodeId]bool{"a": true, "b": true}
	if len(got) != len(want) {
		t.Fatalf("NHopNeighborhood(1) = %v, want %v", got, want)
	}
	for id := range want {
		if !got[id] {
			t.Errorf("missing %v in NHopNeighborhood(1)", id)
		}
	}
}

func TestExtractSubnetworkSkipsMissingIds(t *testing.T) {
	g := buildChain(t)

	sub := g.ExtractSubnetwork(map[NodeId]bool{"a": true, "b": true, "zzz": true})

	if sub.NodeCount() != 2 {
		t.Fatalf("sub.NodeCount() = %d, want 2", sub.NodeCount())
	}
	if sub.LinkCount() != 1 {
		t.Fatalf("sub.LinkCount() = %d, want 1", sub.LinkCount())
	}
}

func TestExtractNeighborhood(t *testing.T) {
	g := buildChain(t)

	sub := g.ExtractNeighborhood("b", 1)
	if sub.NodeCount() != 3 {
		t.Fatalf("sub.NodeCount() = %d, want 3 (a,b,c)", sub.NodeCount())
	}
	if !sub.ContainsNode("a") || !sub.ContainsNode("b") || !sub.ContainsNode("c") {
		t.Errorf("expected a,b,c in extracted neighborhood")
	}
	if sub.ContainsNode("d") {
		t.Errorf("d should be outside the 1-hop neighborhood of b")
	}
}
