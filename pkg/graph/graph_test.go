package graph

import (
	"testing"

	biofabric "github.com/biofabric/biofabric/pkg/errors"
)

func TestAddNodeAndLink(t *testing.T) {
	g := New()
	g.AddLink(Link{Source: "a", Target: "b", Relation: "pp", Directed: DirectedNo})

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if !g.ContainsNode("a") || !g.ContainsNode("b") {
		t.Fatalf("expected a and b to exist")
	}
	if g.Degree("a") != 1 || g.Degree("b") != 1 {
		t.Fatalf("Degree() = %d/%d, want 1/1", g.Degree("a"), g.Degree("b"))
	}
}

func TestAddLoneNode(t *testing.T) {
	g := New()
	g.AddLoneNode("x")

	lone := g.LoneNodes()
	if len(lone) != 1 || lone[0] != "x" {
		t.Fatalf("LoneNodes() = %v, want [x]", lone)
	}

	g.AddLink(Link{Source: "x", Target: "y", Relation: "pp"})
	if len(g.LoneNodes()) != 0 {
		t.Fatalf("expected x removed from lone nodes after AddLink")
	}
}

func TestNeighborsSortedAndDeduped(t *testing.T) {
	g := New()
	g.AddLink(Link{Source: "a", Target: "c", Relation: "pp"})
	g.AddLink(Link{Source: "a", Target: "b", Relation: "pp"})
	g.AddLink(Link{Source: "b", Target: "a", Relation: "pd"})

	got := g.Neighbors("a")
	want := []NodeId{"b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Neighbors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbors()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSelfLoopAdjacencyCountedOnce(t *testing.T) {
	g := New()
	g.AddLink(Link{Source: "a", Target: "a", Relation: "pp"})

	if g.Degree("a") != 1 {
		t.Errorf("Degree(self-loop) = %d, want 1", g.Degree("a"))
	}
}

func TestAdjacencyInvalidatedOnMutation(t *testing.T) {
	g := New()
	g.AddLink(Link{Source: "a", Target: "b", Relation: "pp"})
	_ = g.Degree("a") // builds the index

	if !g.HasAdjacencyIndex() {
		t.Fatalf("expected adjacency index built after query")
	}

	g.AddLink(Link{Source: "a", Target: "c", Relation: "pp"})
	if g.HasAdjacencyIndex() {
		t.Fatalf("expected adjacency index invalidated after AddLink")
	}
	if g.Degree("a") != 2 {
		t.Errorf("Degree(a) after mutation = %d, want 2", g.Degree("a"))
	}
}

func TestCompareNodesNotFound(t *testing.T) {
	g := New()
	g.AddLink(Link{Source: "a", Target: "b", Relation: "pp"})

	_, err := g.CompareNodes("a", "missing")
	if !biofabric.Is(err, biofabric.ErrCodeNotFound) {
		t.Fatalf("CompareNodes() error = %v, want NOT_FOUND", err)
	}
}

func TestCompareNodesJaccard(t *testing.T) {
	g := New()
	g.AddLink(Link{Source: "a", Target: "x", Relation: "pp"})
	g.AddLink(Link{Source: "a", Target: "y", Relation: "pp"})
	g.AddLink(Link{Source: "b", Target: "y", Relation: "pp"})
	g.AddLink(Link{Source: "b", Target: "z", Relation: "pp"})

	cmp, err := g.CompareNodes("a", "b")
	if err != nil {
		t.Fatalf("CompareNodes() error = %v", err)
	}
	// a: {x,y}, b: {y,z}; shared={y}, union size 3 -> jaccard 1/3
	if cmp.JaccardSimilarity < 0.333 || cmp.JaccardSimilarity > 0.334 {
		t.Errorf("JaccardSimilarity = %v, want ~0.333", cmp.JaccardSimilarity)
	}
	if len(cmp.SharedNeighbors) != 1 || cmp.SharedNeighbors[0] != "y" {
		t.Errorf("SharedNeighbors = %v, want [y]", cmp.SharedNeighbors)
	}
}

func TestCompareNodesEmptyNeighborhoodsJaccardOne(t *testing.T) {
	g := New()
	g.AddLoneNode("a")
	g.AddLoneNode("b")

	cmp, err := g.CompareNodes("a", "b")
	if err != nil {
		t.Fatalf("CompareNodes() error = %v", err)
	}
	if cmp.JaccardSimilarity != 1.0 {
		t.Errorf("JaccardSimilarity = %v, want 1.0 for two empty neighborhoods", cmp.JaccardSimilarity)
	}
}
