package align

import "testing"

func TestFilterOrphansIncludesOnlyEdgesTouchingBlueNodes(t *testing.T) {
	// G1: a-b-c-a (triangle). G2: x-y (single edge). Alignment a->x, b->y.
	// c is unaligned (blue); a-c and b-c become InducedGraph1 edges
	// touching blue node c.
	g1 := buildK3("a", "b", "c").net
	g2 := newTestNetwork([2]string{"x", "y"}).net

	merged, err := Merge(g1, g2, AlignmentMap{"a": "x", "b": "y"}, nil, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	filter := FilterOrphans(merged)
	if filter.OrphanEdgeCount() == 0 {
		t.Fatal("expected at least one orphan edge touching c::")
	}
	for _, l := range filter.Network.Links() {
		if l.Source != "c::" && l.Target != "c::" {
			t.Errorf("non-blue-touching edge leaked into filter: %+v", l)
		}
	}
	if !filter.ContextNodes["a::x"] && !filter.ContextNodes["b::y"] {
		t.Errorf("expected a purple context node adjacent to c::")
	}
}

func TestIsOrphanType(t *testing.T) {
	cases := map[EdgeType]bool{
		Covered:             false,
		InducedGraph1:       false,
		InducedGraph2:       false,
		HalfOrphanGraph1:    true,
		FullOrphanGraph1:    true,
		HalfUnalignedGraph2: true,
		FullUnalignedGraph2: true,
	}
	for t2, want := range cases {
		if got := IsOrphanType(t2); got != want {
			t.Errorf("IsOrphanType(%v) = %v, want %v", t2, got, want)
		}
	}
}
