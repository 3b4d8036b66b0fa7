package hittest

import (
	"fmt"
	"testing"

	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
)

func TestRectContainsPoint(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if !r.ContainsPoint(5, 5) {
		t.Error("expected (5,5) to be contained")
	}
	if r.ContainsPoint(11, 5) {
		t.Error("expected (11,5) to be outside")
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	c := NewRect(20, 20, 5, 5)
	if !a.Intersects(b) {
		t.Error("expected a, b to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected a, c to not intersect")
	}
}

func buildSampleLayout() *layout.NetworkLayout {
	nl := layout.NewNetworkLayout()
	nl.RowCount = 3
	nl.ColumnCount = 3
	nl.ColumnCountNoShadows = 2

	nl.SetNode("a", layout.NodeLayout{Row: 0, MinCol: 0, MaxCol: 2, MinColNoShadows: 0, MaxColNoShadows: 1})
	nl.SetNode("b", layout.NodeLayout{Row: 1, MinCol: 0, MaxCol: 2, MinColNoShadows: 0, MaxColNoShadows: 1})
	nl.SetNode("c", layout.NodeLayout{Row: 2, MinCol: 2, MaxCol: 2, MinColNoShadows: 1, MaxColNoShadows: 0})

	noShadowCol := 1
	nl.Links = []layout.LinkLayout{
		{Column: 0, ColumnNoShadows: &noShadowCol, SourceRow: 0, TargetRow: 1, Source: "a", Target: "b"},
		{Column: 2, ColumnNoShadows: nil, SourceRow: 1, TargetRow: 2, Source: "b", Target: "c", IsShadow: true},
	}
	return nl
}

func TestBuildIndexesNodesAndLinks(t *testing.T) {
	nl := buildSampleLayout()
	idx := Build(nl, true)
	if idx.Len() != 5 {
		t.Errorf("Len() = %d, want 5 (3 nodes + 2 links)", idx.Len())
	}
}

func TestBuildSkipsShadowsWhenDisabled(t *testing.T) {
	nl := buildSampleLayout()
	idx := Build(nl, false)
	// node "c" has min_col_no_shadows(1) > max_col_no_shadows(0): excluded.
	// link[1] is a shadow link: excluded.
	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (2 nodes + 1 link)", idx.Len())
	}
}

func TestHitTestFindsNode(t *testing.T) {
	nl := buildSampleLayout()
	idx := Build(nl, true)

	result := idx.HitTest(1.0, 0.0, 0.1)
	id, ok := result.FirstNode()
	if !ok {
		t.Fatal("expected a node hit")
	}
	if id != "a" {
		t.Errorf("FirstNode() = %v, want a", id)
	}
}

func TestHitTestFindsLink(t *testing.T) {
	nl := buildSampleLayout()
	idx := Build(nl, true)

	result := idx.HitTest(0.0, 0.5, 0.1)
	li, ok := result.FirstLink()
	if !ok {
		t.Fatal("expected a link hit")
	}
	if li != 0 {
		t.Errorf("FirstLink() = %d, want 0", li)
	}
}

func TestHitTestMissEverything(t *testing.T) {
	nl := buildSampleLayout()
	idx := Build(nl, true)
	result := idx.HitTest(100.0, 100.0, 0.1)
	if !result.IsEmpty() {
		t.Errorf("expected no hits far from any element, got %+v", result.Hits)
	}
}

func TestSelectRectManyItemsTriggersSplit(t *testing.T) {
	nl := layout.NewNetworkLayout()
	nl.RowCount = 100
	nl.ColumnCount = 100
	nl.ColumnCountNoShadows = 100
	for i := 0; i < 50; i++ {
		id := graph.NodeId(fmt.Sprintf("n%d", i))
		nl.SetNode(id, layout.NodeLayout{Row: i, MinCol: 0, MaxCol: 10})
	}

	idx := Build(nl, true)
	if idx.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", idx.Len())
	}

	result := idx.SelectRect(NewRect(0, 0, 100, 100))
	if len(result.Hits) != 50 {
		t.Errorf("SelectRect over full bounds found %d hits, want 50", len(result.Hits))
	}
}
