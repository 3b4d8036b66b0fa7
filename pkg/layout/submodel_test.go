package layout

import (
	"testing"

	"github.com/biofabric/biofabric/pkg/graph"
)

func buildChainLayout(t *testing.T) (*NetworkLayout, *graph.Network) {
	t.Helper()
	net := graph.New()
	net.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp"})
	net.AddLink(graph.Link{Source: "b", Target: "c", Relation: "pp"})
	net.AddLink(graph.Link{Source: "c", Target: "d", Relation: "pp"})

	nl := NewNetworkLayout()
	col := func(i int) *int { v := i; return &v }
	nl.Links = []LinkLayout{
		{Column: 0, ColumnNoShadows: col(0), Source: "a", Target: "b", SourceRow: 0, TargetRow: 1, Relation: "pp"},
		{Column: 1, ColumnNoShadows: col(1), Source: "b", Target: "c", SourceRow: 1, TargetRow: 2, Relation: "pp"},
		{Column: 2, ColumnNoShadows: col(2), Source: "c", Target: "d", SourceRow: 2, TargetRow: 3, Relation: "pp"},
	}
	nl.SetNode("a", NodeLayout{Row: 0, MinCol: 0, MaxCol: 0, MinColNoShadows: 0, MaxColNoShadows: 0})
	nl.SetNode("b", NodeLayout{Row: 1, MinCol: 0, MaxCol: 1, MinColNoShadows: 0, MaxColNoShadows: 1})
	nl.SetNode("c", NodeLayout{Row: 2, MinCol: 1, MaxCol: 2, MinColNoShadows: 1, MaxColNoShadows: 2})
	nl.SetNode("d", NodeLayout{Row: 3, MinCol: 2, MaxCol: 2, MinColNoShadows: 2, MaxColNoShadows: 2})
	nl.RowCount = 4
	nl.ColumnCount = 3
	nl.ColumnCountNoShadows = 3
	return nl, net
}

func TestExtractSubmodelCompressesAndUniformsMaxCol(t *testing.T) {
	full, net := buildChainLayout(t)
	subset := map[graph.NodeId]bool{"a": true, "b": true, "c": true}

	sub, subNet, err := ExtractSubmodel(full, net, subset)
	if err != nil {
		t.Fatalf("ExtractSubmodel() error = %v", err)
	}

	if sub.RowCount != 3 {
		t.Errorf("RowCount = %d, want 3", sub.RowCount)
	}
	if sub.ColumnCount != 2 {
		t.Errorf("ColumnCount = %d, want 2", sub.ColumnCount)
	}
	if subNet.NodeCount() != 3 {
		t.Errorf("subNet.NodeCount() = %d, want 3", subNet.NodeCount())
	}

	a, _ := sub.Node("a")
	b, _ := sub.Node("b")
	c, _ := sub.Node("c")

	// Every retained node's MaxCol is uniformly set to the compressed max.
	if a.MaxCol != 1 || b.MaxCol != 1 || c.MaxCol != 1 {
		t.Errorf("MaxCol = a:%d b:%d c:%d, want all 1 (global compressed max)", a.MaxCol, b.MaxCol, c.MaxCol)
	}
	if a.MinCol != 0 {
		t.Errorf("a.MinCol = %d, want 0", a.MinCol)
	}
	if c.MinCol != 1 {
		t.Errorf("c.MinCol = %d, want 1", c.MinCol)
	}
}

func TestExtractSubmodelDropsLinksOutsideSubset(t *testing.T) {
	full, net := buildChainLayout(t)
	subset := map[graph.NodeId]bool{"a": true, "b": true}

	sub, _, err := ExtractSubmodel(full, net, subset)
	if err != nil {
		t.Fatalf("ExtractSubmodel() error = %v", err)
	}
	if len(sub.Links) != 1 {
		t.Fatalf("len(sub.Links) = %d, want 1", len(sub.Links))
	}
}

func TestExtractSubmodelMissingIdsSkipped(t *testing.T) {
	full, net := buildChainLayout(t)
	subset := map[graph.NodeId]bool{"a": true, "b": true, "zzz": true}

	sub, subNet, err := ExtractSubmodel(full, net, subset)
	if err != nil {
		t.Fatalf("ExtractSubmodel() error = %v", err)
	}
	if sub.NodeCount() != 2 {
		t.Errorf("sub.NodeCount() = %d, want 2", sub.NodeCount())
	}
	if subNet.NodeCount() != 2 {
		t.Errorf("subNet.NodeCount() = %d, want 2", subNet.NodeCount())
	}
}
