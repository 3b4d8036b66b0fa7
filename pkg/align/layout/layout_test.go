package layout

import (
	"testing"

	"github.com/biofabric/biofabric/pkg/align"
	"github.com/biofabric/biofabric/pkg/align/cycle"
	"github.com/biofabric/biofabric/pkg/graph"
)

func buildK3(a, b, c string) *graph.Network {
	net := graph.New()
	net.AddLink(graph.Link{Source: graph.NodeId(a), Target: graph.NodeId(b), Relation: "pp"})
	net.AddLink(graph.Link{Source: graph.NodeId(b), Target: graph.NodeId(c), Relation: "pp"})
	net.AddLink(graph.Link{Source: graph.NodeId(a), Target: graph.NodeId(c), Relation: "pp"})
	return net
}

func TestBuildGroupCoversEveryNode(t *testing.T) {
	g1 := buildK3("a", "b", "c")
	g2 := buildK3("x", "y", "z")
	merged, err := align.Merge(g1, g2, align.AlignmentMap{"a": "x", "b": "y"}, nil, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	nl, err := Build(merged, Group, nil, nil)
	if err != nil {
		t.Fatalf("Build(Group) error = %v", err)
	}
	if nl.NodeCount() != merged.Network.NodeCount() {
		t.Errorf("NodeCount() = %d, want %d", nl.NodeCount(), merged.Network.NodeCount())
	}
	if len(nl.NodeAnnotations) == 0 {
		t.Error("expected at least one node annotation for Group mode")
	}
}

func TestBuildOrphanFiltersToBlueTouchingEdges(t *testing.T) {
	g1 := buildK3("a", "b", "c")
	g2 := graph.New()
	g2.AddLink(graph.Link{Source: "x", Target: "y", Relation: "pp"})

	merged, err := align.Merge(g1, g2, align.AlignmentMap{"a": "x", "b": "y"}, nil, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	nl, err := Build(merged, Orphan, nil, nil)
	if err != nil {
		t.Fatalf("Build(Orphan) error = %v", err)
	}
	if nl.NodeCount() == 0 {
		t.Error("expected at least one node in the orphan-filtered layout")
	}
}

func TestBuildCycleRequiresCycles(t *testing.T) {
	g1 := buildK3("a", "b", "c")
	g2 := buildK3("x", "y", "z")
	merged, err := align.Merge(g1, g2, align.AlignmentMap{"a": "x", "b": "y"}, nil, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if _, err := Build(merged, Cycle, nil, nil); err == nil {
		t.Error("expected an error when Cycle mode is built without cycles")
	}
}

func TestBuildCycleOrdersCorrectFirst(t *testing.T) {
	g1 := buildK3("a", "b", "c")
	g2 := buildK3("x", "y", "z")
	alignment := align.AlignmentMap{"a": "x", "b": "y", "c": "z"}
	merged, err := align.Merge(g1, g2, alignment, alignment, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	g1Ids := []graph.NodeId{"a", "b", "c"}
	g2Ids := []graph.NodeId{"x", "y", "z"}
	cycles, err := cycle.Detect(g1Ids, g2Ids, alignment, alignment, nil)
	if err != nil {
		t.Fatalf("cycle.Detect() error = %v", err)
	}

	nl, err := Build(merged, Cycle, cycles, nil)
	if err != nil {
		t.Fatalf("Build(Cycle) error = %v", err)
	}
	if nl.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", nl.NodeCount())
	}
	// A perfect identity alignment produces three CorrectSingleton
	// chains and no incorrect ones: no cycle-mode link annotation
	// should be emitted.
	if len(nl.LinkAnnotations) != 0 {
		t.Errorf("LinkAnnotations = %v, want none for an all-correct alignment", nl.LinkAnnotations)
	}
}
