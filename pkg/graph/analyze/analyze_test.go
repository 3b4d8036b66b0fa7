package analyze

import (
	"reflect"
	"testing"

	"github.com/biofabric/biofabric/pkg/graph"
)

func chainNetwork() *graph.Network {
	g := graph.New()
	g.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp"})
	g.AddLink(graph.Link{Source: "b", Target: "c", Relation: "pp"})
	g.AddLink(graph.Link{Source: "b", Target: "d", Relation: "pp"})
	return g
}

func TestHighestDegreeNode(t *testing.T) {
	g := chainNetwork()
	id, ok := HighestDegreeNode(g)
	if !ok || id != "b" {
		t.Fatalf("HighestDegreeNode() = (%v, %v), want (b, true)", id, ok)
	}
}

func TestBFSOrder(t *testing.T) {
	g := chainNetwork()
	order := BFS(g, "b")
	want := []graph.NodeId{"b", "a", "c", "d"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("BFS() = %v, want %v", order, want)
	}
}

func TestDFSOrder(t *testing.T) {
	g := chainNetwork()
	order := DFS(g, "b")
	if len(order) != 4 || order[0] != "b" {
		t.Fatalf("DFS() = %v, want 4 nodes starting with b", order)
	}
}

func TestShortestPath(t *testing.T) {
	g := chainNetwork()
	path, ok := ShortestPath(g, "a", "d")
	want := []graph.NodeId{"a", "b", "d"}
	if !ok || !reflect.DeepEqual(path, want) {
		t.Fatalf("ShortestPath() = (%v, %v), want %v", path, ok, want)
	}
}

func TestShortestPathNoPath(t *testing.T) {
	g := chainNetwork()
	g.AddLoneNode("z")
	_, ok := ShortestPath(g, "a", "z")
	if ok {
		t.Fatalf("ShortestPath() found a path where none exists")
	}
}

func TestConnectedComponentsMultiple(t *testing.T) {
	g := graph.New()
	g.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp"})
	g.AddLink(graph.Link{Source: "c", Target: "d", Relation: "pp"})
	g.AddLoneNode("e")

	comps := ConnectedComponents(g)
	if len(comps) != 3 {
		t.Fatalf("ConnectedComponents() = %d components, want 3", len(comps))
	}
	if len(comps[0]) != 2 || len(comps[1]) != 2 || len(comps[2]) != 1 {
		t.Fatalf("component sizes = %v, %v, %v, want 2,2,1",
			len(comps[0]), len(comps[1]), len(comps[2]))
	}
}

func TestFindCycleDetectsCycle(t *testing.T) {
	g := graph.New()
	g.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp", Directed: graph.DirectedYes})
	g.AddLink(graph.Link{Source: "b", Target: "c", Relation: "pp", Directed: graph.DirectedYes})
	g.AddLink(graph.Link{Source: "c", Target: "a", Relation: "pp", Directed: graph.DirectedYes})

	result := FindCycle(g)
	if !result.HasCycle {
		t.Fatalf("FindCycle() = no cycle, want cycle detected")
	}
	if len(result.ExampleCycle) != 3 {
		t.Errorf("ExampleCycle = %v, want 3 nodes", result.ExampleCycle)
	}
}

func TestFindCycleNoCycle(t *testing.T) {
	g := chainNetwork()
	for i := range g.Links() {
		_ = i
	}
	g2 := graph.New()
	g2.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp", Directed: graph.DirectedYes})
	g2.AddLink(graph.Link{Source: "b", Target: "c", Relation: "pp", Directed: graph.DirectedYes})

	if IsDAG(g2) != true {
		t.Fatalf("IsDAG() = false, want true")
	}
}

func TestTopologicalSort(t *testing.T) {
	g := graph.New()
	g.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp", Directed: graph.DirectedYes})
	g.AddLink(graph.Link{Source: "a", Target: "c", Relation: "pp", Directed: graph.DirectedYes})
	g.AddLink(graph.Link{Source: "b", Target: "d", Relation: "pp", Directed: graph.DirectedYes})
	g.AddLink(graph.Link{Source: "c", Target: "d", Relation: "pp", Directed: graph.DirectedYes})

	order, ok := TopologicalSort(g, false)
	if !ok {
		t.Fatalf("TopologicalSort() reported a cycle on a DAG")
	}
	pos := make(map[graph.NodeId]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos["a"] > pos["b"] || pos["a"] > pos["c"] || pos["b"] > pos["d"] || pos["c"] > pos["d"] {
		t.Errorf("topological order %v violates edge precedence", order)
	}
}

func TestTopologicalSortCycle(t *testing.T) {
	g := graph.New()
	g.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp", Directed: graph.DirectedYes})
	g.AddLink(graph.Link{Source: "b", Target: "a", Relation: "pp", Directed: graph.DirectedYes})

	_, ok := TopologicalSort(g, false)
	if ok {
		t.Fatalf("TopologicalSort() did not detect cycle")
	}
}

func TestDAGLevels(t *testing.T) {
	g := graph.New()
	g.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp", Directed: graph.DirectedYes})
	g.AddLink(graph.Link{Source: "b", Target: "c", Relation: "pp", Directed: graph.DirectedYes})

	levels, ok := DAGLevels(g)
	if !ok {
		t.Fatalf("DAGLevels() reported a cycle on a DAG")
	}
	if levels["a"] != 0 || levels["b"] != 1 || levels["c"] != 2 {
		t.Errorf("levels = %v, want a:0 b:1 c:2", levels)
	}
}

func TestDAGLevelsCycle(t *testing.T) {
	g := graph.New()
	g.AddLink(graph.Link{Source: "a", Target: "b", Relation: "pp", Directed: graph.DirectedYes})
	g.AddLink(graph.Link{Source: "b", Target: "a", Relation: "pp", Directed: graph.DirectedYes})

	_, ok := DAGLevels(g)
	if ok {
		t.Fatalf("DAGLevels() did not detect cycle")
	}
}
