package cycle

import (
	"testing"

	"github.com/biofabric/biofabric/pkg/align"
	"github.com/biofabric/biofabric/pkg/graph"
)

func ids(ss ...string) []graph.NodeId {
	out := make([]graph.NodeId, len(ss))
	for i, s := range ss {
		out[i] = graph.NodeId(s)
	}
	return out
}

func TestDetectCycleDecompositionExample(t *testing.T) {
	// alignment {a->y, b->x}, perfect {a->x, b->y}: a -M- y -P- b -M- x -P- a.
	alignment := align.AlignmentMap{"a": "y", "b": "x"}
	perfect := align.AlignmentMap{"a": "x", "b": "y"}

	got, err := Detect(ids("a", "b"), ids("x", "y"), alignment, perfect, nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got.Count(IncorrectCycle) != 1 {
		t.Fatalf("IncorrectCycle count = %d, want 1", got.Count(IncorrectCycle))
	}
	var cyclePath *Path
	for i := range got.Entries {
		if got.Entries[i].Case == IncorrectCycle {
			cyclePath = &got.Entries[i]
		}
	}
	if cyclePath == nil {
		t.Fatal("expected an IncorrectCycle entry")
	}
	if len(cyclePath.Nodes) != 2 {
		t.Fatalf("cycle nodes = %v, want 2 entries", cyclePath.Nodes)
	}
}

func TestDetectCorrectSingleton(t *testing.T) {
	alignment := align.AlignmentMap{"a": "x"}
	perfect := align.AlignmentMap{"a": "x"}

	got, err := Detect(ids("a"), ids("x"), alignment, perfect, nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got.Count(CorrectSingleton) != 1 {
		t.Errorf("CorrectSingleton count = %d, want 1", got.Count(CorrectSingleton))
	}
}

func TestDetectIsolatedVertices(t *testing.T) {
	got, err := Detect(ids("a"), ids("x"), align.AlignmentMap{}, align.AlignmentMap{}, nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got.Count(CorrectlyUnalignedBlue) != 1 {
		t.Errorf("CorrectlyUnalignedBlue count = %d, want 1", got.Count(CorrectlyUnalignedBlue))
	}
	if got.Count(CorrectlyUnalignedRed) != 1 {
		t.Errorf("CorrectlyUnalignedRed count = %d, want 1", got.Count(CorrectlyUnalignedRed))
	}
}

func TestDetectIncorrectSingletonNoPerfectCoverage(t *testing.T) {
	// a aligned to x in main, but perfect has neither endpoint touched.
	got, err := Detect(ids("a"), ids("x"), align.AlignmentMap{"a": "x"}, align.AlignmentMap{}, nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got.Count(IncorrectSingleton) != 1 {
		t.Errorf("IncorrectSingleton count = %d, want 1", got.Count(IncorrectSingleton))
	}
}

func TestDetectPathRedBlue(t *testing.T) {
	// Main aligns nothing; perfect aligns a->x. The only edge is the P
	// edge a-x, so a and x are not isolated (no case 1/2): walking from a
	// reaches x via P and stops without returning to a. The component is
	// a path with a blue end (a) and a red end (x) and no purple node.
	got, err := Detect(ids("a"), ids("x"), align.AlignmentMap{}, align.AlignmentMap{"a": "x"}, nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got.Count(PathRedBlue) != 1 {
		t.Errorf("PathRedBlue count = %d, want 1", got.Count(PathRedBlue))
	}
}

func TestDetectPathRedPurpleBlue(t *testing.T) {
	// perfect: a-x, b-y. main: a-y (purple a::y), b unaligned in main,
	// x unaligned in main. Chain: x -P- a -M- y -P- b. Endpoints x
	// (red, G2-only P edge) and b (blue, G1-only P edge); 1 purple node.
	got, err := Detect(ids("a", "b"), ids("x", "y"), align.AlignmentMap{"a": "y"}, align.AlignmentMap{"a": "x", "b": "y"}, nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got.Count(PathRedPurpleBlue) != 1 {
		t.Errorf("PathRedPurpleBlue count = %d, want 1", got.Count(PathRedPurpleBlue))
	}
}
