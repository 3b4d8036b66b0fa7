package score

import (
	"testing"

	"github.com/biofabric/biofabric/pkg/align"
	"github.com/biofabric/biofabric/pkg/graph"
)

func buildK3(a, b, c string) *graph.Network {
	net := graph.New()
	net.AddLink(graph.Link{Source: graph.NodeId(a), Target: graph.NodeId(b), Relation: "pp"})
	net.AddLink(graph.Link{Source: graph.NodeId(b), Target: graph.NodeId(c), Relation: "pp"})
	net.AddLink(graph.Link{Source: graph.NodeId(a), Target: graph.NodeId(c), Relation: "pp"})
	return net
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func TestTopologicalK3Example(t *testing.T) {
	g1 := buildK3("a", "b", "c")
	g2 := buildK3("x", "y", "z")
	merged, err := align.Merge(g1, g2, align.AlignmentMap{"a": "x", "b": "y"}, nil, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	got, err := Topological(merged, nil)
	if err != nil {
		t.Fatalf("Topological() error = %v", err)
	}
	if want := 1.0 / 3.0; abs(got.EC-want) > 1e-9 {
		t.Errorf("EC = %v, want %v", got.EC, want)
	}
	if want := 1.0 / 3.0; abs(got.S3-want) > 1e-9 {
		t.Errorf("S3 = %v, want %v", got.S3, want)
	}
	if want := 1.0; abs(got.ICS-want) > 1e-9 {
		t.Errorf("ICS = %v, want %v", got.ICS, want)
	}
}

func TestWithEvaluationNodeCorrectness(t *testing.T) {
	g1 := buildK3("a", "b", "c")
	g2 := buildK3("x", "y", "z")
	perfect := align.AlignmentMap{"a": "x", "b": "y", "c": "z"}
	main := align.AlignmentMap{"a": "x", "b": "z"}

	merged, err := align.Merge(g1, g2, main, perfect, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	got, err := WithEvaluation(merged, g1, g2, main, perfect, nil)
	if err != nil {
		t.Fatalf("WithEvaluation() error = %v", err)
	}
	if !got.Evaluated {
		t.Fatal("expected Evaluated = true")
	}
	if want := 1.0 / 3.0; abs(got.NC-want) > 1e-9 {
		t.Errorf("NC = %v, want %v", got.NC, want)
	}
	if want := 2.0 / 3.0; abs(got.PerfectCoverage-want) > 1e-9 {
		t.Errorf("PerfectCoverage = %v, want %v (main covers a,b of perfect's a,b,c domain)", got.PerfectCoverage, want)
	}
}

func TestJaccardSimilarityEmptySets(t *testing.T) {
	if got := JaccardSimilarity(nil, nil); got != 1.0 {
		t.Errorf("JaccardSimilarity(nil, nil) = %v, want 1.0", got)
	}
}

func TestAngularSimilarityZeroMagnitude(t *testing.T) {
	if got := AngularSimilarity([]float64{0, 0}, []float64{1, 1}); got != 0.0 {
		t.Errorf("AngularSimilarity with zero vector = %v, want 0.0", got)
	}
}

func TestAngularSimilarityIdenticalVectors(t *testing.T) {
	v := []float64{1, 2, 3}
	if got := AngularSimilarity(v, v); abs(got-1.0) > 1e-9 {
		t.Errorf("AngularSimilarity(v, v) = %v, want 1.0", got)
	}
}
