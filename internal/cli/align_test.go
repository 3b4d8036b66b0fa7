package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/biofabric/biofabric/pkg/align"
	alignlayout "github.com/biofabric/biofabric/pkg/align/layout"
	"github.com/biofabric/biofabric/pkg/graph"
)

func TestParseAlignMode(t *testing.T) {
	cases := map[string]alignlayout.Mode{
		"":       alignlayout.Group,
		"group":  alignlayout.Group,
		"Orphan": alignlayout.Orphan,
		"CYCLE":  alignlayout.Cycle,
	}
	for input, want := range cases {
		got, err := parseAlignMode(input)
		if err != nil {
			t.Fatalf("parseAlignMode(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("parseAlignMode(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := parseAlignMode("bogus"); err == nil {
		t.Error("parseAlignMode should reject an unknown mode")
	}
}

func TestReadAlignmentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alignment.txt")
	content := "# comment\na1 b1\n\nb2 a2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := readAlignmentFile(path)
	if err != nil {
		t.Fatalf("readAlignmentFile: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("len(m) = %d, want 2", len(m))
	}
	if m["a1"] != "b1" {
		t.Errorf("m[a1] = %q, want b1", m["a1"])
	}
	if m["b2"] != "a2" {
		t.Errorf("m[b2] = %q, want a2", m["b2"])
	}
}

func TestReadAlignmentFileMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alignment.txt")
	if err := os.WriteFile(path, []byte("a1 b1 extra\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := readAlignmentFile(path); err == nil {
		t.Error("readAlignmentFile should reject a line with the wrong field count")
	}
}

func TestRunAlignPipeline(t *testing.T) {
	g1 := graph.New()
	g1.AddNode(graph.NewNode("a1"))
	g1.AddNode(graph.NewNode("a2"))
	g1.AddLink(graph.Link{Source: "a1", Target: "a2", Relation: "rel", Directed: graph.DirectedNo})

	g2 := graph.New()
	g2.AddNode(graph.NewNode("b1"))
	g2.AddNode(graph.NewNode("b2"))
	g2.AddLink(graph.Link{Source: "b1", Target: "b2", Relation: "rel", Directed: graph.DirectedNo})

	alignment := align.AlignmentMap{"a1": "b1", "a2": "b2"}

	merged, scores, nl, err := runAlignPipeline(context.Background(), g1, g2, alignment, nil, alignlayout.Group)
	if err != nil {
		t.Fatalf("runAlignPipeline: %v", err)
	}
	if merged == nil {
		t.Fatal("merged network should not be nil")
	}
	if nl == nil {
		t.Fatal("merged layout should not be nil")
	}
	if scores.Evaluated {
		t.Error("scores should not be marked evaluated without a perfect alignment")
	}
}
