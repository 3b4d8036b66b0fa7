package render

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRenderOutputRoundTrip(t *testing.T) {
	nl := sampleLayout()
	vp := Viewport{X: 0, Y: 0, Width: 10, Height: 10}
	params := NewRenderParams(vp, 4.0, 800, 600, true)
	out := Extract(nl, params, DefaultPalette())
	out.Labels.Push(TextLabel{X: 1, Y: 2, Text: "a", FontSize: 12, Color: RGBA(0, 0, 0, 255), IsNodeLabel: true})

	var buf bytes.Buffer
	if err := EncodeRenderOutput(&buf, out); err != nil {
		t.Fatalf("EncodeRenderOutput: %v", err)
	}

	got, err := DecodeRenderOutput(&buf)
	if err != nil {
		t.Fatalf("DecodeRenderOutput: %v", err)
	}

	if got.Nodes.InstanceCount() != out.Nodes.InstanceCount() {
		t.Errorf("Nodes.InstanceCount() = %d, want %d", got.Nodes.InstanceCount(), out.Nodes.InstanceCount())
	}
	if got.Links.InstanceCount() != out.Links.InstanceCount() {
		t.Errorf("Links.InstanceCount() = %d, want %d", got.Links.InstanceCount(), out.Links.InstanceCount())
	}
	if got.NodeAnnotations.InstanceCount() != out.NodeAnnotations.InstanceCount() {
		t.Errorf("NodeAnnotations.InstanceCount() = %d, want %d", got.NodeAnnotations.InstanceCount(), out.NodeAnnotations.InstanceCount())
	}
	if len(got.Labels.Labels) != 1 || got.Labels.Labels[0].Text != "a" {
		t.Errorf("Labels = %+v", got.Labels.Labels)
	}
	for i, v := range out.Nodes.Data {
		if got.Nodes.Data[i] != v {
			t.Errorf("Nodes.Data[%d] = %v, want %v", i, got.Nodes.Data[i], v)
		}
	}
}

func TestEncodeDecodeEmptyRenderOutput(t *testing.T) {
	out := EmptyRenderOutput()

	var buf bytes.Buffer
	if err := EncodeRenderOutput(&buf, out); err != nil {
		t.Fatalf("EncodeRenderOutput: %v", err)
	}

	got, err := DecodeRenderOutput(&buf)
	if err != nil {
		t.Fatalf("DecodeRenderOutput: %v", err)
	}
	if got.Nodes.InstanceCount() != 0 || got.Links.InstanceCount() != 0 {
		t.Errorf("expected empty batches, got %+v", got)
	}
	if len(got.Labels.Labels) != 0 {
		t.Errorf("expected no labels, got %+v", got.Labels.Labels)
	}
}
