package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/biofabric/biofabric/pkg/cache"
	"github.com/biofabric/biofabric/pkg/config"
	"github.com/biofabric/biofabric/pkg/layout/edge"
	"github.com/biofabric/biofabric/pkg/layout/node"
)

func TestRunRenderRequiresLayout(t *testing.T) {
	sess := newSessionForTest(t)
	path := filepath.Join(t.TempDir(), "session.json")
	if err := writeSessionFile(path, sess, true); err != nil {
		t.Fatalf("writeSessionFile: %v", err)
	}

	c := &CLI{Logger: newLogger(io.Discard, LogInfo)}
	err := c.runRender(context.Background(), path, config.Default(), filepath.Join(t.TempDir(), "out.bin"), true, false)
	if err == nil {
		t.Error("runRender should fail for a session without a layout")
	}
}

func TestRunRenderWritesWireFile(t *testing.T) {
	sess := newSessionForTest(t)
	store := cache.NewNullCache()
	if _, err := computeLayout(context.Background(), sess, node.Default{}, edge.Default{}, node.Params{}, edge.Params{}, store, cache.NewDefaultKeyer()); err != nil {
		t.Fatalf("computeLayout: %v", err)
	}

	path := filepath.Join(t.TempDir(), "session.json")
	if err := writeSessionFile(path, sess, true); err != nil {
		t.Fatalf("writeSessionFile: %v", err)
	}
	output := filepath.Join(t.TempDir(), "out.bin")

	c := &CLI{Logger: newLogger(io.Discard, LogInfo)}
	if err := c.runRender(context.Background(), path, config.Default(), output, true, false); err != nil {
		t.Fatalf("runRender: %v", err)
	}
}

func TestWholeNetworkViewport(t *testing.T) {
	vp := wholeNetworkViewport(10, 5)
	if vp.X != -1 || vp.Y != -1 {
		t.Errorf("origin = (%v, %v), want (-1, -1)", vp.X, vp.Y)
	}
	if vp.Width != 7 {
		t.Errorf("Width = %v, want 7", vp.Width)
	}
	if vp.Height != 12 {
		t.Errorf("Height = %v, want 12", vp.Height)
	}
}
