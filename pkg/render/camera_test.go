package render

import (
	"testing"

	"github.com/biofabric/biofabric/pkg/layout"
)

func approx(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if got-want > tol || want-got > tol {
		t.Errorf("%s = %v, want %v", msg, got, want)
	}
}

func TestViewportAtDefault(t *testing.T) {
	cam := ForCanvas(1000, 500)
	vp := cam.Viewport()
	approx(t, vp.X, -500.0, 1e-9, "vp.X")
	approx(t, vp.Y, -250.0, 1e-9, "vp.Y")
	approx(t, vp.Width, 1000.0, 1e-9, "vp.Width")
	approx(t, vp.Height, 500.0, 1e-9, "vp.Height")
}

func TestZoomToFit(t *testing.T) {
	cam := ForCanvas(1000, 500)
	nl := layout.NewNetworkLayout()
	nl.RowCount = 100
	nl.ColumnCount = 200
	nl.ColumnCountNoShadows = 150

	cam.ZoomToFit(nl, true)

	approx(t, cam.CenterX, 100.0, 1e-9, "CenterX")
	approx(t, cam.CenterY, 50.0, 1e-9, "CenterY")

	vp := cam.Viewport()
	if vp.X > 0.0 {
		t.Error("viewport should start at or before column 0")
	}
	if vp.Y > 0.0 {
		t.Error("viewport should start at or before row 0")
	}
	if vp.Right() < 200.0 {
		t.Error("viewport should reach past last column")
	}
	if vp.Bottom() < 100.0 {
		t.Error("viewport should reach past last row")
	}
}

func TestScreenToGridRoundtrip(t *testing.T) {
	cam := ForCanvas(800, 600)
	cam.CenterX = 50.0
	cam.CenterY = 30.0
	cam.Zoom = 4.0

	gx, gy := cam.ScreenToGrid(400.0, 300.0)
	approx(t, gx, 50.0, 1e-9, "gx")
	approx(t, gy, 30.0, 1e-9, "gy")

	sx, sy := cam.GridToScreen(gx, gy)
	approx(t, sx, 400.0, 1e-9, "sx")
	approx(t, sy, 300.0, 1e-9, "sy")
}

func TestPanByPixels(t *testing.T) {
	cam := ForCanvas(800, 600)
	cam.CenterX = 100.0
	cam.CenterY = 50.0
	cam.Zoom = 2.0

	cam.PanByPixels(20.0, 10.0)

	approx(t, cam.CenterX, 90.0, 1e-9, "CenterX")
	approx(t, cam.CenterY, 45.0, 1e-9, "CenterY")
}

func TestZoomBy(t *testing.T) {
	cam := ForCanvas(800, 600)
	cam.Zoom = 4.0

	cam.ZoomBy(2.0)
	approx(t, cam.Zoom, 8.0, 1e-9, "Zoom")

	cam.ZoomBy(0.5)
	approx(t, cam.Zoom, 4.0, 1e-9, "Zoom")
}

func TestCameraRenderParams(t *testing.T) {
	cam := ForCanvas(1920, 1080)
	cam.CenterX = 500.0
	cam.CenterY = 250.0
	cam.Zoom = 3.0

	params := cam.RenderParams(true)
	if params.CanvasWidth != 1920 || params.CanvasHeight != 1080 {
		t.Errorf("canvas = %dx%d, want 1920x1080", params.CanvasWidth, params.CanvasHeight)
	}
	if !params.ShowShadows {
		t.Error("expected ShowShadows = true")
	}
	approx(t, params.PixelsPerGridUnit, 3.0, 1e-9, "PixelsPerGridUnit")
}

func TestZoomToNodeNoEdges(t *testing.T) {
	cam := ForCanvas(800, 600)
	nl := layout.NewNetworkLayout()
	nl.RowCount = 10
	nl.SetNode("a", layout.NodeLayout{Row: 0, MinCol: 1, MaxCol: 0}) // empty span

	before := cam
	cam.ZoomToNode(nl, "a", true)
	if cam != before {
		t.Error("ZoomToNode should be a no-op when the node has no edges in this mode")
	}
}
