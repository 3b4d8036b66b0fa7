// Package render computes what to draw from a computed NetworkLayout and
// packs it into flat, GPU-ready float32 buffers. It does not draw anything
// itself: any renderer (WebGL2, a software rasterizer, an image exporter)
// consumes RenderOutput directly.
//
// # Instance layout
//
// Each line (node or link) is one instance: 8 consecutive float32s
// [x0, y0, x1, y1, r, g, b, a]. One draw call renders all nodes, one more
// renders all links — no per-element draw calls even at millions of edges.
package render

import (
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
)

// Camera holds the navigable view state: center, zoom, and canvas size.
// Pan/zoom operations mutate a Camera; RenderParams derives the frozen
// snapshot a single extraction pass consumes.
type Camera struct {
	CenterX, CenterY           float64
	Zoom                       float64
	CanvasWidth, CanvasHeight  uint32
}

// ForCanvas creates a camera centered at the origin with zoom 1.0.
func ForCanvas(width, height uint32) Camera {
	return Camera{Zoom: 1.0, CanvasWidth: width, CanvasHeight: height}
}

// Viewport computes the currently visible rectangle in grid coordinates.
func (c Camera) Viewport() Viewport {
	halfW := float64(c.CanvasWidth) / (2.0 * c.Zoom)
	halfH := float64(c.CanvasHeight) / (2.0 * c.Zoom)
	return Viewport{
		X:      c.CenterX - halfW,
		Y:      c.CenterY - halfH,
		Width:  halfW * 2.0,
		Height: halfH * 2.0,
	}
}

// RenderParams builds the frozen parameters for one extraction pass.
func (c Camera) RenderParams(showShadows bool) RenderParams {
	return NewRenderParams(c.Viewport(), c.Zoom, c.CanvasWidth, c.CanvasHeight, showShadows)
}

// ZoomToFit adjusts zoom and center so the entire layout fits the canvas,
// with a 2% margin on each side.
func (c *Camera) ZoomToFit(nl *layout.NetworkLayout, showShadows bool) {
	cols := nl.ColumnCount
	if !showShadows {
		cols = nl.ColumnCountNoShadows
	}
	if nl.RowCount == 0 || cols == 0 {
		return
	}

	const margin = 0.02
	gridW := float64(cols)
	gridH := float64(nl.RowCount)

	zoomX := float64(c.CanvasWidth) / (gridW * (1.0 + 2.0*margin))
	zoomY := float64(c.CanvasHeight) / (gridH * (1.0 + 2.0*margin))

	c.Zoom = minF(zoomX, zoomY)
	c.CenterX = gridW / 2.0
	c.CenterY = gridH / 2.0
}

// ZoomToRect adjusts zoom and center to fit a specific grid-space rectangle,
// with a 5% margin. Used for zoom-to-selection and zoom-to-annotation.
func (c *Camera) ZoomToRect(x, y, width, height float64) {
	if width <= 0.0 || height <= 0.0 {
		return
	}
	const margin = 0.05
	zoomX := float64(c.CanvasWidth) / (width * (1.0 + 2.0*margin))
	zoomY := float64(c.CanvasHeight) / (height * (1.0 + 2.0*margin))

	c.Zoom = minF(zoomX, zoomY)
	c.CenterX = x + width/2.0
	c.CenterY = y + height/2.0
}

// ZoomToNode zooms to the node's full horizontal span plus vertical context.
func (c *Camera) ZoomToNode(nl *layout.NetworkLayout, id graph.NodeId, showShadows bool) {
	n, ok := nl.Node(id)
	if !ok {
		return
	}
	minCol, maxCol := n.MinCol, n.MaxCol
	if !showShadows {
		minCol, maxCol = n.MinColNoShadows, n.MaxColNoShadows
	}
	if minCol > maxCol {
		return // no edges in this mode
	}

	width := float64(maxCol - minCol + 1)
	contextRows := maxF(float64(nl.RowCount)*0.1, 5.0)
	c.ZoomToRect(float64(minCol), maxF(float64(n.Row)-contextRows, 0.0), width, contextRows*2.0)
}

// ZoomBy multiplies the zoom level; factor > 1 zooms in.
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom = maxF(c.Zoom*factor, 1e-6)
}

// PanByPixels pans by a screen-pixel offset.
func (c *Camera) PanByPixels(dxPx, dyPx float64) {
	c.CenterX -= dxPx / c.Zoom
	c.CenterY -= dyPx / c.Zoom
}

// PanByGrid pans by a grid-unit offset.
func (c *Camera) PanByGrid(dx, dy float64) {
	c.CenterX += dx
	c.CenterY += dy
}

// CenterOn recenters the camera on a grid-space point.
func (c *Camera) CenterOn(x, y float64) {
	c.CenterX = x
	c.CenterY = y
}

// ScreenToGrid maps a screen-pixel point to grid coordinates. Used to
// resolve mouse clicks to a row/column for C11 hit-testing.
func (c Camera) ScreenToGrid(screenX, screenY float64) (float64, float64) {
	vp := c.Viewport()
	return vp.X + screenX/c.Zoom, vp.Y + screenY/c.Zoom
}

// GridToScreen maps a grid-space point to screen pixels.
func (c Camera) GridToScreen(gridX, gridY float64) (float64, float64) {
	vp := c.Viewport()
	return (gridX - vp.X) * c.Zoom, (gridY - vp.Y) * c.Zoom
}

// GridUnitSizePx is the screen-pixel size of one grid unit at this zoom.
func (c Camera) GridUnitSizePx() float64 {
	return c.Zoom
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
