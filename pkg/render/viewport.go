package render

import "math"

// Viewport is an axis-aligned rectangle in BioFabric grid coordinates: the
// X axis runs over columns (link positions), the Y axis over rows (node
// positions), both increasing away from the origin.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Right is the viewport's right edge.
func (v Viewport) Right() float64 { return v.X + v.Width }

// Bottom is the viewport's bottom edge.
func (v Viewport) Bottom() float64 { return v.Y + v.Height }

// IntersectsNode reports whether a node's horizontal span [minCol, maxCol]
// at the given row is visible in this viewport.
func (v Viewport) IntersectsNode(row, minCol, maxCol float64) bool {
	return row >= v.Y && row <= v.Bottom() && maxCol >= v.X && minCol <= v.Right()
}

// IntersectsLink reports whether a link's vertical span [topRow, bottomRow]
// at the given column is visible in this viewport.
func (v Viewport) IntersectsLink(column, topRow, bottomRow float64) bool {
	return column >= v.X && column <= v.Right() && bottomRow >= v.Y && topRow <= v.Bottom()
}

// LodLevel is the level of detail to render at, derived from zoom.
type LodLevel int

const (
	// LodFull renders every visible node and link.
	LodFull LodLevel = iota
	// LodCulled is the intermediate zoom band. Extract renders it like
	// LodFull: no decimation and no extra culling of links or spans.
	LodCulled
	// LodSparse samples every Nth element.
	LodSparse
)

// LodFromZoom derives the LOD level from screen pixels per grid unit.
func LodFromZoom(pixelsPerGridUnit float64) LodLevel {
	switch {
	case pixelsPerGridUnit >= 2.0:
		return LodFull
	case pixelsPerGridUnit >= 0.2:
		return LodCulled
	default:
		return LodSparse
	}
}

// DecimationFactor returns the sampling stride N (every Nth element is
// drawn): 1 (draw all) for Full/Culled, or ceil(1/ppgu) for Sparse.
func (l LodLevel) DecimationFactor(pixelsPerGridUnit float64) int {
	if l != LodSparse {
		return 1
	}
	f := math.Ceil(1.0 / pixelsPerGridUnit)
	if f < 1.0 {
		f = 1.0
	}
	return int(f)
}

// RenderParams are the frozen parameters for one extraction pass: the
// current viewport, zoom, derived LOD, canvas size, and shadow display
// mode. Built once per frame via Camera.RenderParams.
type RenderParams struct {
	Viewport                  Viewport
	PixelsPerGridUnit         float64
	Lod                       LodLevel
	CanvasWidth, CanvasHeight uint32
	ShowShadows               bool
}

// NewRenderParams derives Lod from pixelsPerGridUnit and assembles params.
func NewRenderParams(vp Viewport, pixelsPerGridUnit float64, canvasWidth, canvasHeight uint32, showShadows bool) RenderParams {
	return RenderParams{
		Viewport:          vp,
		PixelsPerGridUnit: pixelsPerGridUnit,
		Lod:               LodFromZoom(pixelsPerGridUnit),
		CanvasWidth:       canvasWidth,
		CanvasHeight:      canvasHeight,
		ShowShadows:       showShadows,
	}
}
