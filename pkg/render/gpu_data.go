package render

import (
	"encoding/binary"
	"math"

	"github.com/biofabric/biofabric/pkg/layout"
)

// FloatsPerInstance is the number of float32s per line or rect instance.
const FloatsPerInstance = 8

// LineInstance is one drawable line: an endpoint pair plus a color.
type LineInstance struct {
	X0, Y0, X1, Y1 float32
	Color          FabricColor
}

// packInto appends this instance's 8 floats to buf.
func (li LineInstance) packInto(buf []float32) []float32 {
	c := li.Color.ToF32Array()
	return append(buf, li.X0, li.Y0, li.X1, li.Y1, c[0], c[1], c[2], c[3])
}

// LineBatch is a flat buffer of line instances, ready for GPU upload: every
// 8 consecutive float32s describe one instance in [x0,y0,x1,y1,r,g,b,a]
// order.
type LineBatch struct {
	Data []float32
}

// NewLineBatch preallocates a batch for instanceCount instances.
func NewLineBatch(instanceCount int) LineBatch {
	return LineBatch{Data: make([]float32, 0, instanceCount*FloatsPerInstance)}
}

// InstanceCount is the number of line instances packed so far.
func (b LineBatch) InstanceCount() int { return len(b.Data) / FloatsPerInstance }

// Push appends one line instance.
func (b *LineBatch) Push(li LineInstance) {
	b.Data = li.packInto(b.Data)
}

// AsBytes returns the batch's little-endian byte encoding, suitable for a
// WASM memory export or a GPU buffer upload.
func (b LineBatch) AsBytes() []byte {
	return float32sToBytes(b.Data)
}

// RectInstance is a filled rectangle (used for annotation backgrounds):
// top-left corner, width/height, and a color.
type RectInstance struct {
	X, Y, W, H float32
	Color      FabricColor
}

func (ri RectInstance) packInto(buf []float32) []float32 {
	c := ri.Color.ToF32Array()
	return append(buf, ri.X, ri.Y, ri.W, ri.H, c[0], c[1], c[2], c[3])
}

// RectBatch is a flat buffer of rectangle instances, same 8-float layout
// as LineBatch but interpreted as [x, y, w, h, r, g, b, a].
type RectBatch struct {
	Data []float32
}

// NewRectBatch preallocates a batch for instanceCount instances.
func NewRectBatch(instanceCount int) RectBatch {
	return RectBatch{Data: make([]float32, 0, instanceCount*FloatsPerInstance)}
}

// InstanceCount is the number of rect instances packed so far.
func (b RectBatch) InstanceCount() int { return len(b.Data) / FloatsPerInstance }

// Push appends one rectangle instance.
func (b *RectBatch) Push(ri RectInstance) {
	b.Data = ri.packInto(b.Data)
}

// AsBytes returns the batch's little-endian byte encoding.
func (b RectBatch) AsBytes() []byte {
	return float32sToBytes(b.Data)
}

func float32sToBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// TextLabel positions a node or link name in grid space. The renderer is
// free to draw it as an HTML overlay, Canvas2D text, or a glyph atlas —
// this package stays agnostic to the rendering method.
type TextLabel struct {
	X           float32     `json:"x"`
	Y           float32     `json:"y"`
	Text        string      `json:"text"`
	FontSize    float32     `json:"font_size"`
	Color       FabricColor `json:"color"`
	IsNodeLabel bool        `json:"is_node_label"`
}

// TextBatch is an unpacked list of labels (text is not GPU-instanced the
// way lines and rects are).
type TextBatch struct {
	Labels []TextLabel
}

// Push appends one label.
func (b *TextBatch) Push(l TextLabel) {
	b.Labels = append(b.Labels, l)
}

// RenderOutput is everything one extraction pass produces, in back-to-
// front draw order: node annotations, link annotations, links, nodes,
// then labels on top of everything.
type RenderOutput struct {
	NodeAnnotations RectBatch
	LinkAnnotations RectBatch
	Links           LineBatch
	Nodes           LineBatch
	Labels          TextBatch
}

// EmptyRenderOutput is a placeholder output with no instances.
func EmptyRenderOutput() RenderOutput {
	return RenderOutput{
		NodeAnnotations: NewRectBatch(0),
		LinkAnnotations: NewRectBatch(0),
		Links:           NewLineBatch(0),
		Nodes:           NewLineBatch(0),
	}
}

// Extract performs viewport culling and LOD decimation over nl, then packs
// the surviving elements into GPU-ready batches per params.
//
// When params.ShowShadows is true, every link is a candidate and uses
// LinkLayout.Column and NodeLayout.{MinCol,MaxCol}; when false, shadow
// links are skipped entirely and LinkLayout.ColumnNoShadows /
// NodeLayout.{MinColNoShadows,MaxColNoShadows} are used instead, along
// with nl.LinkAnnotationsNoShadows in place of nl.LinkAnnotations.
func Extract(nl *layout.NetworkLayout, params RenderParams, palette ColorPalette) RenderOutput {
	vp := params.Viewport
	decimation := params.Lod.DecimationFactor(params.PixelsPerGridUnit)
	totalCols := float32(nl.ColumnCount)
	if !params.ShowShadows {
		totalCols = float32(nl.ColumnCountNoShadows)
	}

	nodeAnns := extractNodeAnnotations(nl, vp, totalCols)
	linkAnns := extractLinkAnnotations(nl, vp, params.ShowShadows)
	nodes := extractNodes(nl, vp, palette, params.ShowShadows, decimation)
	links := extractLinks(nl, vp, palette, params.ShowShadows, decimation)

	return RenderOutput{
		NodeAnnotations: nodeAnns,
		LinkAnnotations: linkAnns,
		Links:           links,
		Nodes:           nodes,
		Labels:          TextBatch{},
	}
}

func extractNodeAnnotations(nl *layout.NetworkLayout, vp Viewport, totalCols float32) RectBatch {
	out := NewRectBatch(len(nl.NodeAnnotations))
	for _, ann := range nl.NodeAnnotations {
		y0, y1 := float64(ann.Start), float64(ann.End)
		if y1 < vp.Y || y0 > vp.Bottom() {
			continue
		}
		out.Push(RectInstance{
			X: 0.0,
			Y: float32(ann.Start),
			W: totalCols,
			H: float32(ann.End - ann.Start + 1),
			Color: ParseAnnotationColor(ann.Color),
		})
	}
	return out
}

func extractLinkAnnotations(nl *layout.NetworkLayout, vp Viewport, showShadows bool) RectBatch {
	set := nl.LinkAnnotations
	if !showShadows {
		set = nl.LinkAnnotationsNoShadows
	}
	out := NewRectBatch(len(set))
	for _, ann := range set {
		x0, x1 := float64(ann.Start), float64(ann.End)
		if x1 < vp.X || x0 > vp.Right() {
			continue
		}
		out.Push(RectInstance{
			X: float32(ann.Start),
			Y: 0.0,
			W: float32(ann.End - ann.Start + 1),
			H: float32(nl.RowCount),
			Color: ParseAnnotationColor(ann.Color),
		})
	}
	return out
}

func extractNodes(nl *layout.NetworkLayout, vp Viewport, palette ColorPalette, showShadows bool, decimation int) LineBatch {
	order := nl.NodeOrder()
	out := NewLineBatch(len(order))
	for i, id := range order {
		if decimation > 1 && i%decimation != 0 {
			continue
		}
		n, ok := nl.Node(id)
		if !ok {
			continue
		}
		minC, maxC := n.MinCol, n.MaxCol
		if !showShadows {
			minC, maxC = n.MinColNoShadows, n.MaxColNoShadows
		}
		if minC > maxC {
			continue // no edges in this mode
		}
		row := float64(n.Row)
		minCf, maxCf := float64(minC), float64(maxC)
		if !vp.IntersectsNode(row, minCf, maxCf) {
			continue
		}
		x0 := float32(maxF(minCf, vp.X))
		x1 := float32(minF(maxCf, vp.Right()))
		out.Push(LineInstance{
			X0: x0, Y0: float32(n.Row),
			X1: x1, Y1: float32(n.Row),
			Color: palette.Get(n.ColorIndex),
		})
	}
	return out
}

func extractLinks(nl *layout.NetworkLayout, vp Viewport, palette ColorPalette, showShadows bool, decimation int) LineBatch {
	out := NewLineBatch(len(nl.Links))
	for i, ll := range nl.Links {
		if !showShadows && ll.IsShadow {
			continue
		}
		if decimation > 1 && i%decimation != 0 {
			continue
		}
		col := ll.Column
		if !showShadows {
			if ll.ColumnNoShadows == nil {
				continue
			}
			col = *ll.ColumnNoShadows
		}
		colF := float64(col)
		top, bot := float64(ll.TopRow()), float64(ll.BottomRow())
		if !vp.IntersectsLink(colF, top, bot) {
			continue
		}
		y0 := float32(maxF(top, vp.Y))
		y1 := float32(minF(bot, vp.Bottom()))
		out.Push(LineInstance{
			X0: float32(col), Y0: y0,
			X1: float32(col), Y1: y1,
			Color: palette.Get(ll.ColorIndex),
		})
	}
	return out
}
