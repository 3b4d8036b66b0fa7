package render

import "github.com/biofabric/biofabric/pkg/layout"

// Pipeline bundles a computed layout, frozen render parameters, and a
// color palette, so a caller (the CLI's image exporter, the chi render
// handler) can assemble its inputs once and call Extract repeatedly as
// the camera moves.
type Pipeline struct {
	Layout  *layout.NetworkLayout
	Params  RenderParams
	Palette ColorPalette
}

// NewPipeline builds a render pipeline.
func NewPipeline(nl *layout.NetworkLayout, params RenderParams, palette ColorPalette) Pipeline {
	return Pipeline{Layout: nl, Params: params, Palette: palette}
}

// Extract produces GPU-ready render output for the pipeline's current
// layout and parameters.
func (p Pipeline) Extract() RenderOutput {
	return Extract(p.Layout, p.Params, p.Palette)
}
