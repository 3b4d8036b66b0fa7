// Package config holds the default display options and layout
// parameters shared by the CLI, the API server, and any worker that
// builds a BioFabric layout without a caller-supplied override. The
// defaults live in one const block here. The API server's render
// endpoint does not read them: it falls back to its own ppgu (1.0) and
// canvas size (1280x720) when a query parameter is absent.
//
// A Config is ordinarily loaded from a TOML file:
//
//	cfg, err := config.Load("biofabric.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nodeLayout, _ := cfg.Layout.ResolveNodeLayout()
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/biofabric/biofabric/pkg/layout/edge"
	"github.com/biofabric/biofabric/pkg/layout/node"
	"github.com/biofabric/biofabric/pkg/session"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultNodeOrdering is the node-ordering algorithm used when a
	// config file doesn't name one.
	DefaultNodeOrdering = "default"

	// DefaultBackgroundColor is the canvas background color.
	DefaultBackgroundColor = "#FFFFFF"

	// DefaultLineWidthScale scales link/node line widths; 1.0 is the
	// renderer's native width.
	DefaultLineWidthScale = 1.0

	// DefaultCanvasWidth and DefaultCanvasHeight size a freshly opened
	// viewport before the user has resized anything.
	DefaultCanvasWidth  = uint32(1280)
	DefaultCanvasHeight = uint32(720)

	// DefaultPixelsPerGridUnit is the initial zoom level.
	DefaultPixelsPerGridUnit = 8.0
)

// nodeOrderings maps the config-file ordering name to its
// implementation. Keys are lowercase and stable across releases;
// node.Layout.Name() strings are for display only and must never be
// used as a selector key.
var nodeOrderings = map[string]node.Layout{
	"default":     node.Default{},
	"similarity":  node.Similarity{},
	"hierdag":     node.HierDAG{},
	"nodecluster": node.NodeCluster{},
	"controltop":  node.ControlTop{},
	"set":         node.Set{},
	"worldbank":   node.WorldBank{},
}

// ValidNodeOrderings is the set of recognized NodeOrdering values.
var ValidNodeOrderings = func() map[string]bool {
	out := make(map[string]bool, len(nodeOrderings))
	for k := range nodeOrderings {
		out[k] = true
	}
	return out
}()

// ValidateNodeOrdering checks that name is a known node-ordering
// algorithm.
func ValidateNodeOrdering(name string) error {
	if !ValidNodeOrderings[name] {
		return fmt.Errorf("invalid node ordering: %q (must be one of: default, similarity, hierdag, nodecluster, controltop, set, worldbank)", name)
	}
	return nil
}

// =============================================================================
// Config - Layered Configuration
// =============================================================================

// Config is the full set of loadable defaults, grouped the way they
// appear in a TOML file: [display], [layout], [render].
type Config struct {
	Display DisplayConfig `toml:"display"`
	Layout  LayoutConfig  `toml:"layout"`
	Render  RenderConfig  `toml:"render"`

	// validated tracks whether ValidateAndSetDefaults has run.
	validated bool
}

// DisplayConfig mirrors session.DisplayOptions field for field, so a
// loaded Config can seed a new Session's display options directly.
type DisplayConfig struct {
	ShowShadows     bool    `toml:"show_shadows"`
	ShowNodeLabels  bool    `toml:"show_node_labels"`
	ShowLinkLabels  bool    `toml:"show_link_labels"`
	ShowAnnotations bool    `toml:"show_annotations"`
	BackgroundColor string  `toml:"background_color"`
	LineWidthScale  float64 `toml:"line_width_scale"`
}

// ToDisplayOptions converts to the session package's wire type.
func (d DisplayConfig) ToDisplayOptions() session.DisplayOptions {
	return session.DisplayOptions(d)
}

// LayoutConfig configures the node-ordering and edge-placement
// algorithms run when a session has no layout yet.
type LayoutConfig struct {
	// NodeOrdering selects the node.Layout implementation by key (see
	// nodeOrderings). Empty means DefaultNodeOrdering.
	NodeOrdering string `toml:"node_ordering"`
	// IncludeShadows feeds node.Params.IncludeShadows.
	IncludeShadows bool `toml:"include_shadows"`
	// LinkGroups feeds edge.Params.LinkGroups: the ordered relation
	// groups used for link sorting and group annotations.
	LinkGroups []string `toml:"link_groups"`
	// ColorMap overrides a link group's auto-assigned annotation
	// color, keyed by relation group name.
	ColorMap map[string]string `toml:"color_map"`
	// LinkGroupMode selects edge.Params.LayoutMode: "per_node"
	// (default) keeps the link-group ordinal a tiebreaker within a
	// node's own incident links, "per_network" promotes it to the
	// primary sort key so every link of a relation clusters together
	// across the whole network.
	LinkGroupMode string `toml:"link_group_mode"`
}

// ResolveNodeLayout looks up the node.Layout named by NodeOrdering,
// falling back to DefaultNodeOrdering when unset.
func (l LayoutConfig) ResolveNodeLayout() (node.Layout, error) {
	name := l.NodeOrdering
	if name == "" {
		name = DefaultNodeOrdering
	}
	impl, ok := nodeOrderings[name]
	if !ok {
		return nil, fmt.Errorf("invalid node ordering: %q (must be one of: default, similarity, hierdag, nodecluster, controltop, set, worldbank)", name)
	}
	return impl, nil
}

// ToNodeParams builds a node.Params from this config.
func (l LayoutConfig) ToNodeParams() node.Params {
	return node.Params{IncludeShadows: l.IncludeShadows}
}

// ToEdgeParams builds an edge.Params from this config, resolving
// LinkGroupMode the same way ResolveNodeLayout resolves NodeOrdering:
// empty falls back to per_node, anything else must be a recognized
// value.
func (l LayoutConfig) ToEdgeParams() (edge.Params, error) {
	mode := edge.PerNode
	switch strings.ToLower(l.LinkGroupMode) {
	case "", "per_node":
		mode = edge.PerNode
	case "per_network":
		mode = edge.PerNetwork
	default:
		return edge.Params{}, fmt.Errorf("invalid link group mode: %q (must be per_node or per_network)", l.LinkGroupMode)
	}
	return edge.Params{LinkGroups: l.LinkGroups, ColorMap: l.ColorMap, LayoutMode: mode}, nil
}

// RenderConfig configures the initial viewport a freshly opened
// session renders at, before the client sends its own camera state.
type RenderConfig struct {
	CanvasWidth       uint32  `toml:"canvas_width"`
	CanvasHeight      uint32  `toml:"canvas_height"`
	PixelsPerGridUnit float64 `toml:"pixels_per_grid_unit"`
}

// Default returns a Config populated with every built-in default.
func Default() *Config {
	cfg := &Config{
		Display: DisplayConfig{
			ShowShadows:     true,
			ShowNodeLabels:  true,
			ShowLinkLabels:  false,
			ShowAnnotations: true,
			BackgroundColor: DefaultBackgroundColor,
			LineWidthScale:  DefaultLineWidthScale,
		},
		Layout: LayoutConfig{
			NodeOrdering:  DefaultNodeOrdering,
			LinkGroupMode: "per_node",
		},
		Render: RenderConfig{
			CanvasWidth:       DefaultCanvasWidth,
			CanvasHeight:      DefaultCanvasHeight,
			PixelsPerGridUnit: DefaultPixelsPerGridUnit,
		},
		validated: true,
	}
	return cfg
}

// ValidateAndSetDefaults checks NodeOrdering and fills in zero-valued
// fields with their defaults. Idempotent: calling it twice has the
// same effect as calling it once.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}
	if c.Layout.NodeOrdering == "" {
		c.Layout.NodeOrdering = DefaultNodeOrdering
	}
	if err := ValidateNodeOrdering(c.Layout.NodeOrdering); err != nil {
		return err
	}
	if c.Layout.LinkGroupMode == "" {
		c.Layout.LinkGroupMode = "per_node"
	}
	if !strings.EqualFold(c.Layout.LinkGroupMode, "per_node") && !strings.EqualFold(c.Layout.LinkGroupMode, "per_network") {
		return fmt.Errorf("invalid link group mode: %q (must be per_node or per_network)", c.Layout.LinkGroupMode)
	}
	if c.Display.BackgroundColor == "" {
		c.Display.BackgroundColor = DefaultBackgroundColor
	}
	if c.Display.LineWidthScale == 0 {
		c.Display.LineWidthScale = DefaultLineWidthScale
	}
	if c.Render.CanvasWidth == 0 {
		c.Render.CanvasWidth = DefaultCanvasWidth
	}
	if c.Render.CanvasHeight == 0 {
		c.Render.CanvasHeight = DefaultCanvasHeight
	}
	if c.Render.PixelsPerGridUnit == 0 {
		c.Render.PixelsPerGridUnit = DefaultPixelsPerGridUnit
	}
	c.validated = true
	return nil
}

// =============================================================================
// Load / Save
// =============================================================================

// Load reads and decodes a TOML config file at path, then validates it
// and fills in defaults for anything left unset.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save encodes cfg as TOML and writes it to path, creating or
// truncating the file.
func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config %s: %w", path, err)
	}
	return nil
}
