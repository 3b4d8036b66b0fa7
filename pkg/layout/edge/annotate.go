package edge

import (
	"github.com/biofabric/biofabric/pkg/layout"
)

// annotColors is a fixed palette of distinguishable backgrounds cycled
// through for link groups lacking an explicit ColorMap entry.
var annotColors = []string{
	"#FFE0B2", // light orange
	"#B3E5FC", // light blue
	"#C8E6C9", // light green
	"#F8BBD0", // light pink
	"#D1C4E9", // light purple
	"#FFF9C4", // light yellow
	"#B2DFDB", // light teal
	"#FFCCBC", // light deep orange
}

const defaultGroupColor = "#CCCCCC"

// resolveColors builds the effective group -> color map: explicit
// overrides win, everything else is cycled from annotColors by the
// group's position in groups.
func resolveColors(groups []string, override map[string]string) map[string]string {
	colors := make(map[string]string, len(groups))
	for i, g := range groups {
		colors[g] = annotColors[i%len(annotColors)]
	}
	for g, c := range override {
		colors[g] = c
	}
	return colors
}

func colorFor(relation string, colors map[string]string) string {
	if c, ok := colors[relation]; ok {
		return c
	}
	return defaultGroupColor
}

// calcGroupLinkAnnotations walks a layout's links in column order and
// emits one annotation per contiguous run of same-relation links.
// shadow=false skips shadow links (and their columns) entirely, as in
// the shadow-off annotation stream.
func calcGroupLinkAnnotations(nl *layout.NetworkLayout, shadow bool, colors map[string]string) []layout.Annotation {
	var out []layout.Annotation
	var cur *layout.Annotation
	pos := 0

	for _, ll := range nl.Links {
		if ll.IsShadow && !shadow {
			continue
		}
		if cur != nil && cur.Label == ll.Relation {
			cur.End = pos
		} else {
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &layout.Annotation{Label: ll.Relation, Start: pos, End: pos, Color: colorFor(ll.Relation, colors)}
		}
		pos++
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}
