package session

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/biofabric/biofabric/pkg/align/score"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
)

// jsonNode/jsonLink mirror graph.Node/graph.Link with JSON-friendly
// field names; used for the network section of the session JSON
// format.
type jsonNode struct {
	ID         string            `json:"id"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type jsonLink struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation,omitempty"`
	Directed int    `json:"directed"`
	IsShadow bool   `json:"is_shadow,omitempty"`
}

type jsonNodeLayout struct {
	ID              string `json:"id"`
	Row             int    `json:"row"`
	MinCol          int    `json:"min_col"`
	MaxCol          int    `json:"max_col"`
	MinColNoShadows int    `json:"min_col_no_shadows"`
	MaxColNoShadows int    `json:"max_col_no_shadows"`
	ColorIndex      int    `json:"color_index"`
	ClusterTag      string `json:"cluster_tag,omitempty"`
}

type jsonLinkLayout struct {
	Column          int    `json:"column"`
	ColumnNoShadows *int   `json:"column_no_shadows,omitempty"`
	SourceRow       int    `json:"source_row"`
	TargetRow       int    `json:"target_row"`
	Source          string `json:"source"`
	Target          string `json:"target"`
	Relation        string `json:"relation,omitempty"`
	IsShadow        bool   `json:"is_shadow,omitempty"`
	ColorIndex      int    `json:"color_index"`
	Directed        int    `json:"directed"`
}

type jsonAnnotation struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color,omitempty"`
}

type jsonLayout struct {
	Nodes                    []jsonNodeLayout `json:"nodes"`
	Links                    []jsonLinkLayout `json:"links"`
	RowCount                 int              `json:"row_count"`
	ColumnCount              int              `json:"column_count"`
	ColumnCountNoShadows     int              `json:"column_count_no_shadows"`
	LinkGroupOrder           []string         `json:"link_group_order,omitempty"`
	NodeAnnotations          []jsonAnnotation `json:"node_annotations,omitempty"`
	LinkAnnotations          []jsonAnnotation `json:"link_annotations,omitempty"`
	LinkAnnotationsNoShadows []jsonAnnotation `json:"link_annotations_no_shadows,omitempty"`
}

type jsonSession struct {
	Network         jsonNetwork        `json:"network"`
	Layout          *jsonLayout        `json:"layout,omitempty"`
	DisplayOptions  DisplayOptions     `json:"display_options"`
	AlignmentStats  *score.Scores      `json:"alignment_stats,omitempty"`
}

type jsonNetwork struct {
	Nodes     []jsonNode `json:"nodes"`
	Links     []jsonLink `json:"links"`
	LoneNodes []string   `json:"lone_nodes,omitempty"`
}

// WriteJSON encodes sess as indented JSON and writes it to w.
func WriteJSON(w io.Writer, sess *Session) error {
	doc := jsonSession{
		DisplayOptions: sess.DisplayOptions,
		AlignmentStats: sess.AlignmentStats,
	}
	if sess.Network != nil {
		for _, id := range sess.Network.Nodes() {
			n, _ := sess.Network.GetNode(id)
			doc.Network.Nodes = append(doc.Network.Nodes, jsonNode{ID: string(id), Attributes: n.Attributes})
		}
		for _, l := range sess.Network.Links() {
			doc.Network.Links = append(doc.Network.Links, jsonLink{
				Source: string(l.Source), Target: string(l.Target),
				Relation: l.Relation, Directed: int(l.Directed), IsShadow: l.IsShadow,
			})
		}
		for _, id := range sess.Network.LoneNodes() {
			doc.Network.LoneNodes = append(doc.Network.LoneNodes, string(id))
		}
	}
	if sess.Layout != nil {
		jl := &jsonLayout{
			RowCount:             sess.Layout.RowCount,
			ColumnCount:          sess.Layout.ColumnCount,
			ColumnCountNoShadows: sess.Layout.ColumnCountNoShadows,
			LinkGroupOrder:       sess.Layout.LinkGroupOrder,
		}
		for _, id := range sess.Layout.NodeOrder() {
			n, _ := sess.Layout.Node(id)
			jl.Nodes = append(jl.Nodes, jsonNodeLayout{
				ID: string(id), Row: n.Row, MinCol: n.MinCol, MaxCol: n.MaxCol,
				MinColNoShadows: n.MinColNoShadows, MaxColNoShadows: n.MaxColNoShadows,
				ColorIndex: n.ColorIndex, ClusterTag: n.ClusterTag,
			})
		}
		for _, ll := range sess.Layout.Links {
			jll := jsonLinkLayout{
				Column: ll.Column, SourceRow: ll.SourceRow, TargetRow: ll.TargetRow,
				Source: string(ll.Source), Target: string(ll.Target), Relation: ll.Relation,
				IsShadow: ll.IsShadow, ColorIndex: ll.ColorIndex, Directed: int(ll.Directed),
			}
			if ll.ColumnNoShadows != nil {
				v := *ll.ColumnNoShadows
				jll.ColumnNoShadows = &v
			}
			jl.Links = append(jl.Links, jll)
		}
		for _, a := range sess.Layout.NodeAnnotations {
			jl.NodeAnnotations = append(jl.NodeAnnotations, jsonAnnotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		for _, a := range sess.Layout.LinkAnnotations {
			jl.LinkAnnotations = append(jl.LinkAnnotations, jsonAnnotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		for _, a := range sess.Layout.LinkAnnotationsNoShadows {
			jl.LinkAnnotationsNoShadows = append(jl.LinkAnnotationsNoShadows, jsonAnnotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		doc.Layout = jl
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode session json: %w", err)
	}
	return nil
}

// ReadJSON decodes a session previously written by WriteJSON.
func ReadJSON(r io.Reader) (*Session, error) {
	var doc jsonSession
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode session json: %w", err)
	}

	net := graph.New()
	for _, n := range doc.Network.Nodes {
		node := graph.NewNode(graph.NodeId(n.ID))
		for k, v := range n.Attributes {
			node.Attributes[k] = v
		}
		net.AddNode(node)
	}
	for _, id := range doc.Network.LoneNodes {
		net.AddLoneNode(graph.NodeId(id))
	}
	for _, l := range doc.Network.Links {
		net.AddLink(graph.Link{
			Source: graph.NodeId(l.Source), Target: graph.NodeId(l.Target),
			Relation: l.Relation, Directed: graph.Directedness(l.Directed), IsShadow: l.IsShadow,
		})
	}

	sess := &Session{Network: net, DisplayOptions: doc.DisplayOptions, AlignmentStats: doc.AlignmentStats}

	if doc.Layout != nil {
		nl := layout.NewNetworkLayout()
		nl.RowCount = doc.Layout.RowCount
		nl.ColumnCount = doc.Layout.ColumnCount
		nl.ColumnCountNoShadows = doc.Layout.ColumnCountNoShadows
		nl.LinkGroupOrder = doc.Layout.LinkGroupOrder
		for _, n := range doc.Layout.Nodes {
			nl.SetNode(graph.NodeId(n.ID), layout.NodeLayout{
				Row: n.Row, MinCol: n.MinCol, MaxCol: n.MaxCol,
				MinColNoShadows: n.MinColNoShadows, MaxColNoShadows: n.MaxColNoShadows,
				ColorIndex: n.ColorIndex, ClusterTag: n.ClusterTag,
			})
		}
		for _, l := range doc.Layout.Links {
			ll := layout.LinkLayout{
				Column: l.Column, SourceRow: l.SourceRow, TargetRow: l.TargetRow,
				Source: graph.NodeId(l.Source), Target: graph.NodeId(l.Target), Relation: l.Relation,
				IsShadow: l.IsShadow, ColorIndex: l.ColorIndex, Directed: graph.Directedness(l.Directed),
			}
			if l.ColumnNoShadows != nil {
				v := *l.ColumnNoShadows
				ll.ColumnNoShadows = &v
			}
			nl.Links = append(nl.Links, ll)
		}
		for _, a := range doc.Layout.NodeAnnotations {
			nl.NodeAnnotations = append(nl.NodeAnnotations, layout.Annotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		for _, a := range doc.Layout.LinkAnnotations {
			nl.LinkAnnotations = append(nl.LinkAnnotations, layout.Annotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		for _, a := range doc.Layout.LinkAnnotationsNoShadows {
			nl.LinkAnnotationsNoShadows = append(nl.LinkAnnotationsNoShadows, layout.Annotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		sess.Layout = nl
	}

	return sess, nil
}
