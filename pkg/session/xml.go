package session

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biofabric/biofabric/pkg/align/score"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/layout"
)

// The wire shape below mirrors the native project file: a
// <BioFabric> root holding one <BioFabricNetwork> (nodes, links, link
// grouping, and the two annotation sets), the viewer's <displayOptions>,
// and an optional <alignmentStats>.
//
// Every node and link carries a "color" attribute holding its
// ColorIndex as a plain decimal string rather than a resolved hex
// color: the palette is process-wide and swapping it shouldn't silently
// rewrite every saved session's colors, and storing the index keeps
// each color exact across read(write(session)). The format does not
// carry link directedness, node attributes, or the shadow-off link
// annotations, so ReadXML leaves those at their zero values.

type xmlNode struct {
	XMLName   xml.Name `xml:"node"`
	Name      string   `xml:"name,attr"`
	Row       int      `xml:"row,attr"`
	MinCol    int      `xml:"minCol,attr"`
	MaxCol    int      `xml:"maxCol,attr"`
	MinColSha int      `xml:"minColSha,attr"`
	MaxColSha int       `xml:"maxColSha,attr"`
	Color     string    `xml:"color,attr"`
	Nid       int       `xml:"nid,attr"`
	Cluster   string    `xml:"cluster,attr,omitempty"`
}

type xmlLink struct {
	XMLName   xml.Name `xml:"link"`
	Source    string   `xml:"src,attr"`
	Target    string   `xml:"trg,attr"`
	Relation  string   `xml:"rel,attr"`
	Column    int      `xml:"col,attr"`
	ShadowCol *int     `xml:"shadowCol,attr,omitempty"`
	Color     string   `xml:"color,attr"`
	Shadow    bool     `xml:"shadow,attr"`
}

type xmlAnnotation struct {
	XMLName xml.Name `xml:"annotation"`
	Label   string   `xml:"label,attr"`
	Start   int      `xml:"start,attr"`
	End     int      `xml:"end,attr"`
	Color   string   `xml:"color,attr,omitempty"`
}

type xmlLinkGrouping struct {
	Mode   string `xml:"mode,attr"`
	Annots string `xml:"annots,attr"`
}

type xmlDisplayOptions struct {
	ShowShadows     bool    `xml:"showShadows,attr"`
	ShowNodeLabels  bool    `xml:"showNodeLabels,attr"`
	ShowLinkLabels  bool    `xml:"showLinkLabels,attr"`
	ShowAnnotations bool    `xml:"showAnnotations,attr"`
	BackgroundColor string  `xml:"backgroundColor,attr"`
	LineWidthScale  float64 `xml:"lineWidthScale,attr"`
}

type xmlAlignmentStats struct {
	EC              float64 `xml:"ec,attr"`
	S3              float64 `xml:"s3,attr"`
	ICS             float64 `xml:"ics,attr"`
	Evaluated       bool    `xml:"evaluated,attr"`
	NC              float64 `xml:"nc,attr"`
	NGS             float64 `xml:"ngs,attr"`
	LGS             float64 `xml:"lgs,attr"`
	JS              float64 `xml:"js,attr"`
	PerfectCoverage float64 `xml:"perfectCoverage,attr"`
}

type xmlNetwork struct {
	HasLayout            bool            `xml:"hasLayout,attr"`
	RowCount             int             `xml:"rowCount,attr,omitempty"`
	ColumnCount          int             `xml:"columnCount,attr,omitempty"`
	ColumnCountNoShadows int             `xml:"columnCountNoShadows,attr,omitempty"`
	Nodes                []xmlNode       `xml:"nodes>node"`
	Links                []xmlLink       `xml:"links>link"`
	LinkGrouping         xmlLinkGrouping `xml:"linkGrouping"`
	NodeAnnotations      []xmlAnnotation `xml:"nodeAnnotations>annotation"`
	LinkAnnotations      []xmlAnnotation `xml:"linkAnnotations>annotation"`
}

type xmlSession struct {
	XMLName        xml.Name           `xml:"BioFabric"`
	Network        xmlNetwork         `xml:"BioFabricNetwork"`
	DisplayOptions xmlDisplayOptions  `xml:"displayOptions"`
	AlignmentStats *xmlAlignmentStats `xml:"alignmentStats"`
}

// WriteXML encodes sess in the native project XML format and writes
// it to w.
func WriteXML(w io.Writer, sess *Session) error {
	doc := xmlSession{
		Network:        buildXMLNetwork(sess),
		DisplayOptions: xmlDisplayOptions(sess.DisplayOptions),
	}
	if sess.AlignmentStats != nil {
		st := xmlAlignmentStats(*sess.AlignmentStats)
		doc.AlignmentStats = &st
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

func buildXMLNetwork(sess *Session) xmlNetwork {
	var net xmlNetwork
	if sess.Network == nil {
		return net
	}

	for nid, id := range sess.Network.Nodes() {
		node := xmlNode{Name: string(id), Nid: nid, Color: "0"}
		if sess.Layout != nil {
			if nl, ok := sess.Layout.Node(id); ok {
				node.Row = nl.Row
				node.MinCol = nl.MinCol
				node.MaxCol = nl.MaxCol
				node.MinColSha = nl.MinColNoShadows
				node.MaxColSha = nl.MaxColNoShadows
				node.Color = strconv.Itoa(nl.ColorIndex)
				node.Cluster = nl.ClusterTag
			}
		}
		net.Nodes = append(net.Nodes, node)
	}

	net.HasLayout = sess.Layout != nil
	if sess.Layout != nil {
		for _, ll := range sess.Layout.Links {
			link := xmlLink{
				Source:   string(ll.Source),
				Target:   string(ll.Target),
				Relation: ll.Relation,
				Column:   ll.Column,
				Color:    strconv.Itoa(ll.ColorIndex),
				Shadow:   ll.IsShadow,
			}
			if ll.ColumnNoShadows != nil {
				v := *ll.ColumnNoShadows
				link.ShadowCol = &v
			}
			net.Links = append(net.Links, link)
		}
		net.RowCount = sess.Layout.RowCount
		net.ColumnCount = sess.Layout.ColumnCount
		net.ColumnCountNoShadows = sess.Layout.ColumnCountNoShadows
		net.LinkGrouping = xmlLinkGrouping{
			Mode:   linkGroupingMode(sess.Layout.LinkGroupOrder),
			Annots: strings.Join(sess.Layout.LinkGroupOrder, ","),
		}
		for _, a := range sess.Layout.NodeAnnotations {
			net.NodeAnnotations = append(net.NodeAnnotations, xmlAnnotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		for _, a := range sess.Layout.LinkAnnotations {
			net.LinkAnnotations = append(net.LinkAnnotations, xmlAnnotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
	} else {
		for _, l := range sess.Network.Links() {
			net.Links = append(net.Links, xmlLink{
				Source:   string(l.Source),
				Target:   string(l.Target),
				Relation: l.Relation,
				Shadow:   l.IsShadow,
				Color:    "0",
			})
		}
		net.LinkGrouping = xmlLinkGrouping{Mode: "none"}
	}

	return net
}

func linkGroupingMode(order []string) string {
	if len(order) == 0 {
		return "none"
	}
	return "relation"
}

// ReadXML decodes a session from the native project XML format.
func ReadXML(r io.Reader) (*Session, error) {
	var doc xmlSession
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode session xml: %w", err)
	}

	net := graph.New()
	nl := layout.NewNetworkLayout()
	haveLayout := doc.Network.HasLayout

	for _, xn := range doc.Network.Nodes {
		id := graph.NodeId(xn.Name)
		net.AddLoneNode(id)
		if haveLayout {
			nl.SetNode(id, layout.NodeLayout{
				Row:             xn.Row,
				MinCol:          xn.MinCol,
				MaxCol:          xn.MaxCol,
				MinColNoShadows: xn.MinColSha,
				MaxColNoShadows: xn.MaxColSha,
				ColorIndex:      atoiOr(xn.Color, 0),
				ClusterTag:      xn.Cluster,
			})
		}
	}

	for _, xl := range doc.Network.Links {
		link := graph.Link{
			Source:   graph.NodeId(xl.Source),
			Target:   graph.NodeId(xl.Target),
			Relation: xl.Relation,
			IsShadow: xl.Shadow,
		}
		net.AddLink(link)

		if haveLayout {
			ll := layout.LinkLayout{
				Column:     xl.Column,
				SourceRow:  rowOf(nl, link.Source),
				TargetRow:  rowOf(nl, link.Target),
				Source:     link.Source,
				Target:     link.Target,
				Relation:   xl.Relation,
				IsShadow:   xl.Shadow,
				ColorIndex: atoiOr(xl.Color, 0),
			}
			if xl.ShadowCol != nil {
				v := *xl.ShadowCol
				ll.ColumnNoShadows = &v
			}
			nl.Links = append(nl.Links, ll)
		}
	}

	var result *layout.NetworkLayout
	if haveLayout {
		nl.RowCount = doc.Network.RowCount
		nl.ColumnCount = doc.Network.ColumnCount
		nl.ColumnCountNoShadows = doc.Network.ColumnCountNoShadows
		if doc.Network.LinkGrouping.Annots != "" {
			nl.LinkGroupOrder = strings.Split(doc.Network.LinkGrouping.Annots, ",")
		}
		for _, a := range doc.Network.NodeAnnotations {
			nl.NodeAnnotations = append(nl.NodeAnnotations, layout.Annotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		for _, a := range doc.Network.LinkAnnotations {
			nl.LinkAnnotations = append(nl.LinkAnnotations, layout.Annotation{Label: a.Label, Start: a.Start, End: a.End, Color: a.Color})
		}
		result = nl
	}

	sess := &Session{
		Network:        net,
		Layout:         result,
		DisplayOptions: DisplayOptions(doc.DisplayOptions),
	}
	if doc.AlignmentStats != nil {
		st := score.Scores(*doc.AlignmentStats)
		sess.AlignmentStats = &st
	}
	return sess, nil
}

func rowOf(nl *layout.NetworkLayout, id graph.NodeId) int {
	n, ok := nl.Node(id)
	if !ok {
		return 0
	}
	return n.Row
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
