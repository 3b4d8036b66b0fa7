package align

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biofabric/biofabric/pkg/graph"
)

// NodeGroup is a set of merged nodes sharing the same color and the
// same set of incident non-shadow EdgeTypes.
type NodeGroup struct {
	Tag       string
	Color     NodeColor
	EdgeTypes []EdgeType
	Members   []graph.NodeId
}

// NodeGroupMap is the complete node-group classification of a merged
// network, ordered canonically: by color (Purple < Blue < Red), then
// lexicographically by tag.
type NodeGroupMap struct {
	Groups      []NodeGroup
	NodeToGroup map[graph.NodeId]int
}

// groupTag renders a node group's "(C:T1/T2/...)" display tag.
func groupTag(color NodeColor, edgeTypes []EdgeType) string {
	if len(edgeTypes) == 0 {
		return fmt.Sprintf("(%s:0)", color)
	}
	codes := make([]string, len(edgeTypes))
	for i, t := range edgeTypes {
		codes[i] = t.ShortCode()
	}
	return fmt.Sprintf("(%s:%s)", color, strings.Join(codes, "/"))
}

// BuildNodeGroups partitions a merged network's nodes by (color, sorted
// incident edge-type set), per §4.8.
func BuildNodeGroups(m *MergedNetwork) *NodeGroupMap {
	nodeEdgeTypes := make(map[graph.NodeId]map[EdgeType]bool)
	for id := range m.NodeColors {
		nodeEdgeTypes[id] = make(map[EdgeType]bool)
	}

	links := m.Network.Links()
	for i, l := range links {
		if l.IsShadow {
			continue
		}
		t := m.EdgeTypes[i]
		nodeEdgeTypes[l.Source][t] = true
		nodeEdgeTypes[l.Target][t] = true
	}

	type groupKey struct {
		color NodeColor
		tag   string
	}
	membersByTag := make(map[string][]graph.NodeId)
	metaByTag := make(map[string]groupKey)
	typesByTag := make(map[string][]EdgeType)

	for id, types := range nodeEdgeTypes {
		var sorted []EdgeType
		for t := range types {
			sorted = append(sorted, t)
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		color := m.NodeColors[id]
		tag := groupTag(color, sorted)
		membersByTag[tag] = append(membersByTag[tag], id)
		metaByTag[tag] = groupKey{color: color, tag: tag}
		typesByTag[tag] = sorted
	}

	tags := make([]string, 0, len(membersByTag))
	for tag := range membersByTag {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		a, b := metaByTag[tags[i]], metaByTag[tags[j]]
		if a.color.priority() != b.color.priority() {
			return a.color.priority() < b.color.priority()
		}
		return a.tag < b.tag
	})

	gm := &NodeGroupMap{NodeToGroup: make(map[graph.NodeId]int)}
	for idx, tag := range tags {
		members := append([]graph.NodeId(nil), membersByTag[tag]...)
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		for _, id := range members {
			gm.NodeToGroup[id] = idx
		}
		gm.Groups = append(gm.Groups, NodeGroup{
			Tag:       tag,
			Color:     metaByTag[tag].color,
			EdgeTypes: typesByTag[tag],
			Members:   members,
		})
	}
	return gm
}

// RatioVector returns, for each group in canonical order, the fraction
// of all nodes belonging to that group. Used for NGS scoring.
func (gm *NodeGroupMap) RatioVector() []float64 {
	total := 0
	for _, g := range gm.Groups {
		total += len(g.Members)
	}
	out := make([]float64, len(gm.Groups))
	if total == 0 {
		return out
	}
	for i, g := range gm.Groups {
		out[i] = float64(len(g.Members)) / float64(total)
	}
	return out
}

// LinkRatioVector returns, for each of the 7 EdgeTypes in
// AllEdgeTypes order, the fraction of non-shadow links of that type.
// Used for LGS scoring.
func LinkRatioVector(m *MergedNetwork) []float64 {
	all := AllEdgeTypes()
	counts := make([]int, len(all))
	total := 0
	links := m.Network.Links()
	for i, l := range links {
		if l.IsShadow {
			continue
		}
		for idx, t := range all {
			if m.EdgeTypes[i] == t {
				counts[idx]++
				total++
				break
			}
		}
	}
	out := make([]float64, len(all))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c) / float64(total)
	}
	return out
}
