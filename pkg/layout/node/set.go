package node

import (
	"sort"

	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// SetSemantics selects which link direction identifies set membership
// in a bipartite-style set/member network.
type SetSemantics int

const (
	// SetBelongsTo treats each link as member -> set.
	SetBelongsTo SetSemantics = iota
	// SetContains treats each link as set -> member.
	SetContains
)

// Set orders a bipartite-style network where one node class represents
// "sets" and the other "members" (e.g. gene-ontology terms and genes).
// Sets are ordered by cardinality descending; each set's exclusive
// members follow it, then members shared across multiple sets.
type Set struct {
	Semantics SetSemantics
	// MembershipRelation restricts which relation label is treated as
	// membership; empty means every relation counts.
	MembershipRelation string
}

// LayoutNodes implements Layout.
func (s Set) LayoutNodes(net *graph.Network, params Params, mon *progress.Monitor) ([]graph.NodeId, error) {
	mon = ensureMonitor(mon, net.NodeCount())

	setOf := make(map[graph.NodeId]map[graph.NodeId]bool) // set -> members
	memberOf := make(map[graph.NodeId]map[graph.NodeId]bool) // member -> sets

	for _, l := range net.Links() {
		if l.IsShadow {
			continue
		}
		if s.MembershipRelation != "" && l.Relation != s.MembershipRelation {
			continue
		}
		var setID, memberID graph.NodeId
		switch s.Semantics {
		case SetContains:
			setID, memberID = l.Source, l.Target
		default: // SetBelongsTo
			memberID, setID = l.Source, l.Target
		}
		if setOf[setID] == nil {
			setOf[setID] = make(map[graph.NodeId]bool)
		}
		setOf[setID][memberID] = true
		if memberOf[memberID] == nil {
			memberOf[memberID] = make(map[graph.NodeId]bool)
		}
		memberOf[memberID][setID] = true
	}

	setIDs := make([]graph.NodeId, 0, len(setOf))
	for id := range setOf {
		setIDs = append(setIDs, id)
	}
	sort.Slice(setIDs, func(i, j int) bool {
		si, sj := len(setOf[setIDs[i]]), len(setOf[setIDs[j]])
		if si != sj {
			return si > sj
		}
		return setIDs[i] < setIDs[j]
	})

	placed := make(map[graph.NodeId]bool, net.NodeCount())
	order := make([]graph.NodeId, 0, net.NodeCount())

	place := func(id graph.NodeId) {
		if placed[id] {
			return
		}
		placed[id] = true
		order = append(order, id)
		mon.Step()
	}

	for _, setID := range setIDs {
		if mon.Cancelled() {
			return nil, cancelled("node.Set")
		}
		place(setID)
		members := make([]graph.NodeId, 0, len(setOf[setID]))
		for m := range setOf[setID] {
			members = append(members, m)
		}
		sort.Slice(members, func(i, j int) bool {
			// Exclusive members (belonging to only this set) come
			// before shared members; within each group, lexicographic.
			ei, ej := len(memberOf[members[i]]) == 1, len(memberOf[members[j]]) == 1
			if ei != ej {
				return ei
			}
			return members[i] < members[j]
		})
		for _, m := range members {
			place(m)
		}
	}

	// Any node untouched by a membership link (no relation matched, or
	// a lone node) is appended last in network order.
	for _, id := range net.Nodes() {
		if !placed[id] {
			place(id)
		}
	}

	return order, nil
}

// CriteriaMet implements Layout: Set accepts any network.
func (Set) CriteriaMet(*graph.Network) error { return nil }

// Name implements Layout.
func (Set) Name() string { return "Set Membership" }
