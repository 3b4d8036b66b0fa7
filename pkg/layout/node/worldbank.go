package node

import (
	"sort"

	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// WorldBank groups degree-1 "satellite" nodes around their single
// "hub" neighbor — named for the hub-and-spoke shape of World Bank
// loan-participant networks. Hubs are ordered by degree descending;
// within a hub's group, the hub comes first, then its satellites
// sorted lexicographically. Nodes that are neither a hub nor a
// satellite of one fall back to Default's BFS ordering.
type WorldBank struct{}

// LayoutNodes implements Layout.
func (WorldBank) LayoutNodes(net *graph.Network, params Params, mon *progress.Monitor) ([]graph.NodeId, error) {
	mon = ensureMonitor(mon, net.NodeCount())

	satellitesOf := make(map[graph.NodeId][]graph.NodeId)
	isSatellite := make(map[graph.NodeId]bool)
	for _, id := range net.Nodes() {
		if net.Degree(id) != 1 {
			continue
		}
		nbs := net.Neighbors(id)
		if len(nbs) != 1 {
			continue
		}
		hub := nbs[0]
		satellitesOf[hub] = append(satellitesOf[hub], id)
		isSatellite[id] = true
	}

	hubs := make([]graph.NodeId, 0, len(satellitesOf))
	for hub := range satellitesOf {
		if !isSatellite[hub] {
			hubs = append(hubs, hub)
		}
	}
	sort.Slice(hubs, func(i, j int) bool {
		di, dj := net.Degree(hubs[i]), net.Degree(hubs[j])
		if di != dj {
			return di > dj
		}
		return hubs[i] < hubs[j]
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

	for _, hub := range hubs {
		if mon.Cancelled() {
			return nil, cancelled("node.WorldBank")
		}
		place(hub)
		sats := sortedLexicographic(satellitesOf[hub])
		for _, s := range sats {
			place(s)
		}
	}

	if mon.Cancelled() {
		return nil, cancelled("node.WorldBank")
	}

	remaining, err := (Default{}).LayoutNodes(net, params, progress.New(mon.Context(), net.NodeCount()))
	if err != nil {
		return nil, err
	}
	for _, id := range remaining {
		place(id)
	}

	return order, nil
}

// CriteriaMet implements Layout: WorldBank accepts any network.
func (WorldBank) CriteriaMet(*graph.Network) error { return nil }

// Name implements Layout.
func (WorldBank) Name() string { return "World Bank (Hub-Spoke)" }
