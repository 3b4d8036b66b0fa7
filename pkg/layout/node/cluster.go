package node

import (
	"sort"

	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// ClusterOrder selects how clusters are ordered relative to each other.
type ClusterOrder int

const (
	// ClusterBreadthFirst orders clusters by BFS traversal of the
	// inter-cluster connectivity graph, starting from the cluster with
	// the most member nodes.
	ClusterBreadthFirst ClusterOrder = iota
	// ClusterByLinkSize orders by the number of inter-cluster links
	// touching the cluster, descending.
	ClusterByLinkSize
	// ClusterByNodeSize orders by cluster cardinality, descending.
	ClusterByNodeSize
	// ClusterByName orders clusters alphabetically by label.
	ClusterByName
)

// NodeCluster groups nodes by a caller-supplied attribute (cluster
// label), orders the clusters, and orders nodes within each cluster by
// degree descending. Inter-cluster links do not affect node order
// directly; they only feed ClusterBreadthFirst's traversal and
// ClusterByLinkSize's ranking.
type NodeCluster struct {
	// Assignments maps a node ID to its cluster label. Nodes absent
	// from this map are treated as their own singleton cluster named
	// after the node ID, so every node is placed.
	Assignments map[graph.NodeId]string
	// Order selects the inter-cluster ordering strategy.
	Order ClusterOrder
}

// LayoutNodes implements Layout.
func (c NodeCluster) LayoutNodes(net *graph.Network, params Params, mon *progress.Monitor) ([]graph.NodeId, error) {
	mon = ensureMonitor(mon, net.NodeCount())

	members := make(map[string][]graph.NodeId)
	labelOf := make(map[graph.NodeId]string, net.NodeCount())
	for _, id := range net.Nodes() {
		label, ok := c.Assignments[id]
		if !ok {
			label = string(id)
		}
		members[label] = append(members[label], id)
		labelOf[id] = label
	}

	interLinks := make(map[string]int)
	neighborClusters := make(map[string]map[string]bool)
	for _, l := range net.Links() {
		if l.IsShadow || l.IsSelfLoop() {
			continue
		}
		la, lb := labelOf[l.Source], labelOf[l.Target]
		if la == lb {
			continue
		}
		interLinks[la]++
		interLinks[lb]++
		if neighborClusters[la] == nil {
			neighborClusters[la] = make(map[string]bool)
		}
		if neighborClusters[lb] == nil {
			neighborClusters[lb] = make(map[string]bool)
		}
		neighborClusters[la][lb] = true
		neighborClusters[lb][la] = true
	}

	labels := make([]string, 0, len(members))
	for label := range members {
		labels = append(labels, label)
	}

	orderedLabels := orderClusters(labels, members, interLinks, neighborClusters, c.Order)

	order := make([]graph.NodeId, 0, net.NodeCount())
	for _, label := range orderedLabels {
		if mon.Cancelled() {
			return nil, cancelled("node.NodeCluster")
		}
		nodes := append([]graph.NodeId(nil), members[label]...)
		sort.Slice(nodes, func(i, j int) bool {
			di, dj := net.Degree(nodes[i]), net.Degree(nodes[j])
			if di != dj {
				return di > dj
			}
			return nodes[i] < nodes[j]
		})
		order = append(order, nodes...)
		for range nodes {
			mon.Step()
		}
	}
	return order, nil
}

// CriteriaMet implements Layout: NodeCluster accepts any network.
func (NodeCluster) CriteriaMet(*graph.Network) error { return nil }

// Name implements Layout.
func (NodeCluster) Name() string { return "Node Cluster" }

func orderClusters(labels []string, members map[string][]graph.NodeId, interLinks map[string]int, neighbors map[string]map[string]bool, order ClusterOrder) []string {
	switch order {
	case ClusterByName:
		out := append([]string(nil), labels...)
		sort.Strings(out)
		return out

	case ClusterByLinkSize:
		out := append([]string(nil), labels...)
		sort.Slice(out, func(i, j int) bool {
			if interLinks[out[i]] != interLinks[out[j]] {
				return interLinks[out[i]] > interLinks[out[j]]
			}
			return out[i] < out[j]
		})
		return out

	case ClusterByNodeSize:
		out := append([]string(nil), labels...)
		sort.Slice(out, func(i, j int) bool {
			if len(members[out[i]]) != len(members[out[j]]) {
				return len(members[out[i]]) > len(members[out[j]])
			}
			return out[i] < out[j]
		})
		return out

	default: // ClusterBreadthFirst
		remaining := make(map[string]bool, len(labels))
		for _, l := range labels {
			remaining[l] = true
		}
		var out []string
		for len(remaining) > 0 {
			start := largestRemaining(remaining, members)
			queue := []string{start}
			delete(remaining, start)
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				out = append(out, cur)
				var next []string
				for nb := range neighbors[cur] {
					if remaining[nb] {
						next = append(next, nb)
					}
				}
				sort.Strings(next)
				for _, nb := range next {
					if remaining[nb] {
						delete(remaining, nb)
						queue = append(queue, nb)
					}
				}
			}
		}
		return out
	}
}

func largestRemaining(remaining map[string]bool, members map[string][]graph.NodeId) string {
	var best string
	bestSize := -1
	for label := range remaining {
		size := len(members[label])
		if size > bestSize || (size == bestSize && label < best) {
			best, bestSize = label, size
		}
	}
	return best
}
