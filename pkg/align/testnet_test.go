package align

import "github.com/biofabric/biofabric/pkg/graph"

type testNetwork struct {
	net *graph.Network
}

// newTestNetwork builds an undirected Network from a list of [2]string
// edges, used across this package's tests to set up small G1/G2 fixtures.
func newTestNetwork(edges ...[2]string) *testNetwork {
	net := graph.New()
	for _, e := range edges {
		net.AddLink(graph.Link{Source: graph.NodeId(e[0]), Target: graph.NodeId(e[1]), Relation: "pp"})
	}
	return &testNetwork{net: net}
}
