// Package node implements the node-ordering family of layout
// algorithms: Default, Similarity, HierDAG, NodeCluster, ControlTop,
// Set, and WorldBank. Each assigns a total order to a Network's nodes,
// which becomes the fabric's row order once handed to an edge layout.
//
// # Criteria
//
// An algorithm may refuse to run against a Network that doesn't meet
// its structural precondition — ControlTop requires a directed network
// and a non-empty control set, HierDAG requires an acyclic network.
// Check with CriteriaMet before calling Layout; Layout itself returns a
// CriteriaNotMet error on the same violation so callers that skip the
// check still fail safely.
package node

import (
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// Params are the inputs common to every node layout algorithm.
type Params struct {
	// StartNode, if set, seeds BFS-family algorithms instead of the
	// default highest-degree node.
	StartNode graph.NodeId
	// IncludeShadows controls whether shadow links participate in
	// degree/neighbor computations used to order nodes. Node ordering
	// is rarely shadow-sensitive; it is carried here so an algorithm
	// that does care (none currently do) has it available.
	IncludeShadows bool
}

// Layout orders a Network's nodes into fabric row order.
type Layout interface {
	// LayoutNodes returns the node IDs in row order, top to bottom.
	LayoutNodes(net *graph.Network, params Params, mon *progress.Monitor) ([]graph.NodeId, error)
	// CriteriaMet reports whether net satisfies this algorithm's
	// structural precondition. The zero value (no error) means "no
	// precondition" for algorithms that accept any network.
	CriteriaMet(net *graph.Network) error
	// Name is the algorithm's display name.
	Name() string
}
