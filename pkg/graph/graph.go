// Package graph implements the BioFabric graph model: nodes, links, and
// the Network container with its lazily-built adjacency index.
//
// # Nil Handling
//
// A zero-value Network is not usable; construct one with New. NodeId is
// a plain string, so the zero NodeId ("") is a valid, if unusual, node
// identifier — no special-casing is required.
//
// # Mutation Invalidates the Adjacency Index
//
// Any call that changes the link list (AddLink, GenerateShadows,
// DeduplicateLinks) invalidates the adjacency index built by Neighbors,
// Degree, and LinksForNode. The index is rebuilt lazily on the next
// query, never eagerly.
package graph

import (
	"sort"

	biofabric "github.com/biofabric/biofabric/pkg/errors"
)

// NodeId is an opaque interned string identifier. Equality and ordering
// are lexicographic (plain Go string comparison).
type NodeId string

// Directedness is the tri-state directedness of a Link: a link may be
// known directed, known undirected, or of unknown directedness (as when
// a loader cannot determine it from the source format).
type Directedness int

const (
	DirectedUnknown Directedness = iota
	DirectedYes
	DirectedNo
)

// Node is a vertex in the network. Nodes are created on first reference
// and are never removed except via subnetwork extraction.
type Node struct {
	ID         NodeId
	Attributes map[string]string
}

// NewNode creates a Node with an initialized, empty Attributes map.
func NewNode(id NodeId) Node {
	return Node{ID: id, Attributes: make(map[string]string)}
}

// Link is an edge between two nodes. For an undirected link, canonical
// orientation (min(source,target), max(source,target)) is used only for
// deduplication purposes — Source/Target are not reordered in place.
type Link struct {
	Source   NodeId
	Target   NodeId
	Relation string
	Directed Directedness
	IsShadow bool
}

// IsSelfLoop reports whether the link's endpoints are identical. Self-
// loops never receive a shadow copy.
func (l Link) IsSelfLoop() bool {
	return l.Source == l.Target
}

// canonicalKey returns the deduplication key for a link: for undirected
// links the endpoints are ordered so (a,b) and (b,a) collide.
func (l Link) canonicalKey() [5]string {
	src, dst := string(l.Source), string(l.Target)
	if l.Directed != DirectedYes && src > dst {
		src, dst = dst, src
	}
	shadow := "0"
	if l.IsShadow {
		shadow = "1"
	}
	return [5]string{src, dst, l.Relation, directedKey(l.Directed), shadow}
}

func directedKey(d Directedness) string {
	switch d {
	case DirectedYes:
		return "y"
	case DirectedNo:
		return "n"
	default:
		return "?"
	}
}

// toShadow returns the shadow copy of a real, non-self-loop link, or
// false if the link is itself a shadow or a self-loop.
func (l Link) toShadow() (Link, bool) {
	if l.IsShadow || l.IsSelfLoop() {
		return Link{}, false
	}
	shadow := l
	shadow.Source, shadow.Target = l.Target, l.Source
	shadow.IsShadow = true
	return shadow, true
}

// Metadata holds structural properties of a Network. The boolean-valued
// fields may be unset (nil) until the corresponding Detect* method runs.
type Metadata struct {
	IsDirected  bool
	IsBipartite *bool
	IsDAG       *bool
	DisplayName string
}

// adjacencyIndex maps a NodeId to the indices of its incident links in
// the owning Network's link slice. It is built lazily and invalidated on
// any structural mutation.
type adjacencyIndex struct {
	byNode map[NodeId][]int
	built  bool
}

// Network owns an ordered sequence of Links and an insertion-ordered set
// of Nodes, plus a lazily-built adjacency index and structural metadata.
type Network struct {
	nodes     map[NodeId]*Node
	nodeOrder []NodeId
	links     []Link
	loneNodes map[NodeId]bool

	Metadata Metadata

	adjacency adjacencyIndex
}

// New creates an empty Network.
func New() *Network {
	return &Network{
		nodes:     make(map[NodeId]*Node),
		loneNodes: make(map[NodeId]bool),
	}
}

// AddNode inserts a node, or is a no-op if the ID is already present.
func (n *Network) AddNode(node Node) {
	if _, ok := n.nodes[node.ID]; ok {
		return
	}
	if node.Attributes == nil {
		node.Attributes = make(map[string]string)
	}
	stored := node
	n.nodes[node.ID] = &stored
	n.nodeOrder = append(n.nodeOrder, node.ID)
}

// AddLoneNode inserts a node with no incident edges. It is tracked
// separately so it is preserved through operations that otherwise only
// see nodes referenced by a Link.
func (n *Network) AddLoneNode(id NodeId) {
	n.ensureNode(id)
	n.loneNodes[id] = true
}

// ensureNode creates the node if absent and returns it.
func (n *Network) ensureNode(id NodeId) *Node {
	if node, ok := n.nodes[id]; ok {
		return node
	}
	node := NewNode(id)
	n.nodes[id] = &node
	n.nodeOrder = append(n.nodeOrder, id)
	return &node
}

// GetNode returns the node with the given ID, and whether it was found.
func (n *Network) GetNode(id NodeId) (Node, bool) {
	node, ok := n.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *node, true
}

// ContainsNode reports whether id is a known node.
func (n *Network) ContainsNode(id NodeId) bool {
	_, ok := n.nodes[id]
	return ok
}

// NodeCount returns the number of nodes in the network.
func (n *Network) NodeCount() int {
	return len(n.nodeOrder)
}

// Nodes returns node IDs in insertion order.
func (n *Network) Nodes() []NodeId {
	out := make([]NodeId, len(n.nodeOrder))
	copy(out, n.nodeOrder)
	return out
}

// LoneNodes returns the set of nodes with no incident edges, in
// insertion order.
func (n *Network) LoneNodes() []NodeId {
	out := make([]NodeId, 0, len(n.loneNodes))
	for _, id := range n.nodeOrder {
		if n.loneNodes[id] {
			out = append(out, id)
		}
	}
	return out
}

// SetNodeAttribute sets a node attribute, reporting false if the node
// does not exist.
func (n *Network) SetNodeAttribute(id NodeId, key, value string) bool {
	node, ok := n.nodes[id]
	if !ok {
		return false
	}
	if node.Attributes == nil {
		node.Attributes = make(map[string]string)
	}
	node.Attributes[key] = value
	return true
}

// AddLink appends a link, ensuring both endpoint nodes exist and
// clearing them from the lone-node set. Invalidates the adjacency index.
func (n *Network) AddLink(link Link) {
	n.ensureNode(link.Source)
	n.ensureNode(link.Target)
	delete(n.loneNodes, link.Source)
	delete(n.loneNodes, link.Target)
	n.links = append(n.links, link)
	n.invalidateAdjacency()
}

// LinkCount returns the number of links.
func (n *Network) LinkCount() int {
	return len(n.links)
}

// Links returns the link slice in insertion order. Callers must not
// mutate the returned slice's elements in place; use AddLink /
// DeduplicateLinks to change the network structure.
func (n *Network) Links() []Link {
	return n.links
}

// RelationTypes returns the set of distinct relation labels present in
// the network.
func (n *Network) RelationTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range n.links {
		if !seen[l.Relation] {
			seen[l.Relation] = true
			out = append(out, l.Relation)
		}
	}
	sort.Strings(out)
	return out
}

func (n *Network) invalidateAdjacency() {
	n.adjacency.byNode = nil
	n.adjacency.built = false
}

// HasAdjacencyIndex reports whether the adjacency index is currently
// built and valid.
func (n *Network) HasAdjacencyIndex() bool {
	return n.adjacency.built
}

// compareNodesNotFound builds a NotFound error with the operation label.
func compareNodesNotFound(id NodeId) *biofabric.Error {
	return biofabric.New(biofabric.ErrCodeNotFound, "node %q not found", id).WithOp("graph.CompareNodes")
}
