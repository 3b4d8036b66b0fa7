// Package cycle classifies an alignment's structure — compared against
// an optional reference ("perfect") alignment — into the nine canonical
// cases used by alignment-cycle layout and scoring.
//
// # Model
//
// The supplied alignment M (G1 -> G2) and the perfect alignment P (also
// G1 -> G2) are both partial matchings over the vertex set G1 ∪ G2.
// Their union, viewed as an undirected graph, therefore has every
// vertex at degree <= 2 (at most one M edge, one P edge) and so
// decomposes into disjoint simple paths and even cycles — the
// classification walks each component once.
package cycle

import (
	"sort"

	"github.com/biofabric/biofabric/pkg/align"
	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// Case is one of the nine canonical alignment-structure classifications.
type Case int

const (
	// CorrectlyUnalignedBlue: a G1-only node the perfect alignment also
	// leaves unaligned.
	CorrectlyUnalignedBlue Case = iota
	// CorrectlyUnalignedRed: a G2-only node the perfect alignment also
	// leaves unaligned.
	CorrectlyUnalignedRed
	// CorrectSingleton: an aligned pair the perfect alignment agrees with.
	CorrectSingleton
	// IncorrectSingleton: an aligned pair with no perfect-alignment
	// coverage at either endpoint.
	IncorrectSingleton
	// PathRedBlue: a two-node path, red endpoint to blue endpoint, with
	// no purple (aligned) nodes between them.
	PathRedBlue
	// PathRedPurple: a path from a red endpoint through one or more
	// purple nodes, ending untagged.
	PathRedPurple
	// PathPurpleBlue: a path starting untagged, through one or more
	// purple nodes, ending at a blue endpoint.
	PathPurpleBlue
	// PathRedPurpleBlue: a path from a red endpoint through one or more
	// purple nodes to a blue endpoint.
	PathRedPurpleBlue
	// IncorrectCycle: a closed cycle of N>1 purple nodes.
	IncorrectCycle
)

// AllCases returns the nine cases in canonical (1-9) order.
func AllCases() []Case {
	return []Case{
		CorrectlyUnalignedBlue, CorrectlyUnalignedRed, CorrectSingleton,
		IncorrectSingleton, PathRedBlue, PathRedPurple, PathPurpleBlue,
		PathRedPurpleBlue, IncorrectCycle,
	}
}

// Number is the case's canonical 1-9 number, matching AllCases order.
func (c Case) Number() int { return int(c) + 1 }

// IsCorrect reports whether the case represents a correct alignment
// (cases 1-3).
func (c Case) IsCorrect() bool {
	return c == CorrectlyUnalignedBlue || c == CorrectlyUnalignedRed || c == CorrectSingleton
}

// IsCycle reports whether the case is a closed structure (a correct
// singleton is a trivial 1-cycle; case 9 is a genuine N>1 cycle).
func (c Case) IsCycle() bool {
	return c == CorrectSingleton || c == IncorrectCycle
}

// Path is a single detected chain: a classification, the purple
// ("g1::g2") node IDs recorded at each aligned step, and the full
// ordered walk over actual merged-network node IDs (every vertex
// visited, start to end inclusive) used for chain-order layout.
type Path struct {
	Case        Case
	Nodes       []graph.NodeId
	MergedNodes []graph.NodeId
}

// Bound names the first and last merged-network node ID of a detected
// chain, used by cycle-mode layout to mark where each chain's zone
// begins and ends.
type Bound struct {
	Start, End graph.NodeId
	IsCorrect  bool
	IsCycle    bool
}

// Bound returns the layout boundary for this path: its first and last
// merged-network node.
func (p Path) Bound() Bound {
	b := Bound{IsCorrect: p.Case.IsCorrect(), IsCycle: p.Case.IsCycle()}
	if len(p.MergedNodes) > 0 {
		b.Start = p.MergedNodes[0]
		b.End = p.MergedNodes[len(p.MergedNodes)-1]
	}
	return b
}

// Cycles is the complete decomposition of an alignment's structure.
type Cycles struct {
	Entries    []Path
	CaseCounts [9]int
}

// Total returns the number of detected chains.
func (c *Cycles) Total() int { return len(c.Entries) }

// Count returns the number of chains classified as case.
func (c *Cycles) Count(cs Case) int { return c.CaseCounts[cs] }

// CorrectCount returns the number of correctly aligned chains (cases 1-3).
func (c *Cycles) CorrectCount() int {
	return c.CaseCounts[CorrectlyUnalignedBlue] + c.CaseCounts[CorrectlyUnalignedRed] + c.CaseCounts[CorrectSingleton]
}

// IncorrectCount returns the number of incorrectly aligned chains (cases 4-9).
func (c *Cycles) IncorrectCount() int {
	sum := 0
	for _, cs := range []Case{IncorrectSingleton, PathRedBlue, PathRedPurple, PathPurpleBlue, PathRedPurpleBlue, IncorrectCycle} {
		sum += c.CaseCounts[cs]
	}
	return sum
}

type side int

const (
	g1Side side = iota
	g2Side
)

type vertex struct {
	side side
	id   graph.NodeId
}

type edgeKind int

const (
	edgeM edgeKind = iota // from the main alignment
	edgeP                 // from the perfect alignment
)

type edge struct {
	to   vertex
	kind edgeKind
}

func cancelled(op string) *biofabric.Error {
	return biofabric.New(biofabric.ErrCodeCancelled, "%s: alignment cycle detection cancelled", op)
}

func ensureMonitor(mon *progress.Monitor, total int) *progress.Monitor {
	if mon != nil {
		return mon
	}
	return progress.New(nil, total)
}

// Detect classifies the structure induced by alignment against perfect
// over the full G1/G2 domains allG1/allG2 (required so that G1- or
// G2-only nodes with no edge at all in either mapping are still
// visited and classified as cases 1-2). perfect may be nil, in which
// case every aligned pair is classified IncorrectSingleton (no
// correctness information is available) and every unaligned node,
// having no edge in either mapping, is recorded as case 1 or 2.
func Detect(allG1, allG2 []graph.NodeId, alignment, perfect align.AlignmentMap, mon *progress.Monitor) (*Cycles, error) {
	mon = ensureMonitor(mon, len(allG1)+len(allG2))

	adj := make(map[vertex][]edge)
	addEdge := func(a, b vertex, kind edgeKind) {
		adj[a] = append(adj[a], edge{to: b, kind: kind})
		adj[b] = append(adj[b], edge{to: a, kind: kind})
	}
	for g1, g2 := range alignment {
		addEdge(vertex{g1Side, g1}, vertex{g2Side, g2}, edgeM)
	}
	for g1, g2 := range perfect {
		addEdge(vertex{g1Side, g1}, vertex{g2Side, g2}, edgeP)
	}

	g2ToG1 := make(map[graph.NodeId]graph.NodeId, len(alignment))
	for g1, g2 := range alignment {
		g2ToG1[g2] = g1
	}
	// mergedID renders v's actual node ID in the MergedNetwork built
	// from this same alignment: purple if v participates in an M edge,
	// blue/red (unaligned) otherwise.
	mergedID := func(v vertex) graph.NodeId {
		switch v.side {
		case g1Side:
			if g2, ok := alignment[v.id]; ok {
				return graph.NodeId(string(v.id) + "::" + string(g2))
			}
			return graph.NodeId(string(v.id) + "::")
		default:
			if g1, ok := g2ToG1[v.id]; ok {
				return graph.NodeId(string(g1) + "::" + string(v.id))
			}
			return graph.NodeId("::" + string(v.id))
		}
	}

	visited := make(map[vertex]bool)
	result := &Cycles{}

	record := func(c Case, purple, merged []graph.NodeId) {
		result.Entries = append(result.Entries, Path{Case: c, Nodes: purple, MergedNodes: merged})
		result.CaseCounts[c]++
	}

	g1Sorted := append([]graph.NodeId(nil), allG1...)
	sort.Slice(g1Sorted, func(i, j int) bool { return g1Sorted[i] < g1Sorted[j] })
	g2Sorted := append([]graph.NodeId(nil), allG2...)
	sort.Slice(g2Sorted, func(i, j int) bool { return g2Sorted[i] < g2Sorted[j] })

	// Case 1: isolated G1 vertices (no M, no P edge at all).
	for _, id := range g1Sorted {
		if mon.Cancelled() {
			return nil, cancelled("cycle.Detect")
		}
		v := vertex{g1Side, id}
		if len(adj[v]) == 0 {
			visited[v] = true
			label := graph.NodeId(string(id) + "::")
			record(CorrectlyUnalignedBlue, []graph.NodeId{label}, []graph.NodeId{label})
		}
		mon.Step()
	}
	// Case 2: isolated G2 vertices.
	for _, id := range g2Sorted {
		if mon.Cancelled() {
			return nil, cancelled("cycle.Detect")
		}
		v := vertex{g2Side, id}
		if len(adj[v]) == 0 {
			visited[v] = true
			label := graph.NodeId("::" + string(id))
			record(CorrectlyUnalignedRed, []graph.NodeId{label}, []graph.NodeId{label})
		}
		mon.Step()
	}

	// Walk every remaining component, starting from path endpoints
	// (degree 1) first, in deterministic order, then any unvisited
	// degree-2 vertex starts a cycle.
	var starts []vertex
	for _, id := range g1Sorted {
		v := vertex{g1Side, id}
		if !visited[v] && len(adj[v]) == 1 {
			starts = append(starts, v)
		}
	}
	for _, id := range g2Sorted {
		v := vertex{g2Side, id}
		if !visited[v] && len(adj[v]) == 1 {
			starts = append(starts, v)
		}
	}
	for _, id := range g1Sorted {
		v := vertex{g1Side, id}
		if !visited[v] && len(adj[v]) == 2 {
			starts = append(starts, v)
		}
	}

	for _, start := range starts {
		if visited[start] {
			continue
		}
		walkComponent(adj, visited, start, mergedID, record)
	}

	return result, nil
}

// walkComponent traces one path or cycle starting at start, recording
// one merged-style node label per M-edge traversed plus endpoint tags
// for path cases, then classifies and records it.
func walkComponent(adj map[vertex][]edge, visited map[vertex]bool, start vertex, mergedID func(vertex) graph.NodeId, record func(Case, []graph.NodeId, []graph.NodeId)) {
	var purpleNodes []graph.NodeId
	var usedEdge edgeKind = -1
	haveUsedEdge := false

	cur := start
	visited[cur] = true
	isCycle := false

	for {
		var next *edge
		for i := range adj[cur] {
			e := adj[cur][i]
			if haveUsedEdge && e.kind == usedEdge {
				continue
			}
			next = &adj[cur][i]
			break
		}
		if next == nil {
			break
		}
		if next.kind == edgeM {
			g1, g2 := cur, next.to
			if g1.side == g2Side {
				g1, g2 = g2, g1
			}
			purpleNodes = append(purpleNodes, graph.NodeId(string(g1.id)+"::"+string(g2.id)))
		}
		usedEdge, haveUsedEdge = next.kind, true
		nxt := next.to
		if visited[nxt] {
			if nxt == start {
				isCycle = true
			}
			break
		}
		visited[nxt] = true
		cur = nxt
	}

	if isCycle {
		if len(purpleNodes) <= 1 {
			record(CorrectSingleton, purpleNodes, purpleNodes)
		} else {
			record(IncorrectCycle, purpleNodes, purpleNodes)
		}
		return
	}

	// A path's two endpoints each have exactly one unused edge: an M
	// edge tags an "untagged" end (aligned in main, but uncovered or
	// disagreeing at this boundary); a P edge tags "red" (G2 side,
	// unaligned in main but covered by the reference) or "blue" (G1
	// side, same).
	endTag := func(v vertex) string {
		if len(adj[v]) != 1 {
			return "untagged"
		}
		if adj[v][0].kind == edgeM {
			return "untagged"
		}
		if v.side == g2Side {
			return "red"
		}
		return "blue"
	}
	tagStart, tagEnd := endTag(start), endTag(cur)

	merged := purpleNodes
	if tagStart != "untagged" {
		merged = append([]graph.NodeId{mergedID(start)}, merged...)
	}
	if tagEnd != "untagged" {
		merged = append(append([]graph.NodeId(nil), merged...), mergedID(cur))
	}

	hasRed := tagStart == "red" || tagEnd == "red"
	hasBlue := tagStart == "blue" || tagEnd == "blue"

	switch {
	case !hasRed && !hasBlue:
		record(IncorrectSingleton, purpleNodes, merged)
	case hasRed && hasBlue:
		if len(purpleNodes) == 0 {
			record(PathRedBlue, purpleNodes, merged)
		} else {
			record(PathRedPurpleBlue, purpleNodes, merged)
		}
	case hasRed:
		record(PathRedPurple, purpleNodes, merged)
	default: // hasBlue
		record(PathPurpleBlue, purpleNodes, merged)
	}
}
