// Package score computes network-alignment quality metrics: the
// topological measures EC/S3/ICS (no reference alignment required)
// and the evaluation measures NC/NGS/LGS/JS (require a known-correct
// "perfect" alignment for comparison).
package score

import (
	"math"

	"github.com/biofabric/biofabric/pkg/align"
	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// Scores holds every computed alignment quality metric. The
// evaluation fields (NC/NGS/LGS/JS, plus PerfectCoverage) are only
// meaningful when Evaluated is true.
type Scores struct {
	// EC is Edge Coverage: covered / (covered + induced_G1).
	EC float64
	// S3 is the Symmetric Substructure Score: covered / (covered + induced_G1 + induced_G2).
	S3 float64
	// ICS is Induced Conserved Substructure: covered / (covered + induced_G2).
	ICS float64

	Evaluated bool
	// NC is Node Correctness: the fraction of tracked nodes aligned to
	// their correct partner.
	NC float64
	// NGS is Node Group Similarity: angular similarity between the
	// main and perfect alignments' node-group ratio vectors.
	NGS float64
	// LGS is Link Group Similarity: angular similarity between the
	// main and perfect alignments' link-group ratio vectors.
	LGS float64
	// JS is Jaccard Similarity: the average, over aligned (Purple)
	// nodes, of the Jaccard similarity between that node's G1-side and
	// G2-side neighbor sets in the merged network.
	JS float64
	// PerfectCoverage is the fraction of the perfect alignment's domain
	// that the main alignment also aligns (regardless of correctness) —
	// a supplemented metric absent from the reference scorer.
	PerfectCoverage float64
}

func cancelled(op string) *biofabric.Error {
	return biofabric.New(biofabric.ErrCodeCancelled, "%s: alignment scoring cancelled", op)
}

func ensureMonitor(mon *progress.Monitor, total int) *progress.Monitor {
	if mon != nil {
		return mon
	}
	return progress.New(nil, total)
}

// ratio guards a/b against division by zero, returning 0 when b is 0.
func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Topological computes EC/S3/ICS from merged, requiring no reference
// alignment.
func Topological(merged *align.MergedNetwork, mon *progress.Monitor) (Scores, error) {
	mon = ensureMonitor(mon, 1)
	if mon.Cancelled() {
		return Scores{}, cancelled("score.Topological")
	}

	covered := merged.CountByEdgeType(align.Covered)
	inducedG1 := merged.CountByEdgeType(align.InducedGraph1)
	inducedG2 := merged.CountByEdgeType(align.InducedGraph2)

	mon.Step()
	return Scores{
		EC:  ratio(covered, covered+inducedG1),
		S3:  ratio(covered, covered+inducedG1+inducedG2),
		ICS: ratio(covered, covered+inducedG2),
	}, nil
}

// WithEvaluation computes the full Scores, including the evaluation
// measures, given the same two networks and alignments that produced
// merged plus the perfect (reference) alignment. g1/g2 are required to
// rebuild a second MergedNetwork under the perfect alignment for the
// NGS/LGS comparison.
func WithEvaluation(merged *align.MergedNetwork, g1, g2 *graph.Network, mainAlignment, perfect align.AlignmentMap, mon *progress.Monitor) (Scores, error) {
	mon = ensureMonitor(mon, 4)

	topo, err := Topological(merged, mon)
	if err != nil {
		return Scores{}, err
	}
	if mon.Cancelled() {
		return Scores{}, cancelled("score.WithEvaluation")
	}

	nc, ncOK := merged.NodeCorrectness()
	if !ncOK {
		nc = 0
	}
	mon.Step()

	perfectMerged, err := align.Merge(g1, g2, perfect, nil, nil)
	if err != nil {
		return Scores{}, err
	}
	mainGroups := align.BuildNodeGroups(merged).RatioVector()
	perfectGroups := align.BuildNodeGroups(perfectMerged).RatioVector()
	ngs := AngularSimilarity(padTo(mainGroups, perfectGroups), padTo(perfectGroups, mainGroups))
	mon.Step()

	lgs := AngularSimilarity(align.LinkRatioVector(merged), align.LinkRatioVector(perfectMerged))
	mon.Step()

	js := neighborJaccard(merged, mainAlignment)

	covered := 0
	for g1n := range perfect {
		if _, ok := mainAlignment[g1n]; ok {
			covered++
		}
	}
	perfectCoverage := ratio(covered, len(perfect))
	mon.Step()

	return Scores{
		EC: topo.EC, S3: topo.S3, ICS: topo.ICS,
		Evaluated:       true,
		NC:              nc,
		NGS:             ngs,
		LGS:             lgs,
		JS:              js,
		PerfectCoverage: perfectCoverage,
	}, nil
}

// padTo pads a's ratio vector with trailing zeros to match b's length,
// guarding against the main and perfect node-group partitions
// producing a different number of distinct groups.
func padTo(a, b []float64) []float64 {
	if len(a) >= len(b) {
		return a
	}
	out := make([]float64, len(b))
	copy(out, a)
	return out
}

// neighborJaccard computes JS: the average, over Purple nodes, of the
// Jaccard similarity between a node's G1-side and G2-side neighbor
// sets (by incident EdgeType) in the merged network.
func neighborJaccard(merged *align.MergedNetwork, mainAlignment align.AlignmentMap) float64 {
	if len(mainAlignment) == 0 {
		return 1.0
	}

	g1Neighbors := make(map[graph.NodeId]map[graph.NodeId]bool)
	g2Neighbors := make(map[graph.NodeId]map[graph.NodeId]bool)
	links := merged.Network.Links()
	for i, l := range links {
		if l.IsShadow {
			continue
		}
		t := merged.EdgeTypes[i]
		switch {
		case t.IsGraph1():
			addNeighbor(g1Neighbors, l.Source, l.Target)
			addNeighbor(g1Neighbors, l.Target, l.Source)
		case t.IsGraph2():
			addNeighbor(g2Neighbors, l.Source, l.Target)
			addNeighbor(g2Neighbors, l.Target, l.Source)
		default: // Covered: counts toward both sides.
			addNeighbor(g1Neighbors, l.Source, l.Target)
			addNeighbor(g1Neighbors, l.Target, l.Source)
			addNeighbor(g2Neighbors, l.Source, l.Target)
			addNeighbor(g2Neighbors, l.Target, l.Source)
		}
	}

	sum := 0.0
	count := 0
	for g1n, g2n := range mainAlignment {
		id := align.MergedNodeId{G1: g1n, G2: g2n}.ToNodeID()
		sum += JaccardSimilarity(g1Neighbors[id], g2Neighbors[id])
		count++
	}
	return sum / float64(count)
}

func addNeighbor(m map[graph.NodeId]map[graph.NodeId]bool, from, to graph.NodeId) {
	if m[from] == nil {
		m[from] = make(map[graph.NodeId]bool)
	}
	m[from][to] = true
}

// JaccardSimilarity computes the Jaccard similarity of two node-ID
// sets. Two empty sets are considered identical (1.0); otherwise
// |intersection| / |union|, guarded to 0.0 if the union is empty.
func JaccardSimilarity(a, b map[graph.NodeId]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for id := range a {
		if b[id] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// AngularSimilarity computes the cosine-derived angular similarity of
// two equal-length vectors, mapped to [0, 1]: 1 - acos(cosθ)/(π/2).
// Returns 0.0 if either vector has zero magnitude.
func AngularSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	magA, magB = math.Sqrt(magA), math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0.0
	}
	cosine := dot / (magA * magB)
	if cosine > 1 {
		cosine = 1
	} else if cosine < -1 {
		cosine = -1
	}
	return 1.0 - math.Acos(cosine)/(math.Pi/2)
}
