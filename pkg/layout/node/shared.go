package node

import (
	"sort"

	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/graph"
	"github.com/biofabric/biofabric/pkg/progress"
)

// ensureMonitor returns mon, or a fresh no-op Monitor over an
// unconditionally-running background context if mon is nil — every
// algorithm in this package must be safely callable without one.
func ensureMonitor(mon *progress.Monitor, total int) *progress.Monitor {
	if mon != nil {
		return mon
	}
	return progress.New(nil, total)
}

func cancelled(op string) *biofabric.Error {
	return biofabric.New(biofabric.ErrCodeCancelled, "%s: node layout cancelled", op)
}

func sortedLexicographic(ids []graph.NodeId) []graph.NodeId {
	out := append([]graph.NodeId(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
