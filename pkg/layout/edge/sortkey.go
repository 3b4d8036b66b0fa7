package edge

import (
	"sort"

	"github.com/biofabric/biofabric/pkg/graph"
)

// sortable carries a link alongside its precomputed row/group sort
// keys so the comparator never recomputes them.
type sortable struct {
	link      graph.Link
	topRow    int // min(sourceRow, targetRow)
	bottomRow int // max(sourceRow, targetRow)
	ordinal   int // link-group ordinal; len(LinkGroups) if ungrouped
}

// sortLinks orders links per the interleaved real/shadow comparator
// ported from the reference DefaultFabricLinkLocater:
//
//   - if mode is PerNetwork, link-group ordinal is the primary key for
//     every comparison below, before row position is considered at all
//   - both regular: top_row, then link-group ordinal, then bottom_row,
//     then directedness, then relation
//   - both shadow: bottom_row, then link-group ordinal, then top_row,
//     then directedness, then relation
//   - regular vs. shadow: compare the regular link's top_row against
//     the shadow link's bottom_row; on a tie the shadow sorts first,
//     placing it immediately alongside the endpoint it mirrors
func sortLinks(links []sortable, mode LayoutMode) {
	sort.SliceStable(links, func(i, j int) bool {
		return less(links[i], links[j], mode)
	})
}

func less(a, b sortable, mode LayoutMode) bool {
	if mode == PerNetwork && a.ordinal != b.ordinal {
		return a.ordinal < b.ordinal
	}

	if a.link.IsShadow == b.link.IsShadow {
		if !a.link.IsShadow {
			return lessRegular(a, b)
		}
		return lessShadow(a, b)
	}

	// One regular, one shadow: compare the regular's top_row against
	// the shadow's bottom_row. The regular link sorts first only on a
	// strict less-than; a tie, or the regular being greater, puts the
	// shadow first.
	reg, sh := a, b
	aIsRegular := !a.link.IsShadow
	if !aIsRegular {
		reg, sh = b, a
	}
	regularFirst := reg.topRow < sh.bottomRow
	if aIsRegular {
		return regularFirst
	}
	return !regularFirst
}

func lessRegular(a, b sortable) bool {
	if a.topRow != b.topRow {
		return a.topRow < b.topRow
	}
	if a.ordinal != b.ordinal {
		return a.ordinal < b.ordinal
	}
	if a.bottomRow != b.bottomRow {
		return a.bottomRow < b.bottomRow
	}
	if a.link.Directed != b.link.Directed {
		return a.link.Directed < b.link.Directed
	}
	return a.link.Relation < b.link.Relation
}

func lessShadow(a, b sortable) bool {
	if a.bottomRow != b.bottomRow {
		return a.bottomRow < b.bottomRow
	}
	if a.ordinal != b.ordinal {
		return a.ordinal < b.ordinal
	}
	if a.topRow != b.topRow {
		return a.topRow < b.topRow
	}
	if a.link.Directed != b.link.Directed {
		return a.link.Directed < b.link.Directed
	}
	return a.link.Relation < b.link.Relation
}

// bestSuffixMatch returns the longest member of groups that is a
// suffix of relation, or "" if none match.
func bestSuffixMatch(relation string, groups []string) string {
	best := ""
	for _, g := range groups {
		if len(g) < len(best) {
			continue
		}
		if len(relation) >= len(g) && relation[len(relation)-len(g):] == g && len(g) > len(best) {
			best = g
		}
	}
	return best
}
