package align

import "testing"

func TestBuildNodeGroupsOrdersPurpleBeforeBlueBeforeRed(t *testing.T) {
	g1 := buildK3("a", "b", "c").net
	g2 := buildK3("x", "y", "z").net
	merged, err := Merge(g1, g2, AlignmentMap{"a": "x", "b": "y"}, nil, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	gm := BuildNodeGroups(merged)
	if len(gm.Groups) == 0 {
		t.Fatal("expected at least one node group")
	}
	for i := 1; i < len(gm.Groups); i++ {
		prev, cur := gm.Groups[i-1].Color, gm.Groups[i].Color
		if prev.priority() > cur.priority() {
			t.Errorf("groups out of color order at %d: %v before %v", i, prev, cur)
		}
	}

	idx, ok := gm.NodeToGroup["c::"]
	if !ok {
		t.Fatal("blue node c:: should belong to a group")
	}
	if gm.Groups[idx].Color != Blue {
		t.Errorf("c:: group color = %v, want Blue", gm.Groups[idx].Color)
	}
}

func TestRatioVectorSumsToOne(t *testing.T) {
	g1 := buildK3("a", "b", "c").net
	g2 := buildK3("x", "y", "z").net
	merged, err := Merge(g1, g2, AlignmentMap{"a": "x", "b": "y"}, nil, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	gm := BuildNodeGroups(merged)
	sum := 0.0
	for _, r := range gm.RatioVector() {
		sum += r
	}
	if abs(sum-1.0) > 1e-9 {
		t.Errorf("RatioVector sums to %v, want 1.0", sum)
	}
}

func TestLinkRatioVectorLengthMatchesAllEdgeTypes(t *testing.T) {
	g1 := buildK3("a", "b", "c").net
	g2 := buildK3("x", "y", "z").net
	merged, err := Merge(g1, g2, AlignmentMap{"a": "x", "b": "y"}, nil, nil)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	vec := LinkRatioVector(merged)
	if len(vec) != len(AllEdgeTypes()) {
		t.Fatalf("len(vec) = %d, want %d", len(vec), len(AllEdgeTypes()))
	}
	sum := 0.0
	for _, r := range vec {
		sum += r
	}
	if abs(sum-1.0) > 1e-9 {
		t.Errorf("LinkRatioVector sums to %v, want 1.0", sum)
	}
}
