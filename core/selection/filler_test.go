package selection

import (
	"fmt"
	"testing"

	"graphmirror/core/catalog"
	"graphmirror/core/scoring"
	"graphmirror/core/types"
)

func instanceOf(id, pattern string, typeNames ...string) *types.ResourceInstance {
	inst := &types.ResourceInstance{ID: id, Pattern: pattern}
	for i, tn := range typeNames {
		inst.Resources = append(inst.Resources, types.ResourceRecord{
			ID:   fmt.Sprintf("%s-r%d", id, i),
			Type: types.CanonicalType(tn),
		})
	}
	return inst
}

// TestFillBudgetBound verifies the filler never exceeds its budget even
// with plenty of missing types left.
func TestFillBudgetBound(t *testing.T) {
	counts := make(map[types.CanonicalType]int)
	var candidates []*types.ResourceInstance
	for i := 0; i < 10; i++ {
		tn := fmt.Sprintf("Microsoft.Fixture/type%02d", i)
		counts[types.CanonicalType(tn)] = 5
		candidates = append(candidates, instanceOf(fmt.Sprintf("inst-%02d", i), "p", tn))
	}
	cat := catalog.NewTypeCatalog(counts)
	filler := NewFiller(cat)
	state := scoring.NewSelectionState()

	missing := filler.MissingTypes(state)
	if len(missing) != 10 {
		t.Fatalf("missing = %d, want 10", len(missing))
	}

	picks, trace := filler.Fill(3, missing, candidates, state)
	if len(picks) > 3 {
		t.Errorf("filler selected %d instances, budget was 3", len(picks))
	}
	if len(trace) != len(picks) {
		t.Errorf("trace entries = %d, picks = %d", len(trace), len(picks))
	}
	for _, entry := range trace {
		if !entry.Supplemental {
			t.Errorf("filler trace entry %s not marked supplemental", entry.InstanceID)
		}
	}
	if remaining := filler.MissingTypes(state); len(remaining) != 7 {
		t.Errorf("remaining missing = %d, want 7", len(remaining))
	}
}

// TestFillPrefersWidestCover verifies classic greedy set-cover behavior:
// the instance covering the most missing types wins the slot.
func TestFillPrefersWidestCover(t *testing.T) {
	counts := map[types.CanonicalType]int{
		"Microsoft.A/x": 5, "Microsoft.B/y": 5, "Microsoft.C/z": 5,
	}
	cat := catalog.NewTypeCatalog(counts)
	filler := NewFiller(cat)
	state := scoring.NewSelectionState()

	narrow := instanceOf("aaa-narrow", "p", "Microsoft.A/x")
	wide := instanceOf("zzz-wide", "p", "Microsoft.A/x", "Microsoft.B/y", "Microsoft.C/z")

	picks, _ := filler.Fill(1, filler.MissingTypes(state), []*types.ResourceInstance{narrow, wide}, state)
	if len(picks) != 1 || picks[0].ID != "zzz-wide" {
		t.Fatalf("picks = %+v, want the wide instance despite its later ID", picks)
	}
}

// TestFillStopsWhenNothingCovers verifies the pass ends early instead of
// burning budget on redundant instances.
func TestFillStopsWhenNothingCovers(t *testing.T) {
	cat := catalog.NewTypeCatalog(map[types.CanonicalType]int{"Microsoft.A/x": 5})
	filler := NewFiller(cat)
	state := scoring.NewSelectionState()

	covering := instanceOf("inst-1", "p", "Microsoft.A/x")
	redundant := instanceOf("inst-2", "p", "Microsoft.A/x")

	picks, _ := filler.Fill(5, filler.MissingTypes(state), []*types.ResourceInstance{covering, redundant}, state)
	if len(picks) != 1 {
		t.Fatalf("picks = %d, want 1 (redundant instance must not be selected)", len(picks))
	}
}

// TestFillTieBreaksByRarity verifies that among equal-width candidates the
// rarer cover wins, then the instance ID.
func TestFillTieBreaksByRarity(t *testing.T) {
	cat := catalog.NewTypeCatalog(map[types.CanonicalType]int{
		"Microsoft.A/common": 100,
		"Microsoft.B/rare":   1,
	})
	filler := NewFiller(cat)
	state := scoring.NewSelectionState()

	common := instanceOf("aaa-common", "p", "Microsoft.A/common")
	rare := instanceOf("zzz-rare", "p", "Microsoft.B/rare")

	picks, _ := filler.Fill(1, filler.MissingTypes(state), []*types.ResourceInstance{common, rare}, state)
	if len(picks) != 1 || picks[0].ID != "zzz-rare" {
		t.Fatalf("picks = %+v, want the rare cover", picks)
	}
}
