package scoring

import (
	"math"
	"testing"

	"graphmirror/core/catalog"
	"graphmirror/core/types"
)

func newInstance(id string, typeNames ...string) *types.ResourceInstance {
	inst := &types.ResourceInstance{ID: id, Pattern: "p"}
	for i, tn := range typeNames {
		inst.Resources = append(inst.Resources, types.ResourceRecord{
			ID:   id + "-r" + string(rune('a'+i)),
			Type: types.CanonicalType(tn),
		})
	}
	return inst
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

// TestScoreIdempotence verifies re-scoring against an unchanged state
// yields the same score.
func TestScoreIdempotence(t *testing.T) {
	cat := catalog.NewTypeCatalog(map[types.CanonicalType]int{
		"Microsoft.Compute/virtualMachines":   40,
		"Microsoft.Network/networkInterfaces": 55,
		"Microsoft.KeyVault/vaults":           3,
	})
	scorer := NewScorer(cat, 0.1, 0.3)
	state := NewSelectionState()
	inst := newInstance("i-1",
		"Microsoft.Compute/virtualMachines",
		"Microsoft.Network/networkInterfaces",
		"Microsoft.KeyVault/vaults")

	first, firstDist := scorer.Score(inst, nil, state, 1.0)
	for i := 0; i < 5; i++ {
		again, againDist := scorer.Score(inst, nil, state, 1.0)
		if again != first || againDist != firstDist {
			t.Fatalf("re-score changed: %v/%v vs %v/%v", again, againDist, first, firstDist)
		}
	}
}

// TestScoreClassification verifies the missing/underrepresented/normal
// multipliers against a hand-computed expectation.
func TestScoreClassification(t *testing.T) {
	const vm = types.CanonicalType("Microsoft.Compute/virtualMachines")
	cat := catalog.NewTypeCatalog(map[types.CanonicalType]int{vm: 100})
	scorer := NewScorer(cat, 0.1, 0.3)

	state := NewSelectionState()
	inst := newInstance("cand", string(vm))

	// Missing: nothing selected anywhere yet.
	got, _ := scorer.Score(inst, nil, state, 1.0)
	if want := (1.0 / 100.0) * 6.0; !almostEqual(got, want) {
		t.Errorf("missing score = %v, want %v", got, want)
	}

	// Underrepresented: covered once, threshold is 10 records.
	state.Commit(newInstance("prior-1", string(vm)))
	got, _ = scorer.Score(inst, nil, state, 1.0)
	if want := (1.0 / 100.0) * 3.0; !almostEqual(got, want) {
		t.Errorf("underrepresented score = %v, want %v", got, want)
	}

	// Normal: covered at threshold.
	for i := 0; i < 9; i++ {
		state.Commit(newInstance("prior-extra-"+string(rune('a'+i)), string(vm)))
	}
	got, _ = scorer.Score(inst, nil, state, 1.0)
	if want := (1.0 / 100.0) * 1.0; !almostEqual(got, want) {
		t.Errorf("normal score = %v, want %v", got, want)
	}
}

// TestScoreUnknownTypeMaximallyRare verifies a type absent from the catalog
// is tolerated and scored with rarity 1.
func TestScoreUnknownTypeMaximallyRare(t *testing.T) {
	cat := catalog.NewTypeCatalog(map[types.CanonicalType]int{})
	scorer := NewScorer(cat, 0.1, 0.3)
	state := NewSelectionState()

	got, _ := scorer.Score(newInstance("x", "Microsoft.Unknown/thing"), nil, state, 1.0)
	if want := 1.0 * 6.0; !almostEqual(got, want) {
		t.Errorf("unknown-type score = %v, want %v", got, want)
	}
}

// TestGlobalStateDemotesTypes verifies that a type committed by ANOTHER
// pattern lowers the candidate's score - the coordination property.
func TestGlobalStateDemotesTypes(t *testing.T) {
	const kv = types.CanonicalType("Microsoft.KeyVault/vaults")
	cat := catalog.NewTypeCatalog(map[types.CanonicalType]int{kv: 2})
	scorer := NewScorer(cat, 0.1, 0.3)

	cand := newInstance("cand", string(kv))

	fresh := NewSelectionState()
	before, _ := scorer.Score(cand, nil, fresh, 5.0)

	elsewhere := NewSelectionState()
	other := newInstance("other-pattern-pick", string(kv))
	other.Pattern = "another-pattern"
	elsewhere.Commit(other)
	after, _ := scorer.Score(cand, nil, elsewhere, 5.0)

	if after >= before {
		t.Errorf("score did not drop after global commit: before=%v after=%v", before, after)
	}
}

// TestStructuralTermExcludedUnderBoost verifies that with rareBoost > 1.0
// the structural term does not enter ranking while its distance is still
// reported.
func TestStructuralTermExcludedUnderBoost(t *testing.T) {
	const vm = types.CanonicalType("Microsoft.Compute/virtualMachines")
	cat := catalog.NewTypeCatalog(map[types.CanonicalType]int{vm: 10})
	scorer := NewScorer(cat, 0.1, 0.5)

	pattern := &types.Pattern{
		Name: "vm-workload",
		Pool: []*types.ResourceInstance{newInstance("pool-1", string(vm))},
	}
	comp := NewComposition(pattern)
	inst := newInstance("cand", string(vm))
	state := NewSelectionState()

	blended, distBlended := scorer.Score(inst, comp, state, 1.0)
	boosted, distBoosted := scorer.Score(inst, comp, state, 2.0)

	if distBlended != distBoosted {
		t.Errorf("distance changed with boost: %v vs %v", distBlended, distBoosted)
	}
	// Coverage part doubles; the structural term must vanish.
	coverage := (1.0 / 10.0) * 6.0
	if !almostEqual(blended, coverage+0.5*1.0) {
		t.Errorf("blended score = %v, want %v", blended, coverage+0.5)
	}
	if !almostEqual(boosted, 2.0*coverage) {
		t.Errorf("boosted score = %v, want %v", boosted, 2.0*coverage)
	}
}

// TestStructuralDistance checks the L1 distance bounds.
func TestStructuralDistance(t *testing.T) {
	pattern := &types.Pattern{
		Name: "p",
		Pool: []*types.ResourceInstance{newInstance("a", "Microsoft.Compute/virtualMachines")},
	}
	comp := NewComposition(pattern)

	if d := Distance(newInstance("same", "Microsoft.Compute/virtualMachines"), comp); !almostEqual(d, 0) {
		t.Errorf("identical shape distance = %v, want 0", d)
	}
	if d := Distance(newInstance("other", "Microsoft.KeyVault/vaults"), comp); !almostEqual(d, 2) {
		t.Errorf("disjoint shape distance = %v, want 2", d)
	}
	if d := Distance(newInstance("x", "Microsoft.Compute/virtualMachines"), nil); d != 0 {
		t.Errorf("nil composition distance = %v, want 0", d)
	}
}
