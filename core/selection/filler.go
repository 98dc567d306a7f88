// Package selection - supplemental set-cover pass
package selection

import (
	"graphmirror/core/catalog"
	"graphmirror/core/scoring"
	"graphmirror/core/types"
)

// Filler spends a bounded extra budget on a greedy set-cover pass across
// all pools to pick up types the per-pattern pass missed.
//
// Exact set cover is NP-hard; the greedy pick-largest-uncovered rule stays
// within a ln(n) factor of optimal cover, which is good enough here and
// keeps the pass linear in pool size per pick.
type Filler struct {
	catalog *catalog.TypeCatalog
}

// NewFiller creates a filler over the type catalog
func NewFiller(cat *catalog.TypeCatalog) *Filler {
	return &Filler{catalog: cat}
}

// MissingTypes returns the catalog types with zero coverage in state, sorted
func (f *Filler) MissingTypes(state *scoring.SelectionState) []types.CanonicalType {
	var missing []types.CanonicalType
	for _, t := range f.catalog.AllTypes() {
		if state.CoveredCount(t) == 0 {
			missing = append(missing, t)
		}
	}
	return missing
}

// Fill repeatedly picks, from any candidate pool, the unselected instance
// covering the most still-missing types, until the budget is exhausted or
// no candidate covers anything new. Ties go to the higher rarity sum over
// newly covered types, then to the lower instance ID.
//
// The returned picks never exceed budget. Remaining missing types are the
// caller's to report; an exhausted budget is not an error.
func (f *Filler) Fill(budget int, missing []types.CanonicalType, candidates []*types.ResourceInstance, state *scoring.SelectionState) ([]*types.ResourceInstance, []types.TraceEntry) {
	missingSet := make(map[types.CanonicalType]struct{}, len(missing))
	for _, t := range missing {
		missingSet[t] = struct{}{}
	}

	var picks []*types.ResourceInstance
	var trace []types.TraceEntry

	for len(picks) < budget && len(missingSet) > 0 {
		var best *types.ResourceInstance
		bestCovered := 0
		bestRarity := 0.0

		for _, cand := range candidates {
			if state.IsSelected(cand.ID) {
				continue
			}
			covered := 0
			raritySum := 0.0
			for _, t := range cand.Types() {
				if _, miss := missingSet[t]; miss {
					covered++
					raritySum += f.catalog.Rarity(t)
				}
			}
			if covered == 0 {
				continue
			}
			if best == nil ||
				covered > bestCovered ||
				(covered == bestCovered && raritySum > bestRarity) ||
				(covered == bestCovered && raritySum == bestRarity && cand.ID < best.ID) {
				best, bestCovered, bestRarity = cand, covered, raritySum
			}
		}
		if best == nil {
			break // nothing left can cover a missing type
		}

		state.Commit(best)
		for _, t := range best.Types() {
			delete(missingSet, t)
		}
		picks = append(picks, best)
		trace = append(trace, types.TraceEntry{
			Pattern:            best.Pattern,
			InstanceID:         best.ID,
			Score:              float64(bestCovered),
			StructuralDistance: 0,
			CoveredTypes:       state.DistinctTypes(),
			Supplemental:       true,
		})
	}
	return picks, trace
}
