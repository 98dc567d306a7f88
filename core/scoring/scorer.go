// Package scoring - coverage scorer
package scoring

import (
	"graphmirror/core/catalog"
	"graphmirror/core/types"
)

// Base multipliers per coverage class. A type nobody has selected yet is
// worth six times its rarity weight; one covered below the threshold
// fraction of its source prevalence is worth three times.
const (
	missingMultiplier          = 6.0
	underrepresentedMultiplier = 3.0
	normalMultiplier           = 1.0
)

// Scorer computes the coverage score of a candidate instance. Scoring is a
// pure function of (instance, state, boost): no randomness, no hidden
// inputs, so re-scoring against an unchanged state yields the same score.
type Scorer struct {
	catalog          *catalog.TypeCatalog
	threshold        float64
	structuralWeight float64
}

// NewScorer creates a scorer. threshold is the fraction of a type's source
// count below which its coverage still counts as underrepresented;
// structuralWeight blends the structural-similarity term into ranking when
// no boost is active.
func NewScorer(cat *catalog.TypeCatalog, threshold, structuralWeight float64) *Scorer {
	return &Scorer{
		catalog:          cat,
		threshold:        threshold,
		structuralWeight: structuralWeight,
	}
}

// Score computes the candidate's score against the GLOBAL selection state.
// Consulting a per-pattern-local state here is exactly the defect this
// design exists to prevent: independent patterns would redundantly chase
// the same rare types and total coverage could drop as the boost rises.
//
// When rareBoost > 1.0 the structural term is excluded from ranking (it
// would dominate and neutralize the boost); its distance is still returned
// for the trace.
func (s *Scorer) Score(inst *types.ResourceInstance, comp Composition, state *SelectionState, rareBoost float64) (score, structuralDistance float64) {
	for _, t := range inst.Types() {
		covered := state.CoveredCount(t)
		sourceCount := s.catalog.CountOf(t)

		var mult float64
		switch {
		case covered == 0:
			mult = missingMultiplier
		case float64(covered) < s.threshold*float64(sourceCount):
			mult = underrepresentedMultiplier
		default:
			mult = normalMultiplier
		}

		score += s.catalog.Rarity(t) * mult * rareBoost
	}

	structuralDistance = Distance(inst, comp)
	if rareBoost <= 1.0 && comp != nil {
		score += s.structuralWeight * (1.0 - structuralDistance/2.0)
	}
	return score, structuralDistance
}
