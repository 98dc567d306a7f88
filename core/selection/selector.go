// Package selection - per-pattern greedy selector
package selection

import (
	"graphmirror/core/scoring"
	"graphmirror/core/types"
)

// Selector greedily picks instances within one pattern, consulting the
// coverage scorer against the shared global state.
type Selector struct {
	scorer *scoring.Scorer
}

// NewSelector creates a selector around a scorer
func NewSelector(scorer *scoring.Scorer) *Selector {
	return &Selector{scorer: scorer}
}

// Select picks up to target instances from the pattern's pool, highest
// score first, ties broken by instance ID ascending. Each pick is committed
// into state immediately, so it is visible to every later scoring decision
// in this pattern and in subsequently processed patterns.
//
// A pool smaller than target is not fatal; the caller records the
// shortfall in plan metadata.
func (s *Selector) Select(p *types.Pattern, target int, state *scoring.SelectionState, rareBoost float64) ([]*types.ResourceInstance, []types.TraceEntry) {
	comp := scoring.NewComposition(p)

	var picks []*types.ResourceInstance
	var trace []types.TraceEntry

	for len(picks) < target {
		var best *types.ResourceInstance
		var bestScore, bestDist float64

		for _, cand := range p.Pool {
			if state.IsSelected(cand.ID) {
				continue
			}
			score, dist := s.scorer.Score(cand, comp, state, rareBoost)
			if best == nil || score > bestScore || (score == bestScore && cand.ID < best.ID) {
				best, bestScore, bestDist = cand, score, dist
			}
		}
		if best == nil {
			break // pool exhausted
		}

		state.Commit(best)
		picks = append(picks, best)
		trace = append(trace, types.TraceEntry{
			Pattern:            p.Name,
			InstanceID:         best.ID,
			Score:              bestScore,
			StructuralDistance: bestDist,
			CoveredTypes:       state.DistinctTypes(),
		})
	}
	return picks, trace
}
