// Package scoring - structural similarity
package scoring

import (
	"sort"

	"graphmirror/core/types"
)

// Composition is a pattern's historical type distribution: the relative
// frequency of each canonical type across the pattern's full pool. It is
// computed once per pattern and read-only afterward.
type Composition map[types.CanonicalType]float64

// NewComposition derives the type distribution of a pattern's pool
func NewComposition(p *types.Pattern) Composition {
	counts := make(map[types.CanonicalType]int)
	total := 0
	for _, inst := range p.Pool {
		for _, r := range inst.Resources {
			counts[r.Type]++
			total++
		}
	}
	if total == 0 {
		return nil
	}
	comp := make(Composition, len(counts))
	for t, n := range counts {
		comp[t] = float64(n) / float64(total)
	}
	return comp
}

// Distance returns the L1 distance between the instance's normalized type
// multiset and the composition, in [0, 2]. Zero means the instance mirrors
// the pattern's historical shape exactly. A nil composition yields zero.
func Distance(inst *types.ResourceInstance, comp Composition) float64 {
	if comp == nil || len(inst.Resources) == 0 {
		return 0
	}

	instCounts := inst.TypeCounts()
	total := float64(len(inst.Resources))

	// Accumulate over the union of both distributions in sorted type
	// order so the float sum is reproducible.
	union := make(map[types.CanonicalType]struct{}, len(comp)+len(instCounts))
	for t := range comp {
		union[t] = struct{}{}
	}
	for t := range instCounts {
		union[t] = struct{}{}
	}
	ordered := make([]types.CanonicalType, 0, len(union))
	for t := range union {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	var dist float64
	for _, t := range ordered {
		instFreq := float64(instCounts[t]) / total
		diff := instFreq - comp[t]
		if diff < 0 {
			diff = -diff
		}
		dist += diff
	}
	return dist
}
