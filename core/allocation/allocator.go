// Package allocation converts per-pattern prevalence into integer instance
// count targets that sum exactly to the requested total (largest-remainder
// method).
package allocation

import (
	"sort"

	"github.com/shopspring/decimal"

	"graphmirror/core/types"
	"graphmirror/internal/errors"
)

// Result carries the allocation plus the shortfalls that must surface in
// plan metadata rather than be hidden.
type Result struct {
	// Allocation maps pattern name to target instance count
	Allocation types.Allocation

	// ZeroAllocation lists patterns with nonzero prevalence that still
	// received no slot because the total is smaller than the pattern count
	ZeroAllocation []string
}

// Compute distributes total slots over patterns proportionally to their
// prevalence weights. Remainder arithmetic uses exact decimals so that two
// runs never disagree on which pattern wins the last slot.
//
// Invariants: the allocation values sum to exactly total, and every pattern
// with nonzero prevalence gets at least one slot when total allows.
func Compute(total int, weights map[string]float64) (*Result, error) {
	if total <= 0 {
		return nil, errors.Configf("target instance count must be positive, got %d", total)
	}

	names := make([]string, 0, len(weights))
	sum := decimal.Zero
	for name, w := range weights {
		if w < 0 {
			return nil, errors.Configf("pattern %q has negative prevalence %v", name, w)
		}
		names = append(names, name)
		sum = sum.Add(decimal.NewFromFloat(w))
	}
	sort.Strings(names)

	if sum.IsZero() {
		return nil, errors.Config("no pattern has positive prevalence")
	}

	totalDec := decimal.NewFromInt(int64(total))
	alloc := make(types.Allocation, len(names))
	remainders := make(map[string]decimal.Decimal, len(names))
	assigned := 0

	for _, name := range names {
		quota := decimal.NewFromFloat(weights[name]).Div(sum).Mul(totalDec)
		base := quota.Floor()
		alloc[name] = int(base.IntPart())
		remainders[name] = quota.Sub(base)
		assigned += alloc[name]
	}

	// Hand out the slots lost to flooring, largest remainder first.
	order := append([]string(nil), names...)
	sort.SliceStable(order, func(i, j int) bool {
		cmp := remainders[order[i]].Cmp(remainders[order[j]])
		if cmp != 0 {
			return cmp > 0
		}
		return order[i] < order[j]
	})
	for i := 0; assigned < total; i = (i + 1) % len(order) {
		alloc[order[i]]++
		assigned++
	}

	result := &Result{Allocation: alloc}
	ensureMinimumSlots(total, weights, names, alloc)

	for _, name := range names {
		if weights[name] > 0 && alloc[name] == 0 {
			result.ZeroAllocation = append(result.ZeroAllocation, name)
		}
	}
	return result, nil
}

// ensureMinimumSlots moves slots from the largest allocations to patterns
// with nonzero prevalence that rounded down to zero, as long as the total
// budget can host one slot per such pattern.
func ensureMinimumSlots(total int, weights map[string]float64, names []string, alloc types.Allocation) {
	nonzero := 0
	for _, name := range names {
		if weights[name] > 0 {
			nonzero++
		}
	}
	if total < nonzero {
		return
	}

	// Starved patterns in descending weight order, ties by name.
	var starved []string
	for _, name := range names {
		if weights[name] > 0 && alloc[name] == 0 {
			starved = append(starved, name)
		}
	}
	sort.SliceStable(starved, func(i, j int) bool {
		if weights[starved[i]] != weights[starved[j]] {
			return weights[starved[i]] > weights[starved[j]]
		}
		return starved[i] < starved[j]
	})

	for _, name := range starved {
		donor := ""
		for _, cand := range names {
			if alloc[cand] > 1 && (donor == "" || alloc[cand] > alloc[donor]) {
				donor = cand
			}
		}
		if donor == "" {
			return
		}
		alloc[donor]--
		alloc[name]++
	}
}
