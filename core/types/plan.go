// Package types - selection output types
package types

import "sort"

// Allocation maps pattern name to target instance count. The sum of all
// values equals the requested total instance count.
type Allocation map[string]int

// Total returns the sum of all allocation values
func (a Allocation) Total() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// PatternSelection is the ordered set of instances chosen for one pattern
type PatternSelection struct {
	// Pattern is the pattern name (or OrphanPattern)
	Pattern string `json:"pattern"`

	// Instances is the ordered list of selected instances
	Instances []*ResourceInstance `json:"instances"`
}

// TraceEntry records one selection iteration for observability
type TraceEntry struct {
	// Step is the 1-based iteration number across the whole run
	Step int `json:"step"`

	// Pattern is the pattern the instance was drawn from
	Pattern string `json:"pattern"`

	// InstanceID identifies the committed instance
	InstanceID string `json:"instance_id"`

	// Score is the coverage score the instance was committed with
	Score float64 `json:"score"`

	// StructuralDistance is the distance between the instance's type
	// multiset and the pattern's historical composition; recorded even
	// when the structural term is excluded from ranking.
	StructuralDistance float64 `json:"structural_distance"`

	// CoveredTypes is the cumulative distinct-type coverage after commit
	CoveredTypes int `json:"covered_types"`

	// Supplemental marks picks made by the set-cover filler pass
	Supplemental bool `json:"supplemental,omitempty"`
}

// PlanMetadata describes how the plan was computed and every shortfall
// encountered on the way. A plan is never returned without it.
type PlanMetadata struct {
	// PlanID is a stable identifier derived from the options and the
	// selected instance IDs; identical runs carry identical IDs.
	PlanID string `json:"plan_id"`

	// Mode describes the scoring mode ("proportional" or "rare-boost")
	Mode string `json:"mode"`

	// TargetInstanceCount is the requested total
	TargetInstanceCount int `json:"target_instance_count"`

	// RareBoostFactor is the boost used for this run
	RareBoostFactor float64 `json:"rare_boost_factor"`

	// MissingTypeThreshold is the underrepresentation threshold used
	MissingTypeThreshold float64 `json:"missing_type_threshold"`

	// SupplementalBudget is the instance budget reserved for the
	// set-cover pass; SupplementalUsed is how much of it was spent.
	SupplementalBudget int `json:"supplemental_budget"`
	SupplementalUsed   int `json:"supplemental_used"`

	// SelectedInstanceCount is the total number of instances in the plan
	SelectedInstanceCount int `json:"selected_instance_count"`

	// ZeroAllocationPatterns lists patterns whose prevalence was too low
	// to earn a slot under the requested total
	ZeroAllocationPatterns []string `json:"zero_allocation_patterns,omitempty"`

	// PoolShortfalls maps pattern name to the number of slots that could
	// not be filled because the pool was exhausted
	PoolShortfalls map[string]int `json:"pool_shortfalls,omitempty"`

	// UnknownMatchedTypes lists pattern-matched types absent from the
	// catalog; they are treated as maximally rare, not errors
	UnknownMatchedTypes []CanonicalType `json:"unknown_matched_types,omitempty"`

	// RemainingMissingTypes lists catalog types still uncovered after the
	// supplemental pass exhausted its budget
	RemainingMissingTypes []CanonicalType `json:"remaining_missing_types,omitempty"`
}

// Plan is the sole output of a selection run. It is immutable once
// returned; callers must not mutate its slices.
type Plan struct {
	// Selections lists the chosen instances per pattern, in the order the
	// patterns were processed
	Selections []PatternSelection `json:"selections"`

	// Trace is the per-iteration quality-distance trace
	Trace []TraceEntry `json:"trace,omitempty"`

	// Metadata records tunables, budgets and shortfalls
	Metadata PlanMetadata `json:"metadata"`
}

// Instances returns all selected instances in plan order
func (p *Plan) Instances() []*ResourceInstance {
	var out []*ResourceInstance
	for _, sel := range p.Selections {
		out = append(out, sel.Instances...)
	}
	return out
}

// CoveredTypes returns the sorted distinct canonical types covered by the
// plan.
func (p *Plan) CoveredTypes() []CanonicalType {
	seen := make(map[CanonicalType]struct{})
	for _, sel := range p.Selections {
		for _, inst := range sel.Instances {
			for _, t := range inst.Types() {
				seen[t] = struct{}{}
			}
		}
	}
	out := make([]CanonicalType, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
