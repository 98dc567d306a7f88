// Package selection - global coordination
// The coordinator enforces the execution flow:
// 1. Allocation (prevalence -> integer slots)
// 2. Per-pattern greedy selection, one shared SelectionState
// 3. Orphan resolution (canonical identifiers only)
// 4. Supplemental set-cover pass over all pools
// 5. Plan assembly with full shortfall metadata
package selection

import (
	"context"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"graphmirror/core/allocation"
	"graphmirror/core/catalog"
	"graphmirror/core/determinism"
	"graphmirror/core/orphan"
	"graphmirror/core/scoring"
	"graphmirror/core/store"
	"graphmirror/core/types"
	"graphmirror/internal/errors"
	"graphmirror/internal/logging"
)

// Coordinator owns the single SelectionState of a run and threads it
// through every per-pattern selection in deterministic order. Without this
// coordination each pattern samples blind to what the others already
// picked, duplicate rare-type coverage wastes budget, and raising the boost
// factor can REDUCE total coverage.
type Coordinator struct {
	catalog    *catalog.TypeCatalog
	store      store.InstanceStore
	normalizer *catalog.Normalizer
	opts       Options
}

// NewCoordinator validates the options and builds a coordinator. Option
// errors are fatal and reported before any selection work.
func NewCoordinator(cat *catalog.TypeCatalog, st store.InstanceStore, n *catalog.Normalizer, opts Options) (*Coordinator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Coordinator{catalog: cat, store: st, normalizer: n, opts: opts}, nil
}

// Plan computes the representative selection for the given patterns.
// The returned plan is immutable; data shortfalls land in its metadata,
// never in the error.
func (c *Coordinator) Plan(ctx context.Context, patterns []*types.Pattern) (*types.Plan, error) {
	weights := make(map[string]float64, len(patterns))
	byName := make(map[string]*types.Pattern, len(patterns))
	for _, p := range patterns {
		weights[p.Name] = p.Prevalence
		byName[p.Name] = p
	}

	allocated, err := allocation.Compute(c.opts.TargetInstanceCount, weights)
	if err != nil {
		return nil, err
	}

	meta := types.PlanMetadata{
		Mode:                   c.opts.Mode(),
		TargetInstanceCount:    c.opts.TargetInstanceCount,
		RareBoostFactor:        c.opts.RareBoostFactor,
		MissingTypeThreshold:   c.opts.MissingTypeThreshold,
		SupplementalBudget:     c.opts.SupplementalBudget(),
		ZeroAllocationPatterns: allocated.ZeroAllocation,
		UnknownMatchedTypes:    c.unknownMatchedTypes(patterns),
	}

	// Deterministic processing order: descending allocation, name asc.
	order := make([]string, 0, len(patterns))
	for name := range byName {
		order = append(order, name)
	}
	sort.SliceStable(order, func(i, j int) bool {
		ai, aj := allocated.Allocation[order[i]], allocated.Allocation[order[j]]
		if ai != aj {
			return ai > aj
		}
		return order[i] < order[j]
	})

	state := scoring.NewSelectionState()
	scorer := scoring.NewScorer(c.catalog, c.opts.MissingTypeThreshold, c.opts.StructuralWeight)
	selector := NewSelector(scorer)

	plan := &types.Plan{}
	selections := make(map[string]int) // pattern name -> index in plan.Selections

	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, errors.Internal("selection canceled", err)
		}
		target := allocated.Allocation[name]
		if target == 0 {
			continue
		}

		p := byName[name]
		picks, trace := selector.Select(p, target, state, c.opts.RareBoostFactor)
		if len(picks) < target {
			if meta.PoolShortfalls == nil {
				meta.PoolShortfalls = make(map[string]int)
			}
			meta.PoolShortfalls[name] = target - len(picks)
			logging.Warn("pattern pool exhausted below allocation",
				zap.String("pattern", name),
				zap.Int("allocated", target),
				zap.Int("selected", len(picks)))
		}

		selections[name] = len(plan.Selections)
		plan.Selections = append(plan.Selections, types.PatternSelection{
			Pattern:   name,
			Instances: picks,
		})
		plan.Trace = append(plan.Trace, trace...)
	}

	// Orphan pool, then the bounded set-cover pass over everything.
	resolver := orphan.NewResolver(c.catalog, c.store, c.normalizer)
	orphanTypes := resolver.FindOrphanTypes(patterns)
	orphanPool := resolver.FetchInstances(orphanTypes)

	filler := NewFiller(c.catalog)
	missing := filler.MissingTypes(state)
	if len(missing) > 0 && meta.SupplementalBudget > 0 {
		candidates := make([]*types.ResourceInstance, 0, len(orphanPool))
		for _, name := range order {
			candidates = append(candidates, byName[name].Pool...)
		}
		candidates = append(candidates, orphanPool...)

		picks, trace := filler.Fill(meta.SupplementalBudget, missing, candidates, state)
		meta.SupplementalUsed = len(picks)
		plan.Trace = append(plan.Trace, trace...)

		for _, pick := range picks {
			owner := pick.Pattern
			if owner == "" {
				owner = types.OrphanPattern
			}
			idx, ok := selections[owner]
			if !ok {
				selections[owner] = len(plan.Selections)
				idx = selections[owner]
				plan.Selections = append(plan.Selections, types.PatternSelection{Pattern: owner})
			}
			plan.Selections[idx].Instances = append(plan.Selections[idx].Instances, pick)
		}
	}

	meta.RemainingMissingTypes = filler.MissingTypes(state)
	meta.SelectedInstanceCount = state.SelectedCount()
	for i := range plan.Trace {
		plan.Trace[i].Step = i + 1
	}
	meta.PlanID = string(planID(c.opts, plan))
	plan.Metadata = meta

	logging.Info("selection plan computed",
		zap.String("plan_id", meta.PlanID),
		zap.String("mode", meta.Mode),
		zap.Int("instances", meta.SelectedInstanceCount),
		zap.Int("covered_types", state.DistinctTypes()),
		zap.Int("catalog_types", c.catalog.Len()),
		zap.Int("missing_types", len(meta.RemainingMissingTypes)))
	return plan, nil
}

// planID derives the stable plan identifier from the effective options and
// the selected instance IDs in plan order.
func planID(opts Options, plan *types.Plan) determinism.StableID {
	parts := []string{
		opts.Mode(),
		strconv.Itoa(opts.TargetInstanceCount),
		strconv.FormatFloat(opts.RareBoostFactor, 'g', -1, 64),
		strconv.FormatFloat(opts.MissingTypeThreshold, 'g', -1, 64),
		strconv.FormatFloat(opts.SupplementalBudgetFraction, 'g', -1, 64),
	}
	for _, inst := range plan.Instances() {
		parts = append(parts, inst.ID)
	}
	return determinism.NewIDGenerator("plan").Generate(parts...)
}

// unknownMatchedTypes reports pattern-matched types absent from the
// catalog. They are tolerated (treated as maximally rare), but never hidden.
func (c *Coordinator) unknownMatchedTypes(patterns []*types.Pattern) []types.CanonicalType {
	seen := make(map[types.CanonicalType]struct{})
	var unknown []types.CanonicalType
	for _, p := range patterns {
		for _, raw := range p.MatchedTypes {
			t := raw
			if c.normalizer != nil {
				t, _ = c.normalizer.Normalize(string(raw))
			}
			if c.catalog.Has(t) {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			unknown = append(unknown, t)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return unknown
}
