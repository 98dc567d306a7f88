// Package scoring computes rarity/coverage scores for candidate instances
// against the global selection state of a run.
package scoring

import (
	"sort"

	"graphmirror/core/types"
)

// SelectionState is the single, global record of which canonical types have
// been covered by instances committed so far in one selection run. It is
// created empty at the start of a run, mutated on every commit, and
// discarded at the end. It is an explicit value threaded through the run,
// never a package global, so concurrent runs cannot share state.
type SelectionState struct {
	covered  map[types.CanonicalType]int
	selected map[string]struct{}
}

// NewSelectionState creates an empty state for a fresh run
func NewSelectionState() *SelectionState {
	return &SelectionState{
		covered:  make(map[types.CanonicalType]int),
		selected: make(map[string]struct{}),
	}
}

// Commit records a selected instance: every resource record it carries
// counts toward its type's coverage.
func (s *SelectionState) Commit(inst *types.ResourceInstance) {
	s.selected[inst.ID] = struct{}{}
	for _, r := range inst.Resources {
		s.covered[r.Type]++
	}
}

// IsSelected reports whether an instance has already been committed
func (s *SelectionState) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// CoveredCount returns how many selected resource records carry the type
func (s *SelectionState) CoveredCount(t types.CanonicalType) int {
	return s.covered[t]
}

// DistinctTypes returns the number of distinct types covered so far
func (s *SelectionState) DistinctTypes() int {
	return len(s.covered)
}

// CoveredTypes returns the covered types, sorted
func (s *SelectionState) CoveredTypes() []types.CanonicalType {
	out := make([]types.CanonicalType, 0, len(s.covered))
	for t := range s.covered {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SelectedCount returns the number of committed instances
func (s *SelectionState) SelectedCount() int {
	return len(s.selected)
}
