// Package store - in-memory instance store
package store

import (
	"sort"

	"graphmirror/core/determinism"
	"graphmirror/core/types"
)

// MemoryStore is an InstanceStore over instances already materialized in
// memory. Pools are indexed by canonical type with stable iteration order.
type MemoryStore struct {
	byType  *determinism.StableMap[types.CanonicalType, []*types.ResourceInstance]
	records map[types.CanonicalType]int
}

// NewMemoryStore indexes the given instances
func NewMemoryStore(instances []*types.ResourceInstance) *MemoryStore {
	s := &MemoryStore{
		byType:  determinism.NewStableMap[types.CanonicalType, []*types.ResourceInstance](),
		records: make(map[types.CanonicalType]int),
	}
	for _, inst := range instances {
		for _, r := range inst.Resources {
			s.records[r.Type]++
		}
		for _, t := range inst.Types() {
			pool, _ := s.byType.Get(t)
			s.byType.Set(t, append(pool, inst))
		}
	}
	return s
}

// InstancesByTypes implements InstanceStore
func (s *MemoryStore) InstancesByTypes(ts []types.CanonicalType) []*types.ResourceInstance {
	seen := make(map[string]struct{})
	var out []*types.ResourceInstance
	for _, t := range ts {
		pool, ok := s.byType.Get(t)
		if !ok {
			continue
		}
		for _, inst := range pool {
			if _, dup := seen[inst.ID]; dup {
				continue
			}
			seen[inst.ID] = struct{}{}
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountByType implements InstanceStore
func (s *MemoryStore) CountByType(t types.CanonicalType) int {
	return s.records[t]
}
