// Package orphan finds resource types not claimed by any detected pattern
// and fetches their instances from the store.
//
// Queries run against canonical identifiers only. The failure mode this
// package exists to prevent: querying with pattern-local simplified names
// returns a silent empty result, and the plan quietly loses every orphan.
package orphan

import (
	"sort"

	"go.uber.org/zap"

	"graphmirror/core/catalog"
	"graphmirror/core/store"
	"graphmirror/core/types"
	"graphmirror/internal/logging"
)

// Resolver resolves orphan types and their instance pool
type Resolver struct {
	catalog    *catalog.TypeCatalog
	store      store.InstanceStore
	normalizer *catalog.Normalizer
}

// NewResolver creates a resolver. The normalizer re-canonicalizes pattern
// matched-type sets defensively, so an alias that slipped past the snapshot
// boundary cannot misclassify its type as an orphan.
func NewResolver(cat *catalog.TypeCatalog, st store.InstanceStore, n *catalog.Normalizer) *Resolver {
	return &Resolver{catalog: cat, store: st, normalizer: n}
}

// FindOrphanTypes returns every canonical catalog type not matched by any
// pattern, sorted.
func (r *Resolver) FindOrphanTypes(patterns []*types.Pattern) []types.CanonicalType {
	matched := make(map[types.CanonicalType]struct{})
	for _, p := range patterns {
		for _, t := range p.MatchedTypes {
			canonical := t
			if r.normalizer != nil {
				canonical, _ = r.normalizer.Normalize(string(t))
			}
			matched[canonical] = struct{}{}
		}
	}

	var orphans []types.CanonicalType
	for _, t := range r.catalog.AllTypes() {
		if _, ok := matched[t]; !ok {
			orphans = append(orphans, t)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })
	return orphans
}

// FetchInstances queries the store for the orphan pool. Instances owned by
// a pattern are excluded; they stay reachable through their pattern's pool.
// Returned counts are spot-checked against the catalog so a canonical-name
// mismatch surfaces as a warning instead of a silent zero.
func (r *Resolver) FetchInstances(orphanTypes []types.CanonicalType) []*types.ResourceInstance {
	fetched := r.store.InstancesByTypes(orphanTypes)

	var pool []*types.ResourceInstance
	for _, inst := range fetched {
		if inst.Pattern != "" && inst.Pattern != types.OrphanPattern {
			continue
		}
		pool = append(pool, inst)
	}

	for _, t := range orphanTypes {
		if r.catalog.CountOf(t) > 0 && r.store.CountByType(t) == 0 {
			logging.Warn("orphan type present in catalog but store query returned nothing; canonical-name mismatch suspected",
				zap.String("type", t.String()),
				zap.Int("catalog_count", r.catalog.CountOf(t)))
		}
	}

	logging.Debug("orphan pool resolved",
		zap.Int("orphan_types", len(orphanTypes)),
		zap.Int("instances", len(pool)))
	return pool
}
