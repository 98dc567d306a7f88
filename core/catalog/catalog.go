// Package catalog - Authoritative canonical type registry
// Maps fully-qualified resource type identifiers to their occurrence counts
// in the source graph. This is the source of truth every other component
// compares types against.
package catalog

import (
	"sort"

	"graphmirror/core/types"
)

// TypeCatalog holds the occurrence count of every canonical type found in
// the source graph. Built once, read-only afterward.
type TypeCatalog struct {
	counts map[types.CanonicalType]int
}

// NewTypeCatalog builds a catalog from per-type occurrence counts
func NewTypeCatalog(counts map[types.CanonicalType]int) *TypeCatalog {
	c := &TypeCatalog{counts: make(map[types.CanonicalType]int, len(counts))}
	for t, n := range counts {
		if n > 0 {
			c.counts[t] = n
		}
	}
	return c
}

// FromInstances derives a catalog by counting resource records across
// instance pools, for snapshots that carry no explicit count section.
func FromInstances(instances []*types.ResourceInstance) *TypeCatalog {
	counts := make(map[types.CanonicalType]int)
	for _, inst := range instances {
		for _, r := range inst.Resources {
			counts[r.Type]++
		}
	}
	return NewTypeCatalog(counts)
}

// CountOf returns the source occurrence count of a type. A type absent
// from the catalog is not an error; it counts as zero.
func (c *TypeCatalog) CountOf(t types.CanonicalType) int {
	return c.counts[t]
}

// Has reports whether the type occurs in the source graph
func (c *TypeCatalog) Has(t types.CanonicalType) bool {
	_, ok := c.counts[t]
	return ok
}

// Rarity returns the rarity weight of a type: 1 / max(count, 1).
// Unknown types are maximally rare.
func (c *TypeCatalog) Rarity(t types.CanonicalType) float64 {
	n := c.counts[t]
	if n < 1 {
		n = 1
	}
	return 1.0 / float64(n)
}

// AllTypes returns every canonical type in the catalog, sorted
func (c *TypeCatalog) AllTypes() []types.CanonicalType {
	out := make([]types.CanonicalType, 0, len(c.counts))
	for t := range c.counts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of distinct types
func (c *TypeCatalog) Len() int {
	return len(c.counts)
}
