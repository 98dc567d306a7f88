// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import (
	"sort"
	"strings"
)

// CanonicalType is a fully-qualified Azure resource type identifier,
// e.g. "Microsoft.Compute/virtualMachines". Every component that compares
// types MUST use this canonical form; pattern-local shortened aliases are
// normalized at the snapshot boundary and never reach the core.
type CanonicalType string

// String returns the string representation
func (t CanonicalType) String() string {
	return string(t)
}

// IsQualified reports whether the identifier carries a provider namespace
// (the "Microsoft.Compute/..." form) rather than a bare kind name.
func (t CanonicalType) IsQualified() bool {
	slash := strings.Index(string(t), "/")
	if slash <= 0 {
		return false
	}
	return strings.Contains(string(t)[:slash], ".")
}

// OrphanPattern is the reserved pattern name for instances whose types are
// not claimed by any detected pattern.
const OrphanPattern = "orphans"

// ResourceRecord is a single resource as stored in the source graph
type ResourceRecord struct {
	// ID uniquely identifies the resource in the source tenant
	ID string `json:"id" yaml:"id"`

	// Type is the canonical resource type
	Type CanonicalType `json:"type" yaml:"type"`

	// Properties holds free-form resource properties
	Properties map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// ResourceInstance is an ordered group of correlated resource records that
// are selected or rejected as one unit (a VM plus its NIC and disk).
type ResourceInstance struct {
	// ID uniquely identifies the instance
	ID string `json:"id" yaml:"id"`

	// Pattern is the owning pattern name, or OrphanPattern
	Pattern string `json:"pattern" yaml:"pattern"`

	// Resources is the ordered list of correlated records
	Resources []ResourceRecord `json:"resources" yaml:"resources"`
}

// Types returns the sorted set of distinct canonical types the instance
// contributes.
func (i *ResourceInstance) Types() []CanonicalType {
	seen := make(map[CanonicalType]struct{}, len(i.Resources))
	var out []CanonicalType
	for _, r := range i.Resources {
		if _, ok := seen[r.Type]; ok {
			continue
		}
		seen[r.Type] = struct{}{}
		out = append(out, r.Type)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// TypeCounts returns the multiset of canonical types in the instance
func (i *ResourceInstance) TypeCounts() map[CanonicalType]int {
	counts := make(map[CanonicalType]int, len(i.Resources))
	for _, r := range i.Resources {
		counts[r.Type]++
	}
	return counts
}

// Pattern is a named cluster of co-occurring resource types together with
// the pool of instances belonging to it.
type Pattern struct {
	// Name identifies the pattern
	Name string `json:"name" yaml:"name"`

	// Prevalence is the non-negative population weight of the pattern in
	// the source graph; it need not be normalized.
	Prevalence float64 `json:"prevalence" yaml:"prevalence"`

	// MatchedTypes is the set of canonical types considered part of the
	// pattern shape
	MatchedTypes []CanonicalType `json:"matched_types" yaml:"matched_types"`

	// Pool is the available instances belonging to the pattern
	Pool []*ResourceInstance `json:"instances" yaml:"instances"`
}
