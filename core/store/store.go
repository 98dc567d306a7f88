// Package store is the boundary to the graph/store query service: it
// supplies instance pools for arbitrary canonical type sets. Queries speak
// canonical identifiers ONLY; a simplified alias yields an empty result
// with no error, which is precisely the silent failure the resolver layer
// guards against.
package store

import (
	"graphmirror/core/types"
)

// InstanceStore supplies instance pools for canonical type sets
type InstanceStore interface {
	// InstancesByTypes returns every instance carrying at least one
	// record of the given canonical types, sorted by instance ID.
	InstancesByTypes(ts []types.CanonicalType) []*types.ResourceInstance

	// CountByType returns the number of resource records of the type
	// held by the store.
	CountByType(t types.CanonicalType) int
}
