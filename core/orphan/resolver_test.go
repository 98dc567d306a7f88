package orphan

import (
	"testing"

	"graphmirror/core/catalog"
	"graphmirror/core/store"
	"graphmirror/core/types"
)

const (
	vmType    = types.CanonicalType("Microsoft.Compute/virtualMachines")
	nicType   = types.CanonicalType("Microsoft.Network/networkInterfaces")
	vaultType = types.CanonicalType("Microsoft.KeyVault/vaults")
	dnsType   = types.CanonicalType("Microsoft.Network/dnszones")
)

func fixtureCatalog() *catalog.TypeCatalog {
	return catalog.NewTypeCatalog(map[types.CanonicalType]int{
		vmType:    12,
		nicType:   14,
		vaultType: 2,
		dnsType:   1,
	})
}

func orphanInstance(id string, t types.CanonicalType) *types.ResourceInstance {
	return &types.ResourceInstance{
		ID:      id,
		Pattern: types.OrphanPattern,
		Resources: []types.ResourceRecord{
			{ID: id + "-r0", Type: t},
		},
	}
}

// TestFindOrphanTypes verifies types unclaimed by every pattern come back,
// sorted, and claimed ones do not.
func TestFindOrphanTypes(t *testing.T) {
	patterns := []*types.Pattern{
		{Name: "vm-workload", MatchedTypes: []types.CanonicalType{vmType, nicType}},
	}
	r := NewResolver(fixtureCatalog(), store.NewMemoryStore(nil), catalog.NewAzureNormalizer())

	got := r.FindOrphanTypes(patterns)
	want := []types.CanonicalType{vaultType, dnsType}
	if len(got) != len(want) {
		t.Fatalf("orphan types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("orphan types = %v, want %v", got, want)
		}
	}
}

// TestAliasMatchedTypesStillResolve is the regression for the "0 orphans
// found" defect: a pattern whose matched set carries shortened aliases must
// not cause its own types to be reported as orphans, and must not hide the
// real orphans.
func TestAliasMatchedTypesStillResolve(t *testing.T) {
	patterns := []*types.Pattern{
		{
			Name: "vm-workload",
			// Simplified pattern-graph names, not canonical identifiers.
			MatchedTypes: []types.CanonicalType{"virtualMachines", "networkInterfaces"},
		},
	}
	r := NewResolver(fixtureCatalog(), store.NewMemoryStore(nil), catalog.NewAzureNormalizer())

	got := r.FindOrphanTypes(patterns)
	if len(got) != 2 {
		t.Fatalf("orphan types = %v, want exactly the vault and dns types", got)
	}
	for _, o := range got {
		if o == vmType || o == nicType {
			t.Errorf("alias-matched type %s wrongly reported as orphan", o)
		}
	}
}

// TestFetchInstancesUsesCanonicalNames verifies the orphan pool comes back
// non-empty when queried with catalog identifiers, and pattern-owned
// instances are excluded from it.
func TestFetchInstancesUsesCanonicalNames(t *testing.T) {
	patternOwned := &types.ResourceInstance{
		ID:      "owned-1",
		Pattern: "vm-workload",
		Resources: []types.ResourceRecord{
			{ID: "owned-1-r0", Type: vaultType},
		},
	}
	st := store.NewMemoryStore([]*types.ResourceInstance{
		orphanInstance("orph-1", vaultType),
		orphanInstance("orph-2", dnsType),
		patternOwned,
	})
	r := NewResolver(fixtureCatalog(), st, catalog.NewAzureNormalizer())

	pool := r.FetchInstances([]types.CanonicalType{vaultType, dnsType})
	if len(pool) != 2 {
		t.Fatalf("orphan pool size = %d, want 2 (got %+v)", len(pool), pool)
	}
	for _, inst := range pool {
		if inst.Pattern != types.OrphanPattern {
			t.Errorf("pattern-owned instance %s leaked into orphan pool", inst.ID)
		}
	}
}
