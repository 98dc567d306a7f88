package catalog

import (
	"testing"

	"graphmirror/core/types"
)

// TestCatalogCountsAndRarity covers the tolerance contract: a type missing
// from the catalog is not an error, it counts as zero and is maximally rare.
func TestCatalogCountsAndRarity(t *testing.T) {
	cat := NewTypeCatalog(map[types.CanonicalType]int{
		"Microsoft.Compute/virtualMachines": 40,
		"Microsoft.KeyVault/vaults":         2,
		"Microsoft.Weird/neverDeployed":     0, // dropped, zero count
	})

	tests := []struct {
		typ        types.CanonicalType
		count      int
		rarity     float64
		registered bool
	}{
		{"Microsoft.Compute/virtualMachines", 40, 1.0 / 40.0, true},
		{"Microsoft.KeyVault/vaults", 2, 0.5, true},
		{"Microsoft.Weird/neverDeployed", 0, 1.0, false},
		{"Microsoft.Unknown/thing", 0, 1.0, false},
	}

	for _, tt := range tests {
		if got := cat.CountOf(tt.typ); got != tt.count {
			t.Errorf("CountOf(%s) = %d, want %d", tt.typ, got, tt.count)
		}
		if got := cat.Rarity(tt.typ); got != tt.rarity {
			t.Errorf("Rarity(%s) = %v, want %v", tt.typ, got, tt.rarity)
		}
		if got := cat.Has(tt.typ); got != tt.registered {
			t.Errorf("Has(%s) = %v, want %v", tt.typ, got, tt.registered)
		}
	}

	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
}

// TestAllTypesSorted verifies deterministic enumeration.
func TestAllTypesSorted(t *testing.T) {
	cat := NewTypeCatalog(map[types.CanonicalType]int{
		"Microsoft.Network/virtualNetworks": 3,
		"Microsoft.Compute/disks":           5,
		"Microsoft.KeyVault/vaults":         1,
	})
	all := cat.AllTypes()
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("AllTypes not sorted: %v", all)
		}
	}
}

// TestFromInstances verifies record counting.
func TestFromInstances(t *testing.T) {
	cat := FromInstances([]*types.ResourceInstance{
		{
			ID: "a",
			Resources: []types.ResourceRecord{
				{ID: "a-0", Type: "Microsoft.Compute/virtualMachines"},
				{ID: "a-1", Type: "Microsoft.Compute/virtualMachines"},
				{ID: "a-2", Type: "Microsoft.Compute/disks"},
			},
		},
	})
	if got := cat.CountOf("Microsoft.Compute/virtualMachines"); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	if got := cat.CountOf("Microsoft.Compute/disks"); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}
