package determinism

import (
	"testing"
)

// TestStableMapOrder verifies iteration order is sorted regardless of
// insertion order.
func TestStableMapOrder(t *testing.T) {
	m := NewStableMap[string, int]()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)

	var keys []string
	m.Range(func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})

	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("iteration order = %v, want %v", keys, want)
		}
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}
}

// TestStableMapOverwrite verifies updates do not duplicate keys.
func TestStableMapOverwrite(t *testing.T) {
	m := NewStableMap[string, int]()
	m.Set("k", 1)
	m.Set("k", 2)

	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
	if v, _ := m.Get("k"); v != 2 {
		t.Errorf("Get = %d, want 2", v)
	}
}

// TestIDGeneratorStability verifies equal inputs produce equal IDs and
// different namespaces do not collide.
func TestIDGeneratorStability(t *testing.T) {
	g1 := NewIDGenerator("plans")
	g2 := NewIDGenerator("snapshots")

	if g1.Generate("a", "b") != g1.Generate("a", "b") {
		t.Error("same inputs produced different IDs")
	}
	if g1.Generate("a", "b") == g2.Generate("a", "b") {
		t.Error("different namespaces collided")
	}
	if g1.Generate("ab") == g1.Generate("a", "b") {
		t.Error("part boundaries not separated")
	}
}
