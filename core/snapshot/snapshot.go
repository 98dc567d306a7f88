// Package snapshot loads tenant graph snapshots: pattern-detection output,
// instance pools and source type counts. Every type name is normalized to
// its canonical form HERE, at the boundary, so the core never sees a
// pattern-local alias.
package snapshot

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"graphmirror/core/catalog"
	"graphmirror/core/determinism"
	"graphmirror/core/store"
	"graphmirror/core/types"
	"graphmirror/internal/errors"
	"graphmirror/internal/logging"
)

// Document is the on-disk snapshot schema
type Document struct {
	// Tenant identifies the source tenant
	Tenant string `yaml:"tenant"`

	// TypeCounts maps type name to its occurrence count in the source
	// graph. Optional; derived from the instances when absent.
	TypeCounts map[string]int `yaml:"type_counts"`

	// Patterns is the pattern-detection output
	Patterns []PatternDoc `yaml:"patterns"`

	// Orphans lists instances not claimed by any pattern
	Orphans []InstanceDoc `yaml:"orphans"`
}

// PatternDoc is one detected pattern
type PatternDoc struct {
	Name         string        `yaml:"name"`
	Prevalence   float64       `yaml:"prevalence"`
	MatchedTypes []string      `yaml:"matched_types"`
	Instances    []InstanceDoc `yaml:"instances"`
}

// InstanceDoc is one correlated instance
type InstanceDoc struct {
	ID        string        `yaml:"id"`
	Resources []ResourceDoc `yaml:"resources"`
}

// ResourceDoc is one resource record
type ResourceDoc struct {
	ID         string                 `yaml:"id"`
	Type       string                 `yaml:"type"`
	Properties map[string]interface{} `yaml:"properties"`
}

// Snapshot is the materialized, normalized in-memory form. Checksum is the
// content hash of the raw snapshot bytes; two snapshots with the same
// checksum yield the same plan for the same options.
type Snapshot struct {
	Tenant   string
	Checksum string
	Catalog  *catalog.TypeCatalog
	Patterns []*types.Pattern
	Store    *store.MemoryStore
}

// Load reads and parses a snapshot file
func Load(path string, n *catalog.Normalizer) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Snapshot("reading snapshot file", err)
	}
	return Parse(data, n)
}

// Parse builds a Snapshot from YAML bytes
func Parse(data []byte, n *catalog.Normalizer) (*Snapshot, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Snapshot("parsing snapshot yaml", err)
	}
	if len(doc.Patterns) == 0 {
		return nil, errors.New(errors.TypeSnapshot, "snapshot contains no patterns")
	}

	normalize := func(raw string) types.CanonicalType {
		canonical, known := n.Normalize(raw)
		if !known {
			logging.Warn("unrecognized type alias kept verbatim",
				zap.String("type", raw))
		}
		return canonical
	}

	snap := &Snapshot{
		Tenant:   doc.Tenant,
		Checksum: determinism.ComputeHash(data).Hex(),
	}
	var everything []*types.ResourceInstance
	seenIDs := make(map[string]struct{})

	buildInstance := func(d InstanceDoc, pattern string) (*types.ResourceInstance, error) {
		if d.ID == "" {
			return nil, errors.Newf(errors.TypeSnapshot, "instance without id in pattern %q", pattern)
		}
		if _, dup := seenIDs[d.ID]; dup {
			return nil, errors.Newf(errors.TypeSnapshot, "duplicate instance id %q", d.ID)
		}
		seenIDs[d.ID] = struct{}{}

		inst := &types.ResourceInstance{ID: d.ID, Pattern: pattern}
		for _, r := range d.Resources {
			inst.Resources = append(inst.Resources, types.ResourceRecord{
				ID:         r.ID,
				Type:       normalize(r.Type),
				Properties: r.Properties,
			})
		}
		return inst, nil
	}

	for _, pd := range doc.Patterns {
		if pd.Name == "" {
			return nil, errors.New(errors.TypeSnapshot, "pattern without a name")
		}
		p := &types.Pattern{
			Name:       pd.Name,
			Prevalence: pd.Prevalence,
		}
		for _, raw := range pd.MatchedTypes {
			p.MatchedTypes = append(p.MatchedTypes, normalize(raw))
		}
		for _, id := range pd.Instances {
			inst, err := buildInstance(id, pd.Name)
			if err != nil {
				return nil, err
			}
			p.Pool = append(p.Pool, inst)
			everything = append(everything, inst)
		}
		snap.Patterns = append(snap.Patterns, p)
	}

	for _, od := range doc.Orphans {
		inst, err := buildInstance(od, types.OrphanPattern)
		if err != nil {
			return nil, err
		}
		everything = append(everything, inst)
	}

	if len(doc.TypeCounts) > 0 {
		counts := make(map[types.CanonicalType]int, len(doc.TypeCounts))
		for raw, count := range doc.TypeCounts {
			counts[normalize(raw)] += count
		}
		snap.Catalog = catalog.NewTypeCatalog(counts)
	} else {
		snap.Catalog = catalog.FromInstances(everything)
	}

	snap.Store = store.NewMemoryStore(everything)

	logging.Info("snapshot loaded",
		zap.String("tenant", snap.Tenant),
		zap.String("checksum", snap.Checksum),
		zap.Int("patterns", len(snap.Patterns)),
		zap.Int("instances", len(everything)),
		zap.Int("catalog_types", snap.Catalog.Len()))
	return snap, nil
}
