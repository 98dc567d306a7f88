// Package coverage - plan coverage analysis
// Computes distinct-type coverage of a finished plan against the catalog.
// Shortfalls carried in the plan metadata are surfaced as warnings, never
// hidden.
package coverage

import (
	"fmt"
	"sort"

	"graphmirror/core/catalog"
	"graphmirror/core/types"
)

// PatternCoverage is the per-pattern slice of the report
type PatternCoverage struct {
	Pattern           string `json:"pattern"`
	SelectedInstances int    `json:"selected_instances"`
	DistinctTypes     int    `json:"distinct_types"`
	Shortfall         int    `json:"shortfall,omitempty"`
}

// Report summarizes the distinct-type coverage of a plan
type Report struct {
	// CatalogTypes is the number of distinct types in the source graph
	CatalogTypes int `json:"catalog_types"`

	// CoveredTypes is the number of distinct types the plan covers
	CoveredTypes int `json:"covered_types"`

	// CoveragePercent is CoveredTypes / CatalogTypes * 100
	CoveragePercent float64 `json:"coverage_percent"`

	// MissingTypes lists catalog types the plan does not cover, sorted
	MissingTypes []types.CanonicalType `json:"missing_types,omitempty"`

	// Patterns breaks coverage down per pattern, in plan order
	Patterns []PatternCoverage `json:"patterns"`

	// Warnings records every shortfall encountered during selection
	Warnings []string `json:"warnings,omitempty"`
}

// Analyzer computes coverage reports
type Analyzer struct {
	catalog *catalog.TypeCatalog
}

// NewAnalyzer creates an analyzer over the type catalog
func NewAnalyzer(cat *catalog.TypeCatalog) *Analyzer {
	return &Analyzer{catalog: cat}
}

// Analyze produces the coverage report for a plan
func (a *Analyzer) Analyze(plan *types.Plan) *Report {
	covered := make(map[types.CanonicalType]struct{})
	report := &Report{CatalogTypes: a.catalog.Len()}

	for _, sel := range plan.Selections {
		distinct := make(map[types.CanonicalType]struct{})
		for _, inst := range sel.Instances {
			for _, t := range inst.Types() {
				covered[t] = struct{}{}
				distinct[t] = struct{}{}
			}
		}
		report.Patterns = append(report.Patterns, PatternCoverage{
			Pattern:           sel.Pattern,
			SelectedInstances: len(sel.Instances),
			DistinctTypes:     len(distinct),
			Shortfall:         plan.Metadata.PoolShortfalls[sel.Pattern],
		})
	}

	for _, t := range a.catalog.AllTypes() {
		if _, ok := covered[t]; !ok {
			report.MissingTypes = append(report.MissingTypes, t)
		}
	}
	sort.Slice(report.MissingTypes, func(i, j int) bool {
		return report.MissingTypes[i] < report.MissingTypes[j]
	})

	report.CoveredTypes = report.CatalogTypes - len(report.MissingTypes)
	if report.CatalogTypes > 0 {
		report.CoveragePercent = float64(report.CoveredTypes) / float64(report.CatalogTypes) * 100
	}

	meta := plan.Metadata
	for _, name := range meta.ZeroAllocationPatterns {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("pattern %s received no slot: prevalence too low for target %d", name, meta.TargetInstanceCount))
	}
	patternNames := make([]string, 0, len(meta.PoolShortfalls))
	for name := range meta.PoolShortfalls {
		patternNames = append(patternNames, name)
	}
	sort.Strings(patternNames)
	for _, name := range patternNames {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("pattern %s pool exhausted %d slot(s) below allocation", name, meta.PoolShortfalls[name]))
	}
	for _, t := range meta.UnknownMatchedTypes {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("matched type %s absent from catalog; treated as maximally rare", t))
	}
	if len(meta.RemainingMissingTypes) > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("supplemental budget of %d exhausted with %d type(s) still missing", meta.SupplementalBudget, len(meta.RemainingMissingTypes)))
	}
	return report
}
