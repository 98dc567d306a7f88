// Package output - concrete renderers
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"graphmirror/core/types"
)

type jsonFormatter struct {
	showTrace bool
}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) Render(w io.Writer, result *Result) error {
	out := *result
	if !f.showTrace && result.Plan != nil {
		// Plans are immutable; render a shallow copy without the trace.
		plan := *result.Plan
		plan.Trace = nil
		out.Plan = &plan
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}

type cliFormatter struct {
	showTrace bool
}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) Render(w io.Writer, result *Result) error {
	plan := result.Plan
	meta := plan.Metadata

	if result.Tenant != "" {
		fmt.Fprintf(w, "Tenant: %s\n", result.Tenant)
	}
	if meta.PlanID != "" {
		fmt.Fprintf(w, "Plan: %s\n", meta.PlanID)
	}
	fmt.Fprintf(w, "Mode: %s (boost %.2f)\n", meta.Mode, meta.RareBoostFactor)
	fmt.Fprintf(w, "Selected %d instances (target %d, supplemental %d/%d)\n\n",
		meta.SelectedInstanceCount, meta.TargetInstanceCount,
		meta.SupplementalUsed, meta.SupplementalBudget)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tINSTANCES\tDISTINCT TYPES\tSHORTFALL")
	for _, pc := range result.Coverage.Patterns {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n",
			pc.Pattern, pc.SelectedInstances, pc.DistinctTypes, pc.Shortfall)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	cov := result.Coverage
	fmt.Fprintf(w, "\nType coverage: %d/%d (%.1f%%)\n",
		cov.CoveredTypes, cov.CatalogTypes, cov.CoveragePercent)
	if len(cov.MissingTypes) > 0 {
		fmt.Fprintln(w, "Missing types:")
		for _, t := range cov.MissingTypes {
			fmt.Fprintf(w, "  - %s\n", t)
		}
	}
	if len(cov.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range cov.Warnings {
			fmt.Fprintf(w, "  ! %s\n", warning)
		}
	}

	if f.showTrace {
		fmt.Fprintln(w, "\nTrace:")
		f.renderTrace(w, plan.Trace)
	}
	return nil
}

func (f *cliFormatter) renderTrace(w io.Writer, trace []types.TraceEntry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tPATTERN\tINSTANCE\tSCORE\tDISTANCE\tCOVERED\tSUPPLEMENTAL")
	for _, e := range trace {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\t%.4f\t%d\t%v\n",
			e.Step, e.Pattern, e.InstanceID, e.Score, e.StructuralDistance,
			e.CoveredTypes, e.Supplemental)
	}
	tw.Flush()
}
