// Package cmd - plan command
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"graphmirror/core/catalog"
	"graphmirror/core/coverage"
	"graphmirror/core/output"
	"graphmirror/core/selection"
	"graphmirror/core/snapshot"
	"graphmirror/internal/config"
	"graphmirror/internal/logging"
)

var (
	profilePath  string
	outputFormat string
	showTrace    bool
	targetCount  int
	boostFactor  float64
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [snapshot]",
	Short: "Compute a representative selection plan for a tenant snapshot",
	Long: `Analyze a tenant graph snapshot and produce a selection plan.

The snapshot is a YAML export of the pattern-detection output: patterns
with prevalence weights, matched types and instance pools, plus source
type counts.

Examples:
  graphmirror plan snapshot.yaml
  graphmirror plan --profile selection.hcl snapshot.yaml
  graphmirror plan --target 50 --boost 5.0 --format json snapshot.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "selection profile (HCL)")
	planCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	planCmd.Flags().BoolVar(&showTrace, "trace", false, "include the per-iteration trace in output")
	planCmd.Flags().IntVarP(&targetCount, "target", "t", 0, "total instance count to select")
	planCmd.Flags().Float64VarP(&boostFactor, "boost", "b", 0, "rare type boost factor (>= 1.0)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	opts, err := selectionOptions(cmd, cfg)
	if err != nil {
		return err
	}

	normalizer := catalog.NewAzureNormalizer()
	snap, err := snapshot.Load(args[0], normalizer)
	if err != nil {
		return err
	}

	coordinator, err := selection.NewCoordinator(snap.Catalog, snap.Store, normalizer, opts)
	if err != nil {
		return err
	}

	logging.Info("computing selection plan",
		zap.String("snapshot", args[0]),
		zap.Int("target", opts.TargetInstanceCount),
		zap.Float64("boost", opts.RareBoostFactor))

	plan, err := coordinator.Plan(ctx, snap.Patterns)
	if err != nil {
		return err
	}
	report := coverage.NewAnalyzer(snap.Catalog).Analyze(plan)

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.New(format, showTrace || cfg.Output.ShowTrace)
	if err != nil {
		return err
	}
	return formatter.Render(os.Stdout, &output.Result{
		Tenant:   snap.Tenant,
		Plan:     plan,
		Coverage: report,
	})
}

// selectionOptions layers the run options: config defaults, then the HCL
// profile, then explicit flags.
func selectionOptions(cmd *cobra.Command, cfg *config.Config) (selection.Options, error) {
	opts := selection.Options{
		TargetInstanceCount:        cfg.Selection.TargetInstanceCount,
		RareBoostFactor:            cfg.Selection.RareBoostFactor,
		MissingTypeThreshold:       cfg.Selection.MissingTypeThreshold,
		SupplementalBudgetFraction: cfg.Selection.SupplementalBudgetFraction,
		StructuralWeight:           cfg.Selection.StructuralWeight,
	}

	if profilePath != "" {
		loaded, err := selection.LoadProfile(profilePath)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if cmd.Flags().Changed("target") {
		opts.TargetInstanceCount = targetCount
	}
	if cmd.Flags().Changed("boost") {
		opts.RareBoostFactor = boostFactor
	}
	return opts, nil
}
