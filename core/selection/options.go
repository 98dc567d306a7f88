// Package selection - run options
package selection

import (
	"github.com/go-playground/validator/v10"

	"graphmirror/internal/errors"
)

// Mode names recorded in plan metadata
const (
	ModeProportional = "proportional"
	ModeRareBoost    = "rare-boost"
)

// Options is the recognized configuration surface of a selection run.
// Invalid options are rejected before any selection work begins.
type Options struct {
	// TargetInstanceCount is the total number of instances to select
	// across all patterns (the supplemental pass may add up to
	// SupplementalBudget on top).
	TargetInstanceCount int `hcl:"target_instance_count" validate:"gt=0"`

	// RareBoostFactor amplifies the priority of under-covered types
	RareBoostFactor float64 `hcl:"rare_boost_factor,optional" validate:"gte=1"`

	// MissingTypeThreshold is the fraction of a type's source prevalence
	// below which its coverage counts as underrepresented
	MissingTypeThreshold float64 `hcl:"missing_type_threshold,optional" validate:"gt=0,lt=1"`

	// SupplementalBudgetFraction is the share of the target reserved for
	// the cross-pattern set-cover pass
	SupplementalBudgetFraction float64 `hcl:"supplemental_budget_fraction,optional" validate:"gte=0,lt=1"`

	// StructuralWeight blends structural similarity into ranking when
	// RareBoostFactor <= 1.0
	StructuralWeight float64 `hcl:"structural_weight,optional" validate:"gte=0"`
}

// DefaultOptions returns the default tunables
func DefaultOptions() Options {
	return Options{
		TargetInstanceCount:        20,
		RareBoostFactor:            1.0,
		MissingTypeThreshold:       0.10,
		SupplementalBudgetFraction: 0.10,
		StructuralWeight:           0.3,
	}
}

var validate = validator.New()

// Validate rejects out-of-range options as configuration errors
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.TypeConfig, "invalid selection options", err)
	}
	return nil
}

// Mode returns the scoring mode implied by the boost factor
func (o Options) Mode() string {
	if o.RareBoostFactor > 1.0 {
		return ModeRareBoost
	}
	return ModeProportional
}

// SupplementalBudget returns the instance budget for the set-cover pass
func (o Options) SupplementalBudget() int {
	return int(o.SupplementalBudgetFraction * float64(o.TargetInstanceCount))
}
