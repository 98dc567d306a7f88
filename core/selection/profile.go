// Package selection - HCL profile loading
package selection

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"graphmirror/internal/errors"
)

// LoadProfile reads a selection profile from an HCL file and applies it
// over the defaults. target_instance_count is required; the remaining
// tunables keep their defaults when absent.
//
//	target_instance_count        = 20
//	rare_boost_factor            = 5.0
//	missing_type_threshold       = 0.1
//	supplemental_budget_fraction = 0.1
//	structural_weight            = 0.3
func LoadProfile(path string) (Options, error) {
	opts := DefaultOptions()
	if err := hclsimple.DecodeFile(path, nil, &opts); err != nil {
		return opts, errors.Wrap(errors.TypeConfig, "parsing selection profile", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
