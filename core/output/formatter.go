// Package output renders selection results for humans and machines.
package output

import (
	"io"

	"graphmirror/core/coverage"
	"graphmirror/core/types"
	"graphmirror/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable text report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Result is the complete output of a selection run
type Result struct {
	// Tenant identifies the source tenant
	Tenant string `json:"tenant,omitempty"`

	// Plan is the computed selection
	Plan *types.Plan `json:"plan"`

	// Coverage is the plan's coverage report
	Coverage *coverage.Report `json:"coverage"`
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the result
	Render(w io.Writer, result *Result) error
}

// New returns the formatter for a format name. showTrace controls whether
// the per-iteration trace is included.
func New(format string, showTrace bool) (Formatter, error) {
	switch Format(format) {
	case FormatCLI:
		return &cliFormatter{showTrace: showTrace}, nil
	case FormatJSON:
		return &jsonFormatter{showTrace: showTrace}, nil
	default:
		return nil, errors.Configf("unknown output format %q", format)
	}
}
