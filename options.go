package labtract

import (
	"github.com/tsawler/labtract/layout"
)

// extractOptions holds configuration for result extraction.
type extractOptions struct {
	// Analyte names added to the known-analyte set used by fallback
	// name selection.
	extraAnalytes []string

	// Layout reconstruction tolerances for OCR fragment input.
	layoutConfig    layout.Config
	layoutConfigSet bool

	// Forward-merge budget for fragmented-line repair. Zero means the
	// repair defaults.
	lookahead int

	// Record a per-line trace in the diagnostics output.
	trace bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		extraAnalytes:   nil,
		layoutConfig:    layout.DefaultConfig(),
		layoutConfigSet: false,
		lookahead:       0,
		trace:           false,
	}
}

// clone creates a deep copy of extractOptions.
func (o extractOptions) clone() extractOptions {
	newOpts := extractOptions{
		layoutConfig:    o.layoutConfig,
		layoutConfigSet: o.layoutConfigSet,
		lookahead:       o.lookahead,
		trace:           o.trace,
	}

	if o.extraAnalytes != nil {
		newOpts.extraAnalytes = make([]string, len(o.extraAnalytes))
		copy(newOpts.extraAnalytes, o.extraAnalytes)
	}

	return newOpts
}
