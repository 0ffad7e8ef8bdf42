package main

import (
	"encoding/json"
	"os"

	"github.com/wickjs/wick/internal/cli"
)

// OptionalSpinner wraps cli.Spinner with enable/disable support, so
// commands can skip spinner output in plain or JSON mode without guarding
// every call site.
type OptionalSpinner struct {
	spinner *cli.Spinner
	enabled bool
}

// NewOptionalSpinner creates a spinner that is a no-op when enabled is
// false. An enabled spinner starts immediately.
func NewOptionalSpinner(message string, enabled bool) *OptionalSpinner {
	if !enabled {
		return &OptionalSpinner{}
	}
	s := cli.NewSpinner(message)
	s.Start()
	return &OptionalSpinner{spinner: s, enabled: true}
}

// Update changes the spinner message. No-op if disabled.
func (o *OptionalSpinner) Update(message string) {
	if o.enabled && o.spinner != nil {
		o.spinner.Update(message)
	}
}

// Stop stops the spinner. No-op if disabled, safe to call more than once.
func (o *OptionalSpinner) Stop() {
	if o.enabled && o.spinner != nil {
		o.spinner.Stop()
	}
}

// outputJSON writes an indented JSON object to stdout.
func outputJSON(data map[string]any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
