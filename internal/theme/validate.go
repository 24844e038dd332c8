package theme

import (
	"fmt"

	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
)

// ButtonTextContrast is the contrast below which button text draws a warning.
const ButtonTextContrast = 3.0

// Messages produced by Validate.
const (
	missingTokenFormat = "Missing token: %s"
	LowContrastWarning = "Button text contrast may be insufficient for accessibility."
)

// Report holds validation findings. Errors block compilation; warnings do not.
type Report struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OK reports whether the tree has no errors.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks that every core token is non-empty and warns when the
// button text color does not stand out from the primary color.
func Validate(t *tokens.Tree) Report {
	r := Report{Errors: []string{}, Warnings: []string{}}
	for _, e := range tokens.Schema {
		if e.Core && e.Value(t) == "" {
			r.Errors = append(r.Errors, fmt.Sprintf(missingTokenFormat, e.Path))
		}
	}
	if ratio, ok := color.Contrast(t.Colors.Primary, t.Colors.OnPrimary); ok && ratio < ButtonTextContrast {
		r.Warnings = append(r.Warnings, LowContrastWarning)
	}
	return r
}
