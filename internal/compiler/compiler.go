// Package compiler runs the token pipeline: defaults, normalization,
// validation and stylesheet emission.
package compiler

import (
	"encoding/json"

	"github.com/pulseinsights/pitheme/internal/css"
	"github.com/pulseinsights/pitheme/internal/theme"
	"github.com/pulseinsights/pitheme/internal/tokens"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pitheme.compiler")

// Result is the outcome of Compile. CSS is empty exactly when Errors is not.
type Result struct {
	CSS      string
	Theme    *tokens.Tree
	Warnings []string
	Errors   []string
}

// OK reports whether the theme compiled.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// MarshalJSON encodes a failed result's css as null.
func (r Result) MarshalJSON() ([]byte, error) {
	var cssValue *string
	if r.OK() {
		cssValue = &r.CSS
	}
	return json.Marshal(struct {
		CSS      *string      `json:"css"`
		Theme    *tokens.Tree `json:"theme"`
		Warnings []string     `json:"warnings"`
		Errors   []string     `json:"errors"`
	}{cssValue, r.Theme, r.Warnings, r.Errors})
}

// Compile normalizes raw, validates it and, when no errors were found,
// renders the stylesheet with opts. A failed validation returns the
// normalized tree alongside the errors and no CSS.
func Compile(raw tokens.Raw, opts css.Options) Result {
	tree := theme.Normalize(raw)
	report := theme.Validate(tree)

	for _, w := range report.Warnings {
		log.Warning(w)
	}
	if !report.OK() {
		for _, e := range report.Errors {
			log.Error(e)
		}
		return Result{Theme: tree, Warnings: report.Warnings, Errors: report.Errors}
	}

	out := css.Build(tree, opts)
	log.Debugf("compiled theme: %d bytes, %d warnings", len(out), len(report.Warnings))
	return Result{CSS: out, Theme: tree, Warnings: report.Warnings, Errors: []string{}}
}
