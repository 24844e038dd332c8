package variants

import (
	"fmt"
	"strings"

	"github.com/pulseinsights/pitheme/internal/analysis"
	"github.com/pulseinsights/pitheme/internal/compiler"
	"github.com/pulseinsights/pitheme/internal/css"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pitheme.variants")

// Compiled is a variant together with its stylesheet.
type Compiled struct {
	Variant  `yaml:",inline"`
	CSS      string   `json:"css" yaml:"css"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// CompileError reports the variant that failed to compile and why.
type CompileError struct {
	Theme  string
	Errors []string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf(`Failed to compile theme "%s": %s`, e.Theme, strings.Join(e.Errors, "; "))
}

// Compile generates and compiles the variants for a with the default generator.
func Compile(a analysis.Analysis, opts css.Options) ([]Compiled, error) {
	return New().Compile(a, opts)
}

// Compile generates the variants for a and compiles each in order. The first
// variant that fails stops the batch with a *CompileError.
func (g *Generator) Compile(a analysis.Analysis, opts css.Options) ([]Compiled, error) {
	return CompileAll(g.Generate(a), opts)
}

// CompileAll compiles already generated variants in order, stopping at the
// first failure.
func CompileAll(variants []Variant, opts css.Options) ([]Compiled, error) {
	out := make([]Compiled, 0, len(variants))
	for _, v := range variants {
		res := compiler.Compile(v.Tokens.Raw(), opts)
		if !res.OK() {
			return nil, &CompileError{Theme: v.Name, Errors: res.Errors}
		}
		log.Infof("compiled variant %q: %d bytes", v.Name, len(res.CSS))
		v.Tokens = res.Theme
		out = append(out, Compiled{Variant: v, CSS: res.CSS, Warnings: res.Warnings})
	}
	return out, nil
}
