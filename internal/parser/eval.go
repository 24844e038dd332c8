package parser

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ResolveColor extracts a color string from a cty.Value.
// If the value is a string, return it directly.
// If the value is an object, extract the "color" key.
func ResolveColor(val cty.Value) (string, error) {
	if val.Type() == cty.String {
		return val.AsString(), nil
	}
	if val.Type().IsObjectType() {
		if val.Type().HasAttribute("color") {
			colorVal := val.GetAttr("color")
			if colorVal.Type() == cty.String {
				return colorVal.AsString(), nil
			}
		}
		return "", fmt.Errorf("object has no 'color' attribute; reference a specific child or add a color attribute")
	}
	return "", fmt.Errorf("expected string or object with color attribute, got %s", val.Type().FriendlyName())
}

// NodeToCty converts a color.Node to a cty.Value for HCL evaluation context.
// Leaf nodes (no children) become cty.StringVal.
// Nodes with children become cty.ObjectVal, with "color" as a sibling key if the node has its own color.
func NodeToCty(node *color.Node) cty.Value {
	if node.Children == nil {
		if node.Color != nil {
			return cty.StringVal(node.Color.Hex())
		}
		return cty.EmptyObjectVal
	}

	vals := make(map[string]cty.Value, len(node.Children)+1)
	if node.Color != nil {
		vals["color"] = cty.StringVal(node.Color.Hex())
	}

	keys := make([]string, 0, len(node.Children))
	for k := range node.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		vals[k] = NodeToCty(node.Children[k])
	}
	return cty.ObjectVal(vals)
}

// argColor resolves a function argument that may be a color string or a
// palette group carrying its own color.
func argColor(val cty.Value) (color.Color, error) {
	s, err := ResolveColor(val)
	if err != nil {
		return color.Color{}, err
	}
	c, ok := color.Parse(s)
	if !ok {
		return color.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

func adjustFunc(description string, adjust func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: description,
		Params: []function.Parameter{
			{Name: "color", Type: cty.DynamicPseudoType},
			{Name: "amount", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := argColor(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			amount, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(adjust(c, amount).Hex()), nil
		},
	})
}

// MakeLightenFunc creates an HCL function that mixes a color toward white.
// Usage: lighten("#hex", 0.1) or lighten(palette.brand, 0.1)
func MakeLightenFunc() function.Function {
	return adjustFunc("Mixes a color toward white by the given fraction (0.0 to 1.0)", color.Color.Lighten)
}

// MakeDarkenFunc creates an HCL function that darkens a color.
// Usage: darken("#hex", 0.1) or darken(palette.brand, 0.1)
func MakeDarkenFunc() function.Function {
	return adjustFunc("Scales a color toward black by the given fraction (0.0 to 1.0)", color.Color.Darken)
}

// MakeContrastFunc creates an HCL function returning the WCAG contrast ratio
// of two colors.
func MakeContrastFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the WCAG contrast ratio between two colors (1 to 21)",
		Params: []function.Parameter{
			{Name: "a", Type: cty.DynamicPseudoType},
			{Name: "b", Type: cty.DynamicPseudoType},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			a, err := argColor(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			b, err := argColor(args[1])
			if err != nil {
				return cty.NilVal, err
			}
			ratio := color.ContrastRatio(a, b)
			return cty.NumberVal(new(big.Float).SetFloat64(ratio)), nil
		},
	})
}

// MakeReadableFunc creates an HCL function returning white or near-black,
// whichever reads better on the given background.
func MakeReadableFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the more readable of white and near-black on a background color",
		Params: []function.Parameter{
			{Name: "background", Type: cty.DynamicPseudoType},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			bg, err := argColor(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(color.BestOn(bg, color.White, color.Ink).Hex()), nil
		},
	})
}

// Functions returns the color functions available in token files.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"lighten":  MakeLightenFunc(),
		"darken":   MakeDarkenFunc(),
		"contrast": MakeContrastFunc(),
		"readable": MakeReadableFunc(),
	}
}

// BuildEvalContext creates an HCL evaluation context with palette variables
// and the color functions.
func BuildEvalContext(palette *color.Node) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": NodeToCty(palette),
		},
		Functions: Functions(),
	}
}
