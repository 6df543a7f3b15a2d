package gamut

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/ntscjguess/internal/colorspace"
	"github.com/zclconf/go-cty/cty"
)

// Load parses an HCL gamut file into a Spec. The file holds a white_point
// block with either x/y chromaticity attributes or a temperature attribute,
// and/or a top-level matrix attribute with 9 row-major numbers overriding
// the derivation:
//
//	white_point {
//	  x = 0.281
//	  y = 0.311
//	}
func Load(path string) (Spec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("reading gamut file: %w", err)
	}

	file, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return Spec{}, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	body := file.Body.(*hclsyntax.Body)

	var spec Spec
	for name, attr := range body.Attributes {
		if name != "matrix" {
			return Spec{}, fmt.Errorf("unknown attribute %q in gamut file", name)
		}
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return Spec{}, fmt.Errorf("evaluating matrix: %s", diags.Error())
		}
		m, err := matrixFromValue(val)
		if err != nil {
			return Spec{}, err
		}
		spec.Override = &m
	}

	for _, block := range body.Blocks {
		if block.Type != "white_point" {
			return Spec{}, fmt.Errorf("unknown block %q in gamut file", block.Type)
		}
		if err := parseWhitePoint(block.Body, &spec); err != nil {
			return Spec{}, err
		}
	}

	if spec.Override == nil && spec.WhitePoint == (Chromaticity{}) && spec.Temperature == 0 {
		return Spec{}, fmt.Errorf("gamut file needs a white_point block or a matrix attribute")
	}
	if spec.WhitePoint != (Chromaticity{}) && spec.Temperature != 0 {
		return Spec{}, fmt.Errorf("white_point cannot set both x/y and temperature")
	}

	return spec, nil
}

func parseWhitePoint(body *hclsyntax.Body, spec *Spec) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("parsing white_point: %s", diags.Error())
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating white_point.%s: %s", name, diags.Error())
		}
		f, err := numberFromValue(val)
		if err != nil {
			return fmt.Errorf("white_point.%s: %w", name, err)
		}
		switch name {
		case "x":
			spec.WhitePoint.X = f
		case "y":
			spec.WhitePoint.Y = f
		case "temperature":
			spec.Temperature = f
		default:
			return fmt.Errorf("unknown white_point attribute %q", name)
		}
	}
	return nil
}

func numberFromValue(val cty.Value) (float64, error) {
	if val.Type() != cty.Number {
		return 0, fmt.Errorf("expected a number, got %s", val.Type().FriendlyName())
	}
	f, _ := val.AsBigFloat().Float64()
	return f, nil
}

func matrixFromValue(val cty.Value) (colorspace.Matrix, error) {
	if !val.CanIterateElements() || val.LengthInt() != 9 {
		return colorspace.Matrix{}, fmt.Errorf("matrix must be a list of 9 numbers, row-major")
	}

	var m colorspace.Matrix
	i := 0
	for it := val.ElementIterator(); it.Next(); i++ {
		_, elem := it.Element()
		f, err := numberFromValue(elem)
		if err != nil {
			return colorspace.Matrix{}, fmt.Errorf("matrix[%d]: %w", i, err)
		}
		m[i/3][i%3] = f
	}
	return m, nil
}
