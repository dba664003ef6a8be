package units

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/deckgo/internal/ctxlog"
)

// fileRoot is the top level of a unit system file.
type fileRoot struct {
	Systems []*systemBlock `hcl:"unit_system,block"`
}

// systemBlock declares one unit system, optionally starting from a built-in.
type systemBlock struct {
	Name       string            `hcl:"name,label"`
	Base       *string           `hcl:"base,optional"`
	Dimensions []*dimensionBlock `hcl:"dimension,block"`
}

type dimensionBlock struct {
	Name    string  `hcl:"name,label"`
	Scaling float64 `hcl:"scaling"`
}

// LoadHCL parses unit system definitions from src and returns one registry per
// unit_system block, keyed by its label:
//
//	unit_system "MYUNITS" {
//	  base = "FIELD"
//
//	  dimension "Length" {
//	    scaling = 0.3048
//	  }
//	}
//
// Dimensions inherited from base may be overridden. The filename is only used
// in diagnostics.
func LoadHCL(ctx context.Context, src []byte, filename string) (map[string]*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Unit system loader started.", "file", filename)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	systems := make(map[string]*Registry, len(root.Systems))
	for _, block := range root.Systems {
		if _, exists := systems[block.Name]; exists {
			return nil, fmt.Errorf("%s: unit system '%s' declared more than once", filename, block.Name)
		}
		reg, err := translateSystem(block)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		systems[block.Name] = reg
		logger.Debug("Loaded unit system.", "system", block.Name, "dimensions", len(block.Dimensions))
	}

	logger.Debug("Unit system loading complete.", "file", filename, "systems", len(systems))
	return systems, nil
}

func translateSystem(block *systemBlock) (*Registry, error) {
	reg := NewRegistry(block.Name)
	if block.Base != nil {
		base, err := System(*block.Base)
		if err != nil {
			return nil, fmt.Errorf("unit system '%s': %w", block.Name, err)
		}
		for _, d := range base.Dimensions() {
			reg.set(d.Name, d.SIScaling)
		}
	}

	seen := make(map[string]struct{}, len(block.Dimensions))
	for _, d := range block.Dimensions {
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("unit system '%s': dimension '%s' declared more than once", block.Name, d.Name)
		}
		seen[d.Name] = struct{}{}

		if d.Name == Dimensionless {
			return nil, fmt.Errorf("unit system '%s': dimension '%s' is reserved", block.Name, Dimensionless)
		}
		if err := validateScaling(d.Scaling); err != nil {
			return nil, fmt.Errorf("unit system '%s', dimension '%s': %w", block.Name, d.Name, err)
		}
		if d.Name == "" || containsOperator(d.Name) {
			return nil, fmt.Errorf("unit system '%s': %w: dimension name %q", block.Name, ErrInvalidDimension, d.Name)
		}
		reg.set(d.Name, d.Scaling)
	}
	return reg, nil
}
