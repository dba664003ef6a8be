package app

import (
	"fmt"

	"github.com/specialistvlad/deckgo/internal/deck"
	"github.com/specialistvlad/deckgo/internal/units"
	"github.com/zclconf/go-cty/cty"
)

// NormalizeRequest describes one numeric record field to normalize.
type NormalizeRequest struct {
	Name   string
	Values cty.Value
	// Default replaces null elements of Values.
	Default float64
	// Dimensions are the active dimension expressions, one per unit factor.
	Dimensions []string
	// DefaultDimensions pair with Dimensions by position and are used when a
	// default was applied before the factor is attached. Missing entries fall
	// back to the active dimension.
	DefaultDimensions []string
}

// NormalizeResult is the outcome of Normalize.
type NormalizeResult struct {
	Name           string    `json:"name"`
	System         string    `json:"system"`
	Raw            []float64 `json:"raw"`
	Normalized     []float64 `json:"normalized"`
	DefaultApplied bool      `json:"default_applied"`
	Factors        []string  `json:"factors"`
}

// Normalize builds a numeric item from req the way the deck parser does and
// returns its raw and SI values.
func (a *App) Normalize(req NormalizeRequest) (*NormalizeResult, error) {
	a.logger.Debug("Normalize started.", "item", req.Name, "dimensions", req.Dimensions)

	item := deck.NewNumeric[float64](req.Name)
	if err := deck.AppendCtyNumbers[float64](a.ctx, item, req.Values, req.Default); err != nil {
		return nil, err
	}

	factors := make([]string, 0, len(req.Dimensions))
	for i, dim := range req.Dimensions {
		active, err := a.registry.Parse(dim)
		if err != nil {
			return nil, fmt.Errorf("item '%s': %w", req.Name, err)
		}
		def := active
		if i < len(req.DefaultDimensions) && req.DefaultDimensions[i] != "" {
			if def, err = a.registry.Parse(req.DefaultDimensions[i]); err != nil {
				return nil, fmt.Errorf("item '%s': %w", req.Name, err)
			}
		}
		item.AppendUnitFactor(active, def)
	}
	for _, f := range item.UnitFactors() {
		if h, ok := f.(units.Handle); ok {
			factors = append(factors, h.Name())
		}
	}

	if len(factors) > 0 && !item.FactorsAligned() {
		a.logger.Warn("Unit factor count does not divide value count; factors will cycle unevenly.", "item", req.Name, "values", item.Size(), "factors", len(factors))
	}

	normalized, err := item.NormalizedValues()
	if err != nil {
		return nil, err
	}

	a.logger.Info("Item normalized.", "item", req.Name, "system", a.registry.Name(), "values", item.Size(), "default_applied", item.DefaultApplied())
	return &NormalizeResult{
		Name:           item.Name(),
		System:         a.registry.Name(),
		Raw:            item.Values(),
		Normalized:     normalized,
		DefaultApplied: item.DefaultApplied(),
		Factors:        factors,
	}, nil
}

// Units returns the dimensions of the configured unit system.
func (a *App) Units() []units.Dimension {
	return a.registry.Dimensions()
}
