package deck

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// Number is the set of value types that can be converted to SI units.
type Number interface {
	constraints.Integer | constraints.Float
}

// UnitFactor is a unit record owned elsewhere (usually a units.Registry).
// SIScaling returns the multiplier from the native unit to the SI unit.
type UnitFactor interface {
	SIScaling() float64
}

// NumericItem is an Item whose values carry a physical unit. Raw values are
// converted lazily: the first NormalizedValue or NormalizedValues call
// multiplies every raw value by its unit factor and caches the result.
//
// With one unit factor, every value uses it. With k > 1 factors, value i uses
// factor i mod k, which models fields repeating a tuple of differently
// dimensioned sub-values. The relation between the number of values and the
// number of factors is not enforced; see FactorsAligned.
//
// The cache is never invalidated. Values or factors appended after the first
// normalized read are not reflected in normalized results.
type NumericItem[T Number] struct {
	Item[T]

	unitRefs      []UnitFactor
	normalized    []T
	hasNormalized bool
}

type (
	// IntItem holds integer values.
	IntItem = NumericItem[int64]
	// DoubleItem holds floating point values.
	DoubleItem = NumericItem[float64]
)

// NewNumeric creates an empty numeric item with the given name.
func NewNumeric[T Number](name string) *NumericItem[T] {
	return &NumericItem[T]{Item: Item[T]{name: name}}
}

// AppendUnitFactor registers one unit factor for the item. The default factor
// is chosen when the item's default flag is set at the time of this call,
// otherwise the active one. Values appended later do not change the choice.
func (it *NumericItem[T]) AppendUnitFactor(active, def UnitFactor) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.defaultApplied {
		it.unitRefs = append(it.unitRefs, def)
	} else {
		it.unitRefs = append(it.unitRefs, active)
	}
}

// UnitFactors returns the registered unit factors in registration order.
func (it *NumericItem[T]) UnitFactors() []UnitFactor {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return slices.Clone(it.unitRefs)
}

// FactorsAligned reports whether the registered factors map cleanly onto the
// values: either a single factor, or a factor count dividing the value count.
// Normalization works regardless; this is a hint for callers.
func (it *NumericItem[T]) FactorsAligned() bool {
	it.mu.RLock()
	defer it.mu.RUnlock()

	switch k := len(it.unitRefs); {
	case k == 0:
		return false
	case k == 1:
		return true
	default:
		return len(it.values)%k == 0
	}
}

// NormalizedValue returns the SI value at index.
func (it *NumericItem[T]) NormalizedValue(index int) (T, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	var zero T
	if err := it.normalize(); err != nil {
		return zero, err
	}
	if err := checkIndex(index, len(it.normalized)); err != nil {
		return zero, err
	}
	return it.normalized[index], nil
}

// NormalizedValues returns a copy of all SI values in append order.
func (it *NumericItem[T]) NormalizedValues() ([]T, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if err := it.normalize(); err != nil {
		return nil, err
	}
	return slices.Clone(it.normalized), nil
}

// normalize fills the SI cache. Callers must hold the write lock.
func (it *NumericItem[T]) normalize() error {
	if len(it.unitRefs) == 0 {
		return fmt.Errorf("%w: no unit factor registered for item '%s', cannot ask for SI data", ErrInvalidState, it.name)
	}
	if it.hasNormalized {
		return nil
	}

	normalized := make([]T, len(it.values))
	if len(it.unitRefs) == 1 {
		factor := it.unitRefs[0].SIScaling()
		for i, v := range it.values {
			normalized[i] = scale(v, factor)
		}
	} else {
		for i, v := range it.values {
			factor := it.unitRefs[i%len(it.unitRefs)].SIScaling()
			normalized[i] = scale(v, factor)
		}
	}

	it.normalized = normalized
	it.hasNormalized = true
	return nil
}

// scale multiplies in float64. Integer results are truncated toward zero.
func scale[T Number](v T, factor float64) T {
	return T(float64(v) * factor)
}
