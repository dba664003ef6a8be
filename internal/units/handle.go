package units

import "fmt"

// Handle is a lightweight reference to a dimension held by a Registry. It
// satisfies deck.UnitFactor. The zero Handle is invalid.
type Handle struct {
	reg *Registry
	key string
}

// Name returns the dimension name or expression the handle refers to.
func (h Handle) Name() string {
	return h.key
}

// System returns the name of the unit system owning the dimension.
func (h Handle) System() string {
	if h.reg == nil {
		return ""
	}
	return h.reg.Name()
}

// Valid reports whether the handle was issued by a registry.
func (h Handle) Valid() bool {
	return h.reg != nil
}

// SIScaling returns the factor converting one native unit into SI.
func (h Handle) SIScaling() float64 {
	if h.reg == nil {
		panic("units: SIScaling called on a zero Handle")
	}
	d, ok := h.reg.dimension(h.key)
	if !ok {
		panic(fmt.Sprintf("units: dimension '%s' vanished from system '%s'", h.key, h.reg.Name()))
	}
	return d.SIScaling
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	if h.reg == nil {
		return "<invalid>"
	}
	return h.reg.Name() + ":" + h.key
}
