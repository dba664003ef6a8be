package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSystem is returned by System for names other than the built-ins.
var ErrUnknownSystem = errors.New("unknown unit system")

// Built-in system names.
const (
	SystemMetric = "METRIC"
	SystemField  = "FIELD"
	SystemLab    = "LAB"
)

// SI values of the native units used by the built-in systems.
const (
	meter      = 1.0
	centimeter = 0.01
	foot       = 0.3048

	second = 1.0
	hour   = 3600 * second
	day    = 24 * hour

	kilogram = 1.0
	gram     = 1e-3 * kilogram
	pound    = 0.45359237 * kilogram

	cubicMeter      = meter * meter * meter
	cubicCentimeter = centimeter * centimeter * centimeter
	cubicFoot       = foot * foot * foot
	stb             = 0.158987294928 * cubicMeter

	barsa = 1e5
	psia  = 6894.75729316836
	atm   = 101325.0

	centiPoise = 1e-3
	milliDarcy = 9.869233e-16

	kelvin  = 1.0
	rankine = 5.0 / 9.0
)

// Metric returns a fresh registry for the METRIC deck unit system.
func Metric() *Registry {
	r := NewRegistry(SystemMetric)
	r.Register("Length", meter)
	r.Register("Time", day)
	r.Register("Mass", kilogram)
	r.Register("Density", kilogram/cubicMeter)
	r.Register("Pressure", barsa)
	r.Register("Temperature", kelvin)
	r.Register("AbsoluteTemperature", kelvin)
	r.Register("Viscosity", centiPoise)
	r.Register("Permeability", milliDarcy)
	r.Register("LiquidSurfaceVolume", cubicMeter)
	r.Register("GasSurfaceVolume", cubicMeter)
	r.Register("ReservoirVolume", cubicMeter)
	r.Register("Transmissibility", centiPoise*cubicMeter/(day*barsa))
	return r
}

// Field returns a fresh registry for the FIELD deck unit system.
func Field() *Registry {
	r := NewRegistry(SystemField)
	r.Register("Length", foot)
	r.Register("Time", day)
	r.Register("Mass", pound)
	r.Register("Density", pound/cubicFoot)
	r.Register("Pressure", psia)
	r.Register("Temperature", rankine)
	r.Register("AbsoluteTemperature", rankine)
	r.Register("Viscosity", centiPoise)
	r.Register("Permeability", milliDarcy)
	r.Register("LiquidSurfaceVolume", stb)
	r.Register("GasSurfaceVolume", 1000*cubicFoot)
	r.Register("ReservoirVolume", stb)
	r.Register("Transmissibility", centiPoise*stb/(day*psia))
	return r
}

// Lab returns a fresh registry for the LAB deck unit system.
func Lab() *Registry {
	r := NewRegistry(SystemLab)
	r.Register("Length", centimeter)
	r.Register("Time", hour)
	r.Register("Mass", gram)
	r.Register("Density", gram/cubicCentimeter)
	r.Register("Pressure", atm)
	r.Register("Temperature", kelvin)
	r.Register("AbsoluteTemperature", kelvin)
	r.Register("Viscosity", centiPoise)
	r.Register("Permeability", milliDarcy)
	r.Register("LiquidSurfaceVolume", cubicCentimeter)
	r.Register("GasSurfaceVolume", cubicCentimeter)
	r.Register("ReservoirVolume", cubicCentimeter)
	r.Register("Transmissibility", centiPoise*cubicCentimeter/(hour*atm))
	return r
}

// System returns a fresh registry for a built-in system. Names are matched
// case-insensitively.
func System(name string) (*Registry, error) {
	switch strings.ToUpper(name) {
	case SystemMetric:
		return Metric(), nil
	case SystemField:
		return Field(), nil
	case SystemLab:
		return Lab(), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownSystem, name)
	}
}
