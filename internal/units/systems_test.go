package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSystems(t *testing.T) {
	testCases := []struct {
		system string
		dim    string
		expect float64
	}{
		{system: "METRIC", dim: "Length", expect: 1},
		{system: "METRIC", dim: "Time", expect: 86400},
		{system: "METRIC", dim: "Pressure", expect: 1e5},
		{system: "METRIC", dim: "Viscosity", expect: 1e-3},
		{system: "FIELD", dim: "Length", expect: 0.3048},
		{system: "FIELD", dim: "Pressure", expect: 6894.75729316836},
		{system: "FIELD", dim: "LiquidSurfaceVolume", expect: 0.158987294928},
		{system: "FIELD", dim: "GasSurfaceVolume", expect: 28.316846592},
		{system: "FIELD", dim: "Density", expect: 16.018463373960138},
		{system: "field", dim: "Mass", expect: 0.45359237},
		{system: "LAB", dim: "Length", expect: 0.01},
		{system: "LAB", dim: "Time", expect: 3600},
		{system: "LAB", dim: "Pressure", expect: 101325},
		{system: "LAB", dim: "Density", expect: 1000},
	}

	for _, tc := range testCases {
		t.Run(tc.system+"/"+tc.dim, func(t *testing.T) {
			r, err := System(tc.system)
			require.NoError(t, err)

			h, err := r.Lookup(tc.dim)
			require.NoError(t, err)
			assert.InEpsilon(t, tc.expect, h.SIScaling(), 1e-9)
		})
	}
}

func TestBuiltinSystems_SameDimensionSet(t *testing.T) {
	names := func(r *Registry) []string {
		var out []string
		for _, d := range r.Dimensions() {
			out = append(out, d.Name)
		}
		return out
	}

	metric := names(Metric())
	assert.Equal(t, metric, names(Field()))
	assert.Equal(t, metric, names(Lab()))
	assert.Contains(t, metric, Dimensionless)
}

func TestBuiltinSystems_FreshRegistries(t *testing.T) {
	a := Metric()
	_, err := a.Parse("Length/Time")
	require.NoError(t, err)

	assert.False(t, Metric().Has("Length/Time"))
}

func TestSystem_Unknown(t *testing.T) {
	_, err := System("IMPERIAL")
	require.ErrorIs(t, err, ErrUnknownSystem)
}
