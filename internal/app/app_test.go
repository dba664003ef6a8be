package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/deckgo/internal/deck"
	"github.com/specialistvlad/deckgo/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func numbers(vals ...any) cty.Value {
	elems := make([]cty.Value, len(vals))
	for i, v := range vals {
		switch n := v.(type) {
		case nil:
			elems[i] = cty.NullVal(cty.Number)
		case int:
			elems[i] = cty.NumberIntVal(int64(n))
		case float64:
			elems[i] = cty.NumberFloatVal(n)
		}
	}
	return cty.TupleVal(elems)
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name      string
		in        Config
		expect    *Config
		expectErr string
	}{
		{
			name:   "defaults",
			in:     Config{UnitSystem: "metric"},
			expect: &Config{UnitSystem: "METRIC", LogFormat: "text", LogLevel: "info"},
		},
		{
			name:   "units file keeps system label",
			in:     Config{UnitSystem: "MyUnits", UnitsPath: "units.hcl", LogFormat: "json", LogLevel: "debug"},
			expect: &Config{UnitSystem: "MyUnits", UnitsPath: "units.hcl", LogFormat: "json", LogLevel: "debug"},
		},
		{
			name:      "missing system",
			in:        Config{},
			expectErr: "UnitSystem is a required configuration field",
		},
		{
			name:      "unknown built-in",
			in:        Config{UnitSystem: "IMPERIAL"},
			expectErr: "unknown unit system",
		},
		{
			name:      "bad log format",
			in:        Config{UnitSystem: "FIELD", LogFormat: "xml"},
			expectErr: "invalid log format",
		},
		{
			name:      "bad log level",
			in:        Config{UnitSystem: "FIELD", LogLevel: "trace"},
			expectErr: "invalid log level",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.in)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expect, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_SingleDimension(t *testing.T) {
	a, logs := SetupAppTest(t, Config{UnitSystem: "FIELD"})

	res, err := a.Normalize(NormalizeRequest{
		Name:       "DEPTH",
		Values:     numbers(1, 10, nil),
		Default:    100,
		Dimensions: []string{"Length"},
	})
	require.NoError(t, err)

	assert.Equal(t, "DEPTH", res.Name)
	assert.Equal(t, "FIELD", res.System)
	assert.Equal(t, []float64{1, 10, 100}, res.Raw)
	assert.InDeltaSlice(t, []float64{0.3048, 3.048, 30.48}, res.Normalized, 1e-9)
	assert.True(t, res.DefaultApplied)
	assert.Equal(t, []string{"Length"}, res.Factors)
	assert.Contains(t, logs.String(), "Item normalized.")
}

func TestNormalize_DefaultDimensionAfterDefault(t *testing.T) {
	a, _ := SetupAppTest(t, Config{UnitSystem: "METRIC"})

	res, err := a.Normalize(NormalizeRequest{
		Name:              "PRESSURE",
		Values:            numbers(nil),
		Default:           1,
		Dimensions:        []string{"1"},
		DefaultDimensions: []string{"Pressure"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1e5}, res.Normalized)
	assert.Equal(t, []string{"Pressure"}, res.Factors)
}

func TestNormalize_CyclingDimensions(t *testing.T) {
	a, logs := SetupAppTest(t, Config{UnitSystem: "METRIC"})

	res, err := a.Normalize(NormalizeRequest{
		Name:       "COORD",
		Values:     numbers(1, 1, 1, 1, 1),
		Dimensions: []string{"Length", "Time"},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 86400, 1, 86400, 1}, res.Normalized)
	assert.Contains(t, logs.String(), "factors will cycle unevenly")
}

func TestNormalize_CompoundDimension(t *testing.T) {
	a, _ := SetupAppTest(t, Config{UnitSystem: "METRIC"})

	res, err := a.Normalize(NormalizeRequest{
		Name:       "RATE",
		Values:     numbers(86400),
		Dimensions: []string{"LiquidSurfaceVolume/Time"},
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1}, res.Normalized, 1e-12)
	assert.True(t, a.Registry().Has("LiquidSurfaceVolume/Time"))
}

func TestNormalize_Errors(t *testing.T) {
	a, _ := SetupAppTest(t, Config{UnitSystem: "METRIC"})

	_, err := a.Normalize(NormalizeRequest{Name: "HEI", Values: numbers(1, 2)})
	require.ErrorIs(t, err, deck.ErrInvalidState)

	_, err = a.Normalize(NormalizeRequest{Name: "HEI", Values: numbers(1), Dimensions: []string{"Furlong"}})
	require.ErrorIs(t, err, units.ErrUnknownDimension)

	_, err = a.Normalize(NormalizeRequest{Name: "HEI", Values: numbers(1), Dimensions: []string{"Length"}, DefaultDimensions: []string{"Furlong"}})
	require.ErrorIs(t, err, units.ErrUnknownDimension)

	_, err = a.Normalize(NormalizeRequest{Name: "HEI", Values: cty.StringVal("abc"), Dimensions: []string{"Length"}})
	require.ErrorIs(t, err, deck.ErrUnsupportedValue)
}

func TestNewApp_UnitsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.hcl")
	src := `
unit_system "YARDS" {
  base = "METRIC"

  dimension "Length" {
    scaling = 0.9144
  }
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))

	a, _ := SetupAppTest(t, Config{UnitSystem: "YARDS", UnitsPath: path})
	require.Equal(t, "YARDS", a.Registry().Name())

	res, err := a.Normalize(NormalizeRequest{Name: "DX", Values: numbers(2), Dimensions: []string{"Length"}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.8288}, res.Normalized, 1e-12)

	// Systems missing from the file fall back to the built-ins.
	b, logs := SetupAppTest(t, Config{UnitSystem: "FIELD", UnitsPath: path})
	assert.Equal(t, "FIELD", b.Registry().Name())
	assert.Contains(t, logs.String(), "trying built-ins")
}

func TestNewApp_UnitsPathErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{UnitSystem: "X", UnitsPath: filepath.Join(dir, "missing.hcl"), LogLevel: "info", LogFormat: "text"}

	_, err := NewApp(context.Background(), &SafeBuffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read units path")

	bad := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte(`unit_system "X" {`), 0600))
	cfg.UnitsPath = bad
	_, err = NewApp(context.Background(), &SafeBuffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestUnits(t *testing.T) {
	a, _ := SetupAppTest(t, Config{UnitSystem: "LAB"})

	dims := a.Units()
	require.NotEmpty(t, dims)
	assert.Equal(t, units.Dimensionless, dims[0].Name)
}

func TestNewApp_UnitsDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0600))
	}
	write("a.hcl", `
unit_system "A" {
  dimension "Length" {
    scaling = 2
  }
}
`)
	write("b.hcl", `
unit_system "B" {
  dimension "Length" {
    scaling = 3
  }
}
`)
	write("README.md", "not a unit file")

	a, _ := SetupAppTest(t, Config{UnitSystem: "B", UnitsPath: dir})
	res, err := a.Normalize(NormalizeRequest{Name: "DX", Values: numbers(1), Dimensions: []string{"Length"}})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, res.Normalized)

	write("c.hcl", `unit_system "A" {}`)
	cfg, err := NewConfig(Config{UnitSystem: "A", UnitsPath: dir})
	require.NoError(t, err)
	_, err = NewApp(context.Background(), &SafeBuffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined in another file")
}
