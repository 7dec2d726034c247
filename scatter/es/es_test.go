package es

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatgo/scatter"
)

func calibrationParams(a, cl, ct, rho float64) scatter.Params {
	return scatter.Params{
		"boundary_type":         "elastic",
		"medium_c":              1477.4,
		"medium_rho":            1026.8,
		"a":                     a,
		"f":                     38000.0,
		"target_longitudinal_c": cl,
		"target_transverse_c":   ct,
		"target_rho":            rho,
	}
}

func TestTungstenCarbideSphere(t *testing.T) {
	m := New()
	ts, err := m.TSSingle(calibrationParams(0.01905, 6853, 4171, 14900))
	require.NoError(t, err)
	assert.InDelta(t, -42.3303203008, ts, 1e-6)
}

func TestCopperSphere(t *testing.T) {
	m := New()
	ts, err := m.TSSingle(calibrationParams(0.030, 4760, 2288.5, 8947))
	require.NoError(t, err)
	assert.InDelta(t, -33.5502158856, ts, 1e-6)
}

func TestMissingParameter(t *testing.T) {
	m := New()
	p := calibrationParams(0.01905, 6853, 4171, 14900)
	delete(p, "target_transverse_c")
	_, err := m.TSSingle(p)
	var missing *scatter.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "target_transverse_c", missing.Name)
}

func TestMissingBoundaryType(t *testing.T) {
	m := New()
	p := calibrationParams(0.01905, 6853, 4171, 14900)
	delete(p, "boundary_type")
	_, err := m.TSSingle(p)
	var missing *scatter.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "boundary_type", missing.Name)
}

func TestUnsupportedBoundaryType(t *testing.T) {
	m := New()
	p := calibrationParams(0.01905, 6853, 4171, 14900)
	p["boundary_type"] = "pressure release"
	_, err := m.TSSingle(p)
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "boundary_type", invalid.Name)
}

func TestNonPositiveRadius(t *testing.T) {
	m := New()
	p := calibrationParams(0.01905, 6853, 4171, 14900)
	p["a"] = -0.01
	_, err := m.TSSingle(p)
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "a", invalid.Name)
}

func TestMetadata(t *testing.T) {
	m := New()
	meta := m.Metadata()
	assert.Equal(t, "es", m.ShortName())
	assert.Contains(t, meta.BoundaryTypes, scatter.Elastic)
	assert.Contains(t, meta.Shapes, "sphere")
}
