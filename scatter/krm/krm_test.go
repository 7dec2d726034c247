package krm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatgo/scatter"
)

// synthShape builds a sinusoidal-profile shape: n cross-sections from
// x0 over xlen, peak width wmax, surfaces zhalf either side of zmid.
func synthShape(boundary scatter.BoundaryType, n int, x0, xlen, wmax, zmid, zhalf,
	c, rho float64) *Shape {

	s := &Shape{
		Boundary: boundary,
		X:        make([]float64, n),
		W:        make([]float64, n),
		ZU:       make([]float64, n),
		ZL:       make([]float64, n),
		C:        c,
		Rho:      rho,
	}
	for i := 0; i < n; i++ {
		t := math.Sin(math.Pi * float64(i) / float64(n-1))
		s.X[i] = x0 + xlen*float64(i)/float64(n-1)
		s.W[i] = wmax * t
		s.ZU[i] = zmid + zhalf*t
		s.ZL[i] = zmid - zhalf*t
	}
	return s
}

func testBody() *Shape {
	return synthShape(scatter.FluidFilled, 21, 0, 0.15, 0.024, 0, 0.02, 1570, 1070)
}

func testSwimbladder() *Shape {
	return synthShape(scatter.PressureRelease, 11, 0.04, 0.05, 0.008, 0.002, 0.003, 345, 1.24)
}

func krmParams(org *Organism, theta float64) scatter.Params {
	return scatter.Params{
		"medium_c":   1477.4,
		"medium_rho": 1026.8,
		"theta":      theta,
		"f":          38000.0,
		"organism":   org,
	}
}

func TestBodyOnly(t *testing.T) {
	m := New()
	org := &Organism{Name: "body only", Body: testBody()}
	ts, err := m.TSSingle(krmParams(org, 90))
	require.NoError(t, err)
	assert.InDelta(t, -55.1577744978, ts, 1e-6)
}

func TestBodyWithSwimbladder(t *testing.T) {
	m := New()
	org := &Organism{Body: testBody(), Inclusions: []*Shape{testSwimbladder()}}

	ts, err := m.TSSingle(krmParams(org, 90))
	require.NoError(t, err)
	assert.InDelta(t, -38.9645823372, ts, 1e-6)

	ts, err = m.TSSingle(krmParams(org, 80))
	require.NoError(t, err)
	assert.InDelta(t, -42.0473820481, ts, 1e-6)
}

func TestWaterSurroundsInclusion(t *testing.T) {
	m := New()
	org := &Organism{Body: testBody(), Inclusions: []*Shape{testSwimbladder()}}
	p := krmParams(org, 90)
	p["high_ka_medium"] = "water"
	ts, err := m.TSSingle(p)
	require.NoError(t, err)
	assert.InDelta(t, -38.8475889878, ts, 1e-6)
}

func TestFluidInclusion(t *testing.T) {
	m := New()
	gut := synthShape(scatter.FluidFilled, 11, 0.04, 0.05, 0.008, 0.002, 0.003, 1600, 1080)
	org := &Organism{Body: testBody(), Inclusions: []*Shape{gut}}
	ts, err := m.TSSingle(krmParams(org, 90))
	require.NoError(t, err)
	assert.InDelta(t, -55.3712450681, ts, 1e-6)
}

func TestLowKaModeSolution(t *testing.T) {
	m := New()
	tiny := synthShape(scatter.PressureRelease, 11, 0.05, 0.02, 0.0012, 0.001, 0.0006, 345, 1.24)
	require.Less(t, scatter.Wavenumber(1477.4, 38000)*tiny.EquivalentRadius(), lowKaThreshold)

	org := &Organism{Body: testBody(), Inclusions: []*Shape{tiny}}
	ts, err := m.TSSingle(krmParams(org, 90))
	require.NoError(t, err)
	assert.InDelta(t, -55.3273268244, ts, 1e-6)

	p := krmParams(org, 90)
	p["low_ka_medium"] = "water"
	ts, err = m.TSSingle(p)
	require.NoError(t, err)
	assert.InDelta(t, -55.3273252099, ts, 1e-6)
}

func TestThetaOutsideValidRange(t *testing.T) {
	m := New()
	org := &Organism{Body: testBody()}
	_, err := m.TSSingle(krmParams(org, 30))
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "theta", invalid.Name)
}

func TestUnsupportedInclusionBoundary(t *testing.T) {
	m := New()
	bad := testSwimbladder()
	bad.Boundary = scatter.Elastic
	org := &Organism{Body: testBody(), Inclusions: []*Shape{bad}}
	_, err := m.TSSingle(krmParams(org, 90))
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "organism", invalid.Name)
}

func TestMissingOrganism(t *testing.T) {
	m := New()
	p := krmParams(&Organism{Body: testBody()}, 90)
	delete(p, "organism")
	_, err := m.TSSingle(p)
	var missing *scatter.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "organism", missing.Name)
}

func TestShapeGeometry(t *testing.T) {
	sb := testSwimbladder()
	assert.InDelta(t, 0.05, sb.Length(), 1e-12)
	assert.Greater(t, sb.Volume(), 0.0)
	assert.Greater(t, sb.EquivalentRadius(), 0.0)
}
