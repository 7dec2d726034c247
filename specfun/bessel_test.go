package specfun

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphJKnownValues(t *testing.T) {
	cases := []struct {
		n    int
		z    float64
		want float64
	}{
		{0, 1, 0.8414709848078965},
		{1, 1, 0.3011686789397567},
		{10, 2, 6.825300864974725e-08},
		{5, 10, -0.05553451162145219},
	}
	for _, c := range cases {
		assert.InEpsilon(t, c.want, SphJ(c.n, c.z), 1e-12, "j_%d(%g)", c.n, c.z)
	}
}

func TestSphJZeroArgument(t *testing.T) {
	j := SphJArray(3, 0)
	assert.Equal(t, 1.0, j[0])
	assert.Equal(t, 0.0, j[1])
	assert.Equal(t, 0.0, j[3])
}

func TestSphYKnownValues(t *testing.T) {
	assert.InEpsilon(t, -0.5403023058681398, SphY(0, 1), 1e-12)
	assert.InEpsilon(t, -1.48436655744308, SphY(3, 2), 1e-12)
}

func TestSphDerivatives(t *testing.T) {
	assert.InEpsilon(t, 0.0470400026866224, SphJD(2, 3), 1e-12)
	assert.InEpsilon(t, 0.3299974988668152, SphYD(2, 3), 1e-12)
	assert.InEpsilon(t, 0.02057164975416448, SphJPP(3, 2.5), 1e-11)
}

func TestSphHankelWronskian(t *testing.T) {
	// j_n(z) y_n'(z) - j_n'(z) y_n(z) = 1/z^2
	for _, n := range []int{0, 1, 4, 12} {
		z := 3.7
		w := SphJ(n, z)*SphYD(n, z) - SphJD(n, z)*SphY(n, z)
		assert.InEpsilon(t, 1/(z*z), w, 1e-10, "order %d", n)
	}
}

func TestSphH1Composition(t *testing.T) {
	h := SphH1(2, 1.5)
	assert.InEpsilon(t, SphJ(2, 1.5), real(h), 1e-14)
	assert.InEpsilon(t, SphY(2, 1.5), imag(h), 1e-14)

	hd := SphH1D(2, 1.5)
	assert.InDelta(t, SphJD(2, 1.5), real(hd), 1e-12)
	assert.InDelta(t, SphYD(2, 1.5), imag(hd), 1e-12)
}

func TestAssocLegendre(t *testing.T) {
	// P_0..P_3 at x = 0.5
	P := AssocLegendre(0, 3, 0.5)
	require.Len(t, P, 4)
	assert.InDelta(t, 1.0, P[0], 1e-15)
	assert.InDelta(t, 0.5, P[1], 1e-15)
	assert.InDelta(t, -0.125, P[2], 1e-15)
	assert.InDelta(t, -0.4375, P[3], 1e-15)

	// P^1_1(x) = -sqrt(1-x^2) with the Condon-Shortley phase
	P1 := AssocLegendre(1, 2, 0.6)
	assert.InDelta(t, -0.8, P1[0], 1e-15)
	// P^1_2(x) = -3x sqrt(1-x^2)
	assert.InDelta(t, -3*0.6*0.8, P1[1], 1e-14)
}

func TestProlateAngularUnitNorm(t *testing.T) {
	a := NewProlateAngular(0, 1, 1.5)

	assert.InEpsilon(t, 0.41060714004, a.At(0.3), 1e-9)
	assert.InEpsilon(t, 3.31466258966, a.Eigenvalue(), 1e-9)

	// numerical check of the unit norm; the midpoint error is second
	// order, so 4000 panels keep it well under the asserted delta
	const n = 4000
	h := 2.0 / n
	sum := 0.0
	for i := 0; i < n; i++ {
		x := -1 + (float64(i)+0.5)*h
		s := a.At(x)
		sum += s * s * h
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestProlateAngularHigherOrder(t *testing.T) {
	a := NewProlateAngular(2, 5, 4.0)
	assert.InEpsilon(t, -0.157351036617, a.At(0.5), 1e-9)
	assert.InEpsilon(t, 36.9962675008, a.Eigenvalue(), 1e-9)
}

func TestProlateRadialWronskian(t *testing.T) {
	// R1'(xi) R2(xi) - R1(xi) R2'(xi) = -1/(c (xi^2-1))
	cases := []struct {
		m, n int
		c    float64
		xi   float64
	}{
		{0, 0, 11.2, 1.010363},
		{1, 3, 11.2, 1.010363},
		{2, 4, 5.0, 1.2},
		{0, 2, 11.2, 3.0},
		{0, 0, 47.927, 1.010363}, // large c, low n: the hard regime
		{0, 4, 47.927, 1.010363},
		{2, 6, 25.0, 1.001}, // high order: second-kind series tail must stop
	}
	for _, c := range cases {
		r, err := NewProlateRadial(c.m, c.n, c.c, c.xi)
		require.NoError(t, err)
		w := (r.R1d*r.R2 - r.R1*r.R2d) * c.c * (c.xi*c.xi - 1)
		assert.InDelta(t, -1.0, w, 1e-6, "m=%d n=%d c=%g xi=%g", c.m, c.n, c.c, c.xi)
	}
}

func TestProlateRadialSmallCLimit(t *testing.T) {
	// as c -> 0, R1_0n(c, xi) -> j_n(c xi)
	r, err := NewProlateRadial(0, 0, 1e-4, 1.5)
	require.NoError(t, err)
	z := 1e-4 * 1.5
	assert.InEpsilon(t, math.Sin(z)/z, r.R1, 1e-8)
}

func TestProlateRadialRejectsBadDomain(t *testing.T) {
	_, err := NewProlateRadial(0, 0, 5, 0.9)
	assert.Error(t, err)
	_, err = NewProlateRadial(2, 1, 5, 1.5)
	assert.Error(t, err)
}
