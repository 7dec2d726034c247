package specfun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProlateAngularEigenvalues(t *testing.T) {
	cases := []struct {
		m, n int
		c    float64
		lam  float64
	}{
		{0, 0, 1.0, 0.3190000551},
		{0, 1, 1.0, 2.5930845800},
		{1, 1, 3.0, 3.5047958676},
		{2, 5, 10.0, 69.3030762388},
	}
	for _, tc := range cases {
		a := NewProlateAngular(tc.m, tc.n, tc.c)
		assert.InDelta(t, tc.lam, a.Eigenvalue(), 1e-8,
			"lambda_%d%d(c=%g)", tc.m, tc.n, tc.c)
	}
}

func TestProlateAngularValues(t *testing.T) {
	cases := []struct {
		m, n     int
		c, eta   float64
		expected float64
	}{
		{0, 0, 1.0, 0.3, 0.7340967581},
		{0, 1, 1.0, 0.3, 0.3863813723},
		{1, 1, 3.0, 0.3, -0.8800228692},
		{2, 5, 10.0, 0.3, -0.5739237272},
	}
	for _, tc := range cases {
		a := NewProlateAngular(tc.m, tc.n, tc.c)
		assert.InDelta(t, tc.expected, a.At(tc.eta), 1e-8)
	}
}

func TestProlateAngularParity(t *testing.T) {
	// S_mn is even in eta when n - m is even, odd otherwise
	even := NewProlateAngular(0, 2, 2.0)
	assert.InDelta(t, even.At(0.4), even.At(-0.4), 1e-12)

	odd := NewProlateAngular(0, 3, 2.0)
	assert.InDelta(t, odd.At(0.4), -odd.At(-0.4), 1e-12)
	assert.InDelta(t, 0, odd.At(0), 1e-12)
}
