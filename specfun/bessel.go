// Package specfun provides the special functions the scattering models
// share: spherical Bessel and Hankel functions with derivatives, and
// prolate spheroidal angular and radial wave functions. Cylindrical
// Bessel functions come from the standard library (math.Jn, math.Yn).
package specfun

import "math"

// SphJArray returns j_0(z)..j_nmax(z) by Miller's downward recurrence,
// normalised against j_0 = sin(z)/z. Stable for all orders including
// n >> z, where upward recurrence loses the minimal solution.
func SphJArray(nmax int, z float64) []float64 {
	if z == 0 {
		out := make([]float64, nmax+1)
		out[0] = 1
		return out
	}
	start := nmax + int(2*math.Sqrt(float64(nmax+1))) + 20 + int(math.Abs(z))
	w := make([]float64, start+2)
	w[start+1] = 0
	w[start] = 1e-30
	for n := start; n > 0; n-- {
		w[n-1] = float64(2*n+1)/z*w[n] - w[n+1]
		if math.Abs(w[n-1]) > 1e250 {
			// rescale the tail before it overflows
			for k := n - 1; k < start+2; k++ {
				w[k] *= 1e-250
			}
		}
	}
	scale := math.Sin(z) / z / w[0]
	out := make([]float64, nmax+1)
	for n := 0; n <= nmax; n++ {
		out[n] = w[n] * scale
	}
	return out
}

func SphJ(n int, z float64) float64 {
	return SphJArray(n, z)[n]
}

// SphYArray returns y_0(z)..y_nmax(z) by upward recurrence, which is
// stable for the second kind.
func SphYArray(nmax int, z float64) []float64 {
	out := make([]float64, nmax+1)
	out[0] = -math.Cos(z) / z
	if nmax == 0 {
		return out
	}
	out[1] = -math.Cos(z)/(z*z) - math.Sin(z)/z
	for n := 1; n < nmax; n++ {
		out[n+1] = float64(2*n+1)/z*out[n] - out[n-1]
	}
	return out
}

func SphY(n int, z float64) float64 {
	return SphYArray(n, z)[n]
}

// SphJD returns the derivative j_n'(z).
func SphJD(n int, z float64) float64 {
	j := SphJArray(n+1, z)
	if n == 0 {
		return -j[1]
	}
	return j[n-1] - float64(n+1)/z*j[n]
}

// SphYD returns the derivative y_n'(z).
func SphYD(n int, z float64) float64 {
	m := n
	if m < 1 {
		m = 1
	}
	y := SphYArray(m+1, z)
	if n == 0 {
		return -y[1]
	}
	return y[n-1] - float64(n+1)/z*y[n]
}

// SphH1 returns the spherical Hankel function of the first kind.
func SphH1(n int, z float64) complex128 {
	return complex(SphJ(n, z), SphY(n, z))
}

// SphH1D returns the derivative of the spherical Hankel function of the
// first kind.
func SphH1D(n int, z float64) complex128 {
	return -SphH1(n+1, z) + complex(float64(n)/z, 0)*SphH1(n, z)
}

// SphJPP returns the second derivative j_n''(z) via the defining ODE.
func SphJPP(n int, z float64) float64 {
	fn := float64(n)
	return ((fn*fn-fn-z*z)*SphJ(n, z) + 2*z*SphJ(n+1, z)) / (z * z)
}
