package specfun

import "math"

// AssocLegendre returns P^m_m(x)..P^m_nmax(x) with the Condon-Shortley
// phase; index i holds P^m_{m+i}.
func AssocLegendre(m, nmax int, x float64) []float64 {
	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt(math.Max(0, (1-x)*(1+x)))
		fact := 1.0
		for i := 0; i < m; i++ {
			pmm *= -fact * somx2
			fact += 2
		}
	}
	out := make([]float64, 0, nmax-m+1)
	out = append(out, pmm)
	if nmax == m {
		return out
	}
	out = append(out, x*float64(2*m+1)*pmm)
	for n := m + 2; n <= nmax; n++ {
		pnew := (x*float64(2*n-1)*out[len(out)-1] -
			float64(n+m-1)*out[len(out)-2]) / float64(n-m)
		out = append(out, pnew)
	}
	return out
}
