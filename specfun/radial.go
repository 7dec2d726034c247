package specfun

import (
	"fmt"
	"math"
	"math/big"
)

// ProlateRadial holds the prolate spheroidal radial functions of the
// first and second kind with their xi derivatives at a single point.
//
// The Flammer spherical-Bessel expansions lose roughly 0.4*c decimal
// digits to cancellation for low degrees (the n = 0 joining factor at
// c ~ 48 is ~1e-17 of its term magnitudes), so the eigenproblem and the
// series are evaluated in extended precision and rounded at the end. The
// second-kind series converges too slowly near xi = 1 (its tail decays
// only like xi^-2k), so it is anchored at xi0 = max(2, xi) and carried
// inward by integrating the radial ODE, where the second kind is the
// growing, numerically stable solution.
type ProlateRadial struct {
	R1, R1d float64
	R2, R2d float64
	Lam     float64
}

// NewProlateRadial evaluates the radial pair for order m, degree n, size
// parameter c at radial coordinate xi > 1.
func NewProlateRadial(m, n int, c, xi float64) (*ProlateRadial, error) {
	if xi <= 1 {
		return nil, fmt.Errorf("prolate radial functions need xi > 1, got %v", xi)
	}
	if m < 0 || n < m {
		return nil, fmt.Errorf("prolate radial functions need 0 <= m <= n, got m=%d n=%d", m, n)
	}

	ctx := bigCtx{prec: uint(128 + 4*int(c))}
	rs, d, lam := hpCoeffs(ctx, m, n, c)

	// factorial ratio weights (2m+r)!/r!, exact integers
	w := make([]*big.Float, len(rs))
	for j, r := range rs {
		fr := ctx.i(1)
		for q := r + 1; q <= 2*m+r; q++ {
			fr = ctx.mul(fr, ctx.i(int64(q)))
		}
		w[j] = fr
	}
	F := ctx.i(0)
	for j := range rs {
		F = ctx.add(F, ctx.mul(w[j], d[j]))
	}

	cb := ctx.f(c)
	nmax := m + rs[len(rs)-1] + 1
	xi0 := math.Max(2, xi)

	out := &ProlateRadial{}
	lamF, _ := lam.Float64()
	out.Lam = lamF

	for kind := 0; kind < 2; kind++ {
		var B []*big.Float
		var zz *big.Float
		var xe float64
		if kind == 0 {
			xe = xi
			zz = ctx.mul(cb, ctx.f(xi))
			B = ctx.sphJBig(nmax, zz)
		} else {
			xe = xi0
			zz = ctx.mul(cb, ctx.f(xi0))
			B = ctx.sphYBig(nmax, zz)
		}

		s := ctx.i(0)
		sd := ctx.i(0)
		// beyond the Bessel turning point l > c*xe the eigenvector tail
		// of the truncated eigenproblem is contamination rather than the
		// minimal solution, and the second-kind values grow fast enough
		// in order to amplify it without bound. Terms there must keep
		// shrinking; once they stall or turn negligible the series is done.
		zf, _ := zz.Float64()
		turn := int(zf)
		prevExp := 0
		havePrev := false
		grew := 0
		for j, r := range rs {
			// i^(r+m-n): the exponent is always even
			ww := ctx.mul(w[j], d[j])
			if mod := ((r+m-n)%4 + 4) % 4; mod == 2 {
				ww = ctx.new().Neg(ww)
			}
			l := m + r
			term := ctx.mul(ww, B[l])
			if l > turn && term.Sign() != 0 && s.Sign() != 0 {
				exp := term.MantExp(nil)
				if exp <= s.MantExp(nil)-int(ctx.prec) {
					break
				}
				if havePrev && exp > prevExp {
					grew++
					if grew >= 2 {
						break
					}
				} else {
					grew = 0
				}
				prevExp = exp
				havePrev = true
			}
			s = ctx.add(s, term)
			var bd *big.Float
			if l == 0 {
				bd = ctx.new().Neg(B[1])
			} else {
				bd = ctx.sub(B[l-1], ctx.mul(ctx.quo(ctx.i(int64(l+1)), zz), B[l]))
			}
			sd = ctx.add(sd, ctx.mul(ww, ctx.mul(cb, bd)))
		}

		xb := ctx.f(xe)
		u := ctx.sub(ctx.i(1), ctx.quo(ctx.i(1), ctx.mul(xb, xb)))
		um := ctx.i(1)
		for q := 0; q < m; q++ {
			um = ctx.mul(um, u)
		}
		A := ctx.sqrt(um)
		Ad := ctx.i(0)
		if m > 0 {
			x3 := ctx.mul(xb, ctx.mul(xb, xb))
			Ad = ctx.quo(ctx.mul(ctx.i(int64(m)), A), ctx.mul(u, x3))
		}

		R, _ := ctx.quo(ctx.mul(A, s), F).Float64()
		Rd, _ := ctx.quo(ctx.add(ctx.mul(Ad, s), ctx.mul(A, sd)), F).Float64()

		if kind == 0 {
			out.R1, out.R1d = R, Rd
		} else if xi0 <= xi {
			out.R2, out.R2d = R, Rd
		} else {
			out.R2, out.R2d = integrateRadialIn(m, lamF, c, xi0, xi, R, Rd)
		}
	}
	return out, nil
}

// hpCoeffs solves the spheroidal eigenproblem at the context precision,
// bracketing the eigenvalue with the float64 solution and refining it by
// Sturm bisection, then recovering the eigenvector by inverse iteration.
func hpCoeffs(ctx bigCtx, m, n int, c float64) (rs []int, d []*big.Float, lam *big.Float) {
	nr := coeffCount(c)
	p := (n - m) % 2
	c2 := ctx.mul(ctx.f(c), ctx.f(c))

	rs = make([]int, nr)
	for j := range rs {
		rs[j] = p + 2*j
	}

	alphaBig := func(r int) *big.Float {
		return ctx.quo(ctx.mul(ctx.i(int64((2*m+r+2)*(2*m+r+1))), c2),
			ctx.i(int64((2*m+2*r+5)*(2*m+2*r+3))))
	}
	gammaBig := func(r int) *big.Float {
		return ctx.quo(ctx.mul(ctx.i(int64(r*(r-1))), c2),
			ctx.i(int64((2*m+2*r-3)*(2*m+2*r-1))))
	}

	D := make([]*big.Float, nr)
	E := make([]*big.Float, nr-1)
	for j := 0; j < nr; j++ {
		l := m + rs[j]
		D[j] = ctx.add(ctx.i(int64(l*(l+1))),
			ctx.quo(ctx.mul(c2, ctx.i(int64(2*l*(l+1)-2*m*m-1))),
				ctx.i(int64((2*l+3)*(2*l-1)))))
		if j < nr-1 {
			E[j] = ctx.sqrt(ctx.mul(alphaBig(rs[j]), gammaBig(rs[j+1])))
		}
	}

	tiny := ctx.new().SetMantExp(ctx.i(1), -2*int(ctx.prec))
	sturm := func(x *big.Float) int {
		cnt := 0
		q := ctx.sub(D[0], x)
		if q.Sign() < 0 {
			cnt++
		}
		for i := 1; i < nr; i++ {
			if q.Sign() == 0 {
				q = ctx.new().Set(tiny)
			}
			q = ctx.sub(ctx.sub(D[i], x), ctx.quo(ctx.mul(E[i-1], E[i-1]), q))
			if q.Sign() < 0 {
				cnt++
			}
		}
		return cnt
	}

	k := (n - m) / 2
	_, _, lam0 := spheroidalCoeffs(m, n, c)
	w := math.Max(1, math.Abs(lam0)) * 1e-8
	lo := ctx.f(lam0 - w)
	hi := ctx.f(lam0 + w)
	for sturm(lo) > k {
		lo = ctx.sub(lo, ctx.f(w))
		w *= 2
	}
	for sturm(hi) <= k {
		hi = ctx.add(hi, ctx.f(w))
		w *= 2
	}

	scale := ctx.new().Abs(hi)
	if scale.Cmp(ctx.i(1)) < 0 {
		scale = ctx.i(1)
	}
	target := ctx.mul(scale, ctx.new().SetMantExp(ctx.i(1), -int(ctx.prec)+16))
	for ctx.sub(hi, lo).Cmp(target) > 0 {
		mid := ctx.quo(ctx.add(lo, hi), ctx.i(2))
		if sturm(mid) <= k {
			lo = mid
		} else {
			hi = mid
		}
	}
	lam = ctx.quo(ctx.add(lo, hi), ctx.i(2))

	// inverse iteration at a slightly off-eigenvalue shift
	shift := ctx.add(lam, ctx.mul(scale, ctx.new().SetMantExp(ctx.i(1), -int(ctx.prec)+48)))
	v := make([]*big.Float, nr)
	for j := range v {
		v[j] = ctx.i(1)
	}
	for pass := 0; pass < 3; pass++ {
		v = triSolveBig(ctx, D, E, shift, v, tiny)
		ss := ctx.i(0)
		for _, t := range v {
			ss = ctx.add(ss, ctx.mul(t, t))
		}
		norm := ctx.sqrt(ss)
		for j := range v {
			v[j] = ctx.quo(v[j], norm)
		}
	}

	d = make([]*big.Float, nr)
	d[0] = v[0]
	t := ctx.i(1)
	for j := 0; j < nr-1; j++ {
		t = ctx.mul(t, ctx.sqrt(ctx.quo(gammaBig(rs[j+1]), alphaBig(rs[j]))))
		d[j+1] = ctx.mul(t, v[j+1])
	}
	if d[k].Sign() < 0 {
		for j := range d {
			d[j] = ctx.new().Neg(d[j])
		}
	}
	return rs, d, lam
}

func triSolveBig(ctx bigCtx, D, E []*big.Float, lam *big.Float, b []*big.Float, tiny *big.Float) []*big.Float {
	nr := len(D)
	a := make([]*big.Float, nr)
	e := make([]*big.Float, nr-1)
	rhs := make([]*big.Float, nr)
	for i := 0; i < nr; i++ {
		a[i] = ctx.sub(D[i], lam)
		rhs[i] = ctx.new().Set(b[i])
		if i < nr-1 {
			e[i] = ctx.new().Set(E[i])
		}
	}
	for i := 0; i < nr-1; i++ {
		if a[i].Sign() == 0 {
			a[i] = ctx.new().Set(tiny)
		}
		f := ctx.quo(e[i], a[i])
		a[i+1] = ctx.sub(a[i+1], ctx.mul(f, e[i]))
		rhs[i+1] = ctx.sub(rhs[i+1], ctx.mul(f, rhs[i]))
	}
	if a[nr-1].Sign() == 0 {
		a[nr-1] = ctx.new().Set(tiny)
	}
	x := make([]*big.Float, nr)
	x[nr-1] = ctx.quo(rhs[nr-1], a[nr-1])
	for i := nr - 2; i >= 0; i-- {
		x[i] = ctx.quo(ctx.sub(rhs[i], ctx.mul(e[i], x[i+1])), a[i])
	}
	return x
}

// integrateRadialIn carries the second-kind function from xi0 down to xi
// with classical RK4 on the radial ODE
// (xi^2-1) R'' + 2 xi R' - (lam - c^2 xi^2 + m^2/(xi^2-1)) R = 0.
func integrateRadialIn(m int, lam, c, xi0, xi, r, rd float64) (float64, float64) {
	m2 := float64(m * m)
	acc := func(x, r, rd float64) float64 {
		return ((lam-c*c*x*x+m2/(x*x-1))*r - 2*x*rd) / (x*x - 1)
	}
	const nstep = 20000
	h := (xi - xi0) / nstep
	x := xi0
	for i := 0; i < nstep; i++ {
		k1r, k1v := rd, acc(x, r, rd)
		k2r, k2v := rd+h/2*k1v, acc(x+h/2, r+h/2*k1r, rd+h/2*k1v)
		k3r, k3v := rd+h/2*k2v, acc(x+h/2, r+h/2*k2r, rd+h/2*k2v)
		k4r, k4v := rd+h*k3v, acc(x+h, r+h*k3r, rd+h*k3v)
		r += h / 6 * (k1r + 2*k2r + 2*k3r + k4r)
		rd += h / 6 * (k1v + 2*k2v + 2*k3v + k4v)
		x += h
	}
	return r, rd
}
