// Package psms implements the prolate spheroidal modal series solution
// of Furusawa (1988) for prolate spheroids, with the fluid-filled
// formulation of Gonzalez et al. (2016). The double sum over angular
// order m and degree n truncates adaptively: each parity class of n - m
// stops once its terms stay negligible for a sustained run, and the m
// loop stops once the cumulative TS settles.
package psms

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"

	"scatgo/scatter"
	"scatgo/specfun"
)

const (
	// a term is negligible when it sits this far below the running sum
	termTolDB = -50
	// terms must stay negligible for this many consecutive degrees,
	// so a transient dip is not mistaken for convergence
	termRun = 20
	// the m loop stops when successive TS estimates agree this closely
	mTolDB = 0.01
	// hard ceiling on n - m per order
	degreeCap = 100
)

type radialKey struct {
	m, n  int
	c, xi float64
}

type angularKey struct {
	m, n int
	c    float64
}

type Model struct {
	meta scatter.Metadata

	mu      sync.RWMutex
	radial  map[radialKey]*specfun.ProlateRadial
	angular map[angularKey]*specfun.ProlateAngular
}

func New() *Model {
	return &Model{
		meta: scatter.Metadata{
			LongName:       "prolate spheroidal modal series",
			ShortName:      "psms",
			AnalyticalType: "exact",
			BoundaryTypes: []scatter.BoundaryType{
				scatter.FixedRigid, scatter.PressureRelease, scatter.FluidFilled,
			},
			Shapes: []string{"prolate spheroid"},
			MaxKa:  10,
		},
		radial:  map[radialKey]*specfun.ProlateRadial{},
		angular: map[angularKey]*specfun.ProlateAngular{},
	}
}

func (m *Model) Name() string               { return m.meta.LongName }
func (m *Model) ShortName() string          { return m.meta.ShortName }
func (m *Model) Metadata() scatter.Metadata { return m.meta }

// radialFns returns the cached radial functions for one (order, degree,
// size parameter, coordinate) combination. These dominate the model's
// run time, so results are shared across calls.
func (m *Model) radialFns(order, degree int, c, xi float64) (*specfun.ProlateRadial, error) {
	key := radialKey{order, degree, c, xi}
	m.mu.RLock()
	r, ok := m.radial[key]
	m.mu.RUnlock()
	if ok {
		return r, nil
	}
	r, err := specfun.NewProlateRadial(order, degree, c, xi)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.radial[key] = r
	m.mu.Unlock()
	return r, nil
}

func (m *Model) angularFn(order, degree int, c float64) *specfun.ProlateAngular {
	key := angularKey{order, degree, c}
	m.mu.RLock()
	a, ok := m.angular[key]
	m.mu.RUnlock()
	if ok {
		return a
	}
	a = specfun.NewProlateAngular(order, degree, c)
	m.mu.Lock()
	m.angular[key] = a
	m.mu.Unlock()
	return a
}

func (m *Model) Validate(p scatter.Params) error {
	if err := scatter.RequirePositive(p, "medium_c", "medium_rho", "a", "b", "f"); err != nil {
		return err
	}
	a, _ := p.Float("a")
	b, _ := p.Float("b")
	if b >= a {
		return &scatter.InvalidValueError{Name: "b", Value: b,
			Reason: "minor axis must be smaller than major axis"}
	}
	if _, err := scatter.RequireAngle(p, "theta", 0, 180); err != nil {
		return err
	}
	bt, err := scatter.RequireBoundary(p, m.meta.BoundaryTypes)
	if err != nil {
		return err
	}
	switch bt {
	case scatter.FixedRigid:
		return &scatter.NotImplementedError{Model: m.meta.ShortName,
			Feature: "fixed rigid boundary"}
	case scatter.FluidFilled:
		return scatter.RequirePositive(p, "target_c", "target_rho")
	}
	return nil
}

func (m *Model) TSSingle(p scatter.Params) (float64, error) {
	if err := m.Validate(p); err != nil {
		return 0, err
	}

	mediumC, _ := p.Float("medium_c")
	mediumRho, _ := p.Float("medium_rho")
	a, _ := p.Float("a")
	b, _ := p.Float("b")
	theta, _ := p.Float("theta")
	f, _ := p.Float("f")
	bt, _ := p.Boundary()

	xim := 1 / math.Sqrt(1-(b/a)*(b/a))
	q := a / xim // semi-focal length
	km := scatter.Wavenumber(mediumC, f)
	hm := km * q

	// roll is fixed; backscatter geometry
	thInc := theta * math.Pi / 180
	thSca := math.Pi - thInc
	etaInc := math.Cos(thInc)
	etaSca := math.Cos(thSca)

	var g, ht float64
	if bt == scatter.FluidFilled {
		targetC, _ := p.Float("target_c")
		targetRho, _ := p.Float("target_rho")
		g = targetRho / mediumRho
		ht = scatter.Wavenumber(targetC, f) * q
	}

	mCap := int(math.Ceil(2*km*b)) + 20
	// Furusawa (1988) truncation for the fluid-filled linear system;
	// shared by every order, and the outer loop cannot exceed it
	nMaxFluid := int(math.Ceil(2*km*b)) + int(math.Ceil(hm/2))
	if bt == scatter.FluidFilled {
		mCap = nMaxFluid
	}

	fSca := complex(0, 0)
	ts := math.Inf(-1)
	havePrev := false
	for order := 0; order <= mCap; order++ {
		em := scatter.Neumann(order)
		// phi_sca - phi_inc is pi for backscatter
		cosTerm := math.Cos(float64(order) * math.Pi)

		var err error
		if bt == scatter.FluidFilled {
			fSca, err = m.addFluidOrder(fSca, order, nMaxFluid, hm, ht, xim, g, etaInc, etaSca, em, cosTerm)
		} else {
			fSca, err = m.addSoftOrder(fSca, order, hm, xim, etaInc, etaSca, em, cosTerm, termTolDB, termRun)
		}
		if err != nil {
			return 0, err
		}

		next := 20 * math.Log10(cmplx.Abs(complex(0, -2/km)*fSca))
		if havePrev && math.Abs(next-ts) < mTolDB {
			ts = next
			break
		}
		ts = next
		havePrev = true
	}
	return ts, nil
}

// addSoftOrder accumulates the pressure-release series for one angular
// order. The even and odd parity classes of n - m converge at different
// rates (at broadside the odd class vanishes identically), so each is
// tracked separately and stops after run consecutive terms below tolDB.
func (m *Model) addSoftOrder(fSca complex128, order int, hm, xim,
	etaInc, etaSca, em, cosTerm float64, tolDB float64, run int) (complex128, error) {

	var below [2]int
	for n := order; n-order <= degreeCap; n++ {
		if below[0] >= run && below[1] >= run {
			break
		}
		ang := m.angularFn(order, n, hm)
		rad, err := m.radialFns(order, n, hm, xim)
		if err != nil {
			return fSca, err
		}
		amn := complex(-rad.R1, 0) / complex(rad.R1, rad.R2)
		term := complex(em*ang.At(etaInc)*ang.At(etaSca)*cosTerm, 0) * amn
		fSca += term

		par := (n - order) % 2
		if mag, sum := cmplx.Abs(term), cmplx.Abs(fSca); mag == 0 ||
			(sum > 0 && 20*math.Log10(mag/sum) < tolDB) {
			below[par]++
		} else {
			below[par] = 0
		}
	}
	return fSca, nil
}

// addFluidOrder accumulates one angular order of the fluid-filled
// series. The modal coefficients come from the boundary-condition
// linear system of Gonzalez et al. (2016), kept at the truncation of
// Furusawa (1988): enlarging the system makes it ill-conditioned and
// degrades the solution rather than refining it.
func (m *Model) addFluidOrder(fSca complex128, order, nMax int, hm, ht, xim, g,
	etaInc, etaSca, em, cosTerm float64) (complex128, error) {

	amn, err := m.fluidCoefficients(order, nMax, hm, ht, xim, g, etaInc)
	if err != nil {
		return fSca, err
	}
	for i, n := 0, order; n <= nMax; i, n = i+1, n+1 {
		ang := m.angularFn(order, n, hm)
		fSca += complex(em*ang.At(etaInc)*ang.At(etaSca)*cosTerm, 0) * amn[i]
	}
	return fSca, nil
}

// fluidCoefficients solves Q A = f for the modal coefficients of one
// angular order, eqns 5-8 of Gonzalez et al. (2016). The complex system
// is solved as its equivalent 2N x 2N real block system via QR.
func (m *Model) fluidCoefficients(order, nMax int, hm, ht, xim, g,
	etaInc float64) ([]complex128, error) {

	dim := nMax + 1 - order
	q := make([][]complex128, dim)
	for i := range q {
		q[i] = make([]complex128, dim)
	}
	rhs := make([]complex128, dim)

	for ell := order; ell <= nMax; ell++ {
		angT := m.angularFn(order, ell, ht)
		radT, err := m.radialFns(order, ell, ht, xim)
		if err != nil {
			return nil, err
		}
		for n := order; n <= nMax; n++ {
			angW := m.angularFn(order, n, hm)
			sInc := angW.At(etaInc)
			if sInc == 0 {
				continue
			}
			radW, err := m.radialFns(order, n, hm, xim)
			if err != nil {
				return nil, err
			}

			r3 := complex(radW.R1, radW.R2)
			dr3 := complex(radW.R1d, radW.R2d)
			ratio := complex(g*radT.R1/radT.R1d, 0)
			e1 := complex(radW.R1, 0) - ratio*complex(radW.R1d, 0)
			e3 := r3 - ratio*dr3

			alpha := quad.Fixed(func(eta float64) float64 {
				return angW.At(eta) * angT.At(eta)
			}, -1, 1, 64, quad.Legendre{}, 0)

			ipow := cmplx.Pow(complex(0, 1), complex(float64(n), 0))
			q[ell-order][n-order] = ipow * complex(alpha*sInc, 0) * -e3
			rhs[ell-order] += ipow * complex(alpha*sInc, 0) * e1
		}
	}
	return solveComplex(q, rhs)
}

// solveComplex solves the dense complex system through the real block
// form [[Re -Im] [Im Re]].
func solveComplex(a [][]complex128, b []complex128) ([]complex128, error) {
	n := len(b)
	blk := mat.NewDense(2*n, 2*n, nil)
	rhs := mat.NewVecDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			blk.Set(i, j, real(a[i][j]))
			blk.Set(i, n+j, -imag(a[i][j]))
			blk.Set(n+i, j, imag(a[i][j]))
			blk.Set(n+i, n+j, real(a[i][j]))
		}
		rhs.SetVec(i, real(b[i]))
		rhs.SetVec(n+i, imag(b[i]))
	}

	var qr mat.QR
	qr.Factorize(blk)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, rhs); err != nil {
		// a Condition error still carries a valid solution
		if _, ok := err.(mat.Condition); !ok {
			return nil, err
		}
	}

	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(sol.AtVec(i), sol.AtVec(n+i))
	}
	return out, nil
}
