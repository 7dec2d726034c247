// Package mss implements the modal series solution for spheres: an exact
// sum over spherical Bessel/Hankel mode coefficients, branching on the
// boundary condition at the sphere surface.
package mss

import (
	"math"
	"math/cmplx"

	"scatgo/scatter"
	"scatgo/specfun"
)

type Model struct {
	meta scatter.Metadata
}

func New() *Model {
	return &Model{
		meta: scatter.Metadata{
			LongName:       "modal series solution",
			ShortName:      "mss",
			AnalyticalType: "exact",
			BoundaryTypes: []scatter.BoundaryType{
				scatter.FixedRigid,
				scatter.PressureRelease,
				scatter.FluidFilled,
				scatter.FluidShellFluidInterior,
				scatter.FluidShellPressureReleaseInterior,
			},
			Shapes: []string{"sphere"},
			MaxKa:  20,
		},
	}
}

func (m *Model) Name() string               { return m.meta.LongName }
func (m *Model) ShortName() string          { return m.meta.ShortName }
func (m *Model) Metadata() scatter.Metadata { return m.meta }

func (m *Model) Validate(p scatter.Params) error {
	b, err := scatter.RequireBoundary(p, m.meta.BoundaryTypes)
	if err != nil {
		return err
	}
	if err := scatter.RequirePositive(p, "medium_c", "medium_rho", "a", "f"); err != nil {
		return err
	}
	switch b {
	case scatter.FluidFilled:
		return scatter.RequirePositive(p, "target_c", "target_rho")
	case scatter.FluidShellFluidInterior:
		return scatter.RequirePositive(p, "target_c", "target_rho",
			"shell_c", "shell_rho", "shell_thickness")
	case scatter.FluidShellPressureReleaseInterior:
		return scatter.RequirePositive(p, "shell_c", "shell_rho", "shell_thickness")
	}
	return nil
}

// TSSingle evaluates the modal series truncated at round(ka)+20 modes, a
// fixed heuristic that holds well past convergence for ka up to several
// hundred.
func (m *Model) TSSingle(p scatter.Params) (float64, error) {
	if err := m.Validate(p); err != nil {
		return 0, err
	}
	b, _ := p.Boundary()

	mediumC, _ := p.Float("medium_c")
	mediumRho, _ := p.Float("medium_rho")
	a, _ := p.Float("a")
	f, _ := p.Float("f")

	k0 := scatter.Wavenumber(mediumC, f)
	ka := k0 * a
	nMax := int(math.Round(ka + 20))

	A := make([]complex128, nMax)
	switch b {
	case scatter.FixedRigid:
		for n := 0; n < nMax; n++ {
			A[n] = -complex(specfun.SphJD(n, ka), 0) / specfun.SphH1D(n, ka)
		}
	case scatter.PressureRelease:
		for n := 0; n < nMax; n++ {
			A[n] = -complex(specfun.SphJ(n, ka), 0) / specfun.SphH1(n, ka)
		}
	case scatter.FluidFilled:
		targetC, _ := p.Float("target_c")
		targetRho, _ := p.Float("target_rho")
		k1a := scatter.Wavenumber(targetC, f) * a
		gh := targetRho / mediumRho * targetC / mediumC
		for n := 0; n < nMax; n++ {
			cn := (specfun.SphJD(n, k1a)*specfun.SphY(n, ka)/(specfun.SphJ(n, k1a)*specfun.SphJD(n, ka)) -
				gh*specfun.SphYD(n, ka)/specfun.SphJD(n, ka)) /
				(specfun.SphJD(n, k1a)*specfun.SphJ(n, ka)/(specfun.SphJ(n, k1a)*specfun.SphJD(n, ka)) - gh)
			A[n] = -1 / (1 + complex(0, cn))
		}
	case scatter.FluidShellFluidInterior, scatter.FluidShellPressureReleaseInterior:
		return 0, &scatter.NotImplementedError{
			Model:   m.meta.LongName,
			Feature: "boundary type " + b.String(),
		}
	}

	fbs := complex(0, 0)
	sign := 1.0
	for n := 0; n < nMax; n++ {
		fbs += complex(sign*float64(2*n+1), 0) * A[n]
		sign = -sign
	}
	fbs *= complex(0, -1/k0)

	return 20 * math.Log10(cmplx.Abs(fbs)), nil
}
