// Package krm implements the Kirchhoff ray-mode model of Clay & Horne
// (1994) for fish-like bodies with internal inclusions. Inclusions whose
// equivalent ka falls below a threshold switch from the Kirchhoff
// approximation to the low-ka mode solution of Clay (1992).
package krm

import (
	"fmt"
	"math"
	"math/cmplx"

	"scatgo/scatter"
)

// Below this equivalent ka the Kirchhoff approximation breaks down for
// an inclusion and the mode solution takes over.
const lowKaThreshold = 0.15

type Model struct {
	meta scatter.Metadata
}

func New() *Model {
	return &Model{
		meta: scatter.Metadata{
			LongName:       "Kirchhoff ray mode",
			ShortName:      "krm",
			AnalyticalType: "approximate",
			BoundaryTypes:  []scatter.BoundaryType{scatter.FluidFilled},
			Shapes:         []string{"closed surfaces"},
			MaxKa:          20,
			NoExpand:       []string{"organism"},
		},
	}
}

func (m *Model) Name() string               { return m.meta.LongName }
func (m *Model) ShortName() string          { return m.meta.ShortName }
func (m *Model) Metadata() scatter.Metadata { return m.meta }

func organismParam(p scatter.Params) (*Organism, error) {
	v, ok := p.Any("organism")
	if !ok {
		return nil, &scatter.MissingParameterError{Name: "organism"}
	}
	org, ok := v.(*Organism)
	if !ok {
		return nil, &scatter.InvalidValueError{Name: "organism", Value: v,
			Reason: "not a body-and-inclusions organism"}
	}
	return org, nil
}

func validShape(s *Shape) error {
	n := len(s.X)
	if n < 2 {
		return &scatter.InvalidValueError{Name: "organism", Value: n,
			Reason: "shape needs at least two cross-sections"}
	}
	if len(s.W) != n || len(s.ZU) != n || len(s.ZL) != n {
		return &scatter.InvalidValueError{Name: "organism", Value: n,
			Reason: "shape profile arrays differ in length"}
	}
	if s.C <= 0 || s.Rho <= 0 {
		return &scatter.InvalidValueError{Name: "organism", Value: s.C,
			Reason: "shape sound speed and density must be > 0"}
	}
	return nil
}

func (m *Model) Validate(p scatter.Params) error {
	if err := scatter.RequirePositive(p, "medium_c", "medium_rho", "f"); err != nil {
		return err
	}
	// the Kirchhoff approximation is only useful near broadside
	if _, err := scatter.RequireAngle(p, "theta", 65, 115); err != nil {
		return err
	}
	org, err := organismParam(p)
	if err != nil {
		return err
	}
	if org.Body == nil {
		return &scatter.InvalidValueError{Name: "organism", Value: nil,
			Reason: "organism has no body shape"}
	}
	if err := validShape(org.Body); err != nil {
		return err
	}
	for i, incl := range org.Inclusions {
		if err := validShape(incl); err != nil {
			return err
		}
		switch incl.Boundary {
		case scatter.PressureRelease, scatter.FluidFilled:
		default:
			return &scatter.InvalidValueError{Name: "organism",
				Value: incl.Boundary.String(),
				Reason: fmt.Sprintf("inclusion %d boundary unsupported", i)}
		}
	}
	return nil
}

// v is the coordinate of x rotated into the incidence frame.
func vCoord(x, z, theta float64) float64 {
	return x*math.Cos(theta) + z*math.Sin(theta)
}

// modeSolution is the Clay (1992) low-ka solution for a small gas-like
// inclusion, with the m=0 modal coefficient and the approximate phase
// term chi = -pi/4.
func modeSolution(g, h, k, a, length, theta float64) complex128 {
	chi := -math.Pi / 4
	ka := k * a
	kca := ka / h
	// J0' = -J1, Y0' = -Y1
	c0 := (-math.J1(kca)*math.Y0(ka) + g*h*math.Y1(ka)*math.J0(kca)) /
		(-math.J1(kca)*math.J0(ka) + g*h*math.J1(ka)*math.J0(kca))
	b0 := -1 / (1 + complex(0, c0))
	delta := k * length * math.Cos(theta)
	return cmplx.Exp(complex(0, chi-math.Pi/4)) *
		complex(length/math.Pi*math.Sin(delta)/delta, 0) * b0
}

// softKA is the Kirchhoff sum for a pressure-release inclusion, with
// the empirical amplitude and phase corrections of Clay & Horne (1994).
func softKA(s *Shape, k, kb, rBC, twbTbw, theta float64) complex128 {
	sum := complex(0, 0)
	for i := 0; i < len(s.X)-1; i++ {
		a := (s.W[i] + s.W[i+1]) / 4
		kas := k * a
		amp := kas / (kas + 0.083)
		psi := kas/(40+kas) - 1.05
		vU := (vCoord(s.X[i], s.ZU[i], theta) + vCoord(s.X[i+1], s.ZU[i+1], theta)) / 2
		du := (s.X[i+1] - s.X[i]) * math.Sin(theta)
		sum += complex(amp*math.Sqrt((kb*a+1)*math.Sin(theta))*du, 0) *
			cmplx.Exp(complex(0, -(2*kb*vU + psi)))
	}
	return complex(0, -rBC*twbTbw/(2*math.Sqrt(math.Pi))) * sum
}

// fluidKA is the Kirchhoff sum for a fluid shape: the coherent pair of
// reflections from the upper surface and, attenuated by two-way
// transmission, the lower surface.
func fluidKA(s *Shape, k, kb, rWB, twbTbw, theta float64) complex128 {
	sum := complex(0, 0)
	for i := 0; i < len(s.X)-1; i++ {
		a := (s.W[i] + s.W[i+1]) / 4
		zU := (s.ZU[i] + s.ZU[i+1]) / 2
		psi := -math.Pi * kb * zU / (2 * (kb*zU + 0.4))
		vU := (vCoord(s.X[i], s.ZU[i], theta) + vCoord(s.X[i+1], s.ZU[i+1], theta)) / 2
		vL := (vCoord(s.X[i], s.ZL[i], theta) + vCoord(s.X[i+1], s.ZL[i+1], theta)) / 2
		du := (s.X[i+1] - s.X[i]) * math.Sin(theta)
		sum += complex(math.Sqrt(k*a)*du, 0) *
			(cmplx.Exp(complex(0, -2*k*vU)) -
				complex(twbTbw, 0)*cmplx.Exp(complex(0, -2*k*vU+2*kb*(vU-vL)+psi)))
	}
	return complex(0, -rWB/(2*math.Sqrt(math.Pi))) * sum
}

func (m *Model) TSSingle(p scatter.Params) (float64, error) {
	if err := m.Validate(p); err != nil {
		return 0, err
	}

	mediumC, _ := p.Float("medium_c")
	mediumRho, _ := p.Float("medium_rho")
	thetaDeg, _ := p.Float("theta")
	f, _ := p.Float("f")
	org, _ := organismParam(p)
	highKaMedium, err := p.StrOr("high_ka_medium", "body")
	if err != nil {
		return 0, err
	}
	lowKaMedium, err := p.StrOr("low_ka_medium", "body")
	if err != nil {
		return 0, err
	}

	theta := thetaDeg * math.Pi / 180
	body := org.Body
	k := scatter.Wavenumber(mediumC, f)
	kb := scatter.Wavenumber(body.C, f)

	rWB := (body.Rho*body.C - mediumRho*mediumC) / (body.Rho*body.C + mediumRho*mediumC)
	twbTbw := 1 - rWB*rWB

	total := fluidKA(body, k, kb, rWB, twbTbw, theta)
	for _, incl := range org.Inclusions {
		g := incl.Rho / body.Rho
		h := incl.C / body.C
		rBC := (g*h - 1) / (g*h + 1)
		ae := incl.EquivalentRadius()

		if k*ae < lowKaThreshold {
			if lowKaMedium != "body" {
				g = incl.Rho / mediumRho
				h = incl.C / mediumC
			}
			total += modeSolution(1/g, 1/h, k, ae, incl.Length(), theta)
			continue
		}
		kk := kb
		if highKaMedium != "body" {
			kk = k
		}
		if incl.Boundary == scatter.PressureRelease {
			total += softKA(incl, k, kk, rBC, twbTbw, theta)
		} else {
			total += fluidKA(incl, k, kk, rBC, twbTbw, theta)
		}
	}
	return 20 * math.Log10(cmplx.Abs(total)), nil
}
