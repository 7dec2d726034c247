// Package ka implements the Kirchhoff approximation of Foote (1985) for
// arbitrary closed triangulated surfaces: a coherent sum of phase
// factors over the illuminated faces of the mesh.
package ka

import (
	"math"
	"math/cmplx"

	"scatgo/scatter"
)

type Model struct {
	meta scatter.Metadata
}

func New() *Model {
	return &Model{
		meta: scatter.Metadata{
			LongName:       "Kirchhoff approximation",
			ShortName:      "ka",
			AnalyticalType: "approximate",
			BoundaryTypes:  []scatter.BoundaryType{scatter.PressureRelease},
			Shapes:         []string{"closed surfaces"},
			MaxKa:          20,
			NoExpand:       []string{"mesh"},
		},
	}
}

func (m *Model) Name() string               { return m.meta.LongName }
func (m *Model) ShortName() string          { return m.meta.ShortName }
func (m *Model) Metadata() scatter.Metadata { return m.meta }

func meshParam(p scatter.Params) (*Mesh, error) {
	v, ok := p.Any("mesh")
	if !ok {
		return nil, &scatter.MissingParameterError{Name: "mesh"}
	}
	mesh, ok := v.(*Mesh)
	if !ok {
		return nil, &scatter.InvalidValueError{Name: "mesh", Value: v,
			Reason: "not a triangulated mesh"}
	}
	return mesh, nil
}

func (m *Model) Validate(p scatter.Params) error {
	if err := scatter.RequirePositive(p, "medium_c", "f"); err != nil {
		return err
	}
	if _, err := scatter.RequireBoundary(p, m.meta.BoundaryTypes); err != nil {
		return err
	}
	if _, err := scatter.RequireAngle(p, "theta", 0, 180); err != nil {
		return err
	}
	if _, err := scatter.RequireAngle(p, "phi", -180, 180); err != nil {
		return err
	}
	mesh, err := meshParam(p)
	if err != nil {
		return err
	}
	if len(mesh.Centers) == 0 {
		return &scatter.InvalidValueError{Name: "mesh", Value: 0,
			Reason: "mesh has no faces"}
	}
	if len(mesh.Normals) != len(mesh.Centers) || len(mesh.Areas) != len(mesh.Centers) {
		return &scatter.InvalidValueError{Name: "mesh", Value: len(mesh.Centers),
			Reason: "centre, normal and area arrays differ in length"}
	}
	for i, n := range mesh.Normals {
		if !scatter.UnitVector(n, 1e-6) {
			return &scatter.InvalidValueError{Name: "mesh", Value: n,
				Reason: "face normals must be unit vectors"}
		}
		if mesh.Areas[i] <= 0 {
			return &scatter.InvalidValueError{Name: "mesh", Value: mesh.Areas[i],
				Reason: "face areas must be > 0"}
		}
	}
	return nil
}

// TSSingle sums the Kirchhoff integral over faces whose outward normal
// has a positive projection onto the incident direction. The surface
// stays fixed and the incident vector moves, the inverse of the
// convention used by the axisymmetric models, so the pitch and roll
// angles are first converted to a unit incident vector.
func (m *Model) TSSingle(p scatter.Params) (float64, error) {
	if err := m.Validate(p); err != nil {
		return 0, err
	}

	mediumC, _ := p.Float("medium_c")
	theta, _ := p.Float("theta")
	phi, _ := p.Float("phi")
	f, _ := p.Float("f")
	mesh, _ := meshParam(p)

	th := theta * math.Pi / 180
	ph := phi * math.Pi / 180
	khat := [3]float64{
		-math.Cos(th) * math.Cos(ph),
		math.Sin(ph),
		math.Sin(th) * math.Cos(ph),
	}
	k := scatter.Wavenumber(mediumC, f)

	fbs := complex(0, 0)
	for i, c := range mesh.Centers {
		n := mesh.Normals[i]
		kn := n[0]*khat[0] + n[1]*khat[1] + n[2]*khat[2]
		if kn < 0 {
			continue
		}
		step := 1.0
		if kn == 0 {
			step = 0.5
		}
		rk := (c[0]*khat[0] + c[1]*khat[1] + c[2]*khat[2]) * k
		fbs += cmplx.Exp(complex(0, 2*rk)) * complex(step*kn*mesh.Areas[i], 0)
	}

	lambda := mediumC / f
	abs := cmplx.Abs(fbs) / lambda
	return 10 * math.Log10(abs*abs), nil
}
