package scatter

import "math"

// RequirePresent checks that every named parameter exists.
func RequirePresent(p Params, names ...string) error {
	for _, n := range names {
		if !p.Has(n) {
			return &MissingParameterError{Name: n}
		}
	}
	return nil
}

// RequirePositive checks that every named parameter exists, is numeric,
// and is strictly positive.
func RequirePositive(p Params, names ...string) error {
	for _, n := range names {
		v, err := p.Float(n)
		if err != nil {
			return err
		}
		if math.IsNaN(v) || v <= 0 {
			return &InvalidValueError{Name: n, Value: v, Reason: "must be > 0"}
		}
	}
	return nil
}

// RequireBoundary parses the row's boundary type and checks it against a
// model's supported set.
func RequireBoundary(p Params, supported []BoundaryType) (BoundaryType, error) {
	b, err := p.Boundary()
	if err != nil {
		return 0, err
	}
	if !containsBoundary(supported, b) {
		return 0, &InvalidValueError{Name: "boundary_type", Value: b.String(),
			Reason: "not supported by this model"}
	}
	return b, nil
}

// RequireAngle checks a named angle parameter lies in [lo, hi] degrees.
func RequireAngle(p Params, name string, lo, hi float64) (float64, error) {
	v, err := p.Float(name)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < lo || v > hi {
		return 0, &InvalidValueError{Name: name, Value: v,
			Reason: "angle outside permitted range"}
	}
	return v, nil
}

// UnitVector reports whether v has unit length to within tol.
func UnitVector(v [3]float64, tol float64) bool {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	return math.Abs(n-1) <= tol
}
