package scatter

import "math"

// Params is one concrete evaluation row: quantity name to value. Values
// are float64, string, bool, BoundaryType, or bulk shape data ([]float64,
// [][3]float64, voxel volumes) carried through from table metadata.
type Params map[string]interface{}

func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

func (p Params) Any(name string) (interface{}, bool) {
	v, ok := p[name]
	return v, ok
}

// Float returns a numeric parameter. Integers are widened; anything else
// is an InvalidValueError, absence a MissingParameterError.
func (p Params) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, &MissingParameterError{Name: name}
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, &InvalidValueError{Name: name, Value: v, Reason: "not a number"}
}

// FloatOr returns a numeric parameter or def when the key is absent.
func (p Params) FloatOr(name string, def float64) (float64, error) {
	if !p.Has(name) {
		return def, nil
	}
	return p.Float(name)
}

func (p Params) Int(name string) (int, error) {
	f, err := p.Float(name)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, &InvalidValueError{Name: name, Value: f, Reason: "not an integer"}
	}
	return int(f), nil
}

func (p Params) IntOr(name string, def int) (int, error) {
	if !p.Has(name) {
		return def, nil
	}
	return p.Int(name)
}

func (p Params) Str(name string) (string, error) {
	v, ok := p[name]
	if !ok {
		return "", &MissingParameterError{Name: name}
	}
	s, ok := v.(string)
	if !ok {
		return "", &InvalidValueError{Name: name, Value: v, Reason: "not a string"}
	}
	return s, nil
}

// StrOr returns a string parameter or def when the key is absent.
func (p Params) StrOr(name, def string) (string, error) {
	if !p.Has(name) {
		return def, nil
	}
	return p.Str(name)
}

// BoolOr returns a boolean parameter or def when the key is absent.
func (p Params) BoolOr(name string, def bool) (bool, error) {
	v, ok := p[name]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &InvalidValueError{Name: name, Value: v, Reason: "not a boolean"}
	}
	return b, nil
}

// Boundary returns the row's boundary type, parsing string names and
// synonyms.
func (p Params) Boundary() (BoundaryType, error) {
	v, ok := p["boundary_type"]
	if !ok {
		return 0, &MissingParameterError{Name: "boundary_type"}
	}
	switch x := v.(type) {
	case BoundaryType:
		return x, nil
	case string:
		return ParseBoundaryType(x)
	}
	return 0, &InvalidValueError{Name: "boundary_type", Value: v,
		Reason: "not a boundary type"}
}

// Floats returns a slice-valued parameter, widening element types where
// needed.
func (p Params) Floats(name string) ([]float64, error) {
	v, ok := p[name]
	if !ok {
		return nil, &MissingParameterError{Name: name}
	}
	switch x := v.(type) {
	case []float64:
		return x, nil
	case []interface{}:
		out := make([]float64, len(x))
		for i, e := range x {
			switch n := e.(type) {
			case float64:
				out[i] = n
			case int:
				out[i] = float64(n)
			case int64:
				out[i] = float64(n)
			default:
				return nil, &InvalidValueError{Name: name, Value: e,
					Reason: "slice element is not a number"}
			}
		}
		return out, nil
	}
	return nil, &InvalidValueError{Name: name, Value: v, Reason: "not a float slice"}
}

// Vec3s returns a parameter holding a sequence of 3-vectors.
func (p Params) Vec3s(name string) ([][3]float64, error) {
	v, ok := p[name]
	if !ok {
		return nil, &MissingParameterError{Name: name}
	}
	x, ok := v.([][3]float64)
	if !ok {
		return nil, &InvalidValueError{Name: name, Value: v, Reason: "not a vector sequence"}
	}
	return x, nil
}
