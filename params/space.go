// Package params converts mappings of named physical quantities into
// row-per-evaluation tables. Scalars and slices expand into the Cartesian
// product of their values; bulky quantities (meshes, voxel volumes, shape
// profiles) are marked non-expandable and attach once as shared metadata.
package params

import (
	"fmt"
)

// Space is an ordered mapping of quantity name to candidate values.
// Key iteration order is insertion order, which fixes the row order
// produced by Expand.
type Space struct {
	keys   []string
	values map[string][]interface{}
	meta   map[string]interface{}
}

func NewSpace() *Space {
	return &Space{
		values: make(map[string][]interface{}),
		meta:   make(map[string]interface{}),
	}
}

// Set records an expandable quantity. Scalars become single-element value
// lists. Slices contribute one row per element. Unsupported container
// types return an InvalidTypeError.
func (s *Space) Set(name string, value interface{}) error {
	vals, err := normalize(name, value)
	if err != nil {
		return err
	}
	if _, exists := s.values[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.values[name] = vals
	return nil
}

// SetMeta records a non-expandable quantity. It is carried once on the
// expanded table instead of being duplicated per row.
func (s *Space) SetMeta(name string, value interface{}) {
	s.meta[name] = value
}

func (s *Space) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func normalize(name string, value interface{}) ([]interface{}, error) {
	switch v := value.(type) {
	case float64:
		return []interface{}{v}, nil
	case float32:
		return []interface{}{float64(v)}, nil
	case int:
		return []interface{}{float64(v)}, nil
	case string:
		return []interface{}{v}, nil
	case bool:
		return []interface{}{v}, nil
	case []float64:
		out := make([]interface{}, len(v))
		for i, x := range v {
			out[i] = x
		}
		return out, nil
	case []int:
		out := make([]interface{}, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []string:
		out := make([]interface{}, len(v))
		for i, x := range v {
			out[i] = x
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		copy(out, v)
		return out, nil
	default:
		return nil, &InvalidTypeError{Name: name, Value: value}
	}
}

// Expand produces the Cartesian product of all expandable quantities, in
// insertion key order with the last key varying fastest.
func (s *Space) Expand() *Table {
	n := 1
	for _, k := range s.keys {
		n *= len(s.values[k])
	}
	if len(s.keys) == 0 {
		n = 0
	}

	t := &Table{
		Columns: s.Keys(),
		Rows:    make([][]interface{}, 0, n),
		Meta:    make(map[string]interface{}, len(s.meta)),
	}
	for k, v := range s.meta {
		t.Meta[k] = v
	}
	if n == 0 {
		return t
	}

	idx := make([]int, len(s.keys))
	for {
		row := make([]interface{}, len(s.keys))
		for j, k := range s.keys {
			row[j] = s.values[k][idx[j]]
		}
		t.Rows = append(t.Rows, row)

		// advance the odometer, last key fastest
		j := len(idx) - 1
		for j >= 0 {
			idx[j]++
			if idx[j] < len(s.values[s.keys[j]]) {
				break
			}
			idx[j] = 0
			j--
		}
		if j < 0 {
			return t
		}
	}
}

// Table is the expanded row-per-evaluation structure. Each row is a
// complete parameter set; Meta holds shared non-expandable quantities.
type Table struct {
	Columns []string
	Rows    [][]interface{}
	Meta    map[string]interface{}
}

// FromRows wraps an already-expanded row table. No re-expansion happens.
func FromRows(columns []string, rows [][]interface{}) (*Table, error) {
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r), len(columns))
		}
	}
	return &Table{
		Columns: append([]string(nil), columns...),
		Rows:    rows,
		Meta:    make(map[string]interface{}),
	}, nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// RowMap assembles row i as a name-to-value map, shared metadata included.
func (t *Table) RowMap(i int) map[string]interface{} {
	out := make(map[string]interface{}, len(t.Columns)+len(t.Meta))
	for k, v := range t.Meta {
		out[k] = v
	}
	for j, c := range t.Columns {
		out[c] = t.Rows[i][j]
	}
	return out
}
