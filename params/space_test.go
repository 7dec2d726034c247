package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandCartesianProduct(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.Set("a", []float64{1, 2}))
	require.NoError(t, s.Set("b", []float64{3, 4}))

	tab := s.Expand()

	require.Equal(t, 4, tab.Len())
	assert.Equal(t, []string{"a", "b"}, tab.Columns)

	want := [][]float64{{1, 3}, {1, 4}, {2, 3}, {2, 4}}
	for i, w := range want {
		assert.Equal(t, w[0], tab.Rows[i][0])
		assert.Equal(t, w[1], tab.Rows[i][1])
	}
}

func TestExpandScalarsAndOrder(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.Set("f", []float64{38e3, 70e3, 120e3}))
	require.NoError(t, s.Set("a", 0.01))
	require.NoError(t, s.Set("boundary_type", "pressure release"))

	tab := s.Expand()

	require.Equal(t, 3, tab.Len())
	// last key varies fastest, so the single-valued keys repeat per row
	assert.Equal(t, 38e3, tab.Rows[0][0])
	assert.Equal(t, 120e3, tab.Rows[2][0])
	assert.Equal(t, "pressure release", tab.RowMap(1)["boundary_type"])
}

func TestExpandMetaNotDuplicated(t *testing.T) {
	mesh := []float64{1, 2, 3}

	s := NewSpace()
	require.NoError(t, s.Set("f", []float64{1, 2}))
	s.SetMeta("mesh", mesh)

	tab := s.Expand()

	require.Equal(t, 2, tab.Len())
	assert.Len(t, tab.Columns, 1)
	assert.Equal(t, mesh, tab.Meta["mesh"])
	rm := tab.RowMap(0)
	assert.Equal(t, mesh, rm["mesh"])
}

func TestSetUnsupportedType(t *testing.T) {
	s := NewSpace()
	err := s.Set("bad", map[string]int{"x": 1})

	var typeErr *InvalidTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "bad", typeErr.Name)
}

func TestIntValuesBecomeFloats(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.Set("n", []int{1, 2}))

	tab := s.Expand()
	assert.Equal(t, 1.0, tab.Rows[0][0])
	assert.Equal(t, 2.0, tab.Rows[1][0])
}

func TestFromRowsPassthrough(t *testing.T) {
	rows := [][]interface{}{{1.0, "soft"}, {2.0, "hard"}}
	tab, err := FromRows([]string{"f", "boundary_type"}, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, "hard", tab.RowMap(1)["boundary_type"])

	_, err = FromRows([]string{"f"}, rows)
	assert.Error(t, err)
}

func TestGridToTableOrder(t *testing.T) {
	g := NewGrid(
		FloatAxis("f", []float64{10, 20}),
		FloatAxis("theta", []float64{80, 90, 100}),
	)
	g.SetMeta("a", 0.01)

	tab := g.ToTable()

	require.Equal(t, 6, tab.Len())
	assert.Equal(t, []int{2, 3}, g.Shape())
	// last axis fastest: rows 0..2 share f=10
	assert.Equal(t, 10.0, tab.Rows[0][0])
	assert.Equal(t, 10.0, tab.Rows[2][0])
	assert.Equal(t, 20.0, tab.Rows[3][0])
	assert.Equal(t, 100.0, tab.Rows[5][1])
	assert.Equal(t, 0.01, tab.RowMap(4)["a"])
}

func TestExpandEmptySpace(t *testing.T) {
	tab := NewSpace().Expand()
	assert.Equal(t, 0, tab.Len())
}
