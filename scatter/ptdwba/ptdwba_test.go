package ptdwba

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatgo/scatter"
)

// sphereVolume voxelizes a sphere of radius a centred in a cube grid
// with voxel edge dx, category 1 inside and 0 outside. Membership is
// sqrt(x*x+y*y+z*z) <= a with each square rounded before summing; the
// boundary voxel set is sensitive to the rounding order, so the squares
// go through a slice to keep fused multiply-add out of the sum.
func sphereVolume(a, dx float64) [][][]int {
	n := int(math.Round(2 * a / dx))
	sq := make([]float64, n)
	for i := range sq {
		x := -a + float64(i)*dx
		sq[i] = x * x
	}
	v := make([][][]int, n)
	for i := range v {
		v[i] = make([][]int, n)
		for j := range v[i] {
			v[i][j] = make([]int, n)
			for k := range v[i][j] {
				if math.Sqrt(sq[i]+sq[j]+sq[k]) <= a {
					v[i][j][k] = 1
				}
			}
		}
	}
	return v
}

func sphereParams(v [][][]int, dx float64) scatter.Params {
	return scatter.Params{
		"volume":     v,
		"voxel_size": []float64{dx, dx, dx},
		"theta":      0.0,
		"phi":        0.0,
		"f":          38000.0,
		"target_rho": []float64{1026.8, 1028.9258465047692},
		"target_c":   []float64{1477.4, 1480.362356183199},
	}
}

func TestWeaklyScatteringSphere(t *testing.T) {
	m := New()
	dx := 0.0001
	ts, err := m.TSSingle(sphereParams(sphereVolume(0.01, dx), dx))
	require.NoError(t, err)
	assert.InDelta(t, -94.0740586944, ts, 1e-6)
}

func TestRotateQuarterTurn(t *testing.T) {
	v := [][][]int{
		{{1, 0, 0}},
		{{0, 0, 2}},
		{{0, 0, 0}},
	}
	got := rotateVolume(v, -90, [2]int{0, 2})
	want := [][][]int{
		{{0, 0, 1}},
		{{0, 0, 0}},
		{{0, 2, 0}},
	}
	assert.Equal(t, want, got)
}

func TestRotateExpandsOutput(t *testing.T) {
	v := make([][][]int, 5)
	for i := range v {
		v[i] = [][]int{make([]int, 5)}
	}
	v[2][0][1], v[2][0][2], v[2][0][3] = 1, 1, 1

	got := rotateVolume(v, -45, [2]int{0, 2})
	require.Len(t, got, 7)
	require.Len(t, got[0][0], 7)
	want := [][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
	}
	for i := range got {
		assert.Equal(t, want[i], got[i][0], "row %d", i)
	}
}

func TestRotateZeroIsIdentity(t *testing.T) {
	v := sphereVolume(0.002, 0.0005)
	assert.Equal(t, v, rotateVolume(v, 0, [2]int{0, 2}))
}

func TestNonContiguousCategories(t *testing.T) {
	m := New()
	v := sphereVolume(0.002, 0.0005)
	v[3][3][3] = 3 // label 2 missing
	p := sphereParams(v, 0.0005)
	p["target_rho"] = []float64{1026.8, 1028.9, 1030.0, 1031.0}
	p["target_c"] = []float64{1477.4, 1480.4, 1482.0, 1484.0}
	_, err := m.TSSingle(p)
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "volume", invalid.Name)
}

func TestMissingMediumCategory(t *testing.T) {
	m := New()
	v := [][][]int{{{1, 1}, {1, 1}}}
	_, err := m.TSSingle(sphereParams(v, 0.0005))
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
}

func TestTooFewMaterialProperties(t *testing.T) {
	m := New()
	p := sphereParams(sphereVolume(0.002, 0.0005), 0.0005)
	p["target_rho"] = []float64{1026.8}
	_, err := m.TSSingle(p)
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "target_rho", invalid.Name)
}

func TestRaggedVolume(t *testing.T) {
	m := New()
	v := sphereVolume(0.002, 0.0005)
	v[2] = v[2][:3]
	_, err := m.TSSingle(sphereParams(v, 0.0005))
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
}

func TestBadVoxelSize(t *testing.T) {
	m := New()
	p := sphereParams(sphereVolume(0.002, 0.0005), 0.0005)
	p["voxel_size"] = []float64{0.0005, 0.0005}
	_, err := m.TSSingle(p)
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "voxel_size", invalid.Name)
}
