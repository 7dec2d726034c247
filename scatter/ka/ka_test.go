package ka

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatgo/scatter"
)

func sphereParams(mesh *Mesh, theta, phi float64) scatter.Params {
	return scatter.Params{
		"medium_c":      1477.4,
		"theta":         theta,
		"phi":           phi,
		"f":             38000.0,
		"mesh":          mesh,
		"boundary_type": scatter.PressureRelease,
	}
}

func TestPressureReleaseSphere(t *testing.T) {
	m := New()
	mesh := Icosphere(0.01, 3)
	cases := []struct {
		theta, phi, want float64
	}{
		{90, 0, -44.4621866396},
		{60, 0, -44.4645084764},
		{90, 30, -44.4653392033},
		{10, 0, -44.4640727957},
	}
	for _, tc := range cases {
		ts, err := m.TSSingle(sphereParams(mesh, tc.theta, tc.phi))
		require.NoError(t, err)
		assert.InDelta(t, tc.want, ts, 1e-6, "theta=%v phi=%v", tc.theta, tc.phi)
	}
}

func TestIcosphereGeometry(t *testing.T) {
	mesh := Icosphere(0.01, 3)
	require.Len(t, mesh.Centers, 1280)
	require.Len(t, mesh.Normals, 1280)
	require.Len(t, mesh.Areas, 1280)

	// faceted area slightly under the analytic sphere surface
	total := 0.0
	for _, a := range mesh.Areas {
		total += a
	}
	analytic := 4 * math.Pi * 0.01 * 0.01
	assert.InDelta(t, analytic, total, 0.01*analytic)
	assert.Less(t, total, analytic)

	// outward normals point away from the origin
	for i, n := range mesh.Normals {
		c := mesh.Centers[i]
		dot := n[0]*c[0] + n[1]*c[1] + n[2]*c[2]
		require.Greater(t, dot, 0.0)
	}
}

func TestUnsupportedBoundary(t *testing.T) {
	m := New()
	p := sphereParams(Icosphere(0.01, 1), 90, 0)
	p["boundary_type"] = scatter.FixedRigid
	_, err := m.TSSingle(p)
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "boundary_type", invalid.Name)
}

func TestMissingMesh(t *testing.T) {
	m := New()
	p := sphereParams(Icosphere(0.01, 1), 90, 0)
	delete(p, "mesh")
	_, err := m.TSSingle(p)
	var missing *scatter.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "mesh", missing.Name)
}

func TestBadNormals(t *testing.T) {
	m := New()
	mesh := Icosphere(0.01, 1)
	mesh.Normals[4] = [3]float64{0.5, 0, 0}
	_, err := m.TSSingle(sphereParams(mesh, 90, 0))
	var invalid *scatter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "mesh", invalid.Name)
}
