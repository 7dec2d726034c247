package dwba

import "math"

// SpheroidDiscs generates the disc sequence for a prolate spheroid with
// semi-major axis major and semi-minor axis minor, lying along the x
// axis, sampled at roughly the given spacing. Disc radii follow the
// spheroid profile and every tangent points along the axis.
func SpheroidDiscs(major, minor, spacing float64) ([][3]float64, [][3]float64, []float64) {
	n := int(math.Round(2 * major / spacing))
	pos := make([][3]float64, n)
	tan := make([][3]float64, n)
	rad := make([]float64, n)
	for i := 0; i < n; i++ {
		v := math.Pi * float64(i) / float64(n-1)
		pos[i] = [3]float64{major - major*math.Cos(v), 0, 0}
		tan[i] = [3]float64{1, 0, 0}
		rad[i] = minor * math.Sin(v)
	}
	return pos, tan, rad
}

// CylinderDiscs generates the disc sequence for a straight cylinder of
// the given radius and length along the x axis.
func CylinderDiscs(radius, length, spacing float64) ([][3]float64, [][3]float64, []float64) {
	n := int(math.Round(length / spacing))
	pos := make([][3]float64, n)
	tan := make([][3]float64, n)
	rad := make([]float64, n)
	for i := 0; i < n; i++ {
		pos[i] = [3]float64{length * float64(i) / float64(n-1), 0, 0}
		tan[i] = [3]float64{1, 0, 0}
		rad[i] = radius
	}
	return pos, tan, rad
}
