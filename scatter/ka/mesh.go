package ka

import "math"

// Mesh is a closed triangulated surface reduced to the per-face
// quantities the Kirchhoff integral needs.
type Mesh struct {
	Centers [][3]float64 // face centroids [m]
	Normals [][3]float64 // outward unit normals
	Areas   []float64    // face areas [m²]
}

// NewMesh derives face centroids, outward normals and areas from a
// nodes-and-facets surface definition. Facet winding must be
// counter-clockwise seen from outside, the usual convention, so the
// cross product points outward.
func NewMesh(nodes [][3]float64, facets [][3]int) *Mesh {
	m := &Mesh{
		Centers: make([][3]float64, len(facets)),
		Normals: make([][3]float64, len(facets)),
		Areas:   make([]float64, len(facets)),
	}
	for i, fc := range facets {
		a, b, c := nodes[fc[0]], nodes[fc[1]], nodes[fc[2]]
		for d := 0; d < 3; d++ {
			m.Centers[i][d] = (a[d] + b[d] + c[d]) / 3
		}
		u := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		v := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		cr := [3]float64{
			u[1]*v[2] - u[2]*v[1],
			u[2]*v[0] - u[0]*v[2],
			u[0]*v[1] - u[1]*v[0],
		}
		n := math.Sqrt(cr[0]*cr[0] + cr[1]*cr[1] + cr[2]*cr[2])
		m.Normals[i] = [3]float64{cr[0] / n, cr[1] / n, cr[2] / n}
		m.Areas[i] = n / 2
	}
	return m
}

// Icosphere triangulates a sphere of the given radius by subdividing an
// icosahedron, giving a near-uniform mesh of 20*4^subdivisions faces.
func Icosphere(radius float64, subdivisions int) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	nodes := [][3]float64{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	project := func(v [3]float64) [3]float64 {
		n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		return [3]float64{radius * v[0] / n, radius * v[1] / n, radius * v[2] / n}
	}
	for i := range nodes {
		nodes[i] = project(nodes[i])
	}
	facets := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for s := 0; s < subdivisions; s++ {
		cache := map[[2]int]int{}
		midpoint := func(i, j int) int {
			key := [2]int{i, j}
			if i > j {
				key = [2]int{j, i}
			}
			if idx, ok := cache[key]; ok {
				return idx
			}
			a, b := nodes[i], nodes[j]
			mid := project([3]float64{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2, (a[2] + b[2]) / 2})
			nodes = append(nodes, mid)
			cache[key] = len(nodes) - 1
			return cache[key]
		}
		next := make([][3]int, 0, 4*len(facets))
		for _, fc := range facets {
			a := midpoint(fc[0], fc[1])
			b := midpoint(fc[1], fc[2])
			c := midpoint(fc[2], fc[0])
			next = append(next,
				[3]int{fc[0], a, c}, [3]int{fc[1], b, a}, [3]int{fc[2], c, b}, [3]int{a, b, c})
		}
		facets = next
	}
	return NewMesh(nodes, facets)
}
