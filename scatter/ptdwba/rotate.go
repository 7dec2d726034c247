package ptdwba

import "math"

// rotateVolume rigidly rotates a categorical voxel volume by angleDeg
// degrees in the plane spanned by the two named axes, using
// nearest-neighbour sampling and expanding the output so the whole
// rotated volume fits. Voxels mapping outside the input are category 0.
func rotateVolume(v [][][]int, angleDeg float64, axes [2]int) [][][]int {
	a0, a1 := axes[0], axes[1]
	if a0 > a1 {
		a0, a1 = a1, a0
	}
	sh := [3]int{len(v), len(v[0]), len(v[0][0])}
	iy, ix := sh[a0], sh[a1]

	ang := angleDeg * math.Pi / 180
	c, s := math.Cos(ang), math.Sin(ang)

	// rotated bounding box of the in-plane shape corners
	corners := [4][2]float64{{0, 0}, {0, float64(ix)}, {float64(iy), 0}, {float64(iy), float64(ix)}}
	yLo, yHi := math.Inf(1), math.Inf(-1)
	xLo, xHi := math.Inf(1), math.Inf(-1)
	for _, p := range corners {
		y := c*p[0] + s*p[1]
		x := -s*p[0] + c*p[1]
		yLo, yHi = math.Min(yLo, y), math.Max(yHi, y)
		xLo, xHi = math.Min(xLo, x), math.Max(xHi, x)
	}
	oy := int(yHi - yLo + 0.5)
	ox := int(xHi - xLo + 0.5)

	outCenterY := c*float64(oy-1)/2 + s*float64(ox-1)/2
	outCenterX := -s*float64(oy-1)/2 + c*float64(ox-1)/2
	offY := float64(iy-1)/2 - outCenterY
	offX := float64(ix-1)/2 - outCenterX

	osh := sh
	osh[a0], osh[a1] = oy, ox
	out := make([][][]int, osh[0])
	for i := range out {
		out[i] = make([][]int, osh[1])
		for j := range out[i] {
			out[i][j] = make([]int, osh[2])
		}
	}

	for i := 0; i < osh[0]; i++ {
		for j := 0; j < osh[1]; j++ {
			for k := 0; k < osh[2]; k++ {
				idx := [3]int{i, j, k}
				y := float64(idx[a0])
				x := float64(idx[a1])
				yi := int(math.Floor(c*y + s*x + offY + 0.5))
				xi := int(math.Floor(-s*y + c*x + offX + 0.5))
				if yi < 0 || yi >= iy || xi < 0 || xi >= ix {
					continue
				}
				src := idx
				src[a0], src[a1] = yi, xi
				out[i][j][k] = v[src[0]][src[1]][src[2]]
			}
		}
	}
	return out
}
