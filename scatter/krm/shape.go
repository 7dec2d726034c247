package krm

import (
	"math"

	"scatgo/scatter"
)

// Shape is one axial cross-section profile: x positions along the body
// axis with the width and the upper and lower surface offsets at each,
// plus the material properties of the enclosed medium.
type Shape struct {
	Boundary scatter.BoundaryType
	X        []float64 // axial coordinates [m]
	W        []float64 // widths [m]
	ZU       []float64 // distance from axis to upper surface [m]
	ZL       []float64 // distance from axis to lower surface [m]
	C        float64   // sound speed [m/s]
	Rho      float64   // density [kg/m³]
}

// Volume approximates the shape volume from its cross-sections.
func (s *Shape) Volume() float64 {
	n := len(s.X)
	thickness := make([]float64, n)
	for i := 0; i < n-1; i++ {
		thickness[i] = s.X[i+1] - s.X[i]
	}
	thickness[n-1] = thickness[1]
	v := 0.0
	for i := 0; i < n; i++ {
		v += math.Pi * (s.ZU[i] - s.ZL[i]) * s.W[i] * thickness[i]
	}
	return v
}

// Length is the axial extent of the shape.
func (s *Shape) Length() float64 {
	return s.X[len(s.X)-1] - s.X[0]
}

// EquivalentRadius is the radius of the cylinder with the same volume
// and length as the shape.
func (s *Shape) EquivalentRadius() float64 {
	return math.Sqrt(s.Volume() / (math.Pi * s.Length()))
}

// Organism is a body shape plus zero or more enclosed inclusion shapes
// such as a swimbladder.
type Organism struct {
	Name       string
	Body       *Shape
	Inclusions []*Shape
}
