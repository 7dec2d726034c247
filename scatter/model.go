// Package scatter defines the contract shared by every scattering model:
// parameter rows, boundary types, the error taxonomy, validation helpers
// and batch evaluation. Target strength values are dB re 1 m².
package scatter

import "math"

// Metadata is a model's immutable description.
type Metadata struct {
	LongName       string
	ShortName      string
	AnalyticalType string // "exact" or "approximate"
	BoundaryTypes  []BoundaryType
	Shapes         []string
	MaxKa          float64
	// NoExpand names parameters that carry bulk data (meshes, voxel
	// volumes, disc sequences) and must never be Cartesian-expanded.
	NoExpand []string
}

// Model is implemented by each scattering model family. Implementations
// hold no mutable state; every TSSingle call is a pure function of its
// parameter row (SDWBA's seeded phase jitter included).
type Model interface {
	Name() string
	ShortName() string
	Metadata() Metadata
	Validate(p Params) error
	TSSingle(p Params) (float64, error)
}

// Wavenumber returns the acoustic wavenumber 2*pi*f/c.
func Wavenumber(c, f float64) float64 {
	return 2 * math.Pi * f / c
}

// Neumann returns the Neumann factor: 1 for m = 0, 2 otherwise.
func Neumann(m int) float64 {
	if m == 0 {
		return 1
	}
	return 2
}
