package scatter

import "fmt"

// BoundaryType is the acoustic impedance condition assumed at a target's
// surface or interior interface. The set is closed; models declare the
// subset they support and reject anything else.
type BoundaryType int

const (
	FixedRigid BoundaryType = iota
	PressureRelease
	FluidFilled
	Elastic
	FluidShellFluidInterior
	FluidShellPressureReleaseInterior
)

func (b BoundaryType) String() string {
	switch b {
	case FixedRigid:
		return "fixed rigid"
	case PressureRelease:
		return "pressure release"
	case FluidFilled:
		return "fluid filled"
	case Elastic:
		return "elastic"
	case FluidShellFluidInterior:
		return "fluid shell fluid interior"
	case FluidShellPressureReleaseInterior:
		return "fluid shell pressure release interior"
	}
	return fmt.Sprintf("BoundaryType(%d)", int(b))
}

// ParseBoundaryType maps a boundary name (or a recognised synonym) to its
// enum value.
func ParseBoundaryType(s string) (BoundaryType, error) {
	switch s {
	case "fixed rigid", "hard", "rigid":
		return FixedRigid, nil
	case "pressure release", "soft":
		return PressureRelease, nil
	case "fluid filled", "fluid":
		return FluidFilled, nil
	case "elastic":
		return Elastic, nil
	case "fluid shell fluid interior":
		return FluidShellFluidInterior, nil
	case "fluid shell pressure release interior":
		return FluidShellPressureReleaseInterior, nil
	}
	return 0, &InvalidValueError{Name: "boundary_type", Value: s,
		Reason: "not a recognised boundary type"}
}

func containsBoundary(set []BoundaryType, b BoundaryType) bool {
	for _, x := range set {
		if x == b {
			return true
		}
	}
	return false
}
