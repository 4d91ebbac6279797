package props

import (
	"fmt"
	"math"
)

// Unit is the unit of a Dim.
type Unit int

const (
	// UnitPoint is a density-independent unit; one point is density pixels.
	UnitPoint Unit = iota
	// UnitPixel is a physical pixel.
	UnitPixel
	// UnitPercent is relative to the parent's size and only meaningful to the layout solver.
	UnitPercent
)

func (u Unit) String() string {
	switch u {
	case UnitPoint:
		return "point"
	case UnitPixel:
		return "pixel"
	case UnitPercent:
		return "percent"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// parseUnit also accepts the plural spellings used by older documents.
func parseUnit(s string) (Unit, bool) {
	switch s {
	case "point", "points":
		return UnitPoint, true
	case "pixel", "pixels":
		return UnitPixel, true
	case "percent":
		return UnitPercent, true
	}
	return 0, false
}

// Dim is a length with a unit, written in documents as {value, unit}.
type Dim struct {
	Value float64
	Unit  Unit
}

// Points returns a point Dim.
func Points(v float64) Dim { return Dim{Value: v, Unit: UnitPoint} }

// Pixels returns a pixel Dim.
func Pixels(v float64) Dim { return Dim{Value: v, Unit: UnitPixel} }

// Percent returns a percent Dim.
func Percent(v float64) Dim { return Dim{Value: v, Unit: UnitPercent} }

// ToPixels resolves an absolute Dim at the given density. Points round to
// the nearest whole pixel; pixels pass through. Percent cannot be resolved
// without a reference size and reports false.
func (d Dim) ToPixels(density float64) (float64, bool) {
	switch d.Unit {
	case UnitPoint:
		return math.Round(d.Value * density), true
	case UnitPixel:
		return d.Value, true
	default:
		return 0, false
	}
}
