// Package layout measures and positions shadow nodes.
//
// Constraints describe what a parent allows for each axis. Flex containers
// are solved together through FlexNode; leaves measure themselves and are
// wrapped in solver proxies. A Pipeline records that a
// tree needs layout without ever running layout itself.
package layout

import (
	"fmt"
	"math"

	"github.com/go-drift/shard/pkg/graphics"
)

// MeasureMode is how a single axis is constrained.
type MeasureMode int

const (
	// Unconstrained lets the node pick any size along the axis.
	Unconstrained MeasureMode = iota
	// AtMost caps the size at the axis bound.
	AtMost
	// Exactly forces the size to the axis bound.
	Exactly
)

func (m MeasureMode) String() string {
	switch m {
	case Unconstrained:
		return "unconstrained"
	case AtMost:
		return "at-most"
	case Exactly:
		return "exactly"
	default:
		return fmt.Sprintf("MeasureMode(%d)", int(m))
	}
}

// AxisConstraint constrains one axis. Size is ignored when Mode is Unconstrained.
type AxisConstraint struct {
	Mode MeasureMode
	Size float64
}

// Unbounded returns an unconstrained axis.
func Unbounded() AxisConstraint { return AxisConstraint{} }

// Max returns an AtMost axis.
func Max(size float64) AxisConstraint { return AxisConstraint{Mode: AtMost, Size: size} }

// Fixed returns an Exactly axis.
func Fixed(size float64) AxisConstraint { return AxisConstraint{Mode: Exactly, Size: size} }

// Resolve applies the constraint to a preferred size.
func (a AxisConstraint) Resolve(intrinsic float64) float64 {
	switch a.Mode {
	case Exactly:
		return a.Size
	case AtMost:
		return math.Min(intrinsic, a.Size)
	default:
		return intrinsic
	}
}

// Bound returns the axis size and whether the axis is bounded at all.
func (a AxisConstraint) Bound() (float64, bool) {
	if a.Mode == Unconstrained {
		return 0, false
	}
	return a.Size, true
}

func (a AxisConstraint) String() string {
	if a.Mode == Unconstrained {
		return a.Mode.String()
	}
	return fmt.Sprintf("%s(%g)", a.Mode, a.Size)
}

// Constraints bounds both axes of a measurement.
type Constraints struct {
	Width  AxisConstraint
	Height AxisConstraint
}

// Tight forces exactly the given size.
func Tight(size graphics.Size) Constraints {
	return Constraints{Width: Fixed(size.Width), Height: Fixed(size.Height)}
}

// Loose allows any size up to the given one.
func Loose(size graphics.Size) Constraints {
	return Constraints{Width: Max(size.Width), Height: Max(size.Height)}
}

// Resolve applies both axis constraints to a preferred size.
func (c Constraints) Resolve(intrinsic graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  c.Width.Resolve(intrinsic.Width),
		Height: c.Height.Resolve(intrinsic.Height),
	}
}

func (c Constraints) String() string {
	return fmt.Sprintf("Constraints(w=%s, h=%s)", c.Width, c.Height)
}

// MeasureFunc reports the size a leaf wants under c.
type MeasureFunc func(c Constraints) graphics.Size
