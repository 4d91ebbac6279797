package graphics

import "math"

// Offset is a position in pixels relative to a parent's origin.
type Offset struct {
	X float64
	Y float64
}

// Size is a width and height in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an edge-based rectangle. Frames are stored this way so the
// solver can place each edge independently.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH builds a frame from an origin and a size.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

func (r Rect) Width() float64 { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Size drops the origin.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// Origin returns the top-left corner.
func (r Rect) Origin() Offset {
	return Offset{X: r.Left, Y: r.Top}
}

// Center is the midpoint of the frame, used when checking alignment.
func (r Rect) Center() Offset {
	return Offset{X: r.Left + r.Width()/2, Y: r.Top + r.Height()/2}
}

// EdgeInsets holds per-edge distances in pixels.
type EdgeInsets struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Horizontal returns Left + Right.
func (e EdgeInsets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }

// BorderRadius is either a fixed radius in pixels or the largest radius
// the frame allows.
type BorderRadius struct {
	Pixels float64
	// Max selects half of the frame's shorter side.
	Max bool
}

// Resolve returns the radius in pixels for a frame of the given size.
func (b BorderRadius) Resolve(size Size) float64 {
	if b.Max {
		return math.Min(size.Width, size.Height) / 2
	}
	return b.Pixels
}
