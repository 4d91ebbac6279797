// Package graphics holds the value types shared by layout and native views:
// colors, geometry, and text measurement.
package graphics

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// ParseHex parses "#RGB", "#RRGGBB" or "#AARRGGBB". The leading '#' is
// optional. Eight-digit values carry alpha first; shorter forms are opaque.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		var expanded [6]byte
		for i := 0; i < 3; i++ {
			expanded[i*2] = hex[i]
			expanded[i*2+1] = hex[i]
		}
		hex = string(expanded[:])
		fallthrough
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q", s)
		}
		return Color(0xFF000000 | uint32(v)), nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q", s)
		}
		return Color(uint32(v)), nil
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
}

// String formats the color as "#AARRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// ColorSpec is a color that may change while a view is pressed.
type ColorSpec struct {
	Default Color
	// Pressed is nil when the color does not react to presses.
	Pressed *Color
}

// Uniform returns a ColorSpec without a pressed variant.
func Uniform(c Color) ColorSpec {
	return ColorSpec{Default: c}
}

// Resolve returns the color to show for the given pressed state.
func (s ColorSpec) Resolve(pressed bool) Color {
	if pressed && s.Pressed != nil {
		return *s.Pressed
	}
	return s.Default
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
