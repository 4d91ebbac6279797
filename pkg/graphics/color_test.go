package graphics

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FFF", Color(0xFFFFFFFF)},
		{"#f00", Color(0xFFFF0000)},
		{"#336699", Color(0xFF336699)},
		{"336699", Color(0xFF336699)},
		{"#80FF0000", Color(0x80FF0000)},
		{"#00000000", ColorTransparent},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#GGGGGG", "red"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) should fail", in)
		}
	}
}

func TestColorSpecResolve(t *testing.T) {
	pressed := ColorRed
	spec := ColorSpec{Default: ColorBlue, Pressed: &pressed}
	if got := spec.Resolve(false); got != ColorBlue {
		t.Errorf("Resolve(false) = %s, want %s", got, ColorBlue)
	}
	if got := spec.Resolve(true); got != ColorRed {
		t.Errorf("Resolve(true) = %s, want %s", got, ColorRed)
	}
	if got := Uniform(ColorGreen).Resolve(true); got != ColorGreen {
		t.Errorf("Uniform.Resolve(true) = %s, want %s", got, ColorGreen)
	}
}

func TestBorderRadiusResolve(t *testing.T) {
	if got := (BorderRadius{Max: true}).Resolve(Size{Width: 50, Height: 50}); got != 25 {
		t.Errorf("max radius on 50x50 = %v, want 25", got)
	}
	if got := (BorderRadius{Max: true}).Resolve(Size{Width: 80, Height: 30}); got != 15 {
		t.Errorf("max radius on 80x30 = %v, want 15", got)
	}
	if got := (BorderRadius{Pixels: 6}).Resolve(Size{Width: 80, Height: 30}); got != 6 {
		t.Errorf("fixed radius = %v, want 6", got)
	}
}
