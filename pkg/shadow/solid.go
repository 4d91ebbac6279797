package shadow

import (
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
)

// SolidColor is an opaque block that takes whatever space it is offered.
type SolidColor struct {
	Base
	deco Decoration
}

func (s *SolidColor) SetProps(v props.Value) error {
	r := props.NewReader(s.Kind(), v)
	deco := ReadDecoration(r, s.ctx.config.density)
	if err := r.Err(); err != nil {
		return err
	}
	s.deco = deco
	s.MarkPropsSet()
	return nil
}

// Measure returns the bound on constrained axes and zero otherwise.
func (s *SolidColor) Measure(c layout.Constraints) graphics.Size {
	s.MarkMeasured()
	w, _ := c.Width.Bound()
	h, _ := c.Height.Bound()
	return graphics.Size{Width: w, Height: h}
}

func (s *SolidColor) View(ui *platform.UIContext) platform.View {
	v := s.NativeView(ui, func(p platform.Platform) platform.View { return p.NewView() })
	s.deco.Apply(v, s.Frame(), s.ctx)
	return v
}
