package shadow

import (
	"sync"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
)

var scrollDirections = map[string]platform.ScrollDirection{
	"vertical":   platform.ScrollVertical,
	"horizontal": platform.ScrollHorizontal,
}

// Scroll is a container with a single content child that may be larger
// than the scroll frame along the scroll axis.
type Scroll struct {
	Base

	mu          sync.RWMutex
	content     Node
	direction   platform.ScrollDirection
	inset       graphics.EdgeInsets
	deco        Decoration
	contentSize graphics.Size

	// appliedInset is the inset last written to the native view.
	appliedInset *graphics.EdgeInsets
}

func (s *Scroll) SetProps(v props.Value) error {
	density := s.ctx.config.density
	r := props.NewReader(s.Kind(), v)
	dir := scrollDirections[r.RequiredEnum("direction", "vertical", "horizontal")]
	r.RequiredObject("content")
	inset, _ := r.Pixels("content-inset", density)
	deco := ReadDecoration(r, density)
	if err := r.Err(); err != nil {
		return err
	}
	content, err := s.ctx.buildChild(r.Value("content"), s, "content")
	if err != nil {
		return err
	}

	var insets graphics.EdgeInsets
	if dir == platform.ScrollHorizontal {
		insets.Left, insets.Right = inset, inset
	} else {
		insets.Top, insets.Bottom = inset, inset
	}

	s.mu.Lock()
	old := s.content
	s.content, s.direction, s.inset, s.deco = content, dir, insets, deco
	s.mu.Unlock()
	if old != nil {
		s.retire(old)
	}
	s.MarkPropsSet()
	return nil
}

// contentConstraints leaves the scroll axis unconstrained and applies cross
// to the other axis.
func (s *Scroll) contentConstraints(dir platform.ScrollDirection, cross layout.AxisConstraint) layout.Constraints {
	if dir == platform.ScrollHorizontal {
		return layout.Constraints{Width: layout.Unbounded(), Height: cross}
	}
	return layout.Constraints{Width: cross, Height: layout.Unbounded()}
}

// Measure returns the content size plus the inset, clamped to c. The
// content sees the cross constraint unchanged.
func (s *Scroll) Measure(c layout.Constraints) graphics.Size {
	s.MarkMeasured()
	s.mu.RLock()
	content, dir, inset := s.content, s.direction, s.inset
	s.mu.RUnlock()
	if content == nil {
		return c.Resolve(graphics.Size{})
	}
	var size graphics.Size
	if dir == platform.ScrollHorizontal {
		size = content.Measure(s.contentConstraints(dir, c.Height))
	} else {
		size = content.Measure(s.contentConstraints(dir, c.Width))
	}
	size.Width += inset.Horizontal()
	size.Height += inset.Vertical()
	return c.Resolve(size)
}

// LayoutChildren sizes the content to fit along the scroll axis and to the
// frame along the cross axis.
func (s *Scroll) LayoutChildren() {
	s.mu.RLock()
	content, dir := s.content, s.direction
	s.mu.RUnlock()
	if content == nil {
		return
	}
	frame := s.Frame()
	var size graphics.Size
	if dir == platform.ScrollHorizontal {
		size = content.Measure(s.contentConstraints(dir, layout.Fixed(frame.Height())))
		size.Height = frame.Height()
	} else {
		size = content.Measure(s.contentConstraints(dir, layout.Fixed(frame.Width())))
		size.Width = frame.Width()
	}
	content.SetFrame(graphics.RectFromLTWH(0, 0, size.Width, size.Height))
	if cc, ok := content.(Container); ok {
		cc.LayoutChildren()
	}
	s.mu.Lock()
	s.contentSize = size
	s.mu.Unlock()
	s.setState(StateFramed)
}

// Children returns the content node.
func (s *Scroll) Children() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.content == nil {
		return nil
	}
	return []Node{s.content}
}

// ContentSize returns the content size from the last layout.
func (s *Scroll) ContentSize() graphics.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contentSize
}

func (s *Scroll) View(ui *platform.UIContext) platform.View {
	v := s.NativeView(ui, func(p platform.Platform) platform.View { return p.NewScrollView() }).(platform.ScrollView)
	s.mu.RLock()
	content, dir, inset, deco, size := s.content, s.direction, s.inset, s.deco, s.contentSize
	s.mu.RUnlock()

	v.SetDirection(dir)
	if content != nil {
		v.SetContent(content.View(ui))
	}
	v.SetContentSize(size)
	if s.appliedInset == nil || *s.appliedInset != inset {
		v.SetContentInset(inset)
		v.SetContentOffset(graphics.Offset{X: -inset.Left, Y: -inset.Top})
		s.appliedInset = &inset
	}
	deco.Apply(v, s.Frame(), s.ctx)
	return v
}
