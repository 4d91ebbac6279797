package shadow

import (
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
)

// PerformAction is the event raised by a string tap-action. Its payload
// is {action: <name>}.
const PerformAction = "perform-action"

// Decoration holds the style props every kind accepts.
type Decoration struct {
	Background   graphics.ColorSpec
	BorderColor  graphics.ColorSpec
	BorderWidth  float64
	BorderRadius graphics.BorderRadius
	// Action is raised on tap; nil means the view is not tappable.
	Action *Action
}

// ReadDecoration reads background-color, border-color, border-width,
// border-radius, tap-action and on-click. Errors are recorded on r.
func ReadDecoration(r *props.Reader, density float64) Decoration {
	var d Decoration
	if c, ok := r.ColorSpec("background-color"); ok {
		d.Background = c
	}
	if c, ok := r.ColorSpec("border-color"); ok {
		d.BorderColor = c
	}
	if w, ok := r.Pixels("border-width", density); ok {
		d.BorderWidth = w
	}
	d.BorderRadius = readBorderRadius(r, density)

	if name, ok := r.String("tap-action"); ok {
		d.Action = &Action{
			Name:  PerformAction,
			Value: props.ObjectOf(props.Object{"action": props.String(name)}),
		}
	}
	if click, ok := r.Sub("on-click"); ok {
		name := click.RequiredString("action")
		d.Action = &Action{Name: name, Value: click.Value("value")}
	}
	return d
}

func readBorderRadius(r *props.Reader, density float64) graphics.BorderRadius {
	v := r.Value("border-radius")
	if s, ok := v.AsString(); ok {
		if s != "max" {
			r.Fail("border-radius", v, `want dimension or "max"`)
			return graphics.BorderRadius{}
		}
		return graphics.BorderRadius{Max: true}
	}
	px, _ := r.Pixels("border-radius", density)
	return graphics.BorderRadius{Pixels: px}
}

// Apply writes the frame and decoration to v. The corner radius is
// resolved against the frame.
func (d Decoration) Apply(v platform.View, frame graphics.Rect, ctx *Context) {
	v.SetFrame(frame)
	v.SetStyle(platform.Style{
		Background:   d.Background,
		BorderColor:  d.BorderColor,
		BorderWidth:  d.BorderWidth,
		CornerRadius: d.BorderRadius.Resolve(frame.Size()),
	})
	if d.Action == nil {
		v.SetTapHandler(nil)
		return
	}
	action := *d.Action
	v.SetTapHandler(func() { ctx.Dispatch(action) })
}
