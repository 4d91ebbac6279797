package shard

import (
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
	"github.com/go-drift/shard/pkg/shadow"
	"github.com/google/uuid"
)

// Root owns one attached shadow tree. Build it on any goroutine; Layout,
// View and Discard must run on the UI goroutine.
type Root struct {
	id   string
	node shadow.Node
	ctx  *shadow.Context

	// UI goroutine only.
	size      graphics.Size
	laidOut   bool
	discarded bool
}

// NewRoot builds and attaches a tree from a {kind, props} description.
// A nil cfg means shadow.DefaultConfig.
func NewRoot(cfg *shadow.Config, desc props.Value) (*Root, error) {
	node, ctx, err := shadow.Build(cfg, desc)
	if err != nil {
		return nil, err
	}
	shadow.Attach(node)
	r := &Root{id: uuid.New().String(), node: node, ctx: ctx}
	ctx.Config().Logger().Debug("tree built", "root", r.id, "kind", node.Kind())
	return r, nil
}

// ID identifies the root in logs.
func (r *Root) ID() string { return r.id }

// Node returns the top node of the tree.
func (r *Root) Node() shadow.Node { return r.node }

// Context returns the tree context.
func (r *Root) Context() *shadow.Context { return r.ctx }

// Measure returns the size the tree wants under c without assigning frames.
func (r *Root) Measure(c layout.Constraints) graphics.Size {
	return r.node.Measure(c)
}

// NeedsLayout reports whether Layout would run a pass for size.
func (r *Root) NeedsLayout(size graphics.Size) bool {
	return !r.laidOut || size != r.size || r.ctx.Pipeline().NeedsLayout()
}

// Layout sizes the tree to fit within size and assigns every frame. It
// only runs when size changed since the last pass or a node requested
// layout, and reports whether it ran.
func (r *Root) Layout(_ *platform.UIContext, size graphics.Size) bool {
	if r.discarded {
		return false
	}
	force := !r.laidOut || size != r.size
	return r.ctx.Pipeline().Flush(force, func() {
		measured := r.node.Measure(layout.Loose(size))
		r.node.SetFrame(graphics.RectFromLTWH(0, 0, measured.Width, measured.Height))
		if c, ok := r.node.(shadow.Container); ok {
			c.LayoutChildren()
		}
		r.size, r.laidOut = size, true
		r.ctx.Config().Logger().Trace("layout pass", "root", r.id,
			"width", measured.Width, "height", measured.Height, "pass", r.ctx.Pipeline().Passes())
	})
}

// View materializes the tree and returns the top native view.
func (r *Root) View(ui *platform.UIContext) platform.View {
	return r.node.View(ui)
}

// Discard detaches the tree and releases its native views. Pending layout
// requests and load completions inside it become no-ops.
func (r *Root) Discard(ui *platform.UIContext) {
	if r.discarded {
		return
	}
	r.discarded = true
	shadow.Detach(r.node)
	if ui != nil {
		shadow.Release(ui, r.node)
	}
	r.ctx.Config().Logger().Debug("tree discarded", "root", r.id)
}
