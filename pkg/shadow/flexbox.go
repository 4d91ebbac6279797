package shadow

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
)

// FlexContainer is implemented by nodes whose solver node joins their
// parent's solver tree instead of being measured through a proxy.
type FlexContainer interface {
	Container
	FlexNode() *layout.FlexNode
}

// Flexbox arranges its children with the flex solver.
type Flexbox struct {
	Base
	flex *layout.FlexNode
	deco Decoration

	mu       sync.RWMutex
	children []flexChild
}

type flexChild struct {
	node Node
	// proxy is nil for children that are flex containers themselves.
	proxy *layout.Proxy
}

type pendingChild struct {
	node Node
	item layout.ItemStyle
}

// FlexNode returns the container's solver node.
func (f *Flexbox) FlexNode() *layout.FlexNode {
	if f.flex == nil {
		f.flex = f.ctx.config.flex.NewNode()
	}
	return f.flex
}

// SetProps reads the container style and rebuilds every child from the
// required children array. If any child fails, the previous children are
// kept.
func (f *Flexbox) SetProps(v props.Value) error {
	density := f.ctx.config.density
	r := props.NewReader(f.Kind(), v)
	style := readContainerStyle(r, density)
	deco := ReadDecoration(r, density)
	r.Require("children")
	items, _ := r.Array("children")
	if err := r.Err(); err != nil {
		return err
	}

	built := make([]pendingChild, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("children[%d]", i)
		cr := props.NewReader(f.Kind(), item)
		var itemStyle layout.ItemStyle
		if lr, ok := cr.Sub("layout"); ok {
			itemStyle = readItemStyle(lr, density)
		}
		if err := cr.Err(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		child, err := f.ctx.buildChild(item, f, path)
		if err != nil {
			for _, p := range built {
				detach(p.node)
			}
			return err
		}
		built = append(built, pendingChild{node: child, item: itemStyle})
	}

	fn := f.FlexNode()
	f.mu.Lock()
	old := f.children
	fn.RemoveChildren()
	fn.SetStyle(style)
	children := make([]flexChild, 0, len(built))
	for _, p := range built {
		if fc, ok := p.node.(FlexContainer); ok {
			fn.AppendContainer(fc.FlexNode(), p.item)
			children = append(children, flexChild{node: p.node})
			continue
		}
		proxy := fn.AppendLeaf(p.node.Measure, p.item)
		children = append(children, flexChild{node: p.node, proxy: proxy})
	}
	f.children = children
	f.deco = deco
	f.mu.Unlock()

	stale := make([]Node, len(old))
	for i, c := range old {
		stale[i] = c.node
	}
	f.retire(stale...)
	f.MarkPropsSet()
	return nil
}

// Measure runs the solver when this container is the top of its solver
// tree; a nested container reports the size its ancestors computed.
func (f *Flexbox) Measure(c layout.Constraints) graphics.Size {
	f.MarkMeasured()
	return f.FlexNode().Calculate(c)
}

// LayoutChildren assigns solver results to children, then recurses.
func (f *Flexbox) LayoutChildren() {
	fn := f.FlexNode()
	if fn.IsRoot() {
		fn.Calculate(layout.Tight(f.Frame().Size()))
	}
	f.mu.RLock()
	children := f.children
	f.mu.RUnlock()
	for i, c := range children {
		c.node.SetFrame(fn.ChildFrame(i))
		if cc, ok := c.node.(Container); ok {
			cc.LayoutChildren()
		}
	}
	f.setState(StateFramed)
}

// Children returns the current children in declaration order.
func (f *Flexbox) Children() []Node {
	f.mu.RLock()
	defer f.mu.RUnlock()
	nodes := make([]Node, len(f.children))
	for i, c := range f.children {
		nodes[i] = c.node
	}
	return nodes
}

// ChildNeedsLayout dirties the proxy wrapping child, if it has one.
func (f *Flexbox) ChildNeedsLayout(child Node) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, c := range f.children {
		if c.node == child {
			if c.proxy != nil {
				c.proxy.MarkDirty()
			}
			return
		}
	}
}

func (f *Flexbox) View(ui *platform.UIContext) platform.View {
	v := f.NativeView(ui, func(p platform.Platform) platform.View { return p.NewContainerView() }).(platform.ContainerView)
	children := f.Children()
	views := make([]platform.View, len(children))
	for i, c := range children {
		views[i] = c.View(ui)
	}
	v.SetChildren(views)
	f.deco.Apply(v, f.Frame(), f.ctx)
	return v
}

func readContainerStyle(r *props.Reader, density float64) layout.ContainerStyle {
	return layout.ContainerStyle{
		FlexDirection:  readEnum(r, "flex-direction", layout.FlexDirectionNames),
		FlexWrap:       readEnum(r, "flex-wrap", layout.FlexWrapNames),
		AlignItems:     readEnum(r, "align-items", layout.AlignItemsNames),
		AlignContent:   readEnum(r, "align-content", layout.AlignContentNames),
		JustifyContent: readEnum(r, "justify-content", layout.JustifyNames),
		Padding: layout.Edges{
			All:    readLength(r, "padding", density, false),
			Start:  readLength(r, "padding-start", density, false),
			End:    readLength(r, "padding-end", density, false),
			Top:    readLength(r, "padding-top", density, false),
			Bottom: readLength(r, "padding-bottom", density, false),
		},
	}
}

func readItemStyle(r *props.Reader, density float64) layout.ItemStyle {
	return layout.ItemStyle{
		PositionType: readEnum(r, "position", layout.PositionTypeNames),
		Position: layout.Edges{
			Start:  readLength(r, "start", density, false),
			End:    readLength(r, "end", density, false),
			Top:    readLength(r, "top", density, false),
			Bottom: readLength(r, "bottom", density, false),
		},
		Margin: layout.Edges{
			All:    readLength(r, "margin", density, true),
			Start:  readLength(r, "margin-start", density, true),
			End:    readLength(r, "margin-end", density, true),
			Top:    readLength(r, "margin-top", density, true),
			Bottom: readLength(r, "margin-bottom", density, true),
		},
		Width:       readLength(r, "width", density, false),
		MinWidth:    readLength(r, "min-width", density, false),
		MaxWidth:    readLength(r, "max-width", density, false),
		Height:      readLength(r, "height", density, false),
		MinHeight:   readLength(r, "min-height", density, false),
		MaxHeight:   readLength(r, "max-height", density, false),
		FlexGrow:    readNumber(r, "flex-grow"),
		FlexShrink:  readNumber(r, "flex-shrink"),
		FlexBasis:   readLength(r, "flex-basis", density, false),
		AlignSelf:   readEnum(r, "align-self", layout.AlignSelfNames),
		AspectRatio: readNumber(r, "aspect-ratio"),
	}
}

// readEnum maps a string prop through names. Absent keys give the zero
// value, which the solver bridge treats as "use the default".
func readEnum[T any](r *props.Reader, key string, names map[string]T) T {
	var zero T
	allowed := make([]string, 0, len(names))
	for name := range names {
		allowed = append(allowed, name)
	}
	sort.Strings(allowed)
	s, ok := r.Enum(key, allowed...)
	if !ok {
		return zero
	}
	return names[s]
}

// readLength reads a dimension, resolving points to pixels and passing
// percent through. allowAuto admits the literal "auto".
func readLength(r *props.Reader, key string, density float64, allowAuto bool) layout.Length {
	v := r.Value(key)
	if s, ok := v.AsString(); ok {
		if allowAuto && s == "auto" {
			return layout.Auto()
		}
		r.Fail(key, v, "want {value, unit}")
		return layout.Length{}
	}
	d, ok := r.Dimension(key)
	if !ok {
		return layout.Length{}
	}
	if d.Unit == props.UnitPercent {
		return layout.Pct(d.Value)
	}
	px, _ := d.ToPixels(density)
	return layout.Px(px)
}

func readNumber(r *props.Reader, key string) layout.Number {
	n, ok := r.Number(key)
	if !ok {
		return layout.Number{}
	}
	return layout.Num(n)
}
