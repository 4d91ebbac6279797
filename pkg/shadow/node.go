// Package shadow builds and lays out the shadow tree: platform-independent
// nodes that interpret props and compute sizes before any native view
// exists.
//
// A node moves through Constructed, PropsSet, Measured, Framed and
// Materialized. SetProps may run again from any later state. SetProps and
// Measure may run off the UI goroutine; View must run on it and is the only
// step that creates or mutates native views.
//
// Children hold a weak reference to their parent, so a discarded subtree
// never keeps its former ancestors alive and RequestLayout on it finds no
// live root.
package shadow

import (
	"fmt"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
)

// State is the lifecycle position of a node.
type State int32

const (
	StateConstructed State = iota
	StatePropsSet
	StateMeasured
	StateFramed
	StateMaterialized
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StatePropsSet:
		return "props-set"
	case StateMeasured:
		return "measured"
	case StateFramed:
		return "framed"
	case StateMaterialized:
		return "materialized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Node is one element of the shadow tree. Implementations embed Base.
type Node interface {
	// Kind returns the registered kind the node was created for.
	Kind() string
	// SetProps validates props and stores typed fields. It never touches
	// native views. Containers rebuild their children here.
	SetProps(v props.Value) error
	// Measure returns the node's size under c without assigning frames.
	Measure(c layout.Constraints) graphics.Size
	// View returns the node's native view, creating it on the first call
	// and updating the same view afterwards.
	View(ui *platform.UIContext) platform.View
	// Frame returns the last frame assigned by layout, relative to the parent.
	Frame() graphics.Rect
	SetFrame(frame graphics.Rect)
	// Parent returns the parent node, or nil for roots and detached nodes.
	Parent() Node
	State() State

	base() *Base
}

// Container is a node with children that it positions itself.
type Container interface {
	Node
	// LayoutChildren assigns a frame to every child, then lays out child
	// containers, based on the container's own frame.
	LayoutChildren()
	Children() []Node
}

// LayoutOwner is a container that caches child measurements and must
// forget them when a child asks for layout.
type LayoutOwner interface {
	Container
	ChildNeedsLayout(child Node)
}

// link is the target of children's weak parent references. It is a
// separate allocation owned only by the node's Base.
type link struct {
	node Node
}

// Base carries the state every node kind shares. Embed it in custom kinds.
type Base struct {
	ctx  *Context
	kind string
	self *link

	mu     sync.Mutex
	parent weak.Pointer[link]
	stale  []Node

	rooted   atomic.Bool
	detached atomic.Bool
	state    atomic.Int32

	// frame and handle are only used on the UI goroutine after handoff.
	frame  graphics.Rect
	handle platform.ViewHandle
}

func (b *Base) base() *Base { return b }

func (b *Base) init(ctx *Context, kind string, self Node, parent Node) {
	b.ctx = ctx
	b.kind = kind
	b.self = &link{node: self}
	if parent != nil {
		b.parent = weak.Make(parent.base().self)
	}
}

// Kind returns the registered kind.
func (b *Base) Kind() string { return b.kind }

// Context returns the tree context the node was created in.
func (b *Base) Context() *Context { return b.ctx }

// Frame returns the last assigned frame.
func (b *Base) Frame() graphics.Rect { return b.frame }

// SetFrame stores the frame computed by the parent.
func (b *Base) SetFrame(frame graphics.Rect) {
	b.frame = frame
	b.setState(StateFramed)
}

// State returns the lifecycle state.
func (b *Base) State() State { return State(b.state.Load()) }

func (b *Base) setState(s State) { b.state.Store(int32(s)) }

// MarkPropsSet records a successful SetProps. Every call after the first
// drops the measurements cached for the node by its ancestors and requests
// a layout pass.
func (b *Base) MarkPropsSet() {
	prev := State(b.state.Swap(int32(StatePropsSet)))
	if prev == StateConstructed || b.detached.Load() {
		return
	}
	dirtyAncestors(b.self.node)
	RequestLayout(b.self.node)
}

// MarkMeasured records a Measure call.
func (b *Base) MarkMeasured() { b.setState(StateMeasured) }

// Parent returns the parent node if it is still alive and attached.
func (b *Base) Parent() Node {
	b.mu.Lock()
	p := b.parent
	b.mu.Unlock()
	if l := p.Value(); l != nil {
		return l.node
	}
	return nil
}

// Detached reports whether the node was removed from its tree.
func (b *Base) Detached() bool { return b.detached.Load() }

// RequestLayout asks for a future layout pass on the node's tree.
func (b *Base) RequestLayout() {
	RequestLayout(b.self.node)
}

// NativeView returns the node's native view, creating it with create the
// first time. Views of children discarded since the last call are released
// here, on the UI goroutine.
func (b *Base) NativeView(ui *platform.UIContext, create func(platform.Platform) platform.View) platform.View {
	b.releaseStale(ui)
	b.setState(StateMaterialized)
	if b.handle != 0 {
		if v := ui.Views().Get(b.handle); v != nil {
			return v
		}
	}
	v := create(ui.Platform())
	b.handle = ui.Views().Register(v)
	return v
}

// retire detaches children replaced by a new SetProps. Their native views
// are released at the next materialization.
func (b *Base) retire(nodes ...Node) {
	if len(nodes) == 0 {
		return
	}
	for _, n := range nodes {
		if n != nil {
			detach(n)
		}
	}
	b.mu.Lock()
	b.stale = append(b.stale, nodes...)
	b.mu.Unlock()
}

func (b *Base) releaseStale(ui *platform.UIContext) {
	b.mu.Lock()
	stale := b.stale
	b.stale = nil
	b.mu.Unlock()
	for _, n := range stale {
		if n != nil {
			Release(ui, n)
		}
	}
}

// detachHook is implemented by kinds with work to cancel when they leave
// the tree.
type detachHook interface {
	onDetach()
}

// detach marks n and its subtree as no longer part of any tree.
func detach(n Node) {
	b := n.base()
	if b.detached.Swap(true) {
		return
	}
	b.mu.Lock()
	b.parent = weak.Pointer[link]{}
	b.mu.Unlock()
	b.rooted.Store(false)
	if h, ok := n.(detachHook); ok {
		h.onDetach()
	}
	if c, ok := n.(Container); ok {
		for _, child := range c.Children() {
			detach(child)
		}
	}
}

// Release destroys the native views of n and its subtree. It must run on
// the UI goroutine.
func Release(ui *platform.UIContext, n Node) {
	b := n.base()
	b.releaseStale(ui)
	if c, ok := n.(Container); ok {
		for _, child := range c.Children() {
			Release(ui, child)
		}
	}
	if b.handle != 0 {
		ui.Views().Dispose(b.handle)
		b.handle = 0
	}
}

// Attach marks n as the root of a live tree. Layout requests from its
// subtree reach the tree's pipeline only while it is attached.
func Attach(n Node) {
	b := n.base()
	b.detached.Store(false)
	b.rooted.Store(true)
}

// Detach removes n from its tree. Later RequestLayout calls and async
// completions inside the subtree become no-ops.
func Detach(n Node) {
	detach(n)
}
