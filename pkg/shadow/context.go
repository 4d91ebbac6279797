package shadow

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/props"
)

// Action is an interaction event raised by a node, such as a tap.
type Action struct {
	// Name selects the handler on the embedding surface.
	Name  string
	Value props.Value
}

// ImageLoader resolves the natural pixel size of an image. done may be
// called on any goroutine, at most once, and is not called after ctx is
// cancelled.
type ImageLoader interface {
	Load(ctx context.Context, src string, done func(size graphics.Size, err error))
}

// Context is shared by every node of one tree. It carries the
// configuration, the tree's layout pipeline and the action sink.
type Context struct {
	config   *Config
	pipeline *layout.Pipeline

	mu       sync.RWMutex
	onAction func(Action)
}

// NewContext creates a tree context. A nil config means DefaultConfig.
func NewContext(cfg *Config) *Context {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Context{config: cfg, pipeline: &layout.Pipeline{}}
}

// Config returns the tree's configuration.
func (c *Context) Config() *Config { return c.config }

// Pipeline returns the tree's layout pipeline.
func (c *Context) Pipeline() *layout.Pipeline { return c.pipeline }

// SetActionHandler installs the sink for actions raised by nodes.
func (c *Context) SetActionHandler(fn func(Action)) {
	c.mu.Lock()
	c.onAction = fn
	c.mu.Unlock()
}

// Dispatch delivers an action to the sink, if any.
func (c *Context) Dispatch(a Action) {
	c.mu.RLock()
	fn := c.onAction
	c.mu.RUnlock()
	if fn != nil {
		fn(a)
	}
}

// Create instantiates kind with the given parent. The node has no props yet.
func (c *Context) Create(kind string, parent Node) (Node, error) {
	f, ok := c.config.factories[kind]
	if !ok {
		return nil, c.config.unknownKind(kind)
	}
	n := f()
	n.base().init(c, kind, n, parent)
	return n, nil
}

// Build creates a node from a {kind, props} description and applies its
// props, recursively building any children. On error no node is returned.
func (c *Context) Build(desc props.Value, parent Node) (Node, error) {
	r := props.NewReader("node", desc)
	kind := r.RequiredString("kind")
	if err := r.Err(); err != nil {
		return nil, err
	}
	n, err := c.Create(kind, parent)
	if err != nil {
		return nil, err
	}
	if err := n.SetProps(desc.Get("props")); err != nil {
		return nil, err
	}
	return n, nil
}

// Build constructs a detached tree from desc using cfg. The caller attaches
// the root once it owns it. A nil cfg means DefaultConfig.
func Build(cfg *Config, desc props.Value) (Node, *Context, error) {
	ctx := NewContext(cfg)
	ctx.config.logger.Debug("building tree", "kind", desc.Get("kind").String())
	n, err := ctx.Build(desc, nil)
	if err != nil {
		return nil, nil, err
	}
	return n, ctx, nil
}

// buildChild builds a child description, prefixing errors with path.
func (c *Context) buildChild(desc props.Value, parent Node, path string) (Node, error) {
	n, err := c.Build(desc, parent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
