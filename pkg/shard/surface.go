package shard

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
	"github.com/go-drift/shard/pkg/shadow"
)

// Handler receives the payload of an action.
type Handler func(value props.Value)

// Surface shows one tree at a time on a UI loop. Trees are built off the
// loop; layout and materialization run as loop tasks. Only the most recent
// Load is installed.
type Surface struct {
	loop   *platform.Loop
	config *shadow.Config

	mu       sync.RWMutex
	handlers map[string]Handler
	observer func(shadow.Action)

	gen atomic.Uint64

	// UI goroutine only.
	root   *Root
	size   graphics.Size
	view   platform.View
	onView func(platform.View)
}

// NewSurface creates a surface. A nil cfg means shadow.DefaultConfig.
func NewSurface(loop *platform.Loop, cfg *shadow.Config) *Surface {
	if cfg == nil {
		cfg = shadow.DefaultConfig()
	}
	return &Surface{loop: loop, config: cfg, handlers: make(map[string]Handler)}
}

// On registers the handler for actions named name, replacing any earlier
// one. A nil handler removes it.
func (s *Surface) On(name string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h == nil {
		delete(s.handlers, name)
		return
	}
	s.handlers[name] = h
}

// Off removes the handler for name.
func (s *Surface) Off(name string) {
	s.On(name, nil)
}

// Observe sets a function called with every action before it is routed,
// whether or not a handler is registered. Nil removes it.
func (s *Surface) Observe(fn func(shadow.Action)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

// OnView sets a callback run on the UI goroutine whenever the top native
// view is (re)materialized, so the host can attach it.
func (s *Surface) OnView(fn func(platform.View)) {
	s.loop.Post(func(*platform.UIContext) { s.onView = fn })
}

// Load builds desc in the background and installs it on the loop,
// discarding the previous tree. done, if set, runs on the UI goroutine
// with the build error, or nil once the tree is shown. A Load superseded
// by a later one is dropped and done receives nothing.
func (s *Surface) Load(desc props.Value, done func(error)) {
	gen := s.gen.Add(1)
	go func() {
		defer errors.Recover("shard.Surface.Load")
		root, err := NewRoot(s.config, desc)
		posted := s.loop.Post(func(ui *platform.UIContext) {
			if gen != s.gen.Load() {
				if root != nil {
					root.Discard(nil)
				}
				return
			}
			if err == nil {
				s.install(ui, root)
			}
			if done != nil {
				done(err)
			}
		})
		if !posted {
			if root != nil {
				root.Discard(nil)
			}
			if done != nil {
				done(platform.ErrClosed)
			}
		}
	}()
}

// LoadDocument loads the root of doc. A document carrying only an error
// completes with a DocumentError and keeps the current tree.
func (s *Surface) LoadDocument(doc *Document, done func(error)) {
	if err := doc.Err(); err != nil {
		s.gen.Add(1)
		if !s.loop.Post(func(*platform.UIContext) {
			if done != nil {
				done(err)
			}
		}) && done != nil {
			done(platform.ErrClosed)
		}
		return
	}
	s.Load(doc.Root, done)
}

// SetSize changes the surface size. Layout runs on the loop only if the
// size actually changed.
func (s *Surface) SetSize(size graphics.Size) error {
	if !s.loop.Post(func(ui *platform.UIContext) {
		s.size = size
		s.relayout(ui)
	}) {
		return platform.ErrClosed
	}
	return nil
}

// Root returns the installed tree. UI goroutine only.
func (s *Surface) Root() *Root { return s.root }

// View returns the top native view of the installed tree. UI goroutine only.
func (s *Surface) View() platform.View { return s.view }

// Close discards the installed tree.
func (s *Surface) Close() {
	s.gen.Add(1)
	s.loop.Post(func(ui *platform.UIContext) {
		if s.root != nil {
			s.root.Discard(ui)
			s.root, s.view = nil, nil
		}
	})
}

func (s *Surface) install(ui *platform.UIContext, root *Root) {
	if s.root != nil {
		s.root.Discard(ui)
	}
	s.root, s.view = root, nil
	ctx := root.Context()
	ctx.SetActionHandler(s.dispatch)
	ctx.Pipeline().SetListener(func() {
		s.loop.Post(func(ui *platform.UIContext) {
			if s.root == root {
				s.relayout(ui)
			}
		})
	})
	s.relayout(ui)
}

func (s *Surface) relayout(ui *platform.UIContext) {
	if s.root == nil {
		return
	}
	if !s.root.Layout(ui, s.size) && s.view != nil {
		return
	}
	s.view = s.root.View(ui)
	if s.onView != nil {
		s.onView(s.view)
	}
}

func (s *Surface) dispatch(a shadow.Action) {
	s.mu.RLock()
	h := s.handlers[a.Name]
	observe := s.observer
	s.mu.RUnlock()
	defer errors.Recover("shard.Surface.handler")
	if observe != nil {
		observe(a)
	}
	if h == nil {
		s.config.Logger().Debug("no handler for action", "action", a.Name)
		return
	}
	h(a.Value)
}
