package platform

import (
	"context"
	"sync"

	"github.com/go-drift/shard/pkg/errors"
)

// UIContext proves the caller runs on the UI goroutine. It is only handed
// to tasks executed by a Loop.
type UIContext struct {
	loop *Loop
}

// Platform returns the view factory of the loop.
func (ui *UIContext) Platform() Platform { return ui.loop.platform }

// Views returns the registry owning every native view of the loop.
func (ui *UIContext) Views() *ViewRegistry { return ui.loop.views }

// Loop serializes UI work onto one goroutine. Tasks are posted from any
// goroutine and run in order, either by Run on a dedicated goroutine or by
// Pump on the caller's.
type Loop struct {
	platform Platform
	views    *ViewRegistry
	ui       *UIContext

	mu     sync.Mutex
	queue  []func(*UIContext)
	closed bool
	wake   chan struct{}
	// running serializes Pump and Run so tasks never overlap.
	running sync.Mutex
}

// NewLoop creates a loop whose tasks build views with p.
func NewLoop(p Platform) *Loop {
	l := &Loop{
		platform: p,
		views:    NewViewRegistry(),
		wake:     make(chan struct{}, 1),
	}
	l.ui = &UIContext{loop: l}
	return l
}

// Views returns the loop's view registry.
func (l *Loop) Views() *ViewRegistry { return l.views }

// Post queues fn to run on the UI goroutine. It reports false once the
// loop is closed.
func (l *Loop) Post(fn func(ui *UIContext)) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Pump runs queued tasks on the calling goroutine until the queue is
// empty, including tasks posted by the tasks themselves. It returns the
// number of tasks run. Use it instead of Run in tests and tools.
func (l *Loop) Pump() int {
	l.running.Lock()
	defer l.running.Unlock()
	n := 0
	for {
		batch := l.take()
		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			l.runTask(fn)
			n++
		}
	}
}

// Run executes tasks until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Pump()
		l.mu.Lock()
		closed := l.closed
		l.mu.Unlock()
		if closed {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops accepting tasks. Already queued tasks still run.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) take() []func(*UIContext) {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.queue
	l.queue = nil
	return batch
}

func (l *Loop) runTask(fn func(*UIContext)) {
	defer errors.Recover("platform.Loop.task")
	fn(l.ui)
}
