package layout

import (
	"sync"
	"sync/atomic"
)

// Pipeline records that a tree needs layout.
//
// ScheduleLayout may be called from any goroutine and only sets a flag and
// notifies the listener. The owner of the tree runs the pass on its own
// schedule through Flush, so requesting layout never lays out synchronously.
type Pipeline struct {
	needsLayout atomic.Bool
	passes      atomic.Int64

	mu       sync.Mutex
	listener func()
}

// ScheduleLayout marks the tree as needing layout. The listener is told
// once per transition from clean to dirty.
func (p *Pipeline) ScheduleLayout() {
	if p.needsLayout.Swap(true) {
		return
	}
	p.mu.Lock()
	fn := p.listener
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetListener installs the function called when layout becomes pending.
// It must not block; typically it posts a task to the UI loop.
func (p *Pipeline) SetListener(fn func()) {
	p.mu.Lock()
	p.listener = fn
	p.mu.Unlock()
}

// NeedsLayout reports if layout has been requested since the last flush.
func (p *Pipeline) NeedsLayout() bool {
	return p.needsLayout.Load()
}

// Flush runs layout when force is set or a request is pending. The pending
// flag is cleared before run, so requests made during the pass schedule
// another one. It reports whether run was called.
func (p *Pipeline) Flush(force bool, run func()) bool {
	pending := p.needsLayout.Swap(false)
	if !force && !pending {
		return false
	}
	p.passes.Add(1)
	run()
	return true
}

// Passes returns how many layout passes have been flushed.
func (p *Pipeline) Passes() int64 {
	return p.passes.Load()
}
