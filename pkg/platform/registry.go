package platform

import (
	"sync"
	"sync/atomic"
)

// ViewHandle identifies a native view owned by a ViewRegistry. The zero
// handle never refers to a view.
type ViewHandle int64

// ViewRegistry owns native views by handle. A shadow node keeps the handle
// of its view and releases it explicitly when the node is torn down.
type ViewRegistry struct {
	views  map[ViewHandle]View
	nextID atomic.Int64
	mu     sync.RWMutex
}

// NewViewRegistry returns an empty registry.
func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{views: make(map[ViewHandle]View)}
}

// Register takes ownership of v and returns its handle.
func (r *ViewRegistry) Register(v View) ViewHandle {
	h := ViewHandle(r.nextID.Add(1))
	r.mu.Lock()
	r.views[h] = v
	r.mu.Unlock()
	return h
}

// Get returns the view for h, or nil once h has been disposed.
func (r *ViewRegistry) Get(h ViewHandle) View {
	r.mu.RLock()
	v := r.views[h]
	r.mu.RUnlock()
	return v
}

// Dispose destroys the view for h. Unknown handles are ignored.
func (r *ViewRegistry) Dispose(h ViewHandle) {
	r.mu.Lock()
	v, ok := r.views[h]
	if ok {
		delete(r.views, h)
	}
	r.mu.Unlock()

	if ok {
		v.Dispose()
	}
}

// Len returns the number of live views.
func (r *ViewRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}
