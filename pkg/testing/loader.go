package testing

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/go-drift/shard/pkg/graphics"
)

// FakeLoader is an image loader whose loads finish only when the test says
// so. It is safe for concurrent use.
type FakeLoader struct {
	mu      sync.Mutex
	pending map[string][]fakeLoad
	started int
}

type fakeLoad struct {
	ctx  context.Context
	done func(graphics.Size, error)
}

// NewFakeLoader creates a loader with no pending loads.
func NewFakeLoader() *FakeLoader {
	return &FakeLoader{pending: make(map[string][]fakeLoad)}
}

// Load records the request.
func (l *FakeLoader) Load(ctx context.Context, src string, done func(graphics.Size, error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending[src] = append(l.pending[src], fakeLoad{ctx: ctx, done: done})
	l.started++
}

// Pending returns the sources with unfinished, uncancelled loads, sorted.
func (l *FakeLoader) Pending() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var srcs []string
	for src, loads := range l.pending {
		for _, ld := range loads {
			if ld.ctx.Err() == nil {
				srcs = append(srcs, src)
				break
			}
		}
	}
	sort.Strings(srcs)
	return srcs
}

// Started returns how many loads were requested in total.
func (l *FakeLoader) Started() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}

// Complete finishes every pending load of src with a width by height pixel
// size. It reports how many live loads were completed; cancelled loads are
// dropped.
func (l *FakeLoader) Complete(src string, width, height float64) int {
	return l.finish(src, graphics.Size{Width: width, Height: height}, nil)
}

// Fail finishes every pending load of src with err.
func (l *FakeLoader) Fail(src string, err error) int {
	if err == nil {
		err = errors.New("load failed")
	}
	return l.finish(src, graphics.Size{}, err)
}

func (l *FakeLoader) finish(src string, size graphics.Size, err error) int {
	l.mu.Lock()
	loads := l.pending[src]
	delete(l.pending, src)
	l.mu.Unlock()

	n := 0
	for _, ld := range loads {
		if ld.ctx.Err() != nil {
			continue
		}
		ld.done(size, err)
		n++
	}
	return n
}
