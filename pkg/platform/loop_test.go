package platform

import (
	"context"
	"testing"
	"time"

	"github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
)

type stubView struct{ disposed bool }

func (v *stubView) SetFrame(graphics.Rect) {}
func (v *stubView) SetStyle(Style)         {}
func (v *stubView) SetTapHandler(func())   {}
func (v *stubView) Dispose()               { v.disposed = true }

func TestViewRegistry(t *testing.T) {
	r := NewViewRegistry()
	a, b := &stubView{}, &stubView{}
	ha, hb := r.Register(a), r.Register(b)
	if ha == 0 || hb == 0 || ha == hb {
		t.Fatalf("handles = %d, %d; want distinct non-zero", ha, hb)
	}
	if r.Get(ha) != a {
		t.Error("Get returned the wrong view")
	}
	r.Dispose(ha)
	if !a.disposed {
		t.Error("Dispose should dispose the view")
	}
	if r.Get(ha) != nil {
		t.Error("disposed handle should not resolve")
	}
	r.Dispose(ha)
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestLoopPumpRunsInOrder(t *testing.T) {
	l := NewLoop(nil)
	var got []int
	l.Post(func(ui *UIContext) {
		got = append(got, 1)
		ui.loop.Post(func(*UIContext) { got = append(got, 3) })
	})
	l.Post(func(*UIContext) { got = append(got, 2) })

	if n := l.Pump(); n != 3 {
		t.Errorf("Pump() = %d, want 3", n)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	var captured *errors.PanicError
	old := errors.CurrentHandler()
	errors.SetHandler(&panicCatcher{fn: func(p *errors.PanicError) { captured = p }})
	defer errors.SetHandler(old)

	l := NewLoop(nil)
	ran := false
	l.Post(func(*UIContext) { panic("boom") })
	l.Post(func(*UIContext) { ran = true })
	l.Pump()

	if captured == nil || captured.Value != "boom" {
		t.Errorf("captured = %v, want panic boom", captured)
	}
	if !ran {
		t.Error("tasks after a panic should still run")
	}
}

func TestLoopRunAndClose(t *testing.T) {
	l := NewLoop(nil)
	done := make(chan struct{})
	go func() {
		l.Run(context.Background())
		close(done)
	}()

	ran := make(chan struct{})
	l.Post(func(*UIContext) { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("posted task did not run")
	}

	l.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	if l.Post(func(*UIContext) {}) {
		t.Error("Post after Close should report false")
	}
}

func TestLoopRunContextCancel(t *testing.T) {
	l := NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

type panicCatcher struct {
	fn func(*errors.PanicError)
}

func (c *panicCatcher) HandleError(*errors.ShardError) {}
func (c *panicCatcher) HandlePanic(p *errors.PanicError) {
	c.fn(p)
}
