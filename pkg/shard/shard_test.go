package shard

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/platform/headless"
	"github.com/go-drift/shard/pkg/props"
	"github.com/go-drift/shard/pkg/shadow"
)

func decode(t *testing.T, doc string) props.Value {
	t.Helper()
	v, err := props.DecodeJSON([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func pumpUntil(t *testing.T, loop *platform.Loop, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		loop.Pump()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
		noRoot  bool
	}{
		{name: "bare root", doc: `{"kind": "solid-color"}`},
		{name: "envelope", doc: `{"version": "1.2.0", "root": {"kind": "solid-color"}}`},
		{name: "short version", doc: `{"version": "v1", "root": {"kind": "solid-color"}}`},
		{name: "future major", doc: `{"version": "2.0.0", "root": {"kind": "solid-color"}}`, wantErr: "version"},
		{name: "garbage version", doc: `{"version": "latest", "root": {"kind": "solid-color"}}`, wantErr: "version"},
		{name: "root not object", doc: `{"root": 3}`, wantErr: "root"},
		{name: "empty", doc: `{}`, wantErr: "root"},
		{name: "error only", doc: `{"error": "not found"}`, noRoot: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseJSON([]byte(tt.doc))
			if tt.wantErr != "" {
				var schema *errors.SchemaError
				if !stderrors.As(err, &schema) {
					t.Fatalf("err = %v, want SchemaError", err)
				}
				if schema.Key != tt.wantErr || schema.Kind != "document" {
					t.Errorf("error = %v, want key %q", schema, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseJSON: %v", err)
			}
			var docErr *DocumentError
			if got := stderrors.As(doc.Err(), &docErr); got != tt.noRoot {
				t.Errorf("DocumentError = %v, want %v", got, tt.noRoot)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	doc, err := ParseYAML([]byte(`
version: "1.0.0"
root:
  kind: text
  props:
    text: hello
`))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if got := doc.Root.Get("props").Get("text").String(); got != `"hello"` {
		t.Errorf("text = %s", got)
	}
}

func TestRootLayoutRunsOnlyWhenNeeded(t *testing.T) {
	loop := platform.NewLoop(headless.New())
	root, err := NewRoot(nil, decode(t, `{"kind": "flexbox", "props": {"children": [
		{"kind": "solid-color", "layout": {"width": {"value": 10, "unit": "pixel"}}}
	]}}`))
	if err != nil {
		t.Fatal(err)
	}
	if root.ID() == "" {
		t.Error("root has no id")
	}
	var ran []bool
	size := graphics.Size{Width: 100, Height: 50}
	loop.Post(func(ui *platform.UIContext) {
		ran = append(ran, root.Layout(ui, size))
		ran = append(ran, root.Layout(ui, size))
		shadow.RequestLayout(root.Node().(shadow.Container).Children()[0])
		ran = append(ran, root.Layout(ui, size))
		ran = append(ran, root.Layout(ui, graphics.Size{Width: 80, Height: 50}))
	})
	loop.Pump()
	want := []bool{true, false, true, true}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("Layout results = %v, want %v", ran, want)
		}
	}
	if got := root.Node().Frame(); got.Width() > 80 || got.Height() > 50 {
		t.Errorf("root frame = %+v, want within 80x50", got)
	}
	fit := root.Measure(layout.Loose(size))
	if fit.Width > 100 || fit.Height > 50 {
		t.Errorf("Measure = %+v, want within %+v", fit, size)
	}
}

func TestSurfaceLoadAndTap(t *testing.T) {
	loop := platform.NewLoop(headless.New())
	s := NewSurface(loop, nil)
	var got []props.Value
	s.On("buy", func(v props.Value) { got = append(got, v) })

	if err := s.SetSize(graphics.Size{Width: 200, Height: 100}); err != nil {
		t.Fatal(err)
	}
	var loaded bool
	var loadErr error
	s.Load(decode(t, `{"kind": "solid-color", "props": {"on-click": {"action": "buy", "value": "sku-1"}}}`), func(err error) {
		loaded, loadErr = true, err
	})
	pumpUntil(t, loop, func() bool { return loaded })
	if loadErr != nil {
		t.Fatalf("load: %v", loadErr)
	}

	v := s.View().(*headless.View)
	if v.Frame != graphics.RectFromLTWH(0, 0, 200, 100) {
		t.Errorf("frame = %+v", v.Frame)
	}
	v.Tap()
	if len(got) != 1 || got[0].String() != `"sku-1"` {
		t.Fatalf("handler got %v", got)
	}

	s.Off("buy")
	v.Tap()
	if len(got) != 1 {
		t.Error("removed handler still called")
	}
}

func TestSurfaceLastHandlerWins(t *testing.T) {
	loop := platform.NewLoop(headless.New())
	s := NewSurface(loop, nil)
	var calls []string
	s.On("buy", func(props.Value) { calls = append(calls, "first") })
	s.On("buy", func(props.Value) { calls = append(calls, "second") })
	if err := s.SetSize(graphics.Size{Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}

	var loaded bool
	s.Load(decode(t, `{"kind": "solid-color", "props": {"on-click": {"action": "buy"}}}`), func(error) { loaded = true })
	pumpUntil(t, loop, func() bool { return loaded })

	s.View().(*headless.View).Tap()
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v, want [second]", calls)
	}

	s.On("buy", nil)
	s.View().(*headless.View).Tap()
	if len(calls) != 1 {
		t.Errorf("nil registration kept the handler: %v", calls)
	}
}

func TestSurfaceHandlerPanicIsRecovered(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	defer errors.SetHandler(nil)

	loop := platform.NewLoop(headless.New())
	s := NewSurface(loop, nil)
	s.On(shadow.PerformAction, func(props.Value) { panic("boom") })
	var loaded bool
	s.Load(decode(t, `{"kind": "solid-color", "props": {"tap-action": "x"}}`), func(error) { loaded = true })
	pumpUntil(t, loop, func() bool { return loaded })

	s.View().(*headless.View).Tap()
	if rec.panics() != 1 {
		t.Errorf("panics reported = %d, want 1", rec.panics())
	}
}

func TestSurfaceLoadError(t *testing.T) {
	loop := platform.NewLoop(headless.New())
	s := NewSurface(loop, nil)
	var loaded bool
	var loadErr error
	s.Load(decode(t, `{"kind": "image", "props": {}}`), func(err error) { loaded, loadErr = true, err })
	pumpUntil(t, loop, func() bool { return loaded })
	var schema *errors.SchemaError
	if !stderrors.As(loadErr, &schema) {
		t.Errorf("err = %v, want SchemaError", loadErr)
	}
	if s.Root() != nil {
		t.Error("failed load installed a root")
	}

	doc, err := ParseJSON([]byte(`{"error": "gone"}`))
	if err != nil {
		t.Fatal(err)
	}
	loaded = false
	s.LoadDocument(doc, func(err error) { loaded, loadErr = true, err })
	pumpUntil(t, loop, func() bool { return loaded })
	var docErr *DocumentError
	if !stderrors.As(loadErr, &docErr) || docErr.Message != "gone" {
		t.Errorf("err = %v, want DocumentError", loadErr)
	}
}

func TestSurfaceReplaceDiscardsOldTree(t *testing.T) {
	p := headless.New()
	loop := platform.NewLoop(p)
	s := NewSurface(loop, nil)
	s.SetSize(graphics.Size{Width: 10, Height: 10})

	var loaded int
	s.Load(decode(t, `{"kind": "solid-color"}`), func(error) { loaded++ })
	pumpUntil(t, loop, func() bool { return loaded == 1 })
	first := s.Root()
	firstView := s.View().(*headless.View)

	s.Load(decode(t, `{"kind": "text", "props": {"text": "next"}}`), func(error) { loaded++ })
	pumpUntil(t, loop, func() bool { return loaded == 2 })

	if !firstView.Disposed {
		t.Error("old view not disposed")
	}
	if s.Root() == first {
		t.Error("root not replaced")
	}
	shadow.RequestLayout(first.Node())
	if first.Context().Pipeline().NeedsLayout() {
		t.Error("discarded tree accepted a layout request")
	}
	if len(p.Live()) != 1 {
		t.Errorf("live views = %d, want 1", len(p.Live()))
	}
}

func TestSurfaceDropsSupersededLoad(t *testing.T) {
	loop := platform.NewLoop(headless.New())
	s := NewSurface(loop, nil)
	var first, second bool
	s.Load(decode(t, `{"kind": "solid-color"}`), func(error) { first = true })
	s.Load(decode(t, `{"kind": "text", "props": {"text": "b"}}`), func(error) { second = true })
	pumpUntil(t, loop, func() bool { return second })
	// Give the first build time to post if it has not yet.
	time.Sleep(20 * time.Millisecond)
	loop.Pump()
	if first {
		t.Error("superseded load completed")
	}
	if s.Root().Node().Kind() != shadow.KindText {
		t.Errorf("installed kind = %s", s.Root().Node().Kind())
	}
}

type manualLoader struct {
	mu   sync.Mutex
	done []func(graphics.Size, error)
}

func (l *manualLoader) Load(_ context.Context, _ string, done func(graphics.Size, error)) {
	l.mu.Lock()
	l.done = append(l.done, done)
	l.mu.Unlock()
}

func (l *manualLoader) pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.done)
}

func TestSurfaceRelayoutsAfterImageLoad(t *testing.T) {
	loader := &manualLoader{}
	cfg := shadow.NewConfigBuilder().ImageLoader(loader).Build()
	loop := platform.NewLoop(headless.New())
	s := NewSurface(loop, cfg)
	s.SetSize(graphics.Size{Width: 300, Height: 300})
	var loaded bool
	s.Load(decode(t, `{"kind": "flexbox", "props": {
		"align-items": "flex-start",
		"children": [{"kind": "image", "props": {"src": "https://example.com/a.png"}}]
	}}`), func(error) { loaded = true })
	pumpUntil(t, loop, func() bool { return loaded })
	if loader.pending() != 1 {
		t.Fatalf("loads started = %d, want 1", loader.pending())
	}
	img := s.View().(*headless.View).Children[0]
	if img.Frame.Width() != 0 {
		t.Fatalf("image width before load = %v", img.Frame.Width())
	}

	go loader.done[0](graphics.Size{Width: 64, Height: 48}, nil)
	pumpUntil(t, loop, func() bool { return img.Frame.Width() == 64 })
	if img.Frame.Height() != 48 {
		t.Errorf("image frame = %+v, want 64x48", img.Frame)
	}
}

func TestSurfaceClosedLoop(t *testing.T) {
	loop := platform.NewLoop(headless.New())
	s := NewSurface(loop, nil)
	loop.Close()
	if err := s.SetSize(graphics.Size{Width: 1, Height: 1}); !stderrors.Is(err, platform.ErrClosed) {
		t.Errorf("SetSize err = %v, want ErrClosed", err)
	}
	got := make(chan error, 1)
	s.Load(decode(t, `{"kind": "solid-color"}`), func(err error) { got <- err })
	select {
	case err := <-got:
		if !stderrors.Is(err, platform.ErrClosed) {
			t.Errorf("Load err = %v, want ErrClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Load never completed")
	}
}

type recordingHandler struct {
	mu sync.Mutex
	n  int
}

func (h *recordingHandler) HandleError(*errors.ShardError) {}

func (h *recordingHandler) HandlePanic(*errors.PanicError) {
	h.mu.Lock()
	h.n++
	h.mu.Unlock()
}

func (h *recordingHandler) panics() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n
}
