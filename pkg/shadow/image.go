package shadow

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
)

var contentModes = map[string]platform.ContentMode{
	"center":  platform.ContentModeCenter,
	"cover":   platform.ContentModeCover,
	"contain": platform.ContentModeContain,
}

// Image is a leaf showing remote content. Its intrinsic size is unknown
// until the configured ImageLoader reports the natural pixel size, at which
// point the node requests a new layout.
type Image struct {
	Base
	natural atomic.Pointer[graphics.Size]

	mu   sync.Mutex
	src  string
	mode platform.ContentMode
	deco Decoration

	// Load state, touched by View on the UI goroutine and by onDetach.
	loading string
	cancel  context.CancelFunc
	gen     uint64
}

func (im *Image) SetProps(v props.Value) error {
	r := props.NewReader(im.Kind(), v)
	src := r.RequiredString("src")
	mode := platform.ContentModeCenter
	if m, ok := r.Enum("content-mode", "center", "cover", "contain"); ok {
		mode = contentModes[m]
	}
	deco := ReadDecoration(r, im.ctx.config.density)
	if err := r.Err(); err != nil {
		return err
	}

	im.mu.Lock()
	if src != im.src {
		im.natural.Store(nil)
	}
	im.src, im.mode, im.deco = src, mode, deco
	im.mu.Unlock()
	im.MarkPropsSet()
	return nil
}

// Measure returns the natural size once known, and zero before that,
// clamped to c.
func (im *Image) Measure(c layout.Constraints) graphics.Size {
	im.MarkMeasured()
	var size graphics.Size
	if n := im.natural.Load(); n != nil {
		size = *n
	}
	return c.Resolve(size)
}

// NaturalSize returns the loaded pixel size and whether it is known.
func (im *Image) NaturalSize() (graphics.Size, bool) {
	if n := im.natural.Load(); n != nil {
		return *n, true
	}
	return graphics.Size{}, false
}

func (im *Image) View(ui *platform.UIContext) platform.View {
	v := im.NativeView(ui, func(p platform.Platform) platform.View { return p.NewImageView() }).(platform.ImageView)
	im.mu.Lock()
	src, mode, deco := im.src, im.mode, im.deco
	im.mu.Unlock()
	v.SetSource(src)
	v.SetContentMode(mode)
	deco.Apply(v, im.Frame(), im.ctx)
	im.startLoad(src)
	return v
}

// startLoad begins resolving src unless it is already loading or loaded.
func (im *Image) startLoad(src string) {
	loader := im.ctx.config.loader
	if loader == nil || src == "" || im.Detached() {
		return
	}
	im.mu.Lock()
	if im.loading == src {
		im.mu.Unlock()
		return
	}
	if im.cancel != nil {
		im.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	im.loading, im.cancel = src, cancel
	im.gen++
	gen := im.gen
	im.mu.Unlock()

	im.ctx.config.logger.Trace("loading image", "src", src)
	loader.Load(ctx, src, func(size graphics.Size, err error) {
		im.complete(gen, src, size, err)
	})
}

func (im *Image) complete(gen uint64, src string, size graphics.Size, err error) {
	if im.Detached() {
		return
	}
	im.mu.Lock()
	current := gen == im.gen && src == im.src
	im.mu.Unlock()
	if !current {
		return
	}
	if err != nil {
		errors.ReportError("shadow.Image.load", errors.KindLoad, err)
		return
	}
	im.natural.Store(&size)
	im.RequestLayout()
}

func (im *Image) onDetach() {
	im.mu.Lock()
	if im.cancel != nil {
		im.cancel()
		im.cancel = nil
	}
	im.loading = ""
	im.gen++
	im.mu.Unlock()
}
