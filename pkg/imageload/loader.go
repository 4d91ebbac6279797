// Package imageload resolves the natural pixel size of images referenced by
// documents. Only the image header is decoded; pixels are never kept.
package imageload

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds one fetch.
const DefaultTimeout = 30 * time.Second

// Options configures a Loader. Zero fields take defaults.
type Options struct {
	Client  *http.Client
	Timeout time.Duration
	Logger  hclog.Logger
}

// Loader fetches images over HTTP(S) or from local files and reports their
// size. Concurrent requests for one source share a single fetch and results
// are cached for the life of the loader.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	logger  hclog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	sizes map[string]graphics.Size
}

// New creates a loader.
func New(opts Options) *Loader {
	l := &Loader{
		client:  opts.Client,
		timeout: opts.Timeout,
		logger:  opts.Logger,
		sizes:   make(map[string]graphics.Size),
	}
	if l.client == nil {
		l.client = cleanhttp.DefaultPooledClient()
	}
	if l.timeout <= 0 {
		l.timeout = DefaultTimeout
	}
	if l.logger == nil {
		l.logger = hclog.NewNullLogger()
	}
	return l
}

// Load resolves src in the background and calls done with the result unless
// ctx is cancelled first.
func (l *Loader) Load(ctx context.Context, src string, done func(size graphics.Size, err error)) {
	go func() {
		size, err := l.Size(ctx, src)
		if ctx.Err() != nil {
			return
		}
		done(size, err)
	}()
}

// Size returns the natural pixel size of src.
func (l *Loader) Size(ctx context.Context, src string) (graphics.Size, error) {
	l.mu.RLock()
	size, ok := l.sizes[src]
	l.mu.RUnlock()
	if ok {
		return size, nil
	}

	ch := l.group.DoChan(src, func() (any, error) {
		// The shared fetch outlives any single caller's cancellation.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		size, err := l.fetch(fetchCtx, src)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.sizes[src] = size
		l.mu.Unlock()
		return size, nil
	})
	select {
	case <-ctx.Done():
		return graphics.Size{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return graphics.Size{}, res.Err
		}
		return res.Val.(graphics.Size), nil
	}
}

// Cached reports how many sources have a known size.
func (l *Loader) Cached() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sizes)
}

func (l *Loader) fetch(ctx context.Context, src string) (graphics.Size, error) {
	u, err := url.Parse(src)
	if err != nil {
		return graphics.Size{}, fmt.Errorf("invalid image source %q: %w", src, err)
	}
	l.logger.Debug("fetching image", "src", src)
	switch u.Scheme {
	case "http", "https":
		return l.fetchHTTP(ctx, src)
	case "file":
		return decodeFile(u.Path)
	case "":
		return decodeFile(src)
	default:
		return graphics.Size{}, fmt.Errorf("unsupported image scheme %q", u.Scheme)
	}
}

func (l *Loader) fetchHTTP(ctx context.Context, src string) (graphics.Size, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return graphics.Size{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return graphics.Size{}, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return graphics.Size{}, fmt.Errorf("fetch failed: %s returned %s", src, resp.Status)
	}
	return decode(resp.Body, src)
}

func decodeFile(path string) (graphics.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return graphics.Size{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return decode(f, path)
}

func decode(r io.Reader, src string) (graphics.Size, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return graphics.Size{}, fmt.Errorf("failed to decode %s: %w", src, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return graphics.Size{}, fmt.Errorf("%s image %s has no pixels", format, src)
	}
	return graphics.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}
