package imageload

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-drift/shard/pkg/graphics"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSizeOverHTTP(t *testing.T) {
	data := pngBytes(t, 3, 2)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/a.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	l := New(Options{})
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			size, err := l.Size(context.Background(), srv.URL+"/a.png")
			if err != nil {
				t.Errorf("Size: %v", err)
				return
			}
			if size != (graphics.Size{Width: 3, Height: 2}) {
				t.Errorf("size = %+v, want 3x2", size)
			}
		}()
	}
	wg.Wait()
	if _, err := l.Size(context.Background(), srv.URL+"/a.png"); err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n < 1 || n > 8 {
		t.Errorf("hits = %d", n)
	}
	before := hits.Load()
	l.Size(context.Background(), srv.URL+"/a.png")
	if hits.Load() != before {
		t.Error("cached size was fetched again")
	}
	if l.Cached() != 1 {
		t.Errorf("Cached() = %d, want 1", l.Cached())
	}

	if _, err := l.Size(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestSizeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.png")
	if err := os.WriteFile(path, pngBytes(t, 5, 7), 0o644); err != nil {
		t.Fatal(err)
	}
	l := New(Options{})
	for _, src := range []string{path, "file://" + path} {
		size, err := l.Size(context.Background(), src)
		if err != nil {
			t.Fatalf("Size(%q): %v", src, err)
		}
		if size != (graphics.Size{Width: 5, Height: 7}) {
			t.Errorf("Size(%q) = %+v, want 5x7", src, size)
		}
	}
}

func TestSizeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.txt")
	os.WriteFile(path, []byte("hello"), 0o644)

	l := New(Options{})
	for _, src := range []string{"ftp://example.com/a.png", path, filepath.Join(t.TempDir(), "absent.png")} {
		if _, err := l.Size(context.Background(), src); err == nil {
			t.Errorf("Size(%q) succeeded", src)
		}
	}
}

func TestLoadCallsDone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.png")
	os.WriteFile(path, pngBytes(t, 4, 4), 0o644)

	l := New(Options{})
	got := make(chan graphics.Size, 1)
	l.Load(context.Background(), path, func(size graphics.Size, err error) {
		if err != nil {
			t.Errorf("done: %v", err)
		}
		got <- size
	})
	select {
	case size := <-got:
		if size.Width != 4 {
			t.Errorf("size = %+v", size)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("done not called")
	}
}

func TestLoadCancelledSkipsDone(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write(pngBytes(t, 1, 1))
	}))
	defer srv.Close()
	defer close(release)

	l := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	called := make(chan struct{}, 1)
	l.Load(ctx, srv.URL+"/slow.png", func(graphics.Size, error) { called <- struct{}{} })
	cancel()

	select {
	case <-called:
		t.Error("done called after cancellation")
	case <-time.After(100 * time.Millisecond):
	}
}
