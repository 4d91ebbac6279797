package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/platform/headless"
	"github.com/go-drift/shard/pkg/props"
	"github.com/go-drift/shard/pkg/shadow"
	"github.com/go-drift/shard/pkg/shard"
)

const (
	// DefaultTestWidth is the default surface width in pixels.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default surface height in pixels.
	DefaultTestHeight = 600
	// DefaultDensity is the default number of pixels per point.
	DefaultDensity = 1.0
	// DefaultTimeout bounds waiting for background builds.
	DefaultTimeout = 5 * time.Second
)

// ErrSettleTimeout is returned when PumpUntil exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpUntil timed out: condition not met")

// Tester runs documents through the real build, layout and
// materialization path with a headless platform and a manually pumped UI
// loop. All methods must be called from the test goroutine.
type Tester struct {
	platform *headless.Platform
	loop     *platform.Loop
	loader   *FakeLoader
	builder  *shadow.ConfigBuilder
	surface  *shard.Surface
	size     graphics.Size
	density  float64
	handlers map[string]shard.Handler
	actions  []shadow.Action
}

// NewTester creates a tester with the default surface size and density.
// Call Cleanup when done, or use NewTesterWithT instead.
func NewTester() *Tester {
	p := headless.New()
	loader := NewFakeLoader()
	return &Tester{
		platform: p,
		loop:     platform.NewLoop(p),
		loader:   loader,
		builder:  shadow.NewConfigBuilder().ImageLoader(loader),
		size:     graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		density:  DefaultDensity,
		handlers: make(map[string]shard.Handler),
	}
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup().
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup discards the loaded tree and closes the loop.
func (t *Tester) Cleanup() {
	if t.surface != nil {
		t.surface.Close()
		t.loop.Pump()
	}
	t.loop.Close()
}

// SetSize sets the surface size. It applies immediately if a document is
// loaded; call Pump to run the layout.
func (t *Tester) SetSize(size graphics.Size) {
	t.size = size
	if t.surface != nil {
		t.surface.SetSize(size)
	}
}

// SetDensity sets pixels per point. Must be called before the first Load.
func (t *Tester) SetDensity(density float64) {
	t.density = density
}

// Config returns the builder used for the engine configuration, for
// registering custom kinds. Changes apply to the first Load only.
func (t *Tester) Config() *shadow.ConfigBuilder {
	return t.builder
}

// On registers an action handler on the surface.
func (t *Tester) On(name string, h shard.Handler) {
	t.handlers[name] = h
	if t.surface != nil {
		t.surface.On(name, h)
	}
}

// Actions returns every action raised since the last Load, handled or not.
func (t *Tester) Actions() []shadow.Action {
	return t.actions
}

// LoadJSON parses and loads a JSON document.
func (t *Tester) LoadJSON(doc string) error {
	parsed, err := shard.ParseJSON([]byte(doc))
	if err != nil {
		return err
	}
	return t.LoadDocument(parsed)
}

// LoadDocument loads doc and pumps until it is shown or fails.
func (t *Tester) LoadDocument(doc *shard.Document) error {
	t.ensureSurface()
	t.actions = nil
	var (
		finished bool
		loadErr  error
	)
	t.surface.LoadDocument(doc, func(err error) {
		finished, loadErr = true, err
	})
	if err := t.PumpUntil(func() bool { return finished }, DefaultTimeout); err != nil {
		return err
	}
	return loadErr
}

// Load loads a {kind, props} description.
func (t *Tester) Load(desc props.Value) error {
	return t.LoadDocument(&shard.Document{Root: desc})
}

func (t *Tester) ensureSurface() {
	if t.surface != nil {
		return
	}
	cfg := t.builder.Density(t.density).Build()
	t.surface = shard.NewSurface(t.loop, cfg)
	t.surface.Observe(func(a shadow.Action) { t.actions = append(t.actions, a) })
	for name, h := range t.handlers {
		t.surface.On(name, h)
	}
	t.surface.SetSize(t.size)
}

// Pump runs queued UI tasks, including layout passes requested since the
// last call. It returns the number of tasks run.
func (t *Tester) Pump() int {
	return t.loop.Pump()
}

// PumpUntil pumps until cond holds or timeout elapses.
func (t *Tester) PumpUntil(cond func() bool, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		t.loop.Pump()
		if cond() {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrSettleTimeout
		}
		time.Sleep(time.Millisecond)
	}
}

// Root returns the loaded tree, or nil.
func (t *Tester) Root() *shard.Root {
	if t.surface == nil {
		return nil
	}
	return t.surface.Root()
}

// View returns the top materialized view, or nil.
func (t *Tester) View() *headless.View {
	if t.surface == nil {
		return nil
	}
	v, _ := t.surface.View().(*headless.View)
	return v
}

// Platform returns the headless platform.
func (t *Tester) Platform() *headless.Platform {
	return t.platform
}

// Loader returns the fake image loader.
func (t *Tester) Loader() *FakeLoader {
	return t.loader
}

// Find evaluates a finder against the current view tree.
func (t *Tester) Find(finder Finder) FinderResult {
	root := t.View()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{views: finder.Evaluate(root), finder: finder}
}

// Tap taps the first view matched by finder and pumps. It returns an error
// if nothing matches or the view is not tappable.
func (t *Tester) Tap(finder Finder) error {
	v := t.Find(finder).FirstOrNil()
	if v == nil {
		return errors.New("tap: no view matches " + finder.Description())
	}
	if !v.Tap() {
		return errors.New("tap: view is not tappable: " + finder.Description())
	}
	t.Pump()
	return nil
}
