package shadow

import (
	"sort"
	"sync"

	"github.com/agext/levenshtein"
	"github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/hashicorp/go-hclog"
)

// Factory returns a new, uninitialized node. The returned value must embed
// Base; Create initializes it.
type Factory func() Node

// Built-in kinds.
const (
	KindFlexbox    = "flexbox"
	KindText       = "text"
	KindImage      = "image"
	KindScroll     = "scroll"
	KindSolidColor = "solid-color"
)

const (
	defaultDensity  = 1.0
	defaultFontSize = 12.0
)

// Config is the immutable engine configuration threaded through every
// build. Create one with NewConfigBuilder.
type Config struct {
	factories       map[string]Factory
	density         float64
	fonts           *graphics.FontManager
	defaultFontSize float64
	loader          ImageLoader
	flex            *layout.FlexConfig
	logger          hclog.Logger
}

// ConfigBuilder assembles a Config. The zero value is not usable; call
// NewConfigBuilder.
type ConfigBuilder struct {
	cfg Config
}

// NewConfigBuilder starts from the built-in kinds, density 1, the shared
// font manager, no image loader and a silent logger.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: Config{
		factories: map[string]Factory{
			KindFlexbox:    func() Node { return &Flexbox{} },
			KindText:       func() Node { return &Text{} },
			KindImage:      func() Node { return &Image{} },
			KindScroll:     func() Node { return &Scroll{} },
			KindSolidColor: func() Node { return &SolidColor{} },
		},
		density:         defaultDensity,
		defaultFontSize: defaultFontSize,
		logger:          hclog.NewNullLogger(),
	}}
}

// AddKind registers a factory. Registering an existing kind replaces it.
func (b *ConfigBuilder) AddKind(kind string, f Factory) *ConfigBuilder {
	b.cfg.factories[kind] = f
	return b
}

// Density sets the number of pixels per point.
func (b *ConfigBuilder) Density(d float64) *ConfigBuilder {
	if d > 0 {
		b.cfg.density = d
	}
	return b
}

// Fonts sets the font manager used to measure text.
func (b *ConfigBuilder) Fonts(m *graphics.FontManager) *ConfigBuilder {
	b.cfg.fonts = m
	return b
}

// DefaultFontSize sets the font size, in points, of text without font-size.
func (b *ConfigBuilder) DefaultFontSize(points float64) *ConfigBuilder {
	if points > 0 {
		b.cfg.defaultFontSize = points
	}
	return b
}

// ImageLoader sets the loader that resolves image sizes.
func (b *ConfigBuilder) ImageLoader(l ImageLoader) *ConfigBuilder {
	b.cfg.loader = l
	return b
}

// Logger sets the logger for engine diagnostics.
func (b *ConfigBuilder) Logger(l hclog.Logger) *ConfigBuilder {
	if l != nil {
		b.cfg.logger = l
	}
	return b
}

// Build returns the finished Config. The builder may be reused.
func (b *ConfigBuilder) Build() *Config {
	cfg := b.cfg
	cfg.factories = make(map[string]Factory, len(b.cfg.factories))
	for k, f := range b.cfg.factories {
		cfg.factories[k] = f
	}
	if cfg.fonts == nil {
		cfg.fonts = graphics.DefaultFontManager()
	}
	cfg.flex = layout.NewFlexConfig()
	return &cfg
}

var (
	defaultConfigMu sync.RWMutex
	defaultConfig   *Config
)

// DefaultConfig returns the process-wide configuration, building it with
// NewConfigBuilder on first use.
func DefaultConfig() *Config {
	defaultConfigMu.RLock()
	cfg := defaultConfig
	defaultConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}
	defaultConfigMu.Lock()
	defer defaultConfigMu.Unlock()
	if defaultConfig == nil {
		defaultConfig = NewConfigBuilder().Build()
	}
	return defaultConfig
}

// SetDefaultConfig replaces the process-wide configuration. Nil resets it.
func SetDefaultConfig(cfg *Config) {
	defaultConfigMu.Lock()
	defaultConfig = cfg
	defaultConfigMu.Unlock()
}

// Density returns pixels per point.
func (c *Config) Density() float64 { return c.density }

// Fonts returns the font manager.
func (c *Config) Fonts() *graphics.FontManager { return c.fonts }

// Logger returns the diagnostics logger.
func (c *Config) Logger() hclog.Logger { return c.logger }

// Kinds returns the registered kinds in sorted order.
func (c *Config) Kinds() []string {
	kinds := make([]string, 0, len(c.factories))
	for k := range c.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// unknownKind builds an UnknownKindError, suggesting the closest
// registered kind within two edits.
func (c *Config) unknownKind(kind string) error {
	best, bestDist := "", 3
	for _, k := range c.Kinds() {
		if d := levenshtein.Distance(kind, k, nil); d < bestDist {
			best, bestDist = k, d
		}
	}
	return &errors.UnknownKindError{Kind: kind, Suggestion: best}
}
