// Package config reads the optional shard.yaml engine configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	shardErrors "github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/imageload"
	"github.com/go-drift/shard/pkg/shadow"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up in a directory.
const FileName = "shard.yaml"

// Config represents the optional shard.yaml configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Text    TextConfig    `yaml:"text"`
	Images  ImagesConfig  `yaml:"images"`
	Log     LogConfig     `yaml:"log"`
}

// DisplayConfig describes the target screen.
type DisplayConfig struct {
	Density float64 `yaml:"density,omitempty"`
}

// TextConfig contains font settings.
type TextConfig struct {
	DefaultFontSize float64      `yaml:"default-font-size,omitempty"`
	Fonts           []FontConfig `yaml:"fonts,omitempty"`
}

// FontConfig registers a font file under a family name. Paths are relative
// to the configuration directory.
type FontConfig struct {
	Family string `yaml:"family"`
	Path   string `yaml:"path"`
}

// ImagesConfig controls image size resolution.
type ImagesConfig struct {
	Timeout  string `yaml:"timeout,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root            string
	Density         float64
	DefaultFontSize float64
	Fonts           []FontConfig
	ImageTimeout    time.Duration
	ImagesDisabled  bool
	LogLevel        hclog.Level
	Verbose         bool
}

// LoadOptional reads shard.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads shard.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	density := cfg.Display.Density
	switch {
	case density == 0:
		density = 1
	case density < 0:
		return nil, fmt.Errorf("display.density must be positive (got %g)", density)
	}

	fontSize := cfg.Text.DefaultFontSize
	switch {
	case fontSize == 0:
		fontSize = 12
	case fontSize < 0:
		return nil, fmt.Errorf("text.default-font-size must be positive (got %g)", fontSize)
	}

	fonts := make([]FontConfig, 0, len(cfg.Text.Fonts))
	for i, f := range cfg.Text.Fonts {
		family := strings.TrimSpace(f.Family)
		if family == "" || f.Path == "" {
			return nil, fmt.Errorf("text.fonts[%d] needs both family and path", i)
		}
		path := f.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		fonts = append(fonts, FontConfig{Family: family, Path: path})
	}

	timeout := imageload.DefaultTimeout
	if s := strings.TrimSpace(cfg.Images.Timeout); s != "" {
		timeout, err = time.ParseDuration(s)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("images.timeout must be a positive duration (got %q)", s)
		}
	}

	level := hclog.Warn
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		level = hclog.LevelFromString(s)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("log.level %q is not a known level", s)
		}
	}

	return &Resolved{
		Root:            dir,
		Density:         density,
		DefaultFontSize: fontSize,
		Fonts:           fonts,
		ImageTimeout:    timeout,
		ImagesDisabled:  cfg.Images.Disabled,
		LogLevel:        level,
		Verbose:         cfg.Log.Verbose,
	}, nil
}

// Logger returns a logger at the configured level writing to stderr.
func (r *Resolved) Logger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "shard",
		Level:  r.LogLevel,
		Output: os.Stderr,
	})
}

// InstallErrorHandler routes reported errors to logger.
func (r *Resolved) InstallErrorHandler(logger hclog.Logger) {
	shardErrors.SetHandler(&shardErrors.LogHandler{Verbose: r.Verbose, Logger: logger})
}

// ShadowConfig builds the engine configuration. Custom fonts are loaded
// here; unreadable font files are errors.
func (r *Resolved) ShadowConfig(logger hclog.Logger) (*shadow.Config, error) {
	b := shadow.NewConfigBuilder().
		Density(r.Density).
		DefaultFontSize(r.DefaultFontSize).
		Logger(logger)

	if len(r.Fonts) > 0 {
		fonts, err := graphics.NewFontManager()
		if err != nil {
			return nil, err
		}
		for _, f := range r.Fonts {
			data, err := os.ReadFile(f.Path)
			if err != nil {
				return nil, fmt.Errorf("failed to read font %s: %w", f.Family, err)
			}
			if err := fonts.RegisterFont(f.Family, data); err != nil {
				return nil, fmt.Errorf("failed to load font %s: %w", f.Family, err)
			}
		}
		b.Fonts(fonts)
	}

	if !r.ImagesDisabled {
		b.ImageLoader(imageload.New(imageload.Options{Timeout: r.ImageTimeout, Logger: logger}))
	}
	return b.Build(), nil
}
