package shadow

import (
	"math"
	"sync"

	"github.com/go-drift/shard/pkg/errors"
	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/layout"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/props"
)

var (
	fontWeights = map[string]graphics.FontWeight{"regular": graphics.FontWeightRegular, "bold": graphics.FontWeightBold}
	fontStyles  = map[string]graphics.FontStyle{"normal": graphics.FontStyleNormal, "italic": graphics.FontStyleItalic}
	textAligns  = map[string]graphics.TextAlign{"start": graphics.TextAlignStart, "center": graphics.TextAlignCenter, "end": graphics.TextAlignEnd}
)

// Text is a leaf showing a paragraph of styled spans.
//
// The text prop is either a string or an array whose items are strings or
// span objects {text, font-family, font-size, font-weight, font-style,
// font-color}. A span's text may itself be an array; nested spans inherit
// the font props of the span enclosing them.
type Text struct {
	Base

	mu    sync.RWMutex
	spans []graphics.Span
	opts  graphics.ParagraphOptions
	deco  Decoration
}

func (t *Text) SetProps(v props.Value) error {
	cfg := t.ctx.config
	r := props.NewReader(t.Kind(), v)
	base := graphics.TextStyle{
		FontFamily: graphics.DefaultFontFamily,
		FontSize:   math.Round(cfg.defaultFontSize * cfg.density),
		Color:      graphics.Uniform(graphics.ColorBlack),
	}
	base = readFont(r, base, cfg.density)
	var spans []graphics.Span
	if r.Require("text") {
		spans = readSpans(r, "text", base, cfg.density, nil)
	}

	var opts graphics.ParagraphOptions
	if a, ok := r.Enum("text-align", "start", "center", "end"); ok {
		opts.TextAlign = textAligns[a]
	}
	if n, ok := r.Int("max-lines"); ok && n > 0 {
		opts.MaxLines = n
	}
	if d, ok := r.Dimension("line-height"); ok {
		if d.Unit != props.UnitPercent {
			r.Fail("line-height", r.Value("line-height"), "want percent")
		} else {
			opts.LineHeight = d.Value / 100
		}
	}
	deco := ReadDecoration(r, cfg.density)
	if err := r.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	t.spans, t.opts, t.deco = spans, opts, deco
	t.mu.Unlock()
	t.MarkPropsSet()
	return nil
}

// Measure lays the paragraph out, wrapping at the width bound if there is
// one. Empty text measures as zero before the constraints are applied.
func (t *Text) Measure(c layout.Constraints) graphics.Size {
	t.MarkMeasured()
	t.mu.RLock()
	spans, opts := t.spans, t.opts
	t.mu.RUnlock()
	if w, ok := c.Width.Bound(); ok {
		opts.MaxWidth = w
	}
	tl, err := graphics.LayoutParagraph(spans, t.ctx.config.fonts, opts)
	if err != nil {
		errors.ReportError("shadow.Text.Measure", errors.KindLayout, err)
		return c.Resolve(graphics.Size{})
	}
	return c.Resolve(tl.Size)
}

func (t *Text) View(ui *platform.UIContext) platform.View {
	v := t.NativeView(ui, func(p platform.Platform) platform.View { return p.NewTextView() }).(platform.TextView)
	t.mu.RLock()
	spans, opts, deco := t.spans, t.opts, t.deco
	t.mu.RUnlock()
	frame := t.Frame()
	opts.MaxWidth = frame.Width()
	v.SetParagraph(platform.Paragraph{Spans: spans, Options: opts})
	deco.Apply(v, frame, t.ctx)
	return v
}

// readFont overrides the fields of base that r sets.
func readFont(r *props.Reader, base graphics.TextStyle, density float64) graphics.TextStyle {
	if f, ok := r.String("font-family"); ok {
		base.FontFamily = f
	}
	if px, ok := r.Pixels("font-size", density); ok {
		base.FontSize = px
	}
	if w, ok := r.Enum("font-weight", "regular", "bold"); ok {
		base.FontWeight = fontWeights[w]
	}
	if s, ok := r.Enum("font-style", "normal", "italic"); ok {
		base.FontStyle = fontStyles[s]
	}
	if c, ok := r.ColorSpec("font-color"); ok {
		base.Color = c
	}
	return base
}

// readSpans flattens the string or span array at key into spans.
func readSpans(r *props.Reader, key string, style graphics.TextStyle, density float64, out []graphics.Span) []graphics.Span {
	v := r.Value(key)
	if s, ok := v.AsString(); ok {
		return append(out, graphics.Span{Text: s, Style: style})
	}
	items, ok := r.Array(key)
	if !ok {
		return out
	}
	for i, item := range items {
		if s, ok := item.AsString(); ok {
			out = append(out, graphics.Span{Text: s, Style: style})
			continue
		}
		sr, ok := r.Item(key, i)
		if !ok {
			return out
		}
		if !sr.Require("text") {
			return out
		}
		out = readSpans(sr, "text", readFont(sr, style, density), density, out)
	}
	return out
}
