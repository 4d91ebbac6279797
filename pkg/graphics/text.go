package graphics

import (
	stderrors "errors"
	"fmt"
	"math"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-drift/shard/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFontFamily is the bundled family used when a style names no family
// or an unregistered one.
const DefaultFontFamily = "Go"

// FontWeight selects between the regular and bold variants of a family.
type FontWeight int

const (
	FontWeightRegular FontWeight = iota
	FontWeightBold
)

func (w FontWeight) String() string {
	switch w {
	case FontWeightRegular:
		return "regular"
	case FontWeightBold:
		return "bold"
	default:
		return fmt.Sprintf("FontWeight(%d)", int(w))
	}
}

// FontStyle selects the upright or italic face.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

func (s FontStyle) String() string {
	switch s {
	case FontStyleNormal:
		return "normal"
	case FontStyleItalic:
		return "italic"
	default:
		return fmt.Sprintf("FontStyle(%d)", int(s))
	}
}

// TextAlign controls horizontal alignment of lines within a paragraph.
// Lines are laid out left to right only, so Start is the left edge.
type TextAlign int

const (
	TextAlignStart TextAlign = iota
	TextAlignCenter
	TextAlignEnd
)

func (a TextAlign) String() string {
	switch a {
	case TextAlignStart:
		return "start"
	case TextAlignCenter:
		return "center"
	case TextAlignEnd:
		return "end"
	default:
		return fmt.Sprintf("TextAlign(%d)", int(a))
	}
}

// TextStyle describes how a run of text is drawn. FontSize is in pixels.
type TextStyle struct {
	FontFamily string
	FontSize   float64
	FontWeight FontWeight
	FontStyle  FontStyle
	Color      ColorSpec
}

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	Style TextStyle
}

// ParagraphOptions controls line wrapping, line limits and line spacing.
// The zero value produces a single-pass layout with no wrapping.
type ParagraphOptions struct {
	// MaxWidth wraps lines at this width; 0 disables wrapping.
	MaxWidth float64
	// MaxLines truncates the paragraph; 0 keeps every line.
	MaxLines  int
	TextAlign TextAlign
	// LineHeight multiplies each line's natural height. 0 means 1.
	LineHeight float64
}

// TextLine is one wrapped line.
type TextLine struct {
	Text   string
	Width  float64
	Height float64
}

// TextLayout contains measured paragraph metrics.
type TextLayout struct {
	Size  Size
	Lines []TextLine
}

type faceKey struct {
	family string
	weight FontWeight
	style  FontStyle
	size   float64
}

// lockedFace serializes access to a font.Face, which keeps internal
// buffers and is not safe for concurrent use.
type lockedFace struct {
	mu     sync.Mutex
	face   font.Face
	height float64
}

func (f *lockedFace) measure(s string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(font.MeasureString(f.face, s)) / 64
}

type fontFamily struct {
	variants [2][2]*opentype.Font
}

// FontManager resolves font faces by family, weight, style and size.
// It is safe for concurrent use; measurement may run off the UI goroutine.
type FontManager struct {
	mu       sync.RWMutex
	families map[string]*fontFamily
	faces    map[faceKey]*lockedFace
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the bundled Go fonts
// registered as DefaultFontFamily.
func NewFontManager() (*FontManager, error) {
	m := &FontManager{
		families: make(map[string]*fontFamily),
		faces:    make(map[faceKey]*lockedFace),
	}
	bundled := []struct {
		weight FontWeight
		style  FontStyle
		data   []byte
	}{
		{FontWeightRegular, FontStyleNormal, goregular.TTF},
		{FontWeightBold, FontStyleNormal, gobold.TTF},
		{FontWeightRegular, FontStyleItalic, goitalic.TTF},
		{FontWeightBold, FontStyleItalic, gobolditalic.TTF},
	}
	for _, b := range bundled {
		if err := m.RegisterFontVariant(DefaultFontFamily, b.weight, b.style, b.data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DefaultFontManagerErr returns the process-wide font manager and the error,
// if any, from parsing the bundled fonts on first use.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.ShardError{
				Op:   "graphics.DefaultFontManager",
				Kind: errors.KindPlatform,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns the shared font manager, or nil if the bundled
// fonts failed to parse.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// RegisterFont registers TrueType or OpenType data as the regular variant
// of a family.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	return m.RegisterFontVariant(name, FontWeightRegular, FontStyleNormal, data)
}

// RegisterFontVariant registers one weight/style variant of a family.
func (m *FontManager) RegisterFontVariant(name string, weight FontWeight, style FontStyle, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	if weight < FontWeightRegular || weight > FontWeightBold || style < FontStyleNormal || style > FontStyleItalic {
		return fmt.Errorf("unsupported font variant %s/%s", weight, style)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	fam := m.families[name]
	if fam == nil {
		fam = &fontFamily{}
		m.families[name] = fam
	}
	fam.variants[weight][style] = parsed
	for key := range m.faces {
		if key.family == name {
			delete(m.faces, key)
		}
	}
	return nil
}

// HasFamily reports whether any variant of the family is registered.
func (m *FontManager) HasFamily(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.families[name]
	return ok
}

func (m *FontManager) face(style TextStyle) (*lockedFace, error) {
	size := style.FontSize
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	key := faceKey{family: style.FontFamily, weight: style.FontWeight, style: style.FontStyle, size: size}

	m.mu.RLock()
	f := m.faces[key]
	m.mu.RUnlock()
	if f != nil {
		return f, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if f := m.faces[key]; f != nil {
		return f, nil
	}
	parsed := m.resolveLocked(style.FontFamily, style.FontWeight, style.FontStyle)
	if parsed == nil {
		return nil, fmt.Errorf("no font for family %q", style.FontFamily)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	f = &lockedFace{face: face, height: float64(face.Metrics().Height) / 64}
	m.faces[key] = f
	return f, nil
}

// resolveLocked falls back from the requested variant to the closest
// registered one, then to the default family.
func (m *FontManager) resolveLocked(family string, weight FontWeight, style FontStyle) *opentype.Font {
	candidates := []string{family, DefaultFontFamily}
	for _, name := range candidates {
		fam := m.families[name]
		if fam == nil {
			continue
		}
		for _, v := range [][2]int{{int(weight), int(style)}, {int(weight), 0}, {0, int(style)}, {0, 0}} {
			if f := fam.variants[v[0]][v[1]]; f != nil {
				return f
			}
		}
	}
	return nil
}

type piece struct {
	text    string
	face    *lockedFace
	width   float64
	space   bool
	newline bool
}

// LayoutParagraph measures and wraps spans according to opts. Wrapping is
// greedy at whitespace; a word wider than MaxWidth overflows its line.
// Empty text measures to a zero size.
func LayoutParagraph(spans []Span, manager *FontManager, opts ParagraphOptions) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	multiplier := opts.LineHeight
	if multiplier <= 0 {
		multiplier = 1
	}
	maxWidth := opts.MaxWidth
	if maxWidth < 0 || math.IsInf(maxWidth, 0) || math.IsNaN(maxWidth) {
		maxWidth = 0
	}

	var pieces []piece
	var lastFace *lockedFace
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		face, err := manager.face(span.Style)
		if err != nil {
			return nil, err
		}
		lastFace = face
		pieces = appendPieces(pieces, span.Text, face)
	}
	if len(pieces) == 0 {
		return &TextLayout{}, nil
	}

	var (
		lines       []TextLine
		line        TextLine
		lineFace    float64
		pendingText string
		pendingW    float64
		hasWord     bool
	)
	commit := func() bool {
		if lineFace == 0 && lastFace != nil {
			lineFace = lastFace.height
		}
		line.Height = lineFace * multiplier
		lines = append(lines, line)
		line = TextLine{}
		lineFace = 0
		pendingText, pendingW = "", 0
		hasWord = false
		return opts.MaxLines > 0 && len(lines) >= opts.MaxLines
	}

	full := false
	for _, p := range pieces {
		switch {
		case p.newline:
			lineFace = math.Max(lineFace, p.face.height)
			full = commit()
		case p.space:
			if hasWord {
				pendingText += p.text
				pendingW += p.width
			}
		default:
			if hasWord && maxWidth > 0 && line.Width+pendingW+p.width > maxWidth {
				if full = commit(); full {
					break
				}
			}
			if hasWord {
				line.Text += pendingText
				line.Width += pendingW
			}
			pendingText, pendingW = "", 0
			line.Text += p.text
			line.Width += p.width
			lineFace = math.Max(lineFace, p.face.height)
			hasWord = true
		}
		if full {
			break
		}
	}
	if !full && (hasWord || len(lines) == 0 || pieces[len(pieces)-1].newline) {
		commit()
	}

	var size Size
	for _, l := range lines {
		size.Width = math.Max(size.Width, l.Width)
		size.Height += l.Height
	}
	size.Width = math.Ceil(size.Width)
	size.Height = math.Ceil(size.Height)
	return &TextLayout{Size: size, Lines: lines}, nil
}

// appendPieces splits text into words, single whitespace runes and hard
// line breaks, measuring each with face.
func appendPieces(pieces []piece, text string, face *lockedFace) []piece {
	start := -1
	flush := func(end int) {
		if start >= 0 {
			word := text[start:end]
			pieces = append(pieces, piece{text: word, face: face, width: face.measure(word)})
			start = -1
		}
	}
	for i, r := range text {
		switch {
		case r == '\n':
			flush(i)
			pieces = append(pieces, piece{face: face, newline: true})
		case unicode.IsSpace(r):
			flush(i)
			s := text[i : i+utf8.RuneLen(r)]
			pieces = append(pieces, piece{text: s, face: face, width: face.measure(s), space: true})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(text))
	return pieces
}
