// Package platform is the boundary between shadow nodes and native views.
//
// Native views may only be touched on the UI goroutine. Functions that
// create or mutate views take a *UIContext, which is only handed out to
// tasks running on a Loop.
package platform

import (
	"fmt"

	"github.com/go-drift/shard/pkg/graphics"
)

// Style is the decoration shared by every native view.
type Style struct {
	Background   graphics.ColorSpec
	BorderColor  graphics.ColorSpec
	BorderWidth  float64
	CornerRadius float64
}

// View is a native view.
type View interface {
	// SetFrame positions the view relative to its parent, in pixels.
	SetFrame(frame graphics.Rect)
	SetStyle(style Style)
	// SetTapHandler installs the tap callback; nil removes it.
	SetTapHandler(fn func())
	// Dispose releases native resources. The view is unusable afterwards.
	Dispose()
}

// ContainerView hosts child views at their own frames.
type ContainerView interface {
	View
	SetChildren(children []View)
}

// Paragraph is the styled text a TextView draws.
type Paragraph struct {
	Spans   []graphics.Span
	Options graphics.ParagraphOptions
}

// TextView draws a paragraph.
type TextView interface {
	View
	SetParagraph(p Paragraph)
}

// ContentMode is how an image is fitted into its frame.
type ContentMode int

const (
	ContentModeCenter ContentMode = iota
	ContentModeCover
	ContentModeContain
)

func (m ContentMode) String() string {
	switch m {
	case ContentModeCenter:
		return "center"
	case ContentModeCover:
		return "cover"
	case ContentModeContain:
		return "contain"
	default:
		return fmt.Sprintf("ContentMode(%d)", int(m))
	}
}

// ImageView shows an image loaded from a source URL.
type ImageView interface {
	View
	SetSource(src string)
	SetContentMode(mode ContentMode)
}

// ScrollDirection is the axis a ScrollView scrolls along.
type ScrollDirection int

const (
	ScrollVertical ScrollDirection = iota
	ScrollHorizontal
)

func (d ScrollDirection) String() string {
	switch d {
	case ScrollVertical:
		return "vertical"
	case ScrollHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("ScrollDirection(%d)", int(d))
	}
}

// ScrollView scrolls a single content view.
type ScrollView interface {
	View
	SetDirection(dir ScrollDirection)
	SetContent(content View)
	SetContentSize(size graphics.Size)
	SetContentInset(inset graphics.EdgeInsets)
	SetContentOffset(offset graphics.Offset)
}

// Platform creates native views. Implementations are only called on the
// UI goroutine.
type Platform interface {
	NewView() View
	NewContainerView() ContainerView
	NewTextView() TextView
	NewImageView() ImageView
	NewScrollView() ScrollView
}
