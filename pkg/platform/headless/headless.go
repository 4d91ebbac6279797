// Package headless is an in-memory platform. Its views record every
// property the engine applies, which makes trees inspectable without a
// display.
package headless

import (
	"fmt"
	"sync"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/xlab/treeprint"
)

// Platform creates headless views and remembers them.
type Platform struct {
	mu      sync.Mutex
	created []*View
}

// New returns an empty headless platform.
func New() *Platform {
	return &Platform{}
}

var _ platform.Platform = (*Platform)(nil)

func (p *Platform) newView(kind string) *View {
	v := &View{Kind: kind}
	p.mu.Lock()
	p.created = append(p.created, v)
	p.mu.Unlock()
	return v
}

func (p *Platform) NewView() platform.View                   { return p.newView("view") }
func (p *Platform) NewContainerView() platform.ContainerView { return p.newView("container") }
func (p *Platform) NewTextView() platform.TextView           { return p.newView("text") }
func (p *Platform) NewImageView() platform.ImageView         { return p.newView("image") }
func (p *Platform) NewScrollView() platform.ScrollView       { return p.newView("scroll") }

// Created returns every view made so far, in creation order.
func (p *Platform) Created() []*View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*View(nil), p.created...)
}

// Live returns the views that have not been disposed.
func (p *Platform) Live() []*View {
	var live []*View
	for _, v := range p.Created() {
		if !v.Disposed {
			live = append(live, v)
		}
	}
	return live
}

// View records the state of one native view. A single type implements
// every view interface; Kind says which factory made it.
type View struct {
	Kind     string
	Frame    graphics.Rect
	Style    platform.Style
	Disposed bool
	Pressed  bool

	Children []*View

	Paragraph platform.Paragraph

	Source      string
	ContentMode platform.ContentMode

	Direction     platform.ScrollDirection
	Content       *View
	ContentSize   graphics.Size
	ContentInset  graphics.EdgeInsets
	ContentOffset graphics.Offset

	tap func()
}

func (v *View) SetFrame(frame graphics.Rect)  { v.Frame = frame }
func (v *View) SetStyle(style platform.Style) { v.Style = style }
func (v *View) SetTapHandler(fn func())       { v.tap = fn }
func (v *View) Dispose()                      { v.Disposed = true }

func (v *View) SetChildren(children []platform.View) {
	v.Children = v.Children[:0]
	for _, c := range children {
		v.Children = append(v.Children, c.(*View))
	}
}

func (v *View) SetParagraph(p platform.Paragraph) { v.Paragraph = p }

func (v *View) SetSource(src string)                     { v.Source = src }
func (v *View) SetContentMode(mode platform.ContentMode) { v.ContentMode = mode }

func (v *View) SetDirection(dir platform.ScrollDirection) { v.Direction = dir }
func (v *View) SetContent(content platform.View) {
	if content == nil {
		v.Content = nil
		return
	}
	v.Content = content.(*View)
}
func (v *View) SetContentSize(size graphics.Size)         { v.ContentSize = size }
func (v *View) SetContentInset(inset graphics.EdgeInsets) { v.ContentInset = inset }
func (v *View) SetContentOffset(offset graphics.Offset)   { v.ContentOffset = offset }

// HasTapHandler reports whether a tap handler is installed.
func (v *View) HasTapHandler() bool { return v.tap != nil }

// Tap simulates a tap. It reports whether a handler ran.
func (v *View) Tap() bool {
	if v.tap == nil || v.Disposed {
		return false
	}
	v.tap()
	return true
}

// Press sets the pressed state used to resolve pressable colors.
func (v *View) Press(pressed bool) { v.Pressed = pressed }

// Background returns the background color for the current pressed state.
func (v *View) Background() graphics.Color {
	return v.Style.Background.Resolve(v.Pressed)
}

// Text returns the concatenated span text.
func (v *View) Text() string {
	s := ""
	for _, span := range v.Paragraph.Spans {
		s += span.Text
	}
	return s
}

// Find returns the first view in the subtree, depth first, for which
// match reports true.
func (v *View) Find(match func(*View) bool) *View {
	if match(v) {
		return v
	}
	for _, c := range v.Children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	if v.Content != nil {
		return v.Content.Find(match)
	}
	return nil
}

// Tree renders the subtree rooted at v.
func (v *View) Tree() treeprint.Tree {
	t := treeprint.NewWithRoot(v.label())
	v.addChildren(t)
	return t
}

func (v *View) addChildren(t treeprint.Tree) {
	kids := v.Children
	if v.Content != nil {
		kids = []*View{v.Content}
	}
	for _, c := range kids {
		if len(c.Children) == 0 && c.Content == nil {
			t.AddNode(c.label())
			continue
		}
		c.addChildren(t.AddBranch(c.label()))
	}
}

func (v *View) label() string {
	f := v.Frame
	s := fmt.Sprintf("%s (%g,%g %gx%g)", v.Kind, f.Left, f.Top, f.Width(), f.Height())
	switch v.Kind {
	case "text":
		s += fmt.Sprintf(" %q", v.Text())
	case "image":
		s += fmt.Sprintf(" %s %s", v.Source, v.ContentMode)
	case "scroll":
		s += fmt.Sprintf(" %s content=%gx%g", v.Direction, v.ContentSize.Width, v.ContentSize.Height)
	}
	return s
}
