package testing

import (
	"testing"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/platform/headless"
)

func buildViews() *headless.View {
	p := headless.New()
	root := p.NewContainerView().(*headless.View)
	label := p.NewTextView().(*headless.View)
	label.SetParagraph(platform.Paragraph{Spans: []graphics.Span{{Text: "Hello"}}})
	button := p.NewView().(*headless.View)
	button.SetTapHandler(func() {})
	scroll := p.NewScrollView().(*headless.View)
	inner := p.NewContainerView().(*headless.View)
	caption := p.NewTextView().(*headless.View)
	caption.SetParagraph(platform.Paragraph{Spans: []graphics.Span{{Text: "Hello "}, {Text: "world"}}})
	img := p.NewImageView().(*headless.View)
	img.SetSource("a.png")

	inner.SetChildren([]platform.View{caption, img})
	scroll.SetContent(inner)
	root.SetChildren([]platform.View{label, button, scroll})
	return root
}

func TestFinders(t *testing.T) {
	root := buildViews()
	tests := []struct {
		name   string
		finder Finder
		want   int
	}{
		{"kind container", ByKind("container"), 2},
		{"exact text", ByText("Hello"), 1},
		{"text containing", ByTextContaining("Hello"), 2},
		{"source", BySource("a.png"), 1},
		{"missing source", BySource("b.png"), 0},
		{"tappable", Tappable(), 1},
		{"inside scroll", Descendant(ByKind("scroll"), ByKind("text")), 1},
		{"containers not self", Descendant(ByKind("container"), ByKind("container")), 1},
		{"predicate", ByPredicate(func(v *headless.View) bool { return len(v.Children) == 2 }), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.finder.Evaluate(root)); got != tt.want {
				t.Errorf("%s matched %d, want %d", tt.finder.Description(), got, tt.want)
			}
		})
	}
}

func TestFinderResult(t *testing.T) {
	root := buildViews()
	res := FinderResult{views: ByKind("text").Evaluate(root), finder: ByKind("text")}
	if res.Count() != 2 || !res.Exists() {
		t.Fatalf("count = %d", res.Count())
	}
	if res.First().Text() != "Hello" || res.At(1).Text() != "Hello world" {
		t.Errorf("unexpected order: %q, %q", res.First().Text(), res.At(1).Text())
	}

	empty := FinderResult{finder: ByText("nope")}
	if empty.FirstOrNil() != nil {
		t.Error("FirstOrNil on empty result")
	}
	defer func() {
		if recover() == nil {
			t.Error("First on empty result did not panic")
		}
	}()
	empty.First()
}
