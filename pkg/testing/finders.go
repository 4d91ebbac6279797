package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/shard/pkg/platform/headless"
)

// Finder locates views in the materialized tree.
type Finder interface {
	// Evaluate returns all matching views under root (depth-first pre-order).
	Evaluate(root *headless.View) []*headless.View
	// Description names the finder in failure messages.
	Description() string
}

// FinderResult holds the views a finder matched, in tree order.
type FinderResult struct {
	views  []*headless.View
	finder Finder
}

// First returns the first match and panics when there is none.
func (r FinderResult) First() *headless.View {
	if len(r.views) == 0 {
		panic(fmt.Sprintf("Finder found no views: %s", r.description()))
	}
	return r.views[0]
}

// FirstOrNil is First without the panic.
func (r FinderResult) FirstOrNil() *headless.View {
	if len(r.views) == 0 {
		return nil
	}
	return r.views[0]
}

// At returns the i-th match.
func (r FinderResult) At(index int) *headless.View {
	if index < 0 || index >= len(r.views) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.views), r.description()))
	}
	return r.views[index]
}

// All returns every match.
func (r FinderResult) All() []*headless.View {
	return r.views
}

func (r FinderResult) Count() int {
	return len(r.views)
}

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool {
	return len(r.views) > 0
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

type predicateFinder struct {
	fn   func(*headless.View) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *headless.View) []*headless.View {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByKind matches views made by the given factory: "view", "container",
// "text", "image" or "scroll".
func ByKind(kind string) Finder {
	return &predicateFinder{
		fn:   func(v *headless.View) bool { return v.Kind == kind },
		desc: fmt.Sprintf("ByKind(%q)", kind),
	}
}

// ByText matches text views whose concatenated spans equal text.
func ByText(text string) Finder {
	return &predicateFinder{
		fn:   func(v *headless.View) bool { return v.Kind == "text" && v.Text() == text },
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining matches text views containing substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn:   func(v *headless.View) bool { return v.Kind == "text" && strings.Contains(v.Text(), substring) },
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// BySource matches image views showing src.
func BySource(src string) Finder {
	return &predicateFinder{
		fn:   func(v *headless.View) bool { return v.Kind == "image" && v.Source == src },
		desc: fmt.Sprintf("BySource(%q)", src),
	}
}

// Tappable matches views with a tap handler.
func Tappable() Finder {
	return &predicateFinder{fn: (*headless.View).HasTapHandler, desc: "Tappable()"}
}

// ByPredicate matches views satisfying fn.
func ByPredicate(fn func(*headless.View) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *headless.View) []*headless.View {
	var results []*headless.View
	seen := make(map[*headless.View]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, v := range f.matching.Evaluate(ancestor) {
			if v == ancestor || seen[v] {
				continue
			}
			seen[v] = true
			results = append(results, v)
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant matches views found by matching strictly inside views found
// by of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches walks the tree depth-first, children before scroll content.
func collectMatches(root *headless.View, match func(*headless.View) bool) []*headless.View {
	var out []*headless.View
	var walk func(v *headless.View)
	walk = func(v *headless.View) {
		if match(v) {
			out = append(out, v)
		}
		for _, c := range v.Children {
			walk(c)
		}
		if v.Content != nil {
			walk(v.Content)
		}
	}
	walk(root)
	return out
}
