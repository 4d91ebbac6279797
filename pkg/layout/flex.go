package layout

import (
	"math"
	"sync/atomic"

	"github.com/go-drift/shard/pkg/graphics"
)

// FlexConfig creates solver nodes. Nodes from one config may be mixed in a
// tree; the config itself is read-only.
type FlexConfig struct {
	// leafCache bounds the measurements kept per leaf between passes.
	leafCache int
}

// NewFlexConfig returns the solver configuration used for every tree. Unset
// styles take the web defaults: row direction, stretch alignment, no
// wrapping, shrinkable items and an auto flex basis.
func NewFlexConfig() *FlexConfig {
	return &FlexConfig{leafCache: 16}
}

// FlexNode is one flex container in a solver tree. Nested containers share
// the calculation of the root they are appended to.
type FlexNode struct {
	cfg      *FlexConfig
	parent   *FlexNode
	style    ContainerStyle
	children []*flexItem

	// size is the border-box size from the last calculation.
	size graphics.Size

	// Measurements made during pass, keyed by constraints.
	pass  uint64
	cache map[Constraints]graphics.Size
}

type flexItem struct {
	style ItemStyle
	sub   *FlexNode
	proxy *Proxy
	frame graphics.Rect
}

// Proxy is the solver node standing in for a non-container child. Dirtying
// is deferred: MarkDirty only sets a flag, which the owning tree applies at
// the start of its next calculation.
type Proxy struct {
	measure MeasureFunc
	limit   int
	dirty   atomic.Bool
	// cache is touched only by the goroutine running calculations.
	cache map[Constraints]graphics.Size
}

// MarkDirty invalidates the cached measurements of the wrapped leaf. It is
// safe to call from any goroutine.
func (p *Proxy) MarkDirty() {
	p.dirty.Store(true)
}

func (p *Proxy) measured(c Constraints) graphics.Size {
	if size, ok := p.cache[c]; ok {
		return size
	}
	size := c.Resolve(p.measure(c))
	if p.cache == nil || len(p.cache) >= p.limit {
		p.cache = make(map[Constraints]graphics.Size, p.limit)
	}
	p.cache[c] = size
	return size
}

// NewNode creates a container node with default style and no children.
func (c *FlexConfig) NewNode() *FlexNode {
	return &FlexNode{cfg: c}
}

// IsRoot reports whether the node is the top of its solver tree.
func (n *FlexNode) IsRoot() bool {
	return n.parent == nil
}

// SetStyle replaces the container style. Fields left zero revert to the
// defaults.
func (n *FlexNode) SetStyle(s ContainerStyle) {
	n.style = s
}

// RemoveChildren detaches every child from the solver tree.
func (n *FlexNode) RemoveChildren() {
	for _, c := range n.children {
		if c.sub != nil {
			c.sub.parent = nil
		}
	}
	n.children = nil
}

// AppendContainer adds a nested container, moving it out of any tree it
// belonged to.
func (n *FlexNode) AppendContainer(child *FlexNode, item ItemStyle) {
	if p := child.parent; p != nil {
		for i, c := range p.children {
			if c.sub == child {
				p.children = append(p.children[:i:i], p.children[i+1:]...)
				break
			}
		}
	}
	child.parent = n
	n.children = append(n.children, &flexItem{style: item, sub: child})
}

// AppendLeaf adds a proxy node for a leaf measured by measure. The result
// of measure is clamped to the constraints it was given.
func (n *FlexNode) AppendLeaf(measure MeasureFunc, item ItemStyle) *Proxy {
	p := &Proxy{measure: measure, limit: n.cfg.leafCache}
	n.children = append(n.children, &flexItem{style: item, proxy: p})
	return p
}

// ChildCount returns the number of children in the solver tree.
func (n *FlexNode) ChildCount() int {
	return len(n.children)
}

var passSeq atomic.Uint64

// Calculate runs the solver over this tree under c and returns the
// container's size. Only a root node calculates; a nested node reports the
// size its ancestors' last calculation gave it.
func (n *FlexNode) Calculate(c Constraints) graphics.Size {
	if !n.IsRoot() {
		return n.Size()
	}
	n.flushDirty()
	s := &solver{pass: passSeq.Add(1)}
	return s.layout(n, c)
}

// Size returns the container size from the last calculation.
func (n *FlexNode) Size() graphics.Size {
	return n.size
}

// ChildFrame returns the frame of child i relative to this container.
func (n *FlexNode) ChildFrame(i int) graphics.Rect {
	return n.children[i].frame
}

// flushDirty applies deferred proxy invalidations across the solver tree.
func (n *FlexNode) flushDirty() {
	for _, c := range n.children {
		switch {
		case c.proxy != nil:
			if c.proxy.dirty.Swap(false) {
				c.proxy.cache = nil
			}
		case c.sub != nil:
			c.sub.flushDirty()
		}
	}
}

// solver runs one calculation. Containers are measured any number of times
// under different constraints, then laid out once under their final size.
type solver struct {
	pass uint64
}

func (s *solver) measure(n *FlexNode, c Constraints) graphics.Size {
	if n.pass != s.pass {
		n.pass, n.cache = s.pass, make(map[Constraints]graphics.Size)
	}
	if size, ok := n.cache[c]; ok {
		return size
	}
	size := s.run(n, c, false)
	n.cache[c] = size
	return size
}

func (s *solver) layout(n *FlexNode, c Constraints) graphics.Size {
	size := s.run(n, c, true)
	n.size = size
	return size
}

// axes maps main and cross onto width and height for one container.
type axes struct {
	row bool
}

func (a axes) main(size graphics.Size) float64 {
	if a.row {
		return size.Width
	}
	return size.Height
}

func (a axes) cross(size graphics.Size) float64 {
	if a.row {
		return size.Height
	}
	return size.Width
}

func (a axes) size(main, cross float64) graphics.Size {
	if a.row {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

func (a axes) constraints(main, cross AxisConstraint) Constraints {
	if a.row {
		return Constraints{Width: main, Height: cross}
	}
	return Constraints{Width: cross, Height: main}
}

// insets are resolved edge lengths; the auto flags mark auto margins.
type insets struct {
	left, right, top, bottom                 float64
	autoLeft, autoRight, autoTop, autoBottom bool
}

func (e insets) mainStart(a axes) (float64, bool) {
	if a.row {
		return e.left, e.autoLeft
	}
	return e.top, e.autoTop
}

func (e insets) mainEnd(a axes) (float64, bool) {
	if a.row {
		return e.right, e.autoRight
	}
	return e.bottom, e.autoBottom
}

func (e insets) crossStart(a axes) (float64, bool) {
	if a.row {
		return e.top, e.autoTop
	}
	return e.left, e.autoLeft
}

func (e insets) crossEnd(a axes) (float64, bool) {
	if a.row {
		return e.bottom, e.autoBottom
	}
	return e.right, e.autoRight
}

func (e insets) horizontal() float64 { return e.left + e.right }
func (e insets) vertical() float64   { return e.top + e.bottom }

// resolveEdges resolves e with percentages taken from ref, the containing
// width. Percentages against an indefinite width resolve to zero.
func resolveEdges(e Edges, ref float64, refOK bool) insets {
	var out insets
	out.left, out.autoLeft = edgeValue(pick(e.Start, e.All), ref, refOK)
	out.right, out.autoRight = edgeValue(pick(e.End, e.All), ref, refOK)
	out.top, out.autoTop = edgeValue(pick(e.Top, e.All), ref, refOK)
	out.bottom, out.autoBottom = edgeValue(pick(e.Bottom, e.All), ref, refOK)
	return out
}

func pick(specific, all Length) Length {
	if specific.IsSet() {
		return specific
	}
	return all
}

func edgeValue(l Length, ref float64, refOK bool) (float64, bool) {
	if l.Unit == LengthAuto {
		return 0, true
	}
	v, _ := resolveLength(l, ref, refOK)
	return v, false
}

// resolveLength returns the pixel value of l and whether it is definite.
func resolveLength(l Length, ref float64, refOK bool) (float64, bool) {
	switch l.Unit {
	case LengthPixels:
		return l.Value, true
	case LengthPercent:
		if refOK {
			return l.Value * ref / 100, true
		}
	}
	return 0, false
}

func definite(a AxisConstraint) (float64, bool) {
	if a.Mode == Exactly {
		return a.Size, true
	}
	return 0, false
}

// shrinkAxis removes d from a bounded axis.
func shrinkAxis(a AxisConstraint, d float64) AxisConstraint {
	if a.Mode == Unconstrained {
		return a
	}
	return AxisConstraint{Mode: a.Mode, Size: math.Max(0, a.Size-d)}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// sizing is an item's resolved box constraints within one container pass.
type sizing struct {
	width, height float64
	hasW, hasH    bool
	minW, maxW    float64
	minH, maxH    float64
	margin        insets
}

func resolveSizing(st ItemStyle, refW, refH float64, okW, okH bool) sizing {
	z := sizing{maxW: math.Inf(1), maxH: math.Inf(1)}
	z.margin = resolveEdges(st.Margin, refW, okW)
	z.width, z.hasW = resolveLength(st.Width, refW, okW)
	z.height, z.hasH = resolveLength(st.Height, refH, okH)
	if v, ok := resolveLength(st.MinWidth, refW, okW); ok {
		z.minW = v
	}
	if v, ok := resolveLength(st.MaxWidth, refW, okW); ok {
		z.maxW = v
	}
	if v, ok := resolveLength(st.MinHeight, refH, okH); ok {
		z.minH = v
	}
	if v, ok := resolveLength(st.MaxHeight, refH, okH); ok {
		z.maxH = v
	}
	if r := st.AspectRatio; r.Set && r.Value > 0 {
		switch {
		case z.hasW && !z.hasH:
			z.height, z.hasH = z.width/r.Value, true
		case z.hasH && !z.hasW:
			z.width, z.hasW = z.height*r.Value, true
		}
	}
	if z.hasW {
		z.width = clamp(z.width, z.minW, z.maxW)
	}
	if z.hasH {
		z.height = clamp(z.height, z.minH, z.maxH)
	}
	return z
}

func (z sizing) minMain(a axes) float64 {
	if a.row {
		return z.minW
	}
	return z.minH
}

func (z sizing) maxMain(a axes) float64 {
	if a.row {
		return z.maxW
	}
	return z.maxH
}

func (z sizing) minCross(a axes) float64 {
	if a.row {
		return z.minH
	}
	return z.minW
}

func (z sizing) maxCross(a axes) float64 {
	if a.row {
		return z.maxH
	}
	return z.maxW
}

func (z sizing) mainSize(a axes) (float64, bool) {
	if a.row {
		return z.width, z.hasW
	}
	return z.height, z.hasH
}

// withMain fixes the main size to a flexed length.
func (z sizing) withMain(a axes, v float64) sizing {
	if a.row {
		z.width, z.hasW = v, true
	} else {
		z.height, z.hasH = v, true
	}
	return z
}

func (z sizing) crossSize(a axes) (float64, bool) {
	if a.row {
		return z.height, z.hasH
	}
	return z.width, z.hasW
}

// bound narrows an axis constraint with a definite style size and max.
func bound(a AxisConstraint, size float64, has bool, lo, hi float64) AxisConstraint {
	if has {
		return Fixed(size)
	}
	if math.IsInf(hi, 1) {
		return a
	}
	switch a.Mode {
	case Exactly:
		return Fixed(clamp(a.Size, lo, hi))
	case AtMost:
		return Max(math.Min(a.Size, hi))
	default:
		return Max(hi)
	}
}

// measureItem sizes a child's border box under c after applying its own
// definite sizes and limits.
func (s *solver) measureItem(it *flexItem, z sizing, c Constraints) graphics.Size {
	c.Width = bound(c.Width, z.width, z.hasW, z.minW, z.maxW)
	c.Height = bound(c.Height, z.height, z.hasH, z.minH, z.maxH)
	var size graphics.Size
	if it.sub != nil {
		size = s.measure(it.sub, c)
	} else {
		size = it.proxy.measured(c)
	}
	size.Width = clamp(size.Width, z.minW, z.maxW)
	size.Height = clamp(size.Height, z.minH, z.maxH)
	return size
}

// lineItem is the per-pass state of one in-flow child.
type lineItem struct {
	it *flexItem
	z  sizing

	basis, hyp   float64
	grow, shrink float64
	target       float64
	violation    float64
	frozen       bool

	main, cross       float64
	mainPos, crossPos float64
	align             Align
	stretch           bool
}

func (li *lineItem) outerMain(a axes) float64 {
	s, _ := li.z.margin.mainStart(a)
	e, _ := li.z.margin.mainEnd(a)
	return s + e
}

func (li *lineItem) outerCross(a axes) float64 {
	s, _ := li.z.margin.crossStart(a)
	e, _ := li.z.margin.crossEnd(a)
	return s + e
}

type flexLine struct {
	items []*lineItem
	used  float64
	cross float64
}

func (n *FlexNode) alignFor(st ItemStyle) Align {
	a := st.AlignSelf
	if a == AlignUnset || a == AlignAuto {
		a = n.style.AlignItems
	}
	if a == AlignUnset || a == AlignAuto {
		a = AlignStretch
	}
	return a
}

// run computes n's size under c. With place set it also assigns every
// child frame and lays out nested containers under their final sizes.
func (s *solver) run(n *FlexNode, c Constraints, place bool) graphics.Size {
	a := axes{row: n.style.FlexDirection != FlexDirectionColumn}
	wrap := n.style.FlexWrap == FlexWrapWrap || n.style.FlexWrap == FlexWrapReverse

	ownW, ownWOK := c.Width.Bound()
	pad := resolveEdges(n.style.Padding, ownW, ownWOK)
	innerW := shrinkAxis(c.Width, pad.horizontal())
	innerH := shrinkAxis(c.Height, pad.vertical())
	refW, refWOK := definite(innerW)
	refH, refHOK := definite(innerH)

	mainC, crossC := innerW, innerH
	if !a.row {
		mainC, crossC = innerH, innerW
	}
	padMainStart, _ := pad.mainStart(a)
	padCrossStart, _ := pad.crossStart(a)

	// Flex base sizes.
	var flow []*lineItem
	var absolute []*flexItem
	for _, it := range n.children {
		if it.style.PositionType == PositionAbsolute {
			absolute = append(absolute, it)
			continue
		}
		li := &lineItem{
			it:     it,
			z:      resolveSizing(it.style, refW, refH, refWOK, refHOK),
			grow:   numberOr(it.style.FlexGrow, 0),
			shrink: numberOr(it.style.FlexShrink, 1),
			align:  n.alignFor(it.style),
		}
		_, autoCS := li.z.margin.crossStart(a)
		_, autoCE := li.z.margin.crossEnd(a)
		_, hasCross := li.z.crossSize(a)
		li.stretch = li.align == AlignStretch && !hasCross && !autoCS && !autoCE

		mainRef, mainRefOK := refW, refWOK
		if !a.row {
			mainRef, mainRefOK = refH, refHOK
		}
		basis, ok := resolveLength(it.style.FlexBasis, mainRef, mainRefOK)
		if !ok {
			basis, ok = li.z.mainSize(a)
		}
		if !ok {
			size := s.measureItem(it, li.z, a.constraints(Unbounded(), s.crossFor(li, crossC, a, !wrap)))
			basis = a.main(size)
		}
		li.basis = math.Max(0, basis)
		li.hyp = clamp(li.basis, li.z.minMain(a), li.z.maxMain(a))
		flow = append(flow, li)
	}

	// Lines.
	var lines []*flexLine
	cur := &flexLine{}
	for _, li := range flow {
		outer := li.hyp + li.outerMain(a)
		if wrap && mainC.Mode != Unconstrained && len(cur.items) > 0 && cur.used+outer > mainC.Size+epsilon {
			lines = append(lines, cur)
			cur = &flexLine{}
		}
		cur.items = append(cur.items, li)
		cur.used += outer
	}
	if len(cur.items) > 0 || len(lines) == 0 {
		lines = append(lines, cur)
	}

	// Flexible lengths, then hypothetical cross sizes.
	for _, l := range lines {
		resolveFlexible(l, mainC, a)
		l.used, l.cross = 0, 0
		for _, li := range l.items {
			li.main = li.target
			size := s.measureItem(li.it, li.z.withMain(a, li.main), a.constraints(Fixed(li.main), s.crossFor(li, crossC, a, false)))
			li.cross = a.cross(size)
			l.used += li.main + li.outerMain(a)
			l.cross = math.Max(l.cross, li.cross+li.outerCross(a))
		}
	}

	// Container size.
	usedMain, usedCross := 0.0, 0.0
	for _, l := range lines {
		usedMain = math.Max(usedMain, l.used)
		usedCross += l.cross
	}
	innerMain := fit(mainC, usedMain)
	innerCross := fit(crossC, usedCross)
	if !wrap {
		lines[0].cross = innerCross
	}
	size := a.size(innerMain, innerCross)
	size.Width += pad.horizontal()
	size.Height += pad.vertical()
	if !place {
		return size
	}

	// Align content across lines.
	lead, gap := 0.0, 0.0
	if wrap {
		free := innerCross - usedCross
		switch ac := n.style.AlignContent; {
		case free > 0 && (ac == AlignUnset || ac == AlignStretch):
			for _, l := range lines {
				l.cross += free / float64(len(lines))
			}
		case ac == AlignFlexEnd:
			lead = free
		case ac == AlignCenter:
			lead = free / 2
		case ac == AlignSpaceBetween && free > 0 && len(lines) > 1:
			gap = free / float64(len(lines)-1)
		case ac == AlignSpaceAround && free > 0:
			gap = free / float64(len(lines))
			lead = gap / 2
		}
	}

	crossPos := padCrossStart + lead
	for _, l := range lines {
		justifyLine(l, innerMain, padMainStart, n.style.JustifyContent, a)
		for _, li := range l.items {
			cs, autoCS := li.z.margin.crossStart(a)
			ce, autoCE := li.z.margin.crossEnd(a)
			if li.stretch {
				li.cross = clamp(l.cross-cs-ce, li.z.minCross(a), li.z.maxCross(a))
			}
			space := l.cross - li.cross - cs - ce
			off := 0.0
			switch {
			case autoCS && autoCE:
				off = math.Max(0, space) / 2
			case autoCS:
				off = math.Max(0, space)
			case autoCE:
			case li.align == AlignCenter:
				off = space / 2
			case li.align == AlignFlexEnd:
				off = space
			}
			li.crossPos = crossPos + cs + off
			if n.style.FlexWrap == FlexWrapReverse {
				li.crossPos = 2*padCrossStart + innerCross - li.crossPos - li.cross
			}
		}
		crossPos += l.cross + gap
	}

	for _, li := range flow {
		x, y := li.mainPos, li.crossPos
		if !a.row {
			x, y = y, x
		}
		sz := a.size(li.main, li.cross)
		dx, dy := relativeOffset(li.it.style.Position, refW, refH, refWOK, refHOK)
		li.it.frame = graphics.RectFromLTWH(x+dx, y+dy, sz.Width, sz.Height)
	}
	for _, it := range absolute {
		s.placeAbsolute(it, size, pad)
	}
	for _, it := range n.children {
		if it.sub != nil {
			s.layout(it.sub, Tight(it.frame.Size()))
		}
	}
	return size
}

const epsilon = 1e-6

// crossFor is the cross constraint a child is measured under before lines
// are sized. A stretched child in a single line of definite cross size
// fills it.
func (s *solver) crossFor(li *lineItem, crossC AxisConstraint, a axes, singleLine bool) AxisConstraint {
	avail := shrinkAxis(crossC, li.outerCross(a))
	if li.stretch && singleLine && avail.Mode == Exactly {
		return avail
	}
	if avail.Mode == Exactly {
		return Max(avail.Size)
	}
	return avail
}

// fit sizes an inner axis to used under a.
func fit(a AxisConstraint, used float64) float64 {
	switch a.Mode {
	case Exactly:
		return a.Size
	case AtMost:
		return math.Min(used, a.Size)
	default:
		return used
	}
}

// resolveFlexible grows or shrinks the items of l into the main space,
// freezing items as they hit their limits.
func resolveFlexible(l *flexLine, mainC AxisConstraint, a axes) {
	used := 0.0
	for _, li := range l.items {
		used += li.hyp + li.outerMain(a)
		li.target, li.frozen = li.hyp, false
	}
	avail := used
	switch mainC.Mode {
	case Exactly:
		avail = mainC.Size
	case AtMost:
		avail = math.Min(used, mainC.Size)
	}
	growing := avail > used
	if math.Abs(avail-used) < epsilon {
		return
	}
	for _, li := range l.items {
		if (growing && li.grow == 0) || (!growing && li.shrink == 0) {
			li.frozen = true
		}
	}

	for range len(l.items) + 1 {
		taken, grow, scaled := 0.0, 0.0, 0.0
		open := 0
		for _, li := range l.items {
			taken += li.outerMain(a)
			if li.frozen {
				taken += li.target
				continue
			}
			taken += li.basis
			grow += li.grow
			scaled += li.shrink * li.basis
			open++
		}
		if open == 0 {
			return
		}
		free := avail - taken
		total := 0.0
		for _, li := range l.items {
			if li.frozen {
				continue
			}
			t := li.basis
			switch {
			case growing && grow > 0:
				t += free * li.grow / grow
			case !growing && scaled > 0:
				t += free * li.shrink * li.basis / scaled
			}
			clamped := math.Max(0, clamp(t, li.z.minMain(a), li.z.maxMain(a)))
			li.target, li.violation = clamped, clamped-t
			total += li.violation
		}
		for _, li := range l.items {
			if li.frozen {
				continue
			}
			switch {
			case math.Abs(total) < epsilon,
				total > 0 && li.violation > 0,
				total < 0 && li.violation < 0:
				li.frozen = true
			}
		}
	}
}

// justifyLine assigns main positions within a line.
func justifyLine(l *flexLine, innerMain, start float64, j Justify, a axes) {
	free := innerMain - l.used
	autos := 0
	for _, li := range l.items {
		if _, auto := li.z.margin.mainStart(a); auto {
			autos++
		}
		if _, auto := li.z.margin.mainEnd(a); auto {
			autos++
		}
	}
	lead, gap, share := 0.0, 0.0, 0.0
	switch {
	case autos > 0:
		if free > 0 {
			share = free / float64(autos)
		}
	case j == JustifyCenter:
		lead = free / 2
	case j == JustifyFlexEnd:
		lead = free
	case j == JustifySpaceBetween && free > 0 && len(l.items) > 1:
		gap = free / float64(len(l.items)-1)
	case j == JustifySpaceAround && free > 0:
		gap = free / float64(len(l.items))
		lead = gap / 2
	case j == JustifySpaceAround:
		lead = free / 2
	}
	pos := start + lead
	for _, li := range l.items {
		ms, autoS := li.z.margin.mainStart(a)
		me, autoE := li.z.margin.mainEnd(a)
		if autoS {
			ms += share
		}
		if autoE {
			me += share
		}
		li.mainPos = pos + ms
		pos += ms + li.main + me + gap
	}
}

// relativeOffset shifts an in-flow item by its position edges. Start and
// top win over end and bottom.
func relativeOffset(e Edges, refW, refH float64, okW, okH bool) (float64, float64) {
	var dx, dy float64
	if v, ok := resolveLength(e.Start, refW, okW); ok {
		dx = v
	} else if v, ok := resolveLength(e.End, refW, okW); ok {
		dx = -v
	}
	if v, ok := resolveLength(e.Top, refH, okH); ok {
		dy = v
	} else if v, ok := resolveLength(e.Bottom, refH, okH); ok {
		dy = -v
	}
	return dx, dy
}

// placeAbsolute sizes and positions an out-of-flow child against the
// container's border box.
func (s *solver) placeAbsolute(it *flexItem, box graphics.Size, pad insets) {
	z := resolveSizing(it.style, box.Width, box.Height, true, true)
	m := z.margin
	start, hasStart := resolveLength(it.style.Position.Start, box.Width, true)
	end, hasEnd := resolveLength(it.style.Position.End, box.Width, true)
	top, hasTop := resolveLength(it.style.Position.Top, box.Height, true)
	bottom, hasBottom := resolveLength(it.style.Position.Bottom, box.Height, true)

	if !z.hasW && hasStart && hasEnd {
		z.width, z.hasW = clamp(box.Width-start-end-m.horizontal(), z.minW, z.maxW), true
	}
	if !z.hasH && hasTop && hasBottom {
		z.height, z.hasH = clamp(box.Height-top-bottom-m.vertical(), z.minH, z.maxH), true
	}
	size := s.measureItem(it, z, Constraints{
		Width:  Max(math.Max(0, box.Width-m.horizontal())),
		Height: Max(math.Max(0, box.Height-m.vertical())),
	})

	x := pad.left + m.left
	switch {
	case hasStart:
		x = start + m.left
	case hasEnd:
		x = box.Width - end - m.right - size.Width
	}
	y := pad.top + m.top
	switch {
	case hasTop:
		y = top + m.top
	case hasBottom:
		y = box.Height - bottom - m.bottom - size.Height
	}
	it.frame = graphics.RectFromLTWH(x, y, size.Width, size.Height)
}

func numberOr(n Number, def float64) float64 {
	if n.Set {
		return n.Value
	}
	return def
}
