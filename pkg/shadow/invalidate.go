package shadow

// RequestLayout marks the layout of n's tree dirty so that the next
// externally driven pass re-measures n. It may be called from any
// goroutine and never lays out itself. When n is detached, or its chain
// of parents does not end at an attached root, the call does nothing.
func RequestLayout(n Node) {
	if n == nil {
		return
	}
	top := n
	for {
		b := top.base()
		if b.detached.Load() {
			return
		}
		parent := top.Parent()
		if parent == nil {
			break
		}
		top = parent
	}
	tb := top.base()
	if !tb.rooted.Load() {
		if tb.ctx != nil {
			tb.ctx.config.logger.Trace("layout request on orphaned node ignored", "kind", n.Kind())
		}
		return
	}

	dirtyAncestors(n)
	tb.ctx.pipeline.ScheduleLayout()
}

// dirtyAncestors tells every layout owner above n that the branch holding n
// must be measured again.
func dirtyAncestors(n Node) {
	child := n
	for p := n.Parent(); p != nil; p = p.Parent() {
		if owner, ok := p.(LayoutOwner); ok {
			owner.ChildNeedsLayout(child)
		}
		child = p
	}
}
