package layout

import (
	"kestrel/internal/domtree"
	"kestrel/internal/style"
)

// Reflow implements spec §4.6's eight-step protocol. dirty is the element
// whose subtree changed (style, content, or structure). The caller is
// responsible for steps the layout package has no way to perform itself:
// step 7 (regenerate the display list via internal/paint) and step 8
// (mark needs_raster_and_draw / request an animation frame) are the
// browser/scheduler's job — Reflow returns after step 6 and reports
// whether a display-list regeneration is owed.
//
// Failure semantics (spec §4.6): a dirty element detached from the
// element tree is ignored (DetachedLayoutTarget, spec §7) — Reflow
// returns false and does nothing.
func (e *Engine) Reflow(dirty *domtree.Node, doc *domtree.Document) bool {
	if dirty == nil || !doc.Root.Contains(dirty) {
		return false
	}

	styleRoot := dirty
	if styleRoot.Type != domtree.ElementNode {
		// A dirtied text node has no style of its own; re-resolve its
		// parent element instead (this also covers the element whose
		// word content changed).
		styleRoot = styleRoot.Parent
	}
	if styleRoot != nil {
		var parentStyle *style.Style
		if styleRoot.Parent != nil {
			parentStyle = e.styleFor(styleRoot.Parent)
		}
		e.ResolveStyles(styleRoot, parentStyle)
	}

	target := e.Tree.FindBoxForNode(dirty)
	if target == NilBoxID {
		// Initial load, or the element has no layout box yet: reflow from
		// the Document root.
		target = e.Tree.Root()
		if target == NilBoxID {
			return false
		}
	}

	containingWidth := e.containingBlockWidth(target)
	e.size(target, containingWidth)

	e.ReconcileHeights(target)
	e.position(e.Tree.Root())

	return true
}

// containingBlockWidth recovers the content width available to id from
// its parent box, for re-`size`ing id in isolation during a partial
// reflow (size() ordinarily receives this top-down from its caller; a
// reflow root has no such caller, so it's reconstructed from the already-
// laid-out parent).
func (e *Engine) containingBlockWidth(id BoxID) float64 {
	b := e.Tree.Get(id)
	if b.Kind == KindDocument {
		return e.ViewportWidth - 2*HStep
	}
	parent := e.Tree.Get(b.Parent)
	if parent == nil {
		return e.ViewportWidth - 2*HStep
	}
	return parent.W - parent.Padding.Left - parent.Padding.Right - parent.Border.Left - parent.Border.Right
}
