package layout

import (
	"kestrel/internal/domtree"
	"kestrel/internal/style"
)

// size dispatches on box kind, following spec §4.3's per-variant
// algorithm. availableWidth is the containing block's content width
// handed down by the parent — passed explicitly rather than read back
// from the parent Box, since Document's own W is only known after its
// child has already been sized (spec: "create single Block child...
// call child.size(); set w = viewport_width - 2*HSTEP").
//
// Mandatory rule (spec §4.3): size must never read x or y of any box.
func (e *Engine) size(id BoxID, availableWidth float64) {
	b := e.Tree.Get(id)
	switch b.Kind {
	case KindDocument:
		e.sizeDocument(id)
	case KindBlock:
		e.sizeBlock(id, availableWidth)
	case KindLine:
		e.sizeLine(id, availableWidth)
	case KindText:
		// Text boxes are sized inline during word-wrap (emitWord in
		// inline.go); size() is never invoked on them directly.
	case KindInput:
		// Same — sized during word-wrap (emitInput in inline.go).
	}
}

func (e *Engine) sizeDocument(id BoxID) {
	b := e.Tree.Get(id)
	contentWidth := e.ViewportWidth - 2*HStep

	if len(b.Children) == 0 {
		childID := e.Tree.Alloc(Box{Kind: KindBlock, Node: b.Node, Parent: NilBoxID, Previous: NilBoxID})
		e.Tree.AddChild(id, childID)
	}

	b = e.Tree.Get(id)
	childID := b.Children[0]
	e.size(childID, contentWidth)

	child := e.Tree.Get(childID)
	b = e.Tree.Get(id)
	b.W = contentWidth
	b.H = child.H
}

// sizeBlock rebuilds this box's children fresh from the current element
// tree on every call. The teacher's LayoutEngine does the same (it
// replaces the whole box tree on every Layout() call); this package
// narrows that to "only the dirty Block's own children are rebuilt",
// which still satisfies the Design Notes' "retained mutable layout tree"
// at the granularity that matters here — ancestor BoxIDs, and therefore
// ancestor identity across a reflow, are never disturbed.
func (e *Engine) sizeBlock(id BoxID, availableWidth float64) {
	b := e.Tree.Get(id)
	node := b.Node
	st := e.styleFor(node)

	margin := edgeFromStyle(st.GetMargin())
	padding := edgeFromStyle(st.GetPadding())
	border := edgeFromStyle(st.GetBorderWidth())

	b.Margin, b.Padding, b.Border = margin, padding, border
	b.W = availableWidth - margin.Left - margin.Right
	b.Children = nil

	blockLevel := e.hasBlockLevelChild(node)
	b.InlineMode = !blockLevel

	contentWidth := b.W - padding.Left - padding.Right - border.Left - border.Right

	if blockLevel {
		for _, childNode := range node.Children {
			if childNode.Type != domtree.ElementNode {
				continue
			}
			if e.styleFor(childNode).GetDisplay() == style.DisplayNone {
				continue
			}
			childID := e.Tree.Alloc(Box{Kind: KindBlock, Node: childNode})
			e.Tree.AddChild(id, childID)
			e.size(childID, contentWidth)
		}
	} else {
		e.layoutInline(id, node, contentWidth)
	}

	e.computeHeight(id)
}

func (e *Engine) sizeLine(id BoxID, parentWidth float64) {
	b := e.Tree.Get(id)
	b.W = parentWidth

	var maxAscent, maxDescent float64
	for _, childID := range b.Children {
		child := e.Tree.Get(childID)
		if child.Kind != KindText && child.Kind != KindInput {
			continue
		}
		a := e.Fonts.Ascent(child.FontSize, styleFontWeight(child.FontWeight), styleFontStyle(child.FontStyle))
		d := e.Fonts.Descent(child.FontSize, styleFontWeight(child.FontWeight), styleFontStyle(child.FontStyle))
		if a > maxAscent {
			maxAscent = a
		}
		if d > maxDescent {
			maxDescent = d
		}
	}
	b = e.Tree.Get(id)
	b.MaxAscent, b.MaxDescent = maxAscent, maxDescent
	b.H = 1.25 * (maxAscent + maxDescent)
}

func edgeFromStyle(e style.BoxEdge) BoxEdge {
	return BoxEdge{Top: e.Top, Right: e.Right, Bottom: e.Bottom, Left: e.Left}
}

// hasBlockLevelChild decides block vs inline mode by inspecting whether
// any rendered element child has display:block (the default) rather than
// display:inline.
func (e *Engine) hasBlockLevelChild(node *domtree.Node) bool {
	for _, child := range node.Children {
		if child.Type != domtree.ElementNode {
			continue
		}
		st := e.styleFor(child)
		if st.GetDisplay() == style.DisplayBlock {
			return true
		}
	}
	return false
}

func styleFontWeight(w FontWeight) style.FontWeight { return style.FontWeight(w) }
func styleFontStyle(s FontStyle) style.FontStyle    { return style.FontStyle(s) }
