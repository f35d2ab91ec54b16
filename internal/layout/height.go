package layout

// computeHeight recomputes h purely from children's already-known h (and
// own margins/padding/border) — spec §4.5. Never re-sizes children.
func (e *Engine) computeHeight(id BoxID) {
	b := e.Tree.Get(id)
	switch b.Kind {
	case KindDocument:
		if len(b.Children) > 0 {
			b.H = e.Tree.Get(b.Children[0]).H
		}
	case KindBlock:
		if b.InlineMode {
			var total float64
			for _, childID := range b.Children {
				total += e.Tree.Get(childID).H
			}
			b.H = total + b.Padding.Top + b.Padding.Bottom + b.Border.Top + b.Border.Bottom
		} else {
			var total float64
			for _, childID := range b.Children {
				c := e.Tree.Get(childID)
				total += c.Margin.Top + c.H + c.Margin.Bottom
			}
			b.H = total + b.Padding.Top + b.Padding.Bottom + b.Border.Top + b.Border.Bottom
		}
	case KindLine:
		b.H = 1.25 * (b.MaxAscent + b.MaxDescent)
	case KindText, KindInput:
		// Leaves already carry their final h from word-wrap.
	}
}

// ReconcileHeights walks id's ancestor chain bottom-up (id itself first)
// calling computeHeight on each — spec §4.5's "invoked after size(dirty)
// on every ancestor up to the Document".
func (e *Engine) ReconcileHeights(id BoxID) {
	e.computeHeight(id)
	for _, ancestorID := range e.Tree.Ancestors(id) {
		e.computeHeight(ancestorID)
	}
}
