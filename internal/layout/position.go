package layout

// position sets x,y for every child of id, then recurses — spec §4.4.
// Mandatory: position never creates or destroys boxes, only assigns
// coordinates computed in size() (Text/Input's CX offsets were already
// resolved during word-wrap, precisely so position never has to touch a
// font).
func (e *Engine) position(id BoxID) {
	b := e.Tree.Get(id)
	switch b.Kind {
	case KindDocument:
		e.positionDocumentChildren(id)
	case KindBlock:
		if b.InlineMode {
			e.positionLinesVertically(id)
		} else {
			e.positionBlockChildren(id)
		}
	case KindLine:
		e.positionLineChildren(id)
	case KindText, KindInput:
		// Leaves: no children to position.
	}

	b = e.Tree.Get(id)
	for _, childID := range b.Children {
		e.position(childID)
	}
}

func (e *Engine) positionDocumentChildren(id BoxID) {
	b := e.Tree.Get(id)
	if len(b.Children) == 0 {
		return
	}
	child := e.Tree.Get(b.Children[0])
	child.X = b.X + HStep
	child.Y = b.Y + VStep
}

// positionBlockChildren stacks block-mode children vertically,
// accumulating child.mt + child.h + child.mb per spec §4.4.
func (e *Engine) positionBlockChildren(id BoxID) {
	b := e.Tree.Get(id)
	contentX := b.X + b.Border.Left + b.Padding.Left
	cursorY := b.Y + b.Border.Top + b.Padding.Top

	for _, childID := range b.Children {
		child := e.Tree.Get(childID)
		child.X = contentX + child.Margin.Left
		child.Y = cursorY + child.Margin.Top
		cursorY = child.Y + child.H + child.Margin.Bottom
	}
}

// positionLinesVertically stacks Line children of an inline-mode Block by
// child.h.
func (e *Engine) positionLinesVertically(id BoxID) {
	b := e.Tree.Get(id)
	contentX := b.X + b.Border.Left + b.Padding.Left
	cursorY := b.Y + b.Border.Top + b.Padding.Top

	for _, childID := range b.Children {
		child := e.Tree.Get(childID)
		child.X = contentX
		child.Y = cursorY
		cursorY += child.H
	}
}

// positionLineChildren positions Text/Input children horizontally using
// their precomputed CX offsets, and vertically off a shared baseline.
func (e *Engine) positionLineChildren(id BoxID) {
	line := e.Tree.Get(id)
	baseline := line.Y + 1.25*line.MaxAscent

	for _, childID := range line.Children {
		child := e.Tree.Get(childID)
		child.X = line.X + child.CX
		ascent := e.Fonts.Ascent(child.FontSize, styleFontWeight(child.FontWeight), styleFontStyle(child.FontStyle))
		child.Y = baseline - ascent
	}
}
