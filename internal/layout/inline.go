package layout

import (
	"strings"

	"kestrel/internal/domtree"
	"kestrel/internal/style"
)

// inlineWalker carries the mutable word-wrap cursor state across a single
// inline-mode Block's subtree walk (spec §4.3 "Inline word-wrap").
type inlineWalker struct {
	engine   *Engine
	blockID  BoxID
	lineID   BoxID
	cursorX  float64
	maxWidth float64
}

// layoutInline builds the Line/Text/Input children of an inline-mode
// Block by walking node's subtree, wrapping words onto Lines no wider
// than maxWidth.
func (e *Engine) layoutInline(blockID BoxID, node *domtree.Node, maxWidth float64) {
	firstLine := e.Tree.Alloc(Box{Kind: KindLine})
	e.Tree.AddChild(blockID, firstLine)

	w := &inlineWalker{engine: e, blockID: blockID, lineID: firstLine, maxWidth: maxWidth}
	w.walk(node)

	b := e.Tree.Get(blockID)
	for _, lineID := range b.Children {
		e.sizeLine(lineID, maxWidth)
	}
}

func (w *inlineWalker) walk(node *domtree.Node) {
	switch node.Type {
	case domtree.TextNode:
		w.emitText(node)
	case domtree.ElementNode:
		st := w.engine.styleFor(node)
		if st.GetDisplay() == style.DisplayNone {
			return
		}
		switch node.TagName {
		case "br":
			w.newLine()
			return
		case "input":
			w.emitInput(node, st)
			return
		}
		for _, child := range node.Children {
			w.walk(child)
		}
	}
}

func (w *inlineWalker) emitText(textNode *domtree.Node) {
	st := w.engine.styleFor(textNode.Parent)
	fontSize := st.GetFontSize()
	weight := st.GetFontWeight()
	fontStyle := st.GetFontStyle()

	for _, word := range splitWords(textNode.Text) {
		w.emitWord(word, textNode, fontSize, weight, fontStyle)
	}
}

func (w *inlineWalker) emitWord(word string, textNode *domtree.Node, fontSize float64, weight style.FontWeight, fontStyle style.FontStyle) {
	e := w.engine
	wordWidth, wordHeight := e.Fonts.Measure(word, fontSize, weight, fontStyle)

	line := e.Tree.Get(w.lineID)
	spaceWidth := 0.0
	if len(line.Children) > 0 {
		spaceWidth = e.Fonts.SpaceWidth(fontSize, weight, fontStyle)
	}

	if len(line.Children) > 0 && w.cursorX+spaceWidth+wordWidth > w.maxWidth {
		w.newLine()
		spaceWidth = 0
	}

	x := w.cursorX + spaceWidth
	textID := e.Tree.Alloc(Box{
		Kind:       KindText,
		Node:       textNode,
		Word:       word,
		FontSize:   fontSize,
		FontWeight: FontWeight(weight),
		FontStyle:  FontStyle(fontStyle),
		CX:         x,
		W:          wordWidth,
		H:          wordHeight,
	})
	e.Tree.AddChild(w.lineID, textID)
	w.cursorX = x + wordWidth
}

func (w *inlineWalker) emitInput(node *domtree.Node, st *style.Style) {
	e := w.engine
	const inputWidth = 200.0
	fontSize := st.GetFontSize()
	weight := st.GetFontWeight()
	fontStyle := st.GetFontStyle()
	_, h := e.Fonts.Measure("x", fontSize, weight, fontStyle)

	line := e.Tree.Get(w.lineID)
	spaceWidth := 0.0
	if len(line.Children) > 0 {
		spaceWidth = e.Fonts.SpaceWidth(fontSize, weight, fontStyle)
	}
	if len(line.Children) > 0 && w.cursorX+spaceWidth+inputWidth > w.maxWidth {
		w.newLine()
		spaceWidth = 0
	}

	x := w.cursorX + spaceWidth
	inputID := e.Tree.Alloc(Box{
		Kind:       KindInput,
		Node:       node,
		FontSize:   fontSize,
		FontWeight: FontWeight(weight),
		FontStyle:  FontStyle(fontStyle),
		CX:         x,
		W:          inputWidth,
		H:          h,
		InputWidth: inputWidth,
	})
	e.Tree.AddChild(w.lineID, inputID)
	w.cursorX = x + inputWidth
}

func (w *inlineWalker) newLine() {
	newID := w.engine.Tree.Alloc(Box{Kind: KindLine})
	w.engine.Tree.AddChild(w.blockID, newID)
	w.lineID = newID
	w.cursorX = 0
}

// splitWords splits on runs of whitespace, dropping empty tokens —
// leading/trailing/collapsed whitespace between elements produces no
// phantom empty words.
func splitWords(text string) []string {
	return strings.Fields(text)
}
