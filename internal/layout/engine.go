package layout

import (
	"kestrel/internal/cssparse"
	"kestrel/internal/domtree"
	"kestrel/internal/fontcache"
	"kestrel/internal/style"
)

// Engine owns one tab's layout tree plus the collaborators size/position
// need: the font cache (C2) and the resolved style map (C3's output).
// This is the "per-tab, main-thread-owned" state of spec §5.
type Engine struct {
	Tree *Tree

	Fonts  *fontcache.Cache
	Styles map[*domtree.Node]*style.Style
	Sheet  *cssparse.Stylesheet

	ViewportWidth  float64
	ViewportHeight float64

	defaultStyle *style.Style
}

// NewEngine constructs an Engine with an empty style map; InitialLayout
// (or ResolveStyles) fills it.
func NewEngine(fonts *fontcache.Cache, sheet *cssparse.Stylesheet, viewportWidth, viewportHeight float64) *Engine {
	return &Engine{
		Tree:           NewTree(),
		Fonts:          fonts,
		Styles:         make(map[*domtree.Node]*style.Style),
		Sheet:          sheet,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		defaultStyle:   style.New(),
	}
}

// styleFor returns node's resolved style, falling back to an empty
// (all-default) Style for a node the style resolver has not (yet) visited
// — this happens for newly inserted nodes between a DOM mutation and the
// reflow that re-resolves their style.
func (e *Engine) styleFor(node *domtree.Node) *style.Style {
	if node == nil {
		return e.defaultStyle
	}
	if s, ok := e.Styles[node]; ok {
		return s
	}
	return e.defaultStyle
}

// ResolveStyles recomputes Engine.Styles for the subtree rooted at root,
// inheriting from parentStyle (nil at the document root). This is spec
// §4.1/§4.6 step 1, wired into the Engine's own style map so size() can
// consult it without a caller plumbing per-node styles through.
func (e *Engine) ResolveStyles(root *domtree.Node, parentStyle *style.Style) {
	computed := style.ComputeTree(root, e.Sheet, parentStyle)
	for node, s := range computed {
		e.Styles[node] = s
	}
}

// InitialLayout builds the layout tree for doc for the first time and
// runs a full size → compute_height → position → paint-ready pass.
func (e *Engine) InitialLayout(doc *domtree.Document) {
	e.ResolveStyles(doc.Root, nil)

	e.Tree = NewTree()
	docBoxID := e.Tree.Alloc(Box{Kind: KindDocument, Node: doc.Root, Parent: NilBoxID, Previous: NilBoxID})
	e.sizeDocument(docBoxID)
	e.position(docBoxID)
}
