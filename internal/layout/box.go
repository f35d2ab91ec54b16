// Package layout implements the layout tree and the two-phase layout
// algorithm (spec §3, §4.3–§4.6): size, position, and bottom-up height
// reconciliation over a per-tab arena of boxes addressed by BoxID.
//
// Grounded on the teacher's pkg/layout/layout_block.go and
// layout_inline_singlepass.go for the size/word-wrap shape, narrowed from
// their multi-pass/flex/table/float machinery down to the spec's five box
// kinds. The arena+index representation (Design Notes, "Cyclic
// parent/child references") replaces the teacher's pointer-linked *Box
// tree, which cannot be mutated in place across reflows without risking
// reference cycles between Parent/Previous/Children.
package layout

import "kestrel/internal/domtree"

// BoxID indexes into a Tree's Boxes slice. NilBoxID marks "no box".
type BoxID int

const NilBoxID BoxID = -1

// HStep and VStep are the fixed page margins from the viewport edge,
// named after spec §4.3's "w = viewport_width - 2*HSTEP".
const (
	HStep = 13.0
	VStep = 18.0
)

// Kind discriminates the five layout box variants of spec §3.
type Kind int

const (
	KindDocument Kind = iota
	KindBlock
	KindLine
	KindText
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindBlock:
		return "Block"
	case KindLine:
		return "Line"
	case KindText:
		return "Text"
	case KindInput:
		return "Input"
	}
	return "Unknown"
}

// BoxEdge mirrors style.BoxEdge to avoid every layout consumer importing
// the style package just for this shape.
type BoxEdge struct {
	Top, Right, Bottom, Left float64
}

// Box is one node of the layout tree. Only the fields relevant to Kind
// are meaningful; see spec §3's variant table.
type Box struct {
	Kind Kind
	Node *domtree.Node // nil for Line boxes

	Parent   BoxID
	Previous BoxID
	Children []BoxID

	X, Y, W, H float64

	// Block-mode vs inline-mode (Block only).
	InlineMode bool

	Margin, Padding, Border BoxEdge

	// Text box fields.
	Word       string
	FontSize   float64
	FontWeight FontWeight
	FontStyle  FontStyle
	CX         float64 // precomputed x offset within the Line, set during size

	// Line box fields.
	MaxAscent, MaxDescent float64

	// Input box fields.
	InputWidth float64
}

// FontWeight/FontStyle are redeclared here (not imported from internal/style)
// so that layout has no compile-time dependency on the style package's
// cascade machinery — it only needs the two small enums.
type FontWeight string
type FontStyle string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"

	FontStyleNormal FontStyle = "normal"
	FontStyleItalic FontStyle = "italic"
)

// Tree is a per-tab arena of layout boxes. BoxID 0, once created, is
// always the single Document root.
type Tree struct {
	Boxes []Box
}

// NewTree returns an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// Alloc appends a new box and returns its BoxID.
func (t *Tree) Alloc(b Box) BoxID {
	t.Boxes = append(t.Boxes, b)
	return BoxID(len(t.Boxes) - 1)
}

// Get returns a pointer to the box for id. Callers never retain this
// pointer across an Alloc call, since Alloc may reallocate the backing
// array.
func (t *Tree) Get(id BoxID) *Box {
	if id == NilBoxID {
		return nil
	}
	return &t.Boxes[id]
}

// AddChild appends child to parent's Children, wiring Parent/Previous.
func (t *Tree) AddChild(parent, child BoxID) {
	p := t.Get(parent)
	c := t.Get(child)
	c.Parent = parent
	if n := len(p.Children); n > 0 {
		c.Previous = p.Children[n-1]
	} else {
		c.Previous = NilBoxID
	}
	p.Children = append(p.Children, child)
}

// Root returns BoxID 0, the Document box, or NilBoxID if the tree is empty.
func (t *Tree) Root() BoxID {
	if len(t.Boxes) == 0 {
		return NilBoxID
	}
	return 0
}

// FindBoxForNode walks the tree looking for a box whose Node is node,
// preferring non-Line boxes (spec §4.6 step 2: "preferring non-Line boxes
// with matching node" — Line boxes have nil Node and never match anyway,
// but Text boxes under multiple candidate Lines could in principle tie;
// the first pre-order match is taken).
func (t *Tree) FindBoxForNode(node *domtree.Node) BoxID {
	root := t.Root()
	if root == NilBoxID {
		return NilBoxID
	}
	return t.findBoxForNode(root, node)
}

func (t *Tree) findBoxForNode(id BoxID, node *domtree.Node) BoxID {
	b := t.Get(id)
	if b.Kind != KindLine && b.Node == node {
		return id
	}
	for _, child := range b.Children {
		if found := t.findBoxForNode(child, node); found != NilBoxID {
			return found
		}
	}
	return NilBoxID
}

// Ancestors returns id's ancestor chain, id's parent first, up to and
// including the Document root.
func (t *Tree) Ancestors(id BoxID) []BoxID {
	var out []BoxID
	for cur := t.Get(id).Parent; cur != NilBoxID; cur = t.Get(cur).Parent {
		out = append(out, cur)
	}
	return out
}
