package hittest

import (
	"testing"

	"kestrel/internal/domtree"
	"kestrel/internal/layout"
)

func buildTree() (*layout.Tree, *domtree.Node, *domtree.Node) {
	tree := layout.NewTree()
	doc := tree.Alloc(layout.Box{Kind: layout.KindDocument, X: 0, Y: 0, W: 800, H: 600})

	linkNode := domtree.NewElement("a")
	linkNode.SetAttribute("href", "/x")
	textNode := domtree.NewText("Link")
	linkNode.AddChild(textNode)

	outer := tree.Alloc(layout.Box{Kind: layout.KindBlock, Node: linkNode, X: 0, Y: 0, W: 200, H: 50})
	tree.AddChild(doc, outer)
	text := tree.Alloc(layout.Box{Kind: layout.KindText, Node: textNode, X: 10, Y: 10, W: 40, H: 20, Word: "Link"})
	tree.AddChild(outer, text)

	return tree, linkNode, textNode
}

// TestScenario5-adjacent: hit testing a link's text box finds the
// enclosing <a href> as the actionable ancestor (spec §4.8).
func TestHitTestContent_LinkNavigatesToHref(t *testing.T) {
	tree, linkNode, _ := buildTree()

	action := HitTestContent(tree, 15, 15)
	if action.Kind != ActionNavigate {
		t.Fatalf("expected ActionNavigate, got %v", action.Kind)
	}
	if action.URL != "/x" {
		t.Errorf("action.URL = %q, want /x", action.URL)
	}
	if action.Node != linkNode {
		t.Errorf("action.Node = %p, want the <a> element %p", action.Node, linkNode)
	}
}

func TestHitTestContent_MissNoAction(t *testing.T) {
	tree, _, _ := buildTree()
	action := HitTestContent(tree, 500, 500)
	if action.Kind != ActionNone {
		t.Errorf("expected ActionNone for a miss, got %v", action.Kind)
	}
}

func TestHitTestPage_PicksDeepestOfOverlappingBoxes(t *testing.T) {
	tree := layout.NewTree()
	doc := tree.Alloc(layout.Box{Kind: layout.KindDocument, X: 0, Y: 0, W: 100, H: 100})
	outerNode := domtree.NewElement("div")
	innerNode := domtree.NewElement("span")
	outer := tree.Alloc(layout.Box{Kind: layout.KindBlock, Node: outerNode, X: 0, Y: 0, W: 100, H: 100})
	tree.AddChild(doc, outer)
	inner := tree.Alloc(layout.Box{Kind: layout.KindBlock, Node: innerNode, X: 10, Y: 10, W: 20, H: 20})
	tree.AddChild(outer, inner)

	boxID, node := HitTestPage(tree, 15, 15)
	if boxID != inner {
		t.Errorf("expected the deepest (inner) box to win, got box %v", boxID)
	}
	if node != innerNode {
		t.Errorf("expected inner node, got %v", node)
	}
}

func TestActionableAncestor_InputIsActionableEvenWithoutHref(t *testing.T) {
	input := domtree.NewElement("input")
	span := domtree.NewElement("span")
	span.AddChild(input)

	got := ActionableAncestor(input)
	if got != input {
		t.Errorf("expected the input itself to be actionable, got %v", got)
	}
}

func TestActionableAncestor_AnchorWithoutHrefIsNotActionable(t *testing.T) {
	a := domtree.NewElement("a")
	text := domtree.NewText("click me")
	a.AddChild(text)

	if got := ActionableAncestor(text); got != nil {
		t.Errorf("expected no actionable ancestor for an <a> lacking href, got %v", got)
	}
}

// TestScenario5_ChromeClickNeverProducesContentAction exercises spec §8
// scenario 5 and the "clicking at y < chrome_height never produces a
// content-side task" boundary behavior.
func TestScenario5_ChromeClickNeverProducesContentAction(t *testing.T) {
	tree, _, _ := buildTree()
	bounds := ChromeBounds{
		Height: 40,
		Tabs:   []Rect{{X: 0, Y: 0, W: 100, H: 40}, {X: 100, Y: 0, W: 100, H: 40}},
	}

	result := Dispatch(bounds, tree, 0, 50, 10)
	if !result.IsChrome {
		t.Fatalf("expected a chrome hit for y < chrome_height, got a content dispatch")
	}
	if result.Chrome.Kind != ChromeHitTab || result.Chrome.TabIndex != 0 {
		t.Errorf("expected tab 0 hit, got %+v", result.Chrome)
	}
}

func TestDispatch_BelowChromeTranslatesToPageCoordinates(t *testing.T) {
	tree, linkNode, _ := buildTree()
	bounds := ChromeBounds{Height: 40}

	// viewport y=55, scrollY=0 -> page y = 55 - 40 = 15, inside the link.
	result := Dispatch(bounds, tree, 0, 15, 55)
	if result.IsChrome {
		t.Fatalf("expected a content dispatch below chrome_height")
	}
	if result.Action.Node != linkNode {
		t.Errorf("expected the link to be hit after translation, got %v", result.Action.Node)
	}
}
