// Package hittest implements point-based hit testing (spec §4.8):
// translating a viewport-relative click into either a chrome interaction
// or a content Action, by walking the layout tree for the deepest box
// under the point and then the element tree for the nearest actionable
// ancestor.
package hittest

import (
	"kestrel/internal/domtree"
	"kestrel/internal/layout"
)

// ActionKind discriminates the three content actions spec §4.8 produces.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionNavigate
	ActionFocusInput
	ActionSubmit
)

// Action is the outcome of hit-testing page content.
type Action struct {
	Kind ActionKind
	URL  string       // set for ActionNavigate
	Node *domtree.Node // the actionable element (a/input/button)
	Box  layout.BoxID  // the layout box the point actually landed in
}

// HitTestPage collects every layout box whose rectangle contains the
// page-relative point (x, y) and returns the last one found — spec §4.8:
// "pick the last one (deepest in paint order)... ties: last box in the
// collection wins." A pre-order walk visits a parent before its children,
// so the last box appended is always the most deeply nested one
// containing the point.
func HitTestPage(tree *layout.Tree, x, y float64) (layout.BoxID, *domtree.Node) {
	root := tree.Root()
	if root == layout.NilBoxID {
		return layout.NilBoxID, nil
	}
	var hits []layout.BoxID
	collect(tree, root, x, y, &hits)
	if len(hits) == 0 {
		return layout.NilBoxID, nil
	}
	last := hits[len(hits)-1]
	return last, tree.Get(last).Node
}

func collect(tree *layout.Tree, id layout.BoxID, x, y float64, out *[]layout.BoxID) {
	b := tree.Get(id)
	if containsPoint(b, x, y) {
		*out = append(*out, id)
	}
	for _, child := range b.Children {
		collect(tree, child, x, y, out)
	}
}

func containsPoint(b *layout.Box, x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// ActionableAncestor walks node's ancestor chain (node itself first) and
// returns the first element satisfying the actionable predicate: an
// a[href], an input, or a button. Returns nil if none is found.
func ActionableAncestor(node *domtree.Node) *domtree.Node {
	for n := node; n != nil; n = n.Parent {
		if n.Type != domtree.ElementNode {
			continue
		}
		switch n.TagName {
		case "a":
			if href, ok := n.GetAttribute("href"); ok && href != "" {
				return n
			}
		case "input", "button":
			return n
		}
	}
	return nil
}

// ActionFor builds the Action a hit on target (the result of
// ActionableAncestor) produces, or the zero Action if target is nil.
func ActionFor(target *domtree.Node, box layout.BoxID) Action {
	if target == nil {
		return Action{Kind: ActionNone, Box: box}
	}
	switch target.TagName {
	case "a":
		href, _ := target.GetAttribute("href")
		return Action{Kind: ActionNavigate, URL: href, Node: target, Box: box}
	case "input":
		return Action{Kind: ActionFocusInput, Node: target, Box: box}
	case "button":
		return Action{Kind: ActionSubmit, Node: target, Box: box}
	}
	return Action{Kind: ActionNone, Box: box}
}

// HitTestContent runs the full page-side algorithm of spec §4.8 on
// page-relative coordinates (the caller has already translated viewport
// coordinates by scroll_y and chrome_height).
func HitTestContent(tree *layout.Tree, x, y float64) Action {
	box, node := HitTestPage(tree, x, y)
	if node == nil {
		return Action{Kind: ActionNone, Box: box}
	}
	return ActionFor(ActionableAncestor(node), box)
}
