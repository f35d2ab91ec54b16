package cssparse

import "kestrel/internal/domtree"

// Matches reports whether sel matches node, grounded on the teacher's
// MatchesSelector but extended to the richer Selector sum type above.
func Matches(sel Selector, node *domtree.Node) bool {
	if node == nil || node.Type != domtree.ElementNode {
		return false
	}
	switch sel.Kind {
	case SelTag:
		return sel.Value == "*" || node.TagName == sel.Value
	case SelClass:
		return node.HasClass(sel.Value)
	case SelID:
		id, _ := node.GetAttribute("id")
		return id == sel.Value
	case SelPseudoclass:
		return node.HasPseudoClass(sel.Value)
	case SelCompound:
		for _, part := range sel.Parts {
			if !Matches(part, node) {
				return false
			}
		}
		return true
	case SelDescendant:
		if !Matches(*sel.Descendant, node) {
			return false
		}
		for a := node.Parent; a != nil; a = a.Parent {
			if Matches(*sel.Ancestor, a) {
				return true
			}
		}
		return false
	}
	return false
}

// MatchingRules returns the subset of sheet's rules whose selector matches
// node, in the sheet's existing (cascade) order.
func MatchingRules(sheet *Stylesheet, node *domtree.Node) []Rule {
	if sheet == nil {
		return nil
	}
	var out []Rule
	for _, r := range sheet.Rules {
		if Matches(r.Selector, node) {
			out = append(out, r)
		}
	}
	return out
}
