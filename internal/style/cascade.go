package style

import (
	"fmt"
	"strings"

	"kestrel/internal/cssparse"
	"kestrel/internal/domtree"
)

// inheritedProperties is the closed inheritance set (spec §3/§4.1):
// narrower than the teacher's inheritableProperties map, which also
// inherits line-height, text-align, cursor, and a dozen others.
var inheritedProperties = []string{"font-family", "font-size", "font-style", "font-weight", "color"}

// ComputeStyle resolves node's style: copy the closed inheritance set from
// parentStyle (nil for the tree root), then apply every rule in sheet that
// matches node, ascending by Priority so a later (or more specific) rule
// overwrites an earlier one's properties. Unknown declarations are never
// rejected here — the resolver stores whatever string the cascade
// produced; it is layout/paint's job to fall back on a value it cannot
// interpret (spec §7 UnknownStyleValue).
func ComputeStyle(node *domtree.Node, sheet *cssparse.Stylesheet, parentStyle *Style) *Style {
	s := New()

	if parentStyle != nil {
		for _, prop := range inheritedProperties {
			if v, ok := parentStyle.Get(prop); ok {
				s.Set(prop, v)
			}
		}
	}

	applyUserAgentDefaults(node, s)

	for _, rule := range cssparse.MatchingRules(sheet, node) {
		for prop, val := range rule.Declarations {
			s.Set(prop, val)
		}
	}

	if inline, _ := node.GetAttribute("style"); inline != "" {
		inlineStyle := ParseInlineStyle(inline)
		for prop, val := range inlineStyle.Properties {
			s.Set(prop, val)
		}
	}

	resolveFontSizePercentage(s, parentStyle)

	return s
}

// ComputeTree resolves styles for node and its entire subtree in
// pre-order, returning a map from *domtree.Node to its resolved Style.
// This is also the reflow-boundary entry point (spec §4.1): calling it
// with a subtree root and that root's unchanged parent style re-resolves
// only the subtree.
func ComputeTree(node *domtree.Node, sheet *cssparse.Stylesheet, parentStyle *Style) map[*domtree.Node]*Style {
	out := make(map[*domtree.Node]*Style)
	computeTreeInto(node, sheet, parentStyle, out)
	return out
}

func computeTreeInto(node *domtree.Node, sheet *cssparse.Stylesheet, parentStyle *Style, out map[*domtree.Node]*Style) {
	if node.Type != domtree.ElementNode {
		return
	}
	s := ComputeStyle(node, sheet, parentStyle)
	out[node] = s
	for _, child := range node.Children {
		computeTreeInto(child, sheet, s, out)
	}
}

// resolveFontSizePercentage resolves a "N%" or "Nem" font-size against the
// parent's already-resolved pixel size (spec §4.1: "Percentage font-size
// resolves against parent's resolved pixel size").
func resolveFontSizePercentage(s *Style, parentStyle *Style) {
	fsVal, ok := s.Get("font-size")
	if !ok {
		return
	}
	fsVal = strings.TrimSpace(fsVal)
	parentPx := 16.0
	if parentStyle != nil {
		parentPx = parentStyle.GetFontSize()
	}
	switch {
	case strings.HasSuffix(fsVal, "%"):
		pct, ok := ParseLength(strings.TrimSuffix(fsVal, "%"))
		if ok {
			s.Set("font-size", fmt.Sprintf("%.6gpx", parentPx*pct/100))
		}
	case strings.HasSuffix(fsVal, "em"):
		em, ok := ParseLength(strings.TrimSuffix(fsVal, "em"))
		if ok {
			s.Set("font-size", fmt.Sprintf("%.6gpx", parentPx*em))
		}
	}
}

// applyUserAgentDefaults seeds the small set of default presentational
// styles a browser applies before any author rule, grounded on the
// teacher's applyUserAgentStyles but narrowed to tags the layout/paint
// pipeline actually distinguishes (spec's 5-box-kind model has no notion
// of tables, lists, or definition lists).
func applyUserAgentDefaults(node *domtree.Node, s *Style) {
	switch node.TagName {
	case "a":
		s.Set("color", "blue")
		s.Set("text-decoration", "underline")
	case "strong", "b":
		s.Set("font-weight", "bold")
	case "em", "i":
		s.Set("font-style", "italic")
	}

	switch node.TagName {
	case "script", "style", "head", "meta", "link", "title":
		s.Set("display", "none")
	case "span", "a", "em", "i", "strong", "b", "label", "br", "input":
		s.Set("display", "inline")
	}
}
