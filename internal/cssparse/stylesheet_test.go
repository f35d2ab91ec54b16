package cssparse

import (
	"testing"

	"kestrel/internal/domtree"
)

func TestParseStylesheet_Basic(t *testing.T) {
	sheet, err := ParseStylesheet(`
		div { color: red; margin: 4px; }
		.highlight { color: blue; }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(sheet.Rules))
	}
}

func TestParseStylesheet_StripsComments(t *testing.T) {
	sheet, err := ParseStylesheet(`/* comment */ div { color: red; } /* trailing */`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
}

func TestParseStylesheet_EmptyBodySkipped(t *testing.T) {
	sheet, err := ParseStylesheet(`div {} p { color: red; }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected empty rule to be skipped, got %d rules", len(sheet.Rules))
	}
}

func TestParseStylesheet_SpecificityOrdering(t *testing.T) {
	sheet, err := ParseStylesheet(`
		#id { color: green; }
		div { color: red; }
		.cls { color: blue; }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(sheet.Rules))
	}
	// Ascending specificity: div(1), .cls(10), #id(100)
	if sheet.Rules[0].Selector.Kind != SelTag {
		t.Errorf("expected tag selector first, got %v", sheet.Rules[0].Selector.Kind)
	}
	if sheet.Rules[2].Selector.Kind != SelID {
		t.Errorf("expected id selector last, got %v", sheet.Rules[2].Selector.Kind)
	}
}

func TestParseStylesheet_GroupedSelectors(t *testing.T) {
	sheet, err := ParseStylesheet(`h1, h2 { font-weight: bold; }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 rules from grouped selector, got %d", len(sheet.Rules))
	}
}

func TestParseStylesheet_CompoundAndDescendant(t *testing.T) {
	sheet, err := ParseStylesheet(`div.card span { color: red; }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	sel := sheet.Rules[0].Selector
	if sel.Kind != SelDescendant {
		t.Fatalf("expected descendant selector, got %v", sel.Kind)
	}
	if sel.Ancestor.Kind != SelCompound {
		t.Fatalf("expected compound ancestor, got %v", sel.Ancestor.Kind)
	}
}

func TestMatches_TagAndClass(t *testing.T) {
	div := domtree.NewElement("div")
	div.AddClass("card")

	tagSel := Selector{Kind: SelTag, Value: "div"}
	if !Matches(tagSel, div) {
		t.Error("expected tag selector to match")
	}

	classSel := Selector{Kind: SelClass, Value: "card"}
	if !Matches(classSel, div) {
		t.Error("expected class selector to match")
	}
	if Matches(Selector{Kind: SelClass, Value: "missing"}, div) {
		t.Error("expected class selector not to match absent class")
	}
}

func TestMatches_Descendant(t *testing.T) {
	root := domtree.NewElement("div")
	child := domtree.NewElement("span")
	root.AddChild(child)

	sel := parseSelector("div span")
	if !Matches(sel, child) {
		t.Error("expected descendant selector to match span inside div")
	}
	if Matches(sel, root) {
		t.Error("descendant selector should not match the ancestor itself")
	}
}

func TestMatches_Pseudoclass(t *testing.T) {
	n := domtree.NewElement("a")
	sel := Selector{Kind: SelPseudoclass, Value: "hover"}
	if Matches(sel, n) {
		t.Error("should not match before hover is set")
	}
	n.SetPseudoClass("hover", true)
	if !Matches(sel, n) {
		t.Error("should match once hover is set")
	}
}

func TestMatchingRules_OrderPreserved(t *testing.T) {
	sheet, _ := ParseStylesheet(`div { color: red; } .a { color: blue; }`)
	n := domtree.NewElement("div")
	n.AddClass("a")
	rules := MatchingRules(sheet, n)
	if len(rules) != 2 {
		t.Fatalf("expected 2 matching rules, got %d", len(rules))
	}
	if rules[1].Declarations["color"] != "blue" {
		t.Errorf("expected .a (higher specificity) last so it wins, got %v", rules[1])
	}
}
