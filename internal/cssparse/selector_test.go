package cssparse

import "testing"

func TestParseSelectorList_Grouping(t *testing.T) {
	sels := ParseSelectorList("div, .cls, #id")
	if len(sels) != 3 {
		t.Fatalf("expected 3 selectors, got %d", len(sels))
	}
	if sels[0].Kind != SelTag || sels[1].Kind != SelClass || sels[2].Kind != SelID {
		t.Errorf("unexpected kinds: %+v", sels)
	}
}

func TestParseCompound_MultipleClasses(t *testing.T) {
	sel := parseCompound("div.a.b")
	if sel.Kind != SelCompound {
		t.Fatalf("expected compound, got %v", sel.Kind)
	}
	if len(sel.Parts) != 3 {
		t.Fatalf("expected 3 parts (tag + 2 classes), got %d", len(sel.Parts))
	}
}

func TestSpecificity_Weights(t *testing.T) {
	tag := Selector{Kind: SelTag, Value: "div"}
	class := Selector{Kind: SelClass, Value: "a"}
	id := Selector{Kind: SelID, Value: "x"}
	pseudo := Selector{Kind: SelPseudoclass, Value: "hover"}

	if tag.Specificity() != 1 {
		t.Errorf("tag specificity = %d, want 1", tag.Specificity())
	}
	if class.Specificity() != 10 {
		t.Errorf("class specificity = %d, want 10", class.Specificity())
	}
	if id.Specificity() != 100 {
		t.Errorf("id specificity = %d, want 100", id.Specificity())
	}
	if pseudo.Specificity() != 10 {
		t.Errorf("pseudoclass specificity = %d, want 10", pseudo.Specificity())
	}
}

func TestSpecificity_CompoundSums(t *testing.T) {
	sel := parseCompound("div.a:hover")
	if sel.Specificity() != 21 {
		t.Errorf("compound specificity = %d, want 21 (1 + 10 + 10)", sel.Specificity())
	}
}

func TestSpecificity_DescendantSums(t *testing.T) {
	sel := parseSelector("div .a")
	if sel.Specificity() != 11 {
		t.Errorf("descendant specificity = %d, want 11 (1 + 10)", sel.Specificity())
	}
}
