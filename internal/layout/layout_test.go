package layout

import (
	"testing"

	"kestrel/internal/cssparse"
	"kestrel/internal/domtree"
	"kestrel/internal/fontcache"
	"kestrel/internal/htmlparse"
)

func newTestEngine(t *testing.T, css string) *Engine {
	t.Helper()
	sheet, err := cssparse.ParseStylesheet(css)
	if err != nil {
		t.Fatalf("unexpected css parse error: %v", err)
	}
	fonts := fontcache.New("/nonexistent/regular.ttf", "/nonexistent/bold.ttf", "", "")
	return NewEngine(fonts, sheet, 800, 600)
}

// TestScenario1_LineBreakOnBR exercises spec §8 scenario 1.
func TestScenario1_LineBreakOnBR(t *testing.T) {
	doc, err := htmlparse.Parse(`<html><body>Hi<br>There</body></html>`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	e := newTestEngine(t, "")
	e.InitialLayout(doc)

	docBox := e.Tree.Get(e.Tree.Root())
	if docBox.Kind != KindDocument {
		t.Fatalf("expected Document root, got %v", docBox.Kind)
	}
	rootBlock := e.Tree.Get(docBox.Children[0])
	html := e.Tree.Get(rootBlock.Children[0])
	body := e.Tree.Get(html.Children[0])
	if !body.InlineMode {
		t.Fatalf("expected body to be inline-mode (only block-level-free children), got block mode")
	}
	if len(body.Children) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(body.Children))
	}

	line1 := e.Tree.Get(body.Children[0])
	line2 := e.Tree.Get(body.Children[1])
	if len(line1.Children) != 1 || len(line2.Children) != 1 {
		t.Fatalf("expected one text box per line, got %d and %d", len(line1.Children), len(line2.Children))
	}
	text1 := e.Tree.Get(line1.Children[0])
	text2 := e.Tree.Get(line2.Children[0])
	if text1.Word != "Hi" {
		t.Errorf("expected first line's word to be 'Hi', got %q", text1.Word)
	}
	if text2.Word != "There" {
		t.Errorf("expected second line's word to be 'There', got %q", text2.Word)
	}
	if !(line2.Y > line1.Y) {
		t.Errorf("expected second line's y (%v) > first line's y (%v)", line2.Y, line1.Y)
	}
}

// TestInvariant_HeightEqualsChildContributions checks spec §8's block-mode
// height invariant.
func TestInvariant_HeightEqualsChildContributions(t *testing.T) {
	doc, err := htmlparse.Parse(`<div><p>one</p><p>two</p></div>`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	e := newTestEngine(t, "p { margin-top: 4px; margin-bottom: 4px; } div { display: block; } p { display: block; }")
	e.InitialLayout(doc)

	div := e.Tree.Get(e.Tree.Get(e.Tree.Get(e.Tree.Root()).Children[0]).Children[0])
	var contributions float64
	for _, childID := range div.Children {
		c := e.Tree.Get(childID)
		contributions += c.Margin.Top + c.H + c.Margin.Bottom
	}
	if div.H != contributions {
		t.Errorf("div.H = %v, want sum of child contributions %v", div.H, contributions)
	}
}

// TestInvariant_LineHeightFormula checks spec §8's Line height invariant.
func TestInvariant_LineHeightFormula(t *testing.T) {
	doc, _ := htmlparse.Parse(`<p>hello world</p>`)
	e := newTestEngine(t, "")
	e.InitialLayout(doc)

	p := e.Tree.Get(e.Tree.Get(e.Tree.Get(e.Tree.Root()).Children[0]).Children[0])
	line := e.Tree.Get(p.Children[0])
	want := 1.25 * (line.MaxAscent + line.MaxDescent)
	if line.H != want {
		t.Errorf("line.H = %v, want %v", line.H, want)
	}
}

func TestReflow_DetachedTargetIgnored(t *testing.T) {
	doc, _ := htmlparse.Parse(`<div>hi</div>`)
	e := newTestEngine(t, "")
	e.InitialLayout(doc)

	detached := domtree.NewElement("span")
	if e.Reflow(detached, doc) {
		t.Error("expected Reflow on a detached node to return false (DetachedLayoutTarget, no-op)")
	}
}

func TestReflow_RecomputesAncestorHeights(t *testing.T) {
	doc, _ := htmlparse.Parse(`<div><p id="target">short</p></div>`)
	e := newTestEngine(t, "div { display: block; } p { display: block; }")
	e.InitialLayout(doc)

	target := domtree.ElementByID(doc.Root, "target")
	if target == nil {
		t.Fatal("test setup: target element not found")
	}
	target.AppendText(" and now quite a bit longer than before")

	ok := e.Reflow(target, doc)
	if !ok {
		t.Fatal("expected Reflow to succeed on an attached element")
	}

	docBox := e.Tree.Get(e.Tree.Root())
	if docBox.H <= 0 {
		t.Error("expected Document height to remain positive after reflow")
	}
}

func TestMandatoryRule_SizeNeverUsesCoordinatesBeforePosition(t *testing.T) {
	doc, _ := htmlparse.Parse(`<div>a</div>`)
	e := newTestEngine(t, "")
	e.ResolveStyles(doc.Root, nil)
	e.Tree = NewTree()
	docBoxID := e.Tree.Alloc(Box{Kind: KindDocument, Node: doc.Root, Parent: NilBoxID, Previous: NilBoxID})
	e.sizeDocument(docBoxID)

	// Before position() runs, every box's X/Y must still be the zero
	// value — size() must never have written to them.
	for _, b := range e.Tree.Boxes {
		if b.X != 0 || b.Y != 0 {
			t.Fatalf("size() must not assign X/Y; found box %v with X=%v Y=%v", b.Kind, b.X, b.Y)
		}
	}
}
