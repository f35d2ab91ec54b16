package hittest

import "kestrel/internal/layout"

// Rect is an axis-aligned rectangle in chrome (viewport) coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ChromeBounds is the hit-testable geometry of the browser chrome (spec
// §3 Chrome state: "derived bounds of: plus button, each tab tab, back
// button, address bar, chrome bottom-y"), handed in by internal/browser
// rather than owned here — hittest only needs the rectangles, not the
// chrome's rendering state.
type ChromeBounds struct {
	Height     float64
	Plus       Rect
	Tabs       []Rect
	Back       Rect
	AddressBar Rect
}

// ChromeHitKind discriminates which chrome control a point landed on.
type ChromeHitKind int

const (
	ChromeHitNone ChromeHitKind = iota
	ChromeHitPlus
	ChromeHitTab
	ChromeHitBack
	ChromeHitAddressBar
)

// ChromeHit is the outcome of hit-testing the chrome.
type ChromeHit struct {
	Kind     ChromeHitKind
	TabIndex int // valid when Kind == ChromeHitTab
}

// HitTestChrome tests (x, y) against bounds. Checked in a fixed priority
// order since chrome regions are assumed non-overlapping in practice.
func HitTestChrome(bounds ChromeBounds, x, y float64) ChromeHit {
	if bounds.Plus.contains(x, y) {
		return ChromeHit{Kind: ChromeHitPlus}
	}
	for i, tab := range bounds.Tabs {
		if tab.contains(x, y) {
			return ChromeHit{Kind: ChromeHitTab, TabIndex: i}
		}
	}
	if bounds.Back.contains(x, y) {
		return ChromeHit{Kind: ChromeHitBack}
	}
	if bounds.AddressBar.contains(x, y) {
		return ChromeHit{Kind: ChromeHitAddressBar}
	}
	return ChromeHit{Kind: ChromeHitNone}
}

// Result is the outcome of Dispatch: either a chrome hit or a content
// Action, never both.
type Result struct {
	IsChrome bool
	Chrome   ChromeHit
	Action   Action
}

// Dispatch implements spec §4.8's top-level algorithm: a click at
// viewport-relative (x, y) goes to chrome if y < chrome_height, otherwise
// it is translated to page coordinates (x, y + scrollY - chrome_height)
// and hit-tested against the content layout tree.
func Dispatch(bounds ChromeBounds, tree *layout.Tree, scrollY, x, y float64) Result {
	if y < bounds.Height {
		return Result{IsChrome: true, Chrome: HitTestChrome(bounds, x, y)}
	}
	pageX := x
	pageY := y + scrollY - bounds.Height
	return Result{IsChrome: false, Action: HitTestContent(tree, pageX, pageY)}
}
