package browser

import (
	"fmt"

	"kestrel/internal/fontcache"
	"kestrel/internal/hittest"
	"kestrel/internal/paint"
	"kestrel/internal/style"
)

// Chrome is the browser-thread-resident UI state (spec §3's Chrome
// state): font/padding plus the derived bounds of every chrome control,
// recomputed whenever the font, padding, or tab count changes. Owned
// entirely by the browser thread — the main thread never reads it (spec
// §5: "the browser thread never reads a tab's layout tree", and
// symmetrically chrome is never read from the main thread).
type Chrome struct {
	fonts *fontcache.Cache

	padding  float64
	fontSize float64
	width    float64

	height float64

	plusBounds    hittest.Rect
	tabBounds     []hittest.Rect
	backBounds    hittest.Rect
	addressBounds hittest.Rect
}

const chromeTabWidth = 160

// NewChrome constructs chrome state for a window of the given width,
// sized from a fixed font/padding pair. Bounds are computed once here and
// recomputed by Layout on every resize or tab-count change.
func NewChrome(fonts *fontcache.Cache, width float64) *Chrome {
	c := &Chrome{
		fonts:    fonts,
		padding:  5,
		fontSize: 16,
		width:    width,
	}
	c.Layout(1)
	return c
}

// Layout recomputes every chrome bound for tabCount open tabs, and the
// window's current width. Grounded on the teacher's chrome bounds recomputed
// whenever font/padding change or the tab strip grows.
func (c *Chrome) Layout(tabCount int) {
	lineHeight := c.fonts.Ascent(c.fontSize, style.FontWeightNormal, style.FontStyleNormal) +
		c.fonts.Descent(c.fontSize, style.FontWeightNormal, style.FontStyleNormal)

	tabStripH := lineHeight + 2*c.padding
	c.height = tabStripH*2 + c.padding

	c.plusBounds = hittest.Rect{X: c.padding, Y: c.padding, W: tabStripH - c.padding, H: tabStripH - c.padding}

	c.tabBounds = make([]hittest.Rect, tabCount)
	x := c.plusBounds.X + c.plusBounds.W + c.padding
	for i := range c.tabBounds {
		c.tabBounds[i] = hittest.Rect{X: x, Y: c.padding, W: chromeTabWidth, H: tabStripH - c.padding}
		x += chromeTabWidth + c.padding
	}

	backH := tabStripH - c.padding
	c.backBounds = hittest.Rect{X: c.padding, Y: tabStripH + c.padding, W: backH * 1.5, H: backH}
	c.addressBounds = hittest.Rect{
		X: c.backBounds.X + c.backBounds.W + c.padding,
		Y: c.backBounds.Y,
		W: c.width - c.backBounds.X - c.backBounds.W - 2*c.padding,
		H: backH,
	}
}

// Resize updates the chrome's known window width and relays out.
func (c *Chrome) Resize(width float64, tabCount int) {
	c.width = width
	c.Layout(tabCount)
}

// Bounds returns the hittest-ready geometry for HitTestChrome.
func (c *Chrome) Bounds() hittest.ChromeBounds {
	return hittest.ChromeBounds{
		Height:     c.height,
		Plus:       c.plusBounds,
		Tabs:       append([]hittest.Rect(nil), c.tabBounds...),
		Back:       c.backBounds,
		AddressBar: c.addressBounds,
	}
}

// Height returns the chrome's total pixel height, for compositor sizing
// and hit-test translation.
func (c *Chrome) Height() float64 { return c.height }

// Paint produces the chrome's own display list: tab strip, back button,
// address bar. activeTab indexes into titles; addressText is the text
// currently shown in the address bar (either the committed URL or
// in-progress editing text, per focus state).
func (c *Chrome) Paint(titles []string, activeTab int, addressText string, addressFocused bool) []paint.Command {
	var cmds []paint.Command

	cmds = append(cmds, paint.Command{Kind: paint.DrawRect, X: 0, Y: 0, W: c.width, H: c.height, Color: style.Color{R: 230, G: 230, B: 230}})

	cmds = append(cmds, c.drawButton(c.plusBounds, "+"))

	for i, bounds := range c.tabBounds {
		bg := style.Color{R: 200, G: 200, B: 200}
		if i == activeTab {
			bg = style.Color{R: 255, G: 255, B: 255}
		}
		cmds = append(cmds, paint.Command{Kind: paint.DrawRect, X: bounds.X, Y: bounds.Y, W: bounds.W, H: bounds.H, Color: bg})
		cmds = append(cmds, paint.Command{Kind: paint.DrawOutline, X: bounds.X, Y: bounds.Y, W: bounds.W, H: bounds.H, Thickness: 1, Color: style.Color{}})
		title := "Tab"
		if i < len(titles) && titles[i] != "" {
			title = titles[i]
		}
		cmds = append(cmds, paint.Command{
			Kind: paint.DrawText, X: bounds.X + c.padding, Y: bounds.Y + c.padding/2,
			Text: truncate(title, 18), FontSize: c.fontSize, Color: style.Color{},
		})
	}

	cmds = append(cmds, c.drawButton(c.backBounds, "<"))

	barBG := style.Color{R: 255, G: 255, B: 255}
	cmds = append(cmds, paint.Command{Kind: paint.DrawRect, X: c.addressBounds.X, Y: c.addressBounds.Y, W: c.addressBounds.W, H: c.addressBounds.H, Color: barBG})
	cmds = append(cmds, paint.Command{Kind: paint.DrawOutline, X: c.addressBounds.X, Y: c.addressBounds.Y, W: c.addressBounds.W, H: c.addressBounds.H, Thickness: 1, Color: style.Color{}})
	cmds = append(cmds, paint.Command{
		Kind: paint.DrawText, X: c.addressBounds.X + c.padding, Y: c.addressBounds.Y + c.padding/2,
		Text: addressText, FontSize: c.fontSize, Color: style.Color{},
	})
	if addressFocused {
		caretX := c.addressBounds.X + c.padding + float64(len(addressText))*c.fontSize*0.6
		cmds = append(cmds, paint.Command{
			Kind: paint.DrawLine, X: caretX, Y: c.addressBounds.Y + 2, X2: caretX, Y2: c.addressBounds.Y + c.addressBounds.H - 2,
			Thickness: 1, Color: style.Color{},
		})
	}

	return cmds
}

func (c *Chrome) drawButton(b hittest.Rect, label string) paint.Command {
	return paint.Command{
		Kind: paint.SaveLayer, X: b.X, Y: b.Y, W: b.W, H: b.H, Alpha: 1, Blend: style.BlendNormal,
		Children: []paint.Command{
			{Kind: paint.DrawOutline, X: b.X, Y: b.Y, W: b.W, H: b.H, Thickness: 1, Color: style.Color{}},
			{Kind: paint.DrawText, X: b.X + b.W/2 - 4, Y: b.Y + 2, Text: label, FontSize: c.fontSize, Color: style.Color{}},
		},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return fmt.Sprintf("%s…", s[:n-1])
}
