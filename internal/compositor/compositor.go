// Package compositor implements the two long-lived draw surfaces (spec
// §4.9): tab_surface (page content) and chrome_surface (browser UI).
// Grounded on the teacher's pkg/render/render.go SetScrollY/Push/Pop/Clip
// usage, split into two independently-sized surfaces composited onto the
// window at draw time rather than one surface drawn directly.
package compositor

import (
	"github.com/fogleman/gg"

	"kestrel/internal/fontcache"
	"kestrel/internal/paint"
	"kestrel/internal/raster"
	"kestrel/internal/style"
)

// Compositor owns the two surfaces and the window dimensions needed to
// compute their blit offsets.
type Compositor struct {
	fonts *fontcache.Cache

	tab    *raster.Canvas // page content, at least the content-area height, grown to fit the document
	chrome *raster.Canvas // browser UI, height == chromeHeight

	width, height int // window dimensions
	chromeHeight  float64
}

// New allocates a compositor for a width×height window with the given
// fixed chrome height. chrome_surface is width×chromeHeight; tab_surface
// starts at the content area below the chrome and is reallocated as the
// document grows (Resize/EnsureTabHeight).
func New(width, height int, chromeHeight float64, fonts *fontcache.Cache) *Compositor {
	c := &Compositor{
		fonts:        fonts,
		width:        width,
		height:       height,
		chromeHeight: chromeHeight,
	}
	c.chrome = raster.NewCanvas(width, int(chromeHeight), fonts)
	c.tab = raster.NewCanvas(width, height-int(chromeHeight), fonts)
	return c
}

// Resize changes the window size, reallocating both surfaces.
func (c *Compositor) Resize(width, height int) {
	c.width, c.height = width, height
	c.chrome = raster.NewCanvas(width, int(c.chromeHeight), c.fonts)
	tabHeight := height - int(c.chromeHeight)
	if tabHeight < c.tab.Height() {
		tabHeight = c.tab.Height()
	}
	c.tab = raster.NewCanvas(width, tabHeight, c.fonts)
}

// EnsureTabHeight reallocates tab_surface only when the document's
// height no longer fits — "reallocated only when document height or
// width changes" (spec §4.9).
func (c *Compositor) EnsureTabHeight(documentHeight int) {
	if documentHeight <= c.tab.Height() && c.width == c.tab.Width() {
		return
	}
	h := documentHeight
	if h < c.height-int(c.chromeHeight) {
		h = c.height - int(c.chromeHeight)
	}
	c.tab = raster.NewCanvas(c.width, h, c.fonts)
}

// RasterTab clears tab_surface and executes the committed display list —
// "raster: clear surface, execute each display-list command with its
// canvas" (spec §4.9).
func (c *Compositor) RasterTab(cmds []paint.Command, bg style.Color) {
	c.tab.Clear(bg)
	c.tab.Execute(cmds)
}

// RasterChrome clears chrome_surface and executes the chrome's own
// display list, "driven from the browser-thread-resident chrome state."
func (c *Compositor) RasterChrome(cmds []paint.Command, bg style.Color) {
	c.chrome.Clear(bg)
	c.chrome.Execute(cmds)
}

// Draw composites both surfaces onto dst following spec §4.9's draw
// order: (a) translate by (0, chrome_height - scroll_y), clip below
// chrome_height, blit tab_surface; (b) clip above chrome_height, blit
// chrome_surface. dst is the platform window's backing context.
func (c *Compositor) Draw(dst *gg.Context, scrollY float64) {
	dst.Push()
	dst.DrawRectangle(0, c.chromeHeight, float64(c.width), float64(c.height)-c.chromeHeight)
	dst.Clip()
	dst.Translate(0, c.chromeHeight-scrollY)
	dst.DrawImage(c.tab.Context().Image(), 0, 0)
	dst.Pop()

	dst.Push()
	dst.DrawRectangle(0, 0, float64(c.width), c.chromeHeight)
	dst.Clip()
	dst.DrawImage(c.chrome.Context().Image(), 0, 0)
	dst.Pop()
}
