// Package raster implements the Rasterizer adapter (spec §6): a
// github.com/fogleman/gg-backed canvas that executes an internal/paint
// display list. Grounded on the teacher's pkg/render/render.go gg usage
// (SetRGBA/DrawRectangle/Fill/Stroke/Push/Pop/Clip), restructured to
// execute a pre-built command tree rather than walk the layout tree
// itself — paint and raster are separate stages here (spec §4.12's
// commit boundary sits between them).
package raster

import (
	"image"

	"github.com/fogleman/gg"

	"kestrel/internal/fontcache"
	"kestrel/internal/paint"
	"kestrel/internal/style"
)

// Canvas wraps one gg.Context plus the font cache text commands need to
// load a face before drawing glyphs.
type Canvas struct {
	ctx   *gg.Context
	fonts *fontcache.Cache
}

// NewCanvas allocates a width×height canvas.
func NewCanvas(width, height int, fonts *fontcache.Cache) *Canvas {
	return &Canvas{ctx: gg.NewContext(width, height), fonts: fonts}
}

// Context exposes the underlying gg.Context, e.g. for SavePNG in tests or
// the compositor's blit step.
func (c *Canvas) Context() *gg.Context { return c.ctx }

func (c *Canvas) Width() int  { return c.ctx.Width() }
func (c *Canvas) Height() int { return c.ctx.Height() }

// Clear fills the whole canvas with bg, discarding prior content — the
// Rasterizer contract's implicit "raster: clear surface, execute each
// display-list command" step (spec §4.9).
func (c *Canvas) Clear(bg style.Color) {
	c.ctx.SetRGBA(float64(bg.R)/255, float64(bg.G)/255, float64(bg.B)/255, 1)
	c.ctx.Clear()
}

// Execute runs a display list against the canvas.
func (c *Canvas) Execute(cmds []paint.Command) {
	for _, cmd := range cmds {
		c.executeOne(cmd)
	}
}

func (c *Canvas) executeOne(cmd paint.Command) {
	switch cmd.Kind {
	case paint.DrawRect:
		c.drawRect(cmd)
	case paint.DrawRRect:
		c.drawRRect(cmd)
	case paint.DrawText:
		c.drawText(cmd)
	case paint.DrawLine:
		c.drawLine(cmd)
	case paint.DrawOutline:
		c.drawOutline(cmd)
	case paint.ClipRRect:
		c.clipRRect(cmd)
	case paint.SaveLayer:
		c.saveLayer(cmd)
	}
}

func setColor(ctx *gg.Context, col style.Color) {
	ctx.SetRGBA(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255, 1)
}

func (c *Canvas) drawRect(cmd paint.Command) {
	setColor(c.ctx, cmd.Color)
	c.ctx.DrawRectangle(cmd.X, cmd.Y, cmd.W, cmd.H)
	c.ctx.Fill()
}

func (c *Canvas) drawRRect(cmd paint.Command) {
	setColor(c.ctx, cmd.Color)
	c.ctx.DrawRoundedRectangle(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Radius)
	c.ctx.Fill()
}

// drawText draws cmd.Text with its top-left at (cmd.X, cmd.Y) — the
// Rasterizer contract's "y is top of text, not baseline; implementation
// offsets by ascent" (spec §6).
func (c *Canvas) drawText(cmd paint.Command) {
	_ = c.fonts.LoadFace(c.ctx, cmd.FontSize, cmd.FontWeight, cmd.FontStyle)
	setColor(c.ctx, cmd.Color)
	ascent := c.fonts.Ascent(cmd.FontSize, cmd.FontWeight, cmd.FontStyle)
	c.ctx.DrawString(cmd.Text, cmd.X, cmd.Y+ascent)
}

func (c *Canvas) drawLine(cmd paint.Command) {
	setColor(c.ctx, cmd.Color)
	c.ctx.SetLineWidth(cmd.Thickness)
	c.ctx.DrawLine(cmd.X, cmd.Y, cmd.X2, cmd.Y2)
	c.ctx.Stroke()
}

func (c *Canvas) drawOutline(cmd paint.Command) {
	setColor(c.ctx, cmd.Color)
	c.ctx.SetLineWidth(cmd.Thickness)
	c.ctx.DrawRectangle(cmd.X, cmd.Y, cmd.W, cmd.H)
	c.ctx.Stroke()
}

// clipRRect pushes the graphics state, intersects the clip region with
// cmd's rounded (or, at radius 0, plain) rectangle, executes the wrapped
// children, then restores — spec §4.7: "ClipRRect uses a native canvas
// clip ... when r > 0, a plain rect clip when r == 0."
func (c *Canvas) clipRRect(cmd paint.Command) {
	c.ctx.Push()
	if cmd.Radius > 0 {
		c.ctx.DrawRoundedRectangle(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Radius)
	} else {
		c.ctx.DrawRectangle(cmd.X, cmd.Y, cmd.W, cmd.H)
	}
	c.ctx.Clip()
	c.Execute(cmd.Children)
	c.ctx.Pop()
}

// saveLayer executes cmd's children onto a fresh offscreen canvas the
// same size as this one, then composites that layer back with cmd's
// blend mode and alpha (spec §4.7's isolation container). gg has no
// blend-mode API, so the composite is done by hand over the two
// underlying *image.RGBA buffers (see blend.go).
func (c *Canvas) saveLayer(cmd paint.Command) {
	layer := NewCanvas(c.Width(), c.Height(), c.fonts)
	layer.Execute(cmd.Children)

	dst, ok1 := c.ctx.Image().(*image.RGBA)
	src, ok2 := layer.ctx.Image().(*image.RGBA)
	if !ok1 || !ok2 {
		return
	}
	composite(dst, src, cmd.Blend, cmd.Alpha)
}
