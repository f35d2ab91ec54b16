// Package paint walks a laid-out box tree and produces a display list: a
// rooted tree of paint commands (spec §3's Display List, §4.7's wrapping
// protocol). Grounded on the teacher's pkg/render/render.go, restructured
// from "paint directly onto a gg.Context" into "build a command tree, let
// internal/raster execute it later" — the separation the teacher's own
// Renderer doesn't have, needed so the display list can be committed to
// the browser thread as an inert value (spec §4.12).
package paint

import "kestrel/internal/style"

// Kind discriminates the paint command variants of spec §3's Display List
// ("Leaf commands: DrawRect, DrawRRect, DrawText, DrawLine, DrawOutline")
// plus the two container commands (SaveLayer, ClipRRect).
type Kind int

const (
	DrawRect Kind = iota
	DrawRRect
	DrawText
	DrawLine
	DrawOutline
	SaveLayer
	ClipRRect
)

func (k Kind) String() string {
	switch k {
	case DrawRect:
		return "DrawRect"
	case DrawRRect:
		return "DrawRRect"
	case DrawText:
		return "DrawText"
	case DrawLine:
		return "DrawLine"
	case DrawOutline:
		return "DrawOutline"
	case SaveLayer:
		return "SaveLayer"
	case ClipRRect:
		return "ClipRRect"
	}
	return "Unknown"
}

// Command is one node of the display list. Only the fields relevant to
// Kind are meaningful. Geometry for leaf rect commands (DrawRect,
// DrawRRect, DrawOutline) is (X, Y, W, H); DrawLine instead uses
// (X, Y)→(X2, Y2); DrawText's (X, Y) is the top-left of the text per the
// Rasterizer contract (spec §6: "y is top of text, not baseline").
type Command struct {
	Kind Kind

	X, Y, W, H float64
	X2, Y2     float64
	Radius     float64
	Thickness  float64
	Color      style.Color

	Text       string
	FontSize   float64
	FontWeight style.FontWeight
	FontStyle  style.FontStyle

	Blend MixBlend
	Alpha float64

	// Children holds the wrapped content for the two container commands
	// (SaveLayer, ClipRRect). Spec §3 invariant: container commands
	// delimit balanced save/restore on the canvas — internal/raster
	// enforces this by always pairing Push/Pop (or SaveLayer/blit) around
	// Children's execution.
	Children []Command
}

// MixBlend mirrors style.MixBlendMode so internal/paint has no direct
// dependency beyond what it reads off a resolved Style.
type MixBlend = style.MixBlendMode

const (
	BlendNormal     = style.BlendNormal
	BlendMultiply   = style.BlendMultiply
	BlendScreen     = style.BlendScreen
	BlendDarken     = style.BlendDarken
	BlendLighten    = style.BlendLighten
	BlendDifference = style.BlendDifference
)
