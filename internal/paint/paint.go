package paint

import (
	"kestrel/internal/domtree"
	"kestrel/internal/layout"
	"kestrel/internal/style"
)

// Styles is the per-node resolved style lookup paint consults — the same
// map internal/layout's Engine maintains (spec §4.1's output).
type Styles map[*domtree.Node]*style.Style

func (s Styles) lookup(node *domtree.Node) *style.Style {
	if node == nil {
		return nil
	}
	return s[node]
}

// Paint walks the layout tree rooted at root and returns its display list
// (spec §4.6 step 7, §4.7). Each box paints its own background/border
// first, then its children, then the result is wrapped in the
// opacity/blend/clip containers its style calls for.
func Paint(tree *layout.Tree, styles Styles, root layout.BoxID) []Command {
	return paintBox(tree, styles, root)
}

func paintBox(tree *layout.Tree, styles Styles, id layout.BoxID) []Command {
	b := tree.Get(id)

	var content []Command
	content = append(content, ownCommands(b, styles)...)
	for _, childID := range b.Children {
		content = append(content, paintBox(tree, styles, childID)...)
	}

	return wrapVisualEffects(b, styles, content)
}

func ownCommands(b *layout.Box, styles Styles) []Command {
	switch b.Kind {
	case layout.KindDocument:
		return nil
	case layout.KindBlock:
		return backgroundAndBorder(b, styles.lookup(b.Node))
	case layout.KindText:
		return drawText(b, styles)
	case layout.KindInput:
		return drawInput(b, styles)
	default: // Line: a pure layout container, no paint of its own.
		return nil
	}
}

// backgroundAndBorder emits a background fill (DrawRect, or DrawRRect when
// border-radius > 0) followed by a uniform DrawOutline for any non-zero
// border — the Rasterizer contract (spec §6) only offers one outline
// color/thickness per call, which is a simpler model than the teacher's
// four independently-colored mitered border sides, so a uniform border
// width/color is all this contract can express.
func backgroundAndBorder(b *layout.Box, st *style.Style) []Command {
	if st == nil {
		return nil
	}
	var cmds []Command

	if bg, ok := st.GetBackgroundColor(); ok {
		radius := st.GetBorderRadius()
		if radius > 0 {
			cmds = append(cmds, Command{Kind: DrawRRect, X: b.X, Y: b.Y, W: b.W, H: b.H, Radius: radius, Color: bg})
		} else {
			cmds = append(cmds, Command{Kind: DrawRect, X: b.X, Y: b.Y, W: b.W, H: b.H, Color: bg})
		}
	}

	bw := b.Border
	if bw.Top > 0 || bw.Right > 0 || bw.Bottom > 0 || bw.Left > 0 {
		thickness := bw.Top
		if thickness == 0 {
			thickness = bw.Left
		}
		cmds = append(cmds, Command{
			Kind: DrawOutline, X: b.X, Y: b.Y, W: b.W, H: b.H,
			Thickness: thickness, Color: st.GetBorderColor(),
		})
	}

	return cmds
}

// drawText emits the Text box's own DrawText command. Color and font come
// from the text run's parent element style, never a default (spec §3
// invariant (f): "Text boxes carry the font resolved from their node's
// style, never a default").
func drawText(b *layout.Box, styles Styles) []Command {
	if b.Word == "" {
		return nil
	}
	var parentNode *domtree.Node
	if b.Node != nil {
		parentNode = b.Node.Parent
	}
	color := style.Color{}
	if st := styles.lookup(parentNode); st != nil {
		color = st.GetColor()
	}
	return []Command{{
		Kind: DrawText, X: b.X, Y: b.Y, Text: b.Word,
		FontSize: b.FontSize, FontWeight: styleWeight(b.FontWeight), FontStyle: styleStyle(b.FontStyle),
		Color: color,
	}}
}

// drawInput renders an Input box as a plain white field with a 1px
// outline — spec leaves input chrome unspecified beyond "fixed intrinsic
// width", so this mirrors a plain HTML text input's default appearance.
func drawInput(b *layout.Box, styles Styles) []Command {
	return []Command{
		{Kind: DrawRect, X: b.X, Y: b.Y, W: b.W, H: b.H, Color: style.Color{R: 255, G: 255, B: 255}},
		{Kind: DrawOutline, X: b.X, Y: b.Y, W: b.W, H: b.H, Thickness: 1, Color: style.Color{R: 0, G: 0, B: 0}},
	}
}

// wrapVisualEffects implements spec §4.7's wrapping protocol, with
// overflow "hidden" treated as an alias of "clip":
// for an element with style (opacity o, mix-blend-mode m, overflow v,
// border-radius r):
//   needs_clip             = ((v == "clip" || v == "hidden") && r > 0)
//   needs_blend_isolation  = (m != source_over) || needs_clip
//   needs_opacity          = (o < 1)
//   1. SaveLayer(blend=m, alpha=o) iff needs_blend_isolation || needs_opacity
//   2. inner content, wrapped by ClipRRect(bounds, r) iff needs_clip
// Commands not needed are elided here (never emitted), not no-oped at
// execute time, per spec §4.7's "minimize surface allocations" note.
func wrapVisualEffects(b *layout.Box, styles Styles, content []Command) []Command {
	st := styles.lookup(b.Node)
	if st == nil || b.Kind == layout.KindLine || b.Kind == layout.KindText {
		return content
	}

	opacity := st.GetOpacity()
	blend := st.GetMixBlendMode()
	radius := st.GetBorderRadius()

	needsClip := st.ClipsOverflow() && radius > 0
	needsBlendIsolation := blend != style.BlendNormal || needsClip
	needsOpacity := opacity < 1

	inner := content
	if needsClip {
		inner = []Command{{Kind: ClipRRect, X: b.X, Y: b.Y, W: b.W, H: b.H, Radius: radius, Children: inner}}
	}
	if needsBlendIsolation || needsOpacity {
		return []Command{{Kind: SaveLayer, X: b.X, Y: b.Y, W: b.W, H: b.H, Blend: blend, Alpha: opacity, Children: inner}}
	}
	return inner
}

func styleWeight(w layout.FontWeight) style.FontWeight {
	if w == layout.FontWeightBold {
		return style.FontWeightBold
	}
	return style.FontWeightNormal
}

func styleStyle(fs layout.FontStyle) style.FontStyle {
	if fs == layout.FontStyleItalic {
		return style.FontStyleItalic
	}
	return style.FontStyleNormal
}
