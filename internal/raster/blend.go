package raster

import (
	"image"
	"math"

	"kestrel/internal/style"
)

// composite blends src onto dst in place using mode, scaling the result by
// alpha (the SaveLayer's own opacity) on top of src's own per-pixel alpha.
// Hand-written since gg exposes no blend-mode compositing (DESIGN.md).
func composite(dst, src *image.RGBA, mode style.MixBlendMode, alpha float64) {
	bounds := dst.Bounds().Intersect(src.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			si := src.PixOffset(x, y)
			sa := src.Pix[si+3]
			if sa == 0 {
				continue
			}
			di := dst.PixOffset(x, y)

			blendedR := blendChannel(mode, src.Pix[si+0], dst.Pix[di+0])
			blendedG := blendChannel(mode, src.Pix[si+1], dst.Pix[di+1])
			blendedB := blendChannel(mode, src.Pix[si+2], dst.Pix[di+2])

			t := alpha * float64(sa) / 255.0
			dst.Pix[di+0] = lerpByte(dst.Pix[di+0], blendedR, t)
			dst.Pix[di+1] = lerpByte(dst.Pix[di+1], blendedG, t)
			dst.Pix[di+2] = lerpByte(dst.Pix[di+2], blendedB, t)
			dst.Pix[di+3] = maxByte(dst.Pix[di+3], byte(clamp01(t)*255))
		}
	}
}

// blendChannel applies mode's per-channel formula (CSS Compositing and
// Blending Level 1 §3's simple blend modes, restricted to the subset
// style.MixBlendMode exposes).
func blendChannel(mode style.MixBlendMode, srcV, dstV byte) byte {
	s := float64(srcV) / 255
	d := float64(dstV) / 255

	var r float64
	switch mode {
	case style.BlendMultiply:
		r = s * d
	case style.BlendScreen:
		r = 1 - (1-s)*(1-d)
	case style.BlendDarken:
		r = math.Min(s, d)
	case style.BlendLighten:
		r = math.Max(s, d)
	case style.BlendDifference:
		r = math.Abs(s - d)
	default: // normal (source-over): the source color passes through untouched
		r = s
	}
	return byte(clamp01(r) * 255)
}

func lerpByte(a, b byte, t float64) byte {
	return byte(float64(a)*(1-t) + float64(b)*t)
}

func maxByte(a, b byte) byte {
	if a > b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
