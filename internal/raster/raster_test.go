package raster

import (
	"testing"

	"kestrel/internal/fontcache"
	"kestrel/internal/paint"
	"kestrel/internal/style"
)

func newTestCanvas(w, h int) *Canvas {
	fonts := fontcache.New("/nonexistent/regular.ttf", "", "", "")
	return NewCanvas(w, h, fonts)
}

func TestExecute_DrawRect(t *testing.T) {
	c := newTestCanvas(10, 10)
	c.Clear(style.Color{R: 255, G: 255, B: 255})
	c.Execute([]paint.Command{{Kind: paint.DrawRect, X: 0, Y: 0, W: 10, H: 10, Color: style.Color{R: 255}}})

	img := c.Context().Image()
	r, g, b, _ := img.At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel at center = (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestSaveLayer_MultiplyDarkensDestination(t *testing.T) {
	c := newTestCanvas(4, 4)
	c.Clear(style.Color{R: 255, G: 255, B: 255})

	c.Execute([]paint.Command{
		{
			Kind:  paint.SaveLayer,
			Blend: style.BlendMultiply,
			Alpha: 1,
			Children: []paint.Command{
				{Kind: paint.DrawRect, X: 0, Y: 0, W: 4, H: 4, Color: style.Color{R: 128, G: 128, B: 128}},
			},
		},
	})

	img := c.Context().Image()
	r, _, _, _ := img.At(1, 1).RGBA()
	got := r >> 8
	// white (255) multiplied by mid-gray (128) should darken toward 128,
	// not stay white.
	if got >= 255 {
		t.Errorf("expected multiply blend to darken destination, got R=%d", got)
	}
}

func TestSaveLayer_AlphaZeroLeavesDestinationUnchanged(t *testing.T) {
	c := newTestCanvas(4, 4)
	c.Clear(style.Color{R: 10, G: 20, B: 30})

	c.Execute([]paint.Command{
		{
			Kind:  paint.SaveLayer,
			Blend: style.BlendNormal,
			Alpha: 0,
			Children: []paint.Command{
				{Kind: paint.DrawRect, X: 0, Y: 0, W: 4, H: 4, Color: style.Color{R: 255, G: 0, B: 0}},
			},
		},
	})

	img := c.Context().Image()
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel changed under zero alpha: got (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}

func TestClipRRect_PlainRectAtZeroRadius(t *testing.T) {
	c := newTestCanvas(10, 10)
	c.Clear(style.Color{R: 255, G: 255, B: 255})

	c.Execute([]paint.Command{
		{
			Kind:   paint.ClipRRect,
			X:      2, Y: 2, W: 4, H: 4, Radius: 0,
			Children: []paint.Command{
				{Kind: paint.DrawRect, X: 0, Y: 0, W: 10, H: 10, Color: style.Color{G: 255}},
			},
		},
	})

	img := c.Context().Image()
	// Inside the clip: painted.
	_, g, _, _ := img.At(3, 3).RGBA()
	if g>>8 != 255 {
		t.Errorf("expected green inside clip region, got g=%d", g>>8)
	}
	// Outside the clip: untouched white.
	r, g2, b, _ := img.At(8, 8).RGBA()
	if r>>8 != 255 || g2>>8 != 255 || b>>8 != 255 {
		t.Errorf("expected white outside clip region, got (%d,%d,%d)", r>>8, g2>>8, b>>8)
	}
}
