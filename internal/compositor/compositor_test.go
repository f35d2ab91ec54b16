package compositor

import (
	"testing"

	"github.com/fogleman/gg"

	"kestrel/internal/fontcache"
	"kestrel/internal/paint"
	"kestrel/internal/style"
)

func newTestCompositor() *Compositor {
	fonts := fontcache.New("/nonexistent/regular.ttf", "", "", "")
	return New(200, 150, 40, fonts)
}

func TestNew_SurfacesSizedToChromeSplit(t *testing.T) {
	c := newTestCompositor()
	if c.chrome.Width() != 200 || c.chrome.Height() != 40 {
		t.Errorf("chrome surface = %dx%d, want 200x40", c.chrome.Width(), c.chrome.Height())
	}
	if c.tab.Width() != 200 || c.tab.Height() != 110 {
		t.Errorf("tab surface = %dx%d, want 200x110", c.tab.Width(), c.tab.Height())
	}
}

func TestEnsureTabHeight_NoReallocWhenDocumentFits(t *testing.T) {
	c := newTestCompositor()
	before := c.tab
	c.EnsureTabHeight(50) // smaller than the viewport's 110
	if c.tab != before {
		t.Errorf("expected no reallocation when document height fits in the viewport")
	}
}

func TestEnsureTabHeight_ReallocatesWhenDocumentGrows(t *testing.T) {
	c := newTestCompositor()
	before := c.tab
	c.EnsureTabHeight(500)
	if c.tab == before {
		t.Fatalf("expected reallocation when document height exceeds current surface")
	}
	if c.tab.Height() != 500 {
		t.Errorf("tab surface height = %d, want 500", c.tab.Height())
	}
}

func TestRasterTab_ExecutesDisplayList(t *testing.T) {
	c := newTestCompositor()
	c.RasterTab([]paint.Command{
		{Kind: paint.DrawRect, X: 0, Y: 0, W: 200, H: 110, Color: style.Color{G: 255}},
	}, style.Color{R: 255, G: 255, B: 255})

	img := c.tab.Context().Image()
	_, g, _, _ := img.At(10, 10).RGBA()
	if g>>8 != 255 {
		t.Errorf("expected the rastered green fill, got g=%d", g>>8)
	}
}

func TestDraw_DoesNotPanicAndProducesWindowSizedImage(t *testing.T) {
	c := newTestCompositor()
	c.RasterTab(nil, style.Color{R: 255, G: 255, B: 255})
	c.RasterChrome(nil, style.Color{B: 255})

	dst := gg.NewContext(c.width, c.height)
	c.Draw(dst, 0)

	img := dst.Image()
	bounds := img.Bounds()
	if bounds.Dx() != c.width || bounds.Dy() != c.height {
		t.Errorf("dst image = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), c.width, c.height)
	}
}
