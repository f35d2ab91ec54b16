// Package fontcache implements the font cache (spec §4.2): a process-wide,
// mutex-guarded cache of loaded font faces keyed by (size, weight, style),
// used by internal/layout to measure text during the size pass.
//
// The teacher's pkg/text/measure.go allocates a throwaway gg.Context and
// reloads the font face on every call to MeasureText — correct but
// wasteful under the spec's incremental reflow model, where the same
// (size, weight, style) combination is measured repeatedly across many
// nodes and many reflows. This package keeps one gg.Context per key alive
// for the process lifetime and memoizes the width of a single space,
// which word-wrap line-breaking consults on every word boundary.
package fontcache

import (
	"sync"

	"github.com/fogleman/gg"

	"kestrel/internal/style"
)

// Key identifies one font face variant.
type Key struct {
	Size   float64
	Weight style.FontWeight
	Style  style.FontStyle
}

// Cache holds loaded gg font contexts keyed by Key.
type Cache struct {
	mu sync.Mutex

	regularPath    string
	boldPath       string
	italicPath     string
	boldItalicPath string

	contexts    map[Key]*gg.Context
	spaceWidths map[Key]float64
}

// New creates a Cache over the four font file variants. An empty
// bold-italic path falls back to bold, then italic, then regularPath; an
// empty bold or italic path falls back to regularPath.
func New(regularPath, boldPath, italicPath, boldItalicPath string) *Cache {
	return &Cache{
		regularPath:    regularPath,
		boldPath:       boldPath,
		italicPath:     italicPath,
		boldItalicPath: boldItalicPath,
		contexts:       make(map[Key]*gg.Context),
		spaceWidths:    make(map[Key]float64),
	}
}

func (c *Cache) pathFor(weight style.FontWeight, fs style.FontStyle) string {
	bold := weight == style.FontWeightBold
	italic := fs == style.FontStyleItalic
	switch {
	case bold && italic && c.boldItalicPath != "":
		return c.boldItalicPath
	case bold && c.boldPath != "":
		return c.boldPath
	case italic && c.italicPath != "":
		return c.italicPath
	default:
		return c.regularPath
	}
}

// contextFor returns the cached gg.Context for key, loading and caching
// the font face on first use. Callers must hold c.mu.
func (c *Cache) contextFor(key Key) (*gg.Context, bool) {
	if dc, ok := c.contexts[key]; ok {
		return dc, true
	}
	dc := gg.NewContext(1, 1)
	path := c.pathFor(key.Weight, key.Style)
	if err := dc.LoadFontFace(path, key.Size); err != nil {
		return nil, false
	}
	c.contexts[key] = dc
	return dc, true
}

// Measure returns the pixel width and height of text set in the font
// variant identified by (size, weight, style). Falls back to a rough
// monospace-ish estimate if the font face cannot be loaded — layout must
// still produce a usable box even when a font asset is missing.
func (c *Cache) Measure(text string, size float64, weight style.FontWeight, fs style.FontStyle) (width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{Size: size, Weight: weight, Style: fs}
	dc, ok := c.contextFor(key)
	if !ok {
		return float64(len(text)) * size * 0.6, size * 1.2
	}
	return dc.MeasureString(text)
}

// Ascent returns the font's ascent in pixels above the baseline, falling
// back to the CSS2.1-typical 0.8 * font-size split when the face cannot
// be loaded.
func (c *Cache) Ascent(size float64, weight style.FontWeight, fs style.FontStyle) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	dc, ok := c.contextFor(Key{Size: size, Weight: weight, Style: fs})
	if !ok {
		return size * 0.8
	}
	return dc.FontAscent()
}

// Descent returns the font's descent in pixels below the baseline.
func (c *Cache) Descent(size float64, weight style.FontWeight, fs style.FontStyle) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	dc, ok := c.contextFor(Key{Size: size, Weight: weight, Style: fs})
	if !ok {
		return size * 0.2
	}
	return dc.FontDescent()
}

// LoadFace loads the font variant identified by (size, weight, style) onto
// ctx, for callers (internal/raster) that need to actually draw glyphs
// rather than just measure them. Returns the gg load error unchanged; the
// caller falls back to whatever ctx's default face already is.
func (c *Cache) LoadFace(ctx *gg.Context, size float64, weight style.FontWeight, fs style.FontStyle) error {
	c.mu.Lock()
	path := c.pathFor(weight, fs)
	c.mu.Unlock()
	return ctx.LoadFontFace(path, size)
}

// SpaceWidth returns the width of a single space glyph for the given font
// variant, memoized since word-wrap consults it once per word boundary.
func (c *Cache) SpaceWidth(size float64, weight style.FontWeight, fs style.FontStyle) float64 {
	c.mu.Lock()
	key := Key{Size: size, Weight: weight, Style: fs}
	if w, ok := c.spaceWidths[key]; ok {
		c.mu.Unlock()
		return w
	}
	c.mu.Unlock()

	w, _ := c.Measure(" ", size, weight, fs)

	c.mu.Lock()
	c.spaceWidths[key] = w
	c.mu.Unlock()
	return w
}

// BreakIntoLines wraps text into lines no wider than maxWidth, grounded on
// the teacher's BreakTextIntoLines word-greedy algorithm.
func (c *Cache) BreakIntoLines(text string, size float64, weight style.FontWeight, fs style.FontStyle, maxWidth float64) []string {
	if w, _ := c.Measure(text, size, weight, fs); w <= maxWidth {
		return []string{text}
	}
	words := splitIntoWords(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		w, _ := c.Measure(test, size, weight, fs)
		if w <= maxWidth || current == "" {
			current = test
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

func splitIntoWords(text string) []string {
	var words []string
	current := ""
	for _, ch := range text {
		if ch == ' ' || ch == '\t' || ch == '\n' {
			if current != "" {
				words = append(words, current)
				current = ""
			}
		} else {
			current += string(ch)
		}
	}
	if current != "" {
		words = append(words, current)
	}
	return words
}
