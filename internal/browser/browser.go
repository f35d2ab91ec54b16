package browser

import (
	"sync"
	"time"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"kestrel/internal/compositor"
	"kestrel/internal/fontcache"
	"kestrel/internal/hittest"
	"kestrel/internal/netfetch"
	"kestrel/internal/platform"
	"kestrel/internal/scheduler"
	"kestrel/internal/style"
)

// browserFocus discriminates address-bar focus from content focus —
// spec §3's Tab.focus enum's AddressBar arm lives here since address bar
// focus is global to the window, not to any one tab.
type browserFocus int

const (
	focusContent browserFocus = iota
	focusAddressBar
)

// Browser is the browser-thread-owned state of spec §3 and §5: window,
// chrome, tab list, active-tab index, and the mutex guarding the handful
// of fields the input/draw loop reads and writes across calls (scroll,
// active tab, focus, address bar text) — narrower than the tab-owned
// scheduler/commit locks, which guard themselves.
type Browser struct {
	mu sync.Mutex

	win    *platform.Window
	comp   *compositor.Compositor
	chrome *Chrome
	fonts  *fontcache.Cache
	log    *zap.SugaredLogger

	tabs    []*Tab
	active  int
	fetcher netfetch.Fetcher

	focus          browserFocus
	addressBarText string

	// scroll is the authoritative live scroll position for the active
	// tab, per spec §8's discussion of wheel-driven scrolling: updated
	// directly here rather than re-derived from the tab's committed
	// snapshot every draw tick, since a commit's Scroll field is only
	// meaningfully refreshed on a tab-initiated scroll change.
	scroll float64

	width, height int
}

// FontPaths names the four font face variants a Browser loads through
// fontcache; any left empty falls back per fontcache.New's rules.
type FontPaths struct {
	Regular, Bold, Italic, BoldItalic string
}

// New constructs a Browser with one tab open at startURL and opens the
// platform window. fetcher is used for every tab's navigation fetches.
func New(startURL string, width, height int, fetcher netfetch.Fetcher, fonts FontPaths, log *zap.SugaredLogger) *Browser {
	fc := fontcache.New(fonts.Regular, fonts.Bold, fonts.Italic, fonts.BoldItalic)
	b := &Browser{
		fonts:   fc,
		log:     log,
		fetcher: fetcher,
		width:   width,
		height:  height,
	}
	b.chrome = NewChrome(fc, float64(width))
	b.comp = compositor.New(width, height, b.chrome.Height(), fc)

	b.win = platform.New("kestrel", width, height, b.handleEvent)

	b.addTab(startURL)
	return b
}

func (b *Browser) addTab(url string) *Tab {
	b.mu.Lock()
	idx := len(b.tabs)
	tab := NewTab(b.fonts, b.fetcher, b.log, float64(b.width), float64(b.height)-b.chrome.Height(), func() bool {
		return b.isActiveTab(idx)
	})
	b.tabs = append(b.tabs, tab)
	b.chrome.Layout(len(b.tabs))
	b.mu.Unlock()

	tab.Run()
	tab.Navigate(url)
	return tab
}

func (b *Browser) isActiveTab(idx int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active == idx
}

func (b *Browser) activeTab() *Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active < 0 || b.active >= len(b.tabs) {
		return nil
	}
	return b.tabs[b.active]
}

// Run opens the window and blocks, driving the browser-thread loop via a
// background ticker alongside the platform event callback.
func (b *Browser) Run() {
	stop := make(chan struct{})
	go b.loop(stop)
	b.win.Run()
	close(stop)
}

// loop polls every tab's scheduler for a due animation frame or a pending
// raster+draw, per spec §4.11's "browser thread iterates its tabs once
// per tick arming/consuming scheduler flags."
func (b *Browser) loop(stop chan struct{}) {
	ticker := time.NewTicker(scheduler.RefreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			b.tick()
		}
	}
}

func (b *Browser) tick() {
	b.mu.Lock()
	tabs := append([]*Tab(nil), b.tabs...)
	scrollY := b.scroll
	activeIdx := b.active
	b.mu.Unlock()

	for i, tab := range tabs {
		s := 0.0
		if i == activeIdx {
			s = scrollY
		}
		tab := tab
		tab.Scheduler().MaybeScheduleFrame(func() {
			time.AfterFunc(scheduler.RefreshRate, func() {
				tab.RunAnimationFrame(s)
			})
		})
	}

	b.maybeRasterAndDraw()
}

// maybeRasterAndDraw implements spec §4.9/§4.12's draw step: if any
// tab's commit (or a chrome mutation) set needs_raster_and_draw, rebuild
// both surfaces from the active tab's last commit and the chrome's
// current state, then present.
func (b *Browser) maybeRasterAndDraw() {
	active := b.activeTab()
	if active == nil {
		return
	}

	dirty := active.Scheduler().ConsumeNeedsRasterAndDraw()
	if !dirty {
		return
	}

	snap := active.Commit().Read()

	b.mu.Lock()
	titles := make([]string, len(b.tabs))
	for i, t := range b.tabs {
		titles[i] = t.URL
	}
	addrText := snap.URL
	if b.focus == focusAddressBar {
		addrText = b.addressBarText
	}
	activeIdx := b.active
	focused := b.focus == focusAddressBar
	scrollY := b.scroll
	b.mu.Unlock()

	b.comp.EnsureTabHeight(int(snap.DocumentHeight))
	b.comp.RasterTab(snap.DisplayList, style.Color{R: 255, G: 255, B: 255})
	b.comp.RasterChrome(b.chrome.Paint(titles, activeIdx, addrText, focused), style.Color{R: 230, G: 230, B: 230})

	dst := gg.NewContext(b.width, b.height)
	b.comp.Draw(dst, scrollY)
	b.win.Present(dst.Image())
	b.win.SetTitle(snap.URL)
}

// handleEvent is the platform.Window callback run for every translated
// input event — the browser thread's only entry point for user input
// (spec §6).
func (b *Browser) handleEvent(ev platform.Event) {
	switch ev.Kind {
	case platform.MouseUp:
		b.handleClick(ev.X, ev.Y)
	case platform.Scroll:
		b.handleScroll(ev.DeltaY)
	case platform.KeyDown:
		b.handleKey(ev.Sym)
	case platform.TextInput:
		b.handleTextInput(ev.Char)
	case platform.Quit:
	}
}

// handleClick implements spec §4.13's split: chrome clicks are
// classified and acted on right here (plus button, tab switch, back,
// address bar focus) without ever touching a tab's layout tree; content
// clicks are translated to page coordinates and handed to the active
// tab as a task, so hit-testing against the layout tree always runs on
// the tab's own thread.
func (b *Browser) handleClick(x, y float64) {
	b.mu.Lock()
	bounds := b.chrome.Bounds()
	scrollY := b.scroll
	b.mu.Unlock()

	if y < bounds.Height {
		b.handleChromeHit(hittest.HitTestChrome(bounds, x, y))
		return
	}

	pageX := x
	pageY := y + scrollY - bounds.Height

	b.mu.Lock()
	b.focus = focusContent
	b.mu.Unlock()

	if tab := b.activeTab(); tab != nil {
		tab.Click(pageX, pageY)
	}
}

func (b *Browser) handleChromeHit(hit hittest.ChromeHit) {
	switch hit.Kind {
	case hittest.ChromeHitPlus:
		b.mu.Lock()
		b.active = len(b.tabs)
		b.scroll = 0
		b.mu.Unlock()
		b.addTab("about:blank")
	case hittest.ChromeHitTab:
		b.mu.Lock()
		if hit.TabIndex >= 0 && hit.TabIndex < len(b.tabs) {
			b.active = hit.TabIndex
		}
		b.scroll = b.tabs[b.active].Commit().Read().Scroll
		b.mu.Unlock()
		if active := b.activeTab(); active != nil {
			active.Scheduler().SetNeedsRasterAndDraw()
		}
	case hittest.ChromeHitBack:
		if tab := b.activeTab(); tab != nil {
			b.mu.Lock()
			b.scroll = 0
			b.mu.Unlock()
			tab.GoBack()
		}
	case hittest.ChromeHitAddressBar:
		b.mu.Lock()
		b.focus = focusAddressBar
		if b.active >= 0 && b.active < len(b.tabs) {
			b.addressBarText = b.tabs[b.active].URL
		}
		b.mu.Unlock()
	case hittest.ChromeHitNone:
	}
}

// handleScroll updates the browser's own live scroll value (b.scroll)
// directly (spec §8: "scroll is the authoritative live value, updated by wheel
// events without waiting for a frame"), clamped against the active tab's
// last committed document height. The tab's committed scroll is not
// touched.
func (b *Browser) handleScroll(deltaY float64) {
	tab := b.activeTab()
	if tab == nil {
		return
	}
	snap := tab.Commit().Read()
	maxScroll := snap.DocumentHeight - (float64(b.height) - b.chrome.Height())
	if maxScroll < 0 {
		maxScroll = 0
	}

	b.mu.Lock()
	newScroll := b.scroll + deltaY
	if newScroll < 0 {
		newScroll = 0
	}
	if newScroll > maxScroll {
		newScroll = maxScroll
	}
	b.scroll = newScroll
	b.mu.Unlock()

	tab.Scheduler().SetNeedsRasterAndDraw()
}

func (b *Browser) handleKey(sym platform.Key) {
	b.mu.Lock()
	focused := b.focus == focusAddressBar
	b.mu.Unlock()
	if !focused {
		return
	}
	switch sym {
	case platform.KeyEnter:
		b.mu.Lock()
		dest := b.addressBarText
		b.focus = focusContent
		b.scroll = 0
		b.mu.Unlock()
		if tab := b.activeTab(); tab != nil {
			tab.Navigate(dest)
		}
	case platform.KeyBackspace:
		b.mu.Lock()
		if n := len(b.addressBarText); n > 0 {
			b.addressBarText = b.addressBarText[:n-1]
		}
		b.mu.Unlock()
	}
	if active := b.activeTab(); active != nil {
		active.Scheduler().SetNeedsRasterAndDraw()
	}
}

func (b *Browser) handleTextInput(r rune) {
	b.mu.Lock()
	focused := b.focus == focusAddressBar
	if focused {
		b.addressBarText += string(r)
	}
	b.mu.Unlock()
	if !focused {
		return
	}
	if active := b.activeTab(); active != nil {
		active.Scheduler().SetNeedsRasterAndDraw()
	}
}
