// Package browser wires every other internal/ package into the spec's
// two-thread model (spec §5): a Browser owning the window, chrome, and
// tab list runs on the browser thread; each Tab owns its own element
// tree, style map, layout tree, script host, and task queue, running its
// main-thread loop on its own goroutine. Grounded on the teacher's
// cmd/l14/main.go for the top-level wiring shape (construct engine,
// open window, drive the loop), generalized from the teacher's single
// synchronous render pass into the spec's commit/scheduler choreography.
package browser

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"kestrel/internal/commit"
	"kestrel/internal/cssparse"
	"kestrel/internal/domtree"
	"kestrel/internal/fontcache"
	"kestrel/internal/hittest"
	"kestrel/internal/htmlparse"
	"kestrel/internal/layout"
	"kestrel/internal/netfetch"
	"kestrel/internal/paint"
	"kestrel/internal/scheduler"
	"kestrel/internal/scripthost"
	"kestrel/internal/style"
	"kestrel/internal/task"
)

// Focus discriminates what content-side element (if any) holds input
// focus within a tab — the Content(layout_box_id) half of spec §3's Tab
// focus enum; the AddressBar half lives on Browser instead, since address
// bar focus is global to the window, not per-tab.
type Focus int

const (
	FocusNone Focus = iota
	FocusInput
)

// Tab is the main-thread-owned state of spec §3's Tab: element tree,
// style map, layout tree, script host, display list, and its own task
// queue/goroutine. Every field here is touched only by the tab's own
// goroutine except where noted.
type Tab struct {
	ID uuid.UUID

	fonts   *fontcache.Cache
	fetcher netfetch.Fetcher
	log     *zap.SugaredLogger

	isActive func() bool

	viewportWidth, viewportHeight float64

	queue     *task.Queue
	scheduler *scheduler.Scheduler
	commit    *commit.Commit

	URL     string
	history []string

	doc        *domtree.Document
	engine     *layout.Engine
	scriptHost *scripthost.Host

	displayList []paint.Command

	scroll              float64
	scrollChangedInTab  bool
	focus               Focus
	focusedInput        layout.BoxID
	hoveredNode         *domtree.Node

	needsRender      bool
	dirtyRoots       []*domtree.Node
	needsRAFCallback bool
	rafCallbacks     []func()
}

// NewTab allocates a tab of the given viewport size. isActive reports
// whether this tab is the browser's currently-active tab, consulted by
// Commit.Apply (spec §4.12: "commit ignores data from a tab that is not
// currently active").
func NewTab(fonts *fontcache.Cache, fetcher netfetch.Fetcher, log *zap.SugaredLogger, viewportWidth, viewportHeight float64, isActive func() bool) *Tab {
	sched := scheduler.New()
	t := &Tab{
		ID:             uuid.New(),
		fonts:          fonts,
		fetcher:        fetcher,
		log:            log,
		isActive:       isActive,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		queue:          task.NewQueue(),
		scheduler:      sched,
		commit:         commit.New(sched),
		focusedInput:   layout.NilBoxID,
	}
	t.engine = layout.NewEngine(fonts, &cssparse.Stylesheet{}, viewportWidth, viewportHeight)
	return t
}

// Run starts the tab's main-thread loop on its own goroutine — "each tab
// owns a task queue and a dedicated main thread that loops" (spec §4.10).
func (t *Tab) Run() {
	go t.queue.Run()
}

// Close stops the tab's task loop. Outstanding timers fired after this
// point push onto a closed queue and are silently dropped (spec §5:
// "timers fired after tab destruction are dropped by the queue owner").
func (t *Tab) Close() {
	t.queue.Close()
}

// Queue exposes the tab's task queue so the browser thread can enqueue
// click/animation-frame tasks onto it.
func (t *Tab) Queue() *task.Queue { return t.queue }

// Scheduler exposes the tab's scheduler for the browser thread's
// MaybeScheduleFrame/FrameCompleted choreography.
func (t *Tab) Scheduler() *scheduler.Scheduler { return t.scheduler }

// Commit exposes the tab's commit critical section for the browser
// thread's Read.
func (t *Tab) Commit() *commit.Commit { return t.commit }

// RunAnimationFrame enqueues run_animation_frame(scroll) onto the tab's
// own queue (spec §4.11) — the browser thread only arms the timer via
// Scheduler().MaybeScheduleFrame; the frame itself always runs on the
// tab's own thread.
func (t *Tab) RunAnimationFrame(scroll float64) {
	t.queue.Push(task.NewTask(func() {
		t.scheduler.RunAnimationFrame(scroll, t.frameHooks())
	}))
}

// GoBack navigates to the previous history entry, if any (spec §3's
// Tab.history "back navigation pops the current entry").
func (t *Tab) GoBack() {
	t.queue.Push(task.NewTask(func() {
		if len(t.history) < 2 {
			return
		}
		t.history = t.history[:len(t.history)-1]
		prev := t.history[len(t.history)-1]
		t.history = t.history[:len(t.history)-1]
		t.navigate(prev)
	}))
}

// Navigate loads url as a task on the tab's own queue: fetch, parse,
// merge stylesheets, run the initial style/layout pass, enqueue embedded
// scripts as later tasks on the same queue, then paint and commit — so
// the scripts run after that first commit. Called both for the tab's first load and
// for in-page navigation (clicking a link, hit-test ActionNavigate).
func (t *Tab) Navigate(url string) {
	t.queue.Push(task.NewTask(func() { t.navigate(url) }))
}

func (t *Tab) navigate(url string) {
	body, _, err := t.fetcher.Fetch(url)
	if err != nil {
		t.log.Errorw("navigation fetch failed", "url", url, "err", err)
		t.loadErrorPage(url, err)
		return
	}

	cssFetcher := func(ref string) (string, error) {
		body, _, err := t.fetcher.Fetch(netfetch.ResolveURL(url, ref))
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
	doc, err := htmlparse.ParseWithFetcher(string(body), cssFetcher)
	if err != nil {
		// htmlparse.Parse never actually returns a non-nil error (spec §7
		// ParseFailure is always a best-effort tree), but the contract
		// allows one, so log and continue rather than abort the load.
		t.log.Warnw("parse reported an error, continuing with best-effort tree", "url", url, "err", err)
	}

	var sheets []*cssparse.Stylesheet
	var parseErrs error
	for _, css := range doc.Stylesheets {
		sheet, err := cssparse.ParseStylesheet(css)
		if err != nil {
			parseErrs = multierr.Append(parseErrs, err)
			continue
		}
		sheets = append(sheets, sheet)
	}
	if parseErrs != nil {
		t.log.Warnw("stylesheet parse errors", "url", url, "err", parseErrs)
	}

	t.URL = url
	t.history = append(t.history, url)
	t.doc = doc
	t.engine.Sheet = cssparse.Merge(sheets...)
	t.engine.InitialLayout(doc)

	t.scroll = 0
	t.scrollChangedInTab = true
	t.focus = FocusNone
	t.focusedInput = layout.NilBoxID
	t.hoveredNode = nil
	t.dirtyRoots = nil
	t.needsRender = false

	hooks := scripthost.Hooks{
		SetNeedsRender:           t.setNeedsRender,
		SetNeedsAnimationFrame:   t.setNeedsAnimationFrame,
		RegisterAnimationFrameCB: t.registerRAFCallback,
		MarkDirty:                t.markDirty,
	}
	t.scriptHost = scripthost.New(doc, t.queue, hooks, t.log)
	for _, script := range doc.Scripts {
		t.scriptHost.RunScript(script)
	}

	t.repaint()
	t.commitFrame()
	t.scheduler.SetNeedsAnimationFrame()
}

// loadErrorPage renders a minimal placeholder in place of a failed
// navigation (spec §7: "NetworkFailure (surfaced by rendering a
// placeholder error page)").
func (t *Tab) loadErrorPage(url string, cause error) {
	html := fmt.Sprintf("<html><body><h1>Could not load page</h1><p>%s</p></body></html>", url)
	doc, _ := htmlparse.Parse(html)

	t.URL = url
	t.doc = doc
	t.engine.Sheet = &cssparse.Stylesheet{}
	t.engine.InitialLayout(doc)
	t.scroll = 0
	t.scrollChangedInTab = true

	t.repaint()
	t.commitFrame()
	t.scheduler.SetNeedsAnimationFrame()

	_ = cause // logged by the caller; kept here for a future richer error page
}

func (t *Tab) repaint() {
	t.displayList = paint.Paint(t.engine.Tree, paint.Styles(t.engine.Styles), t.engine.Tree.Root())
}

func (t *Tab) commitFrame() {
	data := commit.Data{
		URL:            t.URL,
		Scroll:         t.scroll,
		ScrollChanged:  t.scrollChangedInTab,
		DocumentHeight: t.DocumentHeight(),
		DisplayList:    t.displayList,
	}
	t.commit.Apply(data, t.isActive())
	t.scrollChangedInTab = false
}

// DocumentHeight returns the laid-out document's total height.
func (t *Tab) DocumentHeight() float64 {
	root := t.engine.Tree.Root()
	if root == layout.NilBoxID {
		return 0
	}
	return t.engine.Tree.Get(root).H
}

// Click enqueues a hit-test-and-dispatch task for a page-relative click —
// spec §4.13: "Click in content area: convert to page-local coordinates
// and enqueue a click(x, y) task on the active tab."
func (t *Tab) Click(pageX, pageY float64) {
	t.queue.Push(task.NewTask(func() { t.click(pageX, pageY) }))
}

func (t *Tab) click(pageX, pageY float64) {
	if t.doc == nil {
		return
	}
	action := hittest.HitTestContent(t.engine.Tree, pageX, pageY)
	switch action.Kind {
	case hittest.ActionNavigate:
		dest := netfetch.ResolveURL(t.URL, action.URL)
		t.navigate(dest)
	case hittest.ActionFocusInput:
		t.focus = FocusInput
		t.focusedInput = action.Box
	case hittest.ActionSubmit:
		t.log.Infow("form submit action hit (no form submission model in this core)", "url", t.URL)
	default:
		t.focus = FocusNone
		t.focusedInput = layout.NilBoxID
	}
}

// setNeedsRender marks the tab dirty for the next animation frame's
// pipeline run, callable from script (main thread only, so no lock
// needed beyond the queue's own serialization).
func (t *Tab) setNeedsRender() { t.needsRender = true }

// setNeedsAnimationFrame is the tab-owned half of "anyone on either
// thread may call set_needs_animation_frame(); callers on the main
// thread go via the tab's browser back-reference, which atomically
// checks the tab is active" (spec §4.11) — the active check itself is
// Commit.Apply's isActiveTab, not repeated here, since an inactive tab's
// scheduler still tracking its own dirty flags is harmless (its frame
// simply never gets drawn, per "browser thread never reads a tab's
// layout tree" for tabs that aren't active).
func (t *Tab) setNeedsAnimationFrame() { t.scheduler.SetNeedsAnimationFrame() }

func (t *Tab) registerRAFCallback(cb func()) {
	t.needsRAFCallback = true
	t.rafCallbacks = append(t.rafCallbacks, cb)
}

// markDirty implements scripthost.Hooks.MarkDirty: a DOM mutation dirties
// node's subtree, to be reflowed on the next animation frame.
func (t *Tab) markDirty(node *domtree.Node) {
	for _, existing := range t.dirtyRoots {
		if existing == node {
			return
		}
	}
	t.dirtyRoots = append(t.dirtyRoots, node)
	t.needsRender = true
	t.setNeedsAnimationFrame()
}

// frameHooks builds the scheduler.FrameHooks bound to this tab's state,
// for RunAnimationFrame (spec §4.11).
func (t *Tab) frameHooks() scheduler.FrameHooks {
	return scheduler.FrameHooks{
		ScrollChangedInTab: func() bool { return t.scrollChangedInTab },
		SetScroll:          func(scroll float64) { t.scroll = scroll },

		NeedsRAFCallbacks:     func() bool { return t.needsRAFCallback },
		ClearNeedsRAFCallback: func() { t.needsRAFCallback = false },
		SnapshotRAFCallbacks: func() []func() {
			cbs := t.rafCallbacks
			t.rafCallbacks = nil
			return cbs
		},

		NeedsRender: func() bool { return t.needsRender },
		RunPipeline: t.runPipeline,

		DocumentHeight: t.DocumentHeight,
		ClampScroll:    t.clampScroll,

		Commit: t.commitFrame,
	}
}

// runPipeline implements spec §4.6's steps 1–7 for every node dirtied
// since the last frame, then regenerates the display list once.
func (t *Tab) runPipeline() {
	if t.doc == nil {
		t.needsRender = false
		return
	}
	roots := t.dirtyRoots
	t.dirtyRoots = nil
	t.needsRender = false

	if len(roots) == 0 {
		// requestAnimationFrame callbacks themselves may have mutated
		// style/layout-affecting script state without going through a DOM
		// setter markDirty covers (rare, but defensive) — reflow from the
		// document root so nothing is missed.
		roots = []*domtree.Node{t.doc.Root}
	}
	for _, root := range roots {
		t.engine.Reflow(root, t.doc)
	}
	t.repaint()
}

// clampScroll implements spec §8's boundary behavior: "Scrolling is
// clamped to [0, max(0, document_height - viewport_content_height)]."
func (t *Tab) clampScroll(documentHeight float64) {
	maxScroll := documentHeight - t.viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
	if t.scroll > maxScroll {
		t.scroll = maxScroll
	}
}

// SetViewport updates the tab's known viewport size (window resize).
func (t *Tab) SetViewport(width, height float64) {
	t.viewportWidth = width
	t.viewportHeight = height
	t.engine.ViewportWidth = width
	t.engine.ViewportHeight = height
}

// Hover updates node's "hover" pseudoclass for spec §8 scenario 4: "after
// the mouse-motion event, the a element gains hover in its pseudoclass
// set, the hovered layout subtree is re-sized". Called on the tab's own
// queue since it triggers a reflow.
func (t *Tab) Hover(pageX, pageY float64) {
	t.queue.Push(task.NewTask(func() { t.hover(pageX, pageY) }))
}

func (t *Tab) hover(pageX, pageY float64) {
	if t.doc == nil {
		return
	}
	_, node := hittest.HitTestPage(t.engine.Tree, pageX, pageY)
	var target *domtree.Node
	for n := node; n != nil; n = n.Parent {
		if n.Type == domtree.ElementNode {
			target = n
			break
		}
	}
	if target == t.hoveredNode {
		return
	}
	if t.hoveredNode != nil {
		t.hoveredNode.SetPseudoClass("hover", false)
		t.markDirty(t.hoveredNode)
	}
	t.hoveredNode = target
	if target != nil {
		target.SetPseudoClass("hover", true)
		t.markDirty(target)
	}
}

// Style exposes the resolved style used for inline/background lookups,
// mainly for tests.
func (t *Tab) Style(node *domtree.Node) *style.Style {
	return t.engine.Styles[node]
}

// DisplayList returns the tab's most recently painted display list, for
// tests that want to inspect paint output directly without going through
// the commit protocol.
func (t *Tab) DisplayList() []paint.Command { return t.displayList }
