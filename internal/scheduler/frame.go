package scheduler

// FrameHooks are the tab-owned operations run_animation_frame needs but
// that internal/scheduler has no business knowing about directly
// (internal/browser wires these to a Tab's actual state).
type FrameHooks struct {
	// ScrollChangedInTab reports whether the tab itself changed scroll
	// since the last frame (so the incoming snapshot must not clobber it).
	ScrollChangedInTab func() bool
	SetScroll          func(scroll float64)

	NeedsRAFCallbacks     func() bool
	ClearNeedsRAFCallback func()
	SnapshotRAFCallbacks  func() []func()

	NeedsRender func() bool
	RunPipeline func() // style -> layout -> paint

	DocumentHeight func() float64
	ClampScroll    func(height float64)

	Commit func()
}

// RunAnimationFrame implements spec §4.11's run_animation_frame(scroll):
// assign scroll (unless the tab marked its own scroll dirty), run any due
// requestAnimationFrame callbacks, re-render if needed, clamp scroll to
// the fresh document height, and commit. Callbacks registered *during*
// invocation are intentionally left for the next frame — runAnimationFrame
// snapshots the callback list once and clears it before invoking.
func (s *Scheduler) RunAnimationFrame(scrollSnapshot float64, h FrameHooks) {
	defer s.FrameCompleted()

	if !h.ScrollChangedInTab() {
		h.SetScroll(scrollSnapshot)
	}

	if h.NeedsRAFCallbacks() {
		h.ClearNeedsRAFCallback()
		callbacks := h.SnapshotRAFCallbacks()
		for _, cb := range callbacks {
			cb()
		}
	}

	if h.NeedsRender() {
		h.RunPipeline()
	}

	h.ClampScroll(h.DocumentHeight())
	h.Commit()
}
