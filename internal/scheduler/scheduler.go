// Package scheduler implements the browser thread's refresh-cadence
// dispatch (spec §4.11): the needs_animation_frame /
// animation_frame_scheduled / needs_raster_and_draw tri-state and the
// rule for when a new animation frame may be scheduled. Grounded on
// grindlemire-go-tui's app_loop.go checkAndClearDirty idiom (lock, check,
// clear, act), generalized from one dirty bit to the spec's three-flag
// protocol and the two-thread model.
package scheduler

import (
	"sync"
	"time"
)

// RefreshRate is the browser thread's target frame interval (spec §4.11:
// "REFRESH_RATE (≈16 ms)").
const RefreshRate = 16 * time.Millisecond

// Scheduler holds the tri-state dirty flags shared between the browser
// and main threads. All fields are guarded by mu, standing in for the
// spec's single browser_lock scoped to just this state (spec §5:
// "needs_animation_frame, animation_frame_scheduled ... live behind one
// browser_lock").
type Scheduler struct {
	mu sync.Mutex

	needsAnimationFrame     bool
	animationFrameScheduled bool
	needsRasterAndDraw      bool
}

// New returns a Scheduler with all flags clear.
func New() *Scheduler {
	return &Scheduler{}
}

// SetNeedsAnimationFrame is callable from either thread — "anyone on
// either thread may call set_needs_animation_frame()" (spec §4.11). The
// main-thread-back-reference active-tab check the spec describes is the
// caller's responsibility (internal/browser), since this type has no
// notion of tabs.
func (s *Scheduler) SetNeedsAnimationFrame() {
	s.mu.Lock()
	s.needsAnimationFrame = true
	s.mu.Unlock()
}

// SetNeedsRasterAndDraw marks that the browser thread should raster and
// draw on its next iteration (set directly by chrome mutation or after a
// commit, spec §4.12: "after commit, needs_raster_and_draw is set").
func (s *Scheduler) SetNeedsRasterAndDraw() {
	s.mu.Lock()
	s.needsRasterAndDraw = true
	s.mu.Unlock()
}

// ConsumeNeedsRasterAndDraw reports whether a raster+draw is pending and
// clears the flag — the browser thread's per-iteration check.
func (s *Scheduler) ConsumeNeedsRasterAndDraw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.needsRasterAndDraw
	s.needsRasterAndDraw = false
	return v
}

// MaybeScheduleFrame is called by the browser thread after each completed
// draw. If an animation frame is wanted and none is already scheduled, it
// marks one scheduled, consumes needs_animation_frame, and invokes
// startTimer (outside the lock) to arm the REFRESH_RATE timer whose
// expiration enqueues run_animation_frame. This is both the back-pressure
// rule ("delays scheduling the next animation frame until the previous
// draw has completed") and the singleton rule ("at most one
// run_animation_frame in the queue at a time"), since a second call finds
// animationFrameScheduled already true and does nothing.
func (s *Scheduler) MaybeScheduleFrame(startTimer func()) bool {
	s.mu.Lock()
	if !s.needsAnimationFrame || s.animationFrameScheduled {
		s.mu.Unlock()
		return false
	}
	s.needsAnimationFrame = false
	s.animationFrameScheduled = true
	s.mu.Unlock()

	startTimer()
	return true
}

// FrameCompleted is called by the main thread once run_animation_frame
// has fully executed, clearing animation_frame_scheduled so the next
// MaybeScheduleFrame call after a draw can schedule another.
func (s *Scheduler) FrameCompleted() {
	s.mu.Lock()
	s.animationFrameScheduled = false
	s.mu.Unlock()
}

// AnimationFrameScheduled reports whether a frame is currently in flight,
// for diagnostics and tests.
func (s *Scheduler) AnimationFrameScheduled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animationFrameScheduled
}
