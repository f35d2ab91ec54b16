package scheduler

import "testing"

func TestMaybeScheduleFrame_NoOpWhenNothingNeeded(t *testing.T) {
	s := New()
	called := false
	if s.MaybeScheduleFrame(func() { called = true }) {
		t.Error("expected no scheduling when needs_animation_frame is unset")
	}
	if called {
		t.Error("startTimer should not have been invoked")
	}
}

func TestMaybeScheduleFrame_SchedulesOnce(t *testing.T) {
	s := New()
	s.SetNeedsAnimationFrame()

	calls := 0
	if !s.MaybeScheduleFrame(func() { calls++ }) {
		t.Fatal("expected scheduling to succeed")
	}
	if calls != 1 {
		t.Fatalf("startTimer called %d times, want 1", calls)
	}
	if !s.AnimationFrameScheduled() {
		t.Error("expected animation_frame_scheduled to be set")
	}

	// A second request before the frame completes must be a no-op —
	// "at most one run_animation_frame in the queue at a time."
	s.SetNeedsAnimationFrame()
	if s.MaybeScheduleFrame(func() { calls++ }) {
		t.Error("expected no second scheduling while a frame is in flight")
	}
	if calls != 1 {
		t.Errorf("startTimer called %d times, want still 1", calls)
	}
}

func TestFrameCompleted_AllowsNextSchedule(t *testing.T) {
	s := New()
	s.SetNeedsAnimationFrame()
	s.MaybeScheduleFrame(func() {})
	s.FrameCompleted()

	s.SetNeedsAnimationFrame()
	calls := 0
	if !s.MaybeScheduleFrame(func() { calls++ }) {
		t.Error("expected scheduling to succeed again after FrameCompleted")
	}
	if calls != 1 {
		t.Errorf("startTimer called %d times, want 1", calls)
	}
}

func TestConsumeNeedsRasterAndDraw_ClearsFlag(t *testing.T) {
	s := New()
	if s.ConsumeNeedsRasterAndDraw() {
		t.Error("expected false before SetNeedsRasterAndDraw")
	}
	s.SetNeedsRasterAndDraw()
	if !s.ConsumeNeedsRasterAndDraw() {
		t.Error("expected true right after SetNeedsRasterAndDraw")
	}
	if s.ConsumeNeedsRasterAndDraw() {
		t.Error("expected the flag to be consumed (one-shot)")
	}
}

func TestRunAnimationFrame_SkipsScrollAssignWhenTabChangedIt(t *testing.T) {
	s := New()
	s.SetNeedsAnimationFrame()
	s.MaybeScheduleFrame(func() {})

	scrollSet := -1.0
	s.RunAnimationFrame(42, FrameHooks{
		ScrollChangedInTab:    func() bool { return true },
		SetScroll:             func(v float64) { scrollSet = v },
		NeedsRAFCallbacks:     func() bool { return false },
		ClearNeedsRAFCallback: func() {},
		SnapshotRAFCallbacks:  func() []func() { return nil },
		NeedsRender:           func() bool { return false },
		RunPipeline:           func() {},
		DocumentHeight:        func() float64 { return 100 },
		ClampScroll:           func(float64) {},
		Commit:                func() {},
	})

	if scrollSet != -1.0 {
		t.Errorf("expected SetScroll not to be called, got %v", scrollSet)
	}
	if s.AnimationFrameScheduled() {
		t.Error("expected RunAnimationFrame to clear animation_frame_scheduled")
	}
}

func TestRunAnimationFrame_InvokesDueCallbacksOnce(t *testing.T) {
	s := New()
	var ran []string
	s.RunAnimationFrame(0, FrameHooks{
		ScrollChangedInTab:    func() bool { return false },
		SetScroll:             func(float64) {},
		NeedsRAFCallbacks:     func() bool { return true },
		ClearNeedsRAFCallback: func() { ran = append(ran, "clear") },
		SnapshotRAFCallbacks: func() []func() {
			return []func(){
				func() { ran = append(ran, "cb1") },
				func() { ran = append(ran, "cb2") },
			}
		},
		NeedsRender:    func() bool { return true },
		RunPipeline:    func() { ran = append(ran, "pipeline") },
		DocumentHeight: func() float64 { return 500 },
		ClampScroll:    func(h float64) { ran = append(ran, "clamp") },
		Commit:         func() { ran = append(ran, "commit") },
	})

	want := []string{"clear", "cb1", "cb2", "pipeline", "clamp", "commit"}
	if len(ran) != len(want) {
		t.Fatalf("ran = %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Errorf("ran[%d] = %q, want %q", i, ran[i], want[i])
		}
	}
}
