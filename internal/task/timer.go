package task

import "time"

// Timer is a one-shot scheduler: after delayMs it enqueues a task onto a
// target queue. "Timers must be safe from any thread" (spec §4.10) — the
// underlying time.AfterFunc goroutine only ever calls Queue.Push, which is
// already safe for concurrent callers.
type Timer struct {
	t *time.Timer
}

// After starts a timer that pushes a task built from fn onto target after
// delayMs elapses. Returns a Timer that can be stopped before it fires.
func After(delayMs int, target *Queue, fn func()) *Timer {
	d := time.Duration(delayMs) * time.Millisecond
	timer := time.AfterFunc(d, func() {
		target.Push(NewTask(fn))
	})
	return &Timer{t: timer}
}

// Stop cancels the timer if it hasn't fired yet (clearTimeout and
// clearInterval use it). Tab teardown does not call Stop: a timer that
// fires after its tab's queue is closed is dropped by Queue.Push.
func (t *Timer) Stop() bool {
	return t.t.Stop()
}
