// Package commit implements the single critical section shared by the
// main thread's commit step and the browser thread's draw step (spec
// §4.12): one mutex, held briefly during a plain copy, never across any
// layout or paint work.
package commit

import (
	"sync"

	"kestrel/internal/paint"
	"kestrel/internal/scheduler"
)

// Data is what a tab's main thread hands to Commit after a completed
// animation frame.
type Data struct {
	URL            string
	Scroll         float64
	ScrollChanged  bool // false: the tab did not itself change scroll this frame
	DocumentHeight float64
	DisplayList    []paint.Command
}

// Snapshot is the browser thread's read-only view of the last commit.
type Snapshot struct {
	URL            string
	Scroll         float64
	DocumentHeight float64
	DisplayList    []paint.Command
}

// Commit holds the committed fields behind one mutex, and the scheduler
// whose needs_raster_and_draw flag a successful commit sets.
type Commit struct {
	mu        sync.Mutex
	snapshot  Snapshot
	scheduler *scheduler.Scheduler
}

// New returns an empty Commit wired to sched, whose needs_raster_and_draw
// flag is set after every applied commit.
func New(sched *scheduler.Scheduler) *Commit {
	return &Commit{scheduler: sched}
}

// Apply copies data into the committed snapshot and marks
// needs_raster_and_draw, unless isActiveTab is false — "commit ignores
// data from a tab that is not currently active" (spec §4.12). Scroll is
// only overwritten when data.ScrollChanged; a commit with a smaller
// document height than the currently-committed scroll does not
// retroactively clamp that scroll — nothing re-examines it until the
// next commit that itself changes scroll or is clamped upstream by the
// caller (internal/scheduler's ClampScroll hook), per Open Question (b).
func (c *Commit) Apply(data Data, isActiveTab bool) {
	if !isActiveTab {
		return
	}

	c.mu.Lock()
	c.snapshot.URL = data.URL
	c.snapshot.DocumentHeight = data.DocumentHeight
	c.snapshot.DisplayList = cloneCommands(data.DisplayList)
	if data.ScrollChanged {
		c.snapshot.Scroll = data.Scroll
	}
	c.mu.Unlock()

	c.scheduler.SetNeedsRasterAndDraw()
}

// Read returns a copy of the last committed snapshot, safe to call from
// the browser thread concurrently with Apply.
func (c *Commit) Read() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		URL:            c.snapshot.URL,
		Scroll:         c.snapshot.Scroll,
		DocumentHeight: c.snapshot.DocumentHeight,
		DisplayList:    cloneCommands(c.snapshot.DisplayList),
	}
}

// cloneCommands deep-copies a display list — "committed display list
// (cloned)" (spec §4.12), since paint.Command.Children is itself a slice
// that must not alias the main thread's working copy.
func cloneCommands(cmds []paint.Command) []paint.Command {
	if cmds == nil {
		return nil
	}
	out := make([]paint.Command, len(cmds))
	for i, c := range cmds {
		out[i] = c
		out[i].Children = cloneCommands(c.Children)
	}
	return out
}
