// Package scripthost implements the ScriptHost adapter (spec §4
// expansion; the teacher's pkg/js package renamed and rebuilt against
// this module's own DOM): a goja runtime with a document binding,
// console, timers, and a minimal XMLHttpRequest, all bridged onto a
// tab's internal/task queue rather than executed synchronously.
//
// Grounded on pkg/js/engine.go's "New() registers console, Execute()
// registers document then runs scripts in order" shape, but scripts here
// run as tasks enqueued on the tab's queue (spec §4.10) instead of being
// run inline by the caller, and the DOM binding targets internal/domtree
// instead of the teacher's own html.Node.
package scripthost

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"kestrel/internal/domtree"
	"kestrel/internal/task"
)

// Hooks connect script-driven side effects to the tab that owns this
// Host, kept as a seam (like internal/scheduler.FrameHooks) so scripthost
// never imports internal/browser.
type Hooks struct {
	SetNeedsRender           func()
	SetNeedsAnimationFrame   func()
	RegisterAnimationFrameCB func(cb func())

	// MarkDirty is called with the element a DOM mutation (setAttribute,
	// textContent, classList, appendChild/removeChild, style) touched, so
	// the tab can reflow rooted at that element (spec §6: "setAttribute,
	// innerHTML (triggers reflow rooted at modified element)").
	MarkDirty func(node *domtree.Node)
}

// Host runs JavaScript against one document's DOM on one tab's task
// queue.
type Host struct {
	vm    *goja.Runtime
	queue *task.Queue
	hooks Hooks
	dom   *domContext
	log   *zap.SugaredLogger
}

// New creates a Host bound to doc and queue. Console, document, timers,
// and XMLHttpRequest are registered immediately; scripts run later via
// RunScript. A script that throws is logged through log and quarantined
// (spec §7: ScriptRuntimeFailure — logged, script dropped, page
// continues) rather than propagated to the caller.
func New(doc *domtree.Document, queue *task.Queue, hooks Hooks, log *zap.SugaredLogger) *Host {
	vm := goja.New()
	h := &Host{vm: vm, queue: queue, hooks: hooks, log: log}

	registerConsole(vm)
	h.dom = registerDocument(vm, doc, hooks)
	registerTimers(vm, queue)
	registerAnimationFrame(vm, hooks)
	registerXHR(vm, queue)
	registerDateNow(vm)

	return h
}

// RunScript executes one <script> body as a task on the host's queue, so
// it observes the same FIFO ordering as every other main-thread task.
func (h *Host) RunScript(source string) {
	h.queue.Push(task.NewTask(func() {
		if _, err := h.vm.RunString(source); err != nil {
			h.log.Warnw("script error", "err", err)
		}
	}))
}

// Runtime exposes the underlying goja runtime for callers that need to
// invoke a captured function value directly (e.g. an event handler).
func (h *Host) Runtime() *goja.Runtime { return h.vm }
