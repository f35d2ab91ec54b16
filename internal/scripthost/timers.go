package scripthost

import (
	"time"

	"github.com/dop251/goja"

	"kestrel/internal/task"
)

// registerTimers installs setTimeout/clearTimeout/setInterval/clearInterval,
// all bridged onto internal/task.Timer so fired callbacks run as ordinary
// tasks on the tab's queue rather than directly on a timer goroutine.
func registerTimers(vm *goja.Runtime, queue *task.Queue) {
	handles := make(map[int64]*task.Timer)
	var nextHandle int64

	vm.Set("setTimeout", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			return goja.Undefined()
		}
		delay := int(call.Argument(1).ToInteger())
		nextHandle++
		handle := nextHandle
		handles[handle] = task.After(delay, queue, func() {
			fn(goja.Undefined())
		})
		return vm.ToValue(handle)
	})

	vm.Set("clearTimeout", func(call goja.FunctionCall) goja.Value {
		handle := call.Argument(0).ToInteger()
		if t, ok := handles[handle]; ok {
			t.Stop()
			delete(handles, handle)
		}
		return goja.Undefined()
	})

	vm.Set("setInterval", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			return goja.Undefined()
		}
		delay := int(call.Argument(1).ToInteger())
		nextHandle++
		handle := nextHandle

		var schedule func()
		schedule = func() {
			handles[handle] = task.After(delay, queue, func() {
				fn(goja.Undefined())
				if _, live := handles[handle]; live {
					schedule()
				}
			})
		}
		schedule()
		return vm.ToValue(handle)
	})

	vm.Set("clearInterval", func(call goja.FunctionCall) goja.Value {
		handle := call.Argument(0).ToInteger()
		if t, ok := handles[handle]; ok {
			t.Stop()
			delete(handles, handle)
		}
		return goja.Undefined()
	})
}

// registerDateNow installs Date.now(), the only Date surface this host
// needs; full Date object support is out of scope.
func registerDateNow(vm *goja.Runtime) {
	date := vm.NewObject()
	date.Set("now", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(time.Now().UnixMilli())
	})
	vm.Set("Date", date)
}
