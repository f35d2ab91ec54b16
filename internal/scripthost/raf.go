package scripthost

import (
	"github.com/dop251/goja"
)

// registerAnimationFrame installs requestAnimationFrame, threading the
// callback through Hooks so internal/scheduler runs it from
// run_animation_frame (spec §4.11) rather than on any timer of its own.
func registerAnimationFrame(vm *goja.Runtime, hooks Hooks) {
	vm.Set("requestAnimationFrame", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			return goja.Undefined()
		}
		if hooks.RegisterAnimationFrameCB != nil {
			hooks.RegisterAnimationFrameCB(func() {
				fn(goja.Undefined())
			})
		}
		if hooks.SetNeedsAnimationFrame != nil {
			hooks.SetNeedsAnimationFrame()
		}
		return goja.Undefined()
	})
}
