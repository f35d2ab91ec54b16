package scripthost

import (
	"fmt"
	"os"
	"strings"

	"github.com/dop251/goja"
)

// registerConsole installs console.log/warn/error, grounded on
// pkg/js/console.go's object shape and os.Stderr routing for warn/error.
func registerConsole(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", func(call goja.FunctionCall) goja.Value {
		fmt.Println(joinArgs(call.Arguments))
		return goja.Undefined()
	})
	console.Set("warn", func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(os.Stderr, "WARN:", joinArgs(call.Arguments))
		return goja.Undefined()
	})
	console.Set("error", func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(os.Stderr, "ERROR:", joinArgs(call.Arguments))
		return goja.Undefined()
	})
	vm.Set("console", console)
}

func joinArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
