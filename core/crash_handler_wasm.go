//go:build js && wasm

package core

import (
	"fmt"
	"runtime/debug"
	"syscall/js"
)

// HandleCrash logs to the browser console and returns the panic as an error
// The caller stops its loop; the page stays alive for inspection
func HandleCrash(r any) error {
	if r == nil {
		return nil
	}

	runCrashCleanup()

	stack := debug.Stack()
	console := js.Global().Get("console")
	console.Call("error", fmt.Sprintf("CRASH: %v", r))
	console.Call("error", fmt.Sprintf("Stack:\n%s", stack))
	Debugf("crash: %v", r)

	return PanicError(r)
}
