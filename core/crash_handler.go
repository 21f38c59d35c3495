//go:build !(js && wasm)

package core

import "runtime/debug"

// HandleCrash runs the registered cleanup, logs the panic with its stack trace
// and returns it as an error. Returns nil for a nil value
func HandleCrash(r any) error {
	if r == nil {
		return nil
	}

	runCrashCleanup()

	Logf("CRASH DETECTED: %v", r)
	Logf("Stack Trace:\n%s", debug.Stack())

	return PanicError(r)
}
