package core

import (
	"errors"
	"fmt"
)

// ErrPanic wraps a recovered panic value that was not an error
var ErrPanic = errors.New("panic")

// crashCleanup runs before a crash is reported, e.g. to release a rendering surface
var crashCleanup func()

// SetCrashCleanup registers fn to run once per HandleCrash call; nil clears it
func SetCrashCleanup(fn func()) {
	crashCleanup = fn
}

// PanicError converts a recovered value into an error, preserving error values for errors.Is/As
func PanicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPanic, r)
}

func runCrashCleanup() {
	if crashCleanup == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			Logf("crash cleanup panicked: %v", r)
		}
	}()
	crashCleanup()
}
