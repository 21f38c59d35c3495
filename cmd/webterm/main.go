//go:build js && wasm

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/webterm/config"
	"github.com/lixenwraith/webterm/host"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "WEBTERM CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cfg := config.DefaultConfig()
	if err := parseFlags(os.Args[1:], cfg); err != nil {
		os.Exit(2)
	}

	term, err := run(host.Browser(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start terminal: %v\n", err)
		os.Exit(1)
	}

	// Callbacks run on the browser event loop; main only waits for the stop
	<-term.Done()
	if err := term.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Terminal stopped: %v\n", err)
		os.Exit(1)
	}
}
