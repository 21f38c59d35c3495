package core

import (
	"log"
	"os"
)

var (
	verbose bool
	logger  = log.New(os.Stderr, "webterm: ", log.LstdFlags)
)

// SetVerbose enables Debugf output
func SetVerbose(v bool) {
	verbose = v
}

// Verbose reports whether debug logging is enabled
func Verbose() bool {
	return verbose
}

// SetLogger replaces the destination of Logf and Debugf
func SetLogger(l *log.Logger) {
	logger = l
}

// Logf prints a formatted log message
func Logf(format string, args ...any) {
	logger.Printf(format, args...)
}

// Debugf prints a formatted log message only when verbose logging is enabled
func Debugf(format string, args ...any) {
	if verbose {
		logger.Printf(format, args...)
	}
}
