package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
//
// Expected kinds (the routine adapter failure causes such as
// view-unavailable or input-kind-mismatch) are logged at warning level;
// everything else is logged as an error.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a RiveError to stderr.
func (h *LogHandler) HandleError(err *RiveError) {
	if err == nil {
		return
	}
	level := "error"
	if err.Kind.Expected() {
		level = "warn"
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[rive %s] %s [%s]", level, err.Op, err.Kind)
		if err.StateMachine != "" {
			fmt.Fprintf(os.Stderr, " stateMachine=%q", err.StateMachine)
		}
		if err.Input != "" {
			fmt.Fprintf(os.Stderr, " input=%q", err.Input)
		}
		fmt.Fprintf(os.Stderr, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(os.Stderr, "[rive %s] %s\n", level, err.Error())
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[rive panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[rive panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}
