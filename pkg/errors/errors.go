// Package errors provides structured error handling for the Rive adapter.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a platform channel or native bridge error.
	KindPlatform
	// KindConfig indicates an animation catalog or configuration error.
	KindConfig
	// KindViewUnavailable indicates no view became attached within the wait budget.
	KindViewUnavailable
	// KindStateMachineNotFound indicates the named state machine never loaded.
	KindStateMachineNotFound
	// KindInputNotFound indicates the named input does not exist on the state machine.
	KindInputNotFound
	// KindInputKindMismatch indicates the input exists but has a different kind
	// than the requested operation (e.g. SetNumber on a boolean input).
	KindInputKindMismatch
	// KindDetached indicates an operation on an explicitly detached controller.
	KindDetached
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindConfig:
		return "config"
	case KindViewUnavailable:
		return "view-unavailable"
	case KindStateMachineNotFound:
		return "state-machine-not-found"
	case KindInputNotFound:
		return "input-not-found"
	case KindInputKindMismatch:
		return "input-kind-mismatch"
	case KindDetached:
		return "detached"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Expected reports whether the kind represents a routine, recoverable
// condition rather than a genuine fault. Readiness is inherently racy against
// the host framework's view lifecycle, so these kinds are logged at warning
// level and surfaced to callers only as a boolean failure result.
func (k ErrorKind) Expected() bool {
	switch k {
	case KindViewUnavailable, KindStateMachineNotFound, KindInputNotFound,
		KindInputKindMismatch, KindDetached:
		return true
	default:
		return false
	}
}

// RiveError represents a structured error in the Rive adapter.
type RiveError struct {
	// Op is the operation that failed (e.g., "controller.FireTrigger").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StateMachine is the state machine name involved, if applicable.
	StateMachine string
	// Input is the input name involved, if applicable.
	Input string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RiveError) Error() string {
	switch {
	case e.StateMachine != "" && e.Input != "":
		return fmt.Sprintf("%s [%s] stateMachine=%q input=%q: %v", e.Op, e.Kind, e.StateMachine, e.Input, e.Err)
	case e.StateMachine != "":
		return fmt.Sprintf("%s [%s] stateMachine=%q: %v", e.Op, e.Kind, e.StateMachine, e.Err)
	default:
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *RiveError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.Dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the adapter.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *RiveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
