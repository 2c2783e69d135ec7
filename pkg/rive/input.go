package rive

import "fmt"

// InputKind identifies the type of a state machine input.
type InputKind int

const (
	// InputTrigger is a momentary input fired with Fire.
	InputTrigger InputKind = iota
	// InputBoolean is a persistent flag set with SetBool.
	InputBoolean
	// InputNumber is a persistent numeric value set with SetNumber.
	InputNumber
)

var inputKindNames = [...]string{"trigger", "boolean", "number"}

// String returns the wire form of the input kind.
func (k InputKind) String() string {
	if k < 0 || int(k) >= len(inputKindNames) {
		return fmt.Sprintf("InputKind(%d)", int(k))
	}
	return inputKindNames[k]
}

// ParseInputKind parses a wire-form input kind name.
func ParseInputKind(s string) (InputKind, error) {
	for i, name := range inputKindNames {
		if s == name {
			return InputKind(i), nil
		}
	}
	return InputTrigger, fmt.Errorf("unknown input kind %q", s)
}

// Input is a typed handle to one state machine input, owned by the engine.
//
// Each input has exactly one kind; invoking an operation that does not match
// Kind is a no-op with no engine mutation. Callers that need a diagnostic on
// mismatch should go through [Controller], which verifies the kind first.
type Input interface {
	// Name returns the input's name within its state machine.
	Name() string

	// Kind returns the input's type.
	Kind() InputKind

	// Fire activates a trigger input.
	Fire()

	// SetBool sets a boolean input's value.
	SetBool(value bool)

	// SetNumber sets a numeric input's value.
	SetNumber(value float64)
}
