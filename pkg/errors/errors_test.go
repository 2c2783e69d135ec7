package errors

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRiveErrorString(t *testing.T) {
	err := &RiveError{
		Op:   "controller.Play",
		Kind: KindViewUnavailable,
		Err:  errors.New("no view attached within 500ms"),
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
	if !strings.Contains(got, "view-unavailable") {
		t.Errorf("error string %q should contain kind", got)
	}
}

func TestRiveErrorWithNames(t *testing.T) {
	err := &RiveError{
		Op:           "controller.FireTrigger",
		Kind:         KindInputNotFound,
		StateMachine: "SM",
		Input:        "Jump",
		Err:          errors.New("no such input"),
	}
	got := err.Error()
	for _, want := range []string{`stateMachine="SM"`, `input="Jump"`} {
		if !strings.Contains(got, want) {
			t.Errorf("error string %q should contain %q", got, want)
		}
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlatform, "platform"},
		{KindConfig, "config"},
		{KindViewUnavailable, "view-unavailable"},
		{KindStateMachineNotFound, "state-machine-not-found"},
		{KindInputNotFound, "input-not-found"},
		{KindInputKindMismatch, "input-kind-mismatch"},
		{KindDetached, "detached"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestErrorKindExpected(t *testing.T) {
	expected := []ErrorKind{
		KindViewUnavailable, KindStateMachineNotFound,
		KindInputNotFound, KindInputKindMismatch, KindDetached,
	}
	for _, k := range expected {
		if !k.Expected() {
			t.Errorf("%v should be expected", k)
		}
	}
	for _, k := range []ErrorKind{KindUnknown, KindPlatform, KindConfig, KindPanic} {
		if k.Expected() {
			t.Errorf("%v should not be expected", k)
		}
	}
}

func TestRiveErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &RiveError{Op: "op", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find wrapped error")
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

// capturingHandler records reported errors for assertions.
type capturingHandler struct {
	errors []*RiveError
	panics []*PanicError
}

func (h *capturingHandler) HandleError(err *RiveError)  { h.errors = append(h.errors, err) }
func (h *capturingHandler) HandlePanic(err *PanicError) { h.panics = append(h.panics, err) }

func TestReportSetsTimestamp(t *testing.T) {
	h := &capturingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&RiveError{Op: "op", Kind: KindDetached, Err: errors.New("x")})

	if len(h.errors) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(h.errors))
	}
	if h.errors[0].Timestamp.IsZero() {
		t.Error("expected Report to set Timestamp")
	}
}

func TestReportNilIsNoop(t *testing.T) {
	h := &capturingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(nil)
	ReportPanic(nil)

	if len(h.errors) != 0 || len(h.panics) != 0 {
		t.Error("nil reports should be ignored")
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	h := &capturingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.op")
		panic("boom")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(h.panics))
	}
	if h.panics[0].Op != "test.op" {
		t.Errorf("panic Op = %q, want %q", h.panics[0].Op, "test.op")
	}
	if h.panics[0].Value != "boom" {
		t.Errorf("panic Value = %v, want boom", h.panics[0].Value)
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	SetHandler(&capturingHandler{})
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("expected default LogHandler, got %T", DefaultHandler)
	}
}
