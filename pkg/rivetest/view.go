// Package rivetest provides an in-memory fake of the Rive engine surface
// for tests and demos that have no native runtime available.
//
// FakeView implements [rive.View] with deterministic, inspectable state:
// state machines can be added after creation (to exercise availability
// polling), events are emitted synchronously in call order, and sink
// registrations are counted so attach/detach hygiene can be asserted.
package rivetest

import (
	"sync"
	"time"

	"github.com/go-drift/rive/pkg/rive"
)

// FakeInput is an in-memory state machine input. Operations that do not
// match the input's kind are no-ops, like the engine's.
type FakeInput struct {
	name string
	kind rive.InputKind

	mu     sync.Mutex
	fires  int
	bval   bool
	nval   float64
}

// NewTrigger creates a trigger input.
func NewTrigger(name string) *FakeInput {
	return &FakeInput{name: name, kind: rive.InputTrigger}
}

// NewBool creates a boolean input with an initial value.
func NewBool(name string, value bool) *FakeInput {
	return &FakeInput{name: name, kind: rive.InputBoolean, bval: value}
}

// NewNumber creates a numeric input with an initial value.
func NewNumber(name string, value float64) *FakeInput {
	return &FakeInput{name: name, kind: rive.InputNumber, nval: value}
}

func (in *FakeInput) Name() string         { return in.name }
func (in *FakeInput) Kind() rive.InputKind { return in.kind }

// Fire activates a trigger input; non-trigger inputs are unchanged.
func (in *FakeInput) Fire() {
	if in.kind != rive.InputTrigger {
		return
	}
	in.mu.Lock()
	in.fires++
	in.mu.Unlock()
}

// SetBool sets a boolean input; non-boolean inputs are unchanged.
func (in *FakeInput) SetBool(value bool) {
	if in.kind != rive.InputBoolean {
		return
	}
	in.mu.Lock()
	in.bval = value
	in.mu.Unlock()
}

// SetNumber sets a numeric input; non-numeric inputs are unchanged.
func (in *FakeInput) SetNumber(value float64) {
	if in.kind != rive.InputNumber {
		return
	}
	in.mu.Lock()
	in.nval = value
	in.mu.Unlock()
}

// FireCount returns how often the trigger was fired.
func (in *FakeInput) FireCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.fires
}

// BoolValue returns the boolean input's current value.
func (in *FakeInput) BoolValue() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.bval
}

// NumberValue returns the numeric input's current value.
func (in *FakeInput) NumberValue() float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.nval
}

// FakeStateMachine is an in-memory state machine with a fixed name and a
// mutable input set.
type FakeStateMachine struct {
	name string

	mu     sync.Mutex
	inputs []*FakeInput
}

// NewStateMachine creates a state machine with the given inputs.
func NewStateMachine(name string, inputs ...*FakeInput) *FakeStateMachine {
	return &FakeStateMachine{name: name, inputs: inputs}
}

func (m *FakeStateMachine) Name() string { return m.name }

// AddInput makes another input available, as if the engine loaded it late.
func (m *FakeStateMachine) AddInput(in *FakeInput) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()
}

// InputNames returns the input names in insertion order.
func (m *FakeStateMachine) InputNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		names[i] = in.name
	}
	return names
}

// Input looks up an input by name.
func (m *FakeStateMachine) Input(name string) (rive.Input, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, in := range m.inputs {
		if in.name == name {
			return in, true
		}
	}
	return nil, false
}

// FakeView is an in-memory rive.View.
//
// The zero value is not usable; create views with NewView. All methods are
// safe for concurrent use. Emit* methods deliver to the registered sink
// synchronously on the calling goroutine, in call order, exactly like the
// engine raises its callbacks.
type FakeView struct {
	mu       sync.Mutex
	machines []*FakeStateMachine
	playing  bool
	sink     rive.EventListener

	playCalls  []string
	sinkSets   int
	sinkClears int
}

// NewView creates a view preloaded with the given state machines.
func NewView(machines ...*FakeStateMachine) *FakeView {
	return &FakeView{machines: machines}
}

// StateMachines implements rive.View.
func (v *FakeView) StateMachines() []rive.StateMachine {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]rive.StateMachine, len(v.machines))
	for i, m := range v.machines {
		out[i] = m
	}
	return out
}

// AddStateMachine makes another state machine available, as if the engine
// finished loading it after view creation. There is deliberately no
// notification: callers observe the change by polling, like the engine.
func (v *FakeView) AddStateMachine(m *FakeStateMachine) {
	v.mu.Lock()
	v.machines = append(v.machines, m)
	v.mu.Unlock()
}

// IsPlaying implements rive.View.
func (v *FakeView) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

// SetPlaying sets the playing flag directly.
func (v *FakeView) SetPlaying(playing bool) {
	v.mu.Lock()
	v.playing = playing
	v.mu.Unlock()
}

// Play implements rive.View, recording the requested state machine name.
func (v *FakeView) Play(stateMachine string) {
	v.mu.Lock()
	v.playCalls = append(v.playCalls, stateMachine)
	v.playing = true
	v.mu.Unlock()
}

// PlayCalls returns the state machine names passed to Play, in order.
func (v *FakeView) PlayCalls() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.playCalls))
	copy(out, v.playCalls)
	return out
}

// SetEventSink implements rive.View.
func (v *FakeView) SetEventSink(listener rive.EventListener) {
	v.mu.Lock()
	v.sink = listener
	v.sinkSets++
	v.mu.Unlock()
}

// ClearEventSink implements rive.View.
func (v *FakeView) ClearEventSink() {
	v.mu.Lock()
	v.sink = nil
	v.sinkClears++
	v.mu.Unlock()
}

// HasSink reports whether a sink is currently registered.
func (v *FakeView) HasSink() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sink != nil
}

// SinkSets returns how often a sink was registered.
func (v *FakeView) SinkSets() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sinkSets
}

// SinkClears returns how often the sink was removed.
func (v *FakeView) SinkClears() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sinkClears
}

func (v *FakeView) currentSink() rive.EventListener {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sink
}

// EmitStateChange raises a state transition to the registered sink.
func (v *FakeView) EmitStateChange(stateMachine, state string) {
	if sink := v.currentSink(); sink != nil {
		sink.OnStateChanged(stateMachine, state)
	}
}

// EmitAdvance raises an advance callback to the registered sink.
func (v *FakeView) EmitAdvance(elapsed time.Duration) {
	if sink := v.currentSink(); sink != nil {
		sink.OnAdvance(elapsed)
	}
}

// EmitLoop raises a loop callback to the registered sink.
func (v *FakeView) EmitLoop(animation string, loop rive.Loop) {
	if sink := v.currentSink(); sink != nil {
		sink.OnLoop(animation, loop)
	}
}

// EmitPlay raises a play callback to the registered sink.
func (v *FakeView) EmitPlay(name string) {
	if sink := v.currentSink(); sink != nil {
		sink.OnPlay(name)
	}
}

// EmitPause raises a pause callback to the registered sink.
func (v *FakeView) EmitPause(name string) {
	if sink := v.currentSink(); sink != nil {
		sink.OnPause(name)
	}
}

// EmitStop raises a stop callback to the registered sink.
func (v *FakeView) EmitStop(name string) {
	if sink := v.currentSink(); sink != nil {
		sink.OnStop(name)
	}
}

// EmitEvent raises a custom event callback to the registered sink.
func (v *FakeView) EmitEvent(name string, properties map[string]any) {
	if sink := v.currentSink(); sink != nil {
		sink.OnEvent(name, properties)
	}
}
