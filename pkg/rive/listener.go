package rive

import "time"

// EventListener receives the discrete events raised by the engine for one
// view. Delivery is synchronous at the point of event origin and decoupled
// from the host's redraw cycle, so rapid intermediate transitions are never
// coalesced into a latest-value snapshot.
//
// Listener callbacks have no error channel; they must not fail. Embed
// [ListenerBase] to implement only the callbacks of interest.
type EventListener interface {
	// OnAdvance is called after the engine advances the artboard by elapsed.
	OnAdvance(elapsed time.Duration)

	// OnLoop is called when an animation completes a loop iteration.
	OnLoop(animation string, loop Loop)

	// OnPlay is called when an animation or state machine starts playing.
	OnPlay(name string)

	// OnPause is called when an animation or state machine is paused.
	OnPause(name string)

	// OnStop is called when an animation or state machine stops.
	OnStop(name string)

	// OnStateChanged is called when a state machine transitions from one
	// named state to another.
	OnStateChanged(stateMachine, state string)

	// OnEvent is called for custom events authored into the animation.
	OnEvent(name string, properties map[string]any)
}

// ListenerBase is a no-op EventListener for embedding.
type ListenerBase struct{}

func (ListenerBase) OnAdvance(time.Duration) {}
func (ListenerBase) OnLoop(string, Loop) {}
func (ListenerBase) OnPlay(string) {}
func (ListenerBase) OnPause(string) {}
func (ListenerBase) OnStop(string) {}
func (ListenerBase) OnStateChanged(string, string) {}
func (ListenerBase) OnEvent(string, map[string]any) {}

// OnStateChange wraps a function as an EventListener that only observes
// state transitions. Each call returns a distinct listener value, so the
// result must be retained to unregister it later.
func OnStateChange(fn func(stateMachine, state string)) EventListener {
	return &stateChangeListener{fn: fn}
}

type stateChangeListener struct {
	ListenerBase
	fn func(stateMachine, state string)
}

func (l *stateChangeListener) OnStateChanged(stateMachine, state string) {
	l.fn(stateMachine, state)
}
