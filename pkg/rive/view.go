package rive

// StateMachine is a named, engine-defined graph of animation states whose
// transitions are driven by typed inputs.
type StateMachine interface {
	// Name returns the state machine's name.
	Name() string

	// InputNames returns the names of all inputs, in engine order.
	InputNames() []string

	// Input looks up an input by name.
	Input(name string) (Input, bool)
}

// View is the engine-side surface of one embedded animation view.
//
// The view is owned by the host UI framework, never by this library: the
// host creates it, recycles it, and destroys it on its own schedule. A
// [Controller] holds only a non-owning reference between Attach and Detach.
//
// The engine does not signal when state machines finish loading, so
// StateMachines may return an empty or partial list early in the view's
// life; callers poll until the machine they need appears.
type View interface {
	// StateMachines returns the currently loaded state machines.
	StateMachines() []StateMachine

	// IsPlaying reports whether the engine is actively advancing animations.
	IsPlaying() bool

	// Play requests playback of the named state machine. Playback resumes
	// from the machine's current state; it is never reset to its initial
	// state.
	Play(stateMachine string)

	// SetEventSink registers the view's single event sink, replacing any
	// previous registration. Events raised by the engine are delivered to
	// the sink synchronously, in emission order.
	SetEventSink(listener EventListener)

	// ClearEventSink removes the registered sink, if any.
	ClearEventSink()
}
