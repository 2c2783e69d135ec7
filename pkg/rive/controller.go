package rive

import (
	goerrors "errors"
	"sync"
	"time"

	"github.com/go-drift/rive/pkg/errors"
)

// Default wait budgets for controller operations. Each is overridable per
// controller via the corresponding field.
const (
	// DefaultPollInterval is the cadence at which engine-internal objects
	// are polled for availability: one frame at 120Hz. The engine pushes no
	// notification when state machines finish loading, so availability can
	// only be observed by re-reading the current list.
	DefaultPollInterval = 8 * time.Millisecond

	// DefaultViewTimeout bounds how long operations wait for a view to be
	// attached before resolving to a failure result.
	DefaultViewTimeout = 500 * time.Millisecond

	// DefaultLookupTimeout bounds how long operations poll for a named
	// state machine to appear, and how long AwaitState waits for a
	// transition when no explicit timeout is given.
	DefaultLookupTimeout = 200 * time.Millisecond
)

var (
	errNoView            = goerrors.New("no view attached within the wait budget")
	errDetached          = goerrors.New("controller is detached")
	errAttachAfterDetach = goerrors.New("attach on a detached controller")
	errMachineNotFound   = goerrors.New("state machine not loaded within the wait budget")
	errInputNotFound     = goerrors.New("no such input")
	errInputKind         = goerrors.New("input kind does not match operation")
)

// Controller synchronizes imperative engine state with a declarative host.
//
// One Controller serves one logical animation slot. The host attaches the
// underlying native view when it instantiates it and detaches on teardown;
// the controller survives view churn in between (the same controller
// persists across a re-layout that recreates the view). Application code
// drives the engine through the controller's operations, which transparently
// wait for the view and its state machines to become available instead of
// failing:
//
//	c := rive.NewController()
//	c.RegisterListener(rive.OnStateChange(func(machine, state string) { ... }))
//	// host view lifecycle:
//	c.Attach(view)
//	// application logic:
//	if c.SetBool("Motion", "Hovered", true) { ... }
//	// host teardown:
//	c.Detach()
//
// Every operation returns a boolean success indicator. Failure causes —
// view never attached, state machine or input not found, input kind
// mismatch, controller detached — are deliberately folded into false plus a
// reported diagnostic ([errors.Report] at warning level); none of them is
// fatal, since engine readiness is inherently racy against the host's view
// lifecycle and recoverable by retry.
//
// Operations may block the calling goroutine up to their wait budget; call
// them from a goroutine that is allowed to wait, never from a paint or
// layout callback. All methods are safe for concurrent use.
//
// After an explicit Detach the controller is a permanent no-op sink: every
// operation short-circuits to false without waiting.
type Controller struct {
	// PollInterval is the availability-polling cadence.
	// Zero means DefaultPollInterval.
	PollInterval time.Duration

	// ViewTimeout bounds the wait for a view to be attached.
	// Zero means DefaultViewTimeout.
	ViewTimeout time.Duration

	// LookupTimeout bounds state-machine resolution and the default
	// AwaitState wait. Zero means DefaultLookupTimeout.
	LookupTimeout time.Duration

	mu        sync.Mutex
	view      View
	detached  bool
	listeners []EventListener
	viewReady chan struct{} // armed while waiting for a view; closed on Attach/Detach

	sink *engineSink
}

// NewController creates a controller with default wait budgets.
func NewController() *Controller {
	c := &Controller{}
	c.sink = &engineSink{c: c}
	return c
}

// Attach binds the controller to a host-created view and registers the
// controller on the view's event sink.
//
// Attaching the view that is already attached is a no-op. Attaching a
// different view first detaches the current one, leaving no stale sink
// registration behind; this internal replacement does not mark the
// controller detached. Attach after an explicit Detach is rejected.
func (c *Controller) Attach(v View) {
	if v == nil {
		return
	}
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		errors.Report(&errors.RiveError{
			Op:   "controller.Attach",
			Kind: errors.KindDetached,
			Err:  errAttachAfterDetach,
		})
		return
	}
	if c.view == v {
		c.mu.Unlock()
		return
	}
	if old := c.view; old != nil {
		old.ClearEventSink()
	}
	c.view = v
	v.SetEventSink(c.ensureSink())
	ready := c.viewReady
	c.viewReady = nil
	c.mu.Unlock()

	if ready != nil {
		close(ready)
	}
}

// Detach unbinds the current view, removes the controller's sink
// registration from it, and permanently marks the controller detached.
// Safe to call repeatedly and with no view attached.
func (c *Controller) Detach() {
	c.mu.Lock()
	if c.view != nil {
		c.view.ClearEventSink()
		c.view = nil
	}
	c.detached = true
	ready := c.viewReady
	c.viewReady = nil
	c.mu.Unlock()

	// Wake any waiters; they re-check and observe the detached state.
	if ready != nil {
		close(ready)
	}
}

// AttachedView returns the currently attached view, or nil.
func (c *Controller) AttachedView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// IsDetached reports whether Detach has been called.
func (c *Controller) IsDetached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detached
}

// RegisterListener adds a listener for engine events. Listeners persist
// across view churn; only events raised while a view is attached are
// delivered. Listeners are invoked in registration order and are not
// deduplicated — registering the same listener twice delivers twice.
func (c *Controller) RegisterListener(l EventListener) {
	if l == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// UnregisterListener removes a previously registered listener. The listener
// is matched by interface identity, so unregister the same value that was
// registered.
func (c *Controller) UnregisterListener(l EventListener) {
	c.mu.Lock()
	for i, x := range c.listeners {
		if x == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
}

// ListenerCount returns the number of registered listeners.
func (c *Controller) ListenerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

// IsReadyAndPlaying reports whether a view is attached, has at least one
// loaded state machine, and is actively playing. It waits up to ViewTimeout
// for a view to be attached; if the controller is detached it returns false
// immediately.
func (c *Controller) IsReadyAndPlaying() bool {
	v := c.awaitView("controller.IsReadyAndPlaying")
	if v == nil {
		return false
	}
	return len(v.StateMachines()) > 0 && v.IsPlaying()
}

// Play requests playback of the named state machine unless the view is
// already loaded and playing. Playback resumes from the machine's current
// state; it is never reset to its initial state. Returns false only when no
// view becomes available in time (or the controller is detached) — an
// already-playing view yields true.
func (c *Controller) Play(stateMachine string) bool {
	v := c.awaitView("controller.Play")
	if v == nil {
		return false
	}
	if len(v.StateMachines()) > 0 && v.IsPlaying() {
		return true
	}
	v.Play(stateMachine)
	return true
}

// FireTrigger fires the named trigger input on the named state machine.
// Returns false, with no engine mutation, when the state machine never
// appears within LookupTimeout, the input does not exist, or the input is
// not a trigger.
func (c *Controller) FireTrigger(stateMachine, input string) bool {
	in, ok := c.resolveInput("controller.FireTrigger", stateMachine, input, InputTrigger)
	if !ok {
		return false
	}
	in.Fire()
	return true
}

// SetBool sets the named boolean input on the named state machine.
// Resolution and verification follow the same protocol as FireTrigger,
// gated on the boolean kind.
func (c *Controller) SetBool(stateMachine, input string, value bool) bool {
	in, ok := c.resolveInput("controller.SetBool", stateMachine, input, InputBoolean)
	if !ok {
		return false
	}
	in.SetBool(value)
	return true
}

// SetNumber sets the named numeric input on the named state machine.
// Resolution and verification follow the same protocol as FireTrigger,
// gated on the numeric kind.
func (c *Controller) SetNumber(stateMachine, input string, value float64) bool {
	in, ok := c.resolveInput("controller.SetNumber", stateMachine, input, InputNumber)
	if !ok {
		return false
	}
	in.SetNumber(value)
	return true
}

// AwaitState waits for the named state machine to transition into the named
// state, bounded by timeout (LookupTimeout when timeout <= 0). The temporary
// listener is registered before waiting begins, so a transition raised
// immediately after the call starts is still observed; it is always removed
// again, including on timeout.
func (c *Controller) AwaitState(stateMachine, state string, timeout time.Duration) bool {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		errors.Report(&errors.RiveError{
			Op:           "controller.AwaitState",
			Kind:         errors.KindDetached,
			StateMachine: stateMachine,
			Err:          errDetached,
		})
		return false
	}
	c.mu.Unlock()

	if timeout <= 0 {
		timeout = c.lookupTimeout()
	}

	matched := make(chan struct{})
	var once sync.Once
	waiter := OnStateChange(func(machine, name string) {
		if machine == stateMachine && name == state {
			once.Do(func() { close(matched) })
		}
	})
	c.RegisterListener(waiter)
	defer c.UnregisterListener(waiter)

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-matched:
		return true
	case <-timer.C:
		return false
	}
}

// --- internal ---

func (c *Controller) ensureSink() *engineSink {
	if c.sink == nil {
		c.sink = &engineSink{c: c}
	}
	return c.sink
}

func (c *Controller) pollInterval() time.Duration {
	if c.PollInterval > 0 {
		return c.PollInterval
	}
	return DefaultPollInterval
}

func (c *Controller) viewTimeout() time.Duration {
	if c.ViewTimeout > 0 {
		return c.ViewTimeout
	}
	return DefaultViewTimeout
}

func (c *Controller) lookupTimeout() time.Duration {
	if c.LookupTimeout > 0 {
		return c.LookupTimeout
	}
	return DefaultLookupTimeout
}

// awaitView blocks until a view is attached, bounded by ViewTimeout. It
// returns nil, after reporting a diagnostic, when the controller is detached
// (immediately, without waiting) or when no view appears in time.
func (c *Controller) awaitView(op string) View {
	deadline := time.Now().Add(c.viewTimeout())
	for {
		c.mu.Lock()
		if c.detached {
			c.mu.Unlock()
			errors.Report(&errors.RiveError{Op: op, Kind: errors.KindDetached, Err: errDetached})
			return nil
		}
		if c.view != nil {
			v := c.view
			c.mu.Unlock()
			return v
		}
		if c.viewReady == nil {
			c.viewReady = make(chan struct{})
		}
		ready := c.viewReady
		c.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			errors.Report(&errors.RiveError{Op: op, Kind: errors.KindViewUnavailable, Err: errNoView})
			return nil
		}
		timer := time.NewTimer(remaining)
		select {
		case <-ready:
			timer.Stop()
			// Re-check: the wakeup may be an attach or a detach.
		case <-timer.C:
			errors.Report(&errors.RiveError{Op: op, Kind: errors.KindViewUnavailable, Err: errNoView})
			return nil
		}
	}
}

// resolveStateMachine polls the attached view's state-machine list at
// PollInterval until the named machine appears or LookupTimeout elapses.
func (c *Controller) resolveStateMachine(op, name string) (StateMachine, bool) {
	v := c.awaitView(op)
	if v == nil {
		return nil, false
	}

	deadline := time.Now().Add(c.lookupTimeout())
	ticker := time.NewTicker(c.pollInterval())
	defer ticker.Stop()
	for {
		for _, sm := range v.StateMachines() {
			if sm.Name() == name {
				return sm, true
			}
		}
		if time.Now().After(deadline) {
			errors.Report(&errors.RiveError{
				Op:           op,
				Kind:         errors.KindStateMachineNotFound,
				StateMachine: name,
				Err:          errMachineNotFound,
			})
			return nil, false
		}
		<-ticker.C

		// The view may have been replaced or detached while polling.
		c.mu.Lock()
		v = c.view
		detached := c.detached
		c.mu.Unlock()
		if v == nil {
			kind := errors.KindViewUnavailable
			err := errNoView
			if detached {
				kind = errors.KindDetached
				err = errDetached
			}
			errors.Report(&errors.RiveError{Op: op, Kind: kind, StateMachine: name, Err: err})
			return nil, false
		}
	}
}

// resolveInput resolves the named state machine and verifies that the named
// input exists and has the requested kind.
func (c *Controller) resolveInput(op, stateMachine, input string, kind InputKind) (Input, bool) {
	sm, ok := c.resolveStateMachine(op, stateMachine)
	if !ok {
		return nil, false
	}
	in, ok := sm.Input(input)
	if !ok {
		errors.Report(&errors.RiveError{
			Op:           op,
			Kind:         errors.KindInputNotFound,
			StateMachine: stateMachine,
			Input:        input,
			Err:          errInputNotFound,
		})
		return nil, false
	}
	if in.Kind() != kind {
		errors.Report(&errors.RiveError{
			Op:           op,
			Kind:         errors.KindInputKindMismatch,
			StateMachine: stateMachine,
			Input:        input,
			Err:          errInputKind,
		})
		return nil, false
	}
	return in, true
}

// broadcast delivers one event to every registered listener, in registration
// order, synchronously on the engine's callback path. The listener slice is
// snapshotted so listeners may register or unregister during delivery.
func (c *Controller) broadcast(deliver func(EventListener)) {
	c.mu.Lock()
	snapshot := make([]EventListener, len(c.listeners))
	copy(snapshot, c.listeners)
	c.mu.Unlock()

	for _, l := range snapshot {
		deliver(l)
	}
}

// engineSink is the controller's registration on the attached view's single
// event sink. It fans each engine event out to the registered listeners.
type engineSink struct {
	c *Controller
}

func (s *engineSink) OnAdvance(elapsed time.Duration) {
	s.c.broadcast(func(l EventListener) { l.OnAdvance(elapsed) })
}

func (s *engineSink) OnLoop(animation string, loop Loop) {
	s.c.broadcast(func(l EventListener) { l.OnLoop(animation, loop) })
}

func (s *engineSink) OnPlay(name string) {
	s.c.broadcast(func(l EventListener) { l.OnPlay(name) })
}

func (s *engineSink) OnPause(name string) {
	s.c.broadcast(func(l EventListener) { l.OnPause(name) })
}

func (s *engineSink) OnStop(name string) {
	s.c.broadcast(func(l EventListener) { l.OnStop(name) })
}

func (s *engineSink) OnStateChanged(stateMachine, state string) {
	s.c.broadcast(func(l EventListener) { l.OnStateChanged(stateMachine, state) })
}

func (s *engineSink) OnEvent(name string, properties map[string]any) {
	s.c.broadcast(func(l EventListener) { l.OnEvent(name, properties) })
}
