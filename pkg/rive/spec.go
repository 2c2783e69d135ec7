// Package rive bridges the Rive vector-animation engine's imperative,
// view-based API to a declarative UI host.
//
// The engine exposes native views carrying named state machines with typed
// inputs (trigger, boolean, number) and a single registrable event sink.
// The host instantiates and destroys those views on its own schedule, so
// application code cannot assume a view — or the state machines inside it —
// exists at the moment it wants to drive one.
//
// [Controller] is the synchronization point between the two models: it owns
// the reference to the currently attached view, transparently waits for the
// view and its state machines to become available, and fans every discrete
// state transition out to registered listeners without coalescing.
package rive

import "fmt"

// Fit determines how the artboard scales inside the view bounds.
type Fit int

const (
	FitContain Fit = iota
	FitCover
	FitFill
	FitFitWidth
	FitFitHeight
	FitNone
	FitScaleDown
	FitLayout
)

var fitNames = [...]string{
	"contain", "cover", "fill", "fitWidth", "fitHeight", "none", "scaleDown", "layout",
}

// String returns the wire form of the fit mode (camelCase, as sent to native).
func (f Fit) String() string {
	if f < 0 || int(f) >= len(fitNames) {
		return fmt.Sprintf("Fit(%d)", int(f))
	}
	return fitNames[f]
}

// ParseFit parses a wire-form fit mode name.
func ParseFit(s string) (Fit, error) {
	for i, name := range fitNames {
		if s == name {
			return Fit(i), nil
		}
	}
	return FitContain, fmt.Errorf("unknown fit mode %q", s)
}

// Alignment positions the artboard inside the view bounds.
type Alignment int

const (
	AlignmentCenter Alignment = iota
	AlignmentTopLeft
	AlignmentTopCenter
	AlignmentTopRight
	AlignmentCenterLeft
	AlignmentCenterRight
	AlignmentBottomLeft
	AlignmentBottomCenter
	AlignmentBottomRight
)

var alignmentNames = [...]string{
	"center", "topLeft", "topCenter", "topRight", "centerLeft",
	"centerRight", "bottomLeft", "bottomCenter", "bottomRight",
}

// String returns the wire form of the alignment (camelCase, as sent to native).
func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignmentNames) {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignmentNames[a]
}

// ParseAlignment parses a wire-form alignment name.
func ParseAlignment(s string) (Alignment, error) {
	for i, name := range alignmentNames {
		if s == name {
			return Alignment(i), nil
		}
	}
	return AlignmentCenter, fmt.Errorf("unknown alignment %q", s)
}

// Loop determines how animations repeat.
type Loop int

const (
	// LoopAuto defers to the loop mode authored into the animation.
	LoopAuto Loop = iota
	// LoopOneShot plays once and stops at the last frame.
	LoopOneShot
	// LoopForever replays from the beginning continuously.
	LoopForever
	// LoopPingPong plays forward then backward continuously.
	LoopPingPong
)

var loopNames = [...]string{"auto", "oneShot", "loop", "pingPong"}

// String returns the wire form of the loop mode (camelCase, as sent to native).
func (l Loop) String() string {
	if l < 0 || int(l) >= len(loopNames) {
		return fmt.Sprintf("Loop(%d)", int(l))
	}
	return loopNames[l]
}

// ParseLoop parses a wire-form loop mode name.
func ParseLoop(s string) (Loop, error) {
	for i, name := range loopNames {
		if s == name {
			return Loop(i), nil
		}
	}
	return LoopAuto, fmt.Errorf("unknown loop mode %q", s)
}

// AnimationSpec describes one animation slot declaratively: which resource
// to load and how to present it. It is an immutable, comparable value so a
// declarative host can use equality for change detection.
type AnimationSpec struct {
	// Resource identifies the .riv asset to load.
	Resource string

	// Artboard selects a named artboard; empty means the file's default.
	Artboard string

	// Animation selects a named linear animation; empty means none.
	Animation string

	// StateMachine selects a named state machine; empty means the artboard's
	// default.
	StateMachine string

	// Autoplay starts playback as soon as the engine has loaded the resource.
	Autoplay bool

	// Fit determines how the artboard scales inside the view bounds.
	Fit Fit

	// Alignment positions the artboard inside the view bounds.
	Alignment Alignment

	// Loop determines how animations repeat.
	Loop Loop
}

// NewAnimationSpec returns a spec for the given resource with the engine's
// defaults: autoplay enabled, contain fit, center alignment, auto loop.
func NewAnimationSpec(resource string) AnimationSpec {
	return AnimationSpec{Resource: resource, Autoplay: true}
}

// params encodes the spec as creation parameters for the native view.
func (s AnimationSpec) params() map[string]any {
	return map[string]any{
		"resource":     s.Resource,
		"artboard":     s.Artboard,
		"animation":    s.Animation,
		"stateMachine": s.StateMachine,
		"autoplay":     s.Autoplay,
		"fit":          s.Fit.String(),
		"alignment":    s.Alignment.String(),
		"loop":         s.Loop.String(),
	}
}
