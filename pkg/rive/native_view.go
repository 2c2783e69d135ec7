package rive

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/rive/pkg/errors"
	"github.com/go-drift/rive/pkg/platform"
)

// ViewType is the platform view type identifier for native Rive views.
const ViewType = "rive_animation"

// NativeView is a [View] backed by a native Rive runtime view over the
// platform channel. The host embeds it like any other platform view; a
// [Controller] drives it through the View interface.
//
// State-machine and playback queries go to native synchronously; events
// raised by the runtime (state transitions, loops, playback changes) arrive
// on the channel and are forwarded to the registered sink on the UI thread
// via [platform.Dispatch].
type NativeView struct {
	platform.ViewBase
	spec AnimationSpec

	mu   sync.RWMutex
	sink EventListener
}

// NewNativeView creates a native Rive view for the given spec. The native
// runtime begins loading the resource immediately; state machines appear in
// StateMachines as they finish loading, without notification.
func NewNativeView(spec AnimationSpec) (*NativeView, error) {
	view, err := platform.GetPlatformViewRegistry().Create(ViewType, spec.params())
	if err != nil {
		return nil, fmt.Errorf("create native rive view: %w", err)
	}
	nv, ok := view.(*NativeView)
	if !ok {
		return nil, fmt.Errorf("unexpected view type: %T", view)
	}
	return nv, nil
}

// Create implements platform.PlatformView. The native runtime loads the
// resource upon creation via the registry; the only Go-side work is the
// runtime version gate.
func (v *NativeView) Create(params map[string]any) error {
	if version, err := RuntimeVersion(); err == nil {
		if err := CheckRuntimeVersion(version); err != nil {
			errors.Report(&errors.RiveError{
				Op:   "rive.NewNativeView",
				Kind: errors.KindPlatform,
				Err:  err,
			})
		}
	}
	return nil
}

// Dispose implements platform.PlatformView. Native cleanup is handled by the
// registry's Dispose, which sends the dispose command to the runtime.
func (v *NativeView) Dispose() {
	v.ClearEventSink()
}

// Spec returns the animation description this view was created with.
func (v *NativeView) Spec() AnimationSpec { return v.spec }

// Release disposes the native view and its runtime resources. After release
// the view must not be reused. Release is idempotent.
func (v *NativeView) Release() {
	platform.GetPlatformViewRegistry().Dispose(v.ViewID())
}

// StateMachines implements View by querying the runtime's current list.
func (v *NativeView) StateMachines() []StateMachine {
	res, err := v.invoke("getStateMachines", nil)
	if err != nil {
		v.reportPlatform("rive.NativeView.StateMachines", err)
		return nil
	}
	return v.parseStateMachines(res)
}

// IsPlaying implements View.
func (v *NativeView) IsPlaying() bool {
	res, err := v.invoke("isPlaying", nil)
	if err != nil {
		v.reportPlatform("rive.NativeView.IsPlaying", err)
		return false
	}
	playing, _ := res.(bool)
	return playing
}

// Play implements View. The runtime resumes the named state machine from
// its current state; it does not settle back to the initial state.
func (v *NativeView) Play(stateMachine string) {
	_, err := v.invoke("play", map[string]any{"stateMachine": stateMachine})
	if err != nil {
		v.reportPlatform("rive.NativeView.Play", err)
	}
}

// SetEventSink implements View, replacing any previous registration.
func (v *NativeView) SetEventSink(listener EventListener) {
	v.mu.Lock()
	v.sink = listener
	v.mu.Unlock()
}

// ClearEventSink implements View.
func (v *NativeView) ClearEventSink() {
	v.mu.Lock()
	v.sink = nil
	v.mu.Unlock()
}

func (v *NativeView) currentSink() EventListener {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sink
}

// HandleViewEvent implements platform.ViewEventSink, routing runtime events
// to the registered sink on the UI thread.
func (v *NativeView) HandleViewEvent(event string, args map[string]any) {
	sink := v.currentSink()
	if sink == nil {
		return
	}

	switch event {
	case "advance":
		elapsedMs, _ := asFloat64(args["elapsedMs"])
		elapsed := time.Duration(elapsedMs * float64(time.Millisecond))
		platform.Dispatch(func() { sink.OnAdvance(elapsed) })

	case "loop":
		animation, _ := asString(args["animation"])
		loopName, _ := asString(args["loop"])
		loop, err := ParseLoop(loopName)
		if err != nil {
			loop = LoopAuto
		}
		platform.Dispatch(func() { sink.OnLoop(animation, loop) })

	case "play":
		name, _ := asString(args["animation"])
		platform.Dispatch(func() { sink.OnPlay(name) })

	case "pause":
		name, _ := asString(args["animation"])
		platform.Dispatch(func() { sink.OnPause(name) })

	case "stop":
		name, _ := asString(args["animation"])
		platform.Dispatch(func() { sink.OnStop(name) })

	case "stateChanged":
		machine, _ := asString(args["stateMachine"])
		state, _ := asString(args["state"])
		platform.Dispatch(func() { sink.OnStateChanged(machine, state) })

	case "riveEvent":
		name, _ := asString(args["name"])
		properties, _ := args["properties"].(map[string]any)
		platform.Dispatch(func() { sink.OnEvent(name, properties) })
	}
}

func (v *NativeView) invoke(method string, args map[string]any) (any, error) {
	return platform.GetPlatformViewRegistry().InvokeViewMethod(v.ViewID(), method, args)
}

func (v *NativeView) reportPlatform(op string, err error) {
	errors.Report(&errors.RiveError{Op: op, Kind: errors.KindPlatform, Err: err})
}

// parseStateMachines decodes the runtime's state-machine descriptors:
// a list of {name, inputs: [{name, kind}]} objects.
func (v *NativeView) parseStateMachines(res any) []StateMachine {
	items, ok := res.([]any)
	if !ok {
		return nil
	}
	machines := make([]StateMachine, 0, len(items))
	for _, item := range items {
		desc, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, ok := asString(desc["name"])
		if !ok {
			continue
		}
		sm := &nativeStateMachine{view: v, name: name}
		if rawInputs, ok := desc["inputs"].([]any); ok {
			for _, rawInput := range rawInputs {
				in, ok := rawInput.(map[string]any)
				if !ok {
					continue
				}
				inputName, ok := asString(in["name"])
				if !ok {
					continue
				}
				kindName, _ := asString(in["kind"])
				kind, err := ParseInputKind(kindName)
				if err != nil {
					continue
				}
				sm.inputs = append(sm.inputs, nativeInput{
					view:    v,
					machine: name,
					name:    inputName,
					kind:    kind,
				})
			}
		}
		machines = append(machines, sm)
	}
	return machines
}

// nativeStateMachine is a snapshot descriptor of one loaded state machine.
// Input operations are dispatched to the runtime by name.
type nativeStateMachine struct {
	view   *NativeView
	name   string
	inputs []nativeInput
}

func (m *nativeStateMachine) Name() string { return m.name }

func (m *nativeStateMachine) InputNames() []string {
	names := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		names[i] = in.name
	}
	return names
}

func (m *nativeStateMachine) Input(name string) (Input, bool) {
	for i := range m.inputs {
		if m.inputs[i].name == name {
			return &m.inputs[i], true
		}
	}
	return nil, false
}

// nativeInput is a typed handle to one runtime input.
type nativeInput struct {
	view    *NativeView
	machine string
	name    string
	kind    InputKind
}

func (in *nativeInput) Name() string    { return in.name }
func (in *nativeInput) Kind() InputKind { return in.kind }

func (in *nativeInput) Fire() {
	if in.kind != InputTrigger {
		return
	}
	in.set("fireTrigger", nil)
}

func (in *nativeInput) SetBool(value bool) {
	if in.kind != InputBoolean {
		return
	}
	in.set("setBool", map[string]any{"value": value})
}

func (in *nativeInput) SetNumber(value float64) {
	if in.kind != InputNumber {
		return
	}
	in.set("setNumber", map[string]any{"value": value})
}

func (in *nativeInput) set(method string, extra map[string]any) {
	args := map[string]any{
		"stateMachine": in.machine,
		"input":        in.name,
	}
	for k, val := range extra {
		args[k] = val
	}
	if _, err := in.view.invoke(method, args); err != nil {
		in.view.reportPlatform("rive.NativeView."+method, err)
	}
}

// nativeViewFactory creates Rive platform views.
type nativeViewFactory struct{}

func (nativeViewFactory) ViewType() string { return ViewType }

func (nativeViewFactory) Create(viewID int64, params map[string]any) (platform.PlatformView, error) {
	v := &NativeView{
		ViewBase: platform.NewViewBase(viewID, ViewType),
		spec:     specFromParams(params),
	}
	return v, nil
}

// specFromParams reverses AnimationSpec.params for factory-created views.
func specFromParams(params map[string]any) AnimationSpec {
	spec := AnimationSpec{}
	spec.Resource, _ = asString(params["resource"])
	spec.Artboard, _ = asString(params["artboard"])
	spec.Animation, _ = asString(params["animation"])
	spec.StateMachine, _ = asString(params["stateMachine"])
	spec.Autoplay, _ = params["autoplay"].(bool)
	if s, ok := asString(params["fit"]); ok {
		spec.Fit, _ = ParseFit(s)
	}
	if s, ok := asString(params["alignment"]); ok {
		spec.Alignment, _ = ParseAlignment(s)
	}
	if s, ok := asString(params["loop"]); ok {
		spec.Loop, _ = ParseLoop(s)
	}
	return spec
}

func init() {
	platform.GetPlatformViewRegistry().RegisterFactory(nativeViewFactory{})
}

// asString converts a value to string, returning false for non-strings.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asFloat64 converts decoded JSON numbers to float64.
func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
