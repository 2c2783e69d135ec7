package platform

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/go-drift/rive/pkg/graphics"
)

// --- Test helpers ---

// testBridge captures native method invocations for assertions.
type testBridge struct {
	mu    sync.Mutex
	calls []testBridgeCall
}

type testBridgeCall struct {
	channel string
	method  string
	args    any // JSON-decoded
}

func (b *testBridge) InvokeMethod(channel, method string, argsData []byte) ([]byte, error) {
	var args any
	if len(argsData) > 0 {
		json.Unmarshal(argsData, &args)
	}
	b.mu.Lock()
	b.calls = append(b.calls, testBridgeCall{channel: channel, method: method, args: args})
	b.mu.Unlock()
	return DefaultCodec.Encode(nil)
}

func (b *testBridge) callsFor(method string) []testBridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var result []testBridgeCall
	for _, c := range b.calls {
		if c.method == method {
			result = append(result, c)
		}
	}
	return result
}

// stubView is a minimal PlatformView recording received events.
type stubView struct {
	ViewBase
	events []string
}

func (v *stubView) Create(params map[string]any) error { return nil }
func (v *stubView) Dispose()                           {}

func (v *stubView) HandleViewEvent(event string, args map[string]any) {
	v.events = append(v.events, event)
}

type stubViewFactory struct{}

func (stubViewFactory) ViewType() string { return "stub" }
func (stubViewFactory) Create(viewID int64, params map[string]any) (PlatformView, error) {
	return &stubView{ViewBase: NewViewBase(viewID, "stub")}, nil
}

func setupTestBridge(t *testing.T) *testBridge {
	t.Helper()
	bridge := &testBridge{}
	SetupTestBridge(t.Cleanup)
	SetNativeBridge(bridge)
	return bridge
}

// --- Tests ---

func TestRegistryCreateAndDispose(t *testing.T) {
	bridge := setupTestBridge(t)
	r := GetPlatformViewRegistry()
	r.RegisterFactory(stubViewFactory{})

	view, err := r.Create("stub", map[string]any{"resource": "hero.riv"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.ViewID() == 0 {
		t.Error("expected non-zero view ID")
	}
	if got := r.GetView(view.ViewID()); got != view {
		t.Error("GetView should return the created view")
	}

	creates := bridge.callsFor("create")
	if len(creates) != 1 {
		t.Fatalf("expected 1 create call to native, got %d", len(creates))
	}

	r.Dispose(view.ViewID())
	if r.GetView(view.ViewID()) != nil {
		t.Error("view should be removed after Dispose")
	}
	if len(bridge.callsFor("dispose")) != 1 {
		t.Error("expected native dispose notification")
	}
}

func TestRegistryCreateUnknownType(t *testing.T) {
	setupTestBridge(t)
	r := GetPlatformViewRegistry()

	if _, err := r.Create("no_such_type", nil); err != ErrViewTypeNotFound {
		t.Errorf("expected ErrViewTypeNotFound, got %v", err)
	}
}

func TestInvokeViewMethodDoesNotMutateArgs(t *testing.T) {
	setupTestBridge(t)
	r := GetPlatformViewRegistry()

	args := map[string]any{"input": "Flag"}
	if _, err := r.InvokeViewMethod(7, "setBool", args); err != nil {
		t.Fatalf("InvokeViewMethod: %v", err)
	}
	if len(args) != 1 {
		t.Errorf("caller args mutated: %v", args)
	}
}

func TestViewBaseGeometryReachesNative(t *testing.T) {
	bridge := setupTestBridge(t)
	r := GetPlatformViewRegistry()
	r.RegisterFactory(stubViewFactory{})

	view, err := r.Create("stub", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := view.ViewType(); got != "stub" {
		t.Errorf("ViewType() = %q, want stub", got)
	}

	view.SetOffset(graphics.Offset{X: 10, Y: 20})
	view.SetSize(graphics.Size{Width: 320, Height: 180})
	view.SetVisible(false)

	geoms := bridge.callsFor("setGeometry")
	if len(geoms) != 2 {
		t.Fatalf("expected 2 setGeometry calls, got %d", len(geoms))
	}
	// The size update must carry the previously set offset.
	last, _ := geoms[1].args.(map[string]any)
	if last["x"] != 10.0 || last["y"] != 20.0 || last["width"] != 320.0 || last["height"] != 180.0 {
		t.Errorf("setGeometry args = %v", last)
	}

	visibles := bridge.callsFor("setVisible")
	if len(visibles) != 1 {
		t.Fatalf("expected 1 setVisible call, got %d", len(visibles))
	}
	if args, _ := visibles[0].args.(map[string]any); args["visible"] != false {
		t.Errorf("setVisible args = %v", visibles[0].args)
	}
}

func TestViewEventRouting(t *testing.T) {
	setupTestBridge(t)
	r := GetPlatformViewRegistry()
	r.RegisterFactory(stubViewFactory{})

	view, err := r.Create("stub", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stub := view.(*stubView)

	data, err := DefaultCodec.Encode(map[string]any{
		"viewId": view.ViewID(),
		"event":  "stateChanged",
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := HandleMethodCall("rive/views", "viewEvent", data); err != nil {
		t.Fatalf("HandleMethodCall: %v", err)
	}

	if len(stub.events) != 1 || stub.events[0] != "stateChanged" {
		t.Errorf("expected one stateChanged event, got %v", stub.events)
	}
}

func TestViewEventForUnknownViewReturnsError(t *testing.T) {
	setupTestBridge(t)

	data, _ := DefaultCodec.Encode(map[string]any{
		"viewId": int64(999999),
		"event":  "stateChanged",
	})
	if _, err := HandleMethodCall("rive/views", "viewEvent", data); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestInvokeWithoutBridge(t *testing.T) {
	SetupTestBridge(t.Cleanup)
	SetNativeBridge(nil)

	ch := NewMethodChannel("rive/test_bridgeless")
	if _, err := ch.Invoke("noop", nil); err != ErrPlatformUnavailable {
		t.Errorf("expected ErrPlatformUnavailable, got %v", err)
	}
}

func TestHandleMethodCallUnknownChannel(t *testing.T) {
	setupTestBridge(t)

	if _, err := HandleMethodCall("rive/does_not_exist", "anything", nil); err != ErrChannelNotFound {
		t.Errorf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestDispatchWithoutRegistration(t *testing.T) {
	RegisterDispatch(nil)
	if Dispatch(func() {}) {
		t.Error("Dispatch should return false with no dispatch function")
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	SetupTestBridge(t.Cleanup)

	// Must not propagate the panic into the caller.
	if !Dispatch(func() { panic("boom") }) {
		t.Error("Dispatch should have scheduled the callback")
	}
}
