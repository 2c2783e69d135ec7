package platform

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/rive/pkg/errors"
	"github.com/go-drift/rive/pkg/graphics"
)

// PlatformView represents a native view embedded in the host UI.
type PlatformView interface {
	// ViewID returns the unique identifier for this view.
	ViewID() int64

	// ViewType returns the type identifier for this view (e.g., "rive_animation").
	ViewType() string

	// Create initializes the native view with given parameters.
	Create(params map[string]any) error

	// Dispose cleans up the native view.
	Dispose()

	// SetSize updates the view size in logical pixels.
	SetSize(size graphics.Size)

	// SetOffset updates the view position in logical pixels.
	SetOffset(offset graphics.Offset)

	// SetVisible shows or hides the native view.
	SetVisible(visible bool)
}

// PlatformViewFactory creates platform views of a specific type.
type PlatformViewFactory interface {
	// Create creates a new platform view instance.
	Create(viewID int64, params map[string]any) (PlatformView, error)

	// ViewType returns the view type this factory creates.
	ViewType() string
}

// ViewEventSink is implemented by platform views that receive events pushed
// from their native counterpart (state transitions, playback changes, ...).
type ViewEventSink interface {
	// HandleViewEvent processes one event raised by the native view.
	// Called on the channel thread; implementations marshal to the UI
	// thread via Dispatch as needed.
	HandleViewEvent(event string, args map[string]any)
}

// PlatformViewRegistry manages platform view types and instances.
type PlatformViewRegistry struct {
	factories map[string]PlatformViewFactory
	views     map[int64]PlatformView
	nextID    atomic.Int64
	mu        sync.RWMutex
	channel   *MethodChannel
}

var (
	platformViewRegistry     *PlatformViewRegistry
	platformViewRegistryOnce sync.Once
)

// GetPlatformViewRegistry returns the global platform view registry.
func GetPlatformViewRegistry() *PlatformViewRegistry {
	platformViewRegistryOnce.Do(func() {
		platformViewRegistry = newPlatformViewRegistry()
	})
	return platformViewRegistry
}

func newPlatformViewRegistry() *PlatformViewRegistry {
	r := &PlatformViewRegistry{
		factories: make(map[string]PlatformViewFactory),
		views:     make(map[int64]PlatformView),
		channel:   NewMethodChannel("rive/views"),
	}

	// Handle incoming calls from native
	r.channel.SetHandler(r.handleMethodCall)

	return r
}

// RegisterFactory registers a factory for a platform view type.
func (r *PlatformViewRegistry) RegisterFactory(factory PlatformViewFactory) {
	r.mu.Lock()
	r.factories[factory.ViewType()] = factory
	r.mu.Unlock()
}

// Create creates a new platform view of the given type.
func (r *PlatformViewRegistry) Create(viewType string, params map[string]any) (PlatformView, error) {
	r.mu.RLock()
	factory, ok := r.factories[viewType]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrViewTypeNotFound
	}

	viewID := r.nextID.Add(1)

	view, err := factory.Create(viewID, params)
	if err != nil {
		return nil, err
	}
	if err := view.Create(params); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.views[viewID] = view
	r.mu.Unlock()

	// Notify native to create the view
	_, err = r.channel.Invoke("create", map[string]any{
		"viewId":   viewID,
		"viewType": viewType,
		"params":   params,
	})
	if err != nil {
		r.mu.Lock()
		delete(r.views, viewID)
		r.mu.Unlock()
		return nil, err
	}

	return view, nil
}

// Dispose destroys a platform view.
func (r *PlatformViewRegistry) Dispose(viewID int64) {
	r.mu.Lock()
	view, ok := r.views[viewID]
	if ok {
		delete(r.views, viewID)
	}
	r.mu.Unlock()

	if ok {
		view.Dispose()
		// Notify native to destroy the view
		r.channel.Invoke("dispose", map[string]any{
			"viewId": viewID,
		})
	}
}

// GetView returns a platform view by ID.
func (r *PlatformViewRegistry) GetView(viewID int64) PlatformView {
	r.mu.RLock()
	view := r.views[viewID]
	r.mu.RUnlock()
	return view
}

// UpdateViewGeometry notifies native of a view's position and size change.
func (r *PlatformViewRegistry) UpdateViewGeometry(viewID int64, offset graphics.Offset, size graphics.Size) error {
	_, err := r.channel.Invoke("setGeometry", map[string]any{
		"viewId": viewID,
		"x":      offset.X,
		"y":      offset.Y,
		"width":  size.Width,
		"height": size.Height,
	})
	return err
}

// SetViewVisible notifies native to show or hide a view.
func (r *PlatformViewRegistry) SetViewVisible(viewID int64, visible bool) error {
	_, err := r.channel.Invoke("setVisible", map[string]any{
		"viewId":  viewID,
		"visible": visible,
	})
	return err
}

// InvokeViewMethod invokes a method on a specific platform view.
func (r *PlatformViewRegistry) InvokeViewMethod(viewID int64, method string, args map[string]any) (any, error) {
	// Clone the args map to avoid mutating the caller's map
	size := 2
	if args != nil {
		size += len(args)
	}
	invokeArgs := make(map[string]any, size)
	for k, v := range args { // safe: range over nil map is no-op
		invokeArgs[k] = v
	}
	invokeArgs["viewId"] = viewID
	invokeArgs["method"] = method
	return r.channel.Invoke("invokeViewMethod", invokeArgs)
}

// handleMethodCall processes incoming method calls from native code.
func (r *PlatformViewRegistry) handleMethodCall(method string, args any) (any, error) {
	switch method {
	case "onViewCreated":
		// Native has finished creating the view
		return nil, nil

	case "onViewDisposed":
		// Native has finished disposing the view
		return nil, nil

	case "viewEvent":
		params, ok := args.(map[string]any)
		if !ok {
			return nil, ErrInvalidArguments
		}
		return nil, r.routeViewEvent(params)

	default:
		return nil, ErrMethodNotFound
	}
}

// routeViewEvent delivers a native-raised event to the target view's sink.
func (r *PlatformViewRegistry) routeViewEvent(params map[string]any) error {
	viewID, ok := asInt64(params["viewId"])
	if !ok {
		return ErrInvalidArguments
	}
	event, ok := params["event"].(string)
	if !ok {
		return ErrInvalidArguments
	}

	view := r.GetView(viewID)
	if view == nil {
		// The view may have been disposed while the event was in flight.
		errors.Report(&errors.RiveError{
			Op:   "platform.routeViewEvent",
			Kind: errors.KindPlatform,
			Err:  ErrViewNotFound,
		})
		return ErrViewNotFound
	}

	sink, ok := view.(ViewEventSink)
	if !ok {
		return nil
	}
	sink.HandleViewEvent(event, params)
	return nil
}

// resetForTest drops all view instances and factories. Test use only.
func (r *PlatformViewRegistry) resetForTest() {
	r.mu.Lock()
	r.views = make(map[int64]PlatformView)
	r.mu.Unlock()
}

// ViewBase provides the identity and geometry half of PlatformView for
// embedding in concrete view types. Geometry mutations are forwarded to
// native through the registry; the cached values let a size change resend
// the current offset and vice versa. Like the views themselves, ViewBase is
// driven from the UI thread and is not synchronized.
type ViewBase struct {
	viewID   int64
	viewType string
	offset   graphics.Offset
	size     graphics.Size
	visible  bool
}

// NewViewBase creates the embeddable base for a view with the given identity.
func NewViewBase(viewID int64, viewType string) ViewBase {
	return ViewBase{viewID: viewID, viewType: viewType}
}

func (v *ViewBase) ViewID() int64 {
	return v.viewID
}

func (v *ViewBase) ViewType() string {
	return v.viewType
}

func (v *ViewBase) SetSize(size graphics.Size) {
	v.size = size
	GetPlatformViewRegistry().UpdateViewGeometry(v.viewID, v.offset, v.size)
}

func (v *ViewBase) SetOffset(offset graphics.Offset) {
	v.offset = offset
	GetPlatformViewRegistry().UpdateViewGeometry(v.viewID, v.offset, v.size)
}

func (v *ViewBase) SetVisible(visible bool) {
	v.visible = visible
	GetPlatformViewRegistry().SetViewVisible(v.viewID, visible)
}
