package platform

import (
	"sync"

	"github.com/go-drift/rive/pkg/errors"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on
// the UI thread. This should be called once by the embedding host during
// initialization.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread. Panics inside the
// callback are recovered and reported, never propagated into the host's
// event loop. Returns true if the callback was successfully scheduled, false
// if no dispatch function is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(func() {
		defer errors.Recover("platform.Dispatch")
		callback()
	})
	return true
}
