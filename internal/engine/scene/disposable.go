package scene

import "github.com/Faultbox/juncci-splash/internal/engine/events"

// disposable records the release of a scene object and notifies GPU-side
// owners exactly once.
type disposable struct {
	disposed  bool
	onDispose events.Dispatcher[struct{}]
}

// OnDispose registers fn to run when the object is released.
func (d *disposable) OnDispose(fn func()) events.Subscription {
	return d.onDispose.Subscribe(func(struct{}) { fn() })
}

// Disposed reports whether the object has been released.
func (d *disposable) Disposed() bool {
	return d.disposed
}

// release marks the object released and reports whether this call did it.
func (d *disposable) release() bool {
	if d.disposed {
		return false
	}
	d.disposed = true
	d.onDispose.Emit(struct{}{})
	return true
}
