// Package events provides listener registration for host-driven callbacks.
//
// Every registration returns its own Subscription handle, so two viewers
// observing the same host never share a listener slot.
package events

// Subscription identifies a registered listener.
type Subscription interface {
	// Disconnect removes the listener. Calling it more than once is a no-op.
	Disconnect()
}

// Dispatcher fans a value out to its registered listeners.
// The zero value is ready to use.
type Dispatcher[T any] struct {
	listeners []*listener[T]
}

type listener[T any] struct {
	fn     func(T)
	owner  *Dispatcher[T]
	active bool
}

// Subscribe registers fn and returns its handle.
func (d *Dispatcher[T]) Subscribe(fn func(T)) Subscription {
	l := &listener[T]{fn: fn, owner: d, active: true}
	d.listeners = append(d.listeners, l)
	return l
}

// Emit calls every active listener with v.
// A listener disconnected while Emit is running is not called afterwards.
func (d *Dispatcher[T]) Emit(v T) {
	snapshot := make([]*listener[T], len(d.listeners))
	copy(snapshot, d.listeners)

	for _, l := range snapshot {
		if l.active {
			l.fn(v)
		}
	}
}

// Len returns the number of active listeners.
func (d *Dispatcher[T]) Len() int {
	return len(d.listeners)
}

// Disconnect implements Subscription.
func (l *listener[T]) Disconnect() {
	if !l.active {
		return
	}
	l.active = false

	d := l.owner
	for i, other := range d.listeners {
		if other == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
	l.owner = nil
	l.fn = nil
}
