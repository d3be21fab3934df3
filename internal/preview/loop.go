package preview

import "github.com/Faultbox/juncci-splash/internal/engine/events"

// RenderLoop runs a callback on every display refresh until stopped.
type RenderLoop struct {
	running bool
	sub     events.Subscription
}

func startRenderLoop(host Host, tick func()) *RenderLoop {
	l := &RenderLoop{running: true}
	l.sub = host.OnFrame(func() {
		if l.running {
			tick()
		}
	})
	return l
}

// Running reports whether the loop still draws.
func (l *RenderLoop) Running() bool {
	return l.running
}

// Stop cancels the loop. A frame already dispatched when Stop runs draws
// nothing. Calling it more than once is a no-op.
func (l *RenderLoop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.sub.Disconnect()
}
