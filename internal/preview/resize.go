package preview

import (
	"go.uber.org/zap"

	"github.com/Faultbox/juncci-splash/internal/engine/camera"
	"github.com/Faultbox/juncci-splash/internal/engine/events"
)

// resizeCoordinator keeps the renderer's buffer and the camera's aspect in
// step with the host's content size.
type resizeCoordinator struct {
	renderer Renderer
	camera   *camera.Perspective
	log      *zap.Logger

	sub    events.Subscription
	active bool
}

func startResize(host Host, r Renderer, cam *camera.Perspective, log *zap.Logger) *resizeCoordinator {
	c := &resizeCoordinator{renderer: r, camera: cam, log: log, active: true}
	c.sub = host.ObserveResize(c.apply)
	return c
}

// apply ignores reports with a zero dimension so a hidden host keeps the
// last valid size.
func (c *resizeCoordinator) apply(width, height int) {
	if !c.active || width <= 0 || height <= 0 {
		return
	}
	c.renderer.SetSize(width, height)
	c.camera.SetAspect(float32(width) / float32(height))
	c.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Stop disconnects from the host. Calling it more than once is a no-op.
func (c *resizeCoordinator) Stop() {
	if !c.active {
		return
	}
	c.active = false
	c.sub.Disconnect()
}
