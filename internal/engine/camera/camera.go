// Package camera provides the perspective camera and the damped orbit
// controller used by the preview viewer.
package camera

import (
	"github.com/Faultbox/juncci-splash/pkg/math"
)

// Perspective is a perspective-projection camera looking at a target.
type Perspective struct {
	// Vertical field of view in degrees.
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	projection      math.Mat4
	projectionDirty bool
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	return &Perspective{
		FOV:             fov,
		Aspect:          aspect,
		Near:            near,
		Far:             far,
		Target:          math.Vec3{Z: -1},
		Up:              math.Vec3{Y: 1},
		projectionDirty: true,
	}
}

// SetAspect changes the aspect ratio. The projection is rebuilt on the
// next call to ProjectionMatrix.
func (c *Perspective) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.projectionDirty = true
}

// ProjectionDirty reports whether the projection matrix is stale.
func (c *Perspective) ProjectionDirty() bool {
	return c.projectionDirty
}

// ProjectionMatrix returns the projection, rebuilding it if dirty.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	if c.projectionDirty {
		c.projection = math.Perspective(math.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
		c.projectionDirty = false
	}
	return c.projection
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target math.Vec3) {
	c.Target = target
}
