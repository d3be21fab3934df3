package camera

import (
	gomath "math"

	"github.com/Faultbox/juncci-splash/internal/engine/events"
	"github.com/Faultbox/juncci-splash/pkg/math"
)

// PointerSource delivers pointer events for the drawing surface.
type PointerSource interface {
	ObservePointer(fn func(events.Pointer)) events.Subscription
}

// OrbitControls orbits a camera around a target point.
//
// Pointer drags and wheel steps accumulate into a pending delta. With damping
// enabled each Update applies DampingFactor of that delta and decays the
// rest, so motion eases in and out instead of snapping.
type OrbitControls struct {
	camera *Perspective

	// Target is the orbit center.
	Target math.Vec3

	// AutoRotate spins around the target while no drag is in progress.
	// AutoRotateSpeed 2 is one revolution per 30 seconds at 60 updates/s.
	AutoRotate      bool
	AutoRotateSpeed float32

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32

	MinDistance float32
	MaxDistance float32

	// Polar angle limits in radians, measured from +Y.
	MinPolarAngle float32
	MaxPolarAngle float32

	pending  math.Spherical // Radius unused; scale carries zoom
	scale    float32
	dragging bool
	lastX    float32
	lastY    float32

	sub events.Subscription
}

// NewOrbitControls attaches controls to cam and subscribes to pointer input
// from src. src may be nil for controls driven only by Update.
func NewOrbitControls(cam *Perspective, src PointerSource) *OrbitControls {
	c := &OrbitControls{
		camera:          cam,
		AutoRotateSpeed: 2,
		DampingFactor:   0.05,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		MinDistance:     0,
		MaxDistance:     float32(gomath.Inf(1)),
		MinPolarAngle:   0,
		MaxPolarAngle:   gomath.Pi,
		scale:           1,
	}
	if src != nil {
		c.sub = src.ObservePointer(c.handlePointer)
	}
	return c
}

// Dragging reports whether a pointer drag is in progress.
func (c *OrbitControls) Dragging() bool {
	return c.dragging
}

// Update advances the controller one step and moves the camera.
// It returns true if the camera moved.
func (c *OrbitControls) Update() bool {
	cam := c.camera
	before := cam.Position

	s := math.SphericalFromVec3(cam.Position.Sub(c.Target))

	if c.AutoRotate && !c.dragging {
		c.rotateLeft(c.autoRotationAngle())
	}

	if c.EnableDamping {
		s.Theta += c.pending.Theta * c.DampingFactor
		s.Phi += c.pending.Phi * c.DampingFactor
	} else {
		s.Theta += c.pending.Theta
		s.Phi += c.pending.Phi
	}

	s.Phi = math.Clamp(s.Phi, c.MinPolarAngle, c.MaxPolarAngle)
	s = s.MakeSafe()
	s.Radius = math.Clamp(s.Radius*c.scale, c.MinDistance, c.MaxDistance)

	cam.Position = c.Target.Add(s.Vec3())
	cam.LookAt(c.Target)

	if c.EnableDamping {
		c.pending.Theta *= 1 - c.DampingFactor
		c.pending.Phi *= 1 - c.DampingFactor
	} else {
		c.pending = math.Spherical{}
	}
	c.scale = 1

	return cam.Position.Sub(before).Length() > 1e-6
}

// Dispose detaches the controls from their pointer source.
// Calling it more than once is a no-op.
func (c *OrbitControls) Dispose() {
	if c.sub == nil {
		return
	}
	c.sub.Disconnect()
	c.sub = nil
	c.dragging = false
}

func (c *OrbitControls) handlePointer(e events.Pointer) {
	switch e.Kind {
	case events.PointerDown:
		c.dragging = true
		c.lastX, c.lastY = e.X, e.Y

	case events.PointerMove:
		if !c.dragging {
			return
		}
		dx, dy := e.X-c.lastX, e.Y-c.lastY
		c.lastX, c.lastY = e.X, e.Y

		height := float32(e.Height)
		if height <= 0 {
			return
		}
		c.rotateLeft(2 * gomath.Pi * dx * c.RotateSpeed / height)
		c.rotateUp(2 * gomath.Pi * dy * c.RotateSpeed / height)

	case events.PointerUp:
		c.dragging = false

	case events.PointerWheel:
		step := float32(gomath.Pow(0.95, float64(c.ZoomSpeed)))
		if e.WheelY > 0 {
			c.scale *= step
		} else if e.WheelY < 0 {
			c.scale /= step
		}
	}
}

func (c *OrbitControls) autoRotationAngle() float32 {
	return 2 * gomath.Pi / 60 / 60 * c.AutoRotateSpeed
}

func (c *OrbitControls) rotateLeft(angle float32) {
	c.pending.Theta -= angle
}

func (c *OrbitControls) rotateUp(angle float32) {
	c.pending.Phi -= angle
}
