// Package preview runs the splash screen's interactive 3D preview: it builds
// the scene resources, keeps them sized to the host and draws them once per
// display refresh until stopped.
package preview

import (
	"github.com/Faultbox/juncci-splash/internal/engine/camera"
	"github.com/Faultbox/juncci-splash/internal/engine/events"
	"github.com/Faultbox/juncci-splash/internal/engine/scene"
)

// SurfaceOptions configures a drawing surface.
type SurfaceOptions struct {
	Antialias bool
}

// Surface is a drawing target created by a Host.
type Surface interface {
	Destroy()
}

// Host is the container the preview draws into. All callbacks are invoked on
// the host's event thread and never overlap.
type Host interface {
	// ContentSize returns the container size in logical pixels. Either
	// dimension may be zero while the container is hidden.
	ContentSize() (width, height int)
	// PixelRatio returns device pixels per logical pixel.
	PixelRatio() float32

	CreateSurface(opts SurfaceOptions) (Surface, error)
	AttachSurface(s Surface)
	DetachSurface(s Surface)
	Contains(s Surface) bool

	ObserveResize(fn func(width, height int)) events.Subscription
	// OnFrame registers fn to run once per display refresh.
	OnFrame(fn func()) events.Subscription

	camera.PointerSource
}

// Renderer draws a scene into a surface.
type Renderer interface {
	SetPixelRatio(ratio float32)
	SetSize(width, height int)
	Render(s *scene.Scene, cam *camera.Perspective)
	NewEnvironmentGenerator() (scene.EnvironmentGenerator, error)
	Dispose()
}

// RendererOptions configures a Renderer.
type RendererOptions struct {
	Antialias bool
}

// RendererFactory creates a renderer drawing into surface.
type RendererFactory func(surface Surface, opts RendererOptions) (Renderer, error)
