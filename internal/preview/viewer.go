package preview

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/juncci-splash/internal/engine/texture"
)

// DefaultLabel is the text drawn on the preview cube.
const DefaultLabel = "juncci"

// ErrAlreadyStarted is returned when Start is called on a running or
// stopped viewer.
var ErrAlreadyStarted = errors.New("preview already started")

// Options configures a Viewer.
type Options struct {
	// Label is drawn on every face of the cube. Empty means DefaultLabel.
	Label string
	// Background is the clear color as 0xRRGGBB sRGB.
	Background uint32
	// AutoRotateSpeed 2 is one turn every 30 seconds at 60 frames per
	// second. Zero disables auto-rotation.
	AutoRotateSpeed float32
	// DampingFactor of the orbit controls. Zero disables damping.
	DampingFactor float32

	// Raster allocates the label raster. Nil uses an in-memory RGBA image.
	Raster texture.RasterAllocator

	// Logger receives lifecycle messages. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns the splash screen's preview settings. Callers
// overriding a few fields should start from it, since zero speed and damping
// are honoured as given.
func DefaultOptions() Options {
	return Options{
		Label:           DefaultLabel,
		Background:      0x111111,
		AutoRotateSpeed: 5,
		DampingFactor:   0.05,
	}
}

func (o Options) withDefaults() Options {
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Viewer is one preview instance. Start and Stop are each meant to be called
// once, from the host's event thread.
type Viewer struct {
	opts        Options
	log         *zap.Logger
	newRenderer RendererFactory

	bundle *bundle
	resize *resizeCoordinator
	loop   *RenderLoop

	started bool
}

// New creates a viewer that draws with renderers from newRenderer.
func New(newRenderer RendererFactory, opts Options) *Viewer {
	opts = opts.withDefaults()
	return &Viewer{
		opts:        opts,
		log:         opts.Logger,
		newRenderer: newRenderer,
	}
}

// Start builds the scene in host and begins drawing it every frame. A nil
// host is not an error: nothing is built and Stop has nothing to do.
//
// Failing to create the drawing surface, the renderer or the environment
// map is fatal: whatever was built is released and the error returned.
// A missing label raster only leaves the cube untextured.
func (v *Viewer) Start(host Host) error {
	if v.started {
		return ErrAlreadyStarted
	}
	v.started = true

	if host == nil {
		v.log.Debug("no host, preview disabled")
		return nil
	}

	b, err := newBundle(host, v.newRenderer, v.opts, v.log)
	if err != nil {
		v.log.Error("preview construction failed", zap.Error(err))
		return fmt.Errorf("start preview: %w", err)
	}
	v.bundle = b

	v.resize = startResize(host, b.renderer, b.camera, v.log)
	v.loop = startRenderLoop(host, v.frame)

	v.log.Info("preview started", zap.String("label", v.opts.Label))
	return nil
}

func (v *Viewer) frame() {
	b := v.bundle
	b.controls.Update()
	b.renderer.Render(b.scene, b.camera)
}

// Loop returns the active render loop, or nil before Start.
func (v *Viewer) Loop() *RenderLoop {
	return v.loop
}

// Stop halts drawing and releases every resource in reverse construction
// order. Release failures are logged and returned together. Calling Stop
// again, or without a successful Start, does nothing.
func (v *Viewer) Stop() error {
	if v.loop != nil {
		v.loop.Stop()
	}
	if v.resize != nil {
		v.resize.Stop()
	}
	if v.bundle == nil {
		return nil
	}

	b := v.bundle
	v.bundle = nil
	if err := b.destroy(); err != nil {
		v.log.Error("preview teardown incomplete", zap.Error(err))
		return err
	}
	v.log.Info("preview stopped")
	return nil
}
