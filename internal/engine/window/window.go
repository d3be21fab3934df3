// Package window hosts the preview in an SDL2 window with an OpenGL context.
package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/juncci-splash/internal/engine/events"
	"github.com/Faultbox/juncci-splash/internal/engine/input"
	"github.com/Faultbox/juncci-splash/internal/logger"
	"github.com/Faultbox/juncci-splash/internal/preview"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Samples per pixel for multisample antialiasing. Zero disables it.
	Samples int
}

// Window wraps an SDL2 window and implements preview.Host.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	input     *input.Input
	log       *zap.Logger

	attached *Surface
	dragging bool

	// pacer throttles Frame when the swap does not wait for vsync.
	pacer *framePacer

	resize  events.Dispatcher[[2]int]
	pointer events.Dispatcher[events.Pointer]
	frame   events.Dispatcher[struct{}]
	keys    events.Dispatcher[sdl.Scancode]
}

var _ preview.Host = (*Window)(nil)

// Surface is an OpenGL context on a Window.
type Surface struct {
	window  *Window
	context sdl.GLContext
}

// MakeCurrent binds the surface's GL context to the calling thread.
func (s *Surface) MakeCurrent() error {
	if s.context == nil {
		return errors.New("surface destroyed")
	}
	if err := s.window.sdlWindow.GLMakeCurrent(s.context); err != nil {
		return fmt.Errorf("SDL_GL_MakeCurrent failed: %w", err)
	}
	return nil
}

// Destroy deletes the GL context. Calling it more than once is a no-op.
func (s *Surface) Destroy() {
	if s.context == nil {
		return
	}
	sdl.GLDeleteContext(s.context)
	s.context = nil
}

// New creates the window. Its GL pixel format is fixed here, so multisample
// buffers are requested up front when cfg.Samples > 0.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		input:  input.New(),
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)
	if cfg.Samples > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, cfg.Samples)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Int("samples", cfg.Samples),
	)
	return w, nil
}

// Close destroys the window and shuts SDL down.
func (w *Window) Close() {
	w.log.Info("closing window")
	if w.attached != nil {
		w.DetachSurface(w.attached)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}
	sdl.Quit()
}

// ContentSize returns the window size in logical pixels.
func (w *Window) ContentSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// PixelRatio returns drawable pixels per logical pixel.
func (w *Window) PixelRatio() float32 {
	width, _ := w.sdlWindow.GetSize()
	drawable, _ := w.sdlWindow.GLGetDrawableSize()
	if width <= 0 || drawable <= 0 {
		return 1
	}
	return float32(drawable) / float32(width)
}

// CreateSurface creates a GL context on the window and makes it current.
func (w *Window) CreateSurface(opts preview.SurfaceOptions) (preview.Surface, error) {
	if opts.Antialias && w.config.Samples == 0 {
		w.log.Warn("antialiasing requested but window has no multisample buffers")
	}

	ctx, err := w.sdlWindow.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if w.config.VSync {
		interval = 1
	}
	err = sdl.GLSetSwapInterval(interval)
	if err != nil {
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}
	if interval == 0 || err != nil {
		rate := w.refreshRate()
		w.pacer = newFramePacer(rate)
		w.log.Info("pacing frames without vsync", zap.Int("refresh_hz", rate))
	} else {
		w.pacer = nil
	}

	return &Surface{window: w, context: ctx}, nil
}

// AttachSurface makes s the surface presented by Frame.
func (w *Window) AttachSurface(s preview.Surface) {
	surface, ok := s.(*Surface)
	if !ok || surface.window != w || surface.context == nil {
		w.log.Warn("ignoring foreign surface")
		return
	}
	if err := surface.MakeCurrent(); err != nil {
		w.log.Error("failed to make context current", zap.Error(err))
		return
	}
	w.attached = surface
}

// DetachSurface stops presenting s.
func (w *Window) DetachSurface(s preview.Surface) {
	if w.Contains(s) {
		w.attached = nil
	}
}

// Contains reports whether s is the attached surface.
func (w *Window) Contains(s preview.Surface) bool {
	surface, ok := s.(*Surface)
	return ok && surface != nil && surface == w.attached
}

// ObserveResize registers fn for window size changes in logical pixels.
func (w *Window) ObserveResize(fn func(width, height int)) events.Subscription {
	return w.resize.Subscribe(func(size [2]int) { fn(size[0], size[1]) })
}

// ObservePointer registers fn for mouse input over the window.
func (w *Window) ObservePointer(fn func(events.Pointer)) events.Subscription {
	return w.pointer.Subscribe(fn)
}

// OnFrame registers fn to run once per presented frame.
func (w *Window) OnFrame(fn func()) events.Subscription {
	return w.frame.Subscribe(func(struct{}) { fn() })
}

// ObserveKey registers fn for key presses other than Escape, which closes
// the window.
func (w *Window) ObserveKey(fn func(sdl.Scancode)) events.Subscription {
	return w.keys.Subscribe(fn)
}

// Pump drains pending SDL events and dispatches resize and pointer
// notifications. It returns false once the window should close.
func (w *Window) Pump() bool {
	if w.input.Update() {
		return false
	}

	_, height := w.ContentSize()
	for _, e := range w.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w.resize.Emit([2]int{e.Width, e.Height})

		case input.EventKeyDown:
			if e.Key == sdl.SCANCODE_ESCAPE {
				return false
			}
			w.keys.Emit(e.Key)

		case input.EventMouseDown:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			w.dragging = true
			w.pointer.Emit(events.Pointer{
				Kind: events.PointerDown, X: float32(e.MouseX), Y: float32(e.MouseY),
				Button: e.Button, Height: height,
			})

		case input.EventMouseMove:
			if !w.dragging {
				continue
			}
			w.pointer.Emit(events.Pointer{
				Kind: events.PointerMove, X: float32(e.MouseX), Y: float32(e.MouseY),
				Height: height,
			})

		case input.EventMouseUp:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			w.dragging = false
			w.pointer.Emit(events.Pointer{
				Kind: events.PointerUp, X: float32(e.MouseX), Y: float32(e.MouseY),
				Button: e.Button, Height: height,
			})

		case input.EventMouseWheel:
			w.pointer.Emit(events.Pointer{Kind: events.PointerWheel, WheelY: e.WheelY, Height: height})
		}
	}
	return true
}

// Frame runs the frame callbacks and presents the attached surface.
// With vsync enabled the swap blocks until the next display refresh;
// otherwise Frame sleeps out the rest of one refresh period.
func (w *Window) Frame() {
	if w.attached == nil {
		sdl.Delay(16)
		return
	}
	w.frame.Emit(struct{}{})
	w.sdlWindow.GLSwap()
	if w.pacer != nil {
		w.pacer.wait()
	}
}

// refreshRate returns the refresh rate of the display showing the window,
// or defaultRefreshRate when SDL cannot report it.
func (w *Window) refreshRate() int {
	display, err := w.sdlWindow.GetDisplayIndex()
	if err != nil {
		w.log.Warn("failed to query display", zap.Error(err))
		return defaultRefreshRate
	}
	mode, err := sdl.GetCurrentDisplayMode(display)
	if err != nil {
		w.log.Warn("failed to query display mode", zap.Int("display", display), zap.Error(err))
		return defaultRefreshRate
	}
	if mode.RefreshRate <= 0 {
		return defaultRefreshRate
	}
	return int(mode.RefreshRate)
}
