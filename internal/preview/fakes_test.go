package preview

import (
	"errors"

	"github.com/Faultbox/juncci-splash/internal/engine/camera"
	"github.com/Faultbox/juncci-splash/internal/engine/events"
	"github.com/Faultbox/juncci-splash/internal/engine/scene"
)

// recorder collects release notifications in the order they happen.
type recorder struct {
	entries []string
}

func (r *recorder) add(s string) {
	r.entries = append(r.entries, s)
}

// loggedSub records its first Disconnect.
type loggedSub struct {
	events.Subscription
	rec  *recorder
	name string
	done bool
}

func (s *loggedSub) Disconnect() {
	if !s.done {
		s.done = true
		s.rec.add(s.name)
	}
	s.Subscription.Disconnect()
}

type fakeSurface struct {
	rec       *recorder
	destroyed int
}

func (s *fakeSurface) Destroy() {
	s.destroyed++
	s.rec.add("surface destroyed")
}

type fakeHost struct {
	rec *recorder

	width, height int
	ratio         float32
	surfaceErr    error

	surfaces []*fakeSurface
	attached map[Surface]bool

	resize  events.Dispatcher[[2]int]
	pointer events.Dispatcher[events.Pointer]
	frame   events.Dispatcher[struct{}]

	// every frame callback ever registered, including disconnected ones
	frameFns []func()
}

func newFakeHost(width, height int) *fakeHost {
	return &fakeHost{
		rec:      &recorder{},
		width:    width,
		height:   height,
		ratio:    1,
		attached: make(map[Surface]bool),
	}
}

func (h *fakeHost) ContentSize() (int, int) { return h.width, h.height }
func (h *fakeHost) PixelRatio() float32     { return h.ratio }

func (h *fakeHost) CreateSurface(SurfaceOptions) (Surface, error) {
	if h.surfaceErr != nil {
		return nil, h.surfaceErr
	}
	s := &fakeSurface{rec: h.rec}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) AttachSurface(s Surface) { h.attached[s] = true }

func (h *fakeHost) DetachSurface(s Surface) {
	delete(h.attached, s)
	h.rec.add("surface detached")
}

func (h *fakeHost) Contains(s Surface) bool { return h.attached[s] }

func (h *fakeHost) ObserveResize(fn func(int, int)) events.Subscription {
	sub := h.resize.Subscribe(func(s [2]int) { fn(s[0], s[1]) })
	return &loggedSub{Subscription: sub, rec: h.rec, name: "resize"}
}

func (h *fakeHost) ObservePointer(fn func(events.Pointer)) events.Subscription {
	sub := h.pointer.Subscribe(fn)
	return &loggedSub{Subscription: sub, rec: h.rec, name: "controls"}
}

func (h *fakeHost) OnFrame(fn func()) events.Subscription {
	h.frameFns = append(h.frameFns, fn)
	sub := h.frame.Subscribe(func(struct{}) { fn() })
	return &loggedSub{Subscription: sub, rec: h.rec, name: "loop"}
}

func (h *fakeHost) resizeTo(w, hgt int) { h.resize.Emit([2]int{w, hgt}) }

func (h *fakeHost) tick() { h.frame.Emit(struct{}{}) }

// tickStale invokes every frame callback ever registered, as if a frame
// had been dispatched before the loop was cancelled.
func (h *fakeHost) tickStale() {
	for _, fn := range h.frameFns {
		fn()
	}
}

type fakeEnvMap struct {
	rec       *recorder
	disposed  int
	generator *fakeGenerator
}

func (m *fakeEnvMap) Size() (int, int) { return 256, 128 }

func (m *fakeEnvMap) Dispose() {
	m.disposed++
	m.rec.add("environment map")
}

type fakeGenerator struct {
	rec      *recorder
	err      error
	disposed int
	maps     []*fakeEnvMap
}

func (g *fakeGenerator) FromPreset(p scene.EnvironmentPreset) (scene.EnvironmentMap, error) {
	if g.err != nil {
		return nil, g.err
	}
	if p != scene.RoomPreset {
		return nil, errors.New("unknown preset")
	}
	m := &fakeEnvMap{rec: g.rec, generator: g}
	g.maps = append(g.maps, m)
	return m, nil
}

func (g *fakeGenerator) Dispose() {
	g.disposed++
	g.rec.add("environment generator")
}

type fakeRenderer struct {
	rec     *recorder
	surface Surface

	ratio         float32
	width, height int
	setSizeCalls  int

	draws      int
	drawAspect float32
	drawnScene *scene.Scene
	disposed   int

	generator *fakeGenerator
}

func (r *fakeRenderer) SetPixelRatio(ratio float32) { r.ratio = ratio }

func (r *fakeRenderer) SetSize(w, h int) {
	r.setSizeCalls++
	r.width, r.height = w, h
}

func (r *fakeRenderer) Render(s *scene.Scene, cam *camera.Perspective) {
	if r.disposed > 0 {
		panic("render after dispose")
	}
	r.draws++
	r.drawnScene = s
	cam.ProjectionMatrix()
	r.drawAspect = cam.Aspect
}

func (r *fakeRenderer) NewEnvironmentGenerator() (scene.EnvironmentGenerator, error) {
	return r.generator, nil
}

func (r *fakeRenderer) Dispose() {
	r.disposed++
	r.rec.add("renderer")
}

// fakeRenderers hands out fake renderers and remembers them.
type fakeRenderers struct {
	created []*fakeRenderer
	err     error
	envErr  error
}

func (f *fakeRenderers) factory(host *fakeHost) RendererFactory {
	return func(s Surface, _ RendererOptions) (Renderer, error) {
		if f.err != nil {
			return nil, f.err
		}
		r := &fakeRenderer{
			rec:       host.rec,
			surface:   s,
			generator: &fakeGenerator{rec: host.rec, err: f.envErr},
		}
		f.created = append(f.created, r)
		return r, nil
	}
}

func (f *fakeRenderers) last() *fakeRenderer {
	return f.created[len(f.created)-1]
}
