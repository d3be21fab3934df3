package preview

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/juncci-splash/internal/engine/camera"
	"github.com/Faultbox/juncci-splash/internal/engine/geometry"
	"github.com/Faultbox/juncci-splash/internal/engine/scene"
	"github.com/Faultbox/juncci-splash/internal/engine/texture"
	"github.com/Faultbox/juncci-splash/pkg/math"
)

// Fixed scene parameters.
const (
	cameraFOV      = 50
	cameraNear     = 0.1
	cameraFar      = 10
	cameraDistance = 2.5

	boxSize     = 0.5
	boxSegments = 7
	boxRadius   = 0.14

	materialRoughness = 0.2
	materialMetalness = 0.05
)

// bundle owns every resource of one running preview. Members are nil until
// their construction step has run.
type bundle struct {
	host    Host
	surface Surface

	renderer Renderer
	camera   *camera.Perspective
	scene    *scene.Scene

	envGenerator scene.EnvironmentGenerator
	envMap       scene.EnvironmentMap

	controls *camera.OrbitControls

	texture  *scene.Texture
	geometry *scene.Geometry
	mesh     *scene.Mesh

	stack disposalStack
	log   *zap.Logger
}

// newBundle builds the scene resources in dependency order. On a fatal
// failure everything built so far is released before the error is returned.
func newBundle(host Host, newRenderer RendererFactory, opts Options, log *zap.Logger) (*bundle, error) {
	b := &bundle{host: host, log: log}
	if err := b.build(newRenderer, opts); err != nil {
		return nil, multierr.Append(err, b.destroy())
	}
	return b, nil
}

func (b *bundle) build(newRenderer RendererFactory, opts Options) error {
	host := b.host

	// Renderer and drawing surface.
	surface, err := host.CreateSurface(SurfaceOptions{Antialias: true})
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	b.surface = surface
	b.stack.push("surface", b.releaseSurface)

	renderer, err := newRenderer(surface, RendererOptions{Antialias: true})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	b.renderer = renderer
	b.stack.push("renderer", renderer.Dispose)

	width, height := host.ContentSize()
	width, height = max(width, 1), max(height, 1)
	renderer.SetPixelRatio(host.PixelRatio())
	renderer.SetSize(width, height)
	host.AttachSurface(surface)

	// Camera.
	b.camera = camera.NewPerspective(cameraFOV, float32(width)/float32(height), cameraNear, cameraFar)
	b.camera.Position = math.Vec3{Z: cameraDistance}
	b.camera.LookAt(math.Vec3{})

	// Scene and environment.
	b.scene = scene.New()
	b.scene.Background = scene.ColorFromHex(opts.Background)

	gen, err := renderer.NewEnvironmentGenerator()
	if err != nil {
		return fmt.Errorf("create environment generator: %w", err)
	}
	b.envGenerator = gen
	b.stack.push("environment generator", gen.Dispose)

	envMap, err := gen.FromPreset(scene.RoomPreset)
	if err != nil {
		return fmt.Errorf("generate environment: %w", err)
	}
	b.envMap = envMap
	b.scene.Environment = envMap
	b.stack.push("environment map", b.releaseEnvironment)

	// Controller.
	b.controls = camera.NewOrbitControls(b.camera, host)
	b.controls.AutoRotate = opts.AutoRotateSpeed != 0
	b.controls.AutoRotateSpeed = opts.AutoRotateSpeed
	b.controls.EnableDamping = opts.DampingFactor > 0
	b.controls.DampingFactor = opts.DampingFactor
	b.stack.push("controls", b.controls.Dispose)

	// Texture, geometry, material, mesh.
	factoryOpts := []texture.Option{texture.WithSize(texture.DefaultSize)}
	if opts.Raster != nil {
		factoryOpts = append(factoryOpts, texture.WithAllocator(opts.Raster))
	}
	tex, err := texture.NewFactory(factoryOpts...).Label(opts.Label)
	if err != nil {
		b.log.Warn("label texture unavailable, drawing untextured", zap.Error(err))
	} else {
		b.texture = tex
		b.stack.push("texture", tex.Dispose)
	}

	b.geometry = geometry.RoundedBox(geometry.RoundedBoxOptions{
		Width:    boxSize,
		Height:   boxSize,
		Depth:    boxSize,
		Segments: boxSegments,
		Radius:   boxRadius,
	})

	material := scene.NewMaterial()
	material.Roughness = materialRoughness
	material.Metalness = materialMetalness
	material.Map = b.texture

	b.mesh = scene.NewMesh(b.geometry, material)
	b.scene.Add(b.mesh)
	b.stack.push("mesh", b.releaseMesh)

	b.log.Debug("scene resources created",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("textured", b.texture != nil),
	)
	return nil
}

// releaseMesh removes the mesh from the scene and releases its geometry and
// every material, in that order.
func (b *bundle) releaseMesh() {
	mesh := b.mesh
	if mesh == nil {
		return
	}
	if b.scene != nil {
		b.scene.Remove(mesh)
	}
	mesh.Geometry.Dispose()
	for _, m := range mesh.Materials {
		m.Dispose()
	}
	b.mesh = nil
	b.geometry = nil
}

func (b *bundle) releaseEnvironment() {
	if b.scene != nil {
		b.scene.Environment = nil
	}
	if b.envMap != nil {
		b.envMap.Dispose()
		b.envMap = nil
	}
}

func (b *bundle) releaseSurface() {
	if b.surface == nil {
		return
	}
	if b.host.Contains(b.surface) {
		b.host.DetachSurface(b.surface)
	}
	b.surface.Destroy()
	b.surface = nil
}

// destroy runs every recorded release in reverse construction order. It is
// safe to call more than once.
func (b *bundle) destroy() error {
	n := b.stack.len()
	err := b.stack.unwind()
	if n > 0 {
		b.log.Debug("scene resources released", zap.Int("steps", n))
	}
	return err
}
