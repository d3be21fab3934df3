// Package renderer draws preview scenes with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/juncci-splash/internal/engine/camera"
	"github.com/Faultbox/juncci-splash/internal/engine/environment"
	"github.com/Faultbox/juncci-splash/internal/engine/events"
	"github.com/Faultbox/juncci-splash/internal/engine/scene"
	"github.com/Faultbox/juncci-splash/internal/engine/shader"
	"github.com/Faultbox/juncci-splash/internal/engine/shaders"
	"github.com/Faultbox/juncci-splash/internal/logger"
	"github.com/Faultbox/juncci-splash/pkg/math"
)

// Options holds renderer creation options.
type Options struct {
	// Antialias enables multisample rasterization. The surface must have
	// been created with multisample buffers for it to have an effect.
	Antialias bool
}

// textureSource is implemented by GPU-resident environment maps.
type textureSource interface {
	TextureID() uint32
}

type gpuGeometry struct {
	vao, vbo uint32
	count    int32
	sub      events.Subscription
}

type gpuTexture struct {
	id  uint32
	sub events.Subscription
}

// Renderer draws a scene.Scene through a camera.Perspective.
// IMPORTANT: Must be called AFTER the OpenGL context is created and current.
type Renderer struct {
	log     *zap.Logger
	program *shader.Program

	pixelRatio    float32
	width, height int

	geometries map[*scene.Geometry]*gpuGeometry
	textures   map[*scene.Texture]*gpuTexture

	disposed bool
}

// New initializes OpenGL and compiles the standard material program.
func New(opts Options) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		log:        logger.Named("renderer"),
		pixelRatio: 1,
		width:      1,
		height:     1,
		geometries: make(map[*scene.Geometry]*gpuGeometry),
		textures:   make(map[*scene.Texture]*gpuTexture),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	if opts.Antialias {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}

	program, err := shader.Compile(shaders.StandardVertexShader, shaders.StandardFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create standard program: %w", err)
	}
	r.program = program

	return r, nil
}

// SetPixelRatio sets the ratio of drawable pixels to logical pixels.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
	r.applyViewport()
}

// SetSize sets the logical drawing buffer size.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.applyViewport()
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// BufferSize returns the drawing buffer size in device pixels.
func (r *Renderer) BufferSize() (width, height int32) {
	return int32(float32(r.width) * r.pixelRatio), int32(float32(r.height) * r.pixelRatio)
}

// ReadPixels returns the current drawing buffer as tightly packed RGBA rows,
// bottom row first. Call it after Render and before the buffers are swapped.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	w, h := r.BufferSize()
	pixels = make([]byte, int(w)*int(h)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, int(w), int(h)
}

func (r *Renderer) applyViewport() {
	w, h := r.BufferSize()
	gl.Viewport(0, 0, w, h)
}

// NewEnvironmentGenerator creates a pre-filter generator sharing this
// renderer's context. The caller owns and must dispose it.
func (r *Renderer) NewEnvironmentGenerator() (scene.EnvironmentGenerator, error) {
	g, err := environment.NewGenerator(environment.DefaultConfig(), r.log.Named("environment"))
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Render clears to the scene background and draws every mesh.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) {
	if r.disposed {
		return
	}

	bg := s.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.program
	p.Use()
	p.SetMat4("uProjection", cam.ProjectionMatrix())
	p.SetMat4("uView", cam.ViewMatrix())
	p.SetMat4("uModel", math.Identity())
	p.SetVec3("uCameraPos", cam.Position)

	envTex := uint32(0)
	if src, ok := s.Environment.(textureSource); ok {
		envTex = src.TextureID()
	}
	if envTex != 0 {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, envTex)
		p.SetInt("uEnvMap", 1)
		p.SetInt("uHasEnv", 1)
	} else {
		p.SetInt("uHasEnv", 0)
	}

	for _, m := range s.Meshes() {
		r.drawMesh(m)
	}
}

func (r *Renderer) drawMesh(m *scene.Mesh) {
	if m.Geometry == nil || m.Geometry.Disposed() || len(m.Geometry.Vertices) == 0 {
		return
	}
	mat := m.Material()
	if mat == nil || mat.Disposed() {
		return
	}

	geo := r.geometry(m.Geometry)

	p := r.program
	p.SetVec3("uColor", math.Vec3{X: mat.Color.R, Y: mat.Color.G, Z: mat.Color.B})
	p.SetFloat("uRoughness", mat.Roughness)
	p.SetFloat("uMetalness", mat.Metalness)
	p.SetFloat("uEnvIntensity", mat.EnvMapIntensity)

	if mat.Map != nil && !mat.Map.Disposed() && mat.Map.Image != nil {
		tex := r.texture(mat.Map)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		p.SetInt("uMap", 0)
		p.SetInt("uHasMap", 1)
	} else {
		p.SetInt("uHasMap", 0)
	}

	gl.BindVertexArray(geo.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, geo.count)
	gl.BindVertexArray(0)
}

// geometry returns the GPU copy of g, uploading it on first use.
func (r *Renderer) geometry(g *scene.Geometry) *gpuGeometry {
	if gg, ok := r.geometries[g]; ok {
		return gg
	}

	gg := &gpuGeometry{count: int32(len(g.Vertices))}
	stride := int32(unsafe.Sizeof(scene.Vertex{}))

	gl.GenVertexArrays(1, &gg.vao)
	gl.BindVertexArray(gg.vao)

	gl.GenBuffers(1, &gg.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gg.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*int(stride), gl.Ptr(g.Vertices), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// UV
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gg.sub = g.OnDispose(func() { r.releaseGeometry(g) })
	r.geometries[g] = gg

	r.log.Debug("geometry uploaded",
		zap.Uint32("vao", gg.vao),
		zap.Int32("vertices", gg.count),
	)
	return gg
}

// texture returns the GPU copy of t, uploading the image when flagged.
func (r *Renderer) texture(t *scene.Texture) *gpuTexture {
	gt, ok := r.textures[t]
	if !ok {
		gt = &gpuTexture{}
		gl.GenTextures(1, &gt.id)
		gt.sub = t.OnDispose(func() { r.releaseTexture(t) })
		r.textures[t] = gt
		t.SetNeedsUpdate()
	}
	if !t.NeedsUpdate() {
		return gt
	}

	img := t.Image
	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())

	internal := int32(gl.RGBA8)
	if t.ColorSpace == scene.SRGBColorSpace {
		internal = gl.SRGB8_ALPHA8
	}

	gl.BindTexture(gl.TEXTURE_2D, gt.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipRows(img.Pix, img.Stride, int(h))))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(t.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(t.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if t.GenerateMipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	t.MarkUploaded()
	r.log.Debug("texture uploaded",
		zap.Uint32("id", gt.id),
		zap.Int32("width", w),
		zap.Int32("height", h),
	)
	return gt
}

// flipRows returns pix with rows in bottom-up order so v = 1 samples the
// top of the image.
func flipRows(pix []byte, stride, rows int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < rows; y++ {
		copy(out[(rows-1-y)*stride:(rows-y)*stride], pix[y*stride:(y+1)*stride])
	}
	return out
}

func glFilter(f scene.Filter) int32 {
	switch f {
	case scene.FilterNearest:
		return gl.NEAREST
	case scene.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

func (r *Renderer) releaseGeometry(g *scene.Geometry) {
	gg, ok := r.geometries[g]
	if !ok {
		return
	}
	delete(r.geometries, g)
	gg.sub.Disconnect()
	gl.DeleteBuffers(1, &gg.vbo)
	gl.DeleteVertexArrays(1, &gg.vao)
}

func (r *Renderer) releaseTexture(t *scene.Texture) {
	gt, ok := r.textures[t]
	if !ok {
		return
	}
	delete(r.textures, t)
	gt.sub.Disconnect()
	gl.DeleteTextures(1, &gt.id)
}

// Dispose frees every GPU object the renderer still holds.
// Calling it more than once is a no-op.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true

	for g := range r.geometries {
		r.releaseGeometry(g)
	}
	for t := range r.textures {
		r.releaseTexture(t)
	}
	r.program.Delete()
	r.log.Info("renderer disposed")
}
