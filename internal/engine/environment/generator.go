package environment

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/juncci-splash/internal/engine/framebuffer"
	"github.com/Faultbox/juncci-splash/internal/engine/scene"
	"github.com/Faultbox/juncci-splash/internal/engine/shader"
	"github.com/Faultbox/juncci-splash/internal/engine/shaders"
)

// ErrDisposed is returned when a disposed generator is asked for a map.
var ErrDisposed = errors.New("environment generator disposed")

// Config holds generator settings.
type Config struct {
	// Source is the resolution of the CPU-rendered radiance map.
	SourceWidth, SourceHeight int32
	// Output is the resolution of the pre-filtered map.
	OutputWidth, OutputHeight int32
	// Roughness of the GGX lobe used for pre-filtering.
	Roughness float32
}

// DefaultConfig returns generator settings sized for a small, close mesh.
func DefaultConfig() Config {
	return Config{
		SourceWidth:  512,
		SourceHeight: 256,
		OutputWidth:  256,
		OutputHeight: 128,
		Roughness:    0.2,
	}
}

// Generator runs the offscreen pre-filter pass. It owns a shader program and
// an empty vertex array for the fullscreen triangle until Dispose.
// Must be created and used with the renderer's GL context current.
type Generator struct {
	config  Config
	log     *zap.Logger
	program *shader.Program
	vao     uint32
}

// NewGenerator compiles the pre-filter program.
func NewGenerator(cfg Config, log *zap.Logger) (*Generator, error) {
	program, err := shader.Compile(shaders.FullscreenVertexShader, shaders.PrefilterFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("prefilter shader: %w", err)
	}

	g := &Generator{config: cfg, log: log, program: program}
	gl.GenVertexArrays(1, &g.vao)
	return g, nil
}

// FromPreset renders the preset room and pre-filters it into a new Map.
// The returned map is owned by the caller.
func (g *Generator) FromPreset(p scene.EnvironmentPreset) (scene.EnvironmentMap, error) {
	if g.program == nil {
		return nil, ErrDisposed
	}
	room, err := Preset(p)
	if err != nil {
		return nil, err
	}

	cfg := g.config
	radiance := room.Equirect(int(cfg.SourceWidth), int(cfg.SourceHeight))

	var source uint32
	gl.GenTextures(1, &source)
	defer gl.DeleteTextures(1, &source)
	gl.BindTexture(gl.TEXTURE_2D, source)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB16F, cfg.SourceWidth, cfg.SourceHeight, 0, gl.RGB, gl.FLOAT, gl.Ptr(radiance))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	target, err := framebuffer.New(framebuffer.Config{
		Width:  cfg.OutputWidth,
		Height: cfg.OutputHeight,
		Format: framebuffer.RGBA16F,
	})
	if err != nil {
		return nil, fmt.Errorf("prefilter target: %w", err)
	}
	defer target.Destroy()

	restore := target.BindWithViewport()
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	g.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, source)
	g.program.SetInt("uSource", 0)
	g.program.SetFloat("uRoughness", cfg.Roughness)

	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	restore()

	w, h := target.Size()
	m := &Map{texture: target.TakeColorTexture(), width: int(w), height: int(h)}
	g.log.Debug("environment map generated",
		zap.Stringer("preset", p),
		zap.Int("width", m.width),
		zap.Int("height", m.height),
	)
	return m, nil
}

// Dispose releases the generator's program and vertex array. Maps already
// produced stay valid. Calling it more than once is a no-op.
func (g *Generator) Dispose() {
	if g.program != nil {
		g.program.Delete()
		g.program = nil
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}

// Map is a pre-filtered equirectangular environment texture.
type Map struct {
	texture       uint32
	width, height int
}

// TextureID returns the GL texture name, or 0 once disposed.
func (m *Map) TextureID() uint32 {
	return m.texture
}

// Size returns the map resolution.
func (m *Map) Size() (width, height int) {
	return m.width, m.height
}

// Dispose deletes the texture. Calling it more than once is a no-op.
func (m *Map) Dispose() {
	if m.texture != 0 {
		gl.DeleteTextures(1, &m.texture)
		m.texture = 0
	}
}
