package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/juncci-splash/internal/engine/scene"
)

func TestDisposedGeneratorRefusesWork(t *testing.T) {
	g := &Generator{config: DefaultConfig()}
	g.Dispose()
	g.Dispose()

	m, err := g.FromPreset(scene.RoomPreset)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrDisposed)
}

func TestMapWithoutTexture(t *testing.T) {
	m := &Map{width: 256, height: 128}
	w, h := m.Size()
	assert.Equal(t, 256, w)
	assert.Equal(t, 128, h)

	m.Dispose()
	assert.Zero(t, m.TextureID())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, float32(0.2), cfg.Roughness)
	assert.Equal(t, 2*cfg.SourceHeight, cfg.SourceWidth, "equirect maps are 2:1")
	assert.Equal(t, 2*cfg.OutputHeight, cfg.OutputWidth, "equirect maps are 2:1")
}
