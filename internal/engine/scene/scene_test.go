package scene

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemoveMesh(t *testing.T) {
	s := New()
	m := NewMesh(NewGeometry(nil), NewMaterial())

	s.Add(m)
	s.Add(m)
	require.Len(t, s.Meshes(), 1)
	assert.Same(t, s, m.Parent())

	assert.True(t, s.Remove(m))
	assert.False(t, s.Remove(m))
	assert.Empty(t, s.Meshes())
	assert.Nil(t, m.Parent())
}

func TestAddMovesMeshBetweenScenes(t *testing.T) {
	a, b := New(), New()
	m := NewMesh(NewGeometry(nil))

	a.Add(m)
	b.Add(m)

	assert.Empty(t, a.Meshes())
	assert.Len(t, b.Meshes(), 1)
}

func TestDisposeNotifiesOnce(t *testing.T) {
	g := NewGeometry([]Vertex{{}})
	calls := 0
	g.OnDispose(func() { calls++ })

	g.Dispose()
	g.Dispose()

	assert.True(t, g.Disposed())
	assert.Equal(t, 1, calls)
}

func TestDisposeNilIsSafe(t *testing.T) {
	var tex *Texture
	var mat *Material
	var geo *Geometry

	assert.NotPanics(t, func() {
		tex.Dispose()
		mat.Dispose()
		geo.Dispose()
	})
}

func TestTextureUpdateFlag(t *testing.T) {
	tex := NewTexture(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	assert.False(t, tex.NeedsUpdate())

	tex.SetNeedsUpdate()
	assert.True(t, tex.NeedsUpdate())

	tex.MarkUploaded()
	assert.False(t, tex.NeedsUpdate())
}

func TestColorFromHex(t *testing.T) {
	assert.Equal(t, Color{1, 1, 1}, ColorFromHex(0xffffff))
	assert.Equal(t, Color{}, ColorFromHex(0x000000))

	c := ColorFromHex(0x111111)
	assert.InDelta(t, 0.0056, c.R, 1e-4)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
}

func TestGeometryBounds(t *testing.T) {
	g := NewGeometry([]Vertex{
		{Position: [3]float32{-1, 2, 0}},
		{Position: [3]float32{3, -4, 5}},
	})
	lo, hi := g.Bounds()
	assert.Equal(t, float32(-1), lo.X)
	assert.Equal(t, float32(-4), lo.Y)
	assert.Equal(t, float32(5), hi.Z)
}
