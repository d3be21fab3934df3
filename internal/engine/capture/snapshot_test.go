package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBottomUpFlipsRows(t *testing.T) {
	// 1x2 image: bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}

	img, err := FromBottomUp(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 1))
}

func TestFromBottomUpSizeMismatch(t *testing.T) {
	_, err := FromBottomUp(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}

func TestSaveWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewSnapshotter(dir, "splash")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.SetRGBA(1, 1, color.RGBA{G: 200, A: 255})

	path, err := s.Save(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "splash_2026-01-02_03-04-05.000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())
	r, g, _, _ := decoded.At(1, 1).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(200*0x101), g)
}

func TestFilenameWithoutDir(t *testing.T) {
	s := NewSnapshotter("", "frame")
	name := s.Filename()
	assert.True(t, strings.HasPrefix(name, "frame_"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotContains(t, name, string(filepath.Separator))
}
