package texture

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/juncci-splash/internal/engine/scene"
)

func TestLabelTextureFlags(t *testing.T) {
	tex, err := NewFactory().Label("juncci")
	require.NoError(t, err)
	require.NotNil(t, tex)

	assert.Equal(t, scene.SRGBColorSpace, tex.ColorSpace)
	assert.Equal(t, scene.FilterLinear, tex.MinFilter)
	assert.False(t, tex.GenerateMipmaps)
	assert.True(t, tex.NeedsUpdate())
	assert.Equal(t, image.Rect(0, 0, 512, 512), tex.Image.Bounds())
}

func TestLabelIsCenteredWhiteInk(t *testing.T) {
	tex, err := NewFactory().Label("juncci")
	require.NoError(t, err)

	ink := inkBounds(tex.Image)
	require.False(t, ink.Empty(), "label drew nothing")

	cx := (ink.Min.X + ink.Max.X) / 2
	cy := (ink.Min.Y + ink.Max.Y) / 2
	assert.InDelta(t, 256, cx, 16, "horizontal center")
	assert.InDelta(t, 256, cy, 48, "vertical center")

	assert.Greater(t, ink.Dx(), 256, "label should span most of the width")
	assert.LessOrEqual(t, ink.Dx(), 512)

	// Brightest ink pixel is white.
	var brightest uint8
	for i := 0; i < len(tex.Image.Pix); i += 4 {
		if tex.Image.Pix[i+3] == 0xff && tex.Image.Pix[i] > brightest {
			brightest = tex.Image.Pix[i]
		}
	}
	assert.Equal(t, uint8(0xff), brightest)
}

func TestLabelBackgroundIsTransparent(t *testing.T) {
	tex, err := NewFactory().Label("juncci")
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{}, tex.Image.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, tex.Image.RGBAAt(511, 511))
}

func TestLabelClearsReusedRaster(t *testing.T) {
	dirty := func(w, h int) (draw.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0x11, A: 0xff}), image.Point{}, draw.Src)
		return img, nil
	}

	tex, err := NewFactory(WithAllocator(dirty), WithSize(64)).Label("")
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{}, tex.Image.RGBAAt(10, 10))
	assert.Equal(t, image.Rect(0, 0, 64, 64), tex.Image.Bounds())
}

func TestLabelRasterUnavailable(t *testing.T) {
	failing := func(int, int) (draw.Image, error) {
		return nil, errors.New("no 2d context")
	}

	tex, err := NewFactory(WithAllocator(failing)).Label("juncci")
	assert.Nil(t, tex)
	assert.ErrorIs(t, err, ErrRasterUnavailable)
}

func TestLabelNilRaster(t *testing.T) {
	empty := func(int, int) (draw.Image, error) { return nil, nil }

	tex, err := NewFactory(WithAllocator(empty)).Label("juncci")
	assert.Nil(t, tex)
	assert.ErrorIs(t, err, ErrRasterUnavailable)
}

func TestLabelConvertsForeignRaster(t *testing.T) {
	nrgba := func(w, h int) (draw.Image, error) {
		return image.NewNRGBA(image.Rect(0, 0, w, h)), nil
	}

	tex, err := NewFactory(WithAllocator(nrgba), WithSize(128)).Label("j")
	require.NoError(t, err)
	assert.False(t, inkBounds(tex.Image).Empty())
}

func inkBounds(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0x80 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}
