// Package texture renders procedural images for the preview scene.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/juncci-splash/internal/engine/scene"
)

// DefaultSize is the edge length of the square label raster.
const DefaultSize = 512

// ErrRasterUnavailable is returned when no raster surface can be allocated.
var ErrRasterUnavailable = errors.New("raster surface unavailable")

// RasterAllocator provides the 2D surface a label is drawn on.
type RasterAllocator func(width, height int) (draw.Image, error)

// NewRGBARaster allocates an in-memory RGBA raster.
func NewRGBARaster(width, height int) (draw.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// Factory renders text labels into textures.
type Factory struct {
	size  int
	alloc RasterAllocator

	// Label fits the text to widthFill of the raster width and at most
	// heightFill of its height.
	widthFill  float64
	heightFill float64
}

// Option configures a Factory.
type Option func(*Factory)

// WithSize sets the raster edge length.
func WithSize(size int) Option {
	return func(f *Factory) { f.size = size }
}

// WithAllocator replaces the raster allocator.
func WithAllocator(alloc RasterAllocator) Option {
	return func(f *Factory) { f.alloc = alloc }
}

// NewFactory creates a label factory.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		size:       DefaultSize,
		alloc:      NewRGBARaster,
		widthFill:  0.8,
		heightFill: 0.5,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Label draws text centered on a square raster in a bold sans-serif face
// and wraps it in a texture flagged for sRGB sampling and upload on next use.
// The caller owns the returned texture and must Dispose it once.
func (f *Factory) Label(text string) (*scene.Texture, error) {
	raster, err := f.alloc(f.size, f.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterUnavailable, err)
	}
	if raster == nil {
		return nil, ErrRasterUnavailable
	}

	draw.Draw(raster, raster.Bounds(), image.Transparent, image.Point{}, draw.Src)

	if text != "" {
		if err := f.drawCentered(raster, text); err != nil {
			return nil, err
		}
	}

	tex := scene.NewTexture(toRGBA(raster))
	tex.ColorSpace = scene.SRGBColorSpace
	tex.MinFilter = scene.FilterLinear
	tex.MagFilter = scene.FilterLinear
	tex.GenerateMipmaps = false
	tex.SetNeedsUpdate()
	return tex, nil
}

func (f *Factory) drawCentered(dst draw.Image, text string) error {
	fnt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("parsing label font: %w", err)
	}

	const probeSize = 100
	probe, err := newFace(fnt, probeSize)
	if err != nil {
		return err
	}
	probeWidth := font.MeasureString(probe, text).Ceil()
	probe.Close()

	px := float64(f.size) * f.heightFill
	if probeWidth > 0 {
		px = min(px, probeSize*float64(f.size)*f.widthFill/float64(probeWidth))
	}

	face, err := newFace(fnt, px)
	if err != nil {
		return err
	}
	defer face.Close()

	metrics := face.Metrics()
	width := font.MeasureString(face, text)
	center := fixed.I(f.size / 2)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot: fixed.Point26_6{
			X: center - width/2,
			Y: center + (metrics.Ascent-metrics.Descent)/2,
		},
	}
	d.DrawString(text)
	return nil
}

func newFace(fnt *opentype.Font, px float64) (font.Face, error) {
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating label face: %w", err)
	}
	return face, nil
}

// toRGBA returns img as *image.RGBA, copying only when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}
