package scene

import "image"

// ColorSpace tells the renderer how to interpret texel values.
type ColorSpace int

const (
	// LinearColorSpace samples texels as-is.
	LinearColorSpace ColorSpace = iota
	// SRGBColorSpace decodes texels from sRGB when sampled.
	SRGBColorSpace
)

// Filter is a texture sampling filter.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
	FilterLinearMipmapLinear
)

// Texture is a CPU-side image the renderer uploads on first use.
type Texture struct {
	disposable

	Image      *image.RGBA
	ColorSpace ColorSpace
	MinFilter  Filter
	MagFilter  Filter

	// GenerateMipmaps builds the mip chain on upload.
	GenerateMipmaps bool

	needsUpdate bool
}

// NewTexture wraps img with default sampling (linear, mipmapped).
func NewTexture(img *image.RGBA) *Texture {
	return &Texture{
		Image:           img,
		ColorSpace:      LinearColorSpace,
		MinFilter:       FilterLinearMipmapLinear,
		MagFilter:       FilterLinear,
		GenerateMipmaps: true,
	}
}

// SetNeedsUpdate flags the image for upload on next use.
func (t *Texture) SetNeedsUpdate() {
	t.needsUpdate = true
}

// NeedsUpdate reports whether the image must be re-uploaded.
func (t *Texture) NeedsUpdate() bool {
	return t.needsUpdate
}

// MarkUploaded clears the update flag. Called by the renderer.
func (t *Texture) MarkUploaded() {
	t.needsUpdate = false
}

// Dispose releases the texture. Only the first call has an effect.
func (t *Texture) Dispose() {
	if t == nil {
		return
	}
	t.release()
}
