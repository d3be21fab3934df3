package scene

import gomath "math"

// Color is a linear RGB color.
type Color struct {
	R, G, B float32
}

// ColorFromHex decodes a 0xRRGGBB sRGB value into linear RGB.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: srgbToLinear(float32((hex>>16)&0xff) / 255),
		G: srgbToLinear(float32((hex>>8)&0xff) / 255),
		B: srgbToLinear(float32(hex&0xff) / 255),
	}
}

func srgbToLinear(c float32) float32 {
	if c < 0.04045 {
		return c * 0.0773993808
	}
	return float32(gomath.Pow(float64(c)*0.9478672986+0.0521327014, 2.4))
}

// Material is a metallic-roughness physically based material.
type Material struct {
	disposable

	Color     Color
	Roughness float32
	Metalness float32

	// Map is the diffuse color map. Nil means untextured.
	Map *Texture

	EnvMapIntensity float32
}

// NewMaterial returns a white, fully rough, non-metallic material.
func NewMaterial() *Material {
	return &Material{
		Color:           Color{1, 1, 1},
		Roughness:       1,
		Metalness:       0,
		EnvMapIntensity: 1,
	}
}

// Dispose releases the material. The diffuse map is owned separately.
func (m *Material) Dispose() {
	if m == nil {
		return
	}
	m.release()
}
