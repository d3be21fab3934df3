// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// StandardVertexShader transforms mesh vertices for standard material shading.
//
//go:embed standard.vert
var StandardVertexShader string

// StandardFragmentShader shades metallic-roughness materials lit by an environment map.
//
//go:embed standard.frag
var StandardFragmentShader string

// FullscreenVertexShader emits a single screen-covering triangle without vertex buffers.
//
//go:embed fullscreen.vert
var FullscreenVertexShader string

// PrefilterFragmentShader convolves an equirectangular radiance map with a GGX lobe.
//
//go:embed prefilter.frag
var PrefilterFragmentShader string
