package scene

import "github.com/Faultbox/juncci-splash/pkg/math"

// Vertex is the interleaved vertex layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Geometry holds non-indexed triangle data.
type Geometry struct {
	disposable

	Vertices []Vertex
}

// NewGeometry creates a geometry from triangle-list vertices.
func NewGeometry(vertices []Vertex) *Geometry {
	return &Geometry{Vertices: vertices}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (g *Geometry) Bounds() (lo, hi math.Vec3) {
	if len(g.Vertices) == 0 {
		return
	}
	p := g.Vertices[0].Position
	lo = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	hi = lo
	for _, v := range g.Vertices[1:] {
		p := v.Position
		lo.X, hi.X = minf(lo.X, p[0]), maxf(hi.X, p[0])
		lo.Y, hi.Y = minf(lo.Y, p[1]), maxf(hi.Y, p[1])
		lo.Z, hi.Z = minf(lo.Z, p[2]), maxf(hi.Z, p[2])
	}
	return lo, hi
}

// Dispose releases the geometry. Only the first call has an effect.
func (g *Geometry) Dispose() {
	if g == nil {
		return
	}
	g.release()
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
