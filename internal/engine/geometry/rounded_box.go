// Package geometry builds procedural meshes for the preview scene.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/juncci-splash/internal/engine/scene"
	"github.com/Faultbox/juncci-splash/pkg/math"
)

// RoundedBoxOptions describes a box with rounded edges and corners.
type RoundedBoxOptions struct {
	Width, Height, Depth float32

	// Segments is the number of subdivisions per rounded edge.
	Segments int

	// Radius of the rounded edges. Clamped to half the smallest dimension.
	Radius float32
}

// face describes one side of the unit box by its outward normal and the
// right/up directions seen from outside. right x up == normal.
type face struct {
	normal, right, up math.Vec3
}

var boxFaces = [6]face{
	{normal: math.Vec3{X: 1}, right: math.Vec3{Z: -1}, up: math.Vec3{Y: 1}},
	{normal: math.Vec3{X: -1}, right: math.Vec3{Z: 1}, up: math.Vec3{Y: 1}},
	{normal: math.Vec3{Y: 1}, right: math.Vec3{X: 1}, up: math.Vec3{Z: -1}},
	{normal: math.Vec3{Y: -1}, right: math.Vec3{X: 1}, up: math.Vec3{Z: 1}},
	{normal: math.Vec3{Z: 1}, right: math.Vec3{X: 1}, up: math.Vec3{Y: 1}},
	{normal: math.Vec3{Z: -1}, right: math.Vec3{X: -1}, up: math.Vec3{Y: 1}},
}

// RoundedBox builds a non-indexed rounded box centered on the origin.
//
// Each face is a (2*Segments+1)^2 grid on the unit box. The middle row and
// column collapse onto the flat part of the face and the outer rows are bent
// onto quarter-circle arcs of the given radius. UVs are distributed along
// arc length so a texture covers each face without stretching at the edges.
func RoundedBox(opts RoundedBoxOptions) *scene.Geometry {
	segments := opts.Segments
	if segments < 1 {
		segments = 1
	}
	grid := segments*2 + 1

	dims := math.Vec3{X: opts.Width, Y: opts.Height, Z: opts.Depth}
	radius := min(opts.Width/2, opts.Height/2, opts.Depth/2, opts.Radius)
	if radius < 0 {
		radius = 0
	}
	box := dims.Scale(0.5).Sub(math.Vec3{X: radius, Y: radius, Z: radius})
	halfSegment := float32(0.5) / float32(grid)

	vertices := make([]scene.Vertex, 0, 6*grid*grid*6)
	for _, f := range boxFaces {
		sideU := absDot(dims, f.right)
		sideV := absDot(dims, f.up)

		corner := func(i, j int) scene.Vertex {
			p := f.normal.Scale(0.5).
				Add(f.right.Scale(float32(i)/float32(grid) - 0.5)).
				Add(f.up.Scale(float32(j)/float32(grid) - 0.5))

			s := p.Sign()
			n := p.Sub(s.Scale(halfSegment)).Normalize()
			pos := math.Vec3{X: box.X * s.X, Y: box.Y * s.Y, Z: box.Z * s.Z}.Add(n.Scale(radius))

			nn := n.Dot(f.normal)
			return scene.Vertex{
				Position: [3]float32{pos.X, pos.Y, pos.Z},
				Normal:   [3]float32{n.X, n.Y, n.Z},
				UV: [2]float32{
					arcCoord(p.Dot(f.right), n.Dot(f.right), nn, radius, sideU),
					arcCoord(p.Dot(f.up), n.Dot(f.up), nn, radius, sideV),
				},
			}
		}

		for j := 0; j < grid; j++ {
			for i := 0; i < grid; i++ {
				a := corner(i, j)
				b := corner(i+1, j)
				c := corner(i+1, j+1)
				d := corner(i, j+1)
				vertices = append(vertices, a, b, c, a, c, d)
			}
		}
	}

	return scene.NewGeometry(vertices)
}

// arcCoord maps a vertex to [0, 1] along one face axis. p is the unit box
// coordinate along the axis, n and nFace the rounded normal's components
// along the axis and along the face normal.
func arcCoord(p, n, nFace, radius, side float32) float32 {
	arcLength := float32(gomath.Pi) * radius / 2
	centerLength := max(side-2*radius, 0)
	total := arcLength + centerLength
	if total == 0 {
		return 0.5
	}
	arcRatio := 0.5 * arcLength / total

	angle := float32(gomath.Atan2(float64(abs(n)), float64(nFace)))
	along := math.Clamp(1-angle/(gomath.Pi/4), 0, 1)

	if p > 0 {
		return 1 - arcRatio*along
	}
	return arcRatio * along
}

func absDot(a, b math.Vec3) float32 {
	return abs(a.Dot(b))
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
