// Package environment produces the pre-filtered lighting map that lights and
// reflects off the preview mesh.
package environment

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/juncci-splash/internal/engine/scene"
	"github.com/Faultbox/juncci-splash/pkg/math"
)

// Box is an axis-aligned box with a uniform emitted radiance.
type Box struct {
	Center   math.Vec3
	HalfSize math.Vec3
	Radiance float32
}

// Room is an interior viewed from the origin: grey walls and emissive panels.
type Room struct {
	Walls  Box
	Lights []Box
}

// box builds a Box from a center and full size.
func box(cx, cy, cz, sx, sy, sz, radiance float32) Box {
	return Box{
		Center:   math.Vec3{X: cx, Y: cy, Z: cz},
		HalfSize: math.Vec3{X: sx / 2, Y: sy / 2, Z: sz / 2},
		Radiance: radiance,
	}
}

// StandardRoom returns the neutral studio room: a large grey box with two
// softboxes on the left wall, one on the right, one behind, one in front and
// a bright ceiling panel overhead.
func StandardRoom() Room {
	return Room{
		Walls: box(-0.757, 13.219, 0.717, 31.713, 28.305, 28.591, 0.4),
		Lights: []Box{
			box(-16.116, 14.37, 8.208, 0.1, 2.428, 2.739, 50),
			box(-16.109, 18.021, -8.207, 0.1, 2.425, 2.751, 50),
			box(14.904, 12.198, -1.832, 0.15, 4.265, 6.331, 17),
			box(-0.462, 8.89, 14.52, 4.38, 5.441, 0.088, 43),
			box(3.235, 11.486, -12.541, 2.5, 2.0, 0.1, 20),
			box(0, 20, 0, 1, 0.1, 1, 100),
		},
	}
}

// Preset returns the room for a named preset.
func Preset(p scene.EnvironmentPreset) (Room, error) {
	switch p {
	case scene.RoomPreset:
		return StandardRoom(), nil
	default:
		return Room{}, fmt.Errorf("unknown environment preset %d", p)
	}
}

// Radiance returns the radiance seen from the origin along dir.
func (r Room) Radiance(dir math.Vec3) float32 {
	dir = dir.Normalize()

	wall, ok := r.Walls.exit(dir)
	if !ok {
		return 0
	}

	nearest := wall
	radiance := r.Walls.Radiance
	for _, l := range r.Lights {
		if t, hit := l.enter(dir); hit && t < nearest {
			nearest = t
			radiance = l.Radiance
		}
	}
	return radiance
}

// Equirect renders the room into an equirectangular RGB float map.
// Row 0 is the nadir and row height-1 the zenith, matching GL texture rows.
func (r Room) Equirect(width, height int) []float32 {
	data := make([]float32, 0, width*height*3)
	for y := 0; y < height; y++ {
		lat := (float64(y)+0.5)/float64(height)*gomath.Pi - gomath.Pi/2
		for x := 0; x < width; x++ {
			lon := ((float64(x)+0.5)/float64(width) - 0.5) * 2 * gomath.Pi
			dir := math.Vec3{
				X: float32(gomath.Cos(lat) * gomath.Cos(lon)),
				Y: float32(gomath.Sin(lat)),
				Z: float32(gomath.Cos(lat) * gomath.Sin(lon)),
			}
			v := r.Radiance(dir)
			data = append(data, v, v, v)
		}
	}
	return data
}

// exit returns the distance at which a ray from the origin leaves the box.
func (b Box) exit(dir math.Vec3) (float32, bool) {
	tNear, tFar := b.slab(dir)
	if tFar < 0 || tNear > tFar {
		return 0, false
	}
	return tFar, true
}

// enter returns the distance at which a ray from the origin enters the box.
func (b Box) enter(dir math.Vec3) (float32, bool) {
	tNear, tFar := b.slab(dir)
	if tNear > tFar || tNear < 0 {
		return 0, false
	}
	return tNear, true
}

func (b Box) slab(dir math.Vec3) (tNear, tFar float32) {
	lo := b.Center.Sub(b.HalfSize)
	hi := b.Center.Add(b.HalfSize)

	tNear = float32(gomath.Inf(-1))
	tFar = float32(gomath.Inf(1))
	axes := [3][3]float32{
		{dir.X, lo.X, hi.X},
		{dir.Y, lo.Y, hi.Y},
		{dir.Z, lo.Z, hi.Z},
	}
	for _, a := range axes {
		d, l, h := a[0], a[1], a[2]
		if d == 0 {
			if l > 0 || h < 0 {
				return 1, 0
			}
			continue
		}
		t1, t2 := l/d, h/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = max(tNear, t1)
		tFar = min(tFar, t2)
	}
	return tNear, tFar
}
