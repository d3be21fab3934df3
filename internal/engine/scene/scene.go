// Package scene holds the retained scene data the preview renderer draws:
// a background, an environment lighting map and a list of meshes.
//
// Objects here are CPU-side descriptions. GPU copies are created lazily by the
// renderer and released when the owning object's Dispose is called.
package scene

// Scene is the root container drawn by the renderer.
type Scene struct {
	Background Color

	// Environment lights and reflects off standard materials. May be nil.
	Environment EnvironmentMap

	meshes []*Mesh
}

// New creates an empty scene with a black background.
func New() *Scene {
	return &Scene{}
}

// Add appends m to the scene, detaching it from any previous scene.
func (s *Scene) Add(m *Mesh) {
	if m.parent == s {
		return
	}
	if m.parent != nil {
		m.parent.Remove(m)
	}
	m.parent = s
	s.meshes = append(s.meshes, m)
}

// Remove detaches m and reports whether it was present.
func (s *Scene) Remove(m *Mesh) bool {
	for i, other := range s.meshes {
		if other == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			m.parent = nil
			return true
		}
	}
	return false
}

// Meshes returns the meshes in draw order.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}
