package scene

// Mesh pairs a geometry with one or more materials.
type Mesh struct {
	Geometry  *Geometry
	Materials []*Material

	parent *Scene
}

// NewMesh creates a mesh. The first material is used for drawing.
func NewMesh(g *Geometry, materials ...*Material) *Mesh {
	return &Mesh{Geometry: g, Materials: materials}
}

// Material returns the primary material, or nil.
func (m *Mesh) Material() *Material {
	if len(m.Materials) == 0 {
		return nil
	}
	return m.Materials[0]
}

// Parent returns the scene holding the mesh, or nil.
func (m *Mesh) Parent() *Scene {
	return m.parent
}
