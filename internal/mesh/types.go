package mesh

import "objview/internal/mathutil"

// Mesh holds triangulated geometry in object-local space.
type Mesh struct {
	Name  string
	Verts []mathutil.Vec3
	Tris  [][3]int // indices into Verts, counter-clockwise
}

// Bounds returns the local-space bounding box of all vertices.
func (m *Mesh) Bounds() mathutil.Box {
	return mathutil.BoxOf(m.Verts)
}

// Recenter translates the vertices so the bounding box centre sits at the
// origin and returns the applied offset.
func (m *Mesh) Recenter() mathutil.Vec3 {
	if len(m.Verts) == 0 {
		return mathutil.Vec3{}
	}
	off := m.Bounds().Center().Scale(-1)
	for i := range m.Verts {
		m.Verts[i] = m.Verts[i].Add(off)
	}
	return off
}

// Plane returns a 2×2 quad in the XY plane centred on the origin, facing +Z.
func Plane() *Mesh {
	return &Mesh{
		Name: "Plane",
		Verts: []mathutil.Vec3{
			{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
		},
		Tris: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}
