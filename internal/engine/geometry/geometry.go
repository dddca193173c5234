// Package geometry provides the renderable mesh type and the vertex
// processing used to derive reduced-detail meshes from it.
package geometry

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh holds mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// PositionBytes returns the byte size of the mesh position data.
// Positions are three float32 components per vertex.
func (m *Mesh) PositionBytes() int64 {
	return int64(len(m.Vertices)) * 3 * 4
}

// Clone returns a deep copy of the mesh with independently owned buffers.
// The copy never aliases the source; modifying one leaves the other intact.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
		Bounds:   m.Bounds,
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Indices, m.Indices)
	return c
}

// RecomputeBounds recalculates the bounding box from the current vertices.
func (m *Mesh) RecomputeBounds() {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for i := range m.Vertices {
		updateBounds(&b, m.Vertices[i].Position)
	}
	if len(m.Vertices) == 0 {
		b = Bounds{}
	}
	m.Bounds = b
}

// Center returns the center point of the bounding box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	if p[0] < b.Min[0] {
		b.Min[0] = p[0]
	}
	if p[1] < b.Min[1] {
		b.Min[1] = p[1]
	}
	if p[2] < b.Min[2] {
		b.Min[2] = p[2]
	}
	if p[0] > b.Max[0] {
		b.Max[0] = p[0]
	}
	if p[1] > b.Max[1] {
		b.Max[1] = p[1]
	}
	if p[2] > b.Max[2] {
		b.Max[2] = p[2]
	}
}
