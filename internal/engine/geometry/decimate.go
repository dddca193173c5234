package geometry

// MinVertexCount is the smallest vertex count a decimated mesh may have,
// one triangle's worth.
const MinVertexCount = 3

// Decimate reduces a position buffer to roughly targetCount points by
// fixed-stride subsampling: every stride-th point is kept, in original order.
// No points are reordered, averaged, or fabricated. Single pass, O(n).
//
// If targetCount >= len(positions) the input is returned as an equal-length
// copy, never truncated.
func Decimate(positions [][3]float32, targetCount int) [][3]float32 {
	if targetCount >= len(positions) {
		out := make([][3]float32, len(positions))
		copy(out, positions)
		return out
	}
	if targetCount < 1 {
		targetCount = 1
	}

	stride := len(positions) / targetCount
	if stride < 1 {
		stride = 1
	}

	out := make([][3]float32, 0, targetCount+1)
	for i := 0; i < len(positions); i += stride {
		out = append(out, positions[i])
	}
	return out
}

// DecimateTo reduces the mesh in place to roughly targetCount vertices,
// subsampling whole vertices at a fixed stride so texture coordinates follow
// their positions. The index buffer is rebuilt as a sequential triangle list
// over the surviving vertices, bounds are recalculated, and normals are
// regenerated from the new density (the originals would be stale).
//
// targetCount is clamped to MinVertexCount. A targetCount at or above the
// current vertex count leaves the mesh unchanged.
func (m *Mesh) DecimateTo(targetCount int) {
	if targetCount < MinVertexCount {
		targetCount = MinVertexCount
	}
	if targetCount >= len(m.Vertices) {
		return
	}

	stride := len(m.Vertices) / targetCount
	if stride < 1 {
		stride = 1
	}

	kept := make([]Vertex, 0, targetCount+1)
	for i := 0; i < len(m.Vertices); i += stride {
		kept = append(kept, m.Vertices[i])
	}
	m.Vertices = kept

	// The original indices refer to removed vertices; rebuild as a plain
	// triangle list over what survived.
	triVerts := len(m.Vertices) - len(m.Vertices)%3
	m.Indices = make([]uint32, triVerts)
	for i := 0; i < triVerts; i++ {
		m.Indices[i] = uint32(i)
	}

	m.RecomputeBounds()
	RecomputeNormals(m)
}
