package geometry

import "github.com/chewxy/math32"

// RecomputeNormals regenerates vertex normals from the current triangle list.
// Face normals are accumulated onto their vertices, then averaged across
// vertices sharing a position so coincident seams shade smoothly.
func RecomputeNormals(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Normal = [3]float32{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(i0) >= len(m.Vertices) || int(i1) >= len(m.Vertices) || int(i2) >= len(m.Vertices) {
			continue
		}

		p0 := m.Vertices[i0].Position
		p1 := m.Vertices[i1].Position
		p2 := m.Vertices[i2].Position

		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		n := cross(e1, e2)

		// Degenerate triangles contribute nothing.
		if lengthSq(n) < 1e-10 {
			continue
		}

		for _, vi := range []uint32{i0, i1, i2} {
			m.Vertices[vi].Normal[0] += n[0]
			m.Vertices[vi].Normal[1] += n[1]
			m.Vertices[vi].Normal[2] += n[2]
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(m.Vertices[i].Normal)
	}

	SmoothNormals(m.Vertices)
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance after vertex reduction.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup.
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum [3]float32
		for _, idx := range idxs {
			sum[0] += vertices[idx].Normal[0]
			sum[1] += vertices[idx].Normal[1]
			sum[2] += vertices[idx].Normal[2]
		}

		avg := normalize(sum)
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func lengthSq(v [3]float32) float32 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(lengthSq(v))
	if l < 1e-8 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
