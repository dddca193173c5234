package geometry

import "github.com/Faultbox/lodview/pkg/formats"

// BuildMesh converts parsed OBJ data into a renderable mesh. Faces are
// triangulated as fans; corners become distinct vertices so per-face
// texcoords survive. Normals come from the file when present, otherwise
// they are generated from the triangles.
func BuildMesh(obj *formats.OBJ) *Mesh {
	if obj == nil || len(obj.Faces) == 0 {
		return nil
	}

	m := &Mesh{}
	hasNormals := true

	for _, face := range obj.Faces {
		if len(face.Corners) < 3 {
			continue
		}
		base := uint32(len(m.Vertices))

		for _, c := range face.Corners {
			v := Vertex{Position: obj.Positions[c.Pos]}
			if c.Tex >= 0 {
				v.TexCoord = obj.TexCoords[c.Tex]
			}
			if c.Norm >= 0 {
				v.Normal = obj.Normals[c.Norm]
			} else {
				hasNormals = false
			}
			m.Vertices = append(m.Vertices, v)
		}

		// Fan triangulation handles quads and larger convex faces.
		for i := 2; i < len(face.Corners); i++ {
			m.Indices = append(m.Indices, base, base+uint32(i-1), base+uint32(i))
		}
	}

	if len(m.Vertices) == 0 {
		return nil
	}

	m.RecomputeBounds()
	if !hasNormals {
		RecomputeNormals(m)
	}
	return m
}
