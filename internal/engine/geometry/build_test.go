package geometry

import (
	"testing"

	"github.com/Faultbox/lodview/pkg/formats"
)

func TestBuildMeshTriangulatesQuad(t *testing.T) {
	obj := &formats.OBJ{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Normals:   [][3]float32{{0, 0, 1}},
		Faces: []formats.OBJFace{{Corners: []formats.OBJCorner{
			{Pos: 0, Tex: -1, Norm: 0},
			{Pos: 1, Tex: -1, Norm: 0},
			{Pos: 2, Tex: -1, Norm: 0},
			{Pos: 3, Tex: -1, Norm: 0},
		}}},
	}

	m := BuildMesh(obj)
	if m == nil {
		t.Fatal("BuildMesh() = nil")
	}
	if len(m.Vertices) != 4 {
		t.Errorf("vertices = %d, want 4", len(m.Vertices))
	}
	if len(m.Indices) != 6 {
		t.Errorf("indices = %d, want 6 (two triangles)", len(m.Indices))
	}
	if m.Vertices[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("file normal not carried over: %v", m.Vertices[0].Normal)
	}
	if m.Bounds.Max != [3]float32{1, 1, 0} {
		t.Errorf("bounds max = %v, want {1 1 0}", m.Bounds.Max)
	}
}

func TestBuildMeshGeneratesMissingNormals(t *testing.T) {
	obj := &formats.OBJ{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces: []formats.OBJFace{{Corners: []formats.OBJCorner{
			{Pos: 0, Tex: -1, Norm: -1},
			{Pos: 1, Tex: -1, Norm: -1},
			{Pos: 2, Tex: -1, Norm: -1},
		}}},
	}

	m := BuildMesh(obj)
	if m == nil {
		t.Fatal("BuildMesh() = nil")
	}
	if m.Vertices[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("generated normal = %v, want {0 0 1}", m.Vertices[0].Normal)
	}
}

func TestBuildMeshEmpty(t *testing.T) {
	if m := BuildMesh(&formats.OBJ{}); m != nil {
		t.Errorf("BuildMesh(empty) = %v, want nil", m)
	}
	if m := BuildMesh(nil); m != nil {
		t.Errorf("BuildMesh(nil) = %v, want nil", m)
	}
}
