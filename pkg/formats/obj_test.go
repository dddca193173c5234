package formats

import (
	"errors"
	"testing"
)

const cubeFaceOBJ = `
# a single quad with texcoords and normals
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	obj, err := ParseOBJ([]byte(cubeFaceOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}

	if len(obj.Positions) != 4 {
		t.Errorf("positions = %d, want 4", len(obj.Positions))
	}
	if len(obj.TexCoords) != 4 {
		t.Errorf("texcoords = %d, want 4", len(obj.TexCoords))
	}
	if len(obj.Normals) != 1 {
		t.Errorf("normals = %d, want 1", len(obj.Normals))
	}
	if len(obj.Faces) != 1 {
		t.Fatalf("faces = %d, want 1", len(obj.Faces))
	}
	if len(obj.Faces[0].Corners) != 4 {
		t.Errorf("face corners = %d, want 4", len(obj.Faces[0].Corners))
	}

	c := obj.Faces[0].Corners[2]
	if c.Pos != 2 || c.Tex != 2 || c.Norm != 0 {
		t.Errorf("corner 2 = %+v, want {Pos:2 Tex:2 Norm:0}", c)
	}
}

func TestParseOBJCornerForms(t *testing.T) {
	tests := []struct {
		name string
		face string
		want OBJCorner // first corner
	}{
		{"position only", "f 1 2 3", OBJCorner{Pos: 0, Tex: -1, Norm: -1}},
		{"position and texcoord", "f 1/1 2/1 3/1", OBJCorner{Pos: 0, Tex: 0, Norm: -1}},
		{"position and normal", "f 1//1 2//1 3//1", OBJCorner{Pos: 0, Tex: -1, Norm: 0}},
		{"negative indices", "f -3 -2 -1", OBJCorner{Pos: 0, Tex: -1, Norm: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\n" + tt.face + "\n"
			obj, err := ParseOBJ([]byte(src))
			if err != nil {
				t.Fatalf("ParseOBJ() error = %v", err)
			}
			if len(obj.Faces) != 1 {
				t.Fatalf("faces = %d, want 1", len(obj.Faces))
			}
			if got := obj.Faces[0].Corners[0]; got != tt.want {
				t.Errorf("first corner = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"short vertex", "v 1 2\n"},
		{"bad float", "v a b c\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ([]byte(tt.src)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseOBJEmpty(t *testing.T) {
	_, err := ParseOBJ([]byte("# only comments\n"))
	if !errors.Is(err, ErrEmptyOBJData) {
		t.Errorf("expected ErrEmptyOBJData, got %v", err)
	}
}

func TestParseOBJSkipsUnknownDirectives(t *testing.T) {
	src := "mtllib scene.mtl\no thing\ns off\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	if len(obj.Faces) != 1 {
		t.Errorf("faces = %d, want 1", len(obj.Faces))
	}
}
