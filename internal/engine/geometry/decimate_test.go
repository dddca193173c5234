package geometry

import "testing"

func makePositions(n int) [][3]float32 {
	out := make([][3]float32, n)
	for i := range out {
		out[i] = [3]float32{float32(i), float32(i) * 2, float32(i) * 3}
	}
	return out
}

func TestDecimateLength(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		target int
	}{
		{"half", 1000, 500},
		{"tenth", 1000, 100},
		{"thirds", 10, 3},
		{"uneven", 1000, 333},
		{"small input", 7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decimate(makePositions(tt.count), tt.target)

			// Stride rounding may overshoot by up to one stride unit.
			stride := tt.count / tt.target
			min, max := tt.target, tt.count/stride+1
			if len(got) < min || len(got) > max {
				t.Errorf("Decimate(%d pts, target %d) len = %d, want in [%d, %d]",
					tt.count, tt.target, len(got), min, max)
			}
		})
	}
}

func TestDecimatePreservesOrderAndPoints(t *testing.T) {
	in := makePositions(100)
	got := Decimate(in, 25)

	// Every output point must exist in the input, in original relative order.
	next := 0
	for i, p := range got {
		found := false
		for j := next; j < len(in); j++ {
			if in[j] == p {
				next = j + 1
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("output point %d (%v) not found in input after position %d", i, p, next)
		}
	}
}

func TestDecimateNoOp(t *testing.T) {
	in := makePositions(10)

	for _, target := range []int{10, 11, 100} {
		got := Decimate(in, target)
		if len(got) != len(in) {
			t.Errorf("Decimate(target %d) len = %d, want %d (no-op)", target, len(got), len(in))
		}
		for i := range got {
			if got[i] != in[i] {
				t.Errorf("Decimate(target %d) point %d = %v, want %v", target, i, got[i], in[i])
			}
		}
	}
}

func TestDecimateReturnsCopy(t *testing.T) {
	in := makePositions(5)
	got := Decimate(in, 10)
	got[0][0] = 999
	if in[0][0] == 999 {
		t.Error("Decimate no-op result aliases input buffer")
	}
}

func TestDecimateToRegeneratesNormalsAndBounds(t *testing.T) {
	m := makeTestMesh(300)
	m.DecimateTo(30)

	if len(m.Vertices) < 30 || len(m.Vertices) >= 300 {
		t.Fatalf("DecimateTo(30) vertices = %d, want roughly 30", len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		t.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range for %d vertices", idx, len(m.Vertices))
		}
	}

	// All normals must be unit length after regeneration.
	for i, v := range m.Vertices {
		l := v.Normal[0]*v.Normal[0] + v.Normal[1]*v.Normal[1] + v.Normal[2]*v.Normal[2]
		if l < 0.99 || l > 1.01 {
			t.Fatalf("vertex %d normal not unit length: %v", i, v.Normal)
		}
	}
}

func TestDecimateToClampsToMinimum(t *testing.T) {
	m := makeTestMesh(30)
	m.DecimateTo(0)
	if len(m.Vertices) < MinVertexCount {
		t.Errorf("DecimateTo(0) vertices = %d, want >= %d", len(m.Vertices), MinVertexCount)
	}
}

func TestDecimateToNoOpAtOrAboveCount(t *testing.T) {
	m := makeTestMesh(30)
	before := len(m.Vertices)
	m.DecimateTo(30)
	if len(m.Vertices) != before {
		t.Errorf("DecimateTo(count) changed vertex count %d -> %d", before, len(m.Vertices))
	}
}

// makeTestMesh builds a mesh of n vertices arranged as a strip of triangles.
func makeTestMesh(n int) *Mesh {
	m := &Mesh{Vertices: make([]Vertex, n)}
	for i := range m.Vertices {
		m.Vertices[i] = Vertex{Position: [3]float32{float32(i), float32(i % 7), 0}}
	}
	for i := 0; i+2 < n; i += 3 {
		m.Indices = append(m.Indices, uint32(i), uint32(i+1), uint32(i+2))
	}
	m.RecomputeBounds()
	return m
}
