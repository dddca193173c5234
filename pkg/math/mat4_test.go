package math

import "testing"

func TestIdentityTransform(t *testing.T) {
	m := Identity()
	p := [3]float32{1, 2, 3}
	got := m.TransformPoint(p)
	if got != p {
		t.Errorf("Identity().TransformPoint(%v) = %v, want unchanged", p, got)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint([3]float32{1, 1, 1})
	want := [3]float32{11, 21, 31}
	if got != want {
		t.Errorf("Translate.TransformPoint() = %v, want %v", got, want)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.Mul(Identity())
	if got != m {
		t.Errorf("m.Mul(Identity()) = %v, want %v", got, m)
	}
}

func TestMulCompose(t *testing.T) {
	// Translation composes: T(a) * T(b) applied to origin = a+b.
	m := Translate(1, 0, 0).Mul(Translate(0, 2, 0))
	got := m.TransformPoint([3]float32{0, 0, 0})
	want := [3]float32{1, 2, 0}
	if got != want {
		t.Errorf("composed translate = %v, want %v", got, want)
	}
}

func TestLookAtEyeMapsToOrigin(t *testing.T) {
	eye := Vec3{5, 3, 8}
	view := LookAt(eye, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	got := view.TransformVec3(eye)
	const eps = 1e-4
	if got.Length() > eps {
		t.Errorf("LookAt view of eye = %v, want origin", got)
	}
}
