package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslateTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestRotateYMatchesVec3RotateY(t *testing.T) {
	angle := float32(0.7)
	v := Vec3{1.5, -0.3, 2.0}
	a := RotateY(angle).TransformPoint(v)
	b := v.RotateY(angle)
	if Abs(a.X-b.X) > 1e-5 || Abs(a.Y-b.Y) > 1e-5 || Abs(a.Z-b.Z) > 1e-5 {
		t.Errorf("RotateY matrix %v != Vec3.RotateY %v", a, b)
	}
}

func TestTranslateRotateCompose(t *testing.T) {
	// Rotate first, then translate: world = T * R * local.
	m := Translate(0, 5, 0).Mul(RotateY(Pi / 2))
	got := m.TransformPoint(Vec3{1, 0, 0})
	if Abs(got.X) > 1e-5 || Abs(got.Y-5) > 1e-5 || Abs(got.Z+1) > 1e-5 {
		t.Errorf("T*R transform: got %v, want (0,5,-1)", got)
	}
}
