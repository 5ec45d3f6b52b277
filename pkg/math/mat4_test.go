package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	got := m.Mul(Identity())
	if got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(V3(5, 10, 15))
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	got := m.TransformVec3(V3(1, 2, 3))
	if want := V3(6, 12, 18); got != want {
		t.Errorf("TransformVec3() = %v, want %v", got, want)
	}
}

func TestTranslateRotateScaleOrder(t *testing.T) {
	// translate * rotate * scale applies scale first, translation last.
	model := Translate(V3(10, 0, 0)).Mul(RotateY(math.Pi / 2)).Mul(UniformScale(2))
	got := model.TransformVec3(V3(1, 0, 0))
	want := V3(10, 0, -2)
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("model.TransformVec3() = %v, want %v", got, want)
	}
}

func TestRotateY(t *testing.T) {
	got := RotateY(math.Pi / 2).TransformVec3(V3(0, 0, 1))
	want := V3(1, 0, 0)
	if !got.ApproxEqual(want, 1e-6) {
		t.Errorf("RotateY(pi/2) * +Z = %v, want %v", got, want)
	}
}

func TestLookAt(t *testing.T) {
	eye := V3(0, 0, 8)
	view := LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))

	// The eye maps to the origin of view space.
	if got := view.TransformVec3(eye); !got.ApproxEqual(Vec3{}, 1e-5) {
		t.Errorf("view * eye = %v, want origin", got)
	}
	// The target ends up straight ahead on -Z.
	if got := view.TransformVec3(V3(0, 0, 0)); !got.ApproxEqual(V3(0, 0, -8), 1e-5) {
		t.Errorf("view * target = %v, want (0, 0, -8)", got)
	}
}

func TestPerspective(t *testing.T) {
	p := Perspective(Radians(90), 1, 0.1, 100)
	if math.Abs(float64(p[0]-1)) > 1e-6 || math.Abs(float64(p[5]-1)) > 1e-6 {
		t.Errorf("Perspective(90deg) focal = (%f, %f), want (1, 1)", p[0], p[5])
	}
	if p[11] != -1 {
		t.Errorf("Perspective w row = %f, want -1", p[11])
	}
}
