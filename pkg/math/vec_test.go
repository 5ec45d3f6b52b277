package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero.Normalize() = %v, want zero", z)
	}
}

func TestVec3Length(t *testing.T) {
	if got := (Vec3{2, 3, 6}).Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		in   float32
		want bool
	}{
		{0, true},
		{-1.5, true},
		{float32(math.NaN()), false},
		{float32(math.Inf(1)), false},
		{float32(math.Inf(-1)), false},
	}
	for _, tt := range tests {
		if got := IsFinite(tt.in); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if (Vec3{1, float32(math.NaN()), 0}).IsFinite() {
		t.Error("Vec3 with NaN component reported finite")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(100, 1, 45); got != 45 {
		t.Errorf("Clamp(100, 1, 45) = %v, want 45", got)
	}
	if got := Clamp(-3, 1, 45); got != 1 {
		t.Errorf("Clamp(-3, 1, 45) = %v, want 1", got)
	}
}
