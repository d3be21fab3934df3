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
	l := Vec3{3, 4, 12}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Sign(t *testing.T) {
	got := Vec3{-0.2, 0, 5}.Sign()
	want := Vec3{-1, 0, 1}
	if got != want {
		t.Errorf("Vec3.Sign() = %v, want %v", got, want)
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	tests := []Vec3{
		{0, 0, 2.5},
		{1, 1, 1},
		{-0.3, 2, -4},
	}

	for _, v := range tests {
		got := SphericalFromVec3(v).Vec3()
		if got.Sub(v).Length() > 1e-5 {
			t.Errorf("round trip of %v = %v", v, got)
		}
	}
}

func TestSphericalFromPositiveZ(t *testing.T) {
	s := SphericalFromVec3(Vec3{0, 0, 2.5})
	if abs(s.Radius-2.5) > 1e-6 {
		t.Errorf("radius = %f, want 2.5", s.Radius)
	}
	if abs(s.Phi-math.Pi/2) > 1e-6 {
		t.Errorf("phi = %f, want pi/2", s.Phi)
	}
	if s.Theta != 0 {
		t.Errorf("theta = %f, want 0", s.Theta)
	}
}

func TestMakeSafe(t *testing.T) {
	s := Spherical{Radius: 1, Phi: 0}.MakeSafe()
	if s.Phi <= 0 {
		t.Errorf("MakeSafe should move phi off the pole, got %f", s.Phi)
	}
	s = Spherical{Radius: 1, Phi: 4}.MakeSafe()
	if s.Phi >= math.Pi {
		t.Errorf("MakeSafe should keep phi below pi, got %f", s.Phi)
	}
}
