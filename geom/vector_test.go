package geom

import (
	"math"
	"testing"
)

func TestVector3_Normalize(t *testing.T) {
	v := Vec3(3, 4, 0)
	n := v.Normalize()
	if got := n.Length(); math.Abs(got-1) > 1e-9 {
		t.Errorf("Normalize().Length() = %v, want 1", got)
	}
	if got := (Vector3{}).Normalize(); got != (Vector3{}) {
		t.Errorf("Normalize() of zero vector = %v, want zero vector", got)
	}
}

func TestVector3_DotCross(t *testing.T) {
	i := Vec3(1, 0, 0)
	j := Vec3(0, 1, 0)
	if got := i.Dot(j); got != 0 {
		t.Errorf("i.Dot(j) = %v, want 0", got)
	}
	if got := i.Cross(j); got != Vec3(0, 0, 1) {
		t.Errorf("i.Cross(j) = %v, want (0,0,1)", got)
	}
}

func TestVector3_Reflect(t *testing.T) {
	v := Vec3(1, -1, 0)
	n := Vec3(0, 1, 0)
	got := v.Reflect(n)
	want := Vec3(1, 1, 0)
	if got != want {
		t.Errorf("Reflect() = %v, want %v", got, want)
	}
}

func TestRay3_At(t *testing.T) {
	r := Ray3{Origin: Pt3(0, 0, 0), Direction: Vec3(0, 0, -1)}
	p := r.At(2)
	if p != (Point3{X: 0, Y: 0, Z: -2}) {
		t.Errorf("At(2) = %v, want (0,0,-2)", p)
	}
}
