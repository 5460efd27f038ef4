package scene

import (
	"math"
	"testing"

	"github.com/gogpu/pathtrace/geom"
)

func axisAlignedBox(t *testing.T) *Box {
	t.Helper()
	s := NewSurface(colourWhite(), 1, 0, 0, 0, 1)
	return NewBox(geom.Pt3(0, 0, 0), geom.Vec3(1, 0, 0), geom.Vec3(0, 1, 0), geom.Vec3(0, 0, 1), geom.Vec3(1, 1, 1), s)
}

func TestBox_IntersectNearestFace(t *testing.T) {
	box := axisAlignedBox(t)
	ray := geom.Ray3{Origin: geom.Pt3(0, 0, 5), Direction: geom.Vec3(0, 0, -1)}
	r := box.Intersect(ray)
	if !r.Hit() {
		t.Fatal("expected a hit on the near face")
	}
	if math.Abs(r.Distance-4) > 1e-9 {
		t.Errorf("distance = %v, want 4", r.Distance)
	}
}

func TestBox_IntersectMiss(t *testing.T) {
	box := axisAlignedBox(t)
	ray := geom.Ray3{Origin: geom.Pt3(5, 5, 5), Direction: geom.Vec3(0, 0, -1)}
	if box.Intersect(ray).Hit() {
		t.Error("expected a miss off the box's footprint")
	}
}

func TestBox_IntersectResultShapeIsHitSide(t *testing.T) {
	box := axisAlignedBox(t)
	ray := geom.Ray3{Origin: geom.Pt3(0, 0, 5), Direction: geom.Vec3(0, 0, -1)}
	r := box.Intersect(ray)
	if r.Shape == Shape(box) {
		t.Error("expected the winning side, not Box itself, as the result's Shape")
	}
	if _, ok := r.Shape.(*Rectangle); !ok {
		t.Errorf("result.Shape is %T, want *Rectangle", r.Shape)
	}
}

func TestBox_SampleSurface_NotSamplable(t *testing.T) {
	box := axisAlignedBox(t)
	if _, ok := box.SampleSurface(fixedRand{0.5}); ok {
		t.Error("expected Box.SampleSurface to report ok=false")
	}
}
