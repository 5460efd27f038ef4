package scene

import (
	"math"
	"testing"

	"github.com/gogpu/pathtrace/geom"
)

func TestRectangle_IntersectInsideAndOutsideBounds(t *testing.T) {
	s := NewSurface(colourWhite(), 1, 0, 0, 0, 1)
	rect := NewRectangle(geom.Pt3(0, 0, 0), geom.Pt3(1, 0, 0), geom.Pt3(0, 1, 0), s)

	inside := geom.Ray3{Origin: geom.Pt3(0.3, 0.3, 1), Direction: geom.Vec3(0, 0, -1)}
	r := rect.Intersect(inside)
	if !r.Hit() {
		t.Fatal("expected hit within rectangle bounds")
	}
	if math.Abs(r.Distance-1) > 1e-9 {
		t.Errorf("distance = %v, want 1", r.Distance)
	}

	outside := geom.Ray3{Origin: geom.Pt3(2, 2, 1), Direction: geom.Vec3(0, 0, -1)}
	if rect.Intersect(outside).Hit() {
		t.Error("expected miss outside rectangle bounds")
	}
}

func TestRectangle_SampleSurface_WithinBounds(t *testing.T) {
	s := NewSurface(colourWhite(), 0, 0, 0, 5, 1)
	rect := NewRectangle(geom.Pt3(0, 0, 0), geom.Pt3(2, 0, 0), geom.Pt3(0, 3, 0), s)
	p, ok := rect.SampleSurface(fixedRand{0.25})
	if !ok {
		t.Fatal("expected Rectangle.SampleSurface to succeed")
	}
	want := geom.Pt3(0.5, 0.75, 0)
	if math.Abs(p.X-want.X) > 1e-9 || math.Abs(p.Y-want.Y) > 1e-9 || math.Abs(p.Z-want.Z) > 1e-9 {
		t.Errorf("sample = %v, want %v", p, want)
	}
}

func TestRectangle_TextureMapRoundTrip(t *testing.T) {
	s := NewSurface(colourWhite(), 1, 0, 0, 0, 1)
	rect := NewRectangle(geom.Pt3(0, 0, 0), geom.Pt3(2, 0, 0), geom.Pt3(0, 2, 0), s)
	u, v := rect.TextureMap(geom.Pt3(1, 1, 0))
	if math.Abs(u-0.5) > 1e-9 || math.Abs(v-0.5) > 1e-9 {
		t.Errorf("TextureMap = (%v,%v), want (0.5,0.5)", u, v)
	}
}
