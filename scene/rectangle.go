package scene

import (
	"math"

	"github.com/gogpu/pathtrace/geom"
)

// Rectangle is the finite parallelogram spanned from corner P0 by the
// edges P1-P0 and P2-P0 (grounded on
// original_source/include/shapes/Rectangle.hpp). Its intersection test
// precomputes the Gram-matrix terms needed for the barycentric-style u/v
// solve, and it is the only shape composing Box's six sides.
type Rectangle struct {
	P0, P1, P2 geom.Point3
	normal     geom.Vector3
	v0, v1     geom.Vector3 // P1-P0, P2-P0
	v0dv0, v1dv1, v0dv1 float64
	denom      float64
	surface    Surface
}

// NewRectangle builds a Rectangle from three corners: p0 is the shared
// corner, p1 and p2 are the two adjacent corners (p0+v0 and p0+v1).
func NewRectangle(p0, p1, p2 geom.Point3, surface Surface) *Rectangle {
	v0 := p1.Sub(p0)
	v1 := p2.Sub(p0)
	v0dv0 := v0.Dot(v0)
	v1dv1 := v1.Dot(v1)
	v0dv1 := v0.Dot(v1)
	return &Rectangle{
		P0: p0, P1: p1, P2: p2,
		normal:  v0.Cross(v1).Normalize(),
		v0:      v0,
		v1:      v1,
		v0dv0:   v0dv0,
		v1dv1:   v1dv1,
		v0dv1:   v0dv1,
		denom:   v0dv0*v1dv1 - v0dv1*v0dv1,
		surface: surface,
	}
}

func (r *Rectangle) Surface() Surface { return r.surface }

// Intersect solves the containing plane for t, then checks the hit point's
// barycentric-style (u,v) coordinates against the v0/v1 parallelogram
// bounds.
func (r *Rectangle) Intersect(ray geom.Ray3) IntersectionResult {
	denomPlane := ray.Direction.Dot(r.normal)
	if denomPlane == 0 {
		return NoHit()
	}
	t := r.P0.Sub(ray.Origin).Dot(r.normal) / denomPlane
	if t <= 0 || math.IsNaN(t) {
		return NoHit()
	}

	w := ray.At(t).Sub(r.P0)
	wdv0 := w.Dot(r.v0)
	wdv1 := w.Dot(r.v1)

	if r.denom == 0 {
		return NoHit()
	}
	u := (wdv0*r.v1dv1 - wdv1*r.v0dv1) / r.denom
	v := (wdv1*r.v0dv0 - wdv0*r.v0dv1) / r.denom
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return NoHit()
	}
	return IntersectionResult{Distance: t, Shape: r}
}

func (r *Rectangle) NormalAt(geom.Point3) geom.Vector3 { return r.normal }

// planeDistance is the signed distance from p to the rectangle's plane,
// used by Box.NormalAt to pick the nearest side when a caller queries the
// normal without an intersection to hand back a winning sub-shape.
func (r *Rectangle) planeDistance(p geom.Point3) float64 {
	return p.Sub(r.P0).Dot(r.normal)
}

func (r *Rectangle) TextureMap(point geom.Point3) (u, v float64) {
	w := point.Sub(r.P0)
	wdv0 := w.Dot(r.v0)
	wdv1 := w.Dot(r.v1)
	if r.denom == 0 {
		return 0, 0
	}
	return (wdv0*r.v1dv1 - wdv1*r.v0dv1) / r.denom,
		(wdv1*r.v0dv0 - wdv0*r.v0dv1) / r.denom
}

// SampleSurface draws a uniform point on the parallelogram as
// p0 + u*v0 + v*v1 for independent u, v ~ Uniform[0,1), matching the
// original's sampleSurface.
func (r *Rectangle) SampleSurface(rng Rand) (geom.Point3, bool) {
	u := rng.Float64()
	v := rng.Float64()
	offset := r.v0.Mul(u).Add(r.v1.Mul(v))
	return r.P0.Add(offset), true
}
