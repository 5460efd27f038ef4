package scene

import (
	"math"

	"github.com/gogpu/pathtrace/geom"
)

// Box is a rectangular cuboid built from six Rectangle sides under an
// arbitrary rigid rotation (grounded on
// original_source/include/shapes/Box.hpp). Its Intersect tests all six
// sides and returns the winning side itself as the IntersectionResult's
// Shape, so NormalAt/TextureMap/SampleSurface naturally dispatch to the
// correct face without Box needing to track which side was hit — the
// original's calculateNormal, by contrast, had no way to do this and
// always returned a zero vector.
type Box struct {
	sides   [6]*Rectangle
	surface Surface
}

// NewBox builds a Box centered at origin, with right/up/forward forming
// an orthonormal local frame (the box's rotation) and halfSize giving the
// half-extent along each of those axes.
func NewBox(origin geom.Point3, right, up, forward, halfSize geom.Vector3, surface Surface) *Box {
	right = right.Normalize()
	up = up.Normalize()
	forward = forward.Normalize()

	rx := right.Mul(halfSize.X)
	ry := up.Mul(halfSize.Y)
	rz := forward.Mul(halfSize.Z)

	corner := func(sx, sy, sz float64) geom.Point3 {
		v := rx.Mul(sx).Add(ry.Mul(sy)).Add(rz.Mul(sz))
		return origin.Add(v)
	}

	c000 := corner(-1, -1, -1)
	c100 := corner(1, -1, -1)
	c010 := corner(-1, 1, -1)
	c001 := corner(-1, -1, 1)
	c110 := corner(1, 1, -1)
	c101 := corner(1, -1, 1)
	c011 := corner(-1, 1, 1)

	b := &Box{surface: surface}
	b.sides = [6]*Rectangle{
		NewRectangle(c000, c100, c010, surface), // -forward face
		NewRectangle(c001, c101, c011, surface), // +forward face
		NewRectangle(c000, c100, c001, surface), // -up face
		NewRectangle(c010, c110, c011, surface), // +up face
		NewRectangle(c000, c010, c001, surface), // -right face
		NewRectangle(c100, c110, c101, surface), // +right face
	}
	return b
}

func (b *Box) Surface() Surface { return b.surface }

// Intersect scans all six sides for the nearest positive hit, returning
// the winning Rectangle itself as the result's Shape.
func (b *Box) Intersect(ray geom.Ray3) IntersectionResult {
	best := NoHit()
	for _, side := range b.sides {
		r := side.Intersect(ray)
		if r.Hit() && r.Distance < best.Distance {
			best = r
		}
	}
	return best
}

// NormalAt is only reachable if a caller queries Box directly rather than
// through an IntersectionResult (which already names the hit side); it
// falls back to the nearest side's plane.
func (b *Box) NormalAt(p geom.Point3) geom.Vector3 {
	best := b.sides[0]
	bestDist := math.Abs(best.planeDistance(p))
	for _, side := range b.sides[1:] {
		d := math.Abs(side.planeDistance(p))
		if d < bestDist {
			bestDist = d
			best = side
		}
	}
	return best.NormalAt(p)
}

func (b *Box) TextureMap(p geom.Point3) (u, v float64) {
	best := b.sides[0]
	bestDist := math.Abs(best.planeDistance(p))
	for _, side := range b.sides[1:] {
		d := math.Abs(side.planeDistance(p))
		if d < bestDist {
			bestDist = d
			best = side
		}
	}
	return best.TextureMap(p)
}

// SampleSurface always fails: Box is left non-samplable, matching Plane
// (spec §9 guidance extended to the composite shape).
func (b *Box) SampleSurface(Rand) (geom.Point3, bool) {
	return geom.Point3{}, false
}
