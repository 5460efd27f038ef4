package scene

import (
	"math"

	"github.com/gogpu/pathtrace/geom"
)

// Rand is the minimal random source Shape.SampleSurface needs. It is
// satisfied by *math/rand.Rand, *golang.org/x/exp/rand.Rand, and the
// kernel package's per-worker RNG, without scene importing any of them.
type Rand interface {
	Float64() float64
}

// IntersectionResult is the outcome of testing a single Shape against a
// ray: a distance and, on a hit, a reference back to the Shape. The
// sentinel NoHit (distance = +Inf, Shape = nil) denotes no intersection
// (spec §3).
type IntersectionResult struct {
	Distance float64
	Shape    Shape
}

// NoHit is the canonical "no intersection" result.
func NoHit() IntersectionResult {
	return IntersectionResult{Distance: math.Inf(1)}
}

// Hit reports whether this result represents an actual intersection.
func (r IntersectionResult) Hit() bool {
	return r.Shape != nil
}

// Shape is the capability set every primitive the kernel intersects must
// implement: ray intersection, a normal at a surface point, a texture
// coordinate mapping, and (for shapes capable of bearing area lights) a
// uniform surface sample.
//
// SampleSurface is a partial operation: shapes that cannot usefully be
// sampled (Plane, Box) report ok=false rather than panicking (spec §9).
type Shape interface {
	Surface() Surface
	Intersect(ray geom.Ray3) IntersectionResult
	NormalAt(p geom.Point3) geom.Vector3
	TextureMap(p geom.Point3) (u, v float64)
	SampleSurface(rng Rand) (p geom.Point3, ok bool)
}

// fractionalPart mirrors std::modf's fractional component, wrapping
// negative results into [0,1) the way the original texture-map code does
// (spec supplement from original_source/include/shapes/Plane.hpp).
func fractionalPart(v float64) float64 {
	_, frac := math.Modf(v)
	if frac < 0 {
		frac++
	}
	return frac
}
