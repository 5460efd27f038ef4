package scene

import (
	"math"

	"github.com/gogpu/pathtrace/geom"
)

// Plane is an infinite plane through Origin spanned by DirectionU and
// DirectionV, with Normal held precomputed (grounded on
// original_source/include/shapes/Plane.hpp). It cannot be sampled as an
// area light (spec §9): SampleSurface always reports ok=false.
type Plane struct {
	Origin              geom.Point3
	DirectionU, DirectionV geom.Vector3
	Normal              geom.Vector3
	surface             Surface
}

// NewPlane builds a Plane from an origin and two spanning directions,
// precomputing the (normalized) surface normal.
func NewPlane(origin geom.Point3, directionU, directionV geom.Vector3, surface Surface) *Plane {
	return &Plane{
		Origin:     origin,
		DirectionU: directionU,
		DirectionV: directionV,
		Normal:     directionU.Cross(directionV).Normalize(),
		surface:    surface,
	}
}

func (p *Plane) Surface() Surface { return p.surface }

// Intersect solves for the distance t where ray.At(t) lies on the plane:
// t = (origin - ray.Origin) . normal / (ray.Direction . normal). A ray
// parallel to the plane (zero denominator) or hitting behind the origin
// reports NoHit.
func (p *Plane) Intersect(ray geom.Ray3) IntersectionResult {
	denom := ray.Direction.Dot(p.Normal)
	if denom == 0 {
		return NoHit()
	}
	t := p.Origin.Sub(ray.Origin).Dot(p.Normal) / denom
	if t <= 0 || math.IsNaN(t) {
		return NoHit()
	}
	return IntersectionResult{Distance: t, Shape: p}
}

func (p *Plane) NormalAt(geom.Point3) geom.Vector3 { return p.Normal }

// TextureMap projects the surface point onto the (u,v) basis and wraps
// into [0,1) via fractional part, matching the original's use of
// std::modf for tiling texture coordinates.
func (p *Plane) TextureMap(point geom.Point3) (u, v float64) {
	offset := point.Sub(p.Origin)
	return fractionalPart(offset.Dot(p.DirectionU) / p.DirectionU.LengthSq()),
		fractionalPart(offset.Dot(p.DirectionV) / p.DirectionV.LengthSq())
}

// SampleSurface always fails: an infinite plane has no finite area to
// sample uniformly (spec §9 guidance followed literally).
func (p *Plane) SampleSurface(Rand) (geom.Point3, bool) {
	return geom.Point3{}, false
}
