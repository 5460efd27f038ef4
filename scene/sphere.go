package scene

import (
	"math"

	"github.com/gogpu/pathtrace/geom"
)

// Sphere is a solid sphere of Radius centered at Origin, with Up fixing
// the pole used for its texture mapping (grounded on
// original_source/include/shapes/Sphere.hpp).
type Sphere struct {
	Origin  geom.Point3
	Up      geom.Vector3
	Radius  float64
	surface Surface
}

// NewSphere builds a Sphere.
func NewSphere(origin geom.Point3, up geom.Vector3, radius float64, surface Surface) *Sphere {
	return &Sphere{Origin: origin, Up: up.Normalize(), Radius: radius, surface: surface}
}

func (s *Sphere) Surface() Surface { return s.surface }

// Intersect solves the quadratic |ray.At(t) - origin|^2 = radius^2 for
// the nearest positive root.
func (s *Sphere) Intersect(ray geom.Ray3) IntersectionResult {
	oc := ray.Origin.Sub(s.Origin)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return NoHit()
	}
	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)

	t := t0
	if t <= 0 {
		t = t1
	}
	if t <= 0 {
		return NoHit()
	}
	return IntersectionResult{Distance: t, Shape: s}
}

func (s *Sphere) NormalAt(p geom.Point3) geom.Vector3 {
	return p.Sub(s.Origin).Normalize()
}

// TextureMap converts a surface point to (longitude, latitude) in [0,1)x[0,1]
// using Up as the polar axis.
func (s *Sphere) TextureMap(point geom.Point3) (u, v float64) {
	n := s.NormalAt(point)
	v = math.Acos(clamp(n.Dot(s.Up), -1, 1)) / math.Pi

	// build an arbitrary basis vector perpendicular to Up for longitude.
	ref := geom.Vec3(1, 0, 0)
	if math.Abs(s.Up.Dot(ref)) > 0.99 {
		ref = geom.Vec3(0, 1, 0)
	}
	east := s.Up.Cross(ref).Normalize()
	north := east.Cross(s.Up)
	u = fractionalPart(math.Atan2(n.Dot(east), n.Dot(north))/(2*math.Pi) + 0.5)
	return u, v
}

// SampleSurface draws a uniform point on the sphere's surface via the
// standard inverse-CDF construction for two independent uniform draws.
func (s *Sphere) SampleSurface(rng Rand) (geom.Point3, bool) {
	u1 := rng.Float64()
	u2 := rng.Float64()
	z := 1 - 2*u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	local := geom.Vec3(r*math.Cos(phi), r*math.Sin(phi), z)
	return s.Origin.Add(local.Mul(s.Radius)), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
