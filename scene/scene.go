package scene

import "github.com/gogpu/pathtrace/geom"

// Scene is the immutable collection of shapes a render call walks. Lights
// is precomputed at construction as the subset of Shapes whose Surface is
// emissive, so the kernel's direct-light sampling never has to filter the
// full shape list per path segment (spec §4.7/§4.8 hot path).
type Scene struct {
	Shapes []Shape
	Lights []Shape
}

// New builds a Scene from its shapes, partitioning out the emissive ones
// into Lights. A light that also happens to be non-samplable (Plane, Box)
// is still included in Lights for emission lookup, but the kernel's
// direct-light sampling step should skip it via SampleSurface's ok=false.
func New(shapes ...Shape) *Scene {
	s := &Scene{Shapes: shapes}
	for _, shape := range shapes {
		if shape.Surface().IsEmissive() {
			s.Lights = append(s.Lights, shape)
		}
	}
	return s
}

// Epsilon excludes self-intersection: a hit distance must exceed this to
// be considered by NearestAmong (spec §4.7).
const Epsilon = 1e-10

// NearestAmong scans shapes for the closest hit along ray strictly beyond
// Epsilon, or NoHit if none intersect. It is the single scan the kernel's
// NearestIntersection and Scene.Nearest both delegate to, so a ray-scene
// query never has two diverging notions of "nearest".
func NearestAmong(ray geom.Ray3, shapes []Shape) IntersectionResult {
	best := NoHit()
	for _, shape := range shapes {
		r := shape.Intersect(ray)
		if r.Hit() && r.Distance > Epsilon && r.Distance < best.Distance {
			best = r
		}
	}
	return best
}

// Nearest returns the closest intersection along ray across every shape
// in the scene, or NoHit if none intersect.
func (s *Scene) Nearest(ray geom.Ray3) IntersectionResult {
	return NearestAmong(ray, s.Shapes)
}
