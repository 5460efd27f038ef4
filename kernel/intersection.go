// Package kernel implements the renderer's two heaviest components: the
// nearest-hit intersection search over a Scene, and the recursive
// path-tracing radiance estimator built on top of it (grounded on
// original_source/src/Raytracer.cpp).
package kernel

import (
	"math"

	"github.com/gogpu/pathtrace/accel"
	"github.com/gogpu/pathtrace/geom"
	"github.com/gogpu/pathtrace/scene"
)

// epsilon excludes self-intersection: a hit distance must exceed this to
// be considered (mirroring scene.Epsilon, the bound scene.NearestAmong
// itself enforces), and shadow rays are offset by it at both ends.
const epsilon = scene.Epsilon

// IntersectionInfo is the resolved outcome of a ray-scene query: the hit
// shape and distance, plus derived world-space location, an outward
// normal flipped to oppose the incident ray, the (always non-negative)
// cosine of incidence, and whether the ray entered the surface from
// outside. A zero-value IntersectionInfo (Shape == nil) denotes no hit
// and must not be otherwise inspected.
type IntersectionInfo struct {
	Shape              scene.Shape
	Distance           float64
	Location           geom.Point3
	Normal             geom.Vector3
	CosAngleOfIncidence float64
	EnteringSurface    bool
}

// Hit reports whether a shape was actually intersected.
func (info IntersectionInfo) Hit() bool {
	return info.Shape != nil
}

// NearestIntersection finds the closest strictly-positive-beyond-epsilon
// hit along ray among every shape in sc, and derives the full
// IntersectionInfo from it. If a GPU accelerator is registered (package
// accel), it is asked first to narrow the shapes worth testing exactly;
// on ErrFallbackToCPU, or when none is registered, every shape is tested.
func NearestIntersection(ray geom.Ray3, sc *scene.Scene) IntersectionInfo {
	shapes := sc.Shapes
	if a := accel.Current(); a != nil {
		if narrowed, ok := narrowCandidates(a, ray, sc.Shapes); ok {
			shapes = narrowed
		}
	}

	best := scene.NearestAmong(ray, shapes)
	if !best.Hit() {
		return IntersectionInfo{}
	}

	location := ray.At(best.Distance)
	normal := best.Shape.NormalAt(location)
	cos := normal.Dot(ray.Direction)
	entering := cos < 0

	if entering {
		cos = -cos
	} else {
		normal = normal.Neg()
	}

	return IntersectionInfo{
		Shape:               best.Shape,
		Distance:            best.Distance,
		Location:            location,
		Normal:              normal,
		CosAngleOfIncidence: cos,
		EnteringSurface:     entering,
	}
}

// clearLineOfSight reports whether nothing in sc blocks the segment from
// p1 to p2, offsetting the test ray by epsilon at both ends to avoid the
// shadow ray self-intersecting its own origin shape.
func clearLineOfSight(p1, p2 geom.Point3, sc *scene.Scene) bool {
	direction := p2.Sub(p1).Normalize()
	ray := geom.Ray3{Origin: p1.Add(direction.Mul(epsilon)), Direction: direction}

	info := NearestIntersection(ray, sc)
	if !info.Hit() {
		return true
	}
	return info.Distance > geom.Abs(p2.Sub(p1))-epsilon*2
}

// narrowCandidates asks a for the subset of shapes worth testing exactly
// against ray, translating its index list back into scene.Shape values.
// Reports ok=false (keep testing every shape) on ErrFallbackToCPU or any
// other error.
func narrowCandidates(a accel.Accelerator, ray geom.Ray3, shapes []scene.Shape) ([]scene.Shape, bool) {
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	direction := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}

	indices, err := a.Candidates(origin, direction, nil)
	if err != nil {
		return nil, false
	}

	narrowed := make([]scene.Shape, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(shapes) {
			narrowed = append(narrowed, shapes[i])
		}
	}
	return narrowed, true
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	if v > 1 {
		return 1
	}
	return v
}
