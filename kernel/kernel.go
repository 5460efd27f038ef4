package kernel

import (
	"math"

	"github.com/gogpu/pathtrace/colour"
	"github.com/gogpu/pathtrace/geom"
	"github.com/gogpu/pathtrace/scene"
)

// maxRecursionDepth and russianRouletteDepth mirror the constants in
// original_source/src/Raytracer.cpp's calculateRayColour.
const (
	maxRecursionDepth  = 20
	russianRouletteDepth = 2
	survivalProbability  = 0.8
	minWeight            = 1.0 / 255.0
	shadowEpsilonEnough  = 1e-4
)

// Kernel is the recursive path-tracing radiance estimator bound to a
// fixed Scene. It holds no per-call mutable state, so a single Kernel is
// safely shared read-only across every worker (spec §9).
type Kernel struct {
	scene *scene.Scene
}

// New binds a Kernel to a Scene.
func New(sc *scene.Scene) *Kernel {
	return &Kernel{scene: sc}
}

// Trace estimates the radiance arriving along ray, entering the
// recursion with depth 0, full weight, a refractive-index stack
// representing vacuum, and no last-hit normal (the primary-ray case).
func (k *Kernel) Trace(ray geom.Ray3, rng Rand) colour.ColourRgb[float64] {
	return k.trace(ray, 0, 1.0, []float64{1.0}, geom.Vector3{}, rng)
}

func (k *Kernel) trace(ray geom.Ray3, depth int, weight float64, iorStack []float64, lastNormal geom.Vector3, rng Rand) colour.ColourRgb[float64] {
	survivalProb := 1.0
	if depth >= russianRouletteDepth {
		survivalProb = survivalProbability
	}

	if depth >= maxRecursionDepth || weight < minWeight {
		return k.directLight(ray, lastNormal, rng)
	}

	if rng.Float64() > survivalProb {
		return k.directLight(ray, lastNormal, rng)
	}

	info := NearestIntersection(ray, k.scene)
	if !info.Hit() {
		return colour.Black[float64]()
	}
	if info.CosAngleOfIncidence < epsilon {
		return colour.Black[float64]()
	}

	surface := info.Shape.Surface()
	result := colour.Black[float64]()

	if surface.DiffuseReflectance > 0 {
		result = result.Add(k.diffuse(info, depth, weight, iorStack, rng))
	}
	if surface.Reflectance > 0 {
		result = result.Add(k.specular(info, ray, depth, weight, iorStack, rng))
	}
	if surface.Transmittance > 0 {
		result = result.Add(k.transmission(info, ray, depth, weight, iorStack, rng))
	}
	if surface.Emittance > 0 {
		result = result.Add(surface.Colour.Scale(surface.Emittance))
	}

	return result.Scale(1 / survivalProb)
}

// diffuse implements §4.8.a: cosine-weighted hemisphere sampling around
// the outward normal, weighted by the average reflected colour and the
// cosine term.
func (k *Kernel) diffuse(info IntersectionInfo, depth int, weight float64, iorStack []float64, rng Rand) colour.ColourRgb[float64] {
	surface := info.Shape.Surface()
	direction := cosineWeightedHemisphereSample(info.Normal, rng)
	nextRay := geom.Ray3{Origin: info.Location, Direction: direction}

	newWeight := surface.Colour.Average() * weight * info.Normal.Dot(direction)
	incoming := k.trace(nextRay, depth+1, newWeight, iorStack, info.Normal, rng)
	return incoming.Mul(surface.Colour)
}

// specular implements §4.8.b: a perfect mirror bounce. Recursion resets
// lastNormal to zero (only diffuse propagates it), so a path terminating
// right after this bounce treats the direct-light cosine factor as 1.
func (k *Kernel) specular(info IntersectionInfo, ray geom.Ray3, depth int, weight float64, iorStack []float64, rng Rand) colour.ColourRgb[float64] {
	surface := info.Shape.Surface()
	direction := ray.Direction.Reflect(info.Normal)
	nextRay := geom.Ray3{Origin: info.Location, Direction: direction}

	newWeight := surface.Colour.Average() * weight
	incoming := k.trace(nextRay, depth+1, newWeight, iorStack, geom.Vector3{}, rng)
	return incoming.Scale(surface.Reflectance).Mul(surface.Colour)
}

// transmission implements §4.8.c: Snell refraction across a pushed or
// popped refractive-index stack, combined with Fresnel-weighted
// reflection, grounded on calculateTransmission. Both recursive arms
// reset lastNormal to zero, matching calculateTransmission's call to
// calculateRayColour with the default lastNormal rather than info.normal.
func (k *Kernel) transmission(info IntersectionInfo, ray geom.Ray3, depth int, weight float64, iorStack []float64, rng Rand) colour.ColourRgb[float64] {
	surface := info.Shape.Surface()

	n1 := iorStack[len(iorStack)-1]
	newStack := make([]float64, len(iorStack))
	copy(newStack, iorStack)

	var n2 float64
	if info.EnteringSurface {
		newStack = append(newStack, surface.RefractiveIndex)
	} else {
		newStack = newStack[:len(newStack)-1]
	}
	n2 = newStack[len(newStack)-1]

	rayOnNormal := info.Normal.Mul(ray.Direction.Dot(info.Normal))
	sinTheta1 := ray.Direction.Sub(rayOnNormal)
	sinTheta2 := sinTheta1.Mul(n1 / n2)
	cosTheta2Sq := 1 - sinTheta2.Dot(sinTheta2)
	cosTheta2 := info.Normal.Mul(-math.Sqrt(math.Max(0, cosTheta2Sq)))

	refractedDirection := sinTheta2.Add(cosTheta2)
	reflectedDirection := ray.Direction.Sub(rayOnNormal.Mul(2))

	refractedRay := geom.Ray3{Origin: info.Location, Direction: refractedDirection}
	reflectedRay := geom.Ray3{Origin: info.Location, Direction: reflectedDirection}

	cosTheta1 := -ray.Direction.Dot(info.Normal)
	cosTheta2Signed := -refractedDirection.Dot(info.Normal)

	rs := (n1*cosTheta1 - n2*cosTheta2Signed) / (n1*cosTheta1 + n2*cosTheta2Signed)
	rp := (n2*cosTheta1 - n1*cosTheta2Signed) / (n2*cosTheta1 + n1*cosTheta2Signed)
	fresnel := clampUnit((rs*rs + rp*rp) * 0.5)

	reflected := k.trace(reflectedRay, depth+1, weight, iorStack, geom.Vector3{}, rng)

	refracted := colour.Black[float64]()
	if fresnel < 1.0 {
		newWeight := surface.Colour.Average() * weight
		refracted = k.trace(refractedRay, depth+1, newWeight, newStack, geom.Vector3{}, rng).Mul(surface.Colour)
	}

	return reflected.Scale(fresnel).Add(refracted.Scale(1 - fresnel)).Scale(surface.Transmittance)
}

// directLight implements §4.8.e: at path termination, sample each
// emissive shape's surface and add its contribution if unoccluded.
// Shapes that cannot be sampled (Plane, Box; see scene package) are
// skipped rather than treated as a failure, matching the partial
// sampleSurface contract.
func (k *Kernel) directLight(ray geom.Ray3, lastNormal geom.Vector3, rng Rand) colour.ColourRgb[float64] {
	result := colour.Black[float64]()
	for _, light := range k.scene.Lights {
		result = result.Add(k.sampleLight(ray, lastNormal, light, rng))
	}
	return result
}

func (k *Kernel) sampleLight(ray geom.Ray3, lastNormal geom.Vector3, light scene.Shape, rng Rand) colour.ColourRgb[float64] {
	q, ok := light.SampleSurface(rng)
	if !ok {
		return colour.Black[float64]()
	}

	if !clearLineOfSight(ray.Origin, q, k.scene) {
		return colour.Black[float64]()
	}

	direction := q.Sub(ray.Origin).Normalize()
	cosineFactor := 1.0
	if geom.Abs(lastNormal) >= shadowEpsilonEnough {
		cosineFactor = math.Abs(direction.Dot(lastNormal))
	}

	surface := light.Surface()
	return surface.Colour.Scale(surface.Emittance * cosineFactor)
}
