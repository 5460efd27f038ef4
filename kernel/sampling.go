package kernel

import (
	"math"

	"github.com/gogpu/pathtrace/geom"
	"github.com/gogpu/pathtrace/scene"
)

// Rand is the per-worker random source the kernel draws from. Each
// worker owns its own instance (e.g. golang.org/x/exp/rand.New wrapping
// a non-global rand.Source), so concurrent rows never contend on shared
// RNG state (spec §5/§9).
type Rand = scene.Rand

// cosineWeightedHemisphereSample draws a direction ω on the hemisphere
// around n with density proportional to cos θ, via the orthonormal-basis
// construction in
// original_source/src/Raytracer.cpp:randomVectorOnUnitHemisphere. The
// basis vector j is built from whichever of n's x/y components dominates,
// to avoid j collapsing when n is near-parallel to either axis.
func cosineWeightedHemisphereSample(n geom.Vector3, rng Rand) geom.Vector3 {
	var j geom.Vector3
	if math.Abs(n.X) > math.Abs(n.Y) {
		recipLength := 1 / math.Sqrt(n.X*n.X+n.Z*n.Z)
		j = geom.Vec3(-n.Z*recipLength, 0, n.X*recipLength)
	} else {
		recipLength := 1 / math.Sqrt(n.Y*n.Y+n.Z*n.Z)
		j = geom.Vec3(0, -n.Z*recipLength, n.Y*recipLength)
	}
	k := n.Cross(j)

	theta := 2 * math.Pi * rng.Float64()
	phi := math.Pi*0.5 - math.Acos(math.Acos(rng.Float64())*2/math.Pi)

	i := n
	return i.Mul(math.Cos(phi)).
		Add(j.Mul(math.Cos(theta) * math.Sin(phi))).
		Add(k.Mul(math.Sin(theta) * math.Sin(phi)))
}
