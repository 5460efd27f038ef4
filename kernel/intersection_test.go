package kernel

import (
	"math"
	"testing"

	"github.com/gogpu/pathtrace/accel"
	"github.com/gogpu/pathtrace/colour"
	"github.com/gogpu/pathtrace/geom"
	"github.com/gogpu/pathtrace/scene"
)

// stubAccelerator always falls back to the CPU, so registering it must
// not change NearestIntersection's result.
type stubAccelerator struct{}

func (stubAccelerator) Name() string { return "stub" }
func (stubAccelerator) Init() error  { return nil }
func (stubAccelerator) Close()       {}
func (stubAccelerator) Candidates(origin, direction [3]float64, bounds []accel.AABB) ([]int, error) {
	return nil, accel.ErrFallbackToCPU
}

func whiteDiffuse() scene.Surface {
	return scene.NewSurface(colour.New(1.0, 1.0, 1.0), 1, 0, 0, 0, 1)
}

func TestNearestIntersection_PicksClosest(t *testing.T) {
	near := scene.NewSphere(geom.Pt3(0, 0, -2), geom.Vec3(0, 1, 0), 0.5, whiteDiffuse())
	far := scene.NewSphere(geom.Pt3(0, 0, -5), geom.Vec3(0, 1, 0), 0.5, whiteDiffuse())
	sc := scene.New(far, near)

	ray := geom.Ray3{Origin: geom.Pt3(0, 0, 0), Direction: geom.Vec3(0, 0, -1)}
	info := NearestIntersection(ray, sc)
	if !info.Hit() {
		t.Fatal("expected a hit")
	}
	if math.Abs(info.Distance-1.5) > 1e-9 {
		t.Errorf("distance = %v, want 1.5", info.Distance)
	}
}

func TestNearestIntersection_NormalOpposesIncidentRay(t *testing.T) {
	sph := scene.NewSphere(geom.Pt3(0, 0, -2), geom.Vec3(0, 1, 0), 1, whiteDiffuse())
	sc := scene.New(sph)
	ray := geom.Ray3{Origin: geom.Pt3(0, 0, 0), Direction: geom.Vec3(0, 0, -1)}

	info := NearestIntersection(ray, sc)
	if !info.Hit() {
		t.Fatal("expected a hit")
	}
	if info.Normal.Dot(ray.Direction) > 0 {
		t.Errorf("normal %v should oppose incident ray %v", info.Normal, ray.Direction)
	}
	if !info.EnteringSurface {
		t.Error("expected EnteringSurface = true for a ray from outside")
	}
	if info.CosAngleOfIncidence < 0 {
		t.Errorf("cos angle of incidence = %v, want >= 0", info.CosAngleOfIncidence)
	}
}

func TestNearestIntersection_NoHit(t *testing.T) {
	sph := scene.NewSphere(geom.Pt3(10, 10, 10), geom.Vec3(0, 1, 0), 1, whiteDiffuse())
	sc := scene.New(sph)
	ray := geom.Ray3{Origin: geom.Pt3(0, 0, 0), Direction: geom.Vec3(0, 0, -1)}

	info := NearestIntersection(ray, sc)
	if info.Hit() {
		t.Fatal("expected no hit")
	}
}

func TestClearLineOfSight(t *testing.T) {
	blocker := scene.NewSphere(geom.Pt3(0, 0, -2), geom.Vec3(0, 1, 0), 1, whiteDiffuse())
	sc := scene.New(blocker)

	blocked := clearLineOfSight(geom.Pt3(0, 0, 0), geom.Pt3(0, 0, -5), sc)
	if blocked {
		t.Error("expected line of sight to be blocked by the intervening sphere")
	}

	sc2 := scene.New()
	clear := clearLineOfSight(geom.Pt3(0, 0, 0), geom.Pt3(0, 0, -5), sc2)
	if !clear {
		t.Error("expected a clear line of sight with no geometry")
	}
}

func TestNearestIntersection_FallsBackWhenAcceleratorDeclines(t *testing.T) {
	accel.Register(stubAccelerator{})
	defer accel.Register(nil)

	sph := scene.NewSphere(geom.Pt3(0, 0, -2), geom.Vec3(0, 1, 0), 0.5, whiteDiffuse())
	sc := scene.New(sph)
	ray := geom.Ray3{Origin: geom.Pt3(0, 0, 0), Direction: geom.Vec3(0, 0, -1)}

	info := NearestIntersection(ray, sc)
	if !info.Hit() {
		t.Fatal("expected a hit via the CPU fallback path")
	}
}
