package kernel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gogpu/pathtrace/colour"
	"github.com/gogpu/pathtrace/geom"
	"github.com/gogpu/pathtrace/scene"
)

// TestFresnelReflectance_ClampedAndNaNSafe is spec scenario 6: Fresnel
// reflectance must clamp to [0,1] and treat a NaN result (total internal
// reflection) as full reflectance.
func TestFresnelReflectance_ClampedAndNaNSafe(t *testing.T) {
	cases := []struct {
		name    string
		rs, rp  float64
		want    float64
	}{
		{"within range", 0.5, 0.3, 0.5*0.5*0.5 + 0.3*0.3*0.5},
		{"exceeds one clamps to one", 2.0, 2.0, 1.0},
		{"NaN becomes one", math.NaN(), 0.5, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := clampUnit((tc.rs*tc.rs + tc.rp*tc.rp) * 0.5)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("clampUnit = %v, want %v", got, tc.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("clampUnit = %v, not within [0,1]", got)
			}
		})
	}
}

// cornellBoxLikeScene builds a small enclosed box of diffuse walls with
// one emissive rectangle as a ceiling light, the minimal scene shape
// spec scenario 5 calls for.
func cornellBoxLikeScene() *scene.Scene {
	white := scene.NewSurface(colour.New(0.8, 0.8, 0.8), 1, 0, 0, 0, 1)
	red := scene.NewSurface(colour.New(0.8, 0.2, 0.2), 1, 0, 0, 0, 1)
	green := scene.NewSurface(colour.New(0.2, 0.8, 0.2), 1, 0, 0, 0, 1)
	light := scene.NewSurface(colour.New(1.0, 1.0, 1.0), 0, 0, 0, 8, 1)

	floor := scene.NewRectangle(geom.Pt3(-1, -1, -1), geom.Pt3(1, -1, -1), geom.Pt3(-1, -1, 1), white)
	ceiling := scene.NewRectangle(geom.Pt3(-1, 1, -1), geom.Pt3(-1, 1, 1), geom.Pt3(1, 1, -1), white)
	back := scene.NewRectangle(geom.Pt3(-1, -1, -1), geom.Pt3(-1, 1, -1), geom.Pt3(1, -1, -1), white)
	leftWall := scene.NewRectangle(geom.Pt3(-1, -1, -1), geom.Pt3(-1, -1, 1), geom.Pt3(-1, 1, -1), red)
	rightWall := scene.NewRectangle(geom.Pt3(1, -1, -1), geom.Pt3(1, 1, -1), geom.Pt3(1, -1, 1), green)
	ceilingLight := scene.NewRectangle(geom.Pt3(-0.3, 0.99, -0.3), geom.Pt3(0.3, 0.99, -0.3), geom.Pt3(-0.3, 0.99, 0.3), light)

	return scene.New(floor, ceiling, back, leftWall, rightWall, ceilingLight)
}

// TestKernel_CornellBoxSmokeTest is spec scenario 5: tracing a primary
// ray into an enclosed diffuse box with one area light must terminate
// and return a finite, non-negative colour.
func TestKernel_CornellBoxSmokeTest(t *testing.T) {
	sc := cornellBoxLikeScene()
	k := New(sc)
	rng := rand.New(rand.NewSource(42))

	ray := geom.Ray3{Origin: geom.Pt3(0, 0, 0.9), Direction: geom.Vec3(0, 0, -1)}
	for i := 0; i < 16; i++ {
		c := k.Trace(ray, rng)
		if math.IsNaN(float64(c.R)) || math.IsNaN(float64(c.G)) || math.IsNaN(float64(c.B)) {
			t.Fatalf("sample %d: NaN in result %+v", i, c)
		}
		if math.IsInf(float64(c.R), 0) || math.IsInf(float64(c.G), 0) || math.IsInf(float64(c.B), 0) {
			t.Fatalf("sample %d: Inf in result %+v", i, c)
		}
		if c.R < 0 || c.G < 0 || c.B < 0 {
			t.Fatalf("sample %d: negative channel in result %+v", i, c)
		}
	}
}

func TestKernel_NoIntersectionReturnsBlack(t *testing.T) {
	sc := scene.New()
	k := New(sc)
	rng := rand.New(rand.NewSource(1))

	c := k.Trace(geom.Ray3{Origin: geom.Pt3(0, 0, 0), Direction: geom.Vec3(0, 0, -1)}, rng)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("Trace into empty scene = %+v, want black", c)
	}
}

func TestKernel_EmissiveSurfaceContributesDirectly(t *testing.T) {
	light := scene.NewSurface(colour.New(1.0, 1.0, 1.0), 0, 0, 0, 4, 1)
	panel := scene.NewRectangle(geom.Pt3(-1, -1, -2), geom.Pt3(1, -1, -2), geom.Pt3(-1, 1, -2), light)
	sc := scene.New(panel)
	k := New(sc)
	rng := rand.New(rand.NewSource(7))

	ray := geom.Ray3{Origin: geom.Pt3(0, 0, 0), Direction: geom.Vec3(0, 0, -1)}
	c := k.Trace(ray, rng)
	if c.R <= 0 && c.G <= 0 && c.B <= 0 {
		t.Errorf("expected positive emission contribution, got %+v", c)
	}
}
