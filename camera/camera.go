// Package camera maps pixel coordinates to world-space primary rays and
// builds the per-row Task function a render call enqueues on a
// pool.ThreadPool (spec §4.6; grounded on
// original_source/include/Camera.hpp's render()).
package camera

import (
	"sync/atomic"

	"github.com/gogpu/pathtrace/colour"
	"github.com/gogpu/pathtrace/geom"
	"github.com/gogpu/pathtrace/image"
	"github.com/gogpu/pathtrace/kernel"
	"github.com/gogpu/pathtrace/pool"
)

// defaultSamplesPerPixel mirrors the original CameraBuilder's
// "samples-per-pixel" default.
const defaultSamplesPerPixel = 64

// defaultFocalLength mirrors the original Camera constructor's default.
const defaultFocalLength = 1.0

// Camera is an immutable pinhole camera: a location and orientation, a
// sensor aspect ratio derived from resolution, and a per-pixel sample
// count for stochastic antialiasing.
type Camera struct {
	width, height int
	location      geom.Point3
	direction     geom.Vector3
	up            geom.Vector3
	right         geom.Vector3
	halfSensorX   float64
	halfSensorY   float64
	focalLength   float64
	samples       int
}

// config and Option mirror pool's functional-options pattern: Camera has
// more optional knobs (up, focal length, sample count) than the teacher's
// plain-argument convention comfortably allows.
type config struct {
	up          geom.Vector3
	focalLength float64
	samples     int
}

// Option configures a Camera at construction.
type Option func(*config)

// WithUp overrides the camera's up vector. Default is (0,1,0).
func WithUp(up geom.Vector3) Option {
	return func(c *config) { c.up = up }
}

// WithFocalLength overrides the focal length. Default is 1.0.
func WithFocalLength(f float64) Option {
	return func(c *config) { c.focalLength = f }
}

// WithSamplesPerPixel overrides the per-pixel sample count used for
// stochastic antialiasing. Default is 64.
func WithSamplesPerPixel(n int) Option {
	return func(c *config) { c.samples = n }
}

// New builds a Camera at location looking along direction, for an image
// of the given resolution.
func New(width, height int, location geom.Point3, direction geom.Vector3, opts ...Option) *Camera {
	cfg := config{
		up:          geom.Vec3(0, 1, 0),
		focalLength: defaultFocalLength,
		samples:     defaultSamplesPerPixel,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.samples < 1 {
		cfg.samples = 1
	}

	direction = direction.Normalize()
	up := cfg.up.Normalize()
	aspectRatio := float64(width) / float64(height)

	return &Camera{
		width:       width,
		height:      height,
		location:    location,
		direction:   direction,
		up:          up,
		right:       direction.Cross(up),
		halfSensorX: aspectRatio / 2,
		halfSensorY: 1.0 / 2,
		focalLength: cfg.focalLength,
		samples:     cfg.samples,
	}
}

// Width and Height return the camera's resolution.
func (c *Camera) Width() int  { return c.width }
func (c *Camera) Height() int { return c.height }

// PrimaryRay builds one jittered primary ray through pixel (x,y), drawing
// the antialiasing jitter ξx, ξy ~ U(-1,1) from rng (spec §4.6).
func (c *Camera) PrimaryRay(x, y int, rng kernel.Rand) geom.Ray3 {
	xf := 1 - 2*float64(x)/float64(c.width)
	yf := 1 - 2*float64(y)/float64(c.height)

	xi := rng.Float64()*2 - 1
	yi := rng.Float64()*2 - 1

	direction := c.right.Mul((xf + xi/float64(c.width)) * c.halfSensorX).
		Add(c.up.Mul((yf + yi/float64(c.height)) * c.halfSensorY)).
		Add(c.direction.Mul(c.focalLength))

	return geom.Ray3{Origin: c.location, Direction: direction.Normalize()}
}

// RowFunc returns the per-row pool.Func a render call enqueues over a
// 1-D ProblemSpace of height rows (spec §2's data flow). newRNG is
// called once per row to obtain that row's private random source, so
// concurrent rows never share RNG state.
func (c *Camera) RowFunc(k *kernel.Kernel, newRNG func() kernel.Rand) pool.Func[colour.ColourRgb[float64]] {
	return func(result *image.Image[colour.ColourRgb[float64]], problem pool.Problem, _ *atomic.Bool) {
		y := problem.At(3)
		rng := newRNG()

		for x := 0; x < c.width; x++ {
			sum := colour.Black[float64]()
			for s := 0; s < c.samples; s++ {
				ray := c.PrimaryRay(x, y, rng)
				sum = sum.Add(k.Trace(ray, rng))
			}
			result.Set(x, y, sum.Scale(1/float64(c.samples)))
		}
	}
}
