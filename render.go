package pathtrace

import (
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"

	"github.com/gogpu/pathtrace/camera"
	"github.com/gogpu/pathtrace/colour"
	"github.com/gogpu/pathtrace/image"
	"github.com/gogpu/pathtrace/kernel"
	"github.com/gogpu/pathtrace/pool"
	"github.com/gogpu/pathtrace/scene"
)

// rowSeedCounter gives each row its own RNG seed without a shared,
// lock-contended generator: every row XORs a monotonic counter against a
// fixed per-process base, so concurrent workers never draw from the same
// stream (spec §9).
var rowSeedCounter atomic.Uint64

var processSeedBase = uint64(time.Now().UnixNano())

func nextRowSeed() uint64 {
	return processSeedBase ^ rowSeedCounter.Add(1)
}

// RenderTarget is the pixel type every render call produces: a linear
// working-space colour per spec §4.2. Converting to 8-bit display colour
// is a separate step (see the imagefile package).
type RenderTarget = colour.ColourRgb[float64]

// Render constructs an Image sized to cam's resolution and enqueues a
// single Task on p that fills it by path-tracing sc through cam, one row
// of pixels per Problem (spec §2's data flow: camera sampler composed
// with the path-tracing kernel, dispatched over a 1-D ProblemSpace of
// image rows).
func Render(p *pool.ThreadPool[RenderTarget], cam *camera.Camera, sc *scene.Scene) pool.TaskHandle[RenderTarget] {
	k := kernel.New(sc)
	img := image.New[RenderTarget](cam.Width(), cam.Height())

	newRNG := func() kernel.Rand {
		return rand.New(rand.NewSource(nextRowSeed()))
	}

	handle := p.EnqueueTask(img, cam.RowFunc(k, newRNG), pool.NewLinear(cam.Height()))

	handle.SetStartCallback(func(*image.Image[RenderTarget]) {
		Logger().Info("render started",
			slog.Int("width", cam.Width()),
			slog.Int("height", cam.Height()))
	})
	handle.SetCompleteCallback(func(_ *image.Image[RenderTarget], success bool) {
		Logger().Info("render finished", slog.Bool("success", success))
	})

	return handle
}
