//go:build gpuaccel

// Package gpu is a GPU-backed accel.Accelerator built on gogpu's WebGPU
// bindings. It is excluded from default builds; compile with
// -tags gpuaccel to include it, and blank-import it to register the
// accelerator:
//
//	import _ "github.com/gogpu/pathtrace/accel/gpu"
//
// This mirrors how the 2-D rasterizer this renderer is adapted from
// keeps its native wgpu backend (internal/native) out of default
// builds and behind the same opt-in blank import.
package gpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/pathtrace/accel"
)

// ErrNoGPU indicates no compatible GPU adapter could be found.
var ErrNoGPU = errors.New("accel/gpu: no compatible GPU adapter")

// prefilterShaderWGSL is the compute shader a future dispatch pass would
// run: one invocation per shape, testing a single ray against that
// shape's AABB and writing a hit/miss flag for host-side compaction into
// the candidate index list Candidates returns. Compiled at Init time to
// exercise shader translation ahead of the dispatch pipeline landing;
// not yet bound to a pipeline or invoked.
const prefilterShaderWGSL = `
struct Ray {
	origin: vec3<f32>,
	direction: vec3<f32>,
}

struct AABB {
	min: vec3<f32>,
	max: vec3<f32>,
}

@group(0) @binding(0) var<uniform> ray: Ray;
@group(0) @binding(1) var<storage, read> bounds: array<AABB>;
@group(0) @binding(2) var<storage, read_write> hits: array<u32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
	let i = id.x;
	if (i >= arrayLength(&bounds)) {
		return;
	}

	let inv_dir = 1.0 / ray.direction;
	let t0 = (bounds[i].min - ray.origin) * inv_dir;
	let t1 = (bounds[i].max - ray.origin) * inv_dir;
	let tmin = min(t0, t1);
	let tmax = max(t0, t1);

	let enter = max(max(tmin.x, tmin.y), tmin.z);
	let exit = min(min(tmax.x, tmax.y), tmax.z);

	hits[i] = select(0u, 1u, enter <= exit && exit > 0.0);
}
`

// Backend is a GPU-accelerated bounding-box prefilter. It holds the
// WebGPU instance and adapter a compute pass would use to test a ray
// against every shape's AABB in parallel, plus the prefilter shader
// compiled to SPIR-V ahead of that pass being wired up.
type Backend struct {
	instance *core.Instance
	adapter  core.AdapterID

	prefilterSPIRV []byte

	initialized bool
}

// New creates a Backend. Init must be called before use.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "wgpu" }

// Init acquires a high-performance adapter, following the same
// instance/adapter sequence as the rasterizer's native backend, and
// translates the prefilter compute shader from WGSL to SPIR-V via naga.
func (b *Backend) Init() error {
	if b.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
	}
	b.instance = core.NewInstance(desc)

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID

	spirv, err := naga.Compile(prefilterShaderWGSL)
	if err != nil {
		return fmt.Errorf("accel/gpu: prefilter shader translation failed: %w", err)
	}
	b.prefilterSPIRV = spirv

	b.initialized = true
	log.Println("accel/gpu: backend initialized")
	return nil
}

func (b *Backend) Close() {
	if !b.initialized {
		return
	}
	b.initialized = false
	b.instance = nil
	b.adapter = core.AdapterID{}
	b.prefilterSPIRV = nil
}

// Candidates is unimplemented: the prefilter shader is translated at
// Init time (see prefilterShaderWGSL) but no pipeline or dispatch exists
// yet to run it, so every query falls back to the CPU.
func (b *Backend) Candidates(origin, direction [3]float64, bounds []accel.AABB) ([]int, error) {
	return nil, accel.ErrFallbackToCPU
}

func init() {
	if err := accel.Register(New()); err != nil {
		log.Printf("accel/gpu: registration failed, staying CPU-only: %v", err)
	}
}
