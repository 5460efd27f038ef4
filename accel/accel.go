// Package accel is the renderer's optional GPU intersection accelerator.
//
// The path-tracing kernel always runs its nearest-intersection search on
// the CPU (package kernel); this package exists so a GPU-backed bounding
// volume prefilter can be registered alongside it without the kernel
// importing any GPU driver package directly. An Accelerator narrows a
// ray down to the subset of scene shapes worth testing exactly, or
// returns ErrFallbackToCPU to say the prefilter isn't available for this
// query, in which case the kernel tests every shape itself.
//
// No GPU backend is compiled in by default. A concrete implementation
// built on github.com/gogpu/gputypes, github.com/gogpu/wgpu, and
// github.com/gogpu/naga lives behind the gpuaccel build tag, mirroring
// how the GPU backend this package is adapted from is kept out of
// default builds.
package accel

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the accelerator cannot narrow this query.
// The caller should test every shape on the CPU instead.
var ErrFallbackToCPU = errors.New("accel: falling back to CPU intersection")

// AABB is an axis-aligned bounding box in world space, the unit a GPU
// prefilter culls against. Min and Max are [x, y, z] triples.
type AABB struct {
	Min, Max [3]float64
}

// Accelerator is an optional GPU-backed intersection prefilter.
//
// Implementations are registered with Register and should be provided by
// GPU backend packages built with the gpuaccel tag. Users opt in via a
// blank import:
//
//	import _ "github.com/gogpu/pathtrace/accel/gpu" // enables GPU prefiltering
type Accelerator interface {
	// Name returns the accelerator's identifier (e.g. "wgpu").
	Name() string

	// Init acquires GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// Candidates returns the indices, into the scene's shape list, of the
	// bounding boxes that a ray with the given origin and direction may
	// intersect. bounds[i] is the AABB for shape index i. Returns
	// ErrFallbackToCPU if the prefilter can't service this query (for
	// example, the scene hasn't been uploaded yet).
	Candidates(origin, direction [3]float64, bounds []AABB) ([]int, error)
}

var (
	mu      sync.RWMutex
	current Accelerator
)

// Register installs a for use by kernel.NearestIntersection's prefilter
// path. Only one accelerator can be registered at a time; a later call
// replaces and closes the previous one. Passing nil clears it.
func Register(a Accelerator) error {
	if a == nil {
		mu.Lock()
		old := current
		current = nil
		mu.Unlock()
		if old != nil {
			old.Close()
		}
		return nil
	}
	if err := a.Init(); err != nil {
		return err
	}
	mu.Lock()
	old := current
	current = a
	mu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Current returns the registered accelerator, or nil if none is
// registered (the default: every build runs CPU-only).
func Current() Accelerator {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
