// Package image provides the renderer's pixel buffer: a rectangular,
// row-major store whose rows are padded to a cache-line boundary so that
// disjoint rows can be written concurrently without false sharing.
package image

import "unsafe"

// cacheLineBytes is the assumed cache-line size used to compute row
// padding. 64 bytes covers every mainstream x86-64 and arm64 part.
const cacheLineBytes = 64

// Image is a rectangular buffer of pixels of type P, row-major, with each
// row starting on a cache-line boundary.
//
// Rows are independent and safe for disjoint concurrent writes: the pool
// dispatches one row per Problem, and row padding guarantees no two rows
// share a cache line. Readers must establish their own happens-before
// relative to the writer (spec §4.1) — the Task's Complete callback, or
// the per-Problem callback for a single finished row, provides it.
type Image[P any] struct {
	width, height int
	stride        int // elements per row, >= width
	pix           []P
}

// New allocates a zero-initialized Image of the given dimensions: a pixel
// that has not been written reads as P's zero value.
func New[P any](width, height int) *Image[P] {
	if width <= 0 || height <= 0 {
		return &Image[P]{width: max(width, 0), height: max(height, 0)}
	}

	stride := strideFor[P](width)
	return &Image[P]{
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]P, stride*height),
	}
}

// strideFor computes ceil(width/block)*block, where block is the number of
// P elements that make up lcm(cacheLineBytes, sizeof(P)) bytes (spec §4.1).
func strideFor[P any](width int) int {
	var zero P
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return width
	}

	block := lcm(cacheLineBytes, size) / size
	if block <= 0 {
		block = 1
	}

	return ((width + block - 1) / block) * block
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Width returns the image width in pixels.
func (img *Image[P]) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image[P]) Height() int { return img.height }

// Stride returns the number of elements (>= Width) between the start of
// consecutive rows.
func (img *Image[P]) Stride() int { return img.stride }

// Row returns the begin and end indices, into the image's backing slice,
// of row y. end-begin == Width (not Stride): callers only see the live
// pixels, never the padding.
func (img *Image[P]) Row(y int) (begin, end int) {
	begin = y * img.stride
	return begin, begin + img.width
}

// RowSlice returns the pixel slice for row y, length Width.
// Disjoint rows may be sliced and written concurrently without external
// synchronization (spec §4.1).
func (img *Image[P]) RowSlice(y int) []P {
	begin, end := img.Row(y)
	return img.pix[begin:end]
}

// At returns the pixel at (x, y).
func (img *Image[P]) At(x, y int) P {
	return img.pix[y*img.stride+x]
}

// Set writes the pixel at (x, y).
func (img *Image[P]) Set(x, y int, p P) {
	img.pix[y*img.stride+x] = p
}

// Pix returns the raw backing slice, including row padding. Exposed for
// collaborators (e.g. imagefile) that need direct access; most callers
// should use Row/RowSlice instead.
func (img *Image[P]) Pix() []P { return img.pix }
