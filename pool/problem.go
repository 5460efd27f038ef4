package pool

// ProblemSpace is an integer N-dimensional (N<=4) box with lexicographic
// enumeration order. Dimension 0 increments fastest; dimension 3 is the
// outermost counter and is the one that terminates iteration (spec §4.3).
//
// A render call over image rows uses NewLinear(height), which places the
// row count in the 4th (outermost) slot: Problem.At(3) yields the row
// index, matching spec scenario 3.
type ProblemSpace struct {
	dims [4]int
}

// NewProblemSpace constructs a ProblemSpace from up to four positive
// extents, given in (d0, d1, d2, d3) order. Missing trailing dimensions
// default to 1.
func NewProblemSpace(dims ...int) ProblemSpace {
	var ps ProblemSpace
	for i := range ps.dims {
		ps.dims[i] = 1
	}
	for i, d := range dims {
		if i >= 4 {
			break
		}
		ps.dims[i] = d
	}
	return ps
}

// NewLinear constructs a 1-D ProblemSpace of size n, placing n in the
// outermost (4th) dimension so that Problem.At(3) is a plain row/element
// counter from 0 to n-1 — the shape the camera sampler's per-row Task uses.
func NewLinear(n int) ProblemSpace {
	return ProblemSpace{dims: [4]int{1, 1, 1, n}}
}

// Dim returns the extent of dimension i (0-3).
func (ps ProblemSpace) Dim(i int) int {
	return ps.dims[i]
}

// Len returns the total number of Problems in the space (product of all
// dimensions).
func (ps ProblemSpace) Len() int {
	n := 1
	for _, d := range ps.dims {
		n *= d
	}
	return n
}

// Begin returns the first Problem in lexicographic order: (0,0,0,0).
func (ps ProblemSpace) Begin() Problem {
	return Problem{space: ps}
}

// End returns the canonical past-the-end Problem: all dimensions at 0
// except the 4th, which is at its extent (spec §4.3).
func (ps ProblemSpace) End() Problem {
	var idx [4]int
	idx[3] = ps.dims[3]
	return Problem{space: ps, idx: idx}
}

// Problem is an iterator-style index into a ProblemSpace: one unit of
// parallel work.
type Problem struct {
	space ProblemSpace
	idx   [4]int
}

// At returns the index along dimension i (0-3).
func (p Problem) At(i int) int {
	return p.idx[i]
}

// Equal compares the full index tuple of two Problems.
func (p Problem) Equal(q Problem) bool {
	return p.idx == q.idx
}

// Next returns the Problem following p in lexicographic order, carrying
// overflow from dimension 0 up through dimension 3. Dimension 3 is never
// wrapped: once it reaches the space's extent the Problem equals End and
// further Next calls are not meaningful (the pool never issues one).
func (p Problem) Next() Problem {
	d := p.space.dims
	idx := p.idx

	idx[0] = (idx[0] + 1) % d[0]
	if idx[0] != 0 {
		return Problem{space: p.space, idx: idx}
	}

	idx[1] = (idx[1] + 1) % d[1]
	if idx[1] != 0 {
		return Problem{space: p.space, idx: idx}
	}

	idx[2] = (idx[2] + 1) % d[2]
	if idx[2] != 0 {
		return Problem{space: p.space, idx: idx}
	}

	idx[3]++
	return Problem{space: p.space, idx: idx}
}
