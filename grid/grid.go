package grid

import (
	"fmt"
)

// MaxDims is the largest number of axes a grid can have: three spatial axes
// and time.
const MaxDims = 4

// Shape provides an interface for reasoning over a 1D slice as if it were a
// grid with up to four axes. Axes above Dims have width 1. x varies fastest.
type Shape struct {
	Dims   int
	Width  [MaxDims]int
	stride [MaxDims]int
	length int
}

// NewShape returns the shape of a grid with the given axes.
func NewShape(axes []Axis) (*Shape, error) {
	if len(axes) < 1 || len(axes) > MaxDims {
		return nil, fmt.Errorf(
			"%w: %d axes given, but grids have between 1 and %d",
			ErrMalformed, len(axes), MaxDims,
		)
	}

	widths := [MaxDims]int{1, 1, 1, 1}
	for d, ax := range axes {
		if err := ax.Validate(); err != nil {
			return nil, fmt.Errorf("axis %d: %w", d, err)
		}
		widths[d] = ax.N
	}

	s := &Shape{}
	s.Init(len(axes), widths)
	return s, nil
}

// Init initializes a Shape instance.
func (s *Shape) Init(dims int, width [MaxDims]int) {
	s.Dims = dims
	s.Width = width
	s.length = 1
	for d := 0; d < MaxDims; d++ {
		s.stride[d] = s.length
		s.length *= width[d]
	}
}

// Len returns the number of samples in the grid.
func (s *Shape) Len() int { return s.length }

// Stride returns the distance in the flat buffer between neighbors along
// axis d.
func (s *Shape) Stride(d int) int { return s.stride[d] }

// Idx returns the flat index corresponding to a set of grid indices.
func (s *Shape) Idx(x, y, z, t int) int {
	return x + y*s.stride[1] + z*s.stride[2] + t*s.stride[3]
}

// IdxCheck returns an index and true if the given indices are valid and
// false otherwise.
func (s *Shape) IdxCheck(x, y, z, t int) (idx int, ok bool) {
	if !s.BoundsCheck(x, y, z, t) {
		return -1, false
	}
	return s.Idx(x, y, z, t), true
}

// BoundsCheck returns true if the given indices are within the grid.
func (s *Shape) BoundsCheck(x, y, z, t int) bool {
	return uint(x) < uint(s.Width[0]) && uint(y) < uint(s.Width[1]) &&
		uint(z) < uint(s.Width[2]) && uint(t) < uint(s.Width[3])
}

// Coords returns the grid indices of a point from its flat index.
func (s *Shape) Coords(idx int) (x, y, z, t int) {
	x = idx % s.Width[0]
	y = (idx / s.stride[1]) % s.Width[1]
	z = (idx / s.stride[2]) % s.Width[2]
	t = idx / s.stride[3]
	return x, y, z, t
}
