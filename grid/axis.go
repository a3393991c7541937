/*package grid describes uniform rectilinear grids: the per-axis mapping
between real coordinates and fractional array indices, and the layout of
up to four such axes in a flat buffer.
*/
package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformed is returned (wrapped) whenever grid metadata can't describe a
// valid uniform grid.
var ErrMalformed = errors.New("malformed grid")

// snapTol is the distance, in index units, within which a fractional index
// is snapped to the nearest integer.
const snapTol = 1e-9

// Axis is a single uniformly spaced grid axis with N samples located at
// Origin, Origin + Spacing, ..., Origin + (N-1)*Spacing.
type Axis struct {
	Origin, Spacing float64
	N               int
}

// NewAxis creates an axis and returns an error if spacing isn't positive,
// n is less than one, or either float isn't finite.
func NewAxis(origin, spacing float64, n int) (Axis, error) {
	ax := Axis{Origin: origin, Spacing: spacing, N: n}
	return ax, ax.Validate()
}

// UnifAxis creates an axis with n samples spanning [lo, hi].
func UnifAxis(lo, hi float64, n int) (Axis, error) {
	if n == 1 {
		return NewAxis(lo, 1, 1)
	}
	return NewAxis(lo, (hi-lo)/float64(n-1), n)
}

// Validate returns an error if the axis is malformed.
func (ax Axis) Validate() error {
	switch {
	case math.IsNaN(ax.Origin) || math.IsInf(ax.Origin, 0):
		return fmt.Errorf("%w: origin %g isn't finite", ErrMalformed, ax.Origin)
	case math.IsNaN(ax.Spacing) || math.IsInf(ax.Spacing, 0):
		return fmt.Errorf("%w: spacing %g isn't finite", ErrMalformed, ax.Spacing)
	case ax.Spacing <= 0:
		return fmt.Errorf("%w: spacing %g isn't positive", ErrMalformed, ax.Spacing)
	case ax.N < 1:
		return fmt.Errorf("%w: sample count %d is less than 1", ErrMalformed, ax.N)
	}
	return nil
}

// Index converts the coordinate x to a fractional index. Indices within
// snapTol of an integer are returned as that integer so that grid-aligned
// coordinates round-trip exactly through Coord.
func (ax Axis) Index(x float64) float64 {
	f := (x - ax.Origin) / ax.Spacing
	if r := math.Round(f); math.Abs(f-r) < snapTol {
		return r
	}
	return f
}

// Coord returns the coordinate of the sample at index i. i does not need to
// be inside the axis.
func (ax Axis) Coord(i int) float64 {
	return ax.Origin + float64(i)*ax.Spacing
}

// Max returns the coordinate of the last sample.
func (ax Axis) Max() float64 { return ax.Coord(ax.N - 1) }

// Contains returns true if i is a valid sample index.
func (ax Axis) Contains(i int) bool { return i >= 0 && i < ax.N }

// Split separates a fractional index into its floor and the offset from
// the floor in [0, 1).
func Split(f float64) (i int, frac float64) {
	fl := math.Floor(f)
	return int(fl), f - fl
}
