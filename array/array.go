/*package array implements dense coordinate-mapped arrays of field samples on
uniform grids with one to four axes, along with wrappers which extend an
array by symmetry without copying its samples.

Arrays are immutable after construction and every method may be called
concurrently. Requests for indices outside of an array never fail: they
return the zero sample, which is what lets interpolation stencils hang off
the edge of a field map and taper the field to zero.
*/
package array

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/phil-mansfield/fieldmap/grid"
	"github.com/phil-mansfield/fieldmap/logging"
	"github.com/phil-mansfield/fieldmap/vec"
)

// ErrShape is returned (wrapped) when the samples given to a constructor
// don't match its axes.
var ErrShape = errors.New("sample count doesn't match grid shape")

// Index is a requested integer index along each of the four possible axes.
// Entries for unused axes are zero.
type Index [grid.MaxDims]int

// Source is anything an interpolator can read samples from: an Array or a
// wrapper around one.
type Source[V vec.Value[V]] interface {
	// Dims returns the number of axes.
	Dims() int
	// Axis returns the coordinate mapping of axis d.
	Axis(d int) grid.Axis
	// Bounds returns the range of requested indices [lo, hi) along axis d
	// which can hold non-zero samples.
	Bounds(d int) (lo, hi int)
	// Get returns the sample at idx, or the zero sample if idx is out of
	// bounds.
	Get(idx Index) V
	// Block writes the size[0]*size[1]*size[2]*size[3] samples starting at
	// lo into out, with x varying fastest. Out-of-bounds samples are zero.
	Block(lo, size Index, out []V)
}

var (
	_ Source[vec.Vec3] = &Array[vec.Vec3]{}
	_ Source[vec.EM]   = &Array[vec.EM]{}
)

// Array is a coordinate-mapped array of field samples.
type Array[V vec.Value[V]] struct {
	axes  [grid.MaxDims]grid.Axis
	shape *grid.Shape
	vals  []V
}

// New creates an array over the given axes. vals is indexed with x varying
// fastest: vals(ix, iy, iz, it) -> vals[ix + iy*nx + iz*nx*ny + it*nx*ny*nz].
// The array takes ownership of vals.
func New[V vec.Value[V]](axes []grid.Axis, vals []V) (*Array[V], error) {
	shape, err := grid.NewShape(axes)
	if err != nil {
		return nil, err
	}
	if shape.Len() != len(vals) {
		return nil, fmt.Errorf("%w: len(vals) = %d, but the axes have %v "+
			"samples (%d total)", ErrShape, len(vals), shape.Width[:shape.Dims],
			shape.Len())
	}

	a := &Array[V]{shape: shape, vals: vals}
	for d := range a.axes {
		a.axes[d] = grid.Axis{Origin: 0, Spacing: 1, N: 1}
	}
	copy(a.axes[:], axes)

	logging.Log.WithFields(logrus.Fields{
		"dims":    shape.Dims,
		"shape":   shape.Width[:shape.Dims],
		"samples": shape.Len(),
	}).Debug("Built field map array.")

	return a, nil
}

// New1D creates a one-dimensional array.
func New1D[V vec.Value[V]](x grid.Axis, vals []V) (*Array[V], error) {
	return New([]grid.Axis{x}, vals)
}

// New2D creates a two-dimensional array.
func New2D[V vec.Value[V]](x, y grid.Axis, vals []V) (*Array[V], error) {
	return New([]grid.Axis{x, y}, vals)
}

// New3D creates a three-dimensional array.
func New3D[V vec.Value[V]](x, y, z grid.Axis, vals []V) (*Array[V], error) {
	return New([]grid.Axis{x, y, z}, vals)
}

// New4D creates a four-dimensional array. The fourth axis is usually time.
func New4D[V vec.Value[V]](x, y, z, t grid.Axis, vals []V) (*Array[V], error) {
	return New([]grid.Axis{x, y, z, t}, vals)
}

// FromFunc creates an array whose samples are f evaluated at every grid
// point. coords holds the coordinate of each used axis.
func FromFunc[V vec.Value[V]](
	axes []grid.Axis, f func(idx Index, coords [grid.MaxDims]float64) V,
) (*Array[V], error) {
	shape, err := grid.NewShape(axes)
	if err != nil {
		return nil, err
	}

	vals := make([]V, shape.Len())
	for i := range vals {
		var idx Index
		idx[0], idx[1], idx[2], idx[3] = shape.Coords(i)
		var coords [grid.MaxDims]float64
		for d := range axes {
			coords[d] = axes[d].Coord(idx[d])
		}
		vals[i] = f(idx, coords)
	}

	return New(axes, vals)
}

// Must panics if err is non-nil and returns a otherwise.
func Must[V vec.Value[V]](a *Array[V], err error) *Array[V] {
	if err != nil {
		panic(err.Error())
	}
	return a
}

// Dims returns the number of axes.
func (a *Array[V]) Dims() int { return a.shape.Dims }

// Axis returns axis d. Axes above Dims() are single-sample placeholders.
func (a *Array[V]) Axis(d int) grid.Axis { return a.axes[d] }

// Size returns the number of samples along axis d.
func (a *Array[V]) Size(d int) int { return a.shape.Width[d] }

// Len returns the total number of samples.
func (a *Array[V]) Len() int { return a.shape.Len() }

// Bounds returns [0, Size(d)).
func (a *Array[V]) Bounds(d int) (lo, hi int) { return 0, a.shape.Width[d] }

// CoordinateToIndex converts a coordinate along axis d into a fractional
// index.
func (a *Array[V]) CoordinateToIndex(d int, x float64) float64 {
	return a.axes[d].Index(x)
}

// IndexToCoordinate converts an index along axis d into a coordinate.
func (a *Array[V]) IndexToCoordinate(d, i int) float64 {
	return a.axes[d].Coord(i)
}

// Get returns the sample at idx or the zero sample if any index is out of
// bounds.
func (a *Array[V]) Get(idx Index) V {
	i, ok := a.shape.IdxCheck(idx[0], idx[1], idx[2], idx[3])
	if !ok {
		var zero V
		return zero
	}
	return a.vals[i]
}

// Block copies a block of samples into out, zero-padding everything outside
// the array. Runs along x are copied directly from the backing buffer.
func (a *Array[V]) Block(lo, size Index, out []V) {
	var zero V
	nx, x0 := size[0], lo[0]
	xLow, xHigh := max(x0, 0), min(x0+nx, a.shape.Width[0])

	n := 0
	for it := lo[3]; it < lo[3]+size[3]; it++ {
		for iz := lo[2]; iz < lo[2]+size[2]; iz++ {
			for iy := lo[1]; iy < lo[1]+size[1]; iy++ {
				row := out[n : n+nx]
				n += nx

				if xLow >= xHigh || !a.shape.BoundsCheck(0, iy, iz, it) {
					for i := range row {
						row[i] = zero
					}
					continue
				}

				for i := 0; i < xLow-x0; i++ {
					row[i] = zero
				}
				start := a.shape.Idx(xLow, iy, iz, it)
				copy(row[xLow-x0:xHigh-x0], a.vals[start:start+xHigh-xLow])
				for i := xHigh - x0; i < nx; i++ {
					row[i] = zero
				}
			}
		}
	}
}
