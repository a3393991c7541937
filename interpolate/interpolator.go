/*package interpolate implements nearest-neighbor, multilinear, and cubic
convolution interpolators over field map arrays with one to four axes.

Interpolators are immutable after construction and keep no state between
calls. Stencil buffers come from a pool and belong to a single call until it
returns, so a single interpolator can be shared between any number of
goroutines. Queries outside of an array's domain never fail: the stencil
reads zero samples past the edge of the array, which tapers the field to
zero within one grid cell of the boundary.
*/
package interpolate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/phil-mansfield/fieldmap/array"
	"github.com/phil-mansfield/fieldmap/grid"
	"github.com/phil-mansfield/fieldmap/logging"
	"github.com/phil-mansfield/fieldmap/vec"
)

var (
	// ErrKind is returned (wrapped) for unrecognized interpolation kinds.
	ErrKind = errors.New("unknown interpolation kind")
	// ErrBinding is returned (wrapped) when array axes can't be bound to
	// query coordinates.
	ErrBinding = errors.New("invalid axis binding")
)

// Interpolator reconstructs a continuous field from the samples of a single
// Source. Axes of the Source are fed from the query coordinates they are
// bound to; unbound coordinates are ignored.
type Interpolator[V vec.Value[V]] interface {
	// Eval evaluates the interpolator at a point in space and time.
	Eval(x, y, z, t float64) V
	// Dims returns the number of axes of the underlying Source.
	Dims() int
	// Kind returns the interpolation kernel.
	Kind() Kind
	// Coords returns the query coordinate bound to each axis.
	Coords() []Coord
	// Source returns the Source being interpolated.
	Source() array.Source[V]
}

var (
	_ Interpolator[vec.Vec3] = &NearestGrid[vec.Vec3]{}
	_ Interpolator[vec.Vec3] = &LinearGrid[vec.Vec3]{}
	_ Interpolator[vec.Vec3] = &CubicGrid[vec.Vec3]{}
	_ Interpolator[vec.EM]   = &NearestGrid[vec.EM]{}
	_ Interpolator[vec.EM]   = &LinearGrid[vec.EM]{}
	_ Interpolator[vec.EM]   = &CubicGrid[vec.EM]{}
)

// Kind is an interpolation kernel.
type Kind int

const (
	Nearest Kind = iota
	Linear
	Cubic
)

var kindNames = []string{"nearest", "linear", "cubic"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a case-insensitive kernel name to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i := range kindNames {
		if kindNames[i] == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: '%s' isn't one of %s", ErrKind, s,
		strings.Join(kindNames, ", "))
}

// Stencil returns the number of samples a kernel reads along each axis.
func Stencil(k Kind) int {
	switch k {
	case Nearest:
		return 1
	case Linear:
		return 2
	case Cubic:
		return 4
	}
	panic(fmt.Sprintf("Stencil called on unknown kind %d.", int(k)))
}

// Coord names one of the query coordinates passed to Eval.
type Coord int

const (
	X Coord = iota
	Y
	Z
	T
)

func (c Coord) String() string {
	switch c {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	case T:
		return "t"
	}
	return fmt.Sprintf("Coord(%d)", int(c))
}

type bindParams struct {
	coords   []Coord
	timeAxis int
}

type internalOption func(*bindParams)

// Option configures how array axes are bound to query coordinates.
type Option internalOption

// TimeAxis binds axis k of the array to time. The remaining axes are bound
// to x, y, and z in order.
func TimeAxis(k int) Option {
	return func(p *bindParams) { p.timeAxis = k }
}

// AxisCoords binds axis i of the array to cs[i]. It takes precedence over
// TimeAxis.
func AxisCoords(cs ...Coord) Option {
	return func(p *bindParams) { p.coords = append([]Coord{}, cs...) }
}

func (p *bindParams) loadOptions(opts []Option) {
	for _, opt := range opts {
		opt(p)
	}
}

// Bind returns the coordinate each axis of a dims-dimensional array is
// bound to under opts.
func Bind(dims int, opts ...Option) ([]Coord, error) {
	coords, err := bind(dims, opts)
	if err != nil {
		return nil, err
	}
	return coords[:dims], nil
}

// bind returns the coordinate bound to each of the dims axes. Without
// options a 4D array is bound to (x, y, z, t) and lower-dimensional arrays
// to the leading spatial coordinates.
func bind(dims int, opts []Option) ([grid.MaxDims]Coord, error) {
	p := &bindParams{timeAxis: -1}
	p.loadOptions(opts)

	var out [grid.MaxDims]Coord
	if p.coords != nil {
		if len(p.coords) != dims {
			return out, fmt.Errorf("%w: %d coordinates given for %d axes",
				ErrBinding, len(p.coords), dims)
		}
		for i, c := range p.coords {
			if c < X || c > T {
				return out, fmt.Errorf("%w: axis %d bound to %v", ErrBinding, i, c)
			}
			for j := 0; j < i; j++ {
				if p.coords[j] == c {
					return out, fmt.Errorf("%w: axes %d and %d are both bound to %v",
						ErrBinding, j, i, c)
				}
			}
			out[i] = c
		}
		return out, nil
	}

	if p.timeAxis < -1 || p.timeAxis >= dims {
		return out, fmt.Errorf("%w: time axis %d doesn't exist in a %dD array",
			ErrBinding, p.timeAxis, dims)
	}

	timeAxis := p.timeAxis
	if timeAxis == -1 && dims == grid.MaxDims {
		timeAxis = grid.MaxDims - 1
	}
	next := X
	for d := 0; d < dims; d++ {
		if d == timeAxis {
			out[d] = T
		} else {
			out[d] = next
			next++
		}
	}
	return out, nil
}

// New creates an interpolator of the given kind over src.
func New[V vec.Value[V]](
	src array.Source[V], kind Kind, opts ...Option,
) (Interpolator[V], error) {
	if kind < Nearest || kind > Cubic {
		return nil, fmt.Errorf("%w: %d", ErrKind, int(kind))
	}
	b, err := newBase(src, kind, opts)
	if err != nil {
		return nil, err
	}

	switch kind {
	case Nearest:
		return &NearestGrid[V]{b}, nil
	case Linear:
		return &LinearGrid[V]{b}, nil
	default:
		return &CubicGrid[V]{b}, nil
	}
}

// Must panics if err is non-nil and returns in otherwise.
func Must[V vec.Value[V]](in Interpolator[V], err error) Interpolator[V] {
	if err != nil {
		panic(err.Error())
	}
	return in
}

// EvalAll evaluates in at a sequence of points and returns the result. An
// optional output array can be supplied to prevent unneeded heap
// allocations.
func EvalAll[V vec.Value[V]](
	in Interpolator[V], xs, ys, zs, ts []float64, out ...[]V,
) []V {
	if len(ys) != len(xs) || len(zs) != len(xs) || len(ts) != len(xs) {
		panic(fmt.Sprintf("len(xs) = %d, len(ys) = %d, len(zs) = %d, "+
			"len(ts) = %d", len(xs), len(ys), len(zs), len(ts)))
	}
	if len(out) == 0 {
		out = [][]V{make([]V, len(xs))}
	}
	for i := range xs {
		out[0][i] = in.Eval(xs[i], ys[i], zs[i], ts[i])
	}
	return out[0]
}

func newBase[V vec.Value[V]](
	src array.Source[V], kind Kind, opts []Option,
) (base[V], error) {
	dims := src.Dims()
	if dims < 1 || dims > grid.MaxDims {
		return base[V]{}, fmt.Errorf("%w: source has %d axes",
			grid.ErrMalformed, dims)
	}

	coords, err := bind(dims, opts)
	if err != nil {
		return base[V]{}, err
	}

	n := 1
	for d := 0; d < dims; d++ {
		n *= Stencil(kind)
	}
	b := base[V]{src: src, dims: dims, coords: coords}
	b.stencils = &sync.Pool{New: func() any {
		s := make([]V, n)
		return &s
	}}
	for d := 0; d < dims; d++ {
		b.axes[d] = src.Axis(d)
		if err := b.axes[d].Validate(); err != nil {
			return base[V]{}, fmt.Errorf("axis %d: %w", d, err)
		}
	}

	logging.Log.WithFields(logrus.Fields{
		"kind":   kind.String(),
		"dims":   dims,
		"coords": coords[:dims],
	}).Debug("Built interpolator.")

	return b, nil
}
