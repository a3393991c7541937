package interpolate

import (
	"math"
	"sync"

	"github.com/phil-mansfield/fieldmap/array"
	"github.com/phil-mansfield/fieldmap/grid"
	"github.com/phil-mansfield/fieldmap/vec"
)

// farIndex is the fractional index beyond which a query is treated as
// being infinitely far from the grid. Keeps stencil arithmetic from
// overflowing int.
const farIndex = 1 << 40

// weightFunc fills the first width entries of w with the kernel weights for
// fractional index f and returns the index of the first stencil point.
type weightFunc func(f float64, w *[4]float64) int

func nearestWeights(f float64, w *[4]float64) int {
	w[0] = 1
	return int(math.Round(f))
}

func linearWeights(f float64, w *[4]float64) int {
	i, t := grid.Split(f)
	w[0], w[1] = 1-t, t
	return i
}

// cubicWeights are the Catmull-Rom cubic convolution weights for the points
// floor-1, floor, floor+1, and floor+2. They sum to one for every t and
// reproduce linear data exactly.
func cubicWeights(f float64, w *[4]float64) int {
	i, t := grid.Split(f)
	t2 := t * t
	t3 := t2 * t
	w[0] = 0.5 * (-t3 + 2*t2 - t)
	w[1] = 0.5 * (3*t3 - 5*t2 + 2)
	w[2] = 0.5 * (-3*t3 + 4*t2 + t)
	w[3] = 0.5 * (t3 - t2)
	return i - 1
}

// base holds everything an interpolator needs that doesn't depend on the
// kernel.
type base[V vec.Value[V]] struct {
	src    array.Source[V]
	dims   int
	axes   [grid.MaxDims]grid.Axis
	coords [grid.MaxDims]Coord
	// stencils holds *[]V buffers of width^dims samples. A buffer belongs to
	// one eval call between Get and Put.
	stencils *sync.Pool
}

func (b *base[V]) Dims() int { return b.dims }

func (b *base[V]) Coords() []Coord {
	return append([]Coord{}, b.coords[:b.dims]...)
}

func (b *base[V]) Source() array.Source[V] { return b.src }

// eval is the tensor-product routine shared by every kernel. It converts
// the query to fractional indices, computes per-axis weights, reads a
// width^dims block from the source, and sums the weighted samples.
func (b *base[V]) eval(x, y, z, t float64, width int, weights weightFunc) V {
	q := [grid.MaxDims]float64{x, y, z, t}

	var (
		lo, size array.Index
		w        [grid.MaxDims][4]float64
		zero     V
	)
	n := 1
	for d := range size {
		size[d] = 1
		w[d][0] = 1
	}
	for d := 0; d < b.dims; d++ {
		f := b.axes[d].Index(q[b.coords[d]])
		if !(math.Abs(f) < farIndex) {
			return zero
		}
		lo[d] = weights(f, &w[d])
		size[d] = width
		n *= width
	}

	buf := b.stencils.Get().(*[]V)
	stencil := (*buf)[:n]
	b.src.Block(lo, size, stencil)

	out := zero
	for i := range stencil {
		k, wt := i, 1.0
		for d := 0; d < b.dims; d++ {
			wt *= w[d][k%width]
			k /= width
		}
		if wt != 0 {
			out = out.Add(stencil[i].Scale(wt))
		}
	}
	b.stencils.Put(buf)
	return out
}

// NearestGrid returns the sample closest to the query point, rounding
// fractional indices half away from zero.
type NearestGrid[V vec.Value[V]] struct{ base[V] }

// NewNearest creates a nearest-neighbor interpolator over src.
func NewNearest[V vec.Value[V]](
	src array.Source[V], opts ...Option,
) (*NearestGrid[V], error) {
	b, err := newBase(src, Nearest, opts)
	if err != nil {
		return nil, err
	}
	return &NearestGrid[V]{b}, nil
}

func (g *NearestGrid[V]) Kind() Kind { return Nearest }

func (g *NearestGrid[V]) Eval(x, y, z, t float64) V {
	return g.eval(x, y, z, t, 1, nearestWeights)
}

// LinearGrid blends the 2^D corners of the cell containing the query
// point.
type LinearGrid[V vec.Value[V]] struct{ base[V] }

// NewLinear creates a multilinear interpolator over src.
func NewLinear[V vec.Value[V]](
	src array.Source[V], opts ...Option,
) (*LinearGrid[V], error) {
	b, err := newBase(src, Linear, opts)
	if err != nil {
		return nil, err
	}
	return &LinearGrid[V]{b}, nil
}

func (g *LinearGrid[V]) Kind() Kind { return Linear }

func (g *LinearGrid[V]) Eval(x, y, z, t float64) V {
	return g.eval(x, y, z, t, 2, linearWeights)
}

// CubicGrid applies a separable cubic convolution kernel to the 4^D
// samples surrounding the cell containing the query point. The result is
// continuous in both value and first derivative.
type CubicGrid[V vec.Value[V]] struct{ base[V] }

// NewCubic creates a cubic convolution interpolator over src.
func NewCubic[V vec.Value[V]](
	src array.Source[V], opts ...Option,
) (*CubicGrid[V], error) {
	b, err := newBase(src, Cubic, opts)
	if err != nil {
		return nil, err
	}
	return &CubicGrid[V]{b}, nil
}

func (g *CubicGrid[V]) Kind() Kind { return Cubic }

func (g *CubicGrid[V]) Eval(x, y, z, t float64) V {
	return g.eval(x, y, z, t, 4, cubicWeights)
}
