package array

import (
	"github.com/phil-mansfield/fieldmap/grid"
	"github.com/phil-mansfield/fieldmap/vec"
)

// IndexOp maps a requested index to the index read from the underlying
// Source. It must be a pure function.
type IndexOp func(req Index) Index

// ValueOp corrects a sample read from the underlying Source. req is the
// index originally requested from the wrapper, so the operator can tell
// which side of a symmetry plane the sample is on. It must be a pure
// function.
type ValueOp[V any] func(req Index, v V) V

// Transformed extends a Source by symmetry. Every request is resolved as
// value(req, src.Get(index(req))).
//
// A Transformed does not own its Source. The Source must stay alive and
// unmodified for as long as the Transformed is in use. The operators are a
// modeling contract: nothing checks that they describe a physically
// consistent field.
type Transformed[V vec.Value[V]] struct {
	src    Source[V]
	index  IndexOp
	value  ValueOp[V]
	bounds [grid.MaxDims][2]int
}

var (
	_ Source[vec.Vec3] = &Transformed[vec.Vec3]{}
	_ Source[vec.EM]   = &Transformed[vec.EM]{}
)

// Transform wraps src. nil operators are treated as identities. The
// wrapper initially reports the same Bounds as src; use Extend to widen
// them.
func Transform[V vec.Value[V]](
	src Source[V], index IndexOp, value ValueOp[V],
) *Transformed[V] {
	if index == nil {
		index = Identity
	}
	if value == nil {
		value = KeepValue[V]
	}

	t := &Transformed[V]{src: src, index: index, value: value}
	for d := range t.bounds {
		t.bounds[d][0], t.bounds[d][1] = src.Bounds(d)
	}
	return t
}

// Extend returns a copy of t which reports [lo, hi) as the bounds of axis d.
func (t *Transformed[V]) Extend(d, lo, hi int) *Transformed[V] {
	out := *t
	out.bounds[d] = [2]int{lo, hi}
	return &out
}

// Mirror reflects src about index 0 of the given axis, so that requested
// index -i reads sample i. Samples on the reflected side have the
// components in flip negated.
func Mirror[V vec.Value[V]](src Source[V], axis int, flip vec.Mask) *Transformed[V] {
	t := Transform[V](src, Reflect(axis, 0), FlipBelow[V](axis, 0, flip))
	_, hi := src.Bounds(axis)
	return t.Extend(axis, -(hi - 1), hi)
}

// Underlying returns the wrapped Source.
func (t *Transformed[V]) Underlying() Source[V] { return t.src }

// Dims returns the number of axes of the wrapped Source.
func (t *Transformed[V]) Dims() int { return t.src.Dims() }

// Axis returns axis d of the wrapped Source. The coordinate mapping is
// shared; only the valid index range changes.
func (t *Transformed[V]) Axis(d int) grid.Axis { return t.src.Axis(d) }

// Bounds returns the range of requested indices along d that can hold
// non-zero samples.
func (t *Transformed[V]) Bounds(d int) (lo, hi int) {
	return t.bounds[d][0], t.bounds[d][1]
}

// Get returns the transformed sample at req.
func (t *Transformed[V]) Get(req Index) V {
	return t.value(req, t.src.Get(t.index(req)))
}

// Block resolves every element of the block through the index operator
// individually. Neighboring requested indices aren't neighbors in the
// underlying array across a reflection plane, so the underlying Block
// can't be used.
func (t *Transformed[V]) Block(lo, size Index, out []V) {
	n := 0
	var req Index
	for req[3] = lo[3]; req[3] < lo[3]+size[3]; req[3]++ {
		for req[2] = lo[2]; req[2] < lo[2]+size[2]; req[2]++ {
			for req[1] = lo[1]; req[1] < lo[1]+size[1]; req[1]++ {
				for req[0] = lo[0]; req[0] < lo[0]+size[0]; req[0]++ {
					out[n] = t.Get(req)
					n++
				}
			}
		}
	}
}

/////////////////////
// Index Operators //
/////////////////////

// Identity returns req unchanged.
func Identity(req Index) Index { return req }

// Offset shifts every request by delta.
func Offset(delta Index) IndexOp {
	return func(req Index) Index {
		for d := range req {
			req[d] += delta[d]
		}
		return req
	}
}

// Reflect mirrors requests below plane along axis: i -> 2*plane - i.
func Reflect(axis, plane int) IndexOp {
	return func(req Index) Index {
		if req[axis] < plane {
			req[axis] = 2*plane - req[axis]
		}
		return req
	}
}

// ReflectHigh mirrors requests past the last sample of an axis with n
// samples: i -> 2*(n-1) - i.
func ReflectHigh(axis, n int) IndexOp {
	return func(req Index) Index {
		if req[axis] > n-1 {
			req[axis] = 2*(n-1) - req[axis]
		}
		return req
	}
}

// ComposeIndex applies ops in order.
func ComposeIndex(ops ...IndexOp) IndexOp {
	return func(req Index) Index {
		for _, op := range ops {
			req = op(req)
		}
		return req
	}
}

/////////////////////
// Value Operators //
/////////////////////

// KeepValue returns v unchanged.
func KeepValue[V any](req Index, v V) V { return v }

// FlipBelow negates the components in m of samples requested below plane
// along axis.
func FlipBelow[V vec.Value[V]](axis, plane int, m vec.Mask) ValueOp[V] {
	return func(req Index, v V) V {
		if req[axis] < plane {
			return v.Flip(m)
		}
		return v
	}
}

// FlipAbove negates the components in m of samples requested past the last
// sample of an axis with n samples. It pairs with ReflectHigh.
func FlipAbove[V vec.Value[V]](axis, n int, m vec.Mask) ValueOp[V] {
	return func(req Index, v V) V {
		if req[axis] > n-1 {
			return v.Flip(m)
		}
		return v
	}
}

// ComposeValue applies ops in order. Every op sees the originally
// requested index.
func ComposeValue[V any](ops ...ValueOp[V]) ValueOp[V] {
	return func(req Index, v V) V {
		for _, op := range ops {
			v = op(req, v)
		}
		return v
	}
}
