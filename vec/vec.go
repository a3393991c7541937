/*package vec contains the sample types stored in field maps: a single
3-vector for magnetic (or electric) fields and a paired electromagnetic
sample.
*/
package vec

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Value is the set of operations interpolation kernels and symmetry operators
// need from a field sample. The zero value of V must be the vanishing field.
type Value[V any] interface {
	// Add returns the component-wise sum of the receiver and v.
	Add(v V) V
	// Scale returns the receiver with every component multiplied by k.
	Scale(k float64) V
	// Flip returns the receiver with the components selected by m negated.
	Flip(m Mask) V
}

var (
	_ Value[Vec3] = Vec3{}
	_ Value[EM]   = EM{}
)

// Mask selects vector components. For Vec3 bits 0-2 are X, Y, Z. For EM bits
// 0-2 select E and bits 3-5 select B.
type Mask uint8

const (
	MaskX Mask = 1 << iota
	MaskY
	MaskZ

	MaskNone Mask = 0
	MaskAll  Mask = MaskX | MaskY | MaskZ
)

// Has returns true if every bit of b is set in m.
func (m Mask) Has(b Mask) bool { return m&b == b }

// EMMask packs an electric and a magnetic component mask into a mask usable
// with EM.Flip.
func EMMask(e, b Mask) Mask {
	return (e & MaskAll) | (b&MaskAll)<<3
}

// MagneticParity returns the components of a magnetic field which change
// sign when the given spatial axis (0, 1, or 2) is reflected. B is a
// pseudovector, so the two components transverse to the axis flip.
func MagneticParity(axis int) Mask {
	return MaskAll &^ axisMask(axis)
}

// ElectricParity returns the components of an electric field which change
// sign when the given spatial axis is reflected. Only the axial component
// flips.
func ElectricParity(axis int) Mask {
	return axisMask(axis)
}

func axisMask(axis int) Mask {
	if axis < 0 || axis > 2 {
		panic(fmt.Sprintf("Spatial axis %d is not in the range [0, 2].", axis))
	}
	return Mask(1) << uint(axis)
}

// Vec3 is a single 3-vector field sample. Magnetic samples are in Tesla and
// electric samples are in V/m.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 { return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z} }

// Scale returns k*v.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{k * v.X, k * v.Y, k * v.Z} }

// Flip negates the components selected by m.
func (v Vec3) Flip(m Mask) Vec3 {
	if m.Has(MaskX) {
		v.X = -v.X
	}
	if m.Has(MaskY) {
		v.Y = -v.Y
	}
	if m.Has(MaskZ) {
		v.Z = -v.Z
	}
	return v
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// R3 converts v to a gonum vector.
func (v Vec3) R3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// FromR3 converts a gonum vector to a Vec3.
func FromR3(p r3.Vec) Vec3 { return Vec3{p.X, p.Y, p.Z} }

// EM is a paired electromagnetic field sample.
type EM struct {
	E, B Vec3
}

// Add returns the sum of both fields.
func (f EM) Add(g EM) EM { return EM{f.E.Add(g.E), f.B.Add(g.B)} }

// Scale multiplies both fields by k.
func (f EM) Scale(k float64) EM { return EM{f.E.Scale(k), f.B.Scale(k)} }

// Flip negates E components selected by bits 0-2 of m and B components
// selected by bits 3-5.
func (f EM) Flip(m Mask) EM {
	return EM{f.E.Flip(m & MaskAll), f.B.Flip((m >> 3) & MaskAll)}
}
