package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/fieldmap/vec"
)

// orthoTol is the largest deviation from orthonormality a rotation matrix
// may have.
const orthoTol = 1e-9

// Frame places a field map's local coordinate system inside the global
// one. A point's local coordinates are Rotation^T (global - Offset); the
// columns of Rotation are the local axes expressed in global coordinates.
// A nil Rotation is the identity.
type Frame struct {
	Offset   r3.Vec
	Rotation *r3.Mat
}

// EulerMatrix creates a 3D rotation matrix based off the Euler angles phi,
// theta, and psi. These represent three consecutive rotations around the z,
// x, and z axes, respectively.
func EulerMatrix(phi, theta, psi float64) *r3.Mat {
	c1, s1 := math.Cos(phi), math.Sin(phi)
	c2, s2 := math.Cos(theta), math.Sin(theta)
	c3, s3 := math.Cos(psi), math.Sin(psi)

	m1 := r3.NewMat([]float64{c1, -s1, 0, s1, c1, 0, 0, 0, 1})
	m2 := r3.NewMat([]float64{1, 0, 0, 0, c2, -s2, 0, s2, c2})
	m3 := r3.NewMat([]float64{c3, -s3, 0, s3, c3, 0, 0, 0, 1})

	m21 := r3.NewMat(nil)
	m21.Mul(m2, m1)
	out := r3.NewMat(nil)
	out.Mul(m3, m21)
	return out
}

// EulerFrame creates a frame at offset whose axes are rotated by the
// z-x-z Euler angles phi, theta, and psi.
func EulerFrame(offset r3.Vec, phi, theta, psi float64) Frame {
	return Frame{Offset: offset, Rotation: EulerMatrix(phi, theta, psi)}
}

// Validate returns an error if Rotation isn't orthonormal or Offset isn't
// finite.
func (f Frame) Validate() error {
	for _, x := range []float64{f.Offset.X, f.Offset.Y, f.Offset.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: frame offset %v isn't finite",
				ErrOptions, f.Offset)
		}
	}
	if f.Rotation == nil {
		return nil
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dot := 0.0
			for k := 0; k < 3; k++ {
				dot += f.Rotation.At(k, i) * f.Rotation.At(k, j)
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if !(math.Abs(dot-want) <= orthoTol) {
				return fmt.Errorf("%w: frame rotation isn't orthonormal "+
					"(column %d . column %d = %g)", ErrOptions, i, j, dot)
			}
		}
	}
	return nil
}

// ToLocal converts a global position to the frame's local coordinates.
func (f Frame) ToLocal(p r3.Vec) r3.Vec {
	d := r3.Sub(p, f.Offset)
	if f.Rotation == nil {
		return d
	}
	return f.Rotation.MulVecTrans(d)
}

// ToGlobal converts a local position to global coordinates.
func (f Frame) ToGlobal(p r3.Vec) r3.Vec {
	if f.Rotation != nil {
		p = f.Rotation.MulVec(p)
	}
	return r3.Add(p, f.Offset)
}

// VecToGlobal rotates a field vector from the frame's local axes to the
// global axes.
func (f Frame) VecToGlobal(v vec.Vec3) vec.Vec3 {
	if f.Rotation == nil {
		return v
	}
	return vec.FromR3(f.Rotation.MulVec(v.R3()))
}
